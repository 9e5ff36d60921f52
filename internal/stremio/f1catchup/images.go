package stremio_f1catchup

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/f1catchup/f1catchup/internal/server"
)

//go:embed images/*.png
var imagesFS embed.FS

var imagesHandler = func() http.Handler {
	sub, err := fs.Sub(imagesFS, "images")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/images/", http.FileServerFS(sub))
}()

func (a *Addon) handleImage(w http.ResponseWriter, r *http.Request) {
	server.GetReqCtx(r).NoRequestLog = true
	w.Header().Set("Cache-Control", "public, max-age=86400")
	imagesHandler.ServeHTTP(w, r)
}
