package stremio_f1catchup

import (
	"net/http"

	"github.com/f1catchup/f1catchup/internal/config"
	"github.com/f1catchup/f1catchup/internal/f1"
	"github.com/f1catchup/f1catchup/internal/shared"
	"github.com/f1catchup/f1catchup/stremio"
)

const (
	ManifestId = "org.f1catchup.catalog"
	CatalogId  = "f1catchup-seasons"
)

func getManifest(origin string) *stremio.Manifest {
	return &stremio.Manifest{
		ID:          ManifestId,
		Version:     config.Version,
		Name:        "F1 Catchup",
		Description: "Formula 1 sessions by season, with streams from TorBox search.",
		Resources: []stremio.ResourceName{
			stremio.ResourceNameCatalog,
			stremio.ResourceNameMeta,
			stremio.ResourceNameStream,
		},
		Types: []stremio.ContentType{stremio.ContentTypeSeries},
		Catalogs: []stremio.ManifestCatalog{
			{
				Type: stremio.ContentTypeSeries,
				Id:   CatalogId,
				Name: "F1 Catchup",
				Extra: []stremio.ManifestCatalogExtra{
					{Name: "skip"},
				},
			},
		},
		IDPrefixes: []string{f1.IdPrefix},
		Logo:       origin + config.Episode.ImageLogoPath,
		Background: origin + config.Episode.ImageBgPath,
	}
}

func (a *Addon) handleManifest(w http.ResponseWriter, r *http.Request) {
	if !shared.IsMethod(r, http.MethodGet) {
		shared.ErrorMethodNotAllowed(r).Send(w, r)
		return
	}

	if _, err := getUserData(r); err != nil {
		shared.SendError(w, r, err)
		return
	}

	shared.SendResponse(w, r, http.StatusOK, getManifest(a.origin(r)))
}
