package server

import (
	"context"
	"net/http"
	"time"

	"github.com/f1catchup/f1catchup/internal/logger"
	"github.com/rs/xid"
)

var log = logger.Scoped("server")

type ReqCtx struct {
	RequestId    string
	StartTime    time.Time
	ClientIP     string
	Log          *logger.Logger
	NoRequestLog bool
}

type reqCtxKey struct{}

func GetReqCtx(r *http.Request) *ReqCtx {
	if ctx, ok := r.Context().Value(reqCtxKey{}).(*ReqCtx); ok {
		return ctx
	}
	return &ReqCtx{
		StartTime: time.Now(),
		Log:       log,
	}
}

func withReqCtx(r *http.Request) (*http.Request, *ReqCtx) {
	requestId := r.Header.Get("X-Request-Id")
	if requestId == "" {
		requestId = xid.New().String()
	}
	ctx := &ReqCtx{
		RequestId: requestId,
		StartTime: time.Now(),
		ClientIP:  GetClientIP(r),
	}
	ctx.Log = log.With("req.id", requestId)
	return r.WithContext(context.WithValue(r.Context(), reqCtxKey{}, ctx)), ctx
}
