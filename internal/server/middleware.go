package server

import (
	"net/http"
	"time"

	"github.com/f1catchup/f1catchup/internal/shared"
	"github.com/f1catchup/f1catchup/internal/util"
)

type Middleware func(http.HandlerFunc) http.HandlerFunc

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (w *statusRecorder) WriteHeader(statusCode int) {
	w.statusCode = statusCode
	w.ResponseWriter.WriteHeader(statusCode)
}

func WithRequestContext(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r, ctx := withReqCtx(r)
		w.Header().Set("X-Request-Id", ctx.RequestId)

		sw := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next(sw, r)

		if !ctx.NoRequestLog {
			ctx.Log.Info("request", "method", r.Method, "path", r.URL.Path, "status", sw.statusCode, "duration", time.Since(ctx.StartTime).String(), "ip", ctx.ClientIP)
		}
	}
}

func WithPanicRecovery(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err, stack := util.HandlePanic(recover(), true); err != nil {
				GetReqCtx(r).Log.Error("panic recovered", "error", err, "stack", stack)
				shared.ErrorInternalServerError(r, err.Error()).WithCause(err).Send(w, r)
			}
		}()
		next(w, r)
	}
}

func WithCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		shared.SetCORSHeaders(w)
		if shared.IsMethod(r, http.MethodOptions) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}

// WithMiddleware applies the middlewares in order, the first one being the
// outermost.
func WithMiddleware(middlewares ...Middleware) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		for i := len(middlewares) - 1; i >= 0; i-- {
			next = middlewares[i](next)
		}
		return next
	}
}

func Handler(mux *http.ServeMux) http.Handler {
	return WithMiddleware(WithRequestContext, WithCORS, WithPanicRecovery)(mux.ServeHTTP)
}
