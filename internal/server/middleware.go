package server

import (
	"context"
	"net/http"
	"time"

	"code.cloudfoundry.org/lager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackielii/ctxkey"

	"github.com/jackielii/taskboard/internal/structpages"
)

var loggerCtx = ctxkey.New[lager.Logger]("taskboard.logger", nil)

// LoggerFrom returns the request logger stored in ctx, or fallback.
func LoggerFrom(ctx context.Context, fallback lager.Logger) lager.Logger {
	if logger := loggerCtx.Value(ctx); logger != nil {
		return logger
	}
	return fallback
}

// requestLogger opens a lager session per request and logs the outcome,
// including requests no page matched.
func requestLogger(logger lager.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			session := logger.Session("request", lager.Data{
				"method":     r.Method,
				"path":       r.URL.Path,
				"request-id": middleware.GetReqID(r.Context()),
			})
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(loggerCtx.WithValue(r.Context(), session)))

			data := lager.Data{
				"status":   ww.Status(),
				"bytes":    ww.BytesWritten(),
				"duration": time.Since(start).String(),
			}
			if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
				data["route"] = rctx.RoutePattern()
			}
			session.Info("served", data)
		})
	}
}

// pageLogger tags the request logger with the page serving the request.
func pageLogger(logger lager.Logger) structpages.MiddlewareFunc {
	return func(next http.Handler, pn *structpages.PageNode) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tagged := LoggerFrom(r.Context(), logger).WithData(lager.Data{"page": pn.Name})
			next.ServeHTTP(w, r.WithContext(loggerCtx.WithValue(r.Context(), tagged)))
		})
	}
}
