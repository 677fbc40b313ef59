// Package server assembles the HTTP handler and runs the listener.
package server

import (
	"context"
	"io/fs"
	"net"
	"net/http"
	"os"
	"time"

	"code.cloudfoundry.org/lager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"

	"github.com/jackielii/taskboard/internal/config"
	"github.com/jackielii/taskboard/internal/pages"
	"github.com/jackielii/taskboard/internal/structpages"
	"github.com/jackielii/taskboard/internal/views"
	"github.com/jackielii/taskboard/internal/web"
)

// SiteTitle is the title of the root of the page tree.
const SiteTitle = "Taskboard"

type Server struct {
	conf    config.Config
	logger  lager.Logger
	handler http.Handler
}

// New builds the server from conf. Missing templates are logged, not fatal:
// the pages that need them answer 500 until they appear.
func New(conf config.Config, logger lager.Logger) (*Server, error) {
	v := views.New(TemplateFS(conf), conf.Debug)
	if err := v.Check(pages.Templates...); err != nil {
		logger.Error("template-check-failed", err)
	}
	handler, err := NewHandler(logger, v, &pages.Assets{Static: StaticFS(conf)})
	if err != nil {
		return nil, err
	}
	return &Server{conf: conf, logger: logger, handler: handler}, nil
}

// TemplateFS is the templates directory of conf, or the embedded templates.
func TemplateFS(conf config.Config) fs.FS {
	if conf.TemplatesDir != "" {
		return os.DirFS(conf.TemplatesDir)
	}
	return web.Templates()
}

// StaticFS is the static directory of conf, or the embedded assets.
func StaticFS(conf config.Config) fs.FS {
	if conf.StaticDir != "" {
		return os.DirFS(conf.StaticDir)
	}
	return web.Static()
}

// NewHandler mounts the pages on a chi router. Unknown paths get chi's 404,
// other methods on a page get 405, and HEAD is served wherever GET is.
func NewHandler(logger lager.Logger, v *views.Views, assets *pages.Assets) (http.Handler, error) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, requestLogger(logger), middleware.Recoverer, middleware.GetHead)

	sp := structpages.New(
		structpages.WithDefaultPageConfig(structpages.HTMXPageConfig),
		structpages.WithErrorHandler(renderErrorHandler(logger)),
		structpages.WithMiddlewares(pageLogger(logger)),
	)
	if err := sp.MountPages(structpages.NewRouter(r), pages.Pages{}, "/", SiteTitle, v, assets); err != nil {
		return nil, errors.Wrap(err, "failed to mount pages")
	}
	return r, nil
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.conf.Addr())
	if err != nil {
		return errors.Wrap(err, "failed to listen")
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down within
// the configured grace period.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()
	s.logger.Info("listening", lager.Data{"addr": ln.Addr().String()})

	select {
	case err := <-errCh:
		return errors.Wrap(err, "server stopped")
	case <-ctx.Done():
	}

	s.logger.Info("shutting-down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.conf.ShutdownGrace())
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "failed to shut down")
	}
	return nil
}
