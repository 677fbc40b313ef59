package structpages

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Router is what MountPages registers pages on.
type Router interface {
	Route(path string, fn func(Router))
	HandleMethod(method, path string, handler http.Handler)
}

type chiRouter struct {
	router chi.Router
}

// NewRouter adapts a chi router. A nil router gets a fresh chi.NewRouter.
//
//	r := structpages.NewRouter(chi.NewRouter())
//	sp.MountPages(r, pages{}, "/", "Home")
func NewRouter(r chi.Router) *chiRouter {
	if r == nil {
		r = chi.NewRouter()
	}
	return &chiRouter{router: r}
}

// Route groups the routes registered by fn under path. The root path is
// registered in place since chi cannot mount a sub-router over "/".
func (r *chiRouter) Route(path string, fn func(Router)) {
	if path == "/" || path == "" {
		fn(r)
		return
	}
	r.router.Route(path, func(cr chi.Router) {
		fn(&chiRouter{router: cr})
	})
}

func (r *chiRouter) HandleMethod(method, path string, handler http.Handler) {
	if method == methodAll || method == "" {
		r.router.Handle(path, handler)
		return
	}
	r.router.Method(method, path, handler)
}

func (r *chiRouter) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.router.ServeHTTP(w, req)
}
