package pages

import (
	"io/fs"
	"net/http"
	"strings"

	"github.com/jackielii/taskboard/internal/structpages"
)

// Assets holds the files served under /static/.
type Assets struct {
	Static fs.FS
}

// AssetCacheControl is sent with every static asset.
const AssetCacheControl = "public, max-age=3600"

type staticPage struct {
	files http.Handler
}

func (p *staticPage) Init(a *Assets) {
	p.files = http.StripPrefix("/static/", http.FileServerFS(a.Static))
}

func (p *staticPage) Middlewares() []structpages.MiddlewareFunc {
	return []structpages.MiddlewareFunc{cacheControl(AssetCacheControl)}
}

func (p *staticPage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// no directory listings
	if strings.HasSuffix(r.URL.Path, "/") {
		http.NotFound(w, r)
		return
	}
	p.files.ServeHTTP(w, r)
}

func cacheControl(value string) structpages.MiddlewareFunc {
	return func(next http.Handler, _ *structpages.PageNode) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", value)
			next.ServeHTTP(w, r)
		})
	}
}
