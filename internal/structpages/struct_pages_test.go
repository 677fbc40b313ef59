package structpages

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/a-h/templ"
	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

type TestHandlerPage struct{}

func (TestHandlerPage) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("TestHttpHandler"))
}

type homePage struct{}

func (homePage) Page() templ.Component    { return testComponent{"home page"} }
func (homePage) Content() templ.Component { return testComponent{"home content"} }

type aboutPage struct{}

func (aboutPage) Page(pn *PageNode) templ.Component {
	return testComponent{"about " + pn.Title}
}

type brokenPage struct{}

func (brokenPage) Page() templ.Component { return errorComponent{} }

type errorComponent struct{}

func (errorComponent) Render(ctx context.Context, w io.Writer) error {
	_, _ = w.Write([]byte("partial output"))
	return errors.New("render failed")
}

type site struct {
	home    homePage         `route:"GET / Home"`
	about   aboutPage        `route:"GET /about About"`
	broken  brokenPage       `route:"GET /broken"`
	handler *TestHandlerPage `route:"POST /handler"`
}

func serve(t *testing.T, h http.Handler, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, http.NoBody)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func mountSite(t *testing.T, options ...Option) *chiRouter {
	t.Helper()
	r := NewRouter(chi.NewRouter())
	sp := New(options...)
	require.NoError(t, sp.MountPages(r, site{}, "/", "Site"))
	return r
}

func TestMountPages(t *testing.T) {
	r := mountSite(t)

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantBody   string
	}{
		{"home", http.MethodGet, "/", http.StatusOK, "home page"},
		{"about gets its node", http.MethodGet, "/about", http.StatusOK, "about About"},
		{"handler page", http.MethodPost, "/handler", http.StatusOK, "TestHttpHandler"},
		{"query ignored", http.MethodGet, "/?q=1", http.StatusOK, "home page"},
		{"unknown path", http.MethodGet, "/missing", http.StatusNotFound, "404 page not found\n"},
		{"wrong method", http.MethodPost, "/about", http.StatusMethodNotAllowed, ""},
		{"render error", http.MethodGet, "/broken", http.StatusInternalServerError, "Internal Server Error\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(t, r, tt.method, tt.target, nil)
			if rec.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, rec.Code)
			}
			if diff := cmp.Diff(tt.wantBody, rec.Body.String()); diff != "" {
				t.Errorf("body mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestComponentPagesAreHTML(t *testing.T) {
	r := mountSite(t)
	rec := serve(t, r, http.MethodGet, "/", nil)
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("expected html content type, got %q", ct)
	}
}

func TestErrorHandler(t *testing.T) {
	var got error
	r := mountSite(t, WithErrorHandler(func(w http.ResponseWriter, r *http.Request, err error) {
		got = err
		w.WriteHeader(http.StatusTeapot)
	}))
	rec := serve(t, r, http.MethodGet, "/broken", nil)
	if rec.Code != http.StatusTeapot {
		t.Errorf("expected status %d, got %d", http.StatusTeapot, rec.Code)
	}
	if got == nil || got.Error() != "render failed" {
		t.Errorf("expected render error, got %v", got)
	}
	if strings.Contains(rec.Body.String(), "partial output") {
		t.Errorf("partial output leaked into error response: %q", rec.Body.String())
	}
}

func TestMiddlewares(t *testing.T) {
	var order []string
	mw := func(name string) MiddlewareFunc {
		return func(next http.Handler, pn *PageNode) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name+":"+pn.Name)
				next.ServeHTTP(w, r)
			})
		}
	}
	r := mountSite(t, WithMiddlewares(mw("inner"), mw("outer")))
	serve(t, r, http.MethodGet, "/about", nil)
	if diff := cmp.Diff([]string{"outer:about", "inner:about"}, order); diff != "" {
		t.Errorf("middleware order mismatch (-want +got):\n%s", diff)
	}
}

type guardedPage struct{}

func (guardedPage) Page() templ.Component { return testComponent{"guarded"} }

func (guardedPage) Middlewares(header string) []MiddlewareFunc {
	return []MiddlewareFunc{
		func(next http.Handler, pn *PageNode) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Guard", header)
				next.ServeHTTP(w, r)
			})
		},
	}
}

func TestPageMiddlewares(t *testing.T) {
	type root struct {
		g guardedPage `route:"/guarded"`
	}
	r := NewRouter(nil)
	require.NoError(t, New().MountPages(r, root{}, "/", "", "on"))

	rec := serve(t, r, http.MethodGet, "/guarded", nil)
	if rec.Header().Get("X-Guard") != "on" {
		t.Errorf("expected X-Guard header, got %q", rec.Header().Get("X-Guard"))
	}
	if rec.Body.String() != "guarded" {
		t.Errorf("expected body %q, got %q", "guarded", rec.Body.String())
	}

	err := New().MountPages(NewRouter(nil), root{}, "/", "")
	if err == nil {
		t.Fatal("expected error for missing Middlewares argument")
	}
}

func TestHTMXPartials(t *testing.T) {
	r := mountSite(t, WithDefaultPageConfig(HTMXPageConfig))

	hx := func(target string) http.Header {
		return http.Header{"Hx-Request": {"true"}, "Hx-Target": {target}}
	}
	{
		rec := serve(t, r, http.MethodGet, "/", hx("content"))
		if rec.Body.String() != "home content" {
			t.Errorf("expected partial, got %q", rec.Body.String())
		}
		if rec.Header().Get("HX-Retarget") != "" {
			t.Errorf("unexpected retarget %q", rec.Header().Get("HX-Retarget"))
		}
		if diff := cmp.Diff([]string{"HX-Request", "HX-Target"}, rec.Header().Values("Vary")); diff != "" {
			t.Errorf("Vary mismatch (-want +got):\n%s", diff)
		}
	}
	{
		// about has no Content, the whole page replaces the body
		rec := serve(t, r, http.MethodGet, "/about", hx("content"))
		if rec.Body.String() != "about About" {
			t.Errorf("expected full page, got %q", rec.Body.String())
		}
		if rec.Header().Get("HX-Retarget") != "body" {
			t.Errorf("expected HX-Retarget body, got %q", rec.Header().Get("HX-Retarget"))
		}
	}
	{
		rec := serve(t, r, http.MethodGet, "/", nil)
		if rec.Body.String() != "home page" {
			t.Errorf("expected full page without HTMX, got %q", rec.Body.String())
		}
		if rec.Header().Get("Vary") == "" {
			t.Error("expected full page to vary on HTMX headers")
		}
	}
}

func TestDefaultPageConfigError(t *testing.T) {
	r := mountSite(t, WithDefaultPageConfig(func(*http.Request) (string, error) {
		return "", errors.New("bad view")
	}))
	rec := serve(t, r, http.MethodGet, "/", nil)
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, rec.Code)
	}
}

type contentOnlyPage struct{}

func (contentOnlyPage) Content() templ.Component { return testComponent{""} }

func TestMountPagesErrors(t *testing.T) {
	type noPage struct {
		c contentOnlyPage `route:"/c"`
	}
	if err := New().MountPages(NewRouter(nil), noPage{}, "/", ""); err == nil {
		t.Error("expected error for page without Page component")
	}
	if err := New().MountPages(NewRouter(nil), 42, "/", ""); err == nil {
		t.Error("expected error for non-struct page")
	}
}
