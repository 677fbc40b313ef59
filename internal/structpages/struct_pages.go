package structpages

import (
	"fmt"
	"net/http"
	"reflect"

	"github.com/a-h/templ"
)

// MiddlewareFunc wraps the handler of a page. It receives the page node so it
// can tell which page it serves.
type MiddlewareFunc func(http.Handler, *PageNode) http.Handler

// ErrorHandler answers a request whose page failed to render.
type ErrorHandler func(http.ResponseWriter, *http.Request, error)

// PageConfigFunc picks the component that renders a request.
type PageConfigFunc func(*http.Request) (string, error)

// StructPages mounts page trees on a Router.
type StructPages struct {
	onError           ErrorHandler
	middlewares       []MiddlewareFunc
	defaultPageConfig PageConfigFunc
}

// Option configures StructPages.
type Option func(*StructPages)

// New returns a StructPages whose error handler answers 500 Internal Server
// Error unless WithErrorHandler is given.
func New(options ...Option) *StructPages {
	sp := &StructPages{
		onError: func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		},
	}
	for _, opt := range options {
		opt(sp)
	}
	return sp
}

func WithErrorHandler(onError ErrorHandler) Option {
	return func(sp *StructPages) {
		sp.onError = onError
	}
}

// WithMiddlewares appends middlewares applied to every page. The last one is
// the outermost.
func WithMiddlewares(middlewares ...MiddlewareFunc) Option {
	return func(sp *StructPages) {
		sp.middlewares = append(sp.middlewares, middlewares...)
	}
}

// WithDefaultPageConfig sets the component selector. Without one every request
// gets the Page component.
func WithDefaultPageConfig(config PageConfigFunc) Option {
	return func(sp *StructPages) {
		sp.defaultPageConfig = config
	}
}

// MountPages parses page and registers a handler for every node that has
// components or implements http.Handler. initArgs are injected by type into
// Init, component and Middlewares methods.
func (sp *StructPages) MountPages(router Router, page any, route, title string, initArgs ...any) error {
	pc, err := parsePageTree(route, page, initArgs...)
	if err != nil {
		return err
	}
	if title != "" {
		pc.root.Title = title
	}
	return sp.registerPageItem(router, pc, pc.root)
}

func (sp *StructPages) registerPageItem(router Router, pc *parseContext, page *PageNode) error {
	if page.Route == "" {
		return fmt.Errorf("page item route is empty: %s", page.Name)
	}
	if page.Children != nil {
		var childErr error
		router.Route(page.Route, func(router Router) {
			for _, child := range page.Children {
				if err := sp.registerPageItem(router, pc, child); err != nil {
					childErr = err
					return
				}
			}
		})
		if childErr != nil {
			return childErr
		}
	}
	handler, err := sp.buildHandler(page, pc)
	if err != nil {
		return err
	}
	if handler == nil {
		return nil
	}
	if page.Middlewares != nil {
		res, err := pc.callMethod(page, page.Middlewares)
		if err != nil {
			return fmt.Errorf("error calling Middlewares method on %s: %w", page.Name, err)
		}
		res, err = extractError(res)
		if err != nil {
			return fmt.Errorf("error calling Middlewares method on %s: %w", page.Name, err)
		}
		if len(res) != 1 {
			return fmt.Errorf("Middlewares method on %s did not return single result", page.Name)
		}
		middlewares, ok := res[0].Interface().([]MiddlewareFunc)
		if !ok {
			return fmt.Errorf("Middlewares method on %s did not return []MiddlewareFunc", page.Name)
		}
		for _, mw := range middlewares {
			handler = mw(handler, page)
		}
	}
	for _, mw := range sp.middlewares {
		handler = mw(handler, page)
	}
	router.HandleMethod(page.Method, page.Route, handler)
	return nil
}

func (sp *StructPages) buildHandler(page *PageNode, pc *parseContext) (http.Handler, error) {
	if h := asHandler(page.Value); h != nil {
		return h, nil
	}
	if len(page.Components) == 0 {
		return nil, nil
	}
	if page.Components[pageComponent] == nil {
		return nil, fmt.Errorf("page item %s does not have a Page component", page.Name)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		comp, err := sp.selectComponent(w, r, page, pc)
		if err != nil {
			sp.onError(w, r, err)
			return
		}
		sp.render(w, r, comp)
	}), nil
}

// selectComponent resolves the component for r through the default page
// config, or Page. An HTMX request asking for a fragment the page lacks gets
// the full page retargeted at the body.
func (sp *StructPages) selectComponent(w http.ResponseWriter, r *http.Request, page *PageNode, pc *parseContext) (templ.Component, error) {
	if sp.defaultPageConfig == nil {
		return pc.callComponentMethod(page, page.Components[pageComponent])
	}

	// the same URL answers with different components
	w.Header().Add("Vary", "HX-Request")
	w.Header().Add("Vary", "HX-Target")
	name, err := sp.defaultPageConfig(r)
	if err != nil {
		return nil, fmt.Errorf("error calling default page config on %s: %w", page.Name, err)
	}
	method, ok := page.Components[name]
	if !ok {
		if name == pageComponent {
			return nil, fmt.Errorf("page %s has no component %s", page.Name, name)
		}
		w.Header().Set("HX-Retarget", "body")
		method = page.Components[pageComponent]
	}
	return pc.callComponentMethod(page, method)
}

func (sp *StructPages) render(w http.ResponseWriter, r *http.Request, comp templ.Component) {
	bw := newBuffered(w)
	if err := comp.Render(r.Context(), bw); err != nil {
		bw.discard()
		w.Header().Del("HX-Retarget")
		sp.onError(w, r, err)
		return
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	// Nothing useful can be sent once the body write fails.
	_ = bw.close()
}

func asHandler(v reflect.Value) http.Handler {
	if h, ok := v.Interface().(http.Handler); ok {
		return h
	}
	return nil
}
