// Package views renders the named page templates.
//
// A page template is the file <name>.html parsed together with layout.html.
// The layout is the document; the page file fills its blocks with define
// actions, at least "content". Templates are exposed as templ components.
package views

import (
	"context"
	"html/template"
	"io"
	"io/fs"
	"sync"

	"github.com/a-h/templ"
	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

const (
	// LayoutFile is parsed ahead of every page file.
	LayoutFile = "layout.html"
	// ContentBlock is the block every page file defines.
	ContentBlock = "content"
	// FragmentBlock is what HTMX navigation swaps in: the content plus the
	// title and an out-of-band nav bar, both defined by the layout.
	FragmentBlock = "fragment"
)

// Data is the value every template executes with.
type Data struct {
	Title string
	Path  string
	Nav   []NavItem
}

// NavItem is a link in the layout's navigation bar.
type NavItem struct {
	Title  string
	URL    string
	Active bool
}

// Views loads page templates from a file system.
type Views struct {
	fsys   fs.FS
	reload bool

	mu    sync.RWMutex
	cache map[string]*template.Template
}

// New returns Views reading from fsys. With reload set, templates are parsed
// again for every render.
func New(fsys fs.FS, reload bool) *Views {
	return &Views{
		fsys:   fsys,
		reload: reload,
		cache:  make(map[string]*template.Template),
	}
}

// Lookup returns the parsed template set of the named page.
func (v *Views) Lookup(name string) (*template.Template, error) {
	if !v.reload {
		v.mu.RLock()
		t, ok := v.cache[name]
		v.mu.RUnlock()
		if ok {
			return t, nil
		}
	}

	t, err := template.ParseFS(v.fsys, LayoutFile, name+".html")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load template %q", name)
	}
	if v.reload {
		return t, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if cached, ok := v.cache[name]; ok {
		return cached, nil
	}
	v.cache[name] = t
	return t, nil
}

// Check loads every named template and reports all that fail.
func (v *Views) Check(names ...string) error {
	var result *multierror.Error
	for _, name := range names {
		if _, err := v.Lookup(name); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// Page renders the whole document of the named page.
func (v *Views) Page(name string, data Data) templ.Component {
	return v.component(name, "", data)
}

// Partial renders one block of the named page.
func (v *Views) Partial(name, block string, data Data) templ.Component {
	return v.component(name, block, data)
}

// component defers the lookup to render time, so a missing template fails
// the request that needs it rather than the process.
func (v *Views) component(name, block string, data Data) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		t, err := v.Lookup(name)
		if err != nil {
			return err
		}
		if block != "" {
			if t = t.Lookup(block); t == nil {
				return errors.Errorf("template %q does not define %q", name, block)
			}
		}
		return errors.Wrapf(templ.FromGoHTML(t, data).Render(ctx, w), "failed to render template %q", name)
	})
}
