// Package pages declares the routes of the site and the template each one
// renders.
package pages

import (
	"github.com/a-h/templ"

	"github.com/jackielii/taskboard/internal/structpages"
	"github.com/jackielii/taskboard/internal/views"
)

// Pages is the route table. Every page renders the template of the same name
// with no request data.
type Pages struct {
	index    indexPage    `route:"GET / Home"`
	search   searchPage   `route:"GET /search Search"`
	calendar calendarPage `route:"GET /calendar Calendar"`
	settings settingsPage `route:"GET /settings Settings"`
	static   staticPage   `route:"GET /static/*"`
}

// Template names, one per page.
const (
	IndexTemplate    = "index"
	SearchTemplate   = "search"
	CalendarTemplate = "calendar"
	SettingsTemplate = "settings"
)

// Templates lists every template the route table needs.
var Templates = []string{IndexTemplate, SearchTemplate, CalendarTemplate, SettingsTemplate}

type indexPage struct{}

func (indexPage) Page(v *views.Views, pn *structpages.PageNode) templ.Component {
	return v.Page(IndexTemplate, pageData(pn))
}

func (indexPage) Content(v *views.Views, pn *structpages.PageNode) templ.Component {
	return v.Partial(IndexTemplate, views.FragmentBlock, pageData(pn))
}

type searchPage struct{}

func (searchPage) Page(v *views.Views, pn *structpages.PageNode) templ.Component {
	return v.Page(SearchTemplate, pageData(pn))
}

func (searchPage) Content(v *views.Views, pn *structpages.PageNode) templ.Component {
	return v.Partial(SearchTemplate, views.FragmentBlock, pageData(pn))
}

type calendarPage struct{}

func (calendarPage) Page(v *views.Views, pn *structpages.PageNode) templ.Component {
	return v.Page(CalendarTemplate, pageData(pn))
}

func (calendarPage) Content(v *views.Views, pn *structpages.PageNode) templ.Component {
	return v.Partial(CalendarTemplate, views.FragmentBlock, pageData(pn))
}

type settingsPage struct{}

func (settingsPage) Page(v *views.Views, pn *structpages.PageNode) templ.Component {
	return v.Page(SettingsTemplate, pageData(pn))
}

func (settingsPage) Content(v *views.Views, pn *structpages.PageNode) templ.Component {
	return v.Partial(SettingsTemplate, views.FragmentBlock, pageData(pn))
}

// pageData is derived from the page tree alone, so the output of a page never
// depends on the request.
func pageData(pn *structpages.PageNode) views.Data {
	data := views.Data{Title: pn.Title, Path: pn.FullRoute()}
	for _, sibling := range pn.Siblings() {
		if sibling.Title == "" {
			continue
		}
		data.Nav = append(data.Nav, views.NavItem{
			Title:  sibling.Title,
			URL:    sibling.FullRoute(),
			Active: sibling == pn,
		})
	}
	return data
}
