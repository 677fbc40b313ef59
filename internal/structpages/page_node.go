package structpages

import (
	"iter"
	"net/http"
	"path"
	"reflect"
)

// PageNode is one parsed entry of the page tree.
type PageNode struct {
	Name        string
	Title       string
	Method      string
	Route       string
	Value       reflect.Value
	Components  map[string]*reflect.Method
	Middlewares *reflect.Method
	Parent      *PageNode
	Children    []*PageNode
}

// FullRoute joins the routes of all ancestors with this node's route.
func (pn *PageNode) FullRoute() string {
	if pn.Parent == nil {
		return pn.Route
	}
	return path.Join(pn.Parent.FullRoute(), pn.Route)
}

// All yields the node and its descendants, depth first.
func (pn *PageNode) All() iter.Seq[*PageNode] {
	return func(yield func(*PageNode) bool) {
		pn.walk(yield)
	}
}

func (pn *PageNode) walk(yield func(*PageNode) bool) bool {
	if !yield(pn) {
		return false
	}
	for _, child := range pn.Children {
		if !child.walk(yield) {
			return false
		}
	}
	return true
}

// Siblings returns the children of the node's parent, including the node.
// A root node is its own only sibling.
func (pn *PageNode) Siblings() []*PageNode {
	if pn.Parent == nil {
		return []*PageNode{pn}
	}
	return pn.Parent.Children
}

// Serves reports whether the node gets a handler when mounted.
func (pn *PageNode) Serves() bool {
	return len(pn.Components) > 0 || pn.Value.Type().Implements(handlerType)
}

var handlerType = reflect.TypeOf((*http.Handler)(nil)).Elem()
