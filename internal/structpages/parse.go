package structpages

import (
	"cmp"
	"fmt"
	"net/http"
	"reflect"
	"runtime"
	"slices"
	"strings"

	"github.com/a-h/templ"
)

type parseContext struct {
	root *PageNode
	args argRegistry
}

func parsePageTree(route string, page any, args ...any) (*parseContext, error) {
	pc := &parseContext{args: make(argRegistry)}
	for _, v := range args {
		if err := pc.args.add(v); err != nil {
			return nil, fmt.Errorf("error adding argument to registry: %w", err)
		}
	}
	root, err := pc.parsePageTree(route, "", page)
	if err != nil {
		return nil, err
	}
	pc.root = root
	return pc, nil
}

func (p *parseContext) parsePageTree(route, fieldName string, page any) (*PageNode, error) {
	st := reflect.TypeOf(page) // struct type
	pt := reflect.TypeOf(page) // pointer type
	if st.Kind() == reflect.Ptr {
		st = st.Elem()
	} else {
		pt = reflect.PointerTo(st)
	}
	if st.Kind() != reflect.Struct {
		return nil, fmt.Errorf("page %s: expected struct, got %s", cmp.Or(fieldName, st.String()), st.Kind())
	}
	item := &PageNode{Value: reflect.ValueOf(page), Name: cmp.Or(fieldName, st.Name())}
	item.Method, item.Route, item.Title = parseTag(route)

	for i := range st.NumField() {
		field := st.Field(i)
		route, ok := field.Tag.Lookup("route")
		if !ok {
			continue
		}
		typ := field.Type
		if typ.Kind() == reflect.Ptr {
			typ = typ.Elem()
		}
		child, err := p.parsePageTree(route, field.Name, reflect.New(typ).Interface())
		if err != nil {
			return nil, err
		}
		child.Parent = item
		item.Children = append(item.Children, child)
	}

	for _, t := range []reflect.Type{st, pt} {
		for i := range t.NumMethod() {
			method := t.Method(i)
			if isPromotedMethod(&method) {
				continue
			}
			if isComponent(&method) {
				if item.Components == nil {
					item.Components = make(map[string]*reflect.Method)
				}
				item.Components[method.Name] = &method
				continue
			}
			switch method.Name {
			case "Middlewares":
				item.Middlewares = &method
			case "Init":
				res, err := p.callMethod(item, &method)
				if err != nil {
					return nil, fmt.Errorf("error calling Init method on %s: %w", item.Name, err)
				}
				if _, err := extractError(res); err != nil {
					return nil, fmt.Errorf("error calling Init method on %s: %w", item.Name, err)
				}
			}
		}
	}
	return item, nil
}

// callMethod calls method with receiver pn.Value. Parameters not covered by
// args are filled with the node itself or with values from the registry.
func (p *parseContext) callMethod(pn *PageNode, method *reflect.Method, args ...reflect.Value) ([]reflect.Value, error) {
	v := pn.Value
	receiver := method.Type.In(0)
	if receiver.Kind() == reflect.Ptr && v.Kind() != reflect.Ptr {
		if !v.CanAddr() {
			ptr := reflect.New(v.Type())
			ptr.Elem().Set(v)
			v = ptr
		} else {
			v = v.Addr()
		}
	}
	if receiver.Kind() != reflect.Ptr && v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	in := make([]reflect.Value, method.Type.NumIn())
	in[0] = v
	filled := 1
	for i := range min(len(in)-1, len(args)) {
		in[i+1] = args[i]
		filled++
	}
	pnv := reflect.ValueOf(pn)
	for i := filled; i < len(in); i++ {
		argType := method.Type.In(i)
		switch argType {
		case pnv.Type():
			in[i] = pnv
		case pnv.Type().Elem():
			in[i] = pnv.Elem()
		default:
			val, ok := p.args.get(argType)
			if !ok {
				return nil, fmt.Errorf("method %s requires argument of type %s, but not found",
					formatMethod(method), argType.String())
			}
			in[i] = val
		}
	}
	return method.Func.Call(in), nil
}

func (p *parseContext) callComponentMethod(pn *PageNode, method *reflect.Method, args ...reflect.Value) (templ.Component, error) {
	results, err := p.callMethod(pn, method, args...)
	if err != nil {
		return nil, fmt.Errorf("error calling component method %s: %w", formatMethod(method), err)
	}
	results, err = extractError(results)
	if err != nil {
		return nil, err
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("method %s must return a single component, got %d results", formatMethod(method), len(results))
	}
	comp, ok := results[0].Interface().(templ.Component)
	if !ok || comp == nil {
		return nil, fmt.Errorf("method %s returned a nil component", formatMethod(method))
	}
	return comp, nil
}

// parseTag splits a route tag into method, path and title.
// "GET /search Search page" -> ("GET", "/search", "Search page")
// "/search" -> ("ALL", "/search", "")
func parseTag(route string) (method, path, title string) {
	method = methodAll
	parts := strings.Fields(route)
	switch len(parts) {
	case 0:
		return method, "/", ""
	case 1:
		return method, parts[0], ""
	}
	if m := strings.ToUpper(parts[0]); slices.Contains(validMethods, m) {
		return m, parts[1], strings.Join(parts[2:], " ")
	}
	return method, parts[0], strings.Join(parts[1:], " ")
}

const methodAll = "ALL"

var validMethods = []string{
	http.MethodGet,
	http.MethodHead,
	http.MethodPost,
	http.MethodPut,
	http.MethodPatch,
	http.MethodDelete,
	http.MethodConnect,
	http.MethodOptions,
	http.MethodTrace,
	methodAll,
}

var (
	componentType = reflect.TypeOf((*templ.Component)(nil)).Elem()
	errorType     = reflect.TypeOf((*error)(nil)).Elem()
)

func isComponent(m *reflect.Method) bool {
	out := m.Type.NumOut()
	if out == 2 && m.Type.Out(1) != errorType {
		return false
	}
	if out != 1 && out != 2 {
		return false
	}
	return m.Type.Out(0).Implements(componentType)
}

// isPromotedMethod reports methods promoted from an embedded type.
// https://github.com/golang/go/issues/73883
func isPromotedMethod(method *reflect.Method) bool {
	pc := method.Func.Pointer()
	file, line := runtime.FuncForPC(pc).FileLine(pc)
	return file == "<autogenerated>" && line == 1
}

func extractError(res []reflect.Value) ([]reflect.Value, error) {
	if len(res) == 0 || !res[len(res)-1].Type().AssignableTo(errorType) {
		return res, nil
	}
	last := res[len(res)-1].Interface()
	res = res[:len(res)-1]
	if last == nil {
		return res, nil
	}
	return res, last.(error)
}

func formatMethod(method *reflect.Method) string {
	if method == nil || method.Func == (reflect.Value{}) {
		return "<nil>"
	}
	return fmt.Sprintf("%s.%s", method.Type.In(0).String(), method.Name)
}
