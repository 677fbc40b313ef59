// Package structpages routes pages declared as struct fields with route tags.
//
// A field tag has the form `route:"[METHOD] PATH [Title...]"`. Each tagged
// field becomes a PageNode; methods on the field type that return a
// templ.Component are its components, and types implementing http.Handler are
// mounted as-is. Dependencies passed to MountPages are injected into page
// methods by type.
package structpages
