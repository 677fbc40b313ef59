package structpages

import (
	"net/http"
	"strings"

	htmx "github.com/angelofallars/htmx-go"
)

// HTMXPageConfig selects the component named after the HX-Target header of
// an HTMX request, and Page otherwise:
//   - HX-Target: "content" -> Content()
//   - HX-Target: "task-list" -> TaskList()
//   - not an HTMX request -> Page()
//
// Install it for every page with WithDefaultPageConfig.
func HTMXPageConfig(r *http.Request) (string, error) {
	if htmx.IsHTMX(r) {
		if target, ok := htmx.GetTarget(r); ok {
			if name := mixedCase(strings.TrimPrefix(target, "#")); name != "" {
				return name, nil
			}
		}
	}
	return pageComponent, nil
}

const pageComponent = "Page"

// mixedCase turns a hyphenated element id into a method name.
func mixedCase(s string) string {
	if s == "" || strings.ContainsAny(s, " \t") {
		return ""
	}
	parts := strings.Split(s, "-")
	for i, part := range parts {
		if part == "" {
			continue
		}
		parts[i] = strings.ToUpper(part[:1]) + part[1:]
	}
	return strings.Join(parts, "")
}
