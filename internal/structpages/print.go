package structpages

import (
	"fmt"
	"strings"
	"text/tabwriter"
)

// PrintRoutes parses page like MountPages would and lists the routes that get
// a handler, one "METHOD PATH TITLE" line each, in declaration order.
func PrintRoutes(route string, page any, initArgs ...any) (string, error) {
	pc, err := parsePageTree(route, page, initArgs...)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 4, 2, ' ', 0)
	for node := range pc.root.All() {
		if !node.Serves() {
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", node.Method, node.FullRoute(), node.Title)
	}
	if err := tw.Flush(); err != nil {
		return "", err
	}
	return sb.String(), nil
}
