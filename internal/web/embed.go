// Package web carries the templates and static assets built into the binary.
package web

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.html static/*
var content embed.FS

// Templates returns the embedded page templates.
func Templates() fs.FS {
	return sub("templates")
}

// Static returns the embedded static assets.
func Static() fs.FS {
	return sub("static")
}

func sub(dir string) fs.FS {
	fsys, err := fs.Sub(content, dir)
	if err != nil {
		panic("web: embedded directory " + dir + " missing: " + err.Error())
	}
	return fsys
}
