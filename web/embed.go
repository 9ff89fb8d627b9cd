// Package web holds the embedded HTML templates and static assets.
package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templates embed.FS

//go:embed static/*
var static embed.FS

func Templates() http.FileSystem { return sub(templates, "templates") }

func Static() http.FileSystem { return sub(static, "static") }

func sub(f embed.FS, dir string) http.FileSystem {
	s, err := fs.Sub(f, dir)
	if err != nil {
		panic(err)
	}
	return http.FS(s)
}
