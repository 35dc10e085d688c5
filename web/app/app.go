// Package app provides the web application module with embedded templates and assets.
package app

import (
	"embed"
	"net/http"

	"github.com/JaimeStill/lox/pkg/module"
	"github.com/JaimeStill/lox/pkg/web"
)

//go:embed public/*
var publicFS embed.FS

//go:embed server/layouts/*
var layoutFS embed.FS

//go:embed server/views/*
var viewFS embed.FS

var publicFiles = []string{
	"app.css",
	"app.js",
	"favicon.svg",
}

// NewModule creates the app module configured for the given base paths.
// It fails when any page has malformed metadata or a broken view.
func NewModule(basePath, apiBasePath string) (*module.Module, error) {
	pages := Pages(apiBasePath)

	ts, err := web.NewTemplateSet(
		layoutFS,
		viewFS,
		"server/layouts/*.html",
		"server/views",
		basePath,
		append(pages, notFound),
	)
	if err != nil {
		return nil, err
	}

	return module.New(basePath, buildRouter(ts, pages)), nil
}

func buildRouter(ts *web.TemplateSet, pages []web.PageDef) http.Handler {
	r := web.NewRouter()
	r.SetFallback(ts.ErrorHandler(layout, notFound, http.StatusNotFound))

	for _, page := range pages {
		r.HandleFunc("GET "+page.Route, ts.PageHandler(layout, page))
	}

	for _, route := range web.PublicFileRoutes(publicFS, "public", publicFiles...) {
		r.HandleFunc(route.Method+" "+route.Pattern, route.Handler)
	}

	return r
}
