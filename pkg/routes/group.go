// Package routes declares HTTP routes as data and registers them on a mux.
package routes

import (
	"net/http"

	"github.com/JaimeStill/lox/pkg/openapi"
)

// Group represents a collection of routes under a common URL prefix.
// Groups can contain child groups for hierarchical route organization.
type Group struct {
	Prefix      string
	Tags        []string
	Description string
	Routes      []Route
	Children    []Group
}

// Route is a single method and pattern bound to a handler.
// An empty Pattern matches the group prefix itself. Routes without an
// OpenAPI operation are served but left out of the document.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
	OpenAPI *openapi.Operation
}

// AddToSpec adds the documented routes of g and its children to spec under
// basePath. Operations without tags inherit the group's.
func (g Group) AddToSpec(basePath string, spec *openapi.Spec) {
	prefix := basePath + g.Prefix
	for _, r := range g.Routes {
		if r.OpenAPI == nil {
			continue
		}

		op := *r.OpenAPI
		if len(op.Tags) == 0 {
			op.Tags = g.Tags
		}

		path := prefix + r.Pattern
		if path == "" {
			path = "/"
		}
		spec.AddOperation(path, r.Method, &op)
	}
	for _, child := range g.Children {
		child.AddToSpec(prefix, spec)
	}
}

// Register adds every route of groups to mux as "METHOD prefix+pattern".
func Register(mux *http.ServeMux, groups ...Group) {
	for _, g := range groups {
		register(mux, "", g)
	}
}

// Patterns lists the mux patterns Register would produce, in order.
func Patterns(groups ...Group) []string {
	var out []string
	for _, g := range groups {
		out = collect(out, "", g)
	}
	return out
}

func register(mux *http.ServeMux, parent string, g Group) {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		mux.HandleFunc(pattern(prefix, r), r.Handler)
	}
	for _, child := range g.Children {
		register(mux, prefix, child)
	}
}

func collect(out []string, parent string, g Group) []string {
	prefix := parent + g.Prefix
	for _, r := range g.Routes {
		out = append(out, pattern(prefix, r))
	}
	for _, child := range g.Children {
		out = collect(out, prefix, child)
	}
	return out
}

func pattern(prefix string, r Route) string {
	path := prefix + r.Pattern
	if path == "" {
		path = "/"
	}
	if path == "/" {
		path = "/{$}"
	}
	return r.Method + " " + path
}
