// Package module provides prefix-mounted HTTP modules with their own middleware.
// A Module owns a single-level URL prefix (e.g. "/api") and strips it before
// delegating to its handler, so each module routes relative to its own root.
package module

import (
	"net/http"
	"strings"
)

// Module is an http.Handler mounted under a single-level prefix.
type Module struct {
	prefix      string
	handler     http.Handler
	middlewares []func(http.Handler) http.Handler
}

// New creates a Module for prefix. It panics if prefix is empty, lacks a
// leading slash, or spans more than one path segment.
func New(prefix string, handler http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err.Error())
	}
	return &Module{
		prefix:  prefix,
		handler: handler,
	}
}

// Prefix returns the mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// Use appends middleware. Middleware runs in registration order.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middlewares = append(m.middlewares, mw)
}

// Handler returns the module handler wrapped in its middleware.
func (m *Module) Handler() http.Handler {
	h := m.handler
	for i := len(m.middlewares) - 1; i >= 0; i-- {
		h = m.middlewares[i](h)
	}
	return h
}

// Serve strips the module prefix from the request path and serves it.
func (m *Module) Serve(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, m.prefix)
	if path == "" {
		path = "/"
	}

	req := r.Clone(r.Context())
	req.URL.Path = path
	req.URL.RawPath = ""

	m.Handler().ServeHTTP(w, req)
}

type prefixError string

func (e prefixError) Error() string { return string(e) }

func validatePrefix(prefix string) error {
	if prefix == "" {
		return prefixError("module prefix cannot be empty")
	}
	if !strings.HasPrefix(prefix, "/") {
		return prefixError("module prefix must start with /: " + prefix)
	}
	if strings.Count(prefix, "/") > 1 {
		return prefixError("module prefix must be a single path segment: " + prefix)
	}
	return nil
}
