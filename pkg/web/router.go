package web

import (
	"io/fs"
	"net/http"
	"path"

	"github.com/JaimeStill/lox/pkg/routes"
)

// Router wraps http.ServeMux with a fallback for requests no pattern matches.
type Router struct {
	mux      *http.ServeMux
	fallback http.Handler
}

// NewRouter creates a Router whose fallback is http.NotFound.
func NewRouter() *Router {
	return &Router{
		mux:      http.NewServeMux(),
		fallback: http.NotFoundHandler(),
	}
}

// SetFallback sets the handler for unmatched requests.
func (r *Router) SetFallback(h http.HandlerFunc) {
	r.fallback = h
}

// Handle registers handler for pattern.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// HandleFunc registers handler for pattern.
func (r *Router) HandleFunc(pattern string, handler http.HandlerFunc) {
	r.mux.HandleFunc(pattern, handler)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if _, pattern := r.mux.Handler(req); pattern == "" {
		r.fallback.ServeHTTP(w, req)
		return
	}
	r.mux.ServeHTTP(w, req)
}

// PublicFileRoutes returns GET routes serving each named file from dir in
// fsys at the root of the module.
func PublicFileRoutes(fsys fs.FS, dir string, files ...string) []routes.Route {
	out := make([]routes.Route, 0, len(files))
	for _, name := range files {
		out = append(out, routes.Route{
			Method:  http.MethodGet,
			Pattern: "/" + name,
			Handler: ServeEmbeddedFile(fsys, path.Join(dir, name)),
		})
	}
	return out
}

// ServeEmbeddedFile serves a single file from fsys.
func ServeEmbeddedFile(fsys fs.FS, name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, fsys, name)
	}
}
