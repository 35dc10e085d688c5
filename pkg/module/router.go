package module

import "net/http"

// Router dispatches requests to mounted modules and native handlers.
type Router struct {
	mux *http.ServeMux
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{mux: http.NewServeMux()}
}

// HandleNative registers a handler directly on the root mux, outside any module.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.mux.HandleFunc(pattern, handler)
}

// Mount registers m under its prefix, with and without a trailing slash.
func (r *Router) Mount(m *Module) {
	r.mux.HandleFunc(m.Prefix(), m.Serve)
	r.mux.HandleFunc(m.Prefix()+"/", m.Serve)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}
