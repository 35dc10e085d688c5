// Package scalar serves the interactive API reference. The page loads the
// document from openapi.json next to it.
package scalar

import (
	_ "embed"
	"net/http"

	"github.com/JaimeStill/lox/pkg/routes"
)

//go:embed index.html
var indexHTML []byte

func Handler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(indexHTML)
	}
}

func Routes() routes.Group {
	return routes.Group{
		Prefix:      "/docs",
		Description: "Interactive API reference",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: Handler()},
		},
	}
}
