package api

import (
	"fmt"
	"net/http"

	"github.com/JaimeStill/lox/internal/auth"
	"github.com/JaimeStill/lox/internal/config"
	"github.com/JaimeStill/lox/pkg/openapi"
	"github.com/JaimeStill/lox/pkg/routes"
)

// buildSpec generates the OpenAPI document for groups mounted under the API
// base path.
func buildSpec(cfg *config.Config, groups ...routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.Info.Description = cfg.API.OpenAPI.Description
	spec.Components.AddSchemas(statusSchemas())
	spec.Components.AddSchemas(auth.Schemas())

	for _, g := range groups {
		g.AddToSpec(cfg.API.BasePath, spec)
	}

	data, err := openapi.MarshalJSON(spec)
	if err != nil {
		return nil, fmt.Errorf("marshal openapi: %w", err)
	}
	return data, nil
}

func specRoutes(doc []byte) routes.Group {
	return routes.Group{
		Description: "OpenAPI document",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "/openapi.json", Handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusOK)
				w.Write(doc)
			}},
		},
	}
}
