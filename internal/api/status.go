package api

import (
	"net/http"

	"github.com/JaimeStill/lox/pkg/handlers"
	"github.com/JaimeStill/lox/pkg/openapi"
	"github.com/JaimeStill/lox/pkg/routes"
)

// Status is the body of GET on the module root.
type Status struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func statusRoutes(version string) routes.Group {
	return routes.Group{
		Tags:        []string{"Status"},
		Description: "Service status",
		Routes: []routes.Route{
			{
				Method:  "GET",
				Pattern: "",
				Handler: func(w http.ResponseWriter, r *http.Request) {
					handlers.RespondJSON(w, http.StatusOK, Status{Status: "Ok!", Version: version})
				},
				OpenAPI: &openapi.Operation{
					Summary: "Service status",
					Responses: map[int]*openapi.Response{
						200: openapi.ResponseJSON("Service is up", "Status"),
					},
				},
			},
		},
	}
}

func statusSchemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"Status": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"status":  {Type: "string", Example: "Ok!"},
				"version": {Type: "string"},
			},
			Required: []string{"status", "version"},
		},
	}
}
