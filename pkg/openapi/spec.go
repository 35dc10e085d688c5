package openapi

import (
	"encoding/json"
	"net/http"
)

// Version is the OpenAPI version emitted by NewSpec.
const Version = "3.1.0"

// BearerScheme is the components key of the session token scheme.
const BearerScheme = "bearerAuth"

// NewSpec creates an empty document with shared components.
func NewSpec(title, version string) *Spec {
	return &Spec{
		OpenAPI:    Version,
		Info:       &Info{Title: title, Version: version},
		Paths:      make(map[string]*PathItem),
		Components: NewComponents(),
	}
}

// NewComponents returns the error schema, the common error responses, and
// the bearer token scheme.
func NewComponents() *Components {
	errorResponse := func(description string) *Response {
		return ResponseJSON(description, "Error")
	}

	return &Components{
		Schemas: map[string]*Schema{
			"Error": {
				Type: "object",
				Properties: map[string]*Property{
					"code":    {Type: "integer", Description: "HTTP status code"},
					"message": {Type: "string", Description: "Human-readable error"},
				},
				Required: []string{"code", "message"},
			},
			"PageRequest": {
				Type: "object",
				Properties: map[string]*Property{
					"page":      {Type: "integer", Description: "Page number (1-indexed)", Example: 1},
					"page_size": {Type: "integer", Description: "Results per page", Example: 20},
				},
			},
		},
		Responses: map[string]*Response{
			"BadRequest":      errorResponse("Invalid request"),
			"Unauthorized":    errorResponse("Session expired or invalid"),
			"NotFound":        errorResponse("Resource not found"),
			"Conflict":        errorResponse("Resource already exists"),
			"PayloadTooLarge": errorResponse("Request body too large"),
		},
		SecuritySchemes: map[string]*SecurityScheme{
			BearerScheme: {
				Type:         "http",
				Scheme:       "bearer",
				BearerFormat: "JWT",
				Description:  "Session token returned by login",
			},
		},
	}
}

// AddSchemas merges schemas into the components, replacing same-named entries.
func (c *Components) AddSchemas(schemas map[string]*Schema) {
	for name, schema := range schemas {
		c.Schemas[name] = schema
	}
}

// AddResponses merges responses into the components, replacing same-named entries.
func (c *Components) AddResponses(responses map[string]*Response) {
	for name, resp := range responses {
		c.Responses[name] = resp
	}
}

// AddOperation binds op to method on path. Methods without a PathItem slot
// are ignored.
func (s *Spec) AddOperation(path, method string, op *Operation) {
	item := s.Paths[path]
	if item == nil {
		item = &PathItem{}
		s.Paths[path] = item
	}

	switch method {
	case http.MethodGet:
		item.Get = op
	case http.MethodPost:
		item.Post = op
	case http.MethodDelete:
		item.Delete = op
	}
}

// MarshalJSON renders the document as indented JSON.
func MarshalJSON(spec *Spec) ([]byte, error) {
	return json.MarshalIndent(spec, "", "  ")
}
