package auth

import "github.com/JaimeStill/lox/pkg/openapi"

type spec struct {
	Register      *openapi.Operation
	Login         *openapi.Operation
	Logout        *openapi.Operation
	Me            *openapi.Operation
	Sessions      *openapi.Operation
	RevokeSession *openapi.Operation
}

// Spec contains OpenAPI operation definitions for all auth endpoints.
var Spec = spec{
	Register: &openapi.Operation{
		Summary:     "Register account",
		Description: "Creates an account with a unique username and email",
		RequestBody: openapi.RequestBodyJSON("RegisterCommand", true),
		Responses: map[int]*openapi.Response{
			201: openapi.ResponseJSON("Account registered", "RegisteredMessage"),
			400: openapi.ResponseRef("BadRequest"),
			409: openapi.ResponseRef("Conflict"),
			413: openapi.ResponseRef("PayloadTooLarge"),
		},
	},
	Login: &openapi.Operation{
		Summary:     "Log in",
		Description: "Verifies credentials and opens a session. Every failure is reported as 401.",
		RequestBody: openapi.RequestBodyJSON("LoginRequest", true),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Session token", "LoginResponse"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Logout: &openapi.Operation{
		Summary:     "Log out",
		Description: "Revokes the session that authenticated the request",
		Security:    openapi.Bearer(),
		Responses: map[int]*openapi.Response{
			204: {Description: "Session revoked"},
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	Me: &openapi.Operation{
		Summary:  "Current account",
		Security: openapi.Bearer(),
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Account of the session", "Account"),
			401: openapi.ResponseRef("Unauthorized"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
	Sessions: &openapi.Operation{
		Summary:     "List sessions",
		Description: "Returns the caller's sessions, newest first. Tokens are never included.",
		Security:    openapi.Bearer(),
		Parameters: []*openapi.Parameter{
			openapi.QueryParam("page", "integer", "Page number (1-indexed)", false),
			openapi.QueryParam("page_size", "integer", "Results per page", false),
		},
		Responses: map[int]*openapi.Response{
			200: openapi.ResponseJSON("Paginated list of sessions", "SessionPageResult"),
			401: openapi.ResponseRef("Unauthorized"),
		},
	},
	RevokeSession: &openapi.Operation{
		Summary:     "Revoke session",
		Description: "Ends one of the caller's sessions",
		Security:    openapi.Bearer(),
		Parameters: []*openapi.Parameter{
			openapi.PathParam("id", "Session UUID"),
		},
		Responses: map[int]*openapi.Response{
			204: {Description: "Session revoked"},
			400: openapi.ResponseRef("BadRequest"),
			401: openapi.ResponseRef("Unauthorized"),
			404: openapi.ResponseRef("NotFound"),
		},
	},
}

// Schemas returns the component schemas referenced by Spec.
func Schemas() map[string]*openapi.Schema {
	return map[string]*openapi.Schema{
		"RegisterCommand": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"username": {Type: "string", Description: "3 to 128 characters", Example: "lox"},
				"email":    {Type: "string", Format: "email", Example: "lox@example.com"},
				"password": {Type: "string", Format: "password", Description: "8 characters to 72 bytes"},
			},
			Required: []string{"username", "email", "password"},
		},
		"RegisteredMessage": {
			Type:        "string",
			Description: RegisteredMessage,
		},
		"LoginRequest": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"email":       {Type: "string", Format: "email"},
				"password":    {Type: "string", Format: "password"},
				"device_name": {Type: "string", Description: "Defaults to the User-Agent header"},
			},
			Required: []string{"email", "password"},
		},
		"LoginResponse": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"token": {Type: "string", Description: "Bearer token for authenticated endpoints"},
			},
			Required: []string{"token"},
		},
		"Account": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"id":                   {Type: "string", Format: "uuid"},
				"username":             {Type: "string"},
				"email":                {Type: "string", Format: "email"},
				"date_of_registration": {Type: "string", Format: "date-time"},
				"time_of_last_online":  {Type: "string", Format: "date-time"},
			},
		},
		"Session": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"id":          {Type: "string", Format: "uuid"},
				"account_id":  {Type: "string", Format: "uuid"},
				"device_name": {Type: "string"},
				"ip":          {Type: "string"},
				"created_at":  {Type: "string", Format: "date-time"},
				"expires_at":  {Type: "string", Format: "date-time"},
			},
		},
		"SessionPageResult": {
			Type: "object",
			Properties: map[string]*openapi.Property{
				"data":        {Type: "array", Items: openapi.SchemaRef("Session")},
				"total":       {Type: "integer"},
				"page":        {Type: "integer"},
				"page_size":   {Type: "integer"},
				"total_pages": {Type: "integer"},
			},
		},
	}
}
