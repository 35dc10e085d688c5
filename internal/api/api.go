// Package api assembles the JSON API module: domain systems, routes and the
// module middleware stack.
package api

import (
	"net/http"

	"github.com/JaimeStill/lox/internal/config"
	"github.com/JaimeStill/lox/internal/infrastructure"
	"github.com/JaimeStill/lox/pkg/middleware"
	"github.com/JaimeStill/lox/pkg/module"
)

// NewModule builds the API module and starts its background work.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)

	domain, err := NewDomain(runtime)
	if err != nil {
		return nil, err
	}
	if err := domain.Start(runtime); err != nil {
		return nil, err
	}

	return Assemble(cfg, runtime, domain)
}

// Assemble mounts domain routes, the OpenAPI document and the API reference
// under the API base path.
func Assemble(cfg *config.Config, runtime *Runtime, domain *Domain) (*module.Module, error) {
	mux := http.NewServeMux()
	if err := registerRoutes(mux, cfg, runtime, domain); err != nil {
		return nil, err
	}

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.Logger(runtime.Logger))
	m.Use(middleware.MaxBytes(cfg.API.MaxBodySizeBytes()))
	return m, nil
}
