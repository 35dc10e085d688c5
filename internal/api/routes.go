package api

import (
	"net/http"

	"github.com/JaimeStill/lox/internal/auth"
	"github.com/JaimeStill/lox/internal/config"
	"github.com/JaimeStill/lox/pkg/handlers"
	"github.com/JaimeStill/lox/pkg/routes"
	"github.com/JaimeStill/lox/web/scalar"
)

func registerRoutes(mux *http.ServeMux, cfg *config.Config, runtime *Runtime, domain *Domain) error {
	authHandler := auth.NewHandler(domain.Accounts, domain.Sessions, runtime.Logger, cfg.API.Pagination)

	documented := []routes.Group{
		statusRoutes(runtime.Version),
		authHandler.Routes(),
	}

	doc, err := buildSpec(cfg, documented...)
	if err != nil {
		return err
	}

	routes.Register(mux, documented...)
	routes.Register(mux, specRoutes(doc), scalar.Routes())

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		handlers.RespondJSON(w, http.StatusNotFound, handlers.ErrorBody{
			Code:    http.StatusNotFound,
			Message: "Not found",
		})
	})
	return nil
}
