package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/poofware/phone-validator-service/internal/middleware"
	"github.com/poofware/phone-validator-service/internal/routes"
)

// NewRouter wires every endpoint of the service.
func NewRouter(health *HealthController, disp *DispositionController) *mux.Router {
	router := mux.NewRouter()
	router.Use(middleware.RequestLogger)

	router.HandleFunc(routes.Health, health.HealthCheckHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.MarkNumber, disp.MarkNumberHandler).Methods(http.MethodPost)
	router.HandleFunc(routes.NextNumber, disp.NextNumberHandler).Methods(http.MethodGet)
	router.HandleFunc(routes.SeedCandidates, disp.SeedCandidatesHandler).Methods(http.MethodPost)

	return router
}
