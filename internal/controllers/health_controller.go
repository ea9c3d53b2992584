package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/poofware/phone-validator-service/internal/app"
	"github.com/poofware/phone-validator-service/internal/dtos"
	"github.com/poofware/phone-validator-service/internal/utils"
)

type pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	db pinger
}

func NewHealthController(a *app.App) *HealthController {
	return &HealthController{db: a.DB}
}

func (c *HealthController) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := c.db.Ping(ctx); err != nil {
		utils.RespondErrorWithCode(w, http.StatusServiceUnavailable, utils.ErrCodeInternal, "Database unreachable", nil, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.HealthCheckResponse{Status: "OK"})
}
