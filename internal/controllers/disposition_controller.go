package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/poofware/phone-validator-service/internal/dtos"
	"github.com/poofware/phone-validator-service/internal/services"
	"github.com/poofware/phone-validator-service/internal/utils"
)

const msgNoNumbersAvailable = "No valid or untested numbers available"

type DispositionController struct {
	svc services.DispositionService
}

func NewDispositionController(s services.DispositionService) *DispositionController {
	return &DispositionController{svc: s}
}

var validate = validator.New()

// -----------------------------------------------------------------------------
// POST /mark-number
// -----------------------------------------------------------------------------
func (c *DispositionController) MarkNumberHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.MarkNumberRequest
	if !decodeAndValidate(w, r, &req, "Missing sha256_id, mobile_number, or disposition") {
		return
	}

	resp, err := c.svc.MarkNumber(r.Context(), req)
	if err != nil {
		if errors.Is(err, utils.ErrInvalidDisposition) {
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeInvalidDisposition, "Invalid disposition", nil, err,
			)
			return
		}
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to record disposition", nil, err,
		)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// -----------------------------------------------------------------------------
// GET /next-number?sha256_id=...
// -----------------------------------------------------------------------------
func (c *DispositionController) NextNumberHandler(w http.ResponseWriter, r *http.Request) {
	sha256ID := r.URL.Query().Get("sha256_id")
	if sha256ID == "" {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, "Missing sha256_id query parameter", nil,
		)
		return
	}

	resp, err := c.svc.NextNumber(r.Context(), sha256ID)
	if err != nil {
		if errors.Is(err, utils.ErrNoNumbersAvailable) {
			utils.RespondErrorWithCode(
				w, http.StatusNotFound, utils.ErrCodeNotFound, msgNoNumbersAvailable, nil,
			)
			return
		}
		utils.RespondErrorWithCode(
			w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to select next number", nil, err,
		)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// -----------------------------------------------------------------------------
// POST /seed-candidates
// -----------------------------------------------------------------------------
func (c *DispositionController) SeedCandidatesHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.SeedCandidatesRequest
	if !decodeAndValidate(w, r, &req, "Missing sha256_id or numbers array") {
		return
	}

	resp, err := c.svc.SeedCandidates(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrInvalidPhone):
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeInvalidPhone, err.Error(), nil, err,
			)
		case errors.Is(err, utils.ErrTooManyNumbers):
			utils.RespondErrorWithCode(
				w, http.StatusBadRequest, utils.ErrCodeValidation, err.Error(), nil, err,
			)
		case errors.Is(err, utils.ErrExternalServiceFailure):
			utils.RespondErrorWithCode(
				w, http.StatusBadGateway, utils.ErrCodeExternalServiceFailure, "Phone lookup unavailable", nil, err,
			)
		default:
			utils.RespondErrorWithCode(
				w, http.StatusInternalServerError, utils.ErrCodeInternal, "Failed to seed candidates", nil, err,
			)
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}

// -----------------------------------------------------------------------------
// shared helper
// -----------------------------------------------------------------------------
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any, validationMsg string) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err,
		)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		utils.RespondErrorWithCode(
			w, http.StatusBadRequest, utils.ErrCodeValidation, validationMsg, nil, err,
		)
		return false
	}
	return true
}
