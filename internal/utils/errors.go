package utils

import "errors"

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons. Controllers match them with errors.Is.
var (
	ErrInvalidDisposition = errors.New("invalid_disposition")
	ErrNoNumbersAvailable = errors.New("no_numbers_available")
	ErrInvalidPhone       = errors.New("invalid_phone")
	ErrTooManyNumbers     = errors.New("too_many_numbers")

	// For external lookups (Twilio)
	ErrExternalServiceFailure = errors.New("external_service_failure")
)
