package models

import "time"

// ValidatedPhone holds the single verified number for an identity.
//
// WrongNumber and Disconnected are persisted as false and never flipped by
// any current code path. PositiveInteraction only ever goes false -> true.
type ValidatedPhone struct {
	SHA256ID            string    `json:"sha256_id"`
	MobileNumber        string    `json:"mobile_number"`
	FirstName           *string   `json:"first_name,omitempty"`
	LastName            *string   `json:"last_name,omitempty"`
	WrongNumber         bool      `json:"wrong_number"`
	Disconnected        bool      `json:"disconnected"`
	PositiveInteraction bool      `json:"positive_interaction"`
	VerifiedAt          time.Time `json:"verified_at"`
}
