package dtos

// MarkNumberRequest is the body of POST /mark-number.
type MarkNumberRequest struct {
	SHA256ID     string `json:"sha256_id" validate:"required"`
	MobileNumber string `json:"mobile_number" validate:"required"`
	Disposition  string `json:"disposition" validate:"required"`
	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	Source       string `json:"source,omitempty"`
	AgentID      string `json:"agent_id,omitempty"`
}

type MarkNumberResponse struct {
	Status        string `json:"status"`
	UpdatedStatus string `json:"updated_status"`
}

// NextNumberResponse answers GET /next-number. Status is "verified" when
// the number came from validated_phones and "candidate" otherwise.
type NextNumberResponse struct {
	Status       string  `json:"status"`
	MobileNumber string  `json:"mobile_number"`
	FirstName    *string `json:"first_name"`
	LastName     *string `json:"last_name"`
}

const (
	StatusSuccess   = "success"
	StatusVerified  = "verified"
	StatusCandidate = "candidate"
)
