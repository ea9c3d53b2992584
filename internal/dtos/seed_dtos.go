package dtos

// SeedCandidatesRequest is the body of POST /seed-candidates. Numbers are
// stored in order; the index becomes priority_order.
type SeedCandidatesRequest struct {
	SHA256ID  string   `json:"sha256_id" validate:"required"`
	Numbers   []string `json:"numbers" validate:"required,min=1,max=50,dive,required"`
	FirstName string   `json:"first_name,omitempty"`
	LastName  string   `json:"last_name,omitempty"`
	Source    string   `json:"source,omitempty"`
}

type SeedCandidatesResponse struct {
	Status        string `json:"status"`
	InsertedCount int    `json:"inserted_count"`
}
