package routes

const (
	// Health
	Health = "/health"

	// Disposition tracking
	MarkNumber     = "/mark-number"
	NextNumber     = "/next-number"
	SeedCandidates = "/seed-candidates"
)
