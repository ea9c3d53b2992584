package models

// Disposition is the outcome code an agent records after calling a number.
type Disposition string

const (
	DispositionWrongNumber         Disposition = "wrong_number"
	DispositionDisconnected        Disposition = "disconnected"
	DispositionNoAnswer            Disposition = "no_answer"
	DispositionConnectedGood       Disposition = "connected_good"
	DispositionPositiveInteraction Disposition = "positive_interaction"
)

// Outcome maps a disposition to the candidate status it produces.
// ok is false for any string outside the five known codes.
func (d Disposition) Outcome() (status CandidateStatus, ok bool) {
	switch d {
	case DispositionWrongNumber, DispositionDisconnected, DispositionNoAnswer:
		return CandidateStatusFailed, true
	case DispositionConnectedGood, DispositionPositiveInteraction:
		return CandidateStatusVerified, true
	default:
		return "", false
	}
}

// Verifies reports whether the disposition promotes the number into
// validated_phones.
func (d Disposition) Verifies() bool {
	status, ok := d.Outcome()
	return ok && status == CandidateStatusVerified
}
