package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/poofware/phone-validator-service/internal/models"
)

type PhoneCandidateRepository interface {
	// RecordAttempt upserts on (sha256_id, mobile_number). A new row gets
	// priority_order 0 and the supplied name/source; an existing row only
	// has status, last_attempted_at and last_attempted_by overwritten.
	// c is refreshed from the stored row. inserted reports which case ran.
	RecordAttempt(ctx context.Context, c *models.PhoneCandidate) (inserted bool, err error)

	// CreateIfAbsent inserts c unless the pair already exists, in which
	// case the stored row is left alone and false is returned.
	CreateIfAbsent(ctx context.Context, c *models.PhoneCandidate) (bool, error)

	GetByIdentityAndNumber(ctx context.Context, sha256ID, mobileNumber string) (*models.PhoneCandidate, error)

	// NextUntested returns the untested candidate with the lowest
	// priority_order (ties by id), or nil when there is none.
	NextUntested(ctx context.Context, sha256ID string) (*models.PhoneCandidate, error)
}

type phoneCandidateRepo struct {
	db DB
}

func NewPhoneCandidateRepository(db DB) PhoneCandidateRepository {
	return &phoneCandidateRepo{db: db}
}

const candidateColumns = `
	id, sha256_id, mobile_number, first_name, last_name, source,
	priority_order, status, last_attempted_at, last_attempted_by
`

func baseSelectCandidate() string {
	return `SELECT ` + candidateColumns + ` FROM phone_candidates`
}

func (r *phoneCandidateRepo) RecordAttempt(ctx context.Context, c *models.PhoneCandidate) (bool, error) {
	q := `
		INSERT INTO phone_candidates (
			sha256_id, mobile_number, first_name, last_name, source,
			priority_order, status, last_attempted_at, last_attempted_by
		) VALUES ($1, $2, $3, $4, $5, 0, $6, $7, $8)
		ON CONFLICT (sha256_id, mobile_number) DO UPDATE SET
			status            = EXCLUDED.status,
			last_attempted_at = EXCLUDED.last_attempted_at,
			last_attempted_by = EXCLUDED.last_attempted_by
		RETURNING ` + candidateColumns + `, (xmax = 0) AS inserted
	`
	row := r.db.QueryRow(ctx, q,
		c.SHA256ID, c.MobileNumber, c.FirstName, c.LastName, c.Source,
		string(c.Status), c.LastAttemptedAt, c.LastAttemptedBy,
	)

	var (
		status   string
		inserted bool
	)
	err := row.Scan(
		&c.ID, &c.SHA256ID, &c.MobileNumber, &c.FirstName, &c.LastName, &c.Source,
		&c.PriorityOrder, &status, &c.LastAttemptedAt, &c.LastAttemptedBy,
		&inserted,
	)
	if err != nil {
		return false, err
	}
	c.Status = models.CandidateStatus(status)
	return inserted, nil
}

func (r *phoneCandidateRepo) CreateIfAbsent(ctx context.Context, c *models.PhoneCandidate) (bool, error) {
	status := c.Status
	if status == "" {
		status = models.CandidateStatusUntested
	}
	q := `
		INSERT INTO phone_candidates (
			sha256_id, mobile_number, first_name, last_name, source,
			priority_order, status
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (sha256_id, mobile_number) DO NOTHING
		RETURNING id
	`
	err := r.db.QueryRow(ctx, q,
		c.SHA256ID, c.MobileNumber, c.FirstName, c.LastName, c.Source,
		c.PriorityOrder, string(status),
	).Scan(&c.ID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return false, nil
		}
		return false, err
	}
	c.Status = status
	return true, nil
}

func (r *phoneCandidateRepo) GetByIdentityAndNumber(ctx context.Context, sha256ID, mobileNumber string) (*models.PhoneCandidate, error) {
	q := baseSelectCandidate() + `
		WHERE sha256_id = $1 AND mobile_number = $2
		ORDER BY id
		LIMIT 1
	`
	return scanCandidate(r.db.QueryRow(ctx, q, sha256ID, mobileNumber))
}

func (r *phoneCandidateRepo) NextUntested(ctx context.Context, sha256ID string) (*models.PhoneCandidate, error) {
	q := baseSelectCandidate() + `
		WHERE sha256_id = $1 AND status = $2
		ORDER BY priority_order ASC, id ASC
		LIMIT 1
	`
	return scanCandidate(r.db.QueryRow(ctx, q, sha256ID, string(models.CandidateStatusUntested)))
}

func scanCandidate(row pgx.Row) (*models.PhoneCandidate, error) {
	var c models.PhoneCandidate
	var status string
	err := row.Scan(
		&c.ID, &c.SHA256ID, &c.MobileNumber, &c.FirstName, &c.LastName, &c.Source,
		&c.PriorityOrder, &status, &c.LastAttemptedAt, &c.LastAttemptedBy,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	c.Status = models.CandidateStatus(status)
	return &c, nil
}
