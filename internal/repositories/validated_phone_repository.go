package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"
	"github.com/poofware/phone-validator-service/internal/models"
)

type ValidatedPhoneRepository interface {
	// Upsert keys on sha256_id. On insert wrong_number and disconnected are
	// written false. On conflict only mobile_number and verified_at are
	// overwritten, and positive_interaction is OR-ed with the stored value.
	// v is refreshed from the stored row.
	Upsert(ctx context.Context, v *models.ValidatedPhone) error

	GetBySHA256ID(ctx context.Context, sha256ID string) (*models.ValidatedPhone, error)
}

type validatedPhoneRepo struct {
	db DB
}

func NewValidatedPhoneRepository(db DB) ValidatedPhoneRepository {
	return &validatedPhoneRepo{db: db}
}

const validatedColumns = `
	sha256_id, mobile_number, first_name, last_name,
	wrong_number, disconnected, positive_interaction, verified_at
`

func (r *validatedPhoneRepo) Upsert(ctx context.Context, v *models.ValidatedPhone) error {
	q := `
		INSERT INTO validated_phones (
			sha256_id, mobile_number, first_name, last_name,
			wrong_number, disconnected, positive_interaction, verified_at
		) VALUES ($1, $2, $3, $4, FALSE, FALSE, $5, $6)
		ON CONFLICT (sha256_id) DO UPDATE SET
			mobile_number        = EXCLUDED.mobile_number,
			verified_at          = EXCLUDED.verified_at,
			positive_interaction = validated_phones.positive_interaction OR EXCLUDED.positive_interaction
		RETURNING ` + validatedColumns
	row := r.db.QueryRow(ctx, q,
		v.SHA256ID, v.MobileNumber, v.FirstName, v.LastName,
		v.PositiveInteraction, v.VerifiedAt,
	)
	return row.Scan(
		&v.SHA256ID, &v.MobileNumber, &v.FirstName, &v.LastName,
		&v.WrongNumber, &v.Disconnected, &v.PositiveInteraction, &v.VerifiedAt,
	)
}

func (r *validatedPhoneRepo) GetBySHA256ID(ctx context.Context, sha256ID string) (*models.ValidatedPhone, error) {
	q := `SELECT ` + validatedColumns + ` FROM validated_phones WHERE sha256_id = $1`
	var v models.ValidatedPhone
	err := r.db.QueryRow(ctx, q, sha256ID).Scan(
		&v.SHA256ID, &v.MobileNumber, &v.FirstName, &v.LastName,
		&v.WrongNumber, &v.Disconnected, &v.PositiveInteraction, &v.VerifiedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &v, nil
}
