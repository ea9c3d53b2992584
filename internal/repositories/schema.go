package repositories

import (
	"context"
	"fmt"
)

// schemaLockKey serialises concurrent EnsureSchema calls across replicas.
const schemaLockKey = 7_310_442_118

var schemaStatements = []string{
	`SELECT pg_advisory_xact_lock(` + fmt.Sprint(schemaLockKey) + `)`,

	`CREATE TABLE IF NOT EXISTS phone_candidates (
		id                BIGSERIAL PRIMARY KEY,
		sha256_id         TEXT NOT NULL,
		mobile_number     TEXT NOT NULL,
		first_name        TEXT,
		last_name         TEXT,
		source            TEXT,
		priority_order    INTEGER NOT NULL DEFAULT 0,
		status            TEXT NOT NULL DEFAULT 'untested'
		                  CHECK (status IN ('untested', 'failed', 'verified')),
		last_attempted_at TIMESTAMPTZ,
		last_attempted_by TEXT
	)`,

	`CREATE INDEX IF NOT EXISTS idx_phone_candidates_sha256_id
		ON phone_candidates (sha256_id)`,

	// Fails on a pre-existing table that already holds duplicate pairs;
	// those must be cleaned up by hand before the service will start.
	`CREATE UNIQUE INDEX IF NOT EXISTS uq_phone_candidates_identity_number
		ON phone_candidates (sha256_id, mobile_number)`,

	`CREATE INDEX IF NOT EXISTS idx_phone_candidates_next_untested
		ON phone_candidates (sha256_id, priority_order, id)
		WHERE status = 'untested'`,

	`CREATE TABLE IF NOT EXISTS validated_phones (
		sha256_id            TEXT PRIMARY KEY,
		mobile_number        TEXT NOT NULL,
		first_name           TEXT,
		last_name            TEXT,
		wrong_number         BOOLEAN NOT NULL DEFAULT FALSE,
		disconnected         BOOLEAN NOT NULL DEFAULT FALSE,
		positive_interaction BOOLEAN NOT NULL DEFAULT FALSE,
		verified_at          TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// EnsureSchema creates both tables and their indexes if absent. It is
// idempotent and runs in a single transaction.
func EnsureSchema(ctx context.Context, db DB) (err error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	for i, stmt := range schemaStatements {
		if _, err = tx.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema statement %d: %w", i, err)
		}
	}
	return nil
}
