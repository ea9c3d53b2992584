package repositories

import "context"

// Repos groups the repositories bound to one connection or transaction.
type Repos struct {
	Candidates PhoneCandidateRepository
	Validated  ValidatedPhoneRepository
}

// Store hands out repositories and runs units of work.
type Store interface {
	// Repos returns repositories bound to the pool; each call is its own
	// implicit transaction. Use it for read-only paths.
	Repos() Repos

	// WithTx runs fn inside one transaction. The transaction commits when
	// fn returns nil and rolls back on error or panic.
	WithTx(ctx context.Context, fn func(Repos) error) error
}

type pgStore struct {
	db DB
}

func NewStore(db DB) Store {
	return &pgStore{db: db}
}

func reposFor(db DB) Repos {
	return Repos{
		Candidates: NewPhoneCandidateRepository(db),
		Validated:  NewValidatedPhoneRepository(db),
	}
}

func (s *pgStore) Repos() Repos {
	return reposFor(s.db)
}

func (s *pgStore) WithTx(ctx context.Context, fn func(Repos) error) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
			return
		}
		err = tx.Commit(ctx)
	}()

	err = fn(reposFor(tx))
	return err
}
