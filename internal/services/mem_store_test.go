package services

import (
	"context"
	"sort"
	"sync"

	"github.com/poofware/phone-validator-service/internal/models"
	"github.com/poofware/phone-validator-service/internal/repositories"
)

// memStore mirrors the SQL semantics of the pg repositories in memory.
// WithTx snapshots state and restores it when fn fails.
type memStore struct {
	mu         sync.Mutex
	nextID     int64
	candidates []models.PhoneCandidate
	validated  map[string]models.ValidatedPhone

	failValidatedUpsert error
	txCount             int
}

func newMemStore() *memStore {
	return &memStore{validated: map[string]models.ValidatedPhone{}}
}

func (m *memStore) Repos() repositories.Repos {
	return repositories.Repos{
		Candidates: &memCandidates{m},
		Validated:  &memValidated{m},
	}
}

func (m *memStore) WithTx(_ context.Context, fn func(repositories.Repos) error) error {
	m.mu.Lock()
	m.txCount++
	savedCandidates := append([]models.PhoneCandidate(nil), m.candidates...)
	savedValidated := make(map[string]models.ValidatedPhone, len(m.validated))
	for k, v := range m.validated {
		savedValidated[k] = v
	}
	savedID := m.nextID
	m.mu.Unlock()

	if err := fn(m.Repos()); err != nil {
		m.mu.Lock()
		m.candidates = savedCandidates
		m.validated = savedValidated
		m.nextID = savedID
		m.mu.Unlock()
		return err
	}
	return nil
}

// seed inserts a raw candidate row, like an external loader would.
func (m *memStore) seed(c models.PhoneCandidate) models.PhoneCandidate {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.nextID++
	c.ID = m.nextID
	if c.Status == "" {
		c.Status = models.CandidateStatusUntested
	}
	m.candidates = append(m.candidates, c)
	return c
}

func (m *memStore) candidate(sha, number string) *models.PhoneCandidate {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.candidates {
		if m.candidates[i].SHA256ID == sha && m.candidates[i].MobileNumber == number {
			c := m.candidates[i]
			return &c
		}
	}
	return nil
}

func (m *memStore) verified(sha string) *models.ValidatedPhone {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.validated[sha]
	if !ok {
		return nil
	}
	return &v
}

func (m *memStore) candidateCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.candidates)
}

type memCandidates struct{ m *memStore }

func (r *memCandidates) RecordAttempt(_ context.Context, c *models.PhoneCandidate) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for i := range r.m.candidates {
		row := &r.m.candidates[i]
		if row.SHA256ID == c.SHA256ID && row.MobileNumber == c.MobileNumber {
			row.Status = c.Status
			row.LastAttemptedAt = c.LastAttemptedAt
			row.LastAttemptedBy = c.LastAttemptedBy
			*c = *row
			return false, nil
		}
	}
	r.m.nextID++
	c.ID = r.m.nextID
	c.PriorityOrder = 0
	r.m.candidates = append(r.m.candidates, *c)
	return true, nil
}

func (r *memCandidates) CreateIfAbsent(_ context.Context, c *models.PhoneCandidate) (bool, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, row := range r.m.candidates {
		if row.SHA256ID == c.SHA256ID && row.MobileNumber == c.MobileNumber {
			return false, nil
		}
	}
	if c.Status == "" {
		c.Status = models.CandidateStatusUntested
	}
	r.m.nextID++
	c.ID = r.m.nextID
	r.m.candidates = append(r.m.candidates, *c)
	return true, nil
}

func (r *memCandidates) GetByIdentityAndNumber(_ context.Context, sha, number string) (*models.PhoneCandidate, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	for _, row := range r.m.candidates {
		if row.SHA256ID == sha && row.MobileNumber == number {
			c := row
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memCandidates) NextUntested(_ context.Context, sha string) (*models.PhoneCandidate, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	var matches []models.PhoneCandidate
	for _, row := range r.m.candidates {
		if row.SHA256ID == sha && row.Status == models.CandidateStatusUntested {
			matches = append(matches, row)
		}
	}
	if len(matches) == 0 {
		return nil, nil
	}
	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].PriorityOrder != matches[j].PriorityOrder {
			return matches[i].PriorityOrder < matches[j].PriorityOrder
		}
		return matches[i].ID < matches[j].ID
	})
	return &matches[0], nil
}

type memValidated struct{ m *memStore }

func (r *memValidated) Upsert(_ context.Context, v *models.ValidatedPhone) error {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	if r.m.failValidatedUpsert != nil {
		return r.m.failValidatedUpsert
	}
	if row, ok := r.m.validated[v.SHA256ID]; ok {
		row.MobileNumber = v.MobileNumber
		row.VerifiedAt = v.VerifiedAt
		row.PositiveInteraction = row.PositiveInteraction || v.PositiveInteraction
		r.m.validated[v.SHA256ID] = row
		*v = row
		return nil
	}
	v.WrongNumber = false
	v.Disconnected = false
	r.m.validated[v.SHA256ID] = *v
	return nil
}

func (r *memValidated) GetBySHA256ID(_ context.Context, sha string) (*models.ValidatedPhone, error) {
	r.m.mu.Lock()
	defer r.m.mu.Unlock()
	v, ok := r.m.validated[sha]
	if !ok {
		return nil, nil
	}
	return &v, nil
}
