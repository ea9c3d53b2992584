package app

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poofware/phone-validator-service/internal/dtos"
)

type seedOnlyService struct {
	calls    []dtos.SeedCandidatesRequest
	inserted int
	err      error
}

func (s *seedOnlyService) MarkNumber(context.Context, dtos.MarkNumberRequest) (*dtos.MarkNumberResponse, error) {
	panic("unexpected MarkNumber")
}

func (s *seedOnlyService) NextNumber(context.Context, string) (*dtos.NextNumberResponse, error) {
	panic("unexpected NextNumber")
}

func (s *seedOnlyService) SeedCandidates(_ context.Context, req dtos.SeedCandidatesRequest) (*dtos.SeedCandidatesResponse, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return nil, s.err
	}
	n := s.inserted
	s.inserted = 0
	return &dtos.SeedCandidatesResponse{Status: dtos.StatusSuccess, InsertedCount: n}, nil
}

func TestSeedAllTestData(t *testing.T) {
	svc := &seedOnlyService{inserted: len(SeedDemoNumbers)}

	require.NoError(t, SeedAllTestData(context.Background(), svc))
	require.NoError(t, SeedAllTestData(context.Background(), svc), "second run finds everything present")

	require.Len(t, svc.calls, 2)
	req := svc.calls[0]
	assert.Equal(t, SeedDemoSHA256ID, req.SHA256ID)
	assert.Equal(t, SeedDemoNumbers, req.Numbers)
	assert.Equal(t, SeedDemoSource, req.Source)
}

func TestSeedAllTestDataPropagatesError(t *testing.T) {
	svc := &seedOnlyService{err: errors.New("tx aborted")}
	err := SeedAllTestData(context.Background(), svc)
	require.Error(t, err)
	assert.ErrorIs(t, err, svc.err)
}
