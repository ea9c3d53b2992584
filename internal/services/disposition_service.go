package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	twilio "github.com/twilio/twilio-go"

	"github.com/poofware/phone-validator-service/internal/config"
	"github.com/poofware/phone-validator-service/internal/constants"
	"github.com/poofware/phone-validator-service/internal/dtos"
	"github.com/poofware/phone-validator-service/internal/models"
	"github.com/poofware/phone-validator-service/internal/repositories"
	"github.com/poofware/phone-validator-service/internal/utils"
)

// ------------------------------------------------------------------
// Service
// ------------------------------------------------------------------

type DispositionService interface {
	// MarkNumber records a call outcome against (sha256_id, mobile_number)
	// and, on a verifying disposition, promotes the number to
	// validated_phones. Both writes share one transaction.
	MarkNumber(ctx context.Context, req dtos.MarkNumberRequest) (*dtos.MarkNumberResponse, error)

	// NextNumber returns the verified number for an identity if there is
	// one, else its best untested candidate. Read-only.
	NextNumber(ctx context.Context, sha256ID string) (*dtos.NextNumberResponse, error)

	// SeedCandidates inserts a ranked candidate list, skipping pairs that
	// already exist.
	SeedCandidates(ctx context.Context, req dtos.SeedCandidatesRequest) (*dtos.SeedCandidatesResponse, error)
}

type dispositionService struct {
	cfg   *config.Config
	store repositories.Store
	tw    *twilio.RestClient
	now   func() time.Time
}

func NewDispositionService(cfg *config.Config, store repositories.Store) DispositionService {
	return &dispositionService{
		cfg:   cfg,
		store: store,
		tw:    utils.NewTwilioClient(cfg.TwilioAccountSID, cfg.TwilioAuthToken),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ------------------------------------------------------------------
// Public API
// ------------------------------------------------------------------

func (s *dispositionService) MarkNumber(ctx context.Context, req dtos.MarkNumberRequest) (*dtos.MarkNumberResponse, error) {
	disposition := models.Disposition(req.Disposition)
	outcome, ok := disposition.Outcome()
	if !ok {
		return nil, utils.ErrInvalidDisposition
	}

	now := s.now()
	log := utils.Logger.WithFields(logrus.Fields{
		"sha256_id":   req.SHA256ID,
		"disposition": req.Disposition,
		"agent_id":    req.AgentID,
	})

	err := s.store.WithTx(ctx, func(r repositories.Repos) error {
		candidate := &models.PhoneCandidate{
			SHA256ID:        req.SHA256ID,
			MobileNumber:    req.MobileNumber,
			FirstName:       utils.NilIfEmpty(req.FirstName),
			LastName:        utils.NilIfEmpty(req.LastName),
			Source:          utils.NilIfEmpty(req.Source),
			Status:          outcome,
			LastAttemptedAt: &now,
			LastAttemptedBy: utils.NilIfEmpty(req.AgentID),
		}
		inserted, err := r.Candidates.RecordAttempt(ctx, candidate)
		if err != nil {
			return fmt.Errorf("record attempt: %w", err)
		}
		if inserted {
			log.Debugf("Created candidate %d on first disposition", candidate.ID)
		}

		if !disposition.Verifies() {
			return nil
		}

		verified := &models.ValidatedPhone{
			SHA256ID:            req.SHA256ID,
			MobileNumber:        req.MobileNumber,
			FirstName:           utils.NilIfEmpty(req.FirstName),
			LastName:            utils.NilIfEmpty(req.LastName),
			PositiveInteraction: disposition == models.DispositionPositiveInteraction,
			VerifiedAt:          now,
		}
		if err := r.Validated.Upsert(ctx, verified); err != nil {
			return fmt.Errorf("upsert validated phone: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Infof("Marked number %s", outcome)
	return &dtos.MarkNumberResponse{
		Status:        dtos.StatusSuccess,
		UpdatedStatus: string(outcome),
	}, nil
}

func (s *dispositionService) NextNumber(ctx context.Context, sha256ID string) (*dtos.NextNumberResponse, error) {
	repos := s.store.Repos()

	verified, err := repos.Validated.GetBySHA256ID(ctx, sha256ID)
	if err != nil {
		return nil, fmt.Errorf("get validated phone: %w", err)
	}
	if verified != nil {
		return &dtos.NextNumberResponse{
			Status:       dtos.StatusVerified,
			MobileNumber: verified.MobileNumber,
			FirstName:    verified.FirstName,
			LastName:     verified.LastName,
		}, nil
	}

	candidate, err := repos.Candidates.NextUntested(ctx, sha256ID)
	if err != nil {
		return nil, fmt.Errorf("next untested candidate: %w", err)
	}
	if candidate == nil {
		return nil, utils.ErrNoNumbersAvailable
	}
	return &dtos.NextNumberResponse{
		Status:       dtos.StatusCandidate,
		MobileNumber: candidate.MobileNumber,
		FirstName:    candidate.FirstName,
		LastName:     candidate.LastName,
	}, nil
}

func (s *dispositionService) SeedCandidates(ctx context.Context, req dtos.SeedCandidatesRequest) (*dtos.SeedCandidatesResponse, error) {
	if len(req.Numbers) > constants.MaxSeedNumbers {
		return nil, fmt.Errorf("%w: at most %d per seed", utils.ErrTooManyNumbers, constants.MaxSeedNumbers)
	}
	// Lookups happen before the transaction opens.
	if err := s.validateNumbers(ctx, req.Numbers); err != nil {
		return nil, err
	}

	source := req.Source
	if source == "" {
		source = constants.DefaultSeedSource
	}

	inserted := 0
	err := s.store.WithTx(ctx, func(r repositories.Repos) error {
		inserted = 0
		for i, number := range req.Numbers {
			created, err := r.Candidates.CreateIfAbsent(ctx, &models.PhoneCandidate{
				SHA256ID:      req.SHA256ID,
				MobileNumber:  number,
				FirstName:     utils.NilIfEmpty(req.FirstName),
				LastName:      utils.NilIfEmpty(req.LastName),
				Source:        utils.Ptr(source),
				PriorityOrder: i,
				Status:        models.CandidateStatusUntested,
			})
			if err != nil {
				return fmt.Errorf("seed candidate %d: %w", i, err)
			}
			if created {
				inserted++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.Logger.WithField("sha256_id", req.SHA256ID).
		Infof("Seeded %d of %d candidate numbers", inserted, len(req.Numbers))
	return &dtos.SeedCandidatesResponse{
		Status:        dtos.StatusSuccess,
		InsertedCount: inserted,
	}, nil
}

// ------------------------------------------------------------------
// internals
// ------------------------------------------------------------------

func (s *dispositionService) validateNumbers(ctx context.Context, numbers []string) error {
	withTwilio := s.cfg.LDFlag_ValidateNumbersWithTwilio && s.tw != nil
	if !withTwilio && !s.cfg.LDFlag_RequireE164Numbers {
		return nil
	}
	for _, n := range numbers {
		ok, err := utils.ValidatePhoneNumber(ctx, n, withTwilio, s.tw)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: %s", utils.ErrInvalidPhone, n)
		}
	}
	return nil
}
