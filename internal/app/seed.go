package app

import (
	"context"
	"fmt"

	"github.com/poofware/phone-validator-service/internal/dtos"
	"github.com/poofware/phone-validator-service/internal/services"
	"github.com/poofware/phone-validator-service/internal/utils"
)

// Demo identity used by local and staging environments.
const (
	SeedDemoSHA256ID  = "6b1f4cfd0a3e5c2d9a8e7f5b4c3d2e1f0a9b8c7d6e5f4a3b2c1d0e9f8a7b6c5d"
	SeedDemoFirstName = "Demo"
	SeedDemoLastName  = "Contact"
	SeedDemoSource    = "seed_test_data"
)

// SeedDemoNumbers are in priority order.
var SeedDemoNumbers = []string{
	"+15555550100",
	"+15555550101",
	"+15555550102",
}

// SeedAllTestData seeds the demo identity's candidate list. Existing pairs
// are left alone, so re-running it is a no-op.
func SeedAllTestData(ctx context.Context, svc services.DispositionService) error {
	resp, err := svc.SeedCandidates(ctx, dtos.SeedCandidatesRequest{
		SHA256ID:  SeedDemoSHA256ID,
		Numbers:   SeedDemoNumbers,
		FirstName: SeedDemoFirstName,
		LastName:  SeedDemoLastName,
		Source:    SeedDemoSource,
	})
	if err != nil {
		return fmt.Errorf("seed demo candidates: %w", err)
	}
	if resp.InsertedCount == 0 {
		utils.Logger.Info("Seed data already present; skipping seeding.")
		return nil
	}
	utils.Logger.Infof("Seeded %d demo candidate numbers", resp.InsertedCount)
	return nil
}
