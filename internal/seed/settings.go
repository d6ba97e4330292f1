package seed

import (
	"context"
	"fmt"

	"prismfund/internal/store"
	"prismfund/pkg/types"
)

// SeedSettings writes the initial contribution limits. Admins change these
// from the settings page afterwards; re-seeding overwrites their edits, so
// run it only on a fresh database.
func SeedSettings(ctx context.Context, repo *store.SettingsRepository, limits types.ContributionLimits) error {
	if err := repo.UpsertLimits(ctx, limits, ""); err != nil {
		return fmt.Errorf("seed contribution limits: %w", err)
	}

	return nil
}
