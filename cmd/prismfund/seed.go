package main

import (
	"context"
	"fmt"

	"prismfund/internal/db"
	"prismfund/internal/seed"
	"prismfund/internal/store"
	"prismfund/pkg/types"

	"github.com/k0kubun/pp"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with initial data",
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		defaultLimits := types.ContributionLimits{Min: cfg.DefaultMinDonation, Max: cfg.DefaultMaxDonation}
		settingsRepo := store.NewSettingsRepository(pool, defaultLimits)
		campaignRepo := store.NewCampaignRepository(pool)

		logrus.Info("Seeding contribution limits...")
		if err := seed.SeedSettings(ctx, settingsRepo, defaultLimits); err != nil {
			return fmt.Errorf("failed to seed settings: %w", err)
		}

		logrus.Info("Seeding campaigns...")
		if err := seed.SeedCampaigns(ctx, campaignRepo); err != nil {
			return fmt.Errorf("failed to seed campaigns: %w", err)
		}

		limits, err := settingsRepo.Limits(ctx)
		if err != nil {
			return fmt.Errorf("failed to read back limits: %w", err)
		}
		pp.Println(limits)

		logrus.Info("Seed complete")

		return nil
	},
}
