package seed

import (
	"context"
	"fmt"

	"prismfund/internal/store"
	"prismfund/internal/utils"
	"prismfund/pkg/types"
)

// SeedCampaigns syncs the database with the campaign definitions below.
// This file is the source of truth for the launch campaigns:
// - Inserts new campaigns that don't exist
// - Updates existing campaigns that have changed
//
// To generate new IDs: `go run ./cmd/prismfund nanoid`
func SeedCampaigns(ctx context.Context, repo *store.CampaignRepository) error {
	// Define seed data with fixed IDs
	// compile-time safe - if Campaign type changes, this won't compile
	campaigns := []types.Campaign{
		{
			ID:          "qhXcT09vWkE3H5dJmRfa2Lsu7BYwnGpZ",
			Title:       "Legal Defense Fund",
			Description: utils.StringPtr("Constitutional challenges and legal representation for individuals facing persecution"),
			Category:    "legal",
			Region:      utils.StringPtr("Global"),
			GoalAmount:  3200000,
			Status:      types.CampaignStatusActive,
		},
		{
			ID:          "M2eKQvP18IHok5rXHpsDUer6xQWOLjHa",
			Title:       "Emergency Protection",
			Description: utils.StringPtr("Relocation and safe housing for at-risk individuals"),
			Category:    "safety",
			Region:      utils.StringPtr("Sub-Saharan Africa"),
			GoalAmount:  2100000,
			Status:      types.CampaignStatusActive,
		},
		{
			ID:          "8kzJOd6irR67jH2MPq8LxoqIK7tJ3CV6",
			Title:       "Education & Advocacy",
			Description: utils.StringPtr("Community programs and policy advocacy"),
			Category:    "education",
			Region:      utils.StringPtr("Southeast Asia"),
			GoalAmount:  1800000,
			Status:      types.CampaignStatusActive,
		},
		{
			ID:          "2gT3IW1x9HoTYADSiT7TWDtFby8f4ccx",
			Title:       "Healthcare Access",
			Description: utils.StringPtr("Medical care and mental health support"),
			Category:    "health",
			Region:      utils.StringPtr("Latin America"),
			GoalAmount:  950000,
			Status:      types.CampaignStatusActive,
		},
	}

	for _, campaign := range campaigns {
		campaign := campaign
		if err := repo.UpsertCampaign(ctx, &campaign); err != nil {
			return fmt.Errorf("upsert campaign %s: %w", campaign.Title, err)
		}
	}

	return nil
}
