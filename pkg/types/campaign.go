package types

import "time"

type CampaignStatus string

const (
	CampaignStatusActive    CampaignStatus = "active"
	CampaignStatusCompleted CampaignStatus = "completed"
)

// Toggled flips between the two lifecycle states. Completing a campaign is
// reversible; admins can reactivate one at any time.
func (s CampaignStatus) Toggled() CampaignStatus {
	if s == CampaignStatusActive {
		return CampaignStatusCompleted
	}
	return CampaignStatusActive
}

type Campaign struct {
	ID            string         `db:"id"`
	Title         string         `db:"title"`
	Description   *string        `db:"description"`
	Category      string         `db:"category"`
	Region        *string        `db:"region"`
	GoalAmount    float64        `db:"goal_amount"`
	CurrentAmount float64        `db:"current_amount"`
	Status        CampaignStatus `db:"status"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// ProgressPercent is a display helper, clamped to 100.
func (c *Campaign) ProgressPercent() int {
	if c.GoalAmount <= 0 {
		return 0
	}
	pct := int(c.CurrentAmount / c.GoalAmount * 100)
	if pct > 100 {
		pct = 100
	}
	return pct
}

// CampaignEngagement records that a member joined a campaign. The pair
// (campaign_id, user_id) is unique; a campaign's supporter count is the
// number of rows referencing it.
type CampaignEngagement struct {
	CampaignID string    `db:"campaign_id"`
	UserID     string    `db:"user_id"`
	CreatedAt  time.Time `db:"created_at"`
}
