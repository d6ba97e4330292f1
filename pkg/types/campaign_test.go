package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCampaignStatusToggled(t *testing.T) {
	assert.Equal(t, CampaignStatusCompleted, CampaignStatusActive.Toggled())
	assert.Equal(t, CampaignStatusActive, CampaignStatusCompleted.Toggled())

	// Round trip lands back where it started.
	assert.Equal(t, CampaignStatusActive, CampaignStatusActive.Toggled().Toggled())
}

func TestCampaignProgressPercent(t *testing.T) {
	c := &Campaign{GoalAmount: 1000, CurrentAmount: 250}
	assert.Equal(t, 25, c.ProgressPercent())

	t.Run("clamped at 100", func(t *testing.T) {
		c := &Campaign{GoalAmount: 1000, CurrentAmount: 2500}
		assert.Equal(t, 100, c.ProgressPercent())
	})

	t.Run("zero goal reports zero", func(t *testing.T) {
		c := &Campaign{GoalAmount: 0, CurrentAmount: 500}
		assert.Equal(t, 0, c.ProgressPercent())
	})
}
