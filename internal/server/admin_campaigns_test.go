package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCampaignInput(t *testing.T) {
	valid := campaignForm{
		Title:       "Legal Defense Fund",
		Description: "Representation for people facing persecution",
		Category:    "legal",
		GoalAmount:  50000,
	}

	assert.Empty(t, validateCampaignInput(valid))

	t.Run("goal is optional", func(t *testing.T) {
		form := valid
		form.GoalAmount = 0
		assert.Empty(t, validateCampaignInput(form))
	})

	t.Run("title required", func(t *testing.T) {
		form := valid
		form.Title = "   "
		assert.Equal(t, "campaign title is required", validateCampaignInput(form))
	})

	t.Run("description required", func(t *testing.T) {
		form := valid
		form.Description = ""
		assert.Equal(t, "campaign description is required", validateCampaignInput(form))
	})

	t.Run("category required", func(t *testing.T) {
		form := valid
		form.Category = ""
		assert.Equal(t, "campaign category is required", validateCampaignInput(form))
	})

	t.Run("negative goal rejected", func(t *testing.T) {
		form := valid
		form.GoalAmount = -5
		assert.Equal(t, "goal amount cannot be negative", validateCampaignInput(form))
	})
}
