package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDonationStatusTransitions(t *testing.T) {
	assert.True(t, DonationStatusPending.CanTransitionTo(DonationStatusConfirmed))
	assert.True(t, DonationStatusPending.CanTransitionTo(DonationStatusRejected))

	// Terminal states are write-once: nothing transitions out of them.
	for _, from := range []DonationStatus{DonationStatusConfirmed, DonationStatusRejected} {
		for _, to := range []DonationStatus{DonationStatusPending, DonationStatusConfirmed, DonationStatusRejected} {
			assert.False(t, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}

	assert.False(t, DonationStatusPending.CanTransitionTo(DonationStatusPending))
}

func TestContributionLimitsContains(t *testing.T) {
	limits := ContributionLimits{Min: 25, Max: 500}

	assert.True(t, limits.Contains(25))
	assert.True(t, limits.Contains(500))
	assert.False(t, limits.Contains(24.99))
	assert.False(t, limits.Contains(500.01))
}

func TestValidDonationCategory(t *testing.T) {
	assert.True(t, ValidDonationCategory("general"))
	assert.True(t, ValidDonationCategory("dignity"))
	assert.False(t, ValidDonationCategory("misc"))
	assert.False(t, ValidDonationCategory(""))
}
