package donation

import (
	"testing"
	"time"

	"prismfund/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 12, 0, 0, 0, time.UTC)
}

func sampleDonations() []types.Donation {
	return []types.Donation{
		{DonorEmail: "a@b.com", DonorName: "Alice Old", Amount: 50, Category: "general", DonationType: "one-time", Status: "confirmed", CreatedAt: day(2026, time.March, 1)},
		{DonorEmail: "a@b.com", DonorName: "Alice", Amount: 100, Category: "legal", DonationType: "recurring", Status: "pending", CreatedAt: day(2026, time.June, 15)},
		{DonorEmail: "c@d.com", DonorName: "Cam", Amount: 250, Category: "general", DonationType: "one-time", Status: "confirmed", CreatedAt: day(2026, time.May, 2)},
		{DonorEmail: "e@f.com", DonorName: "Evan", Amount: 25, Category: "safety", DonationType: "one-time", Status: "rejected", CreatedAt: day(2026, time.June, 20)},
	}
}

func TestDonorRollups(t *testing.T) {
	rollups := DonorRollups(sampleDonations())
	require.Len(t, rollups, 3)

	// Ranked descending by lifetime total.
	assert.Equal(t, "c@d.com", rollups[0].Email)
	assert.Equal(t, "a@b.com", rollups[1].Email)
	assert.Equal(t, "e@f.com", rollups[2].Email)

	alice := rollups[1]
	assert.Equal(t, 150.0, alice.TotalAmount)
	assert.Equal(t, 2, alice.DonationCount)
	// Display name comes from the most recent donation.
	assert.Equal(t, "Alice", alice.Name)
	assert.Equal(t, day(2026, time.June, 15), alice.LastDonation)
	assert.ElementsMatch(t, []types.DonationCategory{"general", "legal"}, alice.Categories)
}

func TestRollupSumsConserveTotal(t *testing.T) {
	donations := sampleDonations()

	var total float64
	for _, d := range donations {
		total += d.Amount
	}

	var donorSum float64
	for _, r := range DonorRollups(donations) {
		donorSum += r.TotalAmount
	}
	assert.Equal(t, total, donorSum)

	var categorySum float64
	for _, c := range CategoryTotals(donations) {
		categorySum += c.Total
	}
	assert.Equal(t, total, categorySum)

	var typeSum float64
	for _, v := range TypeTotals(donations) {
		typeSum += v
	}
	assert.Equal(t, total, typeSum)
}

func TestTotalsByStatus(t *testing.T) {
	totals := TotalsByStatus(sampleDonations())

	assert.Equal(t, 425.0, totals.TotalAmount)
	assert.Equal(t, 300.0, totals.ConfirmedAmount)
	assert.Equal(t, 100.0, totals.PendingAmount)
	assert.Equal(t, 25.0, totals.RejectedAmount)
	assert.Equal(t, 4, totals.DonationCount)
	assert.Equal(t, 3, totals.UniqueDonors)
}

func TestConfirmationMovesPendingToConfirmed(t *testing.T) {
	donations := sampleDonations()
	before := TotalsByStatus(donations)

	// Admin confirms the pending $100 pledge.
	now := day(2026, time.June, 16)
	donations[1].Status = types.DonationStatusConfirmed
	donations[1].ConfirmedAt = &now

	after := TotalsByStatus(donations)
	assert.Equal(t, before.ConfirmedAmount+100, after.ConfirmedAmount)
	assert.Equal(t, before.PendingAmount-100, after.PendingAmount)
	assert.Equal(t, before.TotalAmount, after.TotalAmount)
}

func TestMonthlyTrendZeroFilled(t *testing.T) {
	now := day(2026, time.June, 28)
	trend := MonthlyTrend(sampleDonations(), now, 6)

	require.Len(t, trend, 6)
	assert.Equal(t, "Jan 2026", trend[0].Label)
	assert.Equal(t, "Jun 2026", trend[5].Label)

	// Months are unique and consecutive.
	for i := 1; i < len(trend); i++ {
		assert.Equal(t, trend[i-1].Month.AddDate(0, 1, 0), trend[i].Month)
	}

	assert.Equal(t, 0.0, trend[0].Total)  // January: no donations
	assert.Equal(t, 50.0, trend[2].Total) // March
	assert.Equal(t, 0.0, trend[3].Total)  // April
	assert.Equal(t, 250.0, trend[4].Total)
	assert.Equal(t, 125.0, trend[5].Total)
	assert.Equal(t, 2, trend[5].Count)
}

func TestMonthlyTrendIgnoresOutsideWindow(t *testing.T) {
	donations := []types.Donation{
		{DonorEmail: "old@b.com", Amount: 999, CreatedAt: day(2025, time.June, 1)},
	}

	trend := MonthlyTrend(donations, day(2026, time.June, 28), 6)
	require.Len(t, trend, 6)
	for _, b := range trend {
		assert.Equal(t, 0.0, b.Total)
	}
}

func TestMonthlyTrendEmptyInput(t *testing.T) {
	trend := MonthlyTrend(nil, day(2026, time.June, 28), 6)
	require.Len(t, trend, 6)
	for _, b := range trend {
		assert.Equal(t, 0.0, b.Total)
		assert.Equal(t, 0, b.Count)
	}

	assert.Nil(t, MonthlyTrend(nil, day(2026, time.June, 28), 0))
}

func TestFilterByEmail(t *testing.T) {
	mine := FilterByEmail(sampleDonations(), "a@b.com")
	require.Len(t, mine, 2)
	for _, d := range mine {
		assert.Equal(t, "a@b.com", d.DonorEmail)
	}
}
