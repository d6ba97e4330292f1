package donation

import (
	"sort"
	"time"

	"prismfund/pkg/types"
)

// DonorRollup aggregates every donation sharing a donor email. Donors are
// derived, never stored.
type DonorRollup struct {
	Email         string
	Name          string
	TotalAmount   float64
	DonationCount int
	Categories    []types.DonationCategory
	LastDonation  time.Time
}

// DonorRollups groups donations by donor email. The most recent donation
// supplies the display name and last-donation date. The result is ranked
// descending by total amount; ties keep first-appearance order.
func DonorRollups(donations []types.Donation) []*DonorRollup {
	byEmail := make(map[string]*DonorRollup)
	order := make([]*DonorRollup, 0)

	for _, d := range donations {
		rollup, ok := byEmail[d.DonorEmail]
		if !ok {
			rollup = &DonorRollup{Email: d.DonorEmail}
			byEmail[d.DonorEmail] = rollup
			order = append(order, rollup)
		}

		rollup.TotalAmount += d.Amount
		rollup.DonationCount++

		if !containsCategory(rollup.Categories, d.Category) {
			rollup.Categories = append(rollup.Categories, d.Category)
		}

		if d.CreatedAt.After(rollup.LastDonation) {
			rollup.LastDonation = d.CreatedAt
			rollup.Name = d.DonorName
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return order[i].TotalAmount > order[j].TotalAmount
	})

	return order
}

func containsCategory(list []types.DonationCategory, c types.DonationCategory) bool {
	for _, v := range list {
		if v == c {
			return true
		}
	}
	return false
}

type CategoryTotal struct {
	Category types.DonationCategory
	Total    float64
	Count    int
}

// CategoryTotals sums amounts per fund designation, in first-appearance
// order. Used for the fund-allocation breakdown.
func CategoryTotals(donations []types.Donation) []CategoryTotal {
	index := make(map[types.DonationCategory]int)
	out := make([]CategoryTotal, 0)

	for _, d := range donations {
		i, ok := index[d.Category]
		if !ok {
			i = len(out)
			index[d.Category] = i
			out = append(out, CategoryTotal{Category: d.Category})
		}
		out[i].Total += d.Amount
		out[i].Count++
	}

	return out
}

// TypeTotals sums amounts per donation type.
func TypeTotals(donations []types.Donation) map[types.DonationType]float64 {
	out := make(map[types.DonationType]float64)
	for _, d := range donations {
		out[d.DonationType] += d.Amount
	}
	return out
}

// StatusTotals carries the headline dashboard numbers. Sums are unrounded;
// formatting is a template concern.
type StatusTotals struct {
	TotalAmount     float64
	ConfirmedAmount float64
	PendingAmount   float64
	RejectedAmount  float64
	DonationCount   int
	UniqueDonors    int
}

func TotalsByStatus(donations []types.Donation) StatusTotals {
	var totals StatusTotals
	emails := make(map[string]struct{})

	for _, d := range donations {
		totals.TotalAmount += d.Amount
		totals.DonationCount++
		emails[d.DonorEmail] = struct{}{}

		switch d.Status {
		case types.DonationStatusConfirmed:
			totals.ConfirmedAmount += d.Amount
		case types.DonationStatusPending:
			totals.PendingAmount += d.Amount
		case types.DonationStatusRejected:
			totals.RejectedAmount += d.Amount
		}
	}

	totals.UniqueDonors = len(emails)
	return totals
}

type MonthBucket struct {
	Month time.Time // first day of the month
	Label string    // e.g. "Apr 2026"
	Total float64
	Count int
}

// MonthlyTrend buckets donations by calendar month over a trailing window
// ending with the month of now. Every month in the window appears exactly
// once, zero-valued when empty, so chart axes stay continuous. Bucketing
// uses now's location throughout.
func MonthlyTrend(donations []types.Donation, now time.Time, months int) []MonthBucket {
	if months <= 0 {
		return nil
	}

	loc := now.Location()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc).AddDate(0, -(months - 1), 0)

	buckets := make([]MonthBucket, months)
	index := make(map[string]int, months)
	for i := range buckets {
		month := first.AddDate(0, i, 0)
		buckets[i] = MonthBucket{Month: month, Label: month.Format("Jan 2006")}
		index[month.Format("2006-01")] = i
	}

	for _, d := range donations {
		key := d.CreatedAt.In(loc).Format("2006-01")
		i, ok := index[key]
		if !ok {
			continue // outside the window
		}
		buckets[i].Total += d.Amount
		buckets[i].Count++
	}

	return buckets
}

// FilterByEmail returns the donations belonging to one donor, preserving
// order. The member dashboard feeds this through the same rollups the admin
// views use.
func FilterByEmail(donations []types.Donation, email string) []types.Donation {
	out := make([]types.Donation, 0)
	for _, d := range donations {
		if d.DonorEmail == email {
			out = append(out, d)
		}
	}
	return out
}
