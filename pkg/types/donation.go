package types

import "time"

type DonationStatus string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusConfirmed DonationStatus = "confirmed"
	DonationStatusRejected  DonationStatus = "rejected"
)

// Terminal reports whether the status is one of the two end states.
// Once a donation leaves pending its status is write-once.
func (s DonationStatus) Terminal() bool {
	return s == DonationStatusConfirmed || s == DonationStatusRejected
}

// CanTransitionTo reports whether the lifecycle permits moving from s to
// next. The only defined transitions are pending to confirmed and pending
// to rejected.
func (s DonationStatus) CanTransitionTo(next DonationStatus) bool {
	return s == DonationStatusPending && next.Terminal()
}

type DonationType string

const (
	DonationTypeOneTime   DonationType = "one-time"
	DonationTypeRecurring DonationType = "recurring"
)

type DonationCategory string

const (
	DonationCategoryGeneral   DonationCategory = "general"
	DonationCategoryLegal     DonationCategory = "legal"
	DonationCategorySafety    DonationCategory = "safety"
	DonationCategoryEducation DonationCategory = "education"
	DonationCategoryCommunity DonationCategory = "community"
	DonationCategoryHealth    DonationCategory = "health"
	DonationCategoryDignity   DonationCategory = "dignity"
)

func DonationCategories() []DonationCategory {
	return []DonationCategory{
		DonationCategoryGeneral,
		DonationCategoryLegal,
		DonationCategorySafety,
		DonationCategoryEducation,
		DonationCategoryCommunity,
		DonationCategoryHealth,
		DonationCategoryDignity,
	}
}

func ValidDonationCategory(v string) bool {
	for _, c := range DonationCategories() {
		if string(c) == v {
			return true
		}
	}
	return false
}

// Donation is a self-reported pledge awaiting manual confirmation. The
// transaction hash is donor-supplied proof of payment and is never verified
// on-chain by this system.
type Donation struct {
	ID              string           `db:"id"`
	WalletAddress   string           `db:"wallet_address"`
	Amount          float64          `db:"amount"`
	Category        DonationCategory `db:"category"`
	DonationType    DonationType     `db:"donation_type"`
	DonorName       string           `db:"donor_name"`
	DonorEmail      string           `db:"donor_email"`
	TransactionHash string           `db:"transaction_hash"`
	Status          DonationStatus   `db:"status"`
	ConfirmedAt     *time.Time       `db:"confirmed_at"`
	CreatedAt       time.Time        `db:"created_at"`
}

// ContributionLimits is the inclusive [Min, Max] range a pledge amount must
// fall in. Limits live in campaign_settings, not in code.
type ContributionLimits struct {
	Min float64
	Max float64
}

func (l ContributionLimits) Contains(amount float64) bool {
	return amount >= l.Min && amount <= l.Max
}
