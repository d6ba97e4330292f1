// Package donation holds the pledge domain logic: submission validation and
// the aggregation used by the member and admin dashboards. Everything here is
// pure computation over in-memory records; persistence lives in store.
package donation

import (
	"fmt"
	"regexp"
	"strings"

	"prismfund/pkg/types"
)

// Rejection codes surfaced to handlers. The validator reports the first
// failing rule and never coerces out-of-range values.
const (
	CodeAmountOutOfRange       = "AmountOutOfRange"
	CodeInvalidEmail           = "InvalidEmail"
	CodeMissingName            = "MissingName"
	CodeMissingTransactionHash = "MissingTransactionHash"
	CodeInvalidCategory        = "InvalidCategory"
	CodeInvalidType            = "InvalidType"
	CodeMissingMessage         = "MissingMessage"
	CodeNameTooLong            = "NameTooLong"
	CodeMessageTooLong         = "MessageTooLong"
)

type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// PledgeSubmission is a candidate donation before it is recorded.
type PledgeSubmission struct {
	Amount       float64
	DonorName    string
	DonorEmail   string
	Category     string
	DonationType string
}

// ValidatePledge applies the submission rules in order, first failure wins.
// Limits come from campaign_settings, not from a constant.
func ValidatePledge(sub PledgeSubmission, limits types.ContributionLimits) *ValidationError {
	if !limits.Contains(sub.Amount) {
		return &ValidationError{
			Code:    CodeAmountOutOfRange,
			Message: fmt.Sprintf("Please enter an amount between $%.0f and $%.0f", limits.Min, limits.Max),
		}
	}

	if !emailPattern.MatchString(strings.TrimSpace(sub.DonorEmail)) {
		return &ValidationError{
			Code:    CodeInvalidEmail,
			Message: "Please enter a valid email address",
		}
	}

	if len(strings.TrimSpace(sub.DonorName)) < 2 {
		return &ValidationError{
			Code:    CodeMissingName,
			Message: "Please enter your name",
		}
	}

	if !types.ValidDonationCategory(sub.Category) {
		return &ValidationError{
			Code:    CodeInvalidCategory,
			Message: "Please choose a donation category",
		}
	}

	switch types.DonationType(sub.DonationType) {
	case types.DonationTypeOneTime, types.DonationTypeRecurring:
	default:
		return &ValidationError{
			Code:    CodeInvalidType,
			Message: "Please choose a donation type",
		}
	}

	return nil
}

// ValidateConfirmation guards the payment-confirmation step: a pledge cannot
// be recorded without the donor-supplied transaction hash.
func ValidateConfirmation(transactionHash string) *ValidationError {
	if strings.TrimSpace(transactionHash) == "" {
		return &ValidationError{
			Code:    CodeMissingTransactionHash,
			Message: "Please enter your transaction hash to confirm your donation",
		}
	}
	return nil
}

// ContactSubmission is a candidate contact-form record.
type ContactSubmission struct {
	Name    string
	Email   string
	Message string
}

func ValidateContact(sub ContactSubmission) *ValidationError {
	if strings.TrimSpace(sub.Name) == "" {
		return &ValidationError{Code: CodeMissingName, Message: "Please enter your name"}
	}
	if len(sub.Name) > 100 {
		return &ValidationError{Code: CodeNameTooLong, Message: "Name must be less than 100 characters"}
	}
	if !emailPattern.MatchString(strings.TrimSpace(sub.Email)) {
		return &ValidationError{Code: CodeInvalidEmail, Message: "Please enter a valid email address"}
	}
	if strings.TrimSpace(sub.Message) == "" {
		return &ValidationError{Code: CodeMissingMessage, Message: "Please enter a message"}
	}
	if len(sub.Message) > 2000 {
		return &ValidationError{Code: CodeMessageTooLong, Message: "Message must be less than 2000 characters"}
	}
	return nil
}

func ValidateSubscriptionEmail(email string) *ValidationError {
	if !emailPattern.MatchString(strings.TrimSpace(email)) {
		return &ValidationError{Code: CodeInvalidEmail, Message: "Please enter a valid email address"}
	}
	return nil
}
