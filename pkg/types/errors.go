package types

import "errors"

var (
	ErrDonationNotFound = errors.New("donation not found")
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrStoryNotFound    = errors.New("story not found")
	ErrProfileNotFound  = errors.New("profile not found")
	ErrInviteNotFound   = errors.New("admin invite not found")

	// ErrDonationNotPending is returned when a status transition targets a
	// donation that already left the pending state. Confirmed and rejected
	// are terminal.
	ErrDonationNotPending = errors.New("donation is not pending")

	// ErrAlreadySubscribed maps the unique violation on
	// email_subscriptions(email, subscription_type) to a friendly outcome.
	ErrAlreadySubscribed = errors.New("email already subscribed")

	// ErrAlreadyInvited is returned when an admin invite for the email exists.
	ErrAlreadyInvited = errors.New("email already invited")
)
