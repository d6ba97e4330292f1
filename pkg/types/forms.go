package types

import "time"

type ContactSubmission struct {
	ID             string    `db:"id"`
	Name           string    `db:"name"`
	Email          string    `db:"email"`
	Subject        *string   `db:"subject"`
	Message        string    `db:"message"`
	SubmissionType string    `db:"submission_type"`
	CreatedAt      time.Time `db:"created_at"`
}

type EmailSubscription struct {
	ID               string    `db:"id"`
	Email            string    `db:"email"`
	SubscriptionType string    `db:"subscription_type"`
	CreatedAt        time.Time `db:"created_at"`
}

type AdminInvite struct {
	ID        string    `db:"id"`
	Email     string    `db:"email"`
	InvitedBy string    `db:"invited_by"`
	Role      string    `db:"role"`
	CreatedAt time.Time `db:"created_at"`
}
