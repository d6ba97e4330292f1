package store

import (
	"context"
	"fmt"

	"prismfund/pkg/types"

	"github.com/jackc/pgx/v5/pgxpool"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

type FormsRepository struct {
	pool *pgxpool.Pool
}

func NewFormsRepository(pool *pgxpool.Pool) *FormsRepository {
	return &FormsRepository{pool: pool}
}

func (r *FormsRepository) CreateContactSubmission(ctx context.Context, name, email, subject, message, submissionType string) error {
	id, err := gonanoid.New(21)
	if err != nil {
		return fmt.Errorf("generate id: %w", err)
	}

	query, args, err := psql().
		Insert("prismfund.contact_submissions").
		Columns("id", "name", "email", "subject", "message", "submission_type").
		Values(id, name, email, nullable(subject), message, submissionType).
		ToSql()
	if err != nil {
		return fmt.Errorf("build contact insert: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert contact submission: %w", err)
	}

	return nil
}

// CreateEmailSubscription appends a newsletter signup. The unique constraint
// on (email, subscription_type) turns a repeat signup into
// ErrAlreadySubscribed so the caller can show a friendly message instead of
// a failure.
func (r *FormsRepository) CreateEmailSubscription(ctx context.Context, email, subscriptionType string) error {
	id, err := gonanoid.New(21)
	if err != nil {
		return fmt.Errorf("generate id: %w", err)
	}

	query, args, err := psql().
		Insert("prismfund.email_subscriptions").
		Columns("id", "email", "subscription_type").
		Values(id, email, subscriptionType).
		ToSql()
	if err != nil {
		return fmt.Errorf("build subscription insert: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return types.ErrAlreadySubscribed
		}
		return fmt.Errorf("insert email subscription: %w", err)
	}

	return nil
}
