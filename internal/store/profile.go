package store

import (
	"context"
	"fmt"
	"time"

	"prismfund/internal/utils"
	"prismfund/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const profileTableName = "prismfund.profiles"

var profileColumns = utils.StructTagValues(types.Profile{})

type ProfileRepository struct {
	pool *pgxpool.Pool
}

func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

func (r *ProfileRepository) Profile(ctx context.Context, userID string) (*types.Profile, error) {

	query, args, err := psql().
		Select(profileColumns...).
		From(profileTableName).
		Where(sq.Eq{"user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate profile query: %w", err)
	}

	var profile types.Profile
	err = pgxscan.Get(ctx, r.pool, &profile, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	return &profile, nil
}

// EnsureProfile creates the member's profile row on first sign-in; an
// existing row is left untouched.
func (r *ProfileRepository) EnsureProfile(ctx context.Context, userID string, displayName string) error {

	query := `
		INSERT INTO prismfund.profiles (user_id, display_name, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id) DO NOTHING`

	_, err := r.pool.Exec(ctx, query, userID, nullable(displayName), types.ProfileRoleMember)
	if err != nil {
		return fmt.Errorf("ensure profile: %w", err)
	}

	return nil
}

// UpdateProfile lets the owning member edit display name and bio. The role
// column is excluded: only PromoteToAdmin touches it.
func (r *ProfileRepository) UpdateProfile(ctx context.Context, userID string, displayName, bio *string) error {

	query, args, err := psql().
		Update(profileTableName).
		Set("display_name", displayName).
		Set("bio", bio).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update profile query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrProfileNotFound
	}

	return nil
}

func (r *ProfileRepository) PromoteToAdmin(ctx context.Context, userID string) error {

	query, args, err := psql().
		Update(profileTableName).
		Set("role", types.ProfileRoleAdmin).
		Set("updated_at", time.Now()).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate promote query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to promote profile")
}
