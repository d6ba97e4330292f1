package store

import (
	"context"
	"fmt"
	"strings"

	"prismfund/internal/utils"
	"prismfund/pkg/types"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const inviteTableName = "prismfund.admin_invites"

var inviteColumns = utils.StructTagValues(types.AdminInvite{})

// InviteRepository stores admin_invites rows that pre-authorize an email to
// receive the admin role on its next sign-in.
type InviteRepository struct {
	pool *pgxpool.Pool
}

func NewInviteRepository(pool *pgxpool.Pool) *InviteRepository {
	return &InviteRepository{pool: pool}
}

func (r *InviteRepository) InviteByEmail(ctx context.Context, email string) (*types.AdminInvite, error) {

	query, args, err := psql().
		Select(inviteColumns...).
		From(inviteTableName).
		Where(sq.Eq{"email": strings.ToLower(email)}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite query: %w", err)
	}

	var invite types.AdminInvite
	err = pgxscan.Get(ctx, r.pool, &invite, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return nil, types.ErrInviteNotFound
		}
		return nil, fmt.Errorf("failed to fetch invite: %w", err)
	}

	return &invite, nil
}

func (r *InviteRepository) AllInvites(ctx context.Context) ([]*types.AdminInvite, error) {

	query, args, err := psql().
		Select(inviteColumns...).
		From(inviteTableName).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invites query: %w", err)
	}

	var invites = make([]*types.AdminInvite, 0)
	if err := pgxscan.Select(ctx, r.pool, &invites, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch invites: %w", err)
	}

	return invites, nil
}

// CreateInvite records a pre-authorization. The unique constraint on email
// turns a repeat invite into ErrAlreadyInvited, so concurrent invites for
// the same address cannot both land.
func (r *InviteRepository) CreateInvite(ctx context.Context, email, invitedBy, role string) error {

	email = strings.ToLower(strings.TrimSpace(email))

	query, args, err := psql().
		Insert(inviteTableName).
		Columns("id", "email", "invited_by", "role").
		Values(utils.NanoID(), email, invitedBy, role).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert invite query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	if err != nil {
		if isUniqueViolation(err) {
			return types.ErrAlreadyInvited
		}
		return fmt.Errorf("failed to create invite: %w", err)
	}

	return nil
}
