package store

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const engagementTableName = "prismfund.campaign_engagements"

// EngagementRepository tracks which members joined which campaigns. Join and
// leave are explicit operations, even though the UI shows a single button:
// a double-submitted join cannot toggle a member back out.
type EngagementRepository struct {
	pool *pgxpool.Pool
}

func NewEngagementRepository(pool *pgxpool.Pool) *EngagementRepository {
	return &EngagementRepository{pool: pool}
}

// Join inserts the engagement row for the pair if none exists. The unique
// constraint plus ON CONFLICT DO NOTHING guarantees at most one row per
// (campaign_id, user_id); the return value reports whether a row was
// actually created.
func (r *EngagementRepository) Join(ctx context.Context, campaignID, userID string) (bool, error) {

	query, args, err := psql().
		Insert(engagementTableName).
		Columns("campaign_id", "user_id").
		Values(campaignID, userID).
		Suffix("ON CONFLICT (campaign_id, user_id) DO NOTHING").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate join query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to join campaign: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Leave removes the engagement row; reports whether one existed.
func (r *EngagementRepository) Leave(ctx context.Context, campaignID, userID string) (bool, error) {

	query, args, err := psql().
		Delete(engagementTableName).
		Where(sq.Eq{"campaign_id": campaignID, "user_id": userID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate leave query: %w", err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("failed to leave campaign: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (r *EngagementRepository) IsJoined(ctx context.Context, campaignID, userID string) (bool, error) {

	query, args, err := psql().
		Select("1").
		From(engagementTableName).
		Where(sq.Eq{"campaign_id": campaignID, "user_id": userID}).
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to generate membership query: %w", err)
	}

	var one int
	err = pgxscan.Get(ctx, r.pool, &one, query, args...)
	if err != nil {
		if pgxscan.NotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check membership: %w", err)
	}

	return true, nil
}

// EngagedCampaignIDs returns the campaigns a member has joined.
func (r *EngagementRepository) EngagedCampaignIDs(ctx context.Context, userID string) (map[string]bool, error) {

	query, args, err := psql().
		Select("campaign_id").
		From(engagementTableName).
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate engagements query: %w", err)
	}

	var ids []string
	if err := pgxscan.Select(ctx, r.pool, &ids, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch engagements: %w", err)
	}

	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		out[id] = true
	}

	return out, nil
}

type supporterCountRow struct {
	CampaignID string `db:"campaign_id"`
	Supporters int    `db:"supporters"`
}

// SupporterCounts returns the number of engagement rows per campaign. A
// campaign with no supporters simply has no entry.
func (r *EngagementRepository) SupporterCounts(ctx context.Context) (map[string]int, error) {

	query, args, err := psql().
		Select("campaign_id", "count(*) as supporters").
		From(engagementTableName).
		GroupBy("campaign_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate supporter counts query: %w", err)
	}

	var rows []supporterCountRow
	if err := pgxscan.Select(ctx, r.pool, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch supporter counts: %w", err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.CampaignID] = row.Supporters
	}

	return counts, nil
}
