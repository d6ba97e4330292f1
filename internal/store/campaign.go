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

const campaignTableName = "prismfund.campaigns"

var campaignColumns = utils.StructTagValues(types.Campaign{})

type CampaignRepository struct {
	pool *pgxpool.Pool
}

func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepository {
	return &CampaignRepository{pool: pool}
}

func (r *CampaignRepository) Campaign(ctx context.Context, campaignID string) (*types.Campaign, error) {
	query, args, err := psql().
		Select(campaignColumns...).
		From(campaignTableName).
		Where(sq.Eq{"id": campaignID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate campaign query: %w", err)
	}

	var campaign = new(types.Campaign)
	err = pgxscan.Get(ctx, r.pool, campaign, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrCampaignNotFound
	}

	return campaign, nil
}

func (r *CampaignRepository) ActiveCampaigns(ctx context.Context) ([]*types.Campaign, error) {
	return r.campaignsByStatus(ctx, sq.Eq{"status": types.CampaignStatusActive})
}

func (r *CampaignRepository) AllCampaigns(ctx context.Context) ([]*types.Campaign, error) {
	return r.campaignsByStatus(ctx, nil)
}

func (r *CampaignRepository) campaignsByStatus(ctx context.Context, where any) ([]*types.Campaign, error) {
	builder := psql().
		Select(campaignColumns...).
		From(campaignTableName).
		OrderBy("created_at desc")

	if where != nil {
		builder = builder.Where(where)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate campaigns query: %w", err)
	}

	var campaigns = make([]*types.Campaign, 0)
	err = pgxscan.Select(ctx, r.pool, &campaigns, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch campaigns: %w", err)
	}

	return campaigns, nil
}

func (r *CampaignRepository) CreateCampaign(ctx context.Context, campaign *types.Campaign) error {

	now := time.Now()
	if campaign.ID == "" {
		campaign.ID = utils.NanoID()
	}
	campaign.CreatedAt = now
	campaign.UpdatedAt = now

	query, args, err := psql().Insert(campaignTableName).SetMap(utils.StructToMap(campaign)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert campaign query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create campaign")
}

func (r *CampaignRepository) UpsertCampaign(ctx context.Context, campaign *types.Campaign) error {
	now := time.Now()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now

	campaignMap := utils.StructToMap(campaign)

	updateMap := make(map[string]interface{})
	for k, v := range campaignMap {
		if k != "id" && k != "created_at" {
			updateMap[k] = v
		}
	}

	query, args, err := psql().
		Insert(campaignTableName).
		SetMap(campaignMap).
		Suffix("ON CONFLICT (id) DO UPDATE SET " + buildUpdateClause(updateMap)).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate upsert campaign query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to upsert campaign")
}

func (r *CampaignRepository) UpdateCampaign(ctx context.Context, campaignID string, campaign *types.Campaign) error {

	campaign.ID = campaignID
	campaign.UpdatedAt = time.Now()

	campaignMap := utils.StructToMap(campaign)
	delete(campaignMap, "created_at")

	query, args, err := psql().Update(campaignTableName).SetMap(campaignMap).Where(sq.Eq{"id": campaignID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate update campaign query for campaign %s: %w", campaignID, err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to update campaign")
}

func (r *CampaignRepository) DeleteCampaign(ctx context.Context, campaignID string) error {

	query, args, err := psql().Delete(campaignTableName).Where(sq.Eq{"id": campaignID}).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate delete campaign query for campaign %s: %w", campaignID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrCampaignNotFound
	}

	return nil
}
