package store

import (
	"context"
	"fmt"

	"prismfund/pkg/types"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5/pgxpool"
)

const settingsTableName = "prismfund.campaign_settings"

const (
	SettingMinContribution = "min_contribution"
	SettingMaxContribution = "max_contribution"
)

// SettingsRepository reads and writes the campaign_settings key/value rows.
// Contribution limits are configuration owned by admins, never constants.
type SettingsRepository struct {
	pool     *pgxpool.Pool
	defaults types.ContributionLimits
}

func NewSettingsRepository(pool *pgxpool.Pool, defaults types.ContributionLimits) *SettingsRepository {
	return &SettingsRepository{pool: pool, defaults: defaults}
}

type settingRow struct {
	SettingKey   string  `db:"setting_key"`
	SettingValue float64 `db:"setting_value"`
}

// Limits returns the configured contribution range, falling back to the
// process defaults for any key that has no row yet.
func (r *SettingsRepository) Limits(ctx context.Context) (types.ContributionLimits, error) {

	query, args, err := psql().
		Select("setting_key", "setting_value").
		From(settingsTableName).
		ToSql()
	if err != nil {
		return types.ContributionLimits{}, fmt.Errorf("failed to generate settings query: %w", err)
	}

	var rows []settingRow
	if err := pgxscan.Select(ctx, r.pool, &rows, query, args...); err != nil {
		return types.ContributionLimits{}, fmt.Errorf("failed to fetch settings: %w", err)
	}

	limits := r.defaults
	for _, row := range rows {
		switch row.SettingKey {
		case SettingMinContribution:
			limits.Min = row.SettingValue
		case SettingMaxContribution:
			limits.Max = row.SettingValue
		}
	}

	return limits, nil
}

func (r *SettingsRepository) UpsertSetting(ctx context.Context, key string, value float64, updatedBy string) error {

	query := `
		INSERT INTO prismfund.campaign_settings (setting_key, setting_value, updated_by)
		VALUES ($1, $2, $3)
		ON CONFLICT (setting_key)
		DO UPDATE SET setting_value = EXCLUDED.setting_value, updated_by = EXCLUDED.updated_by, updated_at = now()`

	_, err := r.pool.Exec(ctx, query, key, value, nullable(updatedBy))
	if err != nil {
		return fmt.Errorf("upsert setting %s: %w", key, err)
	}

	return nil
}

// UpsertLimits writes both contribution bounds in one call, the shape the
// admin settings form submits.
func (r *SettingsRepository) UpsertLimits(ctx context.Context, limits types.ContributionLimits, updatedBy string) error {
	if err := r.UpsertSetting(ctx, SettingMinContribution, limits.Min, updatedBy); err != nil {
		return err
	}
	return r.UpsertSetting(ctx, SettingMaxContribution, limits.Max, updatedBy)
}
