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

const donationTableName = "prismfund.donations"

var donationColumns = utils.StructTagValues(types.Donation{})

type DonationRepository struct {
	pool *pgxpool.Pool
}

func NewDonationRepository(pool *pgxpool.Pool) *DonationRepository {
	return &DonationRepository{pool: pool}
}

func (r *DonationRepository) Donation(ctx context.Context, donationID string) (*types.Donation, error) {

	query, args, err := psql().Select(donationColumns...).From(donationTableName).
		Where(sq.Eq{"id": donationID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donation query: %w", err)
	}

	var d = new(types.Donation)
	err = pgxscan.Get(ctx, r.pool, d, query, args...)
	if err != nil && !pgxscan.NotFound(err) {
		return nil, err
	}

	if err != nil {
		return nil, types.ErrDonationNotFound
	}

	return d, nil
}

func (r *DonationRepository) AllDonations(ctx context.Context) ([]types.Donation, error) {

	query, args, err := psql().Select(donationColumns...).From(donationTableName).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donations query: %w", err)
	}

	var donations = make([]types.Donation, 0)
	err = pgxscan.Select(ctx, r.pool, &donations, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch donations: %w", err)
	}

	return donations, nil
}

func (r *DonationRepository) DonationsByEmail(ctx context.Context, donorEmail string) ([]types.Donation, error) {

	query, args, err := psql().Select(donationColumns...).From(donationTableName).
		Where(sq.Eq{"donor_email": donorEmail}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to generate donor donations query: %w", err)
	}

	var donations = make([]types.Donation, 0)
	err = pgxscan.Select(ctx, r.pool, &donations, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch donor donations: %w", err)
	}

	return donations, nil
}

// CreateDonation records a validated pledge. The record always enters the
// lifecycle as pending with no confirmation timestamp; the caller supplies
// everything else. Duplicate submissions are not deduplicated: a second
// pledge on the same amount and day is indistinguishable from a real one.
func (r *DonationRepository) CreateDonation(ctx context.Context, d *types.Donation) error {

	d.ID = utils.NanoID()
	d.Status = types.DonationStatusPending
	d.ConfirmedAt = nil
	d.CreatedAt = time.Now()

	query, args, err := psql().Insert(donationTableName).SetMap(utils.StructToMap(d)).ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate insert donation query: %w", err)
	}

	_, err = r.pool.Exec(ctx, query, args...)
	return utils.ErrorWrapOrNil(err, "failed to create donation")
}

// Confirm moves a pending donation to confirmed and stamps confirmed_at.
// The status guard in the WHERE clause makes terminal states write-once:
// a donation that already left pending matches zero rows and the call
// returns ErrDonationNotPending.
func (r *DonationRepository) Confirm(ctx context.Context, donationID string) error {
	return r.transition(ctx, donationID, types.DonationStatusConfirmed, utils.TimePtr(time.Now()))
}

// Reject moves a pending donation to rejected; confirmed_at stays null.
func (r *DonationRepository) Reject(ctx context.Context, donationID string) error {
	return r.transition(ctx, donationID, types.DonationStatusRejected, nil)
}

func (r *DonationRepository) transition(ctx context.Context, donationID string, status types.DonationStatus, confirmedAt *time.Time) error {

	query, args, err := psql().Update(donationTableName).
		Set("status", status).
		Set("confirmed_at", confirmedAt).
		Where(sq.Eq{"id": donationID, "status": types.DonationStatusPending}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to generate transition query for donation %s: %w", donationID, err)
	}

	tag, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update donation status: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return types.ErrDonationNotPending
	}

	return nil
}
