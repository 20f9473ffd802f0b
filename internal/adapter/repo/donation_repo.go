package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"dreamxec/internal/domain"
)

const uniqueViolation = "23505"

// DonationRepositoryPG implements DonationRepository using PostgreSQL.
type DonationRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewDonationRepository creates a new donation repo.
func NewDonationRepository(pool *pgxpool.Pool) *DonationRepositoryPG {
	return &DonationRepositoryPG{pool: pool}
}

// RecordCompleted writes the donation and the campaign counter increment in a
// single transaction. The unique payment_id makes the write idempotent: when
// the client callback and the webhook both deliver the same payment, the
// second insert affects zero rows and the counter is not touched again. The
// returned bool reports whether this call created the record.
func (r *DonationRepositoryPG) RecordCompleted(ctx context.Context, d *domain.Donation, referralCode string) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `
INSERT INTO donations (id, campaign_id, user_id, guest_name, guest_email, amount, message, anonymous, donor_country, order_id, payment_id, payment_status, created_at)
VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
ON CONFLICT (payment_id) DO NOTHING;
`, d.CampaignID, d.UserID, d.GuestName, d.GuestEmail, d.Amount, d.Message, d.Anonymous, d.DonorCountry, d.OrderID, d.PaymentID, string(domain.PaymentStatusCompleted))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return false, nil
		}
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, nil
	}

	incTag, err := tx.Exec(ctx, `
UPDATE campaigns
SET amount_raised = amount_raised + $2, updated_at = now()
WHERE id = $1;
`, d.CampaignID, d.Amount)
	if err != nil {
		return false, err
	}
	if incTag.RowsAffected() == 0 {
		return false, domain.ErrNotFound
	}

	if referralCode != "" {
		if _, err := tx.Exec(ctx, `
UPDATE referrals
SET donation_count = donation_count + 1
WHERE code = $1;
`, referralCode); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// ListByUser returns the caller's donations, newest first.
func (r *DonationRepositoryPG) ListByUser(ctx context.Context, userID string, limit int) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, campaign_id, user_id, guest_name, guest_email, amount, message, anonymous, donor_country, order_id, payment_id, payment_status, created_at
FROM donations
WHERE user_id = $1
ORDER BY created_at DESC
LIMIT $2;
`, userID, limit)
	if err != nil {
		return nil, err
	}
	return scanDonations(rows)
}

// ListByCampaign returns a campaign's donations, newest first.
func (r *DonationRepositoryPG) ListByCampaign(ctx context.Context, campaignID string, limit int) ([]domain.Donation, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id, campaign_id, user_id, guest_name, guest_email, amount, message, anonymous, donor_country, order_id, payment_id, payment_status, created_at
FROM donations
WHERE campaign_id = $1
ORDER BY created_at DESC
LIMIT $2;
`, campaignID, limit)
	if err != nil {
		return nil, err
	}
	return scanDonations(rows)
}

// SummaryByUser aggregates the caller's completed donations.
func (r *DonationRepositoryPG) SummaryByUser(ctx context.Context, userID string) (*domain.DonorSummary, error) {
	row := r.pool.QueryRow(ctx, `
SELECT COALESCE(SUM(amount), 0), COUNT(DISTINCT campaign_id), COUNT(*)
FROM donations
WHERE user_id = $1 AND payment_status = $2;
`, userID, string(domain.PaymentStatusCompleted))
	var summary domain.DonorSummary
	if err := row.Scan(&summary.TotalAmount, &summary.CampaignCount, &summary.DonationCount); err != nil {
		return nil, err
	}
	return &summary, nil
}

func scanDonations(rows pgx.Rows) ([]domain.Donation, error) {
	defer rows.Close()
	var items []domain.Donation
	for rows.Next() {
		var d domain.Donation
		if err := rows.Scan(&d.ID, &d.CampaignID, &d.UserID, &d.GuestName, &d.GuestEmail, &d.Amount, &d.Message, &d.Anonymous, &d.DonorCountry, &d.OrderID, &d.PaymentID, &d.PaymentStatus, &d.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

var _ domain.DonationRepository = (*DonationRepositoryPG)(nil)
