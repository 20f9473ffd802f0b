package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"dreamxec/internal/domain"
	"dreamxec/internal/sqlinline"
)

// CampaignRepositoryPG implements CampaignRepository using PostgreSQL.
type CampaignRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewCampaignRepository creates a new campaign repo.
func NewCampaignRepository(pool *pgxpool.Pool) *CampaignRepositoryPG {
	return &CampaignRepositoryPG{pool: pool}
}

// GetByID loads a single campaign.
func (r *CampaignRepositoryPG) GetByID(ctx context.Context, id string) (*domain.Campaign, error) {
	row := r.pool.QueryRow(ctx, sqlinline.QSelectCampaignByID, id)
	var c domain.Campaign
	if err := row.Scan(&c.ID, &c.OwnerID, &c.ClubID, &c.Title, &c.Description, &c.Category, &c.GoalAmount, &c.AmountRaised, &c.CoverURL, &c.Status, &c.Deadline, &c.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

// SetStatus moves a campaign through its moderation lifecycle.
func (r *CampaignRepositoryPG) SetStatus(ctx context.Context, id string, status domain.CampaignStatus) error {
	tag, err := r.pool.Exec(ctx, sqlinline.QUpdateCampaignStatus, id, string(status))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.CampaignRepository = (*CampaignRepositoryPG)(nil)
