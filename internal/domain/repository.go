package domain

import "context"

// CampaignRepository defines access methods for campaigns used by the
// donation flow and the maintenance worker.
type CampaignRepository interface {
	GetByID(ctx context.Context, id string) (*Campaign, error)
	SetStatus(ctx context.Context, id string, status CampaignStatus) error
}

// DonationRepository handles donation persistence. RecordCompleted must write
// the donation and the campaign counter increment in one transaction and
// report false without error when the payment id was already recorded.
type DonationRepository interface {
	RecordCompleted(ctx context.Context, donation *Donation, referralCode string) (bool, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]Donation, error)
	ListByCampaign(ctx context.Context, campaignID string, limit int) ([]Donation, error)
	SummaryByUser(ctx context.Context, userID string) (*DonorSummary, error)
}
