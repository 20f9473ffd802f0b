package domain

import "time"

// PaymentStatus of a donation record.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
)

// Donation is a single verified contribution toward one campaign. Records are
// immutable once written; Amount is in paise.
type Donation struct {
	ID            string
	CampaignID    string
	UserID        *string
	GuestName     string
	GuestEmail    string
	Amount        int64
	Message       string
	Anonymous     bool
	DonorCountry  string
	OrderID       string
	PaymentID     string
	PaymentStatus PaymentStatus
	CreatedAt     time.Time
}

// DonorSummary aggregates a donor's giving history.
type DonorSummary struct {
	TotalAmount   int64
	CampaignCount int64
	DonationCount int64
}
