package domain

import "time"

// CampaignStatus is the moderation lifecycle of a campaign.
type CampaignStatus string

const (
	CampaignStatusPending   CampaignStatus = "pending"
	CampaignStatusApproved  CampaignStatus = "approved"
	CampaignStatusRejected  CampaignStatus = "rejected"
	CampaignStatusCompleted CampaignStatus = "completed"
)

// Campaign is a fundraising project. Monetary fields are in paise.
type Campaign struct {
	ID           string
	OwnerID      string
	ClubID       *string
	Title        string
	Description  string
	Category     string
	GoalAmount   int64
	AmountRaised int64
	CoverURL     string
	Status       CampaignStatus
	Deadline     *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AcceptsDonations reports whether new donation orders may target the campaign.
func (c Campaign) AcceptsDonations(now time.Time) bool {
	if c.Status != CampaignStatusApproved {
		return false
	}
	if c.Deadline != nil && now.After(*c.Deadline) {
		return false
	}
	return true
}
