package domain

import "time"

// Referral is a shareable code attributing traffic and donations to a campaign.
type Referral struct {
	ID            string
	CampaignID    string
	Code          string
	CreatedBy     string
	Clicks        int64
	DonationCount int64
	CreatedAt     time.Time
}
