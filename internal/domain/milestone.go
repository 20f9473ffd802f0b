package domain

import "time"

// Milestone is a funding checkpoint within a campaign. TargetAmount is in paise.
type Milestone struct {
	ID           string
	CampaignID   string
	Title        string
	Description  string
	TargetAmount int64
	Achieved     bool
	AchievedAt   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
