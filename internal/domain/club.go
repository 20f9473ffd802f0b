package domain

import "time"

// ClubVerification is the moderation state of a college club.
type ClubVerification string

const (
	ClubPending  ClubVerification = "pending"
	ClubVerified ClubVerification = "verified"
	ClubRejected ClubVerification = "rejected"
)

// Club is a college club that can host campaigns once verified.
type Club struct {
	ID           string
	OwnerID      string
	Name         string
	College      string
	Description  string
	Verification ClubVerification
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
