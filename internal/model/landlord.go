package model

import "time"

// Landlord is a leaf record under a community. Landlords have no
// identity-provider account of their own.
type Landlord struct {
	ID          int64     `json:"id"`
	CommunityID int64     `json:"community_id"`
	BlockName   string    `json:"block_name"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
	Contact     string    `json:"contact"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
