package model

import "time"

// Community is the middle tier, always bound to an active parent
// organization at creation time.
type Community struct {
	ID            int64     `json:"id"`
	OrgID         int64     `json:"org_id"`
	AdminUserID   int64     `json:"admin_user_id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Blocks        int32     `json:"blocks"`
	UnitsPerBlock int32     `json:"units_per_block"`
	Address       string    `json:"address"`
	City          string    `json:"city"`
	State         string    `json:"state"`
	Country       string    `json:"country"`
	Features      string    `json:"features"`
	Active        bool      `json:"-"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
