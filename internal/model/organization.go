package model

import "time"

// Organization is the top tier of the hierarchy. Active false means soft
// deleted; the row stays for audit and its name becomes reusable.
type Organization struct {
	ID          int64     `json:"id"`
	AdminUserID int64     `json:"admin_user_id"`
	Name        string    `json:"name"`
	Type        string    `json:"type"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	State       string    `json:"state"`
	Country     string    `json:"country"`
	RegNum      string    `json:"reg_num"`
	VatID       string    `json:"vat_id"`
	Website     string    `json:"website"`
	Logo        string    `json:"logo"`
	DocUpload   string    `json:"doc_upload"`
	Active      bool      `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
