package model

import (
	"strings"
	"time"
)

// Role is the admin tier a user holds. Stored on the local mirror row and
// granted as a client role in the identity provider.
type Role string

const (
	RoleSuperAdmin     Role = "SuperAdmin"
	RoleOrgAdmin       Role = "OrgAdmin"
	RoleCommunityAdmin Role = "CommunityAdmin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleOrgAdmin, RoleCommunityAdmin:
		return true
	}
	return false
}

// User is the local mirror of an identity-provider account. Username is
// the lowercased email and is the join key between the two systems.
type User struct {
	ID          int64     `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Role        Role      `json:"role"`
	Contact     string    `json:"contact"`
	OrgID       *int64    `json:"org_id,omitempty"`
	CommunityID *int64    `json:"community_id,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	name := strings.TrimSpace(u.FirstName + " " + u.LastName)
	if name == "" {
		return u.Email
	}
	return name
}
