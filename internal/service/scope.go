package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"graspnest.app/api-server/internal/model"
	"graspnest.app/api-server/internal/store"
)

type ScopeKind int

const (
	ScopeGlobal ScopeKind = iota
	ScopeOrganization
	ScopeCommunity
)

// Scope is the resolved visibility of a principal. OrgID is set for
// ScopeOrganization, CommunityID (and its OrgID) for ScopeCommunity.
type Scope struct {
	Kind        ScopeKind
	OrgID       int64
	CommunityID int64
}

// Principal is the authenticated caller as extracted from the access
// token: an email plus the client roles granted by the identity provider.
type Principal struct {
	Email string
	Roles []string
}

func (p Principal) hasRole(role model.Role) bool {
	for _, r := range p.Roles {
		if r == string(role) {
			return true
		}
	}
	return false
}

// RoleResolver turns a principal into a data scope. SuperAdmin wins over
// the narrower roles when a token carries several.
type RoleResolver interface {
	Resolve(ctx context.Context, principal Principal) (Scope, error)
}

type roleResolver struct {
	orgs  store.OrganizationStore
	comms store.CommunityStore
}

func NewRoleResolver(orgs store.OrganizationStore, comms store.CommunityStore) RoleResolver {
	return &roleResolver{orgs: orgs, comms: comms}
}

func (r *roleResolver) Resolve(ctx context.Context, principal Principal) (Scope, error) {
	if principal.hasRole(model.RoleSuperAdmin) {
		return Scope{Kind: ScopeGlobal}, nil
	}

	email := strings.ToLower(strings.TrimSpace(principal.Email))
	if email == "" {
		return Scope{}, fmt.Errorf("token carries no email: %w", ErrUnauthorized)
	}

	if principal.hasRole(model.RoleOrgAdmin) {
		org, err := r.orgs.GetActiveByAdminEmail(ctx, email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return Scope{}, fmt.Errorf("no active organization administered by %q: %w", email, store.ErrNotFound)
			}
			return Scope{}, fmt.Errorf("resolving organization for %q: %w", email, err)
		}
		return Scope{Kind: ScopeOrganization, OrgID: org.ID}, nil
	}

	if principal.hasRole(model.RoleCommunityAdmin) {
		comm, err := r.comms.GetActiveByAdminEmail(ctx, email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return Scope{}, fmt.Errorf("no active community administered by %q: %w", email, store.ErrNotFound)
			}
			return Scope{}, fmt.Errorf("resolving community for %q: %w", email, err)
		}
		return Scope{Kind: ScopeCommunity, OrgID: comm.OrgID, CommunityID: comm.ID}, nil
	}

	return Scope{}, fmt.Errorf("no recognized role on token: %w", ErrUnauthorized)
}
