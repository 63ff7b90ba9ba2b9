package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"graspnest.app/api-server/common/id"
	"graspnest.app/api-server/internal/identity"
	"graspnest.app/api-server/internal/model"
	"graspnest.app/api-server/internal/store"
)

// CommunityProfile carries the descriptive fields of a community.
type CommunityProfile struct {
	Name          string
	Type          string
	Blocks        int32
	UnitsPerBlock int32
	Address       string
	City          string
	State         string
	Country       string
	Features      string
}

// CommunityView pairs a community with its bound admin user.
type CommunityView struct {
	Community *model.Community `json:"community"`
	Admin     *model.User      `json:"admin"`
}

type CommunityService interface {
	// Create provisions a community under the given active organization.
	// The parent is verified before the identity provider is touched.
	Create(ctx context.Context, orgID int64, profile CommunityProfile, admin AdminIdentity) (*ProvisionResult, error)
	Update(ctx context.Context, communityID int64, profile CommunityProfile, admin AdminIdentity) (*CommunityView, error)
	Get(ctx context.Context, communityID int64) (*CommunityView, error)
	Remove(ctx context.Context, communityID int64) error
	List(ctx context.Context) ([]model.Community, error)
	ListByOrg(ctx context.Context, orgID int64) ([]model.Community, error)
}

type communityService struct {
	tx       TxRunner
	stores   StoreProvider
	identity identity.Client
}

func NewCommunityService(tx TxRunner, stores StoreProvider, idc identity.Client) CommunityService {
	return &communityService{tx: tx, stores: stores, identity: idc}
}

func (s *communityService) Create(ctx context.Context, orgID int64, profile CommunityProfile, admin AdminIdentity) (*ProvisionResult, error) {
	email := strings.ToLower(strings.TrimSpace(admin.Email))
	if email == "" {
		return nil, fmt.Errorf("admin email is required: %w", ErrConflict)
	}

	var (
		result     *ProvisionResult
		identityID string
	)
	err := s.tx.WithTx(ctx, func(stores StoreProvider) error {
		if _, err := stores.Communities().GetActiveByName(ctx, profile.Name); err == nil {
			return fmt.Errorf("community %q %w", profile.Name, ErrConflict)
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("checking community name: %w", err)
		}
		if _, err := stores.Users().GetByUsername(ctx, email); err == nil {
			return fmt.Errorf("user %q %w", email, ErrConflict)
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("checking admin username: %w", err)
		}

		org, err := stores.Organizations().GetActiveByID(ctx, orgID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("organization %d: %w", orgID, store.ErrNotFound)
			}
			return fmt.Errorf("loading parent organization: %w", err)
		}

		extID, err := s.identity.CreateUser(ctx, identity.CreateUserParams{
			Username:  email,
			FirstName: admin.FirstName,
			LastName:  admin.LastName,
			Roles:     []string{string(model.RoleCommunityAdmin)},
		})
		if err != nil {
			slog.ErrorContext(ctx, "identity create failed", "email", email, "error", err)
			return fmt.Errorf("provisioning admin %q: %w", email, ErrProvisioningFailed)
		}
		identityID = extID

		mirror := &model.User{
			ID:        id.New(),
			Username:  email,
			Email:     email,
			FirstName: admin.FirstName,
			LastName:  admin.LastName,
			Contact:   admin.Contact,
			Role:      model.RoleCommunityAdmin,
		}
		if err := stores.Users().Create(ctx, mirror); err != nil {
			return fmt.Errorf("creating admin mirror: %w", err)
		}
		mirror, err = stores.Users().GetByUsername(ctx, email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("admin %q: %w", email, ErrInconsistentState)
			}
			return fmt.Errorf("locating admin mirror: %w", err)
		}

		comm := &model.Community{
			ID:            id.New(),
			OrgID:         org.ID,
			AdminUserID:   mirror.ID,
			Name:          profile.Name,
			Type:          profile.Type,
			Blocks:        profile.Blocks,
			UnitsPerBlock: profile.UnitsPerBlock,
			Address:       profile.Address,
			City:          profile.City,
			State:         profile.State,
			Country:       profile.Country,
			Features:      profile.Features,
			Active:        true,
		}
		if err := stores.Communities().Create(ctx, comm); err != nil {
			return fmt.Errorf("creating community: %w", err)
		}

		mirror.OrgID = &org.ID
		mirror.CommunityID = &comm.ID
		if err := stores.Users().Update(ctx, mirror); err != nil {
			return fmt.Errorf("binding admin to community: %w", err)
		}

		result = &ProvisionResult{Community: comm, Admin: mirror}
		return nil
	})
	if err != nil {
		s.compensate(ctx, identityID, email)
		return nil, err
	}

	result.NotificationSent = s.notifyAdmin(ctx, identityID, email)

	slog.InfoContext(ctx, "community created",
		"community_id", result.Community.ID,
		"org_id", result.Community.OrgID,
		"admin_email", email,
		"notification_sent", result.NotificationSent,
	)
	return result, nil
}

func (s *communityService) compensate(ctx context.Context, identityID, email string) {
	if identityID == "" {
		return
	}
	if err := s.identity.DeleteUser(ctx, identityID); err != nil {
		slog.ErrorContext(ctx, "compensating identity delete failed, identity orphaned",
			"identity_id", identityID, "email", email, "error", err)
		return
	}
	slog.WarnContext(ctx, "rolled back provisioned identity",
		"identity_id", identityID, "email", email)
}

func (s *communityService) notifyAdmin(ctx context.Context, identityID, email string) bool {
	if err := s.identity.SendCredentialSetupEmail(ctx, identityID); err != nil {
		slog.WarnContext(ctx, "credential setup email failed",
			"identity_id", identityID, "email", email, "error", err)
		return false
	}
	return true
}

func (s *communityService) Update(ctx context.Context, communityID int64, profile CommunityProfile, admin AdminIdentity) (*CommunityView, error) {
	email := strings.ToLower(strings.TrimSpace(admin.Email))

	var view *CommunityView
	err := s.tx.WithTx(ctx, func(stores StoreProvider) error {
		comm, err := stores.Communities().GetActiveByID(ctx, communityID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("community %d: %w", communityID, store.ErrNotFound)
			}
			return fmt.Errorf("loading community: %w", err)
		}

		adminUser, err := stores.Users().GetByID(ctx, comm.AdminUserID)
		if err != nil {
			return fmt.Errorf("loading community admin: %w", err)
		}
		if !strings.EqualFold(adminUser.Email, email) {
			return fmt.Errorf("admin %q for community %q: %w", email, comm.Name, store.ErrNotFound)
		}

		if profile.Name != comm.Name {
			if _, err := stores.Communities().GetActiveByName(ctx, profile.Name); err == nil {
				return fmt.Errorf("community %q %w", profile.Name, ErrConflict)
			} else if !errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("checking community name: %w", err)
			}
		}

		comm.Name = profile.Name
		comm.Type = profile.Type
		comm.Blocks = profile.Blocks
		comm.UnitsPerBlock = profile.UnitsPerBlock
		comm.Address = profile.Address
		comm.City = profile.City
		comm.State = profile.State
		comm.Country = profile.Country
		comm.Features = profile.Features
		if err := stores.Communities().Update(ctx, comm); err != nil {
			return fmt.Errorf("updating community: %w", err)
		}

		adminUser.FirstName = admin.FirstName
		adminUser.LastName = admin.LastName
		adminUser.Contact = admin.Contact
		if err := stores.Users().Update(ctx, adminUser); err != nil {
			return fmt.Errorf("updating community admin: %w", err)
		}

		view = &CommunityView{Community: comm, Admin: adminUser}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *communityService) Get(ctx context.Context, communityID int64) (*CommunityView, error) {
	comm, err := s.stores.Communities().GetActiveByID(ctx, communityID)
	if err != nil {
		return nil, err
	}
	admin, err := s.stores.Users().GetByID(ctx, comm.AdminUserID)
	if err != nil {
		return nil, fmt.Errorf("loading community admin: %w", err)
	}
	return &CommunityView{Community: comm, Admin: admin}, nil
}

func (s *communityService) Remove(ctx context.Context, communityID int64) error {
	if err := s.stores.Communities().Deactivate(ctx, communityID); err != nil {
		return err
	}
	slog.InfoContext(ctx, "community deactivated", "community_id", communityID)
	return nil
}

func (s *communityService) List(ctx context.Context) ([]model.Community, error) {
	return s.stores.Communities().ListActive(ctx)
}

func (s *communityService) ListByOrg(ctx context.Context, orgID int64) ([]model.Community, error) {
	return s.stores.Communities().ListActiveByOrg(ctx, orgID)
}
