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

// OrganizationProfile carries the descriptive fields of an organization.
type OrganizationProfile struct {
	Name      string
	Type      string
	Address   string
	City      string
	State     string
	Country   string
	RegNum    string
	VatID     string
	Website   string
	Logo      string
	DocUpload string
}

// AdminIdentity describes the admin account to provision alongside an
// entity. Email becomes the username in both systems.
type AdminIdentity struct {
	Email     string
	FirstName string
	LastName  string
	Contact   string
}

// OrganizationView pairs an organization with its bound admin user.
type OrganizationView struct {
	Org   *model.Organization `json:"organization"`
	Admin *model.User         `json:"admin"`
}

// ProvisionResult reports a committed create. NotificationSent false
// means the entity exists but the credential-setup email did not go out.
type ProvisionResult struct {
	Org              *model.Organization `json:"organization,omitempty"`
	Community        *model.Community    `json:"community,omitempty"`
	Admin            *model.User         `json:"admin"`
	NotificationSent bool                `json:"notification_sent"`
}

type OrganizationService interface {
	Create(ctx context.Context, profile OrganizationProfile, admin AdminIdentity) (*ProvisionResult, error)
	Update(ctx context.Context, orgID int64, profile OrganizationProfile, admin AdminIdentity) (*OrganizationView, error)
	Get(ctx context.Context, orgID int64) (*OrganizationView, error)
	GetByName(ctx context.Context, name string) (*OrganizationView, error)
	Remove(ctx context.Context, orgID int64) error
	List(ctx context.Context) ([]model.Organization, error)
}

type organizationService struct {
	tx       TxRunner
	stores   StoreProvider
	identity identity.Client
}

func NewOrganizationService(tx TxRunner, stores StoreProvider, idc identity.Client) OrganizationService {
	return &organizationService{tx: tx, stores: stores, identity: idc}
}

func (s *organizationService) Create(ctx context.Context, profile OrganizationProfile, admin AdminIdentity) (*ProvisionResult, error) {
	email := strings.ToLower(strings.TrimSpace(admin.Email))
	if email == "" {
		return nil, fmt.Errorf("admin email is required: %w", ErrConflict)
	}

	var (
		result     *ProvisionResult
		identityID string
	)
	err := s.tx.WithTx(ctx, func(stores StoreProvider) error {
		if _, err := stores.Organizations().GetActiveByName(ctx, profile.Name); err == nil {
			return fmt.Errorf("organization %q %w", profile.Name, ErrConflict)
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("checking organization name: %w", err)
		}
		if _, err := stores.Users().GetByUsername(ctx, email); err == nil {
			return fmt.Errorf("user %q %w", email, ErrConflict)
		} else if !errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("checking admin username: %w", err)
		}

		extID, err := s.identity.CreateUser(ctx, identity.CreateUserParams{
			Username:  email,
			FirstName: admin.FirstName,
			LastName:  admin.LastName,
			Roles:     []string{string(model.RoleOrgAdmin)},
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
			Role:      model.RoleOrgAdmin,
		}
		if err := stores.Users().Create(ctx, mirror); err != nil {
			return fmt.Errorf("creating admin mirror: %w", err)
		}
		// The mirror must be visible inside this transaction before the
		// entity may reference it.
		mirror, err = stores.Users().GetByUsername(ctx, email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("admin %q: %w", email, ErrInconsistentState)
			}
			return fmt.Errorf("locating admin mirror: %w", err)
		}

		org := &model.Organization{
			ID:          id.New(),
			AdminUserID: mirror.ID,
			Name:        profile.Name,
			Type:        profile.Type,
			Address:     profile.Address,
			City:        profile.City,
			State:       profile.State,
			Country:     profile.Country,
			RegNum:      profile.RegNum,
			VatID:       profile.VatID,
			Website:     profile.Website,
			Logo:        profile.Logo,
			DocUpload:   profile.DocUpload,
			Active:      true,
		}
		if err := stores.Organizations().Create(ctx, org); err != nil {
			return fmt.Errorf("creating organization: %w", err)
		}

		mirror.OrgID = &org.ID
		if err := stores.Users().Update(ctx, mirror); err != nil {
			return fmt.Errorf("binding admin to organization: %w", err)
		}

		result = &ProvisionResult{Org: org, Admin: mirror}
		return nil
	})
	if err != nil {
		s.compensate(ctx, identityID, email)
		return nil, err
	}

	result.NotificationSent = s.notifyAdmin(ctx, identityID, email)

	slog.InfoContext(ctx, "organization created",
		"org_id", result.Org.ID,
		"admin_email", email,
		"notification_sent", result.NotificationSent,
	)
	return result, nil
}

// compensate deletes the already-provisioned identity after the local
// transaction rolled back. Failure here leaves an orphaned identity,
// which is only logged.
func (s *organizationService) compensate(ctx context.Context, identityID, email string) {
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

func (s *organizationService) notifyAdmin(ctx context.Context, identityID, email string) bool {
	if err := s.identity.SendCredentialSetupEmail(ctx, identityID); err != nil {
		slog.WarnContext(ctx, "credential setup email failed",
			"identity_id", identityID, "email", email, "error", err)
		return false
	}
	return true
}

func (s *organizationService) Update(ctx context.Context, orgID int64, profile OrganizationProfile, admin AdminIdentity) (*OrganizationView, error) {
	email := strings.ToLower(strings.TrimSpace(admin.Email))

	var view *OrganizationView
	err := s.tx.WithTx(ctx, func(stores StoreProvider) error {
		org, err := stores.Organizations().GetActiveByID(ctx, orgID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("organization %d: %w", orgID, store.ErrNotFound)
			}
			return fmt.Errorf("loading organization: %w", err)
		}

		// The admin is addressed by email, never replaced through update.
		adminUser, err := stores.Users().GetByID(ctx, org.AdminUserID)
		if err != nil {
			return fmt.Errorf("loading organization admin: %w", err)
		}
		if !strings.EqualFold(adminUser.Email, email) {
			return fmt.Errorf("admin %q for organization %q: %w", email, org.Name, store.ErrNotFound)
		}

		if profile.Name != org.Name {
			if _, err := stores.Organizations().GetActiveByName(ctx, profile.Name); err == nil {
				return fmt.Errorf("organization %q %w", profile.Name, ErrConflict)
			} else if !errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("checking organization name: %w", err)
			}
		}

		org.Name = profile.Name
		org.Type = profile.Type
		org.Address = profile.Address
		org.City = profile.City
		org.State = profile.State
		org.Country = profile.Country
		org.RegNum = profile.RegNum
		org.VatID = profile.VatID
		org.Website = profile.Website
		org.Logo = profile.Logo
		org.DocUpload = profile.DocUpload
		if err := stores.Organizations().Update(ctx, org); err != nil {
			return fmt.Errorf("updating organization: %w", err)
		}

		adminUser.FirstName = admin.FirstName
		adminUser.LastName = admin.LastName
		adminUser.Contact = admin.Contact
		if err := stores.Users().Update(ctx, adminUser); err != nil {
			return fmt.Errorf("updating organization admin: %w", err)
		}

		view = &OrganizationView{Org: org, Admin: adminUser}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return view, nil
}

func (s *organizationService) Get(ctx context.Context, orgID int64) (*OrganizationView, error) {
	org, err := s.stores.Organizations().GetActiveByID(ctx, orgID)
	if err != nil {
		return nil, err
	}
	return s.attachAdmin(ctx, org)
}

func (s *organizationService) GetByName(ctx context.Context, name string) (*OrganizationView, error) {
	org, err := s.stores.Organizations().GetActiveByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return s.attachAdmin(ctx, org)
}

func (s *organizationService) attachAdmin(ctx context.Context, org *model.Organization) (*OrganizationView, error) {
	admin, err := s.stores.Users().GetByID(ctx, org.AdminUserID)
	if err != nil {
		return nil, fmt.Errorf("loading organization admin: %w", err)
	}
	return &OrganizationView{Org: org, Admin: admin}, nil
}

func (s *organizationService) Remove(ctx context.Context, orgID int64) error {
	if err := s.stores.Organizations().Deactivate(ctx, orgID); err != nil {
		return err
	}
	slog.InfoContext(ctx, "organization deactivated", "org_id", orgID)
	return nil
}

func (s *organizationService) List(ctx context.Context) ([]model.Organization, error) {
	return s.stores.Organizations().ListActive(ctx)
}
