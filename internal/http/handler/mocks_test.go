package handler_test

import (
	"context"

	"graspnest.app/api-server/internal/identity"
	"graspnest.app/api-server/internal/model"
	"graspnest.app/api-server/internal/service"
)

type mockOrganizationService struct {
	createFn    func(ctx context.Context, profile service.OrganizationProfile, admin service.AdminIdentity) (*service.ProvisionResult, error)
	updateFn    func(ctx context.Context, orgID int64, profile service.OrganizationProfile, admin service.AdminIdentity) (*service.OrganizationView, error)
	getFn       func(ctx context.Context, orgID int64) (*service.OrganizationView, error)
	getByNameFn func(ctx context.Context, name string) (*service.OrganizationView, error)
	removeFn    func(ctx context.Context, orgID int64) error
	listFn      func(ctx context.Context) ([]model.Organization, error)
}

func (m *mockOrganizationService) Create(ctx context.Context, profile service.OrganizationProfile, admin service.AdminIdentity) (*service.ProvisionResult, error) {
	if m.createFn != nil {
		return m.createFn(ctx, profile, admin)
	}
	return nil, nil
}

func (m *mockOrganizationService) Update(ctx context.Context, orgID int64, profile service.OrganizationProfile, admin service.AdminIdentity) (*service.OrganizationView, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, orgID, profile, admin)
	}
	return nil, nil
}

func (m *mockOrganizationService) Get(ctx context.Context, orgID int64) (*service.OrganizationView, error) {
	if m.getFn != nil {
		return m.getFn(ctx, orgID)
	}
	return nil, nil
}

func (m *mockOrganizationService) GetByName(ctx context.Context, name string) (*service.OrganizationView, error) {
	if m.getByNameFn != nil {
		return m.getByNameFn(ctx, name)
	}
	return nil, nil
}

func (m *mockOrganizationService) Remove(ctx context.Context, orgID int64) error {
	if m.removeFn != nil {
		return m.removeFn(ctx, orgID)
	}
	return nil
}

func (m *mockOrganizationService) List(ctx context.Context) ([]model.Organization, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return []model.Organization{}, nil
}

type mockAuthService struct {
	loginFn          func(ctx context.Context, username, password string) (*identity.TokenPair, error)
	refreshFn        func(ctx context.Context, refreshToken string) (*identity.TokenPair, error)
	forgetPasswordFn func(ctx context.Context, username string) (bool, error)
}

func (m *mockAuthService) Login(ctx context.Context, username, password string) (*identity.TokenPair, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, username, password)
	}
	return &identity.TokenPair{}, nil
}

func (m *mockAuthService) Refresh(ctx context.Context, refreshToken string) (*identity.TokenPair, error) {
	if m.refreshFn != nil {
		return m.refreshFn(ctx, refreshToken)
	}
	return &identity.TokenPair{}, nil
}

func (m *mockAuthService) ForgetPassword(ctx context.Context, username string) (bool, error) {
	if m.forgetPasswordFn != nil {
		return m.forgetPasswordFn(ctx, username)
	}
	return true, nil
}

type mockDashboardService struct {
	dashboardFn func(ctx context.Context, scope service.Scope) (*service.Dashboard, error)
	overviewFn  func(ctx context.Context) (*service.Overview, error)
}

func (m *mockDashboardService) Dashboard(ctx context.Context, scope service.Scope) (*service.Dashboard, error) {
	if m.dashboardFn != nil {
		return m.dashboardFn(ctx, scope)
	}
	return &service.Dashboard{}, nil
}

func (m *mockDashboardService) Overview(ctx context.Context) (*service.Overview, error) {
	if m.overviewFn != nil {
		return m.overviewFn(ctx)
	}
	return &service.Overview{}, nil
}

type mockRoleResolver struct {
	resolveFn func(ctx context.Context, principal service.Principal) (service.Scope, error)
}

func (m *mockRoleResolver) Resolve(ctx context.Context, principal service.Principal) (service.Scope, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, principal)
	}
	return service.Scope{}, nil
}
