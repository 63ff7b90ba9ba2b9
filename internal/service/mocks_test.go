package service_test

import (
	"context"

	"graspnest.app/api-server/internal/identity"
	"graspnest.app/api-server/internal/model"
	"graspnest.app/api-server/internal/service"
	"graspnest.app/api-server/internal/store"
)

type mockUserStore struct {
	getByIDFn       func(ctx context.Context, id int64) (*model.User, error)
	getByUsernameFn func(ctx context.Context, username string) (*model.User, error)
	getByEmailFn    func(ctx context.Context, email string) (*model.User, error)
	createFn        func(ctx context.Context, user *model.User) error
	updateFn        func(ctx context.Context, user *model.User) error
	adminsByOrgFn   func(ctx context.Context, orgIDs []int64) ([]model.User, error)
	adminsByCommFn  func(ctx context.Context, communityIDs []int64) ([]model.User, error)
	createCalls     int
	updateCalls     int
}

func (m *mockUserStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	if m.getByUsernameFn != nil {
		return m.getByUsernameFn(ctx, username)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.getByEmailFn != nil {
		return m.getByEmailFn(ctx, email)
	}
	return nil, store.ErrNotFound
}

func (m *mockUserStore) Create(ctx context.Context, user *model.User) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) Update(ctx context.Context, user *model.User) error {
	m.updateCalls++
	if m.updateFn != nil {
		return m.updateFn(ctx, user)
	}
	return nil
}

func (m *mockUserStore) ListAdminsByOrgIDs(ctx context.Context, orgIDs []int64) ([]model.User, error) {
	if m.adminsByOrgFn != nil {
		return m.adminsByOrgFn(ctx, orgIDs)
	}
	return nil, nil
}

func (m *mockUserStore) ListAdminsByCommunityIDs(ctx context.Context, communityIDs []int64) ([]model.User, error) {
	if m.adminsByCommFn != nil {
		return m.adminsByCommFn(ctx, communityIDs)
	}
	return nil, nil
}

type mockOrganizationStore struct {
	getByIDFn            func(ctx context.Context, id int64) (*model.Organization, error)
	getActiveByIDFn      func(ctx context.Context, id int64) (*model.Organization, error)
	getActiveByNameFn    func(ctx context.Context, name string) (*model.Organization, error)
	getActiveByAdminFn   func(ctx context.Context, email string) (*model.Organization, error)
	createFn             func(ctx context.Context, org *model.Organization) error
	updateFn             func(ctx context.Context, org *model.Organization) error
	deactivateFn         func(ctx context.Context, id int64) error
	countActiveFn        func(ctx context.Context) (int64, error)
	listActiveFn         func(ctx context.Context) ([]model.Organization, error)
	createCalls          int
	countActiveCalls     int
	listActiveCalls      int
	getActiveByAdminCall int
}

func (m *mockOrganizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	if m.getByIDFn != nil {
		return m.getByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrganizationStore) GetActiveByID(ctx context.Context, id int64) (*model.Organization, error) {
	if m.getActiveByIDFn != nil {
		return m.getActiveByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrganizationStore) GetActiveByName(ctx context.Context, name string) (*model.Organization, error) {
	if m.getActiveByNameFn != nil {
		return m.getActiveByNameFn(ctx, name)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrganizationStore) GetActiveByAdminEmail(ctx context.Context, email string) (*model.Organization, error) {
	m.getActiveByAdminCall++
	if m.getActiveByAdminFn != nil {
		return m.getActiveByAdminFn(ctx, email)
	}
	return nil, store.ErrNotFound
}

func (m *mockOrganizationStore) Create(ctx context.Context, org *model.Organization) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, org)
	}
	return nil
}

func (m *mockOrganizationStore) Update(ctx context.Context, org *model.Organization) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, org)
	}
	return nil
}

func (m *mockOrganizationStore) Deactivate(ctx context.Context, id int64) error {
	if m.deactivateFn != nil {
		return m.deactivateFn(ctx, id)
	}
	return nil
}

func (m *mockOrganizationStore) CountActive(ctx context.Context) (int64, error) {
	m.countActiveCalls++
	if m.countActiveFn != nil {
		return m.countActiveFn(ctx)
	}
	return 0, nil
}

func (m *mockOrganizationStore) ListActive(ctx context.Context) ([]model.Organization, error) {
	m.listActiveCalls++
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx)
	}
	return []model.Organization{}, nil
}

type mockCommunityStore struct {
	getActiveByIDFn      func(ctx context.Context, id int64) (*model.Community, error)
	getActiveByNameFn    func(ctx context.Context, name string) (*model.Community, error)
	getActiveByAdminFn   func(ctx context.Context, email string) (*model.Community, error)
	createFn             func(ctx context.Context, comm *model.Community) error
	updateFn             func(ctx context.Context, comm *model.Community) error
	deactivateFn         func(ctx context.Context, id int64) error
	countActiveFn        func(ctx context.Context) (int64, error)
	listActiveFn         func(ctx context.Context) ([]model.Community, error)
	listActiveByOrgFn    func(ctx context.Context, orgID int64) ([]model.Community, error)
	countActiveByOrgsFn  func(ctx context.Context, orgIDs []int64) (map[int64]int64, error)
	sumBlocksAndUnitsFn  func(ctx context.Context, ids []int64) (store.BlockUnitSums, error)
	createCalls          int
	listActiveByOrgCalls int
	sumCalls             int
}

func (m *mockCommunityStore) GetActiveByID(ctx context.Context, id int64) (*model.Community, error) {
	if m.getActiveByIDFn != nil {
		return m.getActiveByIDFn(ctx, id)
	}
	return nil, store.ErrNotFound
}

func (m *mockCommunityStore) GetActiveByName(ctx context.Context, name string) (*model.Community, error) {
	if m.getActiveByNameFn != nil {
		return m.getActiveByNameFn(ctx, name)
	}
	return nil, store.ErrNotFound
}

func (m *mockCommunityStore) GetActiveByAdminEmail(ctx context.Context, email string) (*model.Community, error) {
	if m.getActiveByAdminFn != nil {
		return m.getActiveByAdminFn(ctx, email)
	}
	return nil, store.ErrNotFound
}

func (m *mockCommunityStore) Create(ctx context.Context, comm *model.Community) error {
	m.createCalls++
	if m.createFn != nil {
		return m.createFn(ctx, comm)
	}
	return nil
}

func (m *mockCommunityStore) Update(ctx context.Context, comm *model.Community) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, comm)
	}
	return nil
}

func (m *mockCommunityStore) Deactivate(ctx context.Context, id int64) error {
	if m.deactivateFn != nil {
		return m.deactivateFn(ctx, id)
	}
	return nil
}

func (m *mockCommunityStore) CountActive(ctx context.Context) (int64, error) {
	if m.countActiveFn != nil {
		return m.countActiveFn(ctx)
	}
	return 0, nil
}

func (m *mockCommunityStore) ListActive(ctx context.Context) ([]model.Community, error) {
	if m.listActiveFn != nil {
		return m.listActiveFn(ctx)
	}
	return []model.Community{}, nil
}

func (m *mockCommunityStore) ListActiveByOrg(ctx context.Context, orgID int64) ([]model.Community, error) {
	m.listActiveByOrgCalls++
	if m.listActiveByOrgFn != nil {
		return m.listActiveByOrgFn(ctx, orgID)
	}
	return []model.Community{}, nil
}

func (m *mockCommunityStore) CountActiveByOrgIDs(ctx context.Context, orgIDs []int64) (map[int64]int64, error) {
	if m.countActiveByOrgsFn != nil {
		return m.countActiveByOrgsFn(ctx, orgIDs)
	}
	return map[int64]int64{}, nil
}

func (m *mockCommunityStore) SumBlocksAndUnits(ctx context.Context, ids []int64) (store.BlockUnitSums, error) {
	m.sumCalls++
	if m.sumBlocksAndUnitsFn != nil {
		return m.sumBlocksAndUnitsFn(ctx, ids)
	}
	return store.BlockUnitSums{}, nil
}

type mockLandlordStore struct {
	countAllFn     func(ctx context.Context) (int64, error)
	countByCommsFn func(ctx context.Context, communityIDs []int64) (int64, error)
	listByCommsFn  func(ctx context.Context, communityIDs []int64) ([]model.Landlord, error)
	listCalls      int
}

func (m *mockLandlordStore) CountAll(ctx context.Context) (int64, error) {
	if m.countAllFn != nil {
		return m.countAllFn(ctx)
	}
	return 0, nil
}

func (m *mockLandlordStore) CountByCommunityIDs(ctx context.Context, communityIDs []int64) (int64, error) {
	if m.countByCommsFn != nil {
		return m.countByCommsFn(ctx, communityIDs)
	}
	return 0, nil
}

func (m *mockLandlordStore) ListByCommunityIDs(ctx context.Context, communityIDs []int64) ([]model.Landlord, error) {
	m.listCalls++
	if m.listByCommsFn != nil {
		return m.listByCommsFn(ctx, communityIDs)
	}
	return []model.Landlord{}, nil
}

type mockStoreProvider struct {
	users *mockUserStore
	orgs  *mockOrganizationStore
	comms *mockCommunityStore
	lords *mockLandlordStore
}

func newMockStoreProvider() *mockStoreProvider {
	return &mockStoreProvider{
		users: &mockUserStore{},
		orgs:  &mockOrganizationStore{},
		comms: &mockCommunityStore{},
		lords: &mockLandlordStore{},
	}
}

func (m *mockStoreProvider) Users() store.UserStore                 { return m.users }
func (m *mockStoreProvider) Organizations() store.OrganizationStore { return m.orgs }
func (m *mockStoreProvider) Communities() store.CommunityStore      { return m.comms }
func (m *mockStoreProvider) Landlords() store.LandlordStore         { return m.lords }

type mockTxRunner struct {
	provider *mockStoreProvider
	withTxFn func(ctx context.Context, fn func(stores service.StoreProvider) error) error
}

func (m *mockTxRunner) WithTx(ctx context.Context, fn func(stores service.StoreProvider) error) error {
	if m.withTxFn != nil {
		return m.withTxFn(ctx, fn)
	}
	return fn(m.provider)
}

type mockIdentityClient struct {
	createUserFn      func(ctx context.Context, params identity.CreateUserParams) (string, error)
	deleteUserFn      func(ctx context.Context, userID string) error
	setupEmailFn      func(ctx context.Context, userID string) error
	resetEmailFn      func(ctx context.Context, email string) (bool, error)
	authenticateFn    func(ctx context.Context, username, password string) (*identity.TokenPair, error)
	refreshFn         func(ctx context.Context, refreshToken string) (*identity.TokenPair, error)
	createUserCalls   int
	deleteUserCalls   int
	setupEmailCalls   int
	lastDeletedUserID string
}

func (m *mockIdentityClient) CreateUser(ctx context.Context, params identity.CreateUserParams) (string, error) {
	m.createUserCalls++
	if m.createUserFn != nil {
		return m.createUserFn(ctx, params)
	}
	return "identity-1", nil
}

func (m *mockIdentityClient) DeleteUser(ctx context.Context, userID string) error {
	m.deleteUserCalls++
	m.lastDeletedUserID = userID
	if m.deleteUserFn != nil {
		return m.deleteUserFn(ctx, userID)
	}
	return nil
}

func (m *mockIdentityClient) SendCredentialSetupEmail(ctx context.Context, userID string) error {
	m.setupEmailCalls++
	if m.setupEmailFn != nil {
		return m.setupEmailFn(ctx, userID)
	}
	return nil
}

func (m *mockIdentityClient) SendPasswordResetEmail(ctx context.Context, email string) (bool, error) {
	if m.resetEmailFn != nil {
		return m.resetEmailFn(ctx, email)
	}
	return true, nil
}

func (m *mockIdentityClient) Authenticate(ctx context.Context, username, password string) (*identity.TokenPair, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, username, password)
	}
	return &identity.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (m *mockIdentityClient) Refresh(ctx context.Context, refreshToken string) (*identity.TokenPair, error) {
	if m.refreshFn != nil {
		return m.refreshFn(ctx, refreshToken)
	}
	return &identity.TokenPair{AccessToken: "access2", RefreshToken: "refresh2"}, nil
}
