package service

import (
	"graspnest.app/api-server/internal/identity"
	"graspnest.app/api-server/internal/store"
)

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	identity identity.Client
}

func NewServices(stores *store.Stores, txRunner TxRunner, idc identity.Client) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		identity: idc,
	}
}

func (s *Services) Organizations() OrganizationService {
	return NewOrganizationService(s.txRunner, s.stores, s.identity)
}

func (s *Services) Communities() CommunityService {
	return NewCommunityService(s.txRunner, s.stores, s.identity)
}

func (s *Services) Dashboards() DashboardService {
	return NewDashboardService(s.stores)
}

func (s *Services) Auth() AuthService {
	return NewAuthService(s.stores.Users(), s.identity)
}

func (s *Services) Scopes() RoleResolver {
	return NewRoleResolver(s.stores.Organizations(), s.stores.Communities())
}
