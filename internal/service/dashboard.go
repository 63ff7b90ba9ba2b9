package service

import (
	"context"
	"errors"
	"fmt"

	"graspnest.app/api-server/internal/model"
	"graspnest.app/api-server/internal/store"
)

// Totals are the headline counters for a scope. Tenants is a placeholder
// that is always zero until tenant records exist.
type Totals struct {
	Organizations int64 `json:"organizations"`
	Communities   int64 `json:"communities"`
	Landlords     int64 `json:"landlords"`
	Tenants       int64 `json:"tenants"`
	Blocks        int64 `json:"blocks"`
	Units         int64 `json:"units"`
}

// BreakdownRow is one landlord of an in-scope community, denormalized
// with the community and its admin. Communities without landlords
// contribute no rows.
type BreakdownRow struct {
	OrgID          int64  `json:"org_id"`
	OrgName        string `json:"org_name"`
	CommunityID    int64  `json:"community_id"`
	CommunityName  string `json:"community_name"`
	AdminName      string `json:"admin_name"`
	LandlordName   string `json:"landlord_name"`
	BlockName      string `json:"block_name"`
	LandlordsCount int64  `json:"landlords_count"`
	BlocksCount    int64  `json:"blocks_count"`
	UnitsCount     int64  `json:"units_count"`
	TenantsCount   int64  `json:"tenants_count"`
}

type Dashboard struct {
	Totals    Totals         `json:"totals"`
	Breakdown []BreakdownRow `json:"breakdown"`
}

// OverviewRow is one active organization in the admin overview.
type OverviewRow struct {
	OrgID            int64  `json:"org_id"`
	OrgName          string `json:"org_name"`
	AdminName        string `json:"admin_name"`
	CommunitiesCount int64  `json:"communities_count"`
}

type Overview struct {
	Totals        Totals        `json:"totals"`
	Organizations []OverviewRow `json:"organizations"`
}

// DashboardService aggregates the hierarchy for a resolved scope. All
// reads are plain pool reads; the number of queries is fixed regardless
// of how many communities or landlords are in scope.
type DashboardService interface {
	Dashboard(ctx context.Context, scope Scope) (*Dashboard, error)
	Overview(ctx context.Context) (*Overview, error)
}

type dashboardService struct {
	stores StoreProvider
}

func NewDashboardService(stores StoreProvider) DashboardService {
	return &dashboardService{stores: stores}
}

func (s *dashboardService) Dashboard(ctx context.Context, scope Scope) (*Dashboard, error) {
	comms, orgNames, err := s.scopedCommunities(ctx, scope)
	if err != nil {
		return nil, err
	}

	dash := &Dashboard{Breakdown: []BreakdownRow{}}

	if scope.Kind == ScopeGlobal {
		orgCount, err := s.stores.Organizations().CountActive(ctx)
		if err != nil {
			return nil, fmt.Errorf("counting organizations: %w", err)
		}
		dash.Totals.Organizations = orgCount
	}
	dash.Totals.Communities = int64(len(comms))

	if len(comms) == 0 {
		return dash, nil
	}

	commIDs := make([]int64, len(comms))
	for i, c := range comms {
		commIDs[i] = c.ID
	}

	landlordCount, err := s.stores.Landlords().CountByCommunityIDs(ctx, commIDs)
	if err != nil {
		return nil, fmt.Errorf("counting landlords: %w", err)
	}
	dash.Totals.Landlords = landlordCount

	sums, err := s.stores.Communities().SumBlocksAndUnits(ctx, commIDs)
	if err != nil {
		return nil, fmt.Errorf("summing blocks and units: %w", err)
	}
	dash.Totals.Blocks = sums.Blocks
	dash.Totals.Units = sums.Units

	landlords, err := s.stores.Landlords().ListByCommunityIDs(ctx, commIDs)
	if err != nil {
		return nil, fmt.Errorf("listing landlords: %w", err)
	}
	admins, err := s.stores.Users().ListAdminsByCommunityIDs(ctx, commIDs)
	if err != nil {
		return nil, fmt.Errorf("listing community admins: %w", err)
	}

	adminByComm := make(map[int64]*model.User, len(admins))
	for i := range admins {
		if admins[i].CommunityID != nil {
			adminByComm[*admins[i].CommunityID] = &admins[i]
		}
	}
	landlordsByComm := make(map[int64][]model.Landlord)
	for _, l := range landlords {
		landlordsByComm[l.CommunityID] = append(landlordsByComm[l.CommunityID], l)
	}

	for _, c := range comms {
		group := landlordsByComm[c.ID]
		if len(group) == 0 {
			continue
		}
		adminName := ""
		if admin, ok := adminByComm[c.ID]; ok {
			adminName = admin.FullName()
		}
		for _, l := range group {
			dash.Breakdown = append(dash.Breakdown, BreakdownRow{
				OrgID:          c.OrgID,
				OrgName:        orgNames[c.OrgID],
				CommunityID:    c.ID,
				CommunityName:  c.Name,
				AdminName:      adminName,
				LandlordName:   l.FirstName + " " + l.LastName,
				BlockName:      l.BlockName,
				LandlordsCount: int64(len(group)),
				BlocksCount:    int64(c.Blocks),
				UnitsCount:     int64(c.UnitsPerBlock),
			})
		}
	}

	return dash, nil
}

// scopedCommunities resolves the community set visible to the scope plus
// an org id to name map covering those communities.
func (s *dashboardService) scopedCommunities(ctx context.Context, scope Scope) ([]model.Community, map[int64]string, error) {
	orgNames := make(map[int64]string)

	switch scope.Kind {
	case ScopeGlobal:
		orgs, err := s.stores.Organizations().ListActive(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("listing organizations: %w", err)
		}
		for _, o := range orgs {
			orgNames[o.ID] = o.Name
		}
		comms, err := s.stores.Communities().ListActive(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("listing communities: %w", err)
		}
		return comms, orgNames, nil

	case ScopeOrganization:
		org, err := s.stores.Organizations().GetActiveByID(ctx, scope.OrgID)
		if err != nil {
			return nil, nil, fmt.Errorf("loading organization %d: %w", scope.OrgID, err)
		}
		orgNames[org.ID] = org.Name
		comms, err := s.stores.Communities().ListActiveByOrg(ctx, org.ID)
		if err != nil {
			return nil, nil, fmt.Errorf("listing communities: %w", err)
		}
		return comms, orgNames, nil

	case ScopeCommunity:
		comm, err := s.stores.Communities().GetActiveByID(ctx, scope.CommunityID)
		if err != nil {
			return nil, nil, fmt.Errorf("loading community %d: %w", scope.CommunityID, err)
		}
		org, err := s.stores.Organizations().GetActiveByID(ctx, comm.OrgID)
		if err == nil {
			orgNames[org.ID] = org.Name
		} else if !errors.Is(err, store.ErrNotFound) {
			return nil, nil, fmt.Errorf("loading organization %d: %w", comm.OrgID, err)
		}
		return []model.Community{*comm}, orgNames, nil
	}

	return nil, nil, fmt.Errorf("unknown scope kind %d", scope.Kind)
}

func (s *dashboardService) Overview(ctx context.Context) (*Overview, error) {
	overview := &Overview{Organizations: []OverviewRow{}}

	orgCount, err := s.stores.Organizations().CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting organizations: %w", err)
	}
	commCount, err := s.stores.Communities().CountActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting communities: %w", err)
	}
	landlordCount, err := s.stores.Landlords().CountAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting landlords: %w", err)
	}
	overview.Totals = Totals{
		Organizations: orgCount,
		Communities:   commCount,
		Landlords:     landlordCount,
	}

	orgs, err := s.stores.Organizations().ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing organizations: %w", err)
	}
	if len(orgs) == 0 {
		return overview, nil
	}

	orgIDs := make([]int64, len(orgs))
	for i, o := range orgs {
		orgIDs[i] = o.ID
	}
	admins, err := s.stores.Users().ListAdminsByOrgIDs(ctx, orgIDs)
	if err != nil {
		return nil, fmt.Errorf("listing org admins: %w", err)
	}
	commCounts, err := s.stores.Communities().CountActiveByOrgIDs(ctx, orgIDs)
	if err != nil {
		return nil, fmt.Errorf("counting communities per org: %w", err)
	}

	adminByOrg := make(map[int64]*model.User, len(admins))
	for i := range admins {
		if admins[i].OrgID != nil {
			adminByOrg[*admins[i].OrgID] = &admins[i]
		}
	}

	for _, o := range orgs {
		adminName := ""
		if admin, ok := adminByOrg[o.ID]; ok {
			adminName = admin.FullName()
		}
		overview.Organizations = append(overview.Organizations, OverviewRow{
			OrgID:            o.ID,
			OrgName:          o.Name,
			AdminName:        adminName,
			CommunitiesCount: commCounts[o.ID],
		})
	}

	return overview, nil
}
