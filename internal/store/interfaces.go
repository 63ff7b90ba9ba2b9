package store

import (
	"context"
	"errors"

	"graspnest.app/api-server/internal/model"
)

var ErrNotFound = errors.New("not found")

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Create(ctx context.Context, user *model.User) error
	Update(ctx context.Context, user *model.User) error
	// ListAdminsByOrgIDs returns the bound OrgAdmin users for the given
	// organizations in one query.
	ListAdminsByOrgIDs(ctx context.Context, orgIDs []int64) ([]model.User, error)
	// ListAdminsByCommunityIDs returns the bound CommunityAdmin users for
	// the given communities in one query.
	ListAdminsByCommunityIDs(ctx context.Context, communityIDs []int64) ([]model.User, error)
}

type OrganizationStore interface {
	GetByID(ctx context.Context, id int64) (*model.Organization, error)
	GetActiveByID(ctx context.Context, id int64) (*model.Organization, error)
	GetActiveByName(ctx context.Context, name string) (*model.Organization, error)
	// GetActiveByAdminEmail resolves the active organization whose bound
	// admin user has the given email. Single indexed lookup.
	GetActiveByAdminEmail(ctx context.Context, email string) (*model.Organization, error)
	Create(ctx context.Context, org *model.Organization) error
	Update(ctx context.Context, org *model.Organization) error
	Deactivate(ctx context.Context, id int64) error // soft delete
	CountActive(ctx context.Context) (int64, error)
	ListActive(ctx context.Context) ([]model.Organization, error)
}

type CommunityStore interface {
	GetActiveByID(ctx context.Context, id int64) (*model.Community, error)
	GetActiveByName(ctx context.Context, name string) (*model.Community, error)
	GetActiveByAdminEmail(ctx context.Context, email string) (*model.Community, error)
	Create(ctx context.Context, comm *model.Community) error
	Update(ctx context.Context, comm *model.Community) error
	Deactivate(ctx context.Context, id int64) error // soft delete
	CountActive(ctx context.Context) (int64, error)
	ListActive(ctx context.Context) ([]model.Community, error)
	ListActiveByOrg(ctx context.Context, orgID int64) ([]model.Community, error)
	// CountActiveByOrgIDs returns per-organization community counts in a
	// single GROUP BY query. Organizations with zero communities are absent
	// from the map.
	CountActiveByOrgIDs(ctx context.Context, orgIDs []int64) (map[int64]int64, error)
	// SumBlocksAndUnits totals block and unit counts over the given
	// communities with SQL aggregates, not application-side summing.
	SumBlocksAndUnits(ctx context.Context, ids []int64) (BlockUnitSums, error)
}

type BlockUnitSums struct {
	Blocks int64
	Units  int64
}

type LandlordStore interface {
	CountAll(ctx context.Context) (int64, error)
	CountByCommunityIDs(ctx context.Context, communityIDs []int64) (int64, error)
	// ListByCommunityIDs fetches all landlords of the given communities in
	// one query; callers group the result in memory.
	ListByCommunityIDs(ctx context.Context, communityIDs []int64) ([]model.Landlord, error)
}
