package store

import (
	"graspnest.app/api-server/core/db"
)

// Stores bundles the per-entity stores over one query surface. Bound to the
// pool for plain reads, or to an open transaction inside TxRunner.WithTx.
type Stores struct {
	q db.DBTX
}

func NewStores(q db.DBTX) *Stores {
	return &Stores{q: q}
}

func (s *Stores) Users() UserStore {
	return newUserStore(s.q)
}

func (s *Stores) Organizations() OrganizationStore {
	return newOrganizationStore(s.q)
}

func (s *Stores) Communities() CommunityStore {
	return newCommunityStore(s.q)
}

func (s *Stores) Landlords() LandlordStore {
	return newLandlordStore(s.q)
}
