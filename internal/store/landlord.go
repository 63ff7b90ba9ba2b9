package store

import (
	"context"

	"graspnest.app/api-server/core/db"
	"graspnest.app/api-server/internal/model"
)

type landlordStore struct {
	q db.DBTX
}

func newLandlordStore(q db.DBTX) LandlordStore {
	return &landlordStore{q: q}
}

func (s *landlordStore) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := s.q.QueryRow(ctx, `SELECT COUNT(*) FROM landlords`).Scan(&count)
	return count, err
}

func (s *landlordStore) CountByCommunityIDs(ctx context.Context, communityIDs []int64) (int64, error) {
	var count int64
	err := s.q.QueryRow(ctx, `SELECT COUNT(*) FROM landlords WHERE community_id = ANY($1)`, communityIDs).Scan(&count)
	return count, err
}

func (s *landlordStore) ListByCommunityIDs(ctx context.Context, communityIDs []int64) ([]model.Landlord, error) {
	rows, err := s.q.Query(ctx, `
		SELECT id, community_id, block_name, first_name, last_name, email, contact, created_at, updated_at
		FROM landlords
		WHERE community_id = ANY($1)
		ORDER BY community_id, last_name`,
		communityIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var landlords []model.Landlord
	for rows.Next() {
		var l model.Landlord
		if err := rows.Scan(
			&l.ID, &l.CommunityID, &l.BlockName, &l.FirstName, &l.LastName,
			&l.Email, &l.Contact, &l.CreatedAt, &l.UpdatedAt,
		); err != nil {
			return nil, err
		}
		landlords = append(landlords, l)
	}
	return landlords, rows.Err()
}
