package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"graspnest.app/api-server/core/db"
	"graspnest.app/api-server/internal/model"
)

const communityColumns = `id, org_id, name, community_type, blocks, units_per_block, address, city, state, country, features, admin_user_id, active, created_at, updated_at`

type communityStore struct {
	q db.DBTX
}

func newCommunityStore(q db.DBTX) CommunityStore {
	return &communityStore{q: q}
}

func (s *communityStore) GetActiveByID(ctx context.Context, id int64) (*model.Community, error) {
	row := s.q.QueryRow(ctx, `SELECT `+communityColumns+` FROM communities WHERE id = $1 AND active`, id)
	return scanCommunity(row)
}

func (s *communityStore) GetActiveByName(ctx context.Context, name string) (*model.Community, error) {
	row := s.q.QueryRow(ctx, `SELECT `+communityColumns+` FROM communities WHERE name = $1 AND active`, name)
	return scanCommunity(row)
}

func (s *communityStore) GetActiveByAdminEmail(ctx context.Context, email string) (*model.Community, error) {
	row := s.q.QueryRow(ctx, `
		SELECT c.id, c.org_id, c.name, c.community_type, c.blocks, c.units_per_block,
		       c.address, c.city, c.state, c.country, c.features,
		       c.admin_user_id, c.active, c.created_at, c.updated_at
		FROM communities c
		JOIN users u ON u.id = c.admin_user_id
		WHERE u.email = $1 AND c.active`,
		email,
	)
	return scanCommunity(row)
}

func (s *communityStore) Create(ctx context.Context, comm *model.Community) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO communities (id, org_id, name, community_type, blocks, units_per_block, address, city, state, country, features, admin_user_id, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, true)
		RETURNING `+communityColumns,
		comm.ID, comm.OrgID, comm.Name, comm.Type, comm.Blocks, comm.UnitsPerBlock,
		comm.Address, comm.City, comm.State, comm.Country, comm.Features, comm.AdminUserID,
	)
	created, err := scanCommunity(row)
	if err != nil {
		return err
	}
	*comm = *created
	return nil
}

func (s *communityStore) Update(ctx context.Context, comm *model.Community) error {
	row := s.q.QueryRow(ctx, `
		UPDATE communities
		SET name = $2, community_type = $3, blocks = $4, units_per_block = $5,
		    address = $6, city = $7, state = $8, country = $9, features = $10, updated_at = now()
		WHERE id = $1 AND active
		RETURNING `+communityColumns,
		comm.ID, comm.Name, comm.Type, comm.Blocks, comm.UnitsPerBlock,
		comm.Address, comm.City, comm.State, comm.Country, comm.Features,
	)
	updated, err := scanCommunity(row)
	if err != nil {
		return err
	}
	*comm = *updated
	return nil
}

func (s *communityStore) Deactivate(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `UPDATE communities SET active = false, updated_at = now() WHERE id = $1 AND active`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *communityStore) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := s.q.QueryRow(ctx, `SELECT COUNT(*) FROM communities WHERE active`).Scan(&count)
	return count, err
}

func (s *communityStore) ListActive(ctx context.Context) ([]model.Community, error) {
	rows, err := s.q.Query(ctx, `SELECT `+communityColumns+` FROM communities WHERE active ORDER BY name`)
	if err != nil {
		return nil, err
	}
	return scanCommunities(rows)
}

func (s *communityStore) ListActiveByOrg(ctx context.Context, orgID int64) ([]model.Community, error) {
	rows, err := s.q.Query(ctx, `SELECT `+communityColumns+` FROM communities WHERE org_id = $1 AND active ORDER BY name`, orgID)
	if err != nil {
		return nil, err
	}
	return scanCommunities(rows)
}

func (s *communityStore) CountActiveByOrgIDs(ctx context.Context, orgIDs []int64) (map[int64]int64, error) {
	rows, err := s.q.Query(ctx, `
		SELECT org_id, COUNT(*) FROM communities
		WHERE org_id = ANY($1) AND active
		GROUP BY org_id`,
		orgIDs,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[int64]int64)
	for rows.Next() {
		var orgID, count int64
		if err := rows.Scan(&orgID, &count); err != nil {
			return nil, err
		}
		counts[orgID] = count
	}
	return counts, rows.Err()
}

func (s *communityStore) SumBlocksAndUnits(ctx context.Context, ids []int64) (BlockUnitSums, error) {
	var sums BlockUnitSums
	err := s.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(blocks), 0), COALESCE(SUM(units_per_block), 0)
		FROM communities
		WHERE id = ANY($1)`,
		ids,
	).Scan(&sums.Blocks, &sums.Units)
	return sums, err
}

func scanCommunity(row pgx.Row) (*model.Community, error) {
	var c model.Community
	err := row.Scan(
		&c.ID, &c.OrgID, &c.Name, &c.Type, &c.Blocks, &c.UnitsPerBlock,
		&c.Address, &c.City, &c.State, &c.Country, &c.Features,
		&c.AdminUserID, &c.Active, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func scanCommunities(rows pgx.Rows) ([]model.Community, error) {
	defer rows.Close()

	var comms []model.Community
	for rows.Next() {
		var c model.Community
		if err := rows.Scan(
			&c.ID, &c.OrgID, &c.Name, &c.Type, &c.Blocks, &c.UnitsPerBlock,
			&c.Address, &c.City, &c.State, &c.Country, &c.Features,
			&c.AdminUserID, &c.Active, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, err
		}
		comms = append(comms, c)
	}
	return comms, rows.Err()
}
