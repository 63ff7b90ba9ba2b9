package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"graspnest.app/api-server/core/db"
	"graspnest.app/api-server/internal/model"
)

const userColumns = `id, username, email, first_name, last_name, role, contact, org_id, community_id, created_at, updated_at`

type userStore struct {
	q db.DBTX
}

func newUserStore(q db.DBTX) UserStore {
	return &userStore{q: q}
}

func (s *userStore) GetByID(ctx context.Context, id int64) (*model.User, error) {
	row := s.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (s *userStore) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	row := s.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

func (s *userStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	row := s.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func (s *userStore) Create(ctx context.Context, user *model.User) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO users (id, username, email, first_name, last_name, role, contact, org_id, community_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+userColumns,
		user.ID, user.Username, user.Email, user.FirstName, user.LastName,
		user.Role, user.Contact, user.OrgID, user.CommunityID,
	)
	created, err := scanUser(row)
	if err != nil {
		return err
	}
	*user = *created
	return nil
}

func (s *userStore) Update(ctx context.Context, user *model.User) error {
	row := s.q.QueryRow(ctx, `
		UPDATE users
		SET first_name = $2, last_name = $3, contact = $4, org_id = $5, community_id = $6, updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		user.ID, user.FirstName, user.LastName, user.Contact, user.OrgID, user.CommunityID,
	)
	updated, err := scanUser(row)
	if err != nil {
		return err
	}
	*user = *updated
	return nil
}

func (s *userStore) ListAdminsByOrgIDs(ctx context.Context, orgIDs []int64) ([]model.User, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE role = $1 AND org_id = ANY($2)`,
		model.RoleOrgAdmin, orgIDs,
	)
	if err != nil {
		return nil, err
	}
	return scanUsers(rows)
}

func (s *userStore) ListAdminsByCommunityIDs(ctx context.Context, communityIDs []int64) ([]model.User, error) {
	rows, err := s.q.Query(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE role = $1 AND community_id = ANY($2)`,
		model.RoleCommunityAdmin, communityIDs,
	)
	if err != nil {
		return nil, err
	}
	return scanUsers(rows)
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName,
		&u.Role, &u.Contact, &u.OrgID, &u.CommunityID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func scanUsers(rows pgx.Rows) ([]model.User, error) {
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		var u model.User
		if err := rows.Scan(
			&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName,
			&u.Role, &u.Contact, &u.OrgID, &u.CommunityID, &u.CreatedAt, &u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}
