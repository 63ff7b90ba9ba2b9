package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"graspnest.app/api-server/core/db"
	"graspnest.app/api-server/internal/model"
)

const orgColumns = `id, name, org_type, address, city, state, country, reg_num, vat_id, website, logo, doc_upload, admin_user_id, active, created_at, updated_at`

type organizationStore struct {
	q db.DBTX
}

func newOrganizationStore(q db.DBTX) OrganizationStore {
	return &organizationStore{q: q}
}

func (s *organizationStore) GetByID(ctx context.Context, id int64) (*model.Organization, error) {
	row := s.q.QueryRow(ctx, `SELECT `+orgColumns+` FROM organizations WHERE id = $1`, id)
	return scanOrganization(row)
}

func (s *organizationStore) GetActiveByID(ctx context.Context, id int64) (*model.Organization, error) {
	row := s.q.QueryRow(ctx, `SELECT `+orgColumns+` FROM organizations WHERE id = $1 AND active`, id)
	return scanOrganization(row)
}

func (s *organizationStore) GetActiveByName(ctx context.Context, name string) (*model.Organization, error) {
	row := s.q.QueryRow(ctx, `SELECT `+orgColumns+` FROM organizations WHERE name = $1 AND active`, name)
	return scanOrganization(row)
}

func (s *organizationStore) GetActiveByAdminEmail(ctx context.Context, email string) (*model.Organization, error) {
	row := s.q.QueryRow(ctx, `
		SELECT o.id, o.name, o.org_type, o.address, o.city, o.state, o.country,
		       o.reg_num, o.vat_id, o.website, o.logo, o.doc_upload,
		       o.admin_user_id, o.active, o.created_at, o.updated_at
		FROM organizations o
		JOIN users u ON u.id = o.admin_user_id
		WHERE u.email = $1 AND o.active`,
		email,
	)
	return scanOrganization(row)
}

func (s *organizationStore) Create(ctx context.Context, org *model.Organization) error {
	row := s.q.QueryRow(ctx, `
		INSERT INTO organizations (id, name, org_type, address, city, state, country, reg_num, vat_id, website, logo, doc_upload, admin_user_id, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, true)
		RETURNING `+orgColumns,
		org.ID, org.Name, org.Type, org.Address, org.City, org.State, org.Country,
		org.RegNum, org.VatID, org.Website, org.Logo, org.DocUpload, org.AdminUserID,
	)
	created, err := scanOrganization(row)
	if err != nil {
		return err
	}
	*org = *created
	return nil
}

func (s *organizationStore) Update(ctx context.Context, org *model.Organization) error {
	row := s.q.QueryRow(ctx, `
		UPDATE organizations
		SET name = $2, org_type = $3, address = $4, city = $5, state = $6, country = $7,
		    reg_num = $8, vat_id = $9, website = $10, logo = $11, doc_upload = $12, updated_at = now()
		WHERE id = $1 AND active
		RETURNING `+orgColumns,
		org.ID, org.Name, org.Type, org.Address, org.City, org.State, org.Country,
		org.RegNum, org.VatID, org.Website, org.Logo, org.DocUpload,
	)
	updated, err := scanOrganization(row)
	if err != nil {
		return err
	}
	*org = *updated
	return nil
}

func (s *organizationStore) Deactivate(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `UPDATE organizations SET active = false, updated_at = now() WHERE id = $1 AND active`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *organizationStore) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := s.q.QueryRow(ctx, `SELECT COUNT(*) FROM organizations WHERE active`).Scan(&count)
	return count, err
}

func (s *organizationStore) ListActive(ctx context.Context) ([]model.Organization, error) {
	rows, err := s.q.Query(ctx, `SELECT `+orgColumns+` FROM organizations WHERE active ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var orgs []model.Organization
	for rows.Next() {
		var o model.Organization
		if err := rows.Scan(
			&o.ID, &o.Name, &o.Type, &o.Address, &o.City, &o.State, &o.Country,
			&o.RegNum, &o.VatID, &o.Website, &o.Logo, &o.DocUpload,
			&o.AdminUserID, &o.Active, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		orgs = append(orgs, o)
	}
	return orgs, rows.Err()
}

func scanOrganization(row pgx.Row) (*model.Organization, error) {
	var o model.Organization
	err := row.Scan(
		&o.ID, &o.Name, &o.Type, &o.Address, &o.City, &o.State, &o.Country,
		&o.RegNum, &o.VatID, &o.Website, &o.Logo, &o.DocUpload,
		&o.AdminUserID, &o.Active, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}
