package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"espacestage-backend/internal/domain"
)

type companyProfileRepo struct {
	db *pgxpool.Pool
}

func NewCompanyProfileRepository(db *pgxpool.Pool) domain.CompanyProfileRepository {
	return &companyProfileRepo{db: db}
}

func (r *companyProfileRepo) GetByAccountID(ctx context.Context, accountID int64) (*domain.CompanyProfile, error) {
	query := `
		SELECT account_id, company_name, sector, address, phone, description,
		       employee_count, website, logo_url, updated_at
		FROM company_profiles WHERE account_id = $1`

	var p domain.CompanyProfile
	err := r.db.QueryRow(ctx, query, accountID).Scan(
		&p.AccountID, &p.CompanyName, &p.Sector, &p.Address, &p.Phone, &p.Description,
		&p.EmployeeCount, &p.Website, &p.LogoURL, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *companyProfileRepo) Upsert(ctx context.Context, profile *domain.CompanyProfile) error {
	query := `
		INSERT INTO company_profiles (
			account_id, company_name, sector, address, phone, description,
			employee_count, website, logo_url, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (account_id) DO UPDATE SET
			company_name = EXCLUDED.company_name,
			sector = EXCLUDED.sector,
			address = EXCLUDED.address,
			phone = EXCLUDED.phone,
			description = EXCLUDED.description,
			employee_count = EXCLUDED.employee_count,
			website = EXCLUDED.website,
			logo_url = COALESCE(EXCLUDED.logo_url, company_profiles.logo_url),
			updated_at = EXCLUDED.updated_at`

	profile.UpdatedAt = time.Now()

	_, err := r.db.Exec(ctx, query,
		profile.AccountID, profile.CompanyName, profile.Sector, profile.Address,
		profile.Phone, profile.Description, profile.EmployeeCount, profile.Website,
		profile.LogoURL, profile.UpdatedAt,
	)
	return err
}

// AttachLogoURL records an uploaded logo URL, inserting a stub row when the
// company has not saved a profile yet.
func (r *companyProfileRepo) AttachLogoURL(ctx context.Context, accountID int64, url string) error {
	query := `
		INSERT INTO company_profiles (account_id, company_name, sector, logo_url, updated_at)
		VALUES ($1, '', '', $2, $3)
		ON CONFLICT (account_id) DO UPDATE SET
			logo_url = EXCLUDED.logo_url,
			updated_at = EXCLUDED.updated_at`

	_, err := r.db.Exec(ctx, query, accountID, url, time.Now())
	return err
}
