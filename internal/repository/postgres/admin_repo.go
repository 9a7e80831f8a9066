package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"espacestage-backend/internal/domain"
)

type adminRepo struct {
	db *pgxpool.Pool
}

func NewAdminRepository(db *pgxpool.Pool) domain.AdminRepository {
	return &adminRepo{db: db}
}

// GetStats fetches the dashboard aggregates. Any failed count fails the
// whole dashboard; partial zeros would be indistinguishable from real data.
func (r *adminRepo) GetStats(ctx context.Context) (*domain.AdminStats, error) {
	stats := &domain.AdminStats{}

	counts := []struct {
		query string
		dest  *int64
	}{
		{`SELECT COUNT(*) FROM accounts`, &stats.TotalAccounts},
		{`SELECT COUNT(*) FROM accounts WHERE role = 'student'`, &stats.AccountsByRole.Student},
		{`SELECT COUNT(*) FROM accounts WHERE role = 'company'`, &stats.AccountsByRole.Company},
		{`SELECT COUNT(*) FROM accounts WHERE role = 'admin'`, &stats.AccountsByRole.Admin},
		{`SELECT COUNT(*) FROM accounts WHERE status = 'blocked'`, &stats.BlockedAccounts},
		{`SELECT COUNT(*) FROM offers`, &stats.TotalOffers},
		{`SELECT COUNT(*) FROM offers WHERE status = 'active'`, &stats.ActiveOffers},
		{`SELECT COUNT(*) FROM applications`, &stats.TotalApplications},
		{`SELECT COUNT(*) FROM applications WHERE status = 'pending'`, &stats.ApplicationsByStatus.Pending},
		{`SELECT COUNT(*) FROM applications WHERE status = 'accepted'`, &stats.ApplicationsByStatus.Accepted},
		{`SELECT COUNT(*) FROM applications WHERE status = 'rejected'`, &stats.ApplicationsByStatus.Rejected},
	}
	for _, c := range counts {
		if err := r.db.QueryRow(ctx, c.query).Scan(c.dest); err != nil {
			return nil, err
		}
	}

	return stats, nil
}

// ListAccounts fetches paginated accounts with an optional role filter. The
// display name comes from whichever profile table matches the role.
func (r *adminRepo) ListAccounts(ctx context.Context, role domain.Role, page, pageSize int) ([]domain.AdminAccount, int64, error) {
	offset := (page - 1) * pageSize

	var total int64
	if role != "" {
		if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM accounts WHERE role = $1`, role).Scan(&total); err != nil {
			return nil, 0, err
		}
	} else {
		if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM accounts`).Scan(&total); err != nil {
			return nil, 0, err
		}
	}

	query := `
		SELECT
			acc.id, acc.email, acc.role, acc.status, acc.created_at, acc.updated_at,
			COALESCE(sp.first_name || ' ' || sp.last_name, cp.company_name, acc.email),
			(SELECT COUNT(*) FROM offers o WHERE o.company_account_id = acc.id)
		FROM accounts acc
		LEFT JOIN student_profiles sp ON acc.id = sp.account_id
		LEFT JOIN company_profiles cp ON acc.id = cp.account_id`
	args := []interface{}{}
	if role != "" {
		query += ` WHERE acc.role = $1`
		args = append(args, role)
		query += ` ORDER BY acc.created_at DESC LIMIT $2 OFFSET $3`
		args = append(args, pageSize, offset)
	} else {
		query += ` ORDER BY acc.created_at DESC LIMIT $1 OFFSET $2`
		args = append(args, pageSize, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var accounts []domain.AdminAccount
	for rows.Next() {
		var a domain.AdminAccount
		if err := rows.Scan(
			&a.ID, &a.Email, &a.Role, &a.Status, &a.CreatedAt, &a.UpdatedAt,
			&a.DisplayName, &a.OfferCount,
		); err != nil {
			return nil, 0, err
		}
		accounts = append(accounts, a)
	}
	return accounts, total, rows.Err()
}
