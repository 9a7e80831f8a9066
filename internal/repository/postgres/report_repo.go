package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"espacestage-backend/internal/domain"
)

type reportRepo struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) domain.ReportRepository {
	return &reportRepo{db: db}
}

// FetchApplicationRows collects the flattened report rows, newest first.
func (r *reportRepo) FetchApplicationRows(ctx context.Context, limit int) ([]domain.ApplicationReportRow, error) {
	query := `
		SELECT
			a.id,
			COALESCE(sp.first_name || ' ' || sp.last_name, acc.email),
			acc.email,
			o.title,
			o.domain,
			COALESCE(cp.company_name, ''),
			a.status,
			a.submitted_at
		FROM applications a
		JOIN offers o ON a.offer_id = o.id
		JOIN accounts acc ON a.student_account_id = acc.id
		LEFT JOIN student_profiles sp ON a.student_account_id = sp.account_id
		LEFT JOIN company_profiles cp ON o.company_account_id = cp.account_id
		ORDER BY a.submitted_at DESC
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ApplicationReportRow
	for rows.Next() {
		var row domain.ApplicationReportRow
		if err := rows.Scan(
			&row.ApplicationID, &row.StudentName, &row.StudentEmail,
			&row.OfferTitle, &row.OfferDomain, &row.CompanyName,
			&row.Status, &row.SubmittedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

// pivotDimensions maps the public dimension names onto SQL expressions.
// Only these expressions can reach the query; arbitrary client input cannot.
var pivotDimensions = map[string]string{
	"domain":   "o.domain",
	"status":   "a.status",
	"company":  "COALESCE(cp.company_name, '')",
	"location": "o.location",
}

// FetchPivotCells runs the grouped count for the pivot table.
func (r *reportRepo) FetchPivotCells(ctx context.Context, rowDim, colDim string) ([]domain.PivotCell, error) {
	rowExpr, ok := pivotDimensions[rowDim]
	if !ok {
		return nil, fmt.Errorf("unknown pivot dimension: %s", rowDim)
	}
	colExpr, ok := pivotDimensions[colDim]
	if !ok {
		return nil, fmt.Errorf("unknown pivot dimension: %s", colDim)
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, COUNT(*)
		FROM applications a
		JOIN offers o ON a.offer_id = o.id
		LEFT JOIN company_profiles cp ON o.company_account_id = cp.account_id
		GROUP BY 1, 2
		ORDER BY 1, 2`, rowExpr, colExpr)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cells []domain.PivotCell
	for rows.Next() {
		var cell domain.PivotCell
		if err := rows.Scan(&cell.Row, &cell.Column, &cell.Count); err != nil {
			return nil, err
		}
		cells = append(cells, cell)
	}
	return cells, rows.Err()
}
