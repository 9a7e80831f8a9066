package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"espacestage-backend/internal/domain"
)

type offerRepo struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

func NewOfferRepository(db *pgxpool.Pool) domain.OfferRepository {
	return &offerRepo{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

const offerColumns = `o.id, o.company_account_id, o.title, o.description, o.domain, o.capacity,
	o.location, o.type, o.paid, o.compensation_amount, o.start_date, o.end_date,
	o.status, o.created_at, o.updated_at`

func (r *offerRepo) Create(ctx context.Context, offer *domain.Offer) error {
	query := `
		INSERT INTO offers (company_account_id, title, description, domain, capacity,
			location, type, paid, compensation_amount, start_date, end_date, status,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING id`

	now := time.Now()
	offer.CreatedAt = now
	offer.UpdatedAt = now
	if offer.Status == "" {
		offer.Status = domain.OfferActive
	}

	return r.db.QueryRow(ctx, query,
		offer.CompanyAccountID, offer.Title, offer.Description, offer.Domain, offer.Capacity,
		offer.Location, offer.Type, offer.Paid, offer.CompensationAmount,
		offer.StartDate, offer.EndDate, offer.Status,
		offer.CreatedAt, offer.UpdatedAt,
	).Scan(&offer.ID)
}

// GetByID retrieves an offer with company display fields joined in.
func (r *offerRepo) GetByID(ctx context.Context, id int64) (*domain.Offer, error) {
	query := fmt.Sprintf(`
		SELECT %s,
			cp.company_name,
			cp.logo_url
		FROM offers o
		LEFT JOIN company_profiles cp ON o.company_account_id = cp.account_id
		WHERE o.id = $1`, offerColumns)

	var o domain.Offer
	err := r.db.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.CompanyAccountID, &o.Title, &o.Description, &o.Domain, &o.Capacity,
		&o.Location, &o.Type, &o.Paid, &o.CompensationAmount, &o.StartDate, &o.EndDate,
		&o.Status, &o.CreatedAt, &o.UpdatedAt,
		&o.CompanyName, &o.CompanyLogoURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &o, nil
}

// Search builds the filtered listing dynamically. The ActiveOnly flag is set
// by the usecase for student-facing queries; it is not client-controlled.
func (r *offerRepo) Search(ctx context.Context, filter domain.OfferFilter) ([]domain.Offer, int64, error) {
	base := r.sb.Select(
		"o.id", "o.company_account_id", "o.title", "o.description", "o.domain", "o.capacity",
		"o.location", "o.type", "o.paid", "o.compensation_amount", "o.start_date", "o.end_date",
		"o.status", "o.created_at", "o.updated_at",
		"cp.company_name", "cp.logo_url",
	).
		From("offers o").
		LeftJoin("company_profiles cp ON o.company_account_id = cp.account_id")

	countQuery := r.sb.Select("COUNT(*)").From("offers o")

	conds := squirrel.And{}
	if filter.ActiveOnly {
		conds = append(conds, squirrel.Eq{"o.status": domain.OfferActive})
	}
	if filter.Domain != "" {
		conds = append(conds, squirrel.Eq{"o.domain": filter.Domain})
	}
	if filter.Location != "" {
		conds = append(conds, squirrel.ILike{"o.location": "%" + filter.Location + "%"})
	}
	if filter.Type != "" {
		conds = append(conds, squirrel.Eq{"o.type": filter.Type})
	}
	if filter.Paid != nil {
		conds = append(conds, squirrel.Eq{"o.paid": *filter.Paid})
	}
	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		conds = append(conds, squirrel.Or{
			squirrel.ILike{"o.title": pattern},
			squirrel.ILike{"o.description": pattern},
		})
	}
	if len(conds) > 0 {
		base = base.Where(conds)
		countQuery = countQuery.Where(conds)
	}

	limit := filter.PageSize
	offset := (filter.Page - 1) * filter.PageSize

	sql, args, err := base.
		OrderBy("o.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build offer search query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var offers []domain.Offer
	for rows.Next() {
		var o domain.Offer
		if err := rows.Scan(
			&o.ID, &o.CompanyAccountID, &o.Title, &o.Description, &o.Domain, &o.Capacity,
			&o.Location, &o.Type, &o.Paid, &o.CompensationAmount, &o.StartDate, &o.EndDate,
			&o.Status, &o.CreatedAt, &o.UpdatedAt,
			&o.CompanyName, &o.CompanyLogoURL,
		); err != nil {
			return nil, 0, err
		}
		offers = append(offers, o)
	}

	countSQL, countArgs, err := countQuery.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build offer count query: %w", err)
	}
	var total int64
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	return offers, total, nil
}

// FetchByCompany retrieves a company's own offers, all statuses included.
func (r *offerRepo) FetchByCompany(ctx context.Context, companyAccountID int64, limit, offset int) ([]domain.Offer, int64, error) {
	query := fmt.Sprintf(`
		SELECT %s, NULL, NULL
		FROM offers o
		WHERE o.company_account_id = $1
		ORDER BY o.created_at DESC
		LIMIT $2 OFFSET $3`, offerColumns)

	rows, err := r.db.Query(ctx, query, companyAccountID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var offers []domain.Offer
	for rows.Next() {
		var o domain.Offer
		if err := rows.Scan(
			&o.ID, &o.CompanyAccountID, &o.Title, &o.Description, &o.Domain, &o.Capacity,
			&o.Location, &o.Type, &o.Paid, &o.CompensationAmount, &o.StartDate, &o.EndDate,
			&o.Status, &o.CreatedAt, &o.UpdatedAt,
			&o.CompanyName, &o.CompanyLogoURL,
		); err != nil {
			return nil, 0, err
		}
		offers = append(offers, o)
	}

	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM offers WHERE company_account_id = $1`, companyAccountID).Scan(&total); err != nil {
		return nil, 0, err
	}

	return offers, total, nil
}

func (r *offerRepo) Update(ctx context.Context, offer *domain.Offer) error {
	query := `UPDATE offers SET
		title = $2,
		description = $3,
		domain = $4,
		capacity = $5,
		location = $6,
		type = $7,
		paid = $8,
		compensation_amount = $9,
		start_date = $10,
		end_date = $11,
		updated_at = $12
	WHERE id = $1`

	offer.UpdatedAt = time.Now()
	result, err := r.db.Exec(ctx, query,
		offer.ID, offer.Title, offer.Description, offer.Domain, offer.Capacity,
		offer.Location, offer.Type, offer.Paid, offer.CompensationAmount,
		offer.StartDate, offer.EndDate, offer.UpdatedAt,
	)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *offerRepo) UpdateStatus(ctx context.Context, id int64, status domain.OfferStatus) error {
	query := `UPDATE offers SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the offer; its applications go with it via FK cascade.
func (r *offerRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
