package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"espacestage-backend/internal/domain"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Create inserts a new application. The UNIQUE (offer_id, student_account_id)
// constraint resolves concurrent duplicate submissions; a violation surfaces
// as domain.ErrDuplicate.
func (r *applicationRepo) Create(ctx context.Context, app *domain.Application) error {
	query := `
		INSERT INTO applications (offer_id, student_account_id, status, message, submitted_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	now := time.Now()
	app.SubmittedAt = now
	app.UpdatedAt = now
	if app.Status == "" {
		app.Status = domain.ApplicationPending
	}

	err := r.db.QueryRow(ctx, query,
		app.OfferID,
		app.StudentAccountID,
		app.Status,
		app.Message,
		app.SubmittedAt,
		app.UpdatedAt,
	).Scan(&app.ID)
	if isDuplicateKeyError(err) {
		return domain.ErrDuplicate
	}
	return err
}

// GetByID retrieves an application with offer and student display fields.
func (r *applicationRepo) GetByID(ctx context.Context, id int64) (*domain.Application, error) {
	query := `
		SELECT
			a.id, a.offer_id, a.student_account_id, a.status, a.message,
			a.submitted_at, a.updated_at,
			o.title, o.domain,
			cp.company_name,
			COALESCE(sp.first_name || ' ' || sp.last_name, acc.email),
			sp.photo_url,
			sp.resume_url
		FROM applications a
		JOIN offers o ON a.offer_id = o.id
		LEFT JOIN company_profiles cp ON o.company_account_id = cp.account_id
		LEFT JOIN accounts acc ON a.student_account_id = acc.id
		LEFT JOIN student_profiles sp ON a.student_account_id = sp.account_id
		WHERE a.id = $1`

	var app domain.Application
	err := r.db.QueryRow(ctx, query, id).Scan(
		&app.ID, &app.OfferID, &app.StudentAccountID, &app.Status, &app.Message,
		&app.SubmittedAt, &app.UpdatedAt,
		&app.OfferTitle, &app.OfferDomain, &app.CompanyName,
		&app.StudentName, &app.StudentPhotoURL, &app.StudentResumeURL,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &app, nil
}

// ListByStudent retrieves the student's own applications with offer display
// fields. Scoping by student_account_id here is what keeps tenants apart.
func (r *applicationRepo) ListByStudent(ctx context.Context, studentAccountID int64) ([]domain.Application, error) {
	query := `
		SELECT
			a.id, a.offer_id, a.student_account_id, a.status, a.message,
			a.submitted_at, a.updated_at,
			o.title, o.domain,
			cp.company_name
		FROM applications a
		JOIN offers o ON a.offer_id = o.id
		LEFT JOIN company_profiles cp ON o.company_account_id = cp.account_id
		WHERE a.student_account_id = $1
		ORDER BY a.submitted_at DESC`

	rows, err := r.db.Query(ctx, query, studentAccountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.OfferID, &app.StudentAccountID, &app.Status, &app.Message,
			&app.SubmittedAt, &app.UpdatedAt,
			&app.OfferTitle, &app.OfferDomain, &app.CompanyName,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// ListByCompany retrieves applications against the company's own offers,
// with student display fields for review.
func (r *applicationRepo) ListByCompany(ctx context.Context, companyAccountID int64) ([]domain.Application, error) {
	query := `
		SELECT
			a.id, a.offer_id, a.student_account_id, a.status, a.message,
			a.submitted_at, a.updated_at,
			o.title, o.domain,
			COALESCE(sp.first_name || ' ' || sp.last_name, acc.email),
			sp.photo_url,
			sp.resume_url
		FROM applications a
		JOIN offers o ON a.offer_id = o.id
		LEFT JOIN accounts acc ON a.student_account_id = acc.id
		LEFT JOIN student_profiles sp ON a.student_account_id = sp.account_id
		WHERE o.company_account_id = $1
		ORDER BY a.submitted_at DESC`

	rows, err := r.db.Query(ctx, query, companyAccountID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applications []domain.Application
	for rows.Next() {
		var app domain.Application
		if err := rows.Scan(
			&app.ID, &app.OfferID, &app.StudentAccountID, &app.Status, &app.Message,
			&app.SubmittedAt, &app.UpdatedAt,
			&app.OfferTitle, &app.OfferDomain,
			&app.StudentName, &app.StudentPhotoURL, &app.StudentResumeURL,
		); err != nil {
			return nil, err
		}
		applications = append(applications, app)
	}
	return applications, rows.Err()
}

// UpdateStatus updates the status of an application and sets updated_at
func (r *applicationRepo) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE applications SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes the row outright; there is no tombstone.
func (r *applicationRepo) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
