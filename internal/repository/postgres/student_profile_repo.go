package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"

	"espacestage-backend/internal/domain"
)

type studentProfileRepo struct {
	db *pgxpool.Pool
}

func NewStudentProfileRepository(db *pgxpool.Pool) domain.StudentProfileRepository {
	return &studentProfileRepo{db: db}
}

func (r *studentProfileRepo) GetByAccountID(ctx context.Context, accountID int64) (*domain.StudentProfile, error) {
	query := `
		SELECT account_id, first_name, last_name, education_domain, education_level,
		       specialization, institution, phone, address, bio, skills,
		       photo_url, resume_url, certificate_url, updated_at
		FROM student_profiles WHERE account_id = $1`

	var p domain.StudentProfile
	err := r.db.QueryRow(ctx, query, accountID).Scan(
		&p.AccountID, &p.FirstName, &p.LastName, &p.EducationDomain, &p.EducationLevel,
		&p.Specialization, &p.Institution, &p.Phone, &p.Address, &p.Bio, pq.Array(&p.Skills),
		&p.PhotoURL, &p.ResumeURL, &p.CertificateURL, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Upsert implements the create-or-update profile semantics: a single
// idempotent write keyed by account_id. File URLs are only moved forward;
// a nil URL in the payload keeps the stored one, so a form save cannot wipe
// an uploaded file.
func (r *studentProfileRepo) Upsert(ctx context.Context, profile *domain.StudentProfile) error {
	query := `
		INSERT INTO student_profiles (
			account_id, first_name, last_name, education_domain, education_level,
			specialization, institution, phone, address, bio, skills,
			photo_url, resume_url, certificate_url, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (account_id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			education_domain = EXCLUDED.education_domain,
			education_level = EXCLUDED.education_level,
			specialization = EXCLUDED.specialization,
			institution = EXCLUDED.institution,
			phone = EXCLUDED.phone,
			address = EXCLUDED.address,
			bio = EXCLUDED.bio,
			skills = EXCLUDED.skills,
			photo_url = COALESCE(EXCLUDED.photo_url, student_profiles.photo_url),
			resume_url = COALESCE(EXCLUDED.resume_url, student_profiles.resume_url),
			certificate_url = COALESCE(EXCLUDED.certificate_url, student_profiles.certificate_url),
			updated_at = EXCLUDED.updated_at`

	profile.UpdatedAt = time.Now()
	if profile.Skills == nil {
		profile.Skills = []string{}
	}

	_, err := r.db.Exec(ctx, query,
		profile.AccountID, profile.FirstName, profile.LastName, profile.EducationDomain,
		profile.EducationLevel, profile.Specialization, profile.Institution, profile.Phone,
		profile.Address, profile.Bio, pq.Array(profile.Skills),
		profile.PhotoURL, profile.ResumeURL, profile.CertificateURL, profile.UpdatedAt,
	)
	return err
}

var studentFileColumns = map[domain.ProfileFile]string{
	domain.FileResume:      "resume_url",
	domain.FilePhoto:       "photo_url",
	domain.FileCertificate: "certificate_url",
}

// AttachFileURL records an uploaded file URL. When the student has not saved
// a profile yet, a stub row is inserted so the upload survives until the
// first form save fills in the names.
func (r *studentProfileRepo) AttachFileURL(ctx context.Context, accountID int64, file domain.ProfileFile, url string) error {
	column, ok := studentFileColumns[file]
	if !ok {
		return fmt.Errorf("unknown student profile file %q", file)
	}

	query := fmt.Sprintf(`
		INSERT INTO student_profiles (account_id, first_name, last_name, %s, updated_at)
		VALUES ($1, '', '', $2, $3)
		ON CONFLICT (account_id) DO UPDATE SET
			%s = EXCLUDED.%s,
			updated_at = EXCLUDED.updated_at`, column, column, column)

	_, err := r.db.Exec(ctx, query, accountID, url, time.Now())
	return err
}
