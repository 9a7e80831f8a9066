package domain

import (
	"context"
	"time"
)

// Education levels accepted for student profiles
const (
	EducationL1 = "L1"
	EducationL2 = "L2"
	EducationL3 = "L3"
	EducationM1 = "M1"
	EducationM2 = "M2"
)

// ValidEducationLevel reports whether the level is one of L1..M2 (empty is
// allowed, the field is optional until the student fills it in).
func ValidEducationLevel(level string) bool {
	switch level {
	case "", EducationL1, EducationL2, EducationL3, EducationM1, EducationM2:
		return true
	}
	return false
}

// StudentProfile extends a student account. File fields are opaque URLs
// produced by the upload collaborator; a missing ResumeURL blocks application
// submission, checked at submission time rather than at profile save.
type StudentProfile struct {
	AccountID       int64     `json:"account_id"`
	FirstName       string    `json:"first_name" validate:"required"`
	LastName        string    `json:"last_name" validate:"required"`
	EducationDomain string    `json:"education_domain"`
	EducationLevel  string    `json:"education_level"`
	Specialization  string    `json:"specialization"`
	Institution     string    `json:"institution"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	Bio             string    `json:"bio"`
	Skills          []string  `json:"skills"`
	PhotoURL        *string   `json:"photo_url,omitempty"`
	ResumeURL       *string   `json:"resume_url,omitempty"`
	CertificateURL  *string   `json:"certificate_url,omitempty"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CompanyProfile extends a company account.
type CompanyProfile struct {
	AccountID     int64     `json:"account_id"`
	CompanyName   string    `json:"company_name" validate:"required"`
	Sector        string    `json:"sector" validate:"required"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone"`
	Description   string    `json:"description"`
	EmployeeCount *int      `json:"employee_count,omitempty"`
	Website       string    `json:"website"`
	LogoURL       *string   `json:"logo_url,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ProfileFile identifies which stored file URL an upload targets.
type ProfileFile string

const (
	FileResume      ProfileFile = "resume"
	FilePhoto       ProfileFile = "photo"
	FileCertificate ProfileFile = "certificate"
	FileLogo        ProfileFile = "logo"
)

// StudentProfileRepository defines data access for student profiles
type StudentProfileRepository interface {
	GetByAccountID(ctx context.Context, accountID int64) (*StudentProfile, error)
	Upsert(ctx context.Context, profile *StudentProfile) error
	AttachFileURL(ctx context.Context, accountID int64, file ProfileFile, url string) error
}

// CompanyProfileRepository defines data access for company profiles
type CompanyProfileRepository interface {
	GetByAccountID(ctx context.Context, accountID int64) (*CompanyProfile, error)
	Upsert(ctx context.Context, profile *CompanyProfile) error
	AttachLogoURL(ctx context.Context, accountID int64, url string) error
}

// StudentProfileUsecase defines business logic for student profiles
type StudentProfileUsecase interface {
	GetProfile(ctx context.Context, accountID int64) (*StudentProfile, error)
	SaveProfile(ctx context.Context, accountID int64, profile *StudentProfile) error
	AttachFile(ctx context.Context, accountID int64, file ProfileFile, url string) error
}

// CompanyProfileUsecase defines business logic for company profiles
type CompanyProfileUsecase interface {
	GetProfile(ctx context.Context, accountID int64) (*CompanyProfile, error)
	SaveProfile(ctx context.Context, accountID int64, profile *CompanyProfile) error
	AttachLogo(ctx context.Context, accountID int64, url string) error
}
