package usecase

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"espacestage-backend/internal/domain"
	"espacestage-backend/pkg/apperror"
)

type studentProfileUsecase struct {
	profileRepo domain.StudentProfileRepository
	validate    *validator.Validate
}

func NewStudentProfileUsecase(profileRepo domain.StudentProfileRepository, validate *validator.Validate) domain.StudentProfileUsecase {
	return &studentProfileUsecase{
		profileRepo: profileRepo,
		validate:    validate,
	}
}

// GetProfile returns the student's own profile; a fresh account gets an
// empty one instead of a 404 so the frontend can render the form directly.
func (uc *studentProfileUsecase) GetProfile(ctx context.Context, accountID int64) (*domain.StudentProfile, error) {
	profile, err := uc.profileRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.StudentProfile{AccountID: accountID, Skills: []string{}}, nil
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

// SaveProfile is the idempotent create-or-update keyed by account_id.
func (uc *studentProfileUsecase) SaveProfile(ctx context.Context, accountID int64, profile *domain.StudentProfile) error {
	if err := uc.validate.Struct(profile); err != nil {
		return apperror.BadRequest("First name and last name are required")
	}
	if !domain.ValidEducationLevel(profile.EducationLevel) {
		return apperror.BadRequest("Education level must be one of L1, L2, L3, M1, M2")
	}

	// Force owner from context (prevent IDOR via body account_id)
	profile.AccountID = accountID

	if err := uc.profileRepo.Upsert(ctx, profile); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// AttachFile stores an uploaded file URL on the student's profile, creating
// the profile row when needed so an upload made before the first form save
// is not lost.
func (uc *studentProfileUsecase) AttachFile(ctx context.Context, accountID int64, file domain.ProfileFile, url string) error {
	switch file {
	case domain.FileResume, domain.FilePhoto, domain.FileCertificate:
	default:
		return apperror.BadRequest("Unknown profile file kind")
	}
	if err := uc.profileRepo.AttachFileURL(ctx, accountID, file, url); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

type companyProfileUsecase struct {
	profileRepo domain.CompanyProfileRepository
	validate    *validator.Validate
}

func NewCompanyProfileUsecase(profileRepo domain.CompanyProfileRepository, validate *validator.Validate) domain.CompanyProfileUsecase {
	return &companyProfileUsecase{
		profileRepo: profileRepo,
		validate:    validate,
	}
}

func (uc *companyProfileUsecase) GetProfile(ctx context.Context, accountID int64) (*domain.CompanyProfile, error) {
	profile, err := uc.profileRepo.GetByAccountID(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return &domain.CompanyProfile{AccountID: accountID}, nil
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

func (uc *companyProfileUsecase) SaveProfile(ctx context.Context, accountID int64, profile *domain.CompanyProfile) error {
	if err := uc.validate.Struct(profile); err != nil {
		return apperror.BadRequest("Company name and sector are required")
	}
	if profile.EmployeeCount != nil && *profile.EmployeeCount < 0 {
		return apperror.BadRequest("Employee count cannot be negative")
	}

	profile.AccountID = accountID

	if err := uc.profileRepo.Upsert(ctx, profile); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// AttachLogo stores an uploaded logo URL, creating the profile row when the
// company has not saved one yet.
func (uc *companyProfileUsecase) AttachLogo(ctx context.Context, accountID int64, url string) error {
	if err := uc.profileRepo.AttachLogoURL(ctx, accountID, url); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
