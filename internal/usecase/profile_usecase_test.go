package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"espacestage-backend/internal/domain"
	"espacestage-backend/internal/usecase"
)

func TestStudentProfileSave(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject a profile without names", func(t *testing.T) {
		repo := new(MockStudentProfileRepo)
		uc := usecase.NewStudentProfileUsecase(repo, validator.New())

		err := uc.SaveProfile(ctx, 7, &domain.StudentProfile{FirstName: "Alice"})
		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
		repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("Should reject an unknown education level", func(t *testing.T) {
		repo := new(MockStudentProfileRepo)
		uc := usecase.NewStudentProfileUsecase(repo, validator.New())

		err := uc.SaveProfile(ctx, 7, &domain.StudentProfile{
			FirstName: "Alice", LastName: "Martin", EducationLevel: "PhD",
		})
		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
	})

	t.Run("Should force the owner from context over the body account_id", func(t *testing.T) {
		repo := new(MockStudentProfileRepo)
		repo.On("Upsert", ctx, mock.Anything).Run(func(args mock.Arguments) {
			saved := args.Get(1).(*domain.StudentProfile)
			assert.Equal(t, int64(7), saved.AccountID)
		}).Return(nil)

		uc := usecase.NewStudentProfileUsecase(repo, validator.New())
		err := uc.SaveProfile(ctx, 7, &domain.StudentProfile{
			AccountID: 999, FirstName: "Alice", LastName: "Martin",
		})
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Should return an empty profile for a fresh account", func(t *testing.T) {
		repo := new(MockStudentProfileRepo)
		repo.On("GetByAccountID", ctx, int64(7)).Return(nil, domain.ErrNotFound)

		uc := usecase.NewStudentProfileUsecase(repo, validator.New())
		profile, err := uc.GetProfile(ctx, 7)
		assert.NoError(t, err)
		assert.Equal(t, int64(7), profile.AccountID)
		assert.Empty(t, profile.FirstName)
	})
}

func TestStudentProfileAttachFile(t *testing.T) {
	ctx := context.Background()

	t.Run("Should attach a resume before the first profile save", func(t *testing.T) {
		repo := new(MockStudentProfileRepo)
		repo.On("AttachFileURL", ctx, int64(7), domain.FileResume, "https://files.example/resumes/cv.pdf").Return(nil)

		uc := usecase.NewStudentProfileUsecase(repo, validator.New())
		err := uc.AttachFile(ctx, 7, domain.FileResume, "https://files.example/resumes/cv.pdf")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("Should reject a file kind outside the student set", func(t *testing.T) {
		repo := new(MockStudentProfileRepo)
		uc := usecase.NewStudentProfileUsecase(repo, validator.New())

		err := uc.AttachFile(ctx, 7, domain.FileLogo, "https://files.example/logos/x.jpg")
		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
		repo.AssertNotCalled(t, "AttachFileURL", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestCompanyProfileSave(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject a negative employee count", func(t *testing.T) {
		repo := new(MockCompanyProfileRepo)
		uc := usecase.NewCompanyProfileUsecase(repo, validator.New())

		count := -3
		err := uc.SaveProfile(ctx, 10, &domain.CompanyProfile{
			CompanyName: "TechCorp", Sector: "IT", EmployeeCount: &count,
		})
		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
	})

	t.Run("Should attach a logo before the first profile save", func(t *testing.T) {
		repo := new(MockCompanyProfileRepo)
		repo.On("AttachLogoURL", ctx, int64(10), "https://files.example/logos/logo.jpg").Return(nil)

		uc := usecase.NewCompanyProfileUsecase(repo, validator.New())
		err := uc.AttachLogo(ctx, 10, "https://files.example/logos/logo.jpg")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})
}
