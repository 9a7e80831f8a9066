package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"espacestage-backend/internal/domain"
	"espacestage-backend/internal/usecase"
	"espacestage-backend/pkg/apperror"
)

func strPtr(s string) *string { return &s }

func appErrCode(t *testing.T, err error) int {
	t.Helper()
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *apperror.AppError, got %T: %v", err, err)
	}
	return appErr.Code
}

func activeOffer(id, companyID int64) *domain.Offer {
	return &domain.Offer{
		ID:               id,
		CompanyAccountID: companyID,
		Title:            "Stage backend Go",
		Status:           domain.OfferActive,
		CompanyName:      strPtr("Acme"),
	}
}

func studentWithResume(accountID int64) *domain.StudentProfile {
	return &domain.StudentProfile{
		AccountID: accountID,
		FirstName: "Lea",
		LastName:  "Martin",
		ResumeURL: strPtr("https://cdn.example.com/resumes/lea.pdf"),
	}
}

func TestSubmitApplication(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject when offer does not exist", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		offerRepo.On("GetByID", ctx, int64(99)).Return(nil, domain.ErrNotFound)

		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), offerRepo, new(MockStudentProfileRepo), new(MockNotifier))
		_, err := uc.Submit(ctx, 1, 99, "")
		assert.Equal(t, http.StatusNotFound, appErrCode(t, err))
	})

	t.Run("Should reject a disabled offer", func(t *testing.T) {
		offer := activeOffer(5, 10)
		offer.Status = domain.OfferDisabled
		offerRepo := new(MockOfferRepo)
		offerRepo.On("GetByID", ctx, int64(5)).Return(offer, nil)

		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), offerRepo, new(MockStudentProfileRepo), new(MockNotifier))
		_, err := uc.Submit(ctx, 1, 5, "")
		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
		assert.Contains(t, err.Error(), "inactive offer")
	})

	t.Run("Should require a resume on file", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		offerRepo.On("GetByID", ctx, int64(5)).Return(activeOffer(5, 10), nil)
		profile := studentWithResume(1)
		profile.ResumeURL = nil
		studentRepo := new(MockStudentProfileRepo)
		studentRepo.On("GetByAccountID", ctx, int64(1)).Return(profile, nil)

		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), offerRepo, studentRepo, new(MockNotifier))
		_, err := uc.Submit(ctx, 1, 5, "")
		assert.Equal(t, http.StatusUnprocessableEntity, appErrCode(t, err))
		assert.Contains(t, err.Error(), "CV")
	})

	t.Run("Should treat a missing profile as a missing resume", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		offerRepo.On("GetByID", ctx, int64(5)).Return(activeOffer(5, 10), nil)
		studentRepo := new(MockStudentProfileRepo)
		studentRepo.On("GetByAccountID", ctx, int64(1)).Return(nil, domain.ErrNotFound)

		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), offerRepo, studentRepo, new(MockNotifier))
		_, err := uc.Submit(ctx, 1, 5, "")
		assert.Equal(t, http.StatusUnprocessableEntity, appErrCode(t, err))
	})

	t.Run("Should map a duplicate insert to a conflict", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		offerRepo.On("GetByID", ctx, int64(5)).Return(activeOffer(5, 10), nil)
		studentRepo := new(MockStudentProfileRepo)
		studentRepo.On("GetByAccountID", ctx, int64(1)).Return(studentWithResume(1), nil)
		appRepo := new(MockApplicationRepo)
		appRepo.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(domain.ErrDuplicate)

		uc := usecase.NewApplicationUsecase(appRepo, offerRepo, studentRepo, new(MockNotifier))
		_, err := uc.Submit(ctx, 1, 5, "")
		assert.Equal(t, http.StatusConflict, appErrCode(t, err))
		assert.Contains(t, err.Error(), "already applied")
	})

	t.Run("Should create a pending application with the caller as student", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		offerRepo.On("GetByID", mock.Anything, int64(5)).Return(activeOffer(5, 10), nil)
		studentRepo := new(MockStudentProfileRepo)
		studentRepo.On("GetByAccountID", ctx, int64(1)).Return(studentWithResume(1), nil)
		appRepo := new(MockApplicationRepo)
		appRepo.On("Create", ctx, mock.AnythingOfType("*domain.Application")).Return(nil).Run(func(args mock.Arguments) {
			a := args.Get(1).(*domain.Application)
			assert.Equal(t, int64(1), a.StudentAccountID)
			assert.Equal(t, domain.ApplicationPending, a.Status)
		})
		notifier := new(MockNotifier)
		notifier.On("SendApplicationReceived", mock.Anything, mock.Anything).Return(nil).Maybe()

		uc := usecase.NewApplicationUsecase(appRepo, offerRepo, studentRepo, notifier)
		app, err := uc.Submit(ctx, 1, 5, "Je suis motivée")
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationPending, app.Status)
		assert.NotNil(t, app.Message)
	})

	t.Run("Should succeed even when the notifier fails", func(t *testing.T) {
		offerRepo := new(MockOfferRepo)
		offerRepo.On("GetByID", mock.Anything, int64(5)).Return(activeOffer(5, 10), nil)
		studentRepo := new(MockStudentProfileRepo)
		studentRepo.On("GetByAccountID", ctx, int64(1)).Return(studentWithResume(1), nil)
		appRepo := new(MockApplicationRepo)
		appRepo.On("Create", ctx, mock.Anything).Return(nil)
		notifier := new(MockNotifier)
		notifier.On("SendApplicationReceived", mock.Anything, mock.Anything).Return(errors.New("smtp down")).Maybe()

		uc := usecase.NewApplicationUsecase(appRepo, offerRepo, studentRepo, notifier)
		_, err := uc.Submit(ctx, 1, 5, "")
		assert.NoError(t, err)
	})
}

func TestTransitionApplication(t *testing.T) {
	ctx := context.Background()
	pending := func() *domain.Application {
		return &domain.Application{
			ID:               7,
			OfferID:          5,
			StudentAccountID: 1,
			Status:           domain.ApplicationPending,
		}
	}

	t.Run("Should reject an unknown target status", func(t *testing.T) {
		uc := usecase.NewApplicationUsecase(new(MockApplicationRepo), new(MockOfferRepo), new(MockStudentProfileRepo), new(MockNotifier))
		_, err := uc.Transition(ctx, 10, 7, "maybe")
		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
	})

	t.Run("Should refuse a company that does not own the offer", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		appRepo.On("GetByID", ctx, int64(7)).Return(pending(), nil)
		offerRepo := new(MockOfferRepo)
		offerRepo.On("GetByID", ctx, int64(5)).Return(activeOffer(5, 10), nil)

		uc := usecase.NewApplicationUsecase(appRepo, offerRepo, new(MockStudentProfileRepo), new(MockNotifier))
		_, err := uc.Transition(ctx, 999, 7, domain.ApplicationAccepted)
		assert.Equal(t, http.StatusForbidden, appErrCode(t, err))
	})

	t.Run("Should only transition a pending application", func(t *testing.T) {
		decided := pending()
		decided.Status = domain.ApplicationRejected
		appRepo := new(MockApplicationRepo)
		appRepo.On("GetByID", ctx, int64(7)).Return(decided, nil)
		offerRepo := new(MockOfferRepo)
		offerRepo.On("GetByID", ctx, int64(5)).Return(activeOffer(5, 10), nil)

		uc := usecase.NewApplicationUsecase(appRepo, offerRepo, new(MockStudentProfileRepo), new(MockNotifier))
		_, err := uc.Transition(ctx, 10, 7, domain.ApplicationAccepted)
		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
		assert.Contains(t, err.Error(), "pending")
	})

	t.Run("Should accept a pending application for the owning company", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		appRepo.On("GetByID", ctx, int64(7)).Return(pending(), nil)
		appRepo.On("UpdateStatus", ctx, int64(7), domain.ApplicationAccepted).Return(nil)
		offerRepo := new(MockOfferRepo)
		offerRepo.On("GetByID", mock.Anything, int64(5)).Return(activeOffer(5, 10), nil)
		notifier := new(MockNotifier)
		notifier.On("SendStatusChanged", mock.Anything, mock.Anything).Return(nil).Maybe()

		uc := usecase.NewApplicationUsecase(appRepo, offerRepo, new(MockStudentProfileRepo), notifier)
		app, err := uc.Transition(ctx, 10, 7, domain.ApplicationAccepted)
		assert.NoError(t, err)
		assert.Equal(t, domain.ApplicationAccepted, app.Status)
		appRepo.AssertCalled(t, "UpdateStatus", ctx, int64(7), domain.ApplicationAccepted)
	})
}

func TestApplicationListScoping(t *testing.T) {
	ctx := context.Background()

	t.Run("Should query applications with the calling student's ID only", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		appRepo.On("ListByStudent", ctx, int64(7)).Return([]domain.Application{
			{ID: 1, StudentAccountID: 7},
			{ID: 2, StudentAccountID: 7},
		}, nil)

		uc := usecase.NewApplicationUsecase(appRepo, new(MockOfferRepo), new(MockStudentProfileRepo), new(MockNotifier))
		apps, err := uc.ListForStudent(ctx, 7)
		assert.NoError(t, err)
		for _, app := range apps {
			assert.Equal(t, int64(7), app.StudentAccountID)
		}
		appRepo.AssertExpectations(t)
		appRepo.AssertNumberOfCalls(t, "ListByStudent", 1)
	})

	t.Run("Should query received applications with the calling company's ID only", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		appRepo.On("ListByCompany", ctx, int64(10)).Return([]domain.Application{
			{ID: 3, OfferID: 5, StudentAccountID: 7},
		}, nil)

		uc := usecase.NewApplicationUsecase(appRepo, new(MockOfferRepo), new(MockStudentProfileRepo), new(MockNotifier))
		apps, err := uc.ListForCompany(ctx, 10)
		assert.NoError(t, err)
		assert.Len(t, apps, 1)
		appRepo.AssertExpectations(t)
		appRepo.AssertNotCalled(t, "ListByStudent", mock.Anything, mock.Anything)
	})
}

func TestWithdrawApplication(t *testing.T) {
	ctx := context.Background()

	t.Run("Should refuse withdrawing someone else's application", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		appRepo.On("GetByID", ctx, int64(7)).Return(&domain.Application{ID: 7, StudentAccountID: 1}, nil)

		uc := usecase.NewApplicationUsecase(appRepo, new(MockOfferRepo), new(MockStudentProfileRepo), new(MockNotifier))
		err := uc.Withdraw(ctx, 2, 7)
		assert.Equal(t, http.StatusForbidden, appErrCode(t, err))
		appRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Should delete the student's own application", func(t *testing.T) {
		appRepo := new(MockApplicationRepo)
		appRepo.On("GetByID", ctx, int64(7)).Return(&domain.Application{ID: 7, StudentAccountID: 1, Status: domain.ApplicationAccepted}, nil)
		appRepo.On("Delete", ctx, int64(7)).Return(nil)

		uc := usecase.NewApplicationUsecase(appRepo, new(MockOfferRepo), new(MockStudentProfileRepo), new(MockNotifier))
		assert.NoError(t, uc.Withdraw(ctx, 1, 7))
	})
}
