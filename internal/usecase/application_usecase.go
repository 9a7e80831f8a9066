package usecase

import (
	"context"
	"errors"

	"espacestage-backend/internal/domain"
	"espacestage-backend/pkg/apperror"
	"espacestage-backend/pkg/logger"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	offerRepo       domain.OfferRepository
	studentRepo     domain.StudentProfileRepository
	notifier        domain.Notifier
}

func NewApplicationUsecase(
	appRepo domain.ApplicationRepository,
	offerRepo domain.OfferRepository,
	studentRepo domain.StudentProfileRepository,
	notifier domain.Notifier,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: appRepo,
		offerRepo:       offerRepo,
		studentRepo:     studentRepo,
		notifier:        notifier,
	}
}

// Submit creates a pending application for the student.
func (uc *applicationUsecase) Submit(ctx context.Context, studentAccountID int64, offerID int64, message string) (*domain.Application, error) {
	// 1. The offer must exist and be active
	offer, err := uc.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Offer not found")
		}
		return nil, apperror.Internal(err)
	}
	if offer.Status != domain.OfferActive {
		return nil, apperror.BadRequest("Cannot apply to an inactive offer")
	}

	// 2. The student must have a resume on file. Checked here, not at
	// profile save, so a profile without one is still valid.
	profile, err := uc.studentRepo.GetByAccountID(ctx, studentAccountID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.UnprocessableEntity("Upload a CV to your profile before applying")
		}
		return nil, apperror.Internal(err)
	}
	if profile.ResumeURL == nil || *profile.ResumeURL == "" {
		return nil, apperror.UnprocessableEntity("Upload a CV to your profile before applying")
	}

	// 3. Insert. The unique constraint is the duplicate check; a concurrent
	// double-submit loses the race at the database, not here.
	var messagePtr *string
	if message != "" {
		messagePtr = &message
	}

	app := &domain.Application{
		OfferID:          offerID,
		StudentAccountID: studentAccountID,
		Status:           domain.ApplicationPending,
		Message:          messagePtr,
	}
	if err := uc.applicationRepo.Create(ctx, app); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, apperror.Conflict("You have already applied to this offer")
		}
		return nil, apperror.Internal(err)
	}

	// Display fields for the response and the notification
	app.OfferTitle = &offer.Title
	app.CompanyName = offer.CompanyName
	studentName := profile.FirstName + " " + profile.LastName
	app.StudentName = &studentName

	// Notification is a collaborator call that may fail independently of
	// the submission; it never propagates.
	uc.dispatch(func(c context.Context) error { return uc.notifier.SendApplicationReceived(c, app) }, app.ID)

	return app, nil
}

func (uc *applicationUsecase) ListForStudent(ctx context.Context, studentAccountID int64) ([]domain.Application, error) {
	apps, err := uc.applicationRepo.ListByStudent(ctx, studentAccountID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

func (uc *applicationUsecase) ListForCompany(ctx context.Context, companyAccountID int64) ([]domain.Application, error) {
	apps, err := uc.applicationRepo.ListByCompany(ctx, companyAccountID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return apps, nil
}

// Transition moves a pending application to accepted or rejected. Ownership
// is checked against the parent offer before the state is touched; a
// non-pending application is never updated.
func (uc *applicationUsecase) Transition(ctx context.Context, actorCompanyID int64, applicationID int64, newStatus string) (*domain.Application, error) {
	if newStatus != domain.ApplicationAccepted && newStatus != domain.ApplicationRejected {
		return nil, apperror.BadRequest("Status must be accepted or rejected")
	}

	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Application not found")
		}
		return nil, apperror.Internal(err)
	}

	offer, err := uc.offerRepo.GetByID(ctx, app.OfferID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if offer.CompanyAccountID != actorCompanyID {
		return nil, apperror.Forbidden("You can only decide applications to your own offers")
	}

	if app.Status != domain.ApplicationPending {
		return nil, apperror.BadRequest("Only a pending application can be decided")
	}

	if err := uc.applicationRepo.UpdateStatus(ctx, applicationID, newStatus); err != nil {
		return nil, apperror.Internal(err)
	}
	app.Status = newStatus

	// Email failure must not roll back the transition.
	uc.dispatch(func(c context.Context) error { return uc.notifier.SendStatusChanged(c, app) }, app.ID)

	return app, nil
}

// Withdraw deletes the student's own application. Allowed in any status:
// pending is a true withdrawal, decided clears it from history.
func (uc *applicationUsecase) Withdraw(ctx context.Context, actorStudentID int64, applicationID int64) error {
	app, err := uc.applicationRepo.GetByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}
	if app.StudentAccountID != actorStudentID {
		return apperror.Forbidden("You can only withdraw your own applications")
	}

	if err := uc.applicationRepo.Delete(ctx, applicationID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// AdminDelete removes any application without an ownership check. The
// handler restricts the route to admins.
func (uc *applicationUsecase) AdminDelete(ctx context.Context, applicationID int64) error {
	if err := uc.applicationRepo.Delete(ctx, applicationID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}
	return nil
}

// dispatch runs a notification in the background and logs failures.
func (uc *applicationUsecase) dispatch(send func(context.Context) error, applicationID int64) {
	if uc.notifier == nil {
		return
	}
	go func() {
		if err := send(context.Background()); err != nil {
			logger.Log.Warn("notification dispatch failed",
				"application_id", applicationID,
				"error", err.Error(),
			)
		}
	}()
}
