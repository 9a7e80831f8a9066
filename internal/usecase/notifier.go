package usecase

import (
	"context"
	"fmt"

	"espacestage-backend/internal/domain"
	"espacestage-backend/pkg/email"
)

// emailNotifier adapts the SMTP service to the application lifecycle. It
// resolves recipient addresses from the accounts table at send time so a
// changed email is always current.
type emailNotifier struct {
	svc         *email.Service
	accountRepo domain.AccountRepository
	offerRepo   domain.OfferRepository
}

func NewEmailNotifier(svc *email.Service, accountRepo domain.AccountRepository, offerRepo domain.OfferRepository) domain.Notifier {
	return &emailNotifier{svc: svc, accountRepo: accountRepo, offerRepo: offerRepo}
}

func (n *emailNotifier) SendApplicationReceived(ctx context.Context, app *domain.Application) error {
	if !n.svc.IsConfigured() {
		return nil
	}
	offer, err := n.offerRepo.GetByID(ctx, app.OfferID)
	if err != nil {
		return fmt.Errorf("resolve offer %d: %w", app.OfferID, err)
	}
	company, err := n.accountRepo.GetByID(ctx, offer.CompanyAccountID)
	if err != nil {
		return fmt.Errorf("resolve company account %d: %w", offer.CompanyAccountID, err)
	}

	data := email.ApplicationReceivedData{
		OfferTitle:  offer.Title,
		SubmittedAt: app.SubmittedAt.Format("02/01/2006"),
	}
	if offer.CompanyName != nil {
		data.CompanyName = *offer.CompanyName
	}
	if app.StudentName != nil {
		data.StudentName = *app.StudentName
	}
	if app.Message != nil {
		data.Message = *app.Message
	}
	return n.svc.SendApplicationReceived(company.Email, data)
}

func (n *emailNotifier) SendStatusChanged(ctx context.Context, app *domain.Application) error {
	if !n.svc.IsConfigured() {
		return nil
	}
	student, err := n.accountRepo.GetByID(ctx, app.StudentAccountID)
	if err != nil {
		return fmt.Errorf("resolve student account %d: %w", app.StudentAccountID, err)
	}

	data := email.StatusChangedData{Status: app.Status}
	if app.StudentName != nil {
		data.StudentName = *app.StudentName
	}
	if app.OfferTitle != nil {
		data.OfferTitle = *app.OfferTitle
	}
	if app.CompanyName != nil {
		data.CompanyName = *app.CompanyName
	}
	return n.svc.SendStatusChanged(student.Email, data)
}
