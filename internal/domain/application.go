package domain

import (
	"context"
	"time"
)

// Application status constants. pending is the only non-terminal state:
// a decided application can only be deleted, never re-transitioned.
const (
	ApplicationPending  = "pending"
	ApplicationAccepted = "accepted"
	ApplicationRejected = "rejected"
)

// Application is a student's submission against one offer. At most one row
// per (offer, student) pair, enforced by a database unique constraint.
type Application struct {
	ID               int64     `json:"id"`
	OfferID          int64     `json:"offer_id"`
	StudentAccountID int64     `json:"student_account_id"`
	Status           string    `json:"status"`
	Message          *string   `json:"message,omitempty"`
	SubmittedAt      time.Time `json:"submitted_at"`
	UpdatedAt        time.Time `json:"updated_at"`

	// Joined display fields for list responses
	OfferTitle       *string `json:"offer_title,omitempty"`
	OfferDomain      *string `json:"offer_domain,omitempty"`
	CompanyName      *string `json:"company_name,omitempty"`
	StudentName      *string `json:"student_name,omitempty"`
	StudentPhotoURL  *string `json:"student_photo_url,omitempty"`
	StudentResumeURL *string `json:"student_resume_url,omitempty"`
}

// ApplicationRepository defines data access for applications
type ApplicationRepository interface {
	// Create returns ErrDuplicate when the (offer, student) pair already
	// exists; the unique constraint is the only duplicate check.
	Create(ctx context.Context, app *Application) error
	GetByID(ctx context.Context, id int64) (*Application, error)
	ListByStudent(ctx context.Context, studentAccountID int64) ([]Application, error)
	ListByCompany(ctx context.Context, companyAccountID int64) ([]Application, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
}

// Notifier is the email collaborator consumed by the application lifecycle.
// Dispatch failures are logged by the caller and never fail the triggering
// operation.
type Notifier interface {
	SendApplicationReceived(ctx context.Context, app *Application) error
	SendStatusChanged(ctx context.Context, app *Application) error
}

// ApplicationUsecase defines the application lifecycle
type ApplicationUsecase interface {
	// Submit creates a pending application for the student. Fails when the
	// offer is not active, the student has no resume on file, or the student
	// already applied to this offer.
	Submit(ctx context.Context, studentAccountID int64, offerID int64, message string) (*Application, error)
	ListForStudent(ctx context.Context, studentAccountID int64) ([]Application, error)
	ListForCompany(ctx context.Context, companyAccountID int64) ([]Application, error)
	// Transition moves a pending application to accepted or rejected. Only
	// the company owning the parent offer may call it.
	Transition(ctx context.Context, actorCompanyID int64, applicationID int64, newStatus string) (*Application, error)
	// Withdraw deletes the student's own application regardless of status:
	// a pending one is a true withdrawal, a decided one clears history.
	Withdraw(ctx context.Context, actorStudentID int64, applicationID int64) error
	// AdminDelete removes any application, admin role only.
	AdminDelete(ctx context.Context, applicationID int64) error
}
