package domain

import (
	"context"
	"time"
)

// Offer status constants
type OfferStatus string

const (
	OfferActive   OfferStatus = "active"
	OfferDisabled OfferStatus = "disabled"
)

// Offer is an internship posting owned by exactly one company account.
// Only active offers are visible to students and accept applications.
type Offer struct {
	ID                 int64       `json:"id"`
	CompanyAccountID   int64       `json:"company_account_id"`
	Title              string      `json:"title" validate:"required"`
	Description        string      `json:"description" validate:"required"`
	Domain             string      `json:"domain" validate:"required"`
	Capacity           int         `json:"capacity" validate:"min=1"`
	Location           string      `json:"location"`
	Type               string      `json:"type"`
	Paid               bool        `json:"paid"`
	CompensationAmount *float64    `json:"compensation_amount,omitempty"`
	StartDate          *time.Time  `json:"start_date,omitempty"`
	EndDate            *time.Time  `json:"end_date,omitempty"`
	Status             OfferStatus `json:"status"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`

	// Joined display fields for listings
	CompanyName    *string `json:"company_name,omitempty"`
	CompanyLogoURL *string `json:"company_logo_url,omitempty"`
}

// OfferFilter drives the student-facing search. ActiveOnly is forced server
// side for non-owner queries; clients cannot bypass it.
type OfferFilter struct {
	Domain     string `form:"domain"`
	Location   string `form:"location"`
	Type       string `form:"type"`
	Paid       *bool  `form:"paid"`
	Query      string `form:"q"`
	ActiveOnly bool   `form:"-"`
	Page       int    `form:"page"`
	PageSize   int    `form:"page_size"`
}

// OfferRepository defines data access for offers
type OfferRepository interface {
	Create(ctx context.Context, offer *Offer) error
	GetByID(ctx context.Context, id int64) (*Offer, error)
	Search(ctx context.Context, filter OfferFilter) ([]Offer, int64, error)
	FetchByCompany(ctx context.Context, companyAccountID int64, limit, offset int) ([]Offer, int64, error)
	Update(ctx context.Context, offer *Offer) error
	UpdateStatus(ctx context.Context, id int64, status OfferStatus) error
	Delete(ctx context.Context, id int64) error
}

// OfferUsecase defines business logic for offers
type OfferUsecase interface {
	CreateOffer(ctx context.Context, companyAccountID int64, offer *Offer) error
	GetOffer(ctx context.Context, id int64, viewerID int64, viewerRole Role) (*Offer, error)
	SearchOffers(ctx context.Context, filter OfferFilter) ([]Offer, int64, error)
	ListMyOffers(ctx context.Context, companyAccountID int64, page, pageSize int) ([]Offer, int64, error)
	UpdateOffer(ctx context.Context, actorID int64, actorRole Role, offer *Offer) error
	SetOfferStatus(ctx context.Context, actorID int64, actorRole Role, id int64, status OfferStatus) error
	DeleteOffer(ctx context.Context, actorID int64, actorRole Role, id int64) error
}
