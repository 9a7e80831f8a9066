package usecase

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"espacestage-backend/internal/domain"
	"espacestage-backend/pkg/apperror"
)

type offerUsecase struct {
	offerRepo domain.OfferRepository
	validate  *validator.Validate
}

func NewOfferUsecase(offerRepo domain.OfferRepository, validate *validator.Validate) domain.OfferUsecase {
	return &offerUsecase{
		offerRepo: offerRepo,
		validate:  validate,
	}
}

func (u *offerUsecase) CreateOffer(ctx context.Context, companyAccountID int64, offer *domain.Offer) error {
	offer.CompanyAccountID = companyAccountID
	if err := u.validateOffer(offer); err != nil {
		return err
	}
	if err := u.offerRepo.Create(ctx, offer); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// GetOffer hides inactive offers from everyone but the owning company and
// admins.
func (u *offerUsecase) GetOffer(ctx context.Context, id int64, viewerID int64, viewerRole domain.Role) (*domain.Offer, error) {
	offer, err := u.offerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Offer not found")
		}
		return nil, apperror.Internal(err)
	}

	if offer.Status != domain.OfferActive {
		isOwner := viewerRole == domain.RoleCompany && offer.CompanyAccountID == viewerID
		if !isOwner && viewerRole != domain.RoleAdmin {
			return nil, apperror.NotFound("Offer not found")
		}
	}
	return offer, nil
}

// SearchOffers is the student-facing listing; only active offers leave the
// repository because ActiveOnly is forced here.
func (u *offerUsecase) SearchOffers(ctx context.Context, filter domain.OfferFilter) ([]domain.Offer, int64, error) {
	filter.ActiveOnly = true
	normalizePage(&filter.Page, &filter.PageSize)
	offers, total, err := u.offerRepo.Search(ctx, filter)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return offers, total, nil
}

// ListMyOffers is the owning company's management view, all statuses shown.
func (u *offerUsecase) ListMyOffers(ctx context.Context, companyAccountID int64, page, pageSize int) ([]domain.Offer, int64, error) {
	normalizePage(&page, &pageSize)
	offset := (page - 1) * pageSize
	offers, total, err := u.offerRepo.FetchByCompany(ctx, companyAccountID, pageSize, offset)
	if err != nil {
		return nil, 0, apperror.Internal(err)
	}
	return offers, total, nil
}

func (u *offerUsecase) UpdateOffer(ctx context.Context, actorID int64, actorRole domain.Role, offer *domain.Offer) error {
	existing, err := u.requireOwnership(ctx, actorID, actorRole, offer.ID)
	if err != nil {
		return err
	}
	offer.CompanyAccountID = existing.CompanyAccountID
	if err := u.validateOffer(offer); err != nil {
		return err
	}
	if err := u.offerRepo.Update(ctx, offer); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *offerUsecase) SetOfferStatus(ctx context.Context, actorID int64, actorRole domain.Role, id int64, status domain.OfferStatus) error {
	if status != domain.OfferActive && status != domain.OfferDisabled {
		return apperror.BadRequest("Status must be active or disabled")
	}
	if _, err := u.requireOwnership(ctx, actorID, actorRole, id); err != nil {
		return err
	}
	if err := u.offerRepo.UpdateStatus(ctx, id, status); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

func (u *offerUsecase) DeleteOffer(ctx context.Context, actorID int64, actorRole domain.Role, id int64) error {
	if _, err := u.requireOwnership(ctx, actorID, actorRole, id); err != nil {
		return err
	}
	if err := u.offerRepo.Delete(ctx, id); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// requireOwnership loads the offer and verifies the actor owns it or is an
// admin.
func (u *offerUsecase) requireOwnership(ctx context.Context, actorID int64, actorRole domain.Role, offerID int64) (*domain.Offer, error) {
	offer, err := u.offerRepo.GetByID(ctx, offerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, apperror.NotFound("Offer not found")
		}
		return nil, apperror.Internal(err)
	}
	if actorRole == domain.RoleAdmin {
		return offer, nil
	}
	if offer.CompanyAccountID != actorID {
		return nil, apperror.Forbidden("You can only manage your own offers")
	}
	return offer, nil
}

func (u *offerUsecase) validateOffer(offer *domain.Offer) error {
	if err := u.validate.Struct(offer); err != nil {
		return apperror.BadRequest("Title, description and domain are required; capacity must be at least 1")
	}
	if offer.StartDate != nil && offer.EndDate != nil && offer.EndDate.Before(*offer.StartDate) {
		return apperror.BadRequest("End date cannot be before start date")
	}
	if !offer.Paid {
		offer.CompensationAmount = nil
	}
	return nil
}

func normalizePage(page, pageSize *int) {
	if *page < 1 {
		*page = 1
	}
	if *pageSize < 1 {
		*pageSize = 10
	}
	if *pageSize > 100 {
		*pageSize = 100
	}
}
