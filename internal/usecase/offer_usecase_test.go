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

func TestOfferVisibility(t *testing.T) {
	ctx := context.Background()

	t.Run("Should hide a disabled offer from students", func(t *testing.T) {
		offer := activeOffer(5, 10)
		offer.Status = domain.OfferDisabled
		repo := new(MockOfferRepo)
		repo.On("GetByID", ctx, int64(5)).Return(offer, nil)

		uc := usecase.NewOfferUsecase(repo, validator.New())
		_, err := uc.GetOffer(ctx, 5, 1, domain.RoleStudent)
		assert.Equal(t, http.StatusNotFound, appErrCode(t, err))
	})

	t.Run("Should show a disabled offer to its owner and to admins", func(t *testing.T) {
		offer := activeOffer(5, 10)
		offer.Status = domain.OfferDisabled
		repo := new(MockOfferRepo)
		repo.On("GetByID", ctx, int64(5)).Return(offer, nil)

		uc := usecase.NewOfferUsecase(repo, validator.New())
		got, err := uc.GetOffer(ctx, 5, 10, domain.RoleCompany)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), got.ID)

		got, err = uc.GetOffer(ctx, 5, 999, domain.RoleAdmin)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), got.ID)
	})

	t.Run("Should force the active-only filter on search", func(t *testing.T) {
		repo := new(MockOfferRepo)
		repo.On("Search", ctx, mock.AnythingOfType("domain.OfferFilter")).Return([]domain.Offer{}, int64(0), nil).Run(func(args mock.Arguments) {
			f := args.Get(1).(domain.OfferFilter)
			assert.True(t, f.ActiveOnly)
		})

		uc := usecase.NewOfferUsecase(repo, validator.New())
		_, _, err := uc.SearchOffers(ctx, domain.OfferFilter{ActiveOnly: false})
		assert.NoError(t, err)
	})
}

func TestOfferOwnership(t *testing.T) {
	ctx := context.Background()

	t.Run("Should refuse management by another company", func(t *testing.T) {
		repo := new(MockOfferRepo)
		repo.On("GetByID", ctx, int64(5)).Return(activeOffer(5, 10), nil)

		uc := usecase.NewOfferUsecase(repo, validator.New())
		err := uc.DeleteOffer(ctx, 999, domain.RoleCompany, 5)
		assert.Equal(t, http.StatusForbidden, appErrCode(t, err))
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("Should keep the original owner on update", func(t *testing.T) {
		repo := new(MockOfferRepo)
		repo.On("GetByID", ctx, int64(5)).Return(activeOffer(5, 10), nil)
		repo.On("Update", ctx, mock.AnythingOfType("*domain.Offer")).Return(nil).Run(func(args mock.Arguments) {
			o := args.Get(1).(*domain.Offer)
			assert.Equal(t, int64(10), o.CompanyAccountID)
		})

		uc := usecase.NewOfferUsecase(repo, validator.New())
		updated := &domain.Offer{
			ID:               5,
			CompanyAccountID: 999, // client-supplied, must be ignored
			Title:            "Stage backend Go",
			Description:      "Missions backend",
			Domain:           "Informatique",
			Capacity:         2,
		}
		assert.NoError(t, uc.UpdateOffer(ctx, 10, domain.RoleCompany, updated))
	})
}

func TestOfferValidation(t *testing.T) {
	ctx := context.Background()

	t.Run("Should reject a zero-capacity offer", func(t *testing.T) {
		uc := usecase.NewOfferUsecase(new(MockOfferRepo), validator.New())
		err := uc.CreateOffer(ctx, 10, &domain.Offer{
			Title:       "Stage",
			Description: "Desc",
			Domain:      "Informatique",
			Capacity:    0,
		})
		assert.Equal(t, http.StatusBadRequest, appErrCode(t, err))
	})

	t.Run("Should clear the compensation on an unpaid offer", func(t *testing.T) {
		repo := new(MockOfferRepo)
		repo.On("Create", ctx, mock.AnythingOfType("*domain.Offer")).Return(nil)

		amount := 800.0
		offer := &domain.Offer{
			Title:              "Stage",
			Description:        "Desc",
			Domain:             "Informatique",
			Capacity:           1,
			Paid:               false,
			CompensationAmount: &amount,
		}
		uc := usecase.NewOfferUsecase(repo, validator.New())
		assert.NoError(t, uc.CreateOffer(ctx, 10, offer))
		assert.Nil(t, offer.CompensationAmount)
	})
}
