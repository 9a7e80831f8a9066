package v1_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"espacestage-backend/internal/delivery/http/middleware"
	v1 "espacestage-backend/internal/delivery/http/v1"
	"espacestage-backend/internal/domain"
)

type stubOfferUsecase struct {
	mock.Mock
}

func (m *stubOfferUsecase) CreateOffer(ctx context.Context, companyAccountID int64, offer *domain.Offer) error {
	return m.Called(ctx, companyAccountID, offer).Error(0)
}
func (m *stubOfferUsecase) GetOffer(ctx context.Context, id int64, viewerID int64, viewerRole domain.Role) (*domain.Offer, error) {
	args := m.Called(ctx, id, viewerID, viewerRole)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Offer), args.Error(1)
}
func (m *stubOfferUsecase) SearchOffers(ctx context.Context, filter domain.OfferFilter) ([]domain.Offer, int64, error) {
	args := m.Called(ctx, filter)
	var offers []domain.Offer
	if args.Get(0) != nil {
		offers = args.Get(0).([]domain.Offer)
	}
	return offers, args.Get(1).(int64), args.Error(2)
}
func (m *stubOfferUsecase) ListMyOffers(ctx context.Context, companyAccountID int64, page, pageSize int) ([]domain.Offer, int64, error) {
	args := m.Called(ctx, companyAccountID, page, pageSize)
	var offers []domain.Offer
	if args.Get(0) != nil {
		offers = args.Get(0).([]domain.Offer)
	}
	return offers, args.Get(1).(int64), args.Error(2)
}
func (m *stubOfferUsecase) UpdateOffer(ctx context.Context, actorID int64, actorRole domain.Role, offer *domain.Offer) error {
	return m.Called(ctx, actorID, actorRole, offer).Error(0)
}
func (m *stubOfferUsecase) SetOfferStatus(ctx context.Context, actorID int64, actorRole domain.Role, id int64, status domain.OfferStatus) error {
	return m.Called(ctx, actorID, actorRole, id, status).Error(0)
}
func (m *stubOfferUsecase) DeleteOffer(ctx context.Context, actorID int64, actorRole domain.Role, id int64) error {
	return m.Called(ctx, actorID, actorRole, id).Error(0)
}

// newOfferRouter mounts the offer routes behind a fake auth pass that
// injects the given account into the gin context.
func newOfferRouter(uc domain.OfferUsecase, accountID int64, role domain.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.ErrorHandler(false))

	public := r.Group("/v1")
	protected := r.Group("/v1")
	protected.Use(func(c *gin.Context) {
		c.Set(string(domain.KeyAccountID), accountID)
		c.Set(string(domain.KeyAccountRole), string(role))
		c.Next()
	})

	v1.NewOfferHandler(public, protected, uc)
	return r
}

const validOfferBody = `{"title":"Stage backend","description":"Go","domain":"Informatique","capacity":2}`

func TestOfferRouteRoles(t *testing.T) {
	t.Run("Should let a company create an offer", func(t *testing.T) {
		uc := new(stubOfferUsecase)
		uc.On("CreateOffer", mock.Anything, int64(10), mock.Anything).Return(nil)

		r := newOfferRouter(uc, 10, domain.RoleCompany)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/offres", strings.NewReader(validOfferBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		uc.AssertExpectations(t)
	})

	t.Run("Should refuse offer creation for an admin", func(t *testing.T) {
		uc := new(stubOfferUsecase)

		r := newOfferRouter(uc, 1, domain.RoleAdmin)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/offres", strings.NewReader(validOfferBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		uc.AssertNotCalled(t, "CreateOffer", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Should still let an admin disable an offer on the shared route", func(t *testing.T) {
		uc := new(stubOfferUsecase)
		uc.On("SetOfferStatus", mock.Anything, int64(1), domain.RoleAdmin, int64(5), domain.OfferDisabled).Return(nil)

		r := newOfferRouter(uc, 1, domain.RoleAdmin)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPatch, "/v1/offres/5/status", strings.NewReader(`{"status":"disabled"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		uc.AssertExpectations(t)
	})

	t.Run("Should refuse offer creation for a student", func(t *testing.T) {
		uc := new(stubOfferUsecase)

		r := newOfferRouter(uc, 7, domain.RoleStudent)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/v1/offres", strings.NewReader(validOfferBody))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
