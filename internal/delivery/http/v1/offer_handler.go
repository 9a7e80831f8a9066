package v1

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"espacestage-backend/internal/delivery/http/middleware"
	"espacestage-backend/internal/delivery/http/response"
	"espacestage-backend/internal/domain"
	"espacestage-backend/pkg/apperror"
)

type OfferHandler struct {
	offerUC domain.OfferUsecase
}

func NewOfferHandler(public *gin.RouterGroup, protected *gin.RouterGroup, offerUC domain.OfferUsecase) {
	handler := &OfferHandler{offerUC: offerUC}

	// PUBLIC routes: the search only ever returns active offers,
	// enforced server side.
	publicOffers := public.Group("/offres")
	{
		publicOffers.GET("", handler.Search)
		publicOffers.GET("/:id", handler.GetDetails)
	}

	// Company management routes. Creation and the owner listing are company
	// only; mutation of an existing offer is also open to admins, who pass
	// the ownership check in the usecase.
	companyOnly := middleware.RequireRoles(domain.RoleCompany)
	companyOrAdmin := middleware.RequireRoles(domain.RoleCompany, domain.RoleAdmin)
	managedOffers := protected.Group("/offres")
	{
		managedOffers.POST("", companyOnly, handler.Create)
		managedOffers.GET("/mine", companyOnly, handler.ListMine)
		managedOffers.PUT("/:id", companyOrAdmin, handler.Update)
		managedOffers.PATCH("/:id/status", companyOrAdmin, handler.SetStatus)
		managedOffers.DELETE("/:id", companyOrAdmin, handler.Delete)
	}
}

type OfferRequest struct {
	Title              string   `json:"title" binding:"required"`
	Description        string   `json:"description" binding:"required"`
	Domain             string   `json:"domain" binding:"required"`
	Capacity           int      `json:"capacity" binding:"required,min=1"`
	Location           string   `json:"location"`
	Type               string   `json:"type"`
	Paid               bool     `json:"paid"`
	CompensationAmount *float64 `json:"compensation_amount"`
	StartDate          *string  `json:"start_date"` // YYYY-MM-DD
	EndDate            *string  `json:"end_date"`
}

type OfferStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active disabled"`
}

func (r *OfferRequest) toDomain() (*domain.Offer, error) {
	offer := &domain.Offer{
		Title:              r.Title,
		Description:        r.Description,
		Domain:             r.Domain,
		Capacity:           r.Capacity,
		Location:           r.Location,
		Type:               r.Type,
		Paid:               r.Paid,
		CompensationAmount: r.CompensationAmount,
		Status:             domain.OfferActive,
	}
	parseDate := func(s *string) (*time.Time, error) {
		if s == nil || *s == "" {
			return nil, nil
		}
		t, err := time.Parse("2006-01-02", *s)
		if err != nil {
			return nil, err
		}
		return &t, nil
	}
	var err error
	if offer.StartDate, err = parseDate(r.StartDate); err != nil {
		return nil, apperror.BadRequest("start_date must be YYYY-MM-DD")
	}
	if offer.EndDate, err = parseDate(r.EndDate); err != nil {
		return nil, apperror.BadRequest("end_date must be YYYY-MM-DD")
	}
	return offer, nil
}

func pathID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.BadRequest("Invalid id")
	}
	return id, nil
}

// Search godoc
// @Summary      Search active offers
// @Description  Student-facing listing; only active offers are returned.
// @Tags         offers
// @Produce      json
// @Param        domain     query  string  false  "Filter by domain"
// @Param        location   query  string  false  "Filter by location"
// @Param        type       query  string  false  "Filter by internship type"
// @Param        paid       query  bool    false  "Filter by paid flag"
// @Param        q          query  string  false  "Full text on title and description"
// @Param        page       query  int     false  "Page"
// @Param        page_size  query  int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /offres [get]
func (h *OfferHandler) Search(c *gin.Context) {
	var filter domain.OfferFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	offers, total, err := h.offerUC.SearchOffers(c.Request.Context(), filter)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Offers", gin.H{
		"offers": offers,
		"total":  total,
	})
}

// GetDetails godoc
// @Summary      Offer details
// @Description  An inactive offer is only visible to its owner and admins.
// @Tags         offers
// @Produce      json
// @Param        id  path  int  true  "Offer ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /offres/{id} [get]
func (h *OfferHandler) GetDetails(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	// Unauthenticated viewers have zero ID and empty role; they only see
	// active offers.
	viewerID := c.GetInt64(string(domain.KeyAccountID))
	viewerRole := domain.Role(c.GetString(string(domain.KeyAccountRole)))

	offer, err := h.offerUC.GetOffer(c.Request.Context(), id, viewerID, viewerRole)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Offer", offer)
}

// Create godoc
// @Summary      Create an offer
// @Tags         offers
// @Accept       json
// @Produce      json
// @Param        offer  body      OfferRequest  true  "Offer"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /offres [post]
// @Security     BearerAuth
func (h *OfferHandler) Create(c *gin.Context) {
	var req OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	offer, err := req.toDomain()
	if err != nil {
		c.Error(err)
		return
	}

	companyID := c.GetInt64(string(domain.KeyAccountID))
	if err := h.offerUC.CreateOffer(c.Request.Context(), companyID, offer); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Offer created", offer)
}

// ListMine godoc
// @Summary      List my offers
// @Description  Management view for the owning company, all statuses shown.
// @Tags         offers
// @Produce      json
// @Param        page       query  int  false  "Page"
// @Param        page_size  query  int  false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /offres/mine [get]
// @Security     BearerAuth
func (h *OfferHandler) ListMine(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	companyID := c.GetInt64(string(domain.KeyAccountID))
	offers, total, err := h.offerUC.ListMyOffers(c.Request.Context(), companyID, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "My offers", gin.H{
		"offers": offers,
		"total":  total,
	})
}

// Update godoc
// @Summary      Update an offer
// @Tags         offers
// @Accept       json
// @Produce      json
// @Param        id     path  int           true  "Offer ID"
// @Param        offer  body  OfferRequest  true  "Offer"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /offres/{id} [put]
// @Security     BearerAuth
func (h *OfferHandler) Update(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req OfferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}
	offer, err := req.toDomain()
	if err != nil {
		c.Error(err)
		return
	}
	offer.ID = id

	actorID := c.GetInt64(string(domain.KeyAccountID))
	actorRole := domain.Role(c.GetString(string(domain.KeyAccountRole)))
	if err := h.offerUC.UpdateOffer(c.Request.Context(), actorID, actorRole, offer); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Offer updated", offer)
}

// SetStatus godoc
// @Summary      Enable or disable an offer
// @Tags         offers
// @Accept       json
// @Produce      json
// @Param        id      path  int                 true  "Offer ID"
// @Param        status  body  OfferStatusRequest  true  "New status"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /offres/{id}/status [patch]
// @Security     BearerAuth
func (h *OfferHandler) SetStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req OfferStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	actorID := c.GetInt64(string(domain.KeyAccountID))
	actorRole := domain.Role(c.GetString(string(domain.KeyAccountRole)))
	if err := h.offerUC.SetOfferStatus(c.Request.Context(), actorID, actorRole, id, domain.OfferStatus(req.Status)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Offer status updated", nil)
}

// Delete godoc
// @Summary      Delete an offer
// @Description  Removes the offer and, by cascade, its applications.
// @Tags         offers
// @Produce      json
// @Param        id  path  int  true  "Offer ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /offres/{id} [delete]
// @Security     BearerAuth
func (h *OfferHandler) Delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	actorID := c.GetInt64(string(domain.KeyAccountID))
	actorRole := domain.Role(c.GetString(string(domain.KeyAccountRole)))
	if err := h.offerUC.DeleteOffer(c.Request.Context(), actorID, actorRole, id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Offer deleted", nil)
}
