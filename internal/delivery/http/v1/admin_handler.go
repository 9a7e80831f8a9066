package v1

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"espacestage-backend/internal/delivery/http/middleware"
	"espacestage-backend/internal/delivery/http/response"
	"espacestage-backend/internal/domain"
	"espacestage-backend/pkg/apperror"
)

type AdminHandler struct {
	adminUC domain.AdminUsecase
}

func NewAdminHandler(protected *gin.RouterGroup, adminUC domain.AdminUsecase) {
	handler := &AdminHandler{adminUC: adminUC}

	admin := protected.Group("/admin")
	admin.Use(middleware.RequireRoles(domain.RoleAdmin))
	{
		admin.GET("/stats", handler.GetStats)
		admin.GET("/users", handler.ListUsers)
		admin.PUT("/users/:id/status", handler.SetUserStatus)
		admin.DELETE("/users/:id", handler.DeleteUser)
		admin.GET("/offres", handler.ListOffers)
		admin.PUT("/offres/:id/status", handler.SetOfferStatus)
		admin.DELETE("/offres/:id", handler.DeleteOffer)
		admin.DELETE("/candidatures/:id", handler.DeleteApplication)
	}
}

type AccountStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active blocked"`
}

// GetStats godoc
// @Summary      Platform statistics
// @Tags         admin
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /admin/stats [get]
// @Security     BearerAuth
func (h *AdminHandler) GetStats(c *gin.Context) {
	stats, err := h.adminUC.GetStats(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Statistics", stats)
}

// ListUsers godoc
// @Summary      List accounts
// @Tags         admin
// @Produce      json
// @Param        role       query  string  false  "Filter by role"
// @Param        page       query  int     false  "Page"
// @Param        page_size  query  int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /admin/users [get]
// @Security     BearerAuth
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.adminUC.ListAccounts(c.Request.Context(), c.Query("role"), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Accounts", result)
}

// SetUserStatus godoc
// @Summary      Block or reactivate an account
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id      path  int                   true  "Account ID"
// @Param        status  body  AccountStatusRequest  true  "New status"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /admin/users/{id}/status [put]
// @Security     BearerAuth
func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req AccountStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.adminUC.SetAccountStatus(c.Request.Context(), id, domain.AccountStatus(req.Status)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Account status updated", nil)
}

// DeleteUser godoc
// @Summary      Delete an account
// @Description  Cascades to the profile, offers and applications.
// @Tags         admin
// @Produce      json
// @Param        id  path  int  true  "Account ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /admin/users/{id} [delete]
// @Security     BearerAuth
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.adminUC.DeleteAccount(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Account deleted", nil)
}

// ListOffers godoc
// @Summary      List all offers
// @Description  Moderation view, all statuses included.
// @Tags         admin
// @Produce      json
// @Param        page       query  int  false  "Page"
// @Param        page_size  query  int  false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /admin/offres [get]
// @Security     BearerAuth
func (h *AdminHandler) ListOffers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	result, err := h.adminUC.ListOffers(c.Request.Context(), page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Offers", result)
}

// SetOfferStatus godoc
// @Summary      Enable or disable any offer
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id      path  int                 true  "Offer ID"
// @Param        status  body  OfferStatusRequest  true  "New status"
// @Success      200  {object}  response.Response
// @Router       /admin/offres/{id}/status [put]
// @Security     BearerAuth
func (h *AdminHandler) SetOfferStatus(c *gin.Context) {
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

	if err := h.adminUC.SetOfferStatus(c.Request.Context(), id, domain.OfferStatus(req.Status)); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Offer status updated", nil)
}

// DeleteOffer godoc
// @Summary      Delete any offer
// @Tags         admin
// @Produce      json
// @Param        id  path  int  true  "Offer ID"
// @Success      200  {object}  response.Response
// @Router       /admin/offres/{id} [delete]
// @Security     BearerAuth
func (h *AdminHandler) DeleteOffer(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.adminUC.DeleteOffer(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Offer deleted", nil)
}

// DeleteApplication godoc
// @Summary      Delete any application
// @Tags         admin
// @Produce      json
// @Param        id  path  int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Router       /admin/candidatures/{id} [delete]
// @Security     BearerAuth
func (h *AdminHandler) DeleteApplication(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}
	if err := h.adminUC.DeleteApplication(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application deleted", nil)
}
