package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"espacestage-backend/internal/delivery/http/middleware"
	"espacestage-backend/internal/delivery/http/response"
	"espacestage-backend/internal/domain"
	"espacestage-backend/pkg/apperror"
)

type ApplicationHandler struct {
	applicationUC domain.ApplicationUsecase
}

func NewApplicationHandler(protected *gin.RouterGroup, applicationUC domain.ApplicationUsecase) {
	handler := &ApplicationHandler{applicationUC: applicationUC}

	applications := protected.Group("/candidatures")
	{
		applications.POST("", middleware.RequireRoles(domain.RoleStudent), handler.Submit)
		applications.GET("/student", middleware.RequireRoles(domain.RoleStudent), handler.ListForStudent)
		applications.GET("/company", middleware.RequireRoles(domain.RoleCompany), handler.ListForCompany)
		applications.PUT("/:id/status", middleware.RequireRoles(domain.RoleCompany), handler.Decide)
		applications.DELETE("/:id", middleware.RequireRoles(domain.RoleStudent), handler.Withdraw)
	}
}

type SubmitApplicationRequest struct {
	OfferID int64  `json:"offer_id" binding:"required"`
	Message string `json:"message"`
}

type DecideApplicationRequest struct {
	Status string `json:"status" binding:"required,oneof=accepted rejected"`
}

// Submit godoc
// @Summary      Apply to an offer
// @Description  Creates a pending application. Requires an uploaded CV on
// @Description  the profile; one application per offer per student.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        application  body      SubmitApplicationRequest  true  "Application"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /candidatures [post]
// @Security     BearerAuth
func (h *ApplicationHandler) Submit(c *gin.Context) {
	var req SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	studentID := c.GetInt64(string(domain.KeyAccountID))
	app, err := h.applicationUC.Submit(c.Request.Context(), studentID, req.OfferID, req.Message)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Application submitted", app)
}

// ListForStudent godoc
// @Summary      My applications
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /candidatures/student [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListForStudent(c *gin.Context) {
	studentID := c.GetInt64(string(domain.KeyAccountID))
	apps, err := h.applicationUC.ListForStudent(c.Request.Context(), studentID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications", apps)
}

// ListForCompany godoc
// @Summary      Applications to my offers
// @Tags         applications
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /candidatures/company [get]
// @Security     BearerAuth
func (h *ApplicationHandler) ListForCompany(c *gin.Context) {
	companyID := c.GetInt64(string(domain.KeyAccountID))
	apps, err := h.applicationUC.ListForCompany(c.Request.Context(), companyID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Applications", apps)
}

// Decide godoc
// @Summary      Accept or reject an application
// @Description  Only the company owning the parent offer can decide, and
// @Description  only while the application is pending.
// @Tags         applications
// @Accept       json
// @Produce      json
// @Param        id        path  int                       true  "Application ID"
// @Param        decision  body  DecideApplicationRequest  true  "Decision"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /candidatures/{id}/status [put]
// @Security     BearerAuth
func (h *ApplicationHandler) Decide(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}
	var req DecideApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	companyID := c.GetInt64(string(domain.KeyAccountID))
	app, err := h.applicationUC.Transition(c.Request.Context(), companyID, id, req.Status)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application "+req.Status, app)
}

// Withdraw godoc
// @Summary      Withdraw an application
// @Description  Hard delete of the student's own application, any status.
// @Tags         applications
// @Produce      json
// @Param        id  path  int  true  "Application ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /candidatures/{id} [delete]
// @Security     BearerAuth
func (h *ApplicationHandler) Withdraw(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		c.Error(err)
		return
	}

	studentID := c.GetInt64(string(domain.KeyAccountID))
	if err := h.applicationUC.Withdraw(c.Request.Context(), studentID, id); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Application withdrawn", nil)
}
