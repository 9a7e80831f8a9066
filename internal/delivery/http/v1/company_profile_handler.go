package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"espacestage-backend/internal/delivery/http/middleware"
	"espacestage-backend/internal/delivery/http/response"
	"espacestage-backend/internal/domain"
	"espacestage-backend/pkg/apperror"
)

type CompanyProfileHandler struct {
	profileUC domain.CompanyProfileUsecase
}

func NewCompanyProfileHandler(protected *gin.RouterGroup, profileUC domain.CompanyProfileUsecase) {
	handler := &CompanyProfileHandler{profileUC: profileUC}

	companies := protected.Group("/company")
	companies.Use(middleware.RequireRoles(domain.RoleCompany))
	{
		companies.GET("/profile", handler.GetProfile)
		companies.POST("/profile", handler.SaveProfile)
	}
}

type CompanyProfileRequest struct {
	CompanyName   string `json:"company_name" binding:"required"`
	Sector        string `json:"sector" binding:"required"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Description   string `json:"description"`
	EmployeeCount *int   `json:"employee_count"`
	Website       string `json:"website"`
}

// GetProfile godoc
// @Summary      Get my company profile
// @Tags         company-profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /company/profile [get]
// @Security     BearerAuth
func (h *CompanyProfileHandler) GetProfile(c *gin.Context) {
	accountID := c.GetInt64(string(domain.KeyAccountID))
	profile, err := h.profileUC.GetProfile(c.Request.Context(), accountID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Company profile", profile)
}

// SaveProfile godoc
// @Summary      Create or update my company profile
// @Tags         company-profile
// @Accept       json
// @Produce      json
// @Param        profile  body      CompanyProfileRequest  true  "Profile"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /company/profile [post]
// @Security     BearerAuth
func (h *CompanyProfileHandler) SaveProfile(c *gin.Context) {
	var req CompanyProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	accountID := c.GetInt64(string(domain.KeyAccountID))
	profile := &domain.CompanyProfile{
		CompanyName:   req.CompanyName,
		Sector:        req.Sector,
		Address:       req.Address,
		Phone:         req.Phone,
		Description:   req.Description,
		EmployeeCount: req.EmployeeCount,
		Website:       req.Website,
	}
	if err := h.profileUC.SaveProfile(c.Request.Context(), accountID, profile); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile saved", profile)
}
