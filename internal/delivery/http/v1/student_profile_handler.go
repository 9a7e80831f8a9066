package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"espacestage-backend/internal/delivery/http/middleware"
	"espacestage-backend/internal/delivery/http/response"
	"espacestage-backend/internal/domain"
	"espacestage-backend/pkg/apperror"
)

type StudentProfileHandler struct {
	profileUC domain.StudentProfileUsecase
}

func NewStudentProfileHandler(protected *gin.RouterGroup, profileUC domain.StudentProfileUsecase) {
	handler := &StudentProfileHandler{profileUC: profileUC}

	students := protected.Group("/student")
	students.Use(middleware.RequireRoles(domain.RoleStudent))
	{
		students.GET("/profile", handler.GetProfile)
		students.POST("/profile", handler.SaveProfile)
	}
}

type StudentProfileRequest struct {
	FirstName       string   `json:"first_name" binding:"required"`
	LastName        string   `json:"last_name" binding:"required"`
	EducationDomain string   `json:"education_domain"`
	EducationLevel  string   `json:"education_level"`
	Specialization  string   `json:"specialization"`
	Institution     string   `json:"institution"`
	Phone           string   `json:"phone"`
	Address         string   `json:"address"`
	Bio             string   `json:"bio"`
	Skills          []string `json:"skills"`
}

// GetProfile godoc
// @Summary      Get my student profile
// @Tags         student-profile
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /student/profile [get]
// @Security     BearerAuth
func (h *StudentProfileHandler) GetProfile(c *gin.Context) {
	accountID := c.GetInt64(string(domain.KeyAccountID))
	profile, err := h.profileUC.GetProfile(c.Request.Context(), accountID)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Student profile", profile)
}

// SaveProfile godoc
// @Summary      Create or update my student profile
// @Description  Idempotent upsert keyed by the authenticated account. File
// @Description  URLs are managed by the upload endpoint and left untouched.
// @Tags         student-profile
// @Accept       json
// @Produce      json
// @Param        profile  body      StudentProfileRequest  true  "Profile"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /student/profile [post]
// @Security     BearerAuth
func (h *StudentProfileHandler) SaveProfile(c *gin.Context) {
	var req StudentProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	accountID := c.GetInt64(string(domain.KeyAccountID))
	profile := &domain.StudentProfile{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		EducationDomain: req.EducationDomain,
		EducationLevel:  req.EducationLevel,
		Specialization:  req.Specialization,
		Institution:     req.Institution,
		Phone:           req.Phone,
		Address:         req.Address,
		Bio:             req.Bio,
		Skills:          req.Skills,
	}
	if err := h.profileUC.SaveProfile(c.Request.Context(), accountID, profile); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Profile saved", profile)
}
