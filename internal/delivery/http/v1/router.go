package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"espacestage-backend/config"
	"espacestage-backend/internal/delivery/http/middleware"
	"espacestage-backend/internal/delivery/http/response"
	"espacestage-backend/internal/domain"
	"espacestage-backend/pkg/auth"
	"espacestage-backend/pkg/storage"
)

type RouterDeps struct {
	AuthUC           domain.AuthUsecase
	StudentProfileUC domain.StudentProfileUsecase
	CompanyProfileUC domain.CompanyProfileUsecase
	OfferUC          domain.OfferUsecase
	ApplicationUC    domain.ApplicationUsecase
	AdminUC          domain.AdminUsecase
	ReportUC         domain.ReportUsecase
	Uploader         *storage.Uploader
	Tokens           *auth.TokenService
	Config           *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware()) // CORS must be first
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler(deps.Config.IsDevelopment()))
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	loginLimiter := middleware.RateLimitMiddleware(middleware.LoginRateLimitConfig(deps.Config.RateLimitLoginThreshold, window))
	uploadLimiter := middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig(10, time.Minute))

	// Public offer browsing runs through an optional auth pass so an owner
	// or admin can see their own disabled offers on the shared routes.
	public := v1.Group("")
	public.Use(middleware.OptionalAuth(deps.Tokens, deps.AuthUC))

	protected := v1.Group("")
	protected.Use(middleware.AuthMiddleware(deps.Tokens, deps.AuthUC))
	{
		NewAuthHandler(v1, protected, deps.AuthUC, loginLimiter)
		NewStudentProfileHandler(protected, deps.StudentProfileUC)
		NewCompanyProfileHandler(protected, deps.CompanyProfileUC)
		NewOfferHandler(public, protected, deps.OfferUC)
		NewApplicationHandler(protected, deps.ApplicationUC)
		NewAdminHandler(protected, deps.AdminUC)
		NewReportHandler(protected, deps.ReportUC)
		NewUploadHandler(protected, deps.Uploader, deps.StudentProfileUC, deps.CompanyProfileUC, uploadLimiter)
	}

	return r
}
