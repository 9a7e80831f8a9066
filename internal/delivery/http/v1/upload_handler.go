package v1

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"espacestage-backend/internal/delivery/http/response"
	"espacestage-backend/internal/domain"
	"espacestage-backend/pkg/apperror"
	"espacestage-backend/pkg/storage"
)

const maxUploadBytes = 5 << 20 // 5 MB

type UploadHandler struct {
	uploader  *storage.Uploader
	studentUC domain.StudentProfileUsecase
	companyUC domain.CompanyProfileUsecase
}

func NewUploadHandler(protected *gin.RouterGroup, uploader *storage.Uploader, studentUC domain.StudentProfileUsecase, companyUC domain.CompanyProfileUsecase, uploadLimiter gin.HandlerFunc) {
	handler := &UploadHandler{
		uploader:  uploader,
		studentUC: studentUC,
		companyUC: companyUC,
	}

	protected.POST("/uploads", uploadLimiter, handler.Upload)
}

// folderAccess maps upload folders to the role allowed to use them.
var folderAccess = map[string]domain.Role{
	"resumes":      domain.RoleStudent,
	"photos":       domain.RoleStudent,
	"certificates": domain.RoleStudent,
	"logos":        domain.RoleCompany,
}

var allowedContentTypes = map[string]map[string]bool{
	"resumes":      {"application/pdf": true},
	"certificates": {"application/pdf": true},
	"photos":       {"image/jpeg": true, "image/png": true},
	"logos":        {"image/jpeg": true, "image/png": true},
}

// Upload godoc
// @Summary      Upload a profile file
// @Description  Accepts a multipart file for one of the folders: resumes,
// @Description  photos, certificates (students) or logos (companies). The
// @Description  resulting URL is stored on the caller's profile. Images are
// @Description  downscaled and re-encoded before upload.
// @Tags         uploads
// @Accept       multipart/form-data
// @Produce      json
// @Param        folder  query     string  true  "Destination folder"
// @Param        file    formData  file    true  "File (5 MB max)"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /uploads [post]
// @Security     BearerAuth
func (h *UploadHandler) Upload(c *gin.Context) {
	if h.uploader == nil {
		c.Error(apperror.New(http.StatusServiceUnavailable, "File storage is not configured", nil))
		return
	}

	folder := c.Query("folder")
	requiredRole, ok := folderAccess[folder]
	if !ok || !storage.AllowedFolders[folder] {
		c.Error(apperror.BadRequest("folder must be one of: resumes, photos, certificates, logos"))
		return
	}

	role := domain.Role(c.GetString(string(domain.KeyAccountRole)))
	if role != requiredRole && role != domain.RoleAdmin {
		c.Error(apperror.Forbidden("Your role cannot upload to this folder"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("A file field is required"))
		return
	}
	if fileHeader.Size > maxUploadBytes {
		c.Error(apperror.BadRequest("File exceeds the 5 MB limit"))
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedContentTypes[folder][contentType] {
		c.Error(apperror.BadRequest("Unsupported file type for this folder"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	if len(data) > maxUploadBytes {
		c.Error(apperror.BadRequest("File exceeds the 5 MB limit"))
		return
	}

	// Images are normalized to bounded JPEGs before they hit storage.
	filename := fileHeader.Filename
	if strings.HasPrefix(contentType, "image/") {
		compressed, err := storage.CompressImage(data, 1024, 80)
		if err != nil {
			c.Error(apperror.BadRequest("Could not decode the image"))
			return
		}
		data = compressed
		contentType = "image/jpeg"
		filename = strings.TrimSuffix(filename, "."+lastExt(filename)) + ".jpg"
	}

	url, err := h.uploader.Upload(c.Request.Context(), folder, filename, contentType, data)
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}

	accountID := c.GetInt64(string(domain.KeyAccountID))
	if err := h.attachToProfile(c, accountID, role, folder, url); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "File uploaded", gin.H{"url": url})
}

// folderFiles maps upload folders to the profile file they populate.
var folderFiles = map[string]domain.ProfileFile{
	"resumes":      domain.FileResume,
	"photos":       domain.FilePhoto,
	"certificates": domain.FileCertificate,
	"logos":        domain.FileLogo,
}

// attachToProfile stores the new file URL on the caller's profile. A profile
// row is created when none exists yet, so uploading a CV before the first
// profile save still counts.
func (h *UploadHandler) attachToProfile(c *gin.Context, accountID int64, role domain.Role, folder, url string) error {
	ctx := c.Request.Context()

	switch role {
	case domain.RoleCompany:
		return h.companyUC.AttachLogo(ctx, accountID, url)
	case domain.RoleStudent:
		return h.studentUC.AttachFile(ctx, accountID, folderFiles[folder], url)
	}
	// Admin uploads are not tied to a profile.
	return nil
}

func lastExt(filename string) string {
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		return filename[idx+1:]
	}
	return ""
}
