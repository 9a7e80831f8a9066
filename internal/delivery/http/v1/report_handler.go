package v1

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"espacestage-backend/internal/delivery/http/middleware"
	"espacestage-backend/internal/delivery/http/response"
	"espacestage-backend/internal/domain"
)

type ReportHandler struct {
	reportUC domain.ReportUsecase
}

func NewReportHandler(protected *gin.RouterGroup, reportUC domain.ReportUsecase) {
	handler := &ReportHandler{reportUC: reportUC}

	reports := protected.Group("/admin/reports")
	reports.Use(middleware.RequireRoles(domain.RoleAdmin))
	{
		reports.GET("/applications", handler.ExportApplications)
		reports.GET("/pivot", handler.Pivot)
	}
}

var exportContentTypes = map[string]string{
	".csv":  "text/csv",
	".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	".pdf":  "application/pdf",
}

// ExportApplications godoc
// @Summary      Export the applications report
// @Description  Streams the full application listing as a file download.
// @Tags         reports
// @Produce      octet-stream
// @Param        format  query  string  false  "csv, xlsx or pdf"  default(xlsx)
// @Success      200  {file}    file
// @Failure      400  {object}  response.Response
// @Router       /admin/reports/applications [get]
// @Security     BearerAuth
func (h *ReportHandler) ExportApplications(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")

	data, filename, err := h.reportUC.ExportApplications(c.Request.Context(), format)
	if err != nil {
		c.Error(err)
		return
	}

	contentType := "application/octet-stream"
	if idx := strings.LastIndex(filename, "."); idx >= 0 {
		if ct, ok := exportContentTypes[filename[idx:]]; ok {
			contentType = ct
		}
	}
	response.File(c, contentType, filename, data)
}

// Pivot godoc
// @Summary      Applications pivot table
// @Description  Grouped counts across two dimensions, e.g. rows=domain
// @Description  against cols=status, with row and column totals.
// @Tags         reports
// @Produce      json
// @Param        rows  query  string  false  "Row dimension"     default(domain)
// @Param        cols  query  string  false  "Column dimension"  default(status)
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /admin/reports/pivot [get]
// @Security     BearerAuth
func (h *ReportHandler) Pivot(c *gin.Context) {
	rows := c.DefaultQuery("rows", "domain")
	cols := c.DefaultQuery("cols", "status")

	table, err := h.reportUC.Pivot(c.Request.Context(), rows, cols)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Pivot table", table)
}
