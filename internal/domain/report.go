package domain

import (
	"context"
	"time"
)

// ApplicationReportRow is one exported line of the applications report.
type ApplicationReportRow struct {
	ApplicationID int64     `json:"application_id"`
	StudentName   string    `json:"student_name"`
	StudentEmail  string    `json:"student_email"`
	OfferTitle    string    `json:"offer_title"`
	OfferDomain   string    `json:"offer_domain"`
	CompanyName   string    `json:"company_name"`
	Status        string    `json:"status"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// ReportColumns is the export column order, shared by CSV, XLSX and PDF.
var ReportColumns = []string{
	"application_id",
	"student_name",
	"student_email",
	"offer_title",
	"offer_domain",
	"company_name",
	"status",
	"submitted_at",
}

// PivotDimensions lists the grouping dimensions exposed to clients.
var PivotDimensions = []string{"domain", "status", "company", "location"}

// ValidPivotDimension reports whether s names a known pivot dimension.
func ValidPivotDimension(s string) bool {
	for _, d := range PivotDimensions {
		if d == s {
			return true
		}
	}
	return false
}

// PivotCell is one aggregated count at a (row, column) coordinate.
type PivotCell struct {
	Row    string `json:"row"`
	Column string `json:"column"`
	Count  int64  `json:"count"`
}

// PivotTable is a grouped-count cross table, e.g. offer domain rows against
// application status columns.
type PivotTable struct {
	RowDimension    string             `json:"row_dimension"`
	ColumnDimension string             `json:"column_dimension"`
	Rows            []string           `json:"rows"`
	Columns         []string           `json:"columns"`
	Cells           map[string][]int64 `json:"cells"` // row label -> counts per column
	RowTotals       map[string]int64   `json:"row_totals"`
	ColumnTotals    []int64            `json:"column_totals"`
}

// ReportRepository defines the read-only aggregation queries
type ReportRepository interface {
	FetchApplicationRows(ctx context.Context, limit int) ([]ApplicationReportRow, error)
	FetchPivotCells(ctx context.Context, rowDim, colDim string) ([]PivotCell, error)
}

// ReportUsecase renders reports for the admin dashboard
type ReportUsecase interface {
	// ExportApplications produces file bytes plus a download filename.
	// format is "csv", "xlsx" or "pdf".
	ExportApplications(ctx context.Context, format string) ([]byte, string, error)
	Pivot(ctx context.Context, rowDim, colDim string) (*PivotTable, error)
}
