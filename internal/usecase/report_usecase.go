package usecase

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"espacestage-backend/internal/domain"
	"espacestage-backend/pkg/apperror"
)

const exportRowLimit = 10000

type reportUsecase struct {
	reportRepo domain.ReportRepository
}

func NewReportUsecase(reportRepo domain.ReportRepository) domain.ReportUsecase {
	return &reportUsecase{reportRepo: reportRepo}
}

// headerNames maps column keys to the printed header labels.
var headerNames = map[string]string{
	"application_id": "ID",
	"student_name":   "ETUDIANT",
	"student_email":  "EMAIL",
	"offer_title":    "OFFRE",
	"offer_domain":   "DOMAINE",
	"company_name":   "ENTREPRISE",
	"status":         "STATUT",
	"submitted_at":   "DATE DE CANDIDATURE",
}

func (uc *reportUsecase) ExportApplications(ctx context.Context, format string) ([]byte, string, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, "", err
	}

	rows, err := uc.reportRepo.FetchApplicationRows(ctx, exportRowLimit)
	if err != nil {
		return nil, "", apperror.Internal(err)
	}

	switch format {
	case "csv":
		return uc.exportCSV(rows)
	case "xlsx", "":
		return uc.exportExcel(rows)
	case "pdf":
		return uc.exportPDF(rows)
	default:
		return nil, "", apperror.BadRequest(fmt.Sprintf("Unsupported export format: %s", format))
	}
}

// exportCSV renders the report as comma-separated text.
func (uc *reportUsecase) exportCSV(rows []domain.ApplicationReportRow) ([]byte, string, error) {
	var buf bytes.Buffer

	buf.WriteString(strings.Join(domain.ReportColumns, ",") + "\n")

	for _, row := range rows {
		var values []string
		for _, col := range domain.ReportColumns {
			valueStr := fmt.Sprintf("%v", reportFieldValue(row, col))
			if strings.Contains(valueStr, ",") || strings.Contains(valueStr, "\"") || strings.Contains(valueStr, "\n") {
				valueStr = "\"" + strings.ReplaceAll(valueStr, "\"", "\"\"") + "\""
			}
			values = append(values, valueStr)
		}
		buf.WriteString(strings.Join(values, ",") + "\n")
	}

	filename := fmt.Sprintf("candidatures_%s.csv", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

// exportExcel renders the report as a styled XLSX workbook.
func (uc *reportUsecase) exportExcel(rows []domain.ApplicationReportRow) ([]byte, string, error) {
	f := excelize.NewFile()
	sheetName := "Candidatures"
	f.SetSheetName("Sheet1", sheetName)

	for i, col := range domain.ReportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		name := headerNames[col]
		if name == "" {
			name = col
		}
		f.SetCellValue(sheetName, cell, name)
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(domain.ReportColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, row := range rows {
		for colIdx, col := range domain.ReportColumns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, reportFieldValue(row, col))
		}
	}

	for i := range domain.ReportColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 22)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	filename := fmt.Sprintf("candidatures_%s.xlsx", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

// exportPDF renders the report as a landscape A4 table.
func (uc *reportUsecase) exportPDF(rows []domain.ApplicationReportRow) ([]byte, string, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, fmt.Sprintf("Rapport des candidatures - %s", time.Now().Format("02/01/2006")))
	pdf.Ln(12)

	// ID gets a narrow column, the rest share the remaining width
	widths := map[string]float64{"application_id": 14, "status": 22, "submitted_at": 30}
	defaultWidth := (277.0 - 66.0) / float64(len(domain.ReportColumns)-3)

	pdf.SetFont("Arial", "B", 8)
	pdf.SetFillColor(30, 58, 95)
	pdf.SetTextColor(255, 255, 255)
	for _, col := range domain.ReportColumns {
		w, ok := widths[col]
		if !ok {
			w = defaultWidth
		}
		name := headerNames[col]
		if name == "" {
			name = col
		}
		pdf.CellFormat(w, 7, name, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	pdf.SetTextColor(0, 0, 0)
	fill := false
	pdf.SetFillColor(240, 244, 248)
	for _, row := range rows {
		for _, col := range domain.ReportColumns {
			w, ok := widths[col]
			if !ok {
				w = defaultWidth
			}
			value := fmt.Sprintf("%v", reportFieldValue(row, col))
			pdf.CellFormat(w, 6, value, "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
		fill = !fill
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write PDF file: %w", err)
	}

	filename := fmt.Sprintf("candidatures_%s.pdf", time.Now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

func reportFieldValue(row domain.ApplicationReportRow, field string) interface{} {
	switch field {
	case "application_id":
		return row.ApplicationID
	case "student_name":
		return row.StudentName
	case "student_email":
		return row.StudentEmail
	case "offer_title":
		return row.OfferTitle
	case "offer_domain":
		return row.OfferDomain
	case "company_name":
		return row.CompanyName
	case "status":
		return row.Status
	case "submitted_at":
		return row.SubmittedAt.Format("02/01/2006")
	}
	return ""
}

// Pivot shapes the grouped counts into a cross table with totals.
func (uc *reportUsecase) Pivot(ctx context.Context, rowDim, colDim string) (*domain.PivotTable, error) {
	if _, err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if !domain.ValidPivotDimension(rowDim) || !domain.ValidPivotDimension(colDim) {
		return nil, apperror.BadRequest("Pivot dimensions must be one of: domain, status, company, location")
	}
	if rowDim == colDim {
		return nil, apperror.BadRequest("Row and column dimensions must differ")
	}

	cells, err := uc.reportRepo.FetchPivotCells(ctx, rowDim, colDim)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	rowSet := map[string]bool{}
	colSet := map[string]bool{}
	for _, c := range cells {
		rowSet[c.Row] = true
		colSet[c.Column] = true
	}
	rows := sortedKeys(rowSet)
	cols := sortedKeys(colSet)

	colIndex := make(map[string]int, len(cols))
	for i, c := range cols {
		colIndex[c] = i
	}

	table := &domain.PivotTable{
		RowDimension:    rowDim,
		ColumnDimension: colDim,
		Rows:            rows,
		Columns:         cols,
		Cells:           make(map[string][]int64, len(rows)),
		RowTotals:       make(map[string]int64, len(rows)),
		ColumnTotals:    make([]int64, len(cols)),
	}
	for _, r := range rows {
		table.Cells[r] = make([]int64, len(cols))
	}
	for _, c := range cells {
		i := colIndex[c.Column]
		table.Cells[c.Row][i] += c.Count
		table.RowTotals[c.Row] += c.Count
		table.ColumnTotals[i] += c.Count
	}
	return table, nil
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
