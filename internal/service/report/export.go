package report

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance-sheet/internal/domain/report"
	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	attendanceSheet = "Attendance"
	legendSheet     = "Legend"
)

// ExportMonthlyAttendanceSheet renders the monthly attendance sheet as an XLSX workbook
func (s *ReportServiceImpl) ExportMonthlyAttendanceSheet(ctx context.Context, req report.MonthlyAttendanceSheetRequest) (report.ExportFile, error) {
	sheet, err := s.GenerateMonthlyAttendanceSheet(ctx, req)
	if err != nil {
		return report.ExportFile{}, err
	}

	content, err := renderWorkbook(sheet, !req.SummarizedView)
	if err != nil {
		return report.ExportFile{}, fmt.Errorf("%w: %w", report.ErrReportGenerationFailed, err)
	}

	return report.ExportFile{
		FileName:    exportFileName(req),
		ContentType: xlsxContentType,
		Content:     content,
	}, nil
}

// ArchiveMonthlyAttendanceSheet renders the workbook and uploads it to file storage
func (s *ReportServiceImpl) ArchiveMonthlyAttendanceSheet(ctx context.Context, req report.MonthlyAttendanceSheetRequest) (report.ArchivedExport, error) {
	file, err := s.ExportMonthlyAttendanceSheet(ctx, req)
	if err != nil {
		return report.ArchivedExport{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return report.ArchivedExport{}, fmt.Errorf("failed to generate export id: %w", err)
	}
	key := path.Join("reports", req.CompanyID, "monthly-attendance-sheet",
		fmt.Sprintf("%04d-%02d", req.Year, req.Month), id.String()+".xlsx")

	storedPath, err := s.fileStorage.Upload(ctx, bytes.NewReader(file.Content), key, file.ContentType)
	if err != nil {
		return report.ArchivedExport{}, fmt.Errorf("failed to upload export: %w", err)
	}

	url, err := s.fileStorage.GetURL(ctx, storedPath, s.exportURLExpiry)
	if err != nil {
		if delErr := s.fileStorage.Delete(ctx, storedPath); delErr != nil {
			slog.Error("failed to remove unreachable export", "path", storedPath, "error", delErr)
		}
		return report.ArchivedExport{}, fmt.Errorf("failed to get export url: %w", err)
	}

	slog.Info("archived monthly attendance sheet",
		"company_id", req.CompanyID, "month", req.Month, "year", req.Year, "path", storedPath)

	archived := report.ArchivedExport{
		Path:     storedPath,
		URL:      url,
		FileName: file.FileName,
	}
	if s.exportURLExpiry > 0 {
		archived.ExpiresAt = s.now().Add(s.exportURLExpiry).Format(time.RFC3339)
	}
	return archived, nil
}

func exportFileName(req report.MonthlyAttendanceSheetRequest) string {
	name := fmt.Sprintf("Monthly_Attendance_Sheet_%04d-%02d", req.Year, req.Month)
	if req.SummarizedView {
		name += "_Summary"
	}
	return name + ".xlsx"
}

// renderWorkbook writes the sheet columns and rows to a workbook. Day cells carry
// plain text with the status color as font color; summary figures stay numeric.
func renderWorkbook(sheet report.MonthlyAttendanceSheet, withLegend bool) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(attendanceSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to delete default sheet: %w", err)
	}

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return nil, err
	}

	for i, col := range sheet.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(attendanceSheet, cell, col.Label); err != nil {
			return nil, fmt.Errorf("failed to write header: %w", err)
		}
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(attendanceSheet, name, name, columnWidth(col.Width)); err != nil {
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}
	if len(sheet.Columns) > 0 {
		last, _ := excelize.CoordinatesToCellName(len(sheet.Columns), 1)
		if err := f.SetCellStyle(attendanceSheet, "A1", last, styles.header); err != nil {
			return nil, fmt.Errorf("failed to style header: %w", err)
		}
		if err := f.SetPanes(attendanceSheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return nil, fmt.Errorf("failed to freeze header: %w", err)
		}
	}

	rowNum := 2
	for _, row := range sheet.Rows {
		if err := writeRow(f, styles, sheet.Columns, row, rowNum); err != nil {
			return nil, err
		}
		rowNum++
	}

	if sheet.Notice != "" {
		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if len(sheet.Columns) == 0 {
			cell = "A1"
		}
		if err := f.SetCellValue(attendanceSheet, cell, sheet.Notice); err != nil {
			return nil, fmt.Errorf("failed to write notice: %w", err)
		}
	}

	if withLegend && len(sheet.Rows) > 0 {
		if err := writeLegend(f, styles); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

type workbookStyles struct {
	header int
	group  int
	status map[string]int // keyed by report cell color
}

func newWorkbookStyles(f *excelize.File) (*workbookStyles, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	group, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create group style: %w", err)
	}

	styles := &workbookStyles{header: header, group: group, status: make(map[string]int)}
	for _, s := range attendance.Statuses {
		color := report.Cell{Status: s}.Color()
		if color == "" {
			continue
		}
		if _, ok := styles.status[color]; ok {
			continue
		}
		id, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Color: fontColor(color)}})
		if err != nil {
			return nil, fmt.Errorf("failed to create status style: %w", err)
		}
		styles.status[color] = id
	}
	return styles, nil
}

func writeRow(f *excelize.File, styles *workbookStyles, columns []report.Column, row report.Row, rowNum int) error {
	values := row.Values()
	detailed, isDetailed := row.(*report.DetailedRow)

	for i, col := range columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, rowNum)

		if day, err := strconv.Atoi(col.FieldName); err == nil && isDetailed {
			dayCell := detailed.Cell(day)
			if err := f.SetCellValue(attendanceSheet, cell, dayCell.Text()); err != nil {
				return fmt.Errorf("failed to write day cell: %w", err)
			}
			if style, ok := styles.status[dayCell.Color()]; ok {
				if err := f.SetCellStyle(attendanceSheet, cell, cell, style); err != nil {
					return fmt.Errorf("failed to style day cell: %w", err)
				}
			}
			continue
		}

		value, ok := values[col.FieldName]
		if !ok {
			continue
		}
		if err := f.SetCellValue(attendanceSheet, cell, value); err != nil {
			return fmt.Errorf("failed to write cell: %w", err)
		}
		if row.Kind() == report.RowKindGroupHeader {
			if err := f.SetCellStyle(attendanceSheet, cell, cell, styles.group); err != nil {
				return fmt.Errorf("failed to style group row: %w", err)
			}
		}
	}
	return nil
}

func writeLegend(f *excelize.File, styles *workbookStyles) error {
	if _, err := f.NewSheet(legendSheet); err != nil {
		return fmt.Errorf("failed to create legend sheet: %w", err)
	}
	for i, s := range attendance.Statuses {
		row := i + 1
		if err := f.SetCellValue(legendSheet, fmt.Sprintf("A%d", row), string(s)); err != nil {
			return fmt.Errorf("failed to write legend: %w", err)
		}
		abbr := fmt.Sprintf("B%d", row)
		if err := f.SetCellValue(legendSheet, abbr, s.Abbr()); err != nil {
			return fmt.Errorf("failed to write legend: %w", err)
		}
		if style, ok := styles.status[report.Cell{Status: s}.Color()]; ok {
			if err := f.SetCellStyle(legendSheet, abbr, abbr, style); err != nil {
				return fmt.Errorf("failed to style legend: %w", err)
			}
		}
	}
	return f.SetColWidth(legendSheet, "A", "A", 18)
}

var namedColors = map[string]string{
	"green":  "008000",
	"red":    "FF0000",
	"orange": "FFA500",
}

// fontColor converts a cell color ("green", "#4682b4") to the RGB hex excelize expects.
func fontColor(color string) string {
	if hex, ok := namedColors[color]; ok {
		return hex
	}
	return strings.ToUpper(strings.TrimPrefix(color, "#"))
}

// columnWidth converts a pixel width to spreadsheet character units.
func columnWidth(px int) float64 {
	return float64(px) / 7
}
