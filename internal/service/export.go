package service

import (
	"bytes"
	"fmt"
	"time"

	"github.com/Aarbaz/perfect-management/internal/models"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

// SummaryLine is one label/value pair rendered above an export table.
type SummaryLine struct {
	Label string
	Value string
}

var spreadsheetHeaders = []string{
	"ID", "Vehicle Type", "Vehicle Number", "Customer Name",
	"Mobile Number", "Amount", "Payment Status", "Entry Date",
}

var spreadsheetColWidths = []float64{8, 14, 18, 25, 16, 12, 15, 14}

// pdfColWidths are the fixed report column widths in points.
var pdfColWidths = []float64{30, 50, 90, 70, 55, 50, 60}

var pdfHeaders = []string{"ID", "Type", "Customer", "Mobile", "Amount", "Status", "Date"}

const (
	pdfLeft     = 50.0
	pdfTop      = 50.0
	pdfBreakY   = 750.0
	pdfRowPitch = 16.0
)

// ExportService renders vehicle lists into downloadable documents.
// Output is byte-for-byte deterministic for identical input: no
// wall-clock state is embedded.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// Spreadsheet renders the rows into an XLSX workbook. Summary lines,
// when given, are written above the table. Rows keep the caller's
// order; no sorting happens here.
func (s *ExportService) Spreadsheet(sheetName string, rows []models.Vehicle, summary []SummaryLine) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	row := 1
	for _, line := range summary {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), line.Label)
		if line.Value != "" {
			f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), line.Value)
		}
		row++
	}
	if len(summary) > 0 {
		row++ // blank spacer row between summary and table
	}

	headerRow := row
	for i, h := range spreadsheetHeaders {
		f.SetCellValue(sheetName, fmt.Sprintf("%c%d", 'A'+i, headerRow), h)
	}
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"E0E0E0"}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	if err := f.SetCellStyle(sheetName,
		fmt.Sprintf("A%d", headerRow), fmt.Sprintf("H%d", headerRow), headerStyle); err != nil {
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	for idx := range rows {
		v := &rows[idx]
		r := headerRow + 1 + idx
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", r), v.ID)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", r), string(v.VehicleType))
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", r), v.VehicleNumber)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", r), v.CustomerName)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", r), v.MobileNumber)
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", r), v.Amount.StringFixed(2))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", r), string(v.PaymentStatus))
		f.SetCellValue(sheetName, fmt.Sprintf("H%d", r), v.EntryDate.Format("1/2/2006"))
	}

	for i, w := range spreadsheetColWidths {
		col := string(rune('A' + i))
		f.SetColWidth(sheetName, col, col, w)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// PDF renders a paginated fixed-width report: title, optional filter
// description lines, optional summary lines, then the row table. When
// the cursor passes the usable page height a new page starts and the
// column headers are re-emitted. Dates render as YYYY-MM-DD.
func (s *ExportService) PDF(title string, rows []models.Vehicle, summary []SummaryLine, filterLines []string) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	// pinned so identical input produces identical bytes
	pdf.SetCreationDate(time.Unix(0, 0))
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	y := pdfTop

	pdf.SetFont("Courier", "B", 20)
	pdf.SetY(y)
	pdf.CellFormat(0, 22, title, "", 0, "C", false, 0, "")
	y += 34

	pdf.SetFont("Courier", "", 11)
	for _, line := range filterLines {
		pdf.SetY(y)
		pdf.CellFormat(0, 13, line, "", 0, "C", false, 0, "")
		y += pdfRowPitch
	}
	if len(filterLines) > 0 {
		y += 6
	}

	pdf.SetFont("Courier", "", 12)
	for _, line := range summary {
		text := line.Label
		if line.Value != "" {
			text += ": " + line.Value
		}
		pdf.SetXY(pdfLeft, y)
		pdf.CellFormat(0, 14, text, "", 0, "L", false, 0, "")
		y += pdfRowPitch
	}
	if len(summary) > 0 {
		y += 8
	}

	if len(rows) == 0 {
		var buf bytes.Buffer
		if err := pdf.Output(&buf); err != nil {
			return nil, fmt.Errorf("render pdf: %w", err)
		}
		return buf.Bytes(), nil
	}

	tableWidth := 0.0
	for _, w := range pdfColWidths {
		tableWidth += w
	}

	writeHeader := func() {
		pdf.SetFont("Courier", "B", 10)
		x := pdfLeft
		for i, h := range pdfHeaders {
			pdf.SetXY(x, y)
			pdf.CellFormat(pdfColWidths[i], 12, h, "", 0, "L", false, 0, "")
			x += pdfColWidths[i]
		}
		pdf.Line(pdfLeft, y+14, pdfLeft+tableWidth, y+14)
		y += 18
		pdf.SetFont("Courier", "", 9)
	}

	writeHeader()
	for idx := range rows {
		v := &rows[idx]
		if y > pdfBreakY {
			pdf.AddPage()
			y = pdfTop
			writeHeader()
		}
		cells := []string{
			fmt.Sprintf("%d", v.ID),
			string(v.VehicleType),
			v.CustomerName,
			v.MobileNumber,
			"INR " + v.Amount.StringFixed(2),
			string(v.PaymentStatus),
			v.EntryDate.String(),
		}
		x := pdfLeft
		for i, cell := range cells {
			pdf.SetXY(x, y)
			pdf.CellFormat(pdfColWidths[i], 11, cell, "", 0, "L", false, 0, "")
			x += pdfColWidths[i]
		}
		y += pdfRowPitch
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
