package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter implements PDF export using gofpdf
type PDFExporter struct{}

// NewPDFExporter creates a new PDF exporter
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Export draws the table with a repeated header on every page
func (p *PDFExporter) Export(table *Table, writer io.Writer) error {
	if len(table.Columns) == 0 {
		return fmt.Errorf("no columns provided")
	}

	orientation := "P"
	if table.Style.Landscape {
		orientation = "L"
	}
	fontSize := table.Style.FontSize
	if fontSize <= 0 {
		fontSize = 9
	}

	pdf := gofpdf.New(orientation, "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 15)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	if table.Title != "" {
		pdf.SetFont("Arial", "B", 16)
		pdf.Cell(0, 10, tr(table.Title))
		pdf.Ln(10)
	}
	if table.Subtitle != "" {
		pdf.SetFont("Arial", "", fontSize)
		pdf.MultiCell(0, 5, tr(table.Subtitle), "", "", false)
	}
	if !table.GeneratedAt.IsZero() {
		pdf.SetFont("Arial", "I", 8)
		pdf.Cell(0, 5, fmt.Sprintf("Generated: %s", table.GeneratedAt.Format("2006-01-02 15:04:05")))
		pdf.Ln(8)
	}

	widths := columnWidths(pdf, table.Columns)
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottomMargin := pdf.GetMargins()
	limit := pageHeight - bottomMargin

	drawHeader := func() {
		r, g, b := hexToRGB(table.Style.HeaderBgColor)
		pdf.SetFillColor(r, g, b)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Arial", "B", fontSize)
		for i, col := range table.Columns {
			pdf.CellFormat(widths[i], 7, tr(col.Header), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Arial", "", fontSize)
	}
	drawHeader()

	stripe := table.Style.StripeColor != ""
	for rowIdx, row := range table.Rows {
		if pdf.GetY()+6 > limit {
			pdf.AddPage()
			drawHeader()
		}

		fill := stripe && rowIdx%2 == 1
		if fill {
			r, g, b := hexToRGB(table.Style.StripeColor)
			pdf.SetFillColor(r, g, b)
		}
		for i := range table.Columns {
			var text string
			if i < len(row) {
				text = truncate(singleLine(cellText(row[i])), table.Style.MaxCellChars)
			}
			for text != "" && pdf.GetStringWidth(tr(text)) > widths[i]-2 {
				text = truncate(text, len([]rune(text))-1)
			}
			pdf.CellFormat(widths[i], 6, tr(text), "1", 0, "L", fill, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(writer); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

// ContentType returns the MIME type for PDF files
func (p *PDFExporter) ContentType() string {
	return "application/pdf"
}

// FileExtension returns the file extension for PDF files
func (p *PDFExporter) FileExtension() string {
	return ".pdf"
}

func columnWidths(pdf *gofpdf.Fpdf, columns []Column) []float64 {
	pageWidth, _ := pdf.GetPageSize()
	left, _, right, _ := pdf.GetMargins()
	usable := pageWidth - left - right

	total := 0.0
	for _, col := range columns {
		total += weight(col)
	}
	widths := make([]float64, len(columns))
	for i, col := range columns {
		widths[i] = usable * weight(col) / total
	}
	return widths
}

func weight(col Column) float64 {
	if col.Weight <= 0 {
		return 1
	}
	return col.Weight
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate shortens s to max runes, marking the cut with "..."
func truncate(s string, max int) string {
	runes := []rune(s)
	if max <= 0 || len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func hexToRGB(hex string) (int, int, int) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 255, 255, 255
	}
	var r, g, b int
	fmt.Sscanf(hex, "%02x%02x%02x", &r, &g, &b)
	return r, g, b
}
