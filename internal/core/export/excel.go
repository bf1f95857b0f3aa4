package export

import (
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	minColWidth = 8
	maxColWidth = 60
)

// ExcelExporter implements Excel export using excelize
type ExcelExporter struct{}

// NewExcelExporter creates a new Excel exporter
func NewExcelExporter() *ExcelExporter {
	return &ExcelExporter{}
}

// Export writes the title, a header row and one row per record
func (e *ExcelExporter) Export(table *Table, writer io.Writer) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := sheetName(table.Title)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	rowIndex := 1
	if table.Title != "" {
		titleStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 14}})
		if err != nil {
			return fmt.Errorf("failed to create title style: %w", err)
		}
		f.SetCellValue(sheet, "A1", table.Title)
		f.SetCellStyle(sheet, "A1", "A1", titleStyle)
		rowIndex++
		if table.Subtitle != "" {
			f.SetCellValue(sheet, fmt.Sprintf("A%d", rowIndex), table.Subtitle)
			rowIndex++
		}
		rowIndex++
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF", Size: table.Style.FontSize + 1},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{stripHash(table.Style.HeaderBgColor)},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	var stripeStyle int
	if table.Style.StripeColor != "" {
		stripeStyle, err = f.NewStyle(&excelize.Style{
			Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{stripHash(table.Style.StripeColor)}},
		})
		if err != nil {
			return fmt.Errorf("failed to create row style: %w", err)
		}
	}

	headerRow := rowIndex
	widths := make([]int, len(table.Columns))
	for i, col := range table.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, headerRow)
		f.SetCellValue(sheet, cell, col.Header)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
		widths[i] = utf8.RuneCountInString(col.Header)
	}
	rowIndex++

	for r, row := range table.Rows {
		for i, value := range row {
			if i >= len(table.Columns) {
				break
			}
			cell, _ := excelize.CoordinatesToCellName(i+1, rowIndex)
			text := cellText(value)
			switch value.(type) {
			case int, int64, uint, float64:
				f.SetCellValue(sheet, cell, value)
			default:
				f.SetCellValue(sheet, cell, text)
			}
			if stripeStyle != 0 && r%2 == 1 {
				f.SetCellStyle(sheet, cell, cell, stripeStyle)
			}
			if n := utf8.RuneCountInString(text); n > widths[i] {
				widths[i] = n
			}
		}
		rowIndex++
	}

	for i, col := range table.Columns {
		name, _ := excelize.ColumnNumberToName(i + 1)
		width := col.Width
		if width == 0 {
			width = float64(clamp(widths[i]+2, minColWidth, maxColWidth))
		}
		f.SetColWidth(sheet, name, name, width)
	}

	f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      headerRow,
		TopLeftCell: fmt.Sprintf("A%d", headerRow+1),
		ActivePane:  "bottomLeft",
	})

	lastCol, _ := excelize.ColumnNumberToName(len(table.Columns))
	f.AutoFilter(sheet, fmt.Sprintf("A%d:%s%d", headerRow, lastCol, headerRow+len(table.Rows)), nil)

	if err := f.Write(writer); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}
	return nil
}

// ContentType returns the MIME type for Excel files
func (e *ExcelExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// FileExtension returns the file extension for Excel files
func (e *ExcelExporter) FileExtension() string {
	return ".xlsx"
}

// sheet names are limited to 31 characters and may not contain []:*?/\
func sheetName(title string) string {
	name := make([]rune, 0, 31)
	for _, r := range title {
		switch r {
		case '[', ']', ':', '*', '?', '/', '\\':
			continue
		}
		name = append(name, r)
		if len(name) == 31 {
			break
		}
	}
	if len(name) == 0 {
		return "Sheet1"
	}
	return string(name)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func stripHash(color string) string {
	if len(color) > 0 && color[0] == '#' {
		return color[1:]
	}
	return color
}
