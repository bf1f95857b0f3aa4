package export

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Format is an export file format
type Format string

const (
	FormatPDF   Format = "pdf"
	FormatExcel Format = "excel"
)

// ParseFormat accepts "pdf", "excel" and "xlsx"; empty means excel
func ParseFormat(raw string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "excel", "xlsx":
		return FormatExcel, nil
	case "pdf":
		return FormatPDF, nil
	default:
		return "", fmt.Errorf("unsupported export format: %s", raw)
	}
}

// Exporter renders a table into one file format
type Exporter interface {
	Export(table *Table, writer io.Writer) error
	ContentType() string
	FileExtension() string
}

// Table is the content of one export
type Table struct {
	Title       string
	Subtitle    string
	GeneratedAt time.Time
	Columns     []Column
	Rows        [][]interface{}
	Style       Style
}

// Column describes a table column. Weight sets the relative PDF width and
// defaults to 1.
type Column struct {
	Header string
	Weight float64
	Width  float64 // excel character width, 0 sizes from content
}

// Headers returns the column headers in order
func (t *Table) Headers() []string {
	headers := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		headers[i] = col.Header
	}
	return headers
}

// Style defines styling shared by the exporters
type Style struct {
	Landscape     bool
	HeaderBgColor string // hex
	StripeColor   string // hex, empty disables striping
	FontSize      float64
	MaxCellChars  int // PDF cells are truncated past this
}

// DefaultStyle returns default export styling
func DefaultStyle() Style {
	return Style{
		HeaderBgColor: "#1F3A5F",
		StripeColor:   "#F2F2F2",
		FontSize:      9,
		MaxCellChars:  80,
	}
}

// NewTable creates a table with the default style
func NewTable(title string, columns ...Column) *Table {
	return &Table{
		Title:       title,
		GeneratedAt: time.Now(),
		Columns:     columns,
		Style:       DefaultStyle(),
	}
}

// AddRow appends one row of cell values
func (t *Table) AddRow(values ...interface{}) {
	t.Rows = append(t.Rows, values)
}

// Document is a rendered export ready to be served
type Document struct {
	Body        []byte
	ContentType string
	Filename    string
}

func cellText(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case time.Time:
		if v.IsZero() {
			return ""
		}
		return v.Format("2006-01-02 15:04")
	case *time.Time:
		if v == nil {
			return ""
		}
		return cellText(*v)
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
