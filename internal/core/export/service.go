package export

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
)

// Service renders tables into downloadable documents
type Service struct {
	exporters map[Format]Exporter
}

// NewService creates a new export service
func NewService() *Service {
	return &Service{
		exporters: map[Format]Exporter{
			FormatPDF:   NewPDFExporter(),
			FormatExcel: NewExcelExporter(),
		},
	}
}

// Render exports the table in the given format. The filename is derived
// from the table title and the generation date.
func (s *Service) Render(table *Table, format Format) (*Document, error) {
	exporter, ok := s.exporters[format]
	if !ok {
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
	if len(table.Columns) == 0 {
		return nil, fmt.Errorf("export %q has no columns", table.Title)
	}

	var buf bytes.Buffer
	if err := exporter.Export(table, &buf); err != nil {
		return nil, fmt.Errorf("%s export failed: %w", format, err)
	}

	return &Document{
		Body:        buf.Bytes(),
		ContentType: exporter.ContentType(),
		Filename:    filename(table) + exporter.FileExtension(),
	}, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

func filename(table *Table) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(table.Title), "-"), "-")
	if slug == "" {
		slug = "export"
	}
	if table.GeneratedAt.IsZero() {
		return slug
	}
	return slug + "-" + table.GeneratedAt.Format("20060102")
}
