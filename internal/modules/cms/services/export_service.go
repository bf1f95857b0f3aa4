package services

import (
	"context"
	"fmt"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/export"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/models"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/repositories"
)

type ExportService struct {
	productRepo repositories.ProductRepo
	contactRepo repositories.ContactRepo
	exporter    *export.Service
}

func NewExportService(productRepo repositories.ProductRepo, contactRepo repositories.ContactRepo, exporter *export.Service) *ExportService {
	return &ExportService{
		productRepo: productRepo,
		contactRepo: contactRepo,
		exporter:    exporter,
	}
}

// ExportProducts renders the product catalog
func (s *ExportService) ExportProducts(ctx context.Context, format export.Format) (*export.Document, error) {
	products, err := s.productRepo.List(ctx, models.ProductFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	table := export.NewTable("Product Catalog",
		export.Column{Header: "ID", Weight: 0.4},
		export.Column{Header: "Name", Weight: 1.5},
		export.Column{Header: "Category"},
		export.Column{Header: "Description", Weight: 3, Width: 60},
		export.Column{Header: "Updated", Weight: 1.1},
	)
	table.Subtitle = fmt.Sprintf("%d products", len(products))
	table.Style.Landscape = true
	for _, p := range products {
		table.AddRow(p.ID, p.Name, p.Category, p.Description, p.UpdatedAt)
	}

	return s.exporter.Render(table, format)
}

// ExportContactMessages renders every stored contact message
func (s *ExportService) ExportContactMessages(ctx context.Context, format export.Format) (*export.Document, error) {
	messages, err := s.contactRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load contact messages: %w", err)
	}

	table := export.NewTable("Contact Messages",
		export.Column{Header: "Received", Weight: 1.1},
		export.Column{Header: "Name"},
		export.Column{Header: "Email", Weight: 1.4},
		export.Column{Header: "Phone"},
		export.Column{Header: "Subject", Weight: 1.2},
		export.Column{Header: "Message", Weight: 3, Width: 60},
	)
	table.Subtitle = fmt.Sprintf("%d messages", len(messages))
	table.Style.Landscape = true
	for _, m := range messages {
		table.AddRow(m.CreatedAt, m.Name, m.Email, m.Phone, m.Subject, m.Message)
	}

	return s.exporter.Render(table, format)
}
