package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/audit"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/models"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/repositories"
)

const entityProduct = "product"

type ProductService struct {
	productRepo  repositories.ProductRepo
	auditService *audit.Service
	siteURL      string
}

func NewProductService(productRepo repositories.ProductRepo, auditService *audit.Service, siteURL string) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		auditService: auditService,
		siteURL:      strings.TrimRight(siteURL, "/"),
	}
}

// ListProducts returns products newest first
func (s *ProductService) ListProducts(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	return s.productRepo.List(ctx, filter)
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, entityProduct)
	}
	return product, nil
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, actor audit.Actor, req *models.CreateProductRequest) (*models.Product, error) {
	product := &models.Product{
		Name:        strings.TrimSpace(req.Name),
		Category:    strings.TrimSpace(req.Category),
		Description: req.Description,
		ImageURL:    strings.TrimSpace(req.ImageURL),
	}
	if product.Name == "" || product.Category == "" {
		return nil, validation("name and category are required")
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.auditService.Record(ctx, actor, audit.ActionCreate, entityProduct, idString(product.ID), nil, product)
	return product, nil
}

// UpdateProduct applies a partial update
func (s *ProductService) UpdateProduct(ctx context.Context, actor audit.Actor, id uint, req *models.UpdateProductRequest) (*models.Product, error) {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	before := *product

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, validation("name cannot be empty")
		}
		product.Name = strings.TrimSpace(*req.Name)
	}
	if req.Category != nil {
		if strings.TrimSpace(*req.Category) == "" {
			return nil, validation("category cannot be empty")
		}
		product.Category = strings.TrimSpace(*req.Category)
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.ImageURL != nil {
		product.ImageURL = strings.TrimSpace(*req.ImageURL)
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.auditService.Record(ctx, actor, audit.ActionUpdate, entityProduct, idString(id), before, product)
	return product, nil
}

// DeleteProduct removes a product
func (s *ProductService) DeleteProduct(ctx context.Context, actor audit.Actor, id uint) error {
	product, err := s.GetProduct(ctx, id)
	if err != nil {
		return err
	}
	if err := s.productRepo.Delete(ctx, id); err != nil {
		return translate(err, entityProduct)
	}

	s.auditService.Record(ctx, actor, audit.ActionDelete, entityProduct, idString(id), product, nil)
	return nil
}

// ProductURL is the public page a product's QR code points to
func (s *ProductService) ProductURL(id uint) string {
	return fmt.Sprintf("%s/products?id=%d", s.siteURL, id)
}

// QRCode renders a PNG QR code linking to the product page
func (s *ProductService) QRCode(ctx context.Context, id uint, size int) ([]byte, error) {
	if _, err := s.GetProduct(ctx, id); err != nil {
		return nil, err
	}
	if size < 128 || size > 1024 {
		size = 256
	}

	png, err := qrcode.Encode(s.ProductURL(id), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to generate QR code: %w", err)
	}
	return png, nil
}

func idString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
