package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/audit"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/models"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/repositories"
)

const entityGalleryItem = "gallery_item"

type GalleryService struct {
	galleryRepo  repositories.GalleryRepo
	auditService *audit.Service
}

func NewGalleryService(galleryRepo repositories.GalleryRepo, auditService *audit.Service) *GalleryService {
	return &GalleryService{
		galleryRepo:  galleryRepo,
		auditService: auditService,
	}
}

// ListItems returns gallery items newest first, optionally one media type
func (s *GalleryService) ListItems(ctx context.Context, mediaType string) ([]models.GalleryItem, error) {
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))
	if mediaType != "" && mediaType != models.MediaTypeImage && mediaType != models.MediaTypeVideo {
		return nil, validation("media_type must be image or video")
	}
	return s.galleryRepo.List(ctx, mediaType)
}

// CreateItem adds a gallery item. The media type is inferred from the URL
// when not given.
func (s *GalleryService) CreateItem(ctx context.Context, actor audit.Actor, req *models.CreateGalleryItemRequest) (*models.GalleryItem, error) {
	item := &models.GalleryItem{
		MediaURL:    strings.TrimSpace(req.MediaURL),
		MediaType:   strings.ToLower(strings.TrimSpace(req.MediaType)),
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
	}
	if item.MediaURL == "" {
		return nil, validation("media_url is required")
	}

	switch item.MediaType {
	case "":
		item.MediaType = models.InferMediaType(item.MediaURL)
	case models.MediaTypeImage, models.MediaTypeVideo:
	default:
		return nil, validation("media_type must be image or video")
	}

	if err := s.galleryRepo.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create gallery item: %w", err)
	}

	s.auditService.Record(ctx, actor, audit.ActionCreate, entityGalleryItem, idString(item.ID), nil, item)
	return item, nil
}

// DeleteItem removes a gallery item
func (s *GalleryService) DeleteItem(ctx context.Context, actor audit.Actor, id uint) error {
	item, err := s.galleryRepo.GetByID(ctx, id)
	if err != nil {
		return translate(err, entityGalleryItem)
	}
	if err := s.galleryRepo.Delete(ctx, id); err != nil {
		return translate(err, entityGalleryItem)
	}

	s.auditService.Record(ctx, actor, audit.ActionDelete, entityGalleryItem, idString(id), item, nil)
	return nil
}
