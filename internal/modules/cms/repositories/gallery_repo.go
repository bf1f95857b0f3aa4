package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/models"
)

type GalleryRepo interface {
	Create(ctx context.Context, item *models.GalleryItem) error
	GetByID(ctx context.Context, id uint) (*models.GalleryItem, error)
	List(ctx context.Context, mediaType string) ([]models.GalleryItem, error)
	Delete(ctx context.Context, id uint) error
}

type galleryRepo struct {
	db *gorm.DB
}

func NewGalleryRepo(db *gorm.DB) GalleryRepo {
	return &galleryRepo{db: db}
}

func (r *galleryRepo) Create(ctx context.Context, item *models.GalleryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

func (r *galleryRepo) GetByID(ctx context.Context, id uint) (*models.GalleryItem, error) {
	var item models.GalleryItem
	if err := r.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *galleryRepo) List(ctx context.Context, mediaType string) ([]models.GalleryItem, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if mediaType != "" {
		query = query.Where("media_type = ?", mediaType)
	}
	items := []models.GalleryItem{}
	err := query.Find(&items).Error
	return items, err
}

func (r *galleryRepo) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.GalleryItem{}, id)
}
