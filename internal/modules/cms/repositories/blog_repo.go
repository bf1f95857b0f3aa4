package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/models"
)

type BlogRepo interface {
	Create(ctx context.Context, post *models.BlogPost) error
	GetByID(ctx context.Context, id uint) (*models.BlogPost, error)
	List(ctx context.Context, limit int) ([]models.BlogPost, error)
	Update(ctx context.Context, post *models.BlogPost) error
	Delete(ctx context.Context, id uint) error
}

type blogRepo struct {
	db *gorm.DB
}

func NewBlogRepo(db *gorm.DB) BlogRepo {
	return &blogRepo{db: db}
}

func (r *blogRepo) Create(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *blogRepo) GetByID(ctx context.Context, id uint) (*models.BlogPost, error) {
	var post models.BlogPost
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// List returns posts newest first; limit 0 returns all
func (r *blogRepo) List(ctx context.Context, limit int) ([]models.BlogPost, error) {
	query := r.db.WithContext(ctx).Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	posts := []models.BlogPost{}
	err := query.Find(&posts).Error
	return posts, err
}

func (r *blogRepo) Update(ctx context.Context, post *models.BlogPost) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *blogRepo) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.BlogPost{}, id)
}
