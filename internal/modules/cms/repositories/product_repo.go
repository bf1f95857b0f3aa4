package repositories

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/models"
)

type ProductRepo interface {
	Create(ctx context.Context, product *models.Product) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error)
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepo {
	return &productRepo{db: db}
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepo) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, id).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

// List returns products newest first
func (r *productRepo) List(ctx context.Context, filter models.ProductFilter) ([]models.Product, error) {
	query := r.db.WithContext(ctx).Model(&models.Product{})

	if filter.Category != "" {
		query = query.Where("LOWER(category) = ?", strings.ToLower(filter.Category))
	}
	if filter.SearchTerm != "" {
		pattern := "%" + strings.ToLower(filter.SearchTerm) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	products := []models.Product{}
	err := query.Order("created_at DESC, id DESC").Find(&products).Error
	return products, err
}

func (r *productRepo) Update(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepo) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.Product{}, id)
}

// deleteByID reports gorm.ErrRecordNotFound when no row was removed
func deleteByID(ctx context.Context, db *gorm.DB, model interface{}, id uint) error {
	result := db.WithContext(ctx).Delete(model, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
