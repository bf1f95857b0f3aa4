package repositories

import (
	"context"

	"gorm.io/gorm"

	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/models"
)

type ContactRepo interface {
	Create(ctx context.Context, msg *models.ContactMessage) error
	GetByID(ctx context.Context, id uint) (*models.ContactMessage, error)
	List(ctx context.Context, page models.Pagination) ([]models.ContactMessage, int64, error)
	ListAll(ctx context.Context) ([]models.ContactMessage, error)
	Delete(ctx context.Context, id uint) error
}

type contactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) ContactRepo {
	return &contactRepo{db: db}
}

func (r *contactRepo) Create(ctx context.Context, msg *models.ContactMessage) error {
	return r.db.WithContext(ctx).Create(msg).Error
}

func (r *contactRepo) GetByID(ctx context.Context, id uint) (*models.ContactMessage, error) {
	var msg models.ContactMessage
	if err := r.db.WithContext(ctx).First(&msg, id).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

func (r *contactRepo) List(ctx context.Context, page models.Pagination) ([]models.ContactMessage, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.ContactMessage{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	messages := []models.ContactMessage{}
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&messages).Error
	return messages, total, err
}

func (r *contactRepo) ListAll(ctx context.Context) ([]models.ContactMessage, error) {
	messages := []models.ContactMessage{}
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&messages).Error
	return messages, err
}

func (r *contactRepo) Delete(ctx context.Context, id uint) error {
	return deleteByID(ctx, r.db, &models.ContactMessage{}, id)
}
