package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/models"
)

type ChatbotRepo interface {
	GetSettings(ctx context.Context) (*models.ChatbotSettings, error)
	SaveSettings(ctx context.Context, settings *models.ChatbotSettings) error
	CreateLog(ctx context.Context, log *models.ChatLog) error
	ListLogs(ctx context.Context, filter models.ChatLogFilter) ([]models.ChatLog, int64, error)
	DeleteLogsBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type chatbotRepo struct {
	db *gorm.DB
}

func NewChatbotRepo(db *gorm.DB) ChatbotRepo {
	return &chatbotRepo{db: db}
}

// GetSettings returns gorm.ErrRecordNotFound until settings are first saved
func (r *chatbotRepo) GetSettings(ctx context.Context) (*models.ChatbotSettings, error) {
	var settings models.ChatbotSettings
	if err := r.db.WithContext(ctx).First(&settings, models.SettingsRowID).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// SaveSettings replaces the single settings row in one statement
func (r *chatbotRepo) SaveSettings(ctx context.Context, settings *models.ChatbotSettings) error {
	settings.ID = models.SettingsRowID
	settings.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"greeting", "faqs", "updated_at"}),
	}).Create(settings).Error
}

func (r *chatbotRepo) CreateLog(ctx context.Context, log *models.ChatLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *chatbotRepo) ListLogs(ctx context.Context, filter models.ChatLogFilter) ([]models.ChatLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&models.ChatLog{})
	if filter.Outcome != "" {
		query = query.Where("outcome = ?", filter.Outcome)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := models.Pagination{Page: filter.Page, PageSize: filter.PageSize}.Normalize(50)
	logs := []models.ChatLog{}
	err := query.Order("created_at DESC, id DESC").
		Offset(page.Offset()).
		Limit(page.PageSize).
		Find(&logs).Error
	return logs, total, err
}

func (r *chatbotRepo) DeleteLogsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&models.ChatLog{})
	return result.RowsAffected, result.Error
}
