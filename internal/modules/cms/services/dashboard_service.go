package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/analytics"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/models"
)

// DefaultActivityPeriod is the chat activity window when none is requested
const DefaultActivityPeriod = "last_14_days"

type DashboardService struct {
	aggregator *analytics.Aggregator
	now        func() time.Time
}

func NewDashboardService(aggregator *analytics.Aggregator) *DashboardService {
	return &DashboardService{aggregator: aggregator, now: time.Now}
}

// GetStats counts the content tables and summarizes chatbot activity over
// the named period (see analytics.Periods)
func (s *DashboardService) GetStats(ctx context.Context, period string) (*models.DashboardStats, error) {
	if period == "" {
		period = DefaultActivityPeriod
	}
	activityRange, err := analytics.GetDateRange(period, s.now())
	if err != nil {
		return nil, validation(fmt.Sprintf("period must be one of %s", strings.Join(analytics.Periods, ", ")))
	}

	stats := &models.DashboardStats{}

	counts := []struct {
		table string
		dest  *int64
	}{
		{models.Product{}.TableName(), &stats.Products},
		{models.BlogPost{}.TableName(), &stats.BlogPosts},
		{models.GalleryItem{}.TableName(), &stats.GalleryItems},
		{models.ContactMessage{}.TableName(), &stats.ContactMessages},
		{models.ChatLog{}.TableName(), &stats.ChatMessages},
	}
	for _, c := range counts {
		n, err := s.aggregator.Count(ctx, c.table, nil)
		if err != nil {
			return nil, err
		}
		*c.dest = n
	}

	unanswered, err := s.aggregator.Count(ctx, models.ChatLog{}.TableName(), nil,
		analytics.Filter{Condition: "outcome", Value: models.OutcomeFallback})
	if err != nil {
		return nil, err
	}
	stats.UnansweredChats = unanswered

	activity, err := s.aggregator.DailySeries(ctx, models.ChatLog{}.TableName(),
		activityRange,
		map[string][]analytics.Filter{
			models.OutcomeResolved: {{Condition: "outcome", Value: models.OutcomeResolved}},
			models.OutcomeFallback: {{Condition: "outcome", Value: models.OutcomeFallback}},
		},
		[]string{models.OutcomeResolved, models.OutcomeFallback},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build chat activity: %w", err)
	}
	stats.ChatActivity = activity

	return stats, nil
}
