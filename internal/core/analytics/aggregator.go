package analytics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"
)

// Aggregator provides generic database aggregation helpers
type Aggregator struct {
	db *gorm.DB
}

// NewAggregator creates a new aggregator
func NewAggregator(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// Count performs a COUNT query on a table with optional filters and range
func (a *Aggregator) Count(ctx context.Context, table string, dateRange *DateRange, filters ...Filter) (int64, error) {
	db := a.scope(ctx, table, dateRange, filters)

	var count int64
	if err := db.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count %s failed: %w", table, err)
	}
	return count, nil
}

// DailyCounts buckets the rows of a table per calendar day of the range.
// Bucketing happens in Go so the query is the same on every dialect.
func (a *Aggregator) DailyCounts(ctx context.Context, table string, dateRange *DateRange, filters ...Filter) ([]string, []int64, error) {
	if dateRange == nil {
		return nil, nil, fmt.Errorf("daily counts need a date range")
	}

	var stamps []time.Time
	if err := a.scope(ctx, table, dateRange, filters).Pluck(dateRange.Field, &stamps).Error; err != nil {
		return nil, nil, fmt.Errorf("daily counts for %s failed: %w", table, err)
	}

	days := GetDailyRanges(dateRange.Start, dateRange.End)
	labels := make([]string, len(days))
	values := make([]int64, len(days))
	index := make(map[string]int, len(days))
	for i, day := range days {
		labels[i] = day.Start.Format("2006-01-02")
		index[labels[i]] = i
	}

	loc := dateRange.Start.Location()
	for _, ts := range stamps {
		if i, ok := index[ts.In(loc).Format("2006-01-02")]; ok {
			values[i]++
		}
	}

	return labels, values, nil
}

// DailySeries builds a line chart with one series per named filter set
func (a *Aggregator) DailySeries(ctx context.Context, table string, dateRange *DateRange, series map[string][]Filter, order []string) (*ChartData, error) {
	chart := &ChartData{Type: "line", Labels: []string{}, Data: []ChartSeries{}}
	for _, name := range order {
		labels, values, err := a.DailyCounts(ctx, table, dateRange, series[name]...)
		if err != nil {
			return nil, err
		}
		chart.Labels = labels
		chart.Data = append(chart.Data, ChartSeries{Name: name, Values: values})
	}
	return chart, nil
}

func (a *Aggregator) scope(ctx context.Context, table string, dateRange *DateRange, filters []Filter) *gorm.DB {
	db := a.db.WithContext(ctx).Table(table)

	for _, f := range filters {
		if strings.Contains(f.Condition, "?") {
			db = db.Where(f.Condition, f.Value)
		} else {
			db = db.Where(fmt.Sprintf("%s = ?", f.Condition), f.Value)
		}
	}

	if dateRange != nil {
		db = db.Where(fmt.Sprintf("%s BETWEEN ? AND ?", dateRange.Field), dateRange.Start, dateRange.End)
	}
	return db
}
