package analytics

import "time"

// DateRange represents a time period for filtering
type DateRange struct {
	Start time.Time
	End   time.Time
	Field string // Date field to filter on (e.g., "created_at")
}

// Filter is a WHERE condition. Conditions without a placeholder are
// treated as column equality.
type Filter struct {
	Condition string
	Value     interface{}
}

// ChartData represents generic chart data format
type ChartData struct {
	Type   string        `json:"type"`   // "line", "bar"
	Labels []string      `json:"labels"` // X-axis labels
	Data   []ChartSeries `json:"data"`   // Y-axis data series
}

// ChartSeries represents a data series in a chart
type ChartSeries struct {
	Name   string  `json:"name"`
	Values []int64 `json:"values"`
}
