package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Queue manages job queue operations
type Queue struct {
	db  *gorm.DB
	now func() time.Time
}

// NewQueue creates a new job queue
func NewQueue(db *gorm.DB) *Queue {
	return &Queue{db: db, now: time.Now}
}

// Enqueue adds a new job to the queue
func (q *Queue) Enqueue(ctx context.Context, jobType string, payload interface{}, opts EnqueueOptions) (*Job, error) {
	if opts.Queue == "" {
		opts.Queue = "default"
	}
	if opts.MaxRetries == 0 {
		opts.MaxRetries = 3
	}

	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize payload: %w", err)
	}

	job := &Job{
		Queue:       opts.Queue,
		Type:        jobType,
		Payload:     payloadJSON,
		Status:      StatusPending,
		MaxRetries:  opts.MaxRetries,
		ScheduledAt: opts.ScheduleAt,
	}

	if err := q.db.WithContext(ctx).Create(job).Error; err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}

	return job, nil
}

// Dequeue claims the oldest runnable job of the queue. It returns nil
// when nothing is due.
func (q *Queue) Dequeue(ctx context.Context, queueName string) (*Job, error) {
	var job Job
	now := q.now()

	err := q.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("queue = ? AND status IN ?", queueName, []JobStatus{StatusPending, StatusRetrying}).
			Where("scheduled_at IS NULL OR scheduled_at <= ?", now).
			Order("created_at ASC").
			First(&job).Error
		if err != nil {
			return err
		}

		// the status guard keeps two workers from claiming the same row
		res := tx.Model(&Job{}).
			Where("id = ? AND status = ?", job.ID, job.Status).
			Updates(map[string]interface{}{
				"status":     StatusProcessing,
				"started_at": now,
				"attempts":   job.Attempts + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		job.Status = StatusProcessing
		job.StartedAt = &now
		job.Attempts++
		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to dequeue job: %w", err)
	}

	return &job, nil
}

// MarkCompleted marks a job as completed
func (q *Queue) MarkCompleted(ctx context.Context, jobID uuid.UUID) error {
	return q.db.WithContext(ctx).Model(&Job{}).Where("id = ?", jobID).Updates(map[string]interface{}{
		"status":       StatusCompleted,
		"completed_at": q.now(),
		"error":        "",
	}).Error
}

// MarkFailed schedules a retry with exponential backoff, or fails the job
// for good once its retries are used up.
func (q *Queue) MarkFailed(ctx context.Context, jobID uuid.UUID, cause error) error {
	var job Job
	if err := q.db.WithContext(ctx).First(&job, "id = ?", jobID).Error; err != nil {
		return fmt.Errorf("failed to find job: %w", err)
	}

	now := q.now()
	job.Error = cause.Error()
	job.FailedAt = &now

	if job.Attempts < job.MaxRetries {
		scheduleAt := now.Add(time.Duration(calculateBackoff(job.Attempts)) * time.Second)
		job.Status = StatusRetrying
		job.ScheduledAt = &scheduleAt
	} else {
		job.Status = StatusFailed
	}

	return q.db.WithContext(ctx).Save(&job).Error
}

// RequeueStale returns jobs stuck in processing for longer than olderThan
// to the queue, which happens when the process dies mid-job.
func (q *Queue) RequeueStale(ctx context.Context, olderThan time.Duration) (int64, error) {
	result := q.db.WithContext(ctx).Model(&Job{}).
		Where("status = ? AND started_at < ?", StatusProcessing, q.now().Add(-olderThan)).
		Update("status", StatusRetrying)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to requeue stale jobs: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// CountByStatus counts the jobs of a queue in the given status
func (q *Queue) CountByStatus(ctx context.Context, queueName string, status JobStatus) (int64, error) {
	var count int64
	err := q.db.WithContext(ctx).Model(&Job{}).
		Where("queue = ? AND status = ?", queueName, status).
		Count(&count).Error
	return count, err
}

// DeleteOldJobs deletes completed/failed jobs older than the specified duration
func (q *Queue) DeleteOldJobs(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := q.now().Add(-olderThan)

	result := q.db.WithContext(ctx).
		Where("(status = ? AND completed_at < ?) OR (status = ? AND failed_at < ?)",
			StatusCompleted, cutoff, StatusFailed, cutoff).
		Delete(&Job{})

	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete old jobs: %w", result.Error)
	}

	return result.RowsAffected, nil
}

// calculateBackoff calculates exponential backoff time in seconds
func calculateBackoff(attempt int) int {
	if attempt > 12 {
		return 3600
	}
	backoff := 1 << attempt
	if backoff > 3600 {
		backoff = 3600
	}
	return backoff
}

// DecodePayload unmarshals a job payload into v
func DecodePayload(job *Job, v interface{}) error {
	if err := json.Unmarshal(job.Payload, v); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", job.Type, err)
	}
	return nil
}
