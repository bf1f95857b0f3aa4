package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// JobStatus represents the status of a job
type JobStatus string

const (
	StatusPending    JobStatus = "pending"
	StatusProcessing JobStatus = "processing"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusRetrying   JobStatus = "retrying"
)

// Job types handled by the API process.
const (
	TypeContactNotification = "contact_notification"
)

// Job represents a background job in the database
type Job struct {
	ID      uuid.UUID      `gorm:"type:uuid;primaryKey"`
	Queue   string         `gorm:"type:text;not null;index"`
	Type    string         `gorm:"type:text;not null"`
	Payload datatypes.JSON

	Status JobStatus `gorm:"type:text;not null;default:'pending';index"`

	Attempts   int `gorm:"not null;default:0"`
	MaxRetries int `gorm:"not null;default:3"`

	ScheduledAt *time.Time `gorm:"index"`
	StartedAt   *time.Time
	CompletedAt *time.Time
	FailedAt    *time.Time

	Error string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName specifies the table name for Job model
func (Job) TableName() string {
	return "jobs"
}

// BeforeCreate sets UUID before creating
func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}

// JobHandler is the interface that job handlers must implement
type JobHandler interface {
	Handle(ctx context.Context, job *Job) error
	GetType() string
}

// HandlerFunc adapts a function to JobHandler
type HandlerFunc struct {
	Type string
	Fn   func(ctx context.Context, job *Job) error
}

func (h HandlerFunc) Handle(ctx context.Context, job *Job) error { return h.Fn(ctx, job) }

func (h HandlerFunc) GetType() string { return h.Type }

// EnqueueOptions contains options for enqueueing a job
type EnqueueOptions struct {
	Queue      string
	MaxRetries int
	ScheduleAt *time.Time
}

// DefaultEnqueueOptions returns default enqueue options
func DefaultEnqueueOptions() EnqueueOptions {
	return EnqueueOptions{
		Queue:      "default",
		MaxRetries: 3,
	}
}

// WorkerConfig contains configuration for job workers
type WorkerConfig struct {
	Queue        string
	Concurrency  int           // Number of concurrent workers
	PollInterval time.Duration // How often to poll for new jobs
	Timeout      time.Duration // Maximum time for job execution
}

// DefaultWorkerConfig returns default worker configuration
func DefaultWorkerConfig() WorkerConfig {
	return WorkerConfig{
		Queue:        "default",
		Concurrency:  1,
		PollInterval: 2 * time.Second,
		Timeout:      time.Minute,
	}
}
