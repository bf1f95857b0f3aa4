package jobs

import (
	"context"
	"sync"
	"time"

	"gorm.io/gorm"
)

// QueueNotifications carries outgoing emails
const QueueNotifications = "notifications"

// staleMargin is added to the longest worker timeout before a processing job
// is considered abandoned
const staleMargin = 30 * time.Second

// Service provides high-level job queue functionality
type Service struct {
	queue   *Queue
	mu      sync.Mutex
	workers []*Worker
}

// NewService creates a new job service
func NewService(db *gorm.DB) *Service {
	return &Service{queue: NewQueue(db)}
}

// Queue exposes the underlying queue
func (s *Service) Queue() *Queue {
	return s.queue
}

// Enqueue adds a new job to the queue
func (s *Service) Enqueue(ctx context.Context, jobType string, payload interface{}, opts ...EnqueueOptions) (*Job, error) {
	options := DefaultEnqueueOptions()
	if len(opts) > 0 {
		options = opts[0]
	}
	return s.queue.Enqueue(ctx, jobType, payload, options)
}

// EnqueueNotification queues an email notification with five attempts
func (s *Service) EnqueueNotification(ctx context.Context, jobType string, payload interface{}) (*Job, error) {
	return s.Enqueue(ctx, jobType, payload, EnqueueOptions{
		Queue:      QueueNotifications,
		MaxRetries: 5,
	})
}

// RegisterWorker creates a worker for a queue with the given handlers
func (s *Service) RegisterWorker(config WorkerConfig, handlers ...JobHandler) *Worker {
	worker := NewWorker(s.queue, config)
	for _, handler := range handlers {
		worker.RegisterHandler(handler)
	}

	s.mu.Lock()
	s.workers = append(s.workers, worker)
	s.mu.Unlock()
	return worker
}

// StaleAfter is how long a job may stay in processing before it is treated as
// orphaned. A live worker gives up on a job after its timeout, so anything
// older belongs to a process that died.
func (s *Service) StaleAfter() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	longest := DefaultWorkerConfig().Timeout
	if len(s.workers) > 0 {
		longest = 0
	}
	for _, worker := range s.workers {
		if worker.config.Timeout > longest {
			longest = worker.config.Timeout
		}
	}
	return longest + staleMargin
}

// RequeueStale puts orphaned processing jobs back on their queue
func (s *Service) RequeueStale(ctx context.Context) (int64, error) {
	return s.queue.RequeueStale(ctx, s.StaleAfter())
}

// StartWorkers requeues jobs orphaned by a previous run and starts all
// registered workers
func (s *Service) StartWorkers(ctx context.Context) error {
	if _, err := s.RequeueStale(ctx); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, worker := range s.workers {
		if err := worker.Start(ctx); err != nil {
			return err
		}
	}
	return nil
}

// StopWorkers stops all workers
func (s *Service) StopWorkers() {
	s.mu.Lock()
	workers := append([]*Worker(nil), s.workers...)
	s.mu.Unlock()

	var wg sync.WaitGroup
	for _, worker := range workers {
		wg.Add(1)
		go func(w *Worker) {
			defer wg.Done()
			w.Stop()
		}(worker)
	}
	wg.Wait()
}

// Cleanup deletes old completed/failed jobs
func (s *Service) Cleanup(ctx context.Context, olderThan time.Duration) (int64, error) {
	return s.queue.DeleteOldJobs(ctx, olderThan)
}
