package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Worker processes jobs from a queue
type Worker struct {
	queue    *Queue
	config   WorkerConfig
	handlers map[string]JobHandler
	mu       sync.RWMutex
	stopped  bool
	cancel   context.CancelFunc
	wg       sync.WaitGroup
}

// NewWorker creates a new job worker
func NewWorker(queue *Queue, config WorkerConfig) *Worker {
	if config.Concurrency <= 0 {
		config.Concurrency = 1
	}
	if config.PollInterval <= 0 {
		config.PollInterval = time.Second
	}
	if config.Timeout <= 0 {
		config.Timeout = time.Minute
	}
	return &Worker{
		queue:    queue,
		config:   config,
		handlers: make(map[string]JobHandler),
	}
}

// RegisterHandler registers a job handler for a specific job type
func (w *Worker) RegisterHandler(handler JobHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handlers[handler.GetType()] = handler
	log.Debug().Str("type", handler.GetType()).Msg("Registered job handler")
}

// Start launches the worker goroutines. They run until ctx is cancelled or
// Stop is called.
func (w *Worker) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return fmt.Errorf("worker is stopped, cannot restart")
	}
	ctx, w.cancel = context.WithCancel(ctx)
	w.mu.Unlock()

	log.Info().Str("queue", w.config.Queue).Int("concurrency", w.config.Concurrency).Msg("Starting job worker")

	for i := 0; i < w.config.Concurrency; i++ {
		w.wg.Add(1)
		go w.runWorker(ctx, i+1)
	}
	return nil
}

// Stop gracefully stops the worker and waits for running jobs
func (w *Worker) Stop() {
	w.mu.Lock()
	w.stopped = true
	if w.cancel != nil {
		w.cancel()
	}
	w.mu.Unlock()

	w.wg.Wait()
	log.Info().Str("queue", w.config.Queue).Msg("Job worker stopped")
}

func (w *Worker) runWorker(ctx context.Context, workerID int) {
	defer w.wg.Done()

	ticker := time.NewTicker(w.config.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// drain everything that is due before waiting again
			for {
				err := w.processNextJob(ctx, workerID)
				if errors.Is(err, ErrNoJobsAvailable) {
					break
				}
				if err != nil {
					log.Warn().Err(err).Int("worker", workerID).Msg("Job worker error")
					break
				}
				if ctx.Err() != nil {
					return
				}
			}
		}
	}
}

// ErrNoJobsAvailable is returned when no jobs are available
var ErrNoJobsAvailable = errors.New("no jobs available")

// RunOnce processes a single due job, if any. It returns ErrNoJobsAvailable
// when the queue is empty.
func (w *Worker) RunOnce(ctx context.Context) error {
	return w.processNextJob(ctx, 0)
}

func (w *Worker) processNextJob(ctx context.Context, workerID int) error {
	job, err := w.queue.Dequeue(ctx, w.config.Queue)
	if err != nil {
		return err
	}
	if job == nil {
		return ErrNoJobsAvailable
	}

	logger := log.With().
		Int("worker", workerID).
		Str("job_id", job.ID.String()).
		Str("type", job.Type).
		Int("attempt", job.Attempts).
		Logger()

	w.mu.RLock()
	handler, exists := w.handlers[job.Type]
	w.mu.RUnlock()

	if !exists {
		logger.Error().Msg("No handler registered for job type")
		return w.queue.MarkFailed(ctx, job.ID, fmt.Errorf("no handler registered for job type: %s", job.Type))
	}

	jobCtx, cancel := context.WithTimeout(ctx, w.config.Timeout)
	defer cancel()

	start := time.Now()
	if err := handler.Handle(jobCtx, job); err != nil {
		logger.Warn().Err(err).Dur("duration", time.Since(start)).Msg("Job failed")
		if markErr := w.queue.MarkFailed(context.WithoutCancel(ctx), job.ID, err); markErr != nil {
			logger.Error().Err(markErr).Msg("Failed to mark job as failed")
		}
		return nil
	}

	logger.Info().Dur("duration", time.Since(start)).Msg("Job completed")
	if err := w.queue.MarkCompleted(context.WithoutCancel(ctx), job.ID); err != nil {
		logger.Error().Err(err).Msg("Failed to mark job as completed")
	}
	return nil
}
