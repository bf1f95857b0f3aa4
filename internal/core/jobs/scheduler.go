package jobs

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// Task is a named piece of periodic maintenance
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Scheduler runs tasks on cron expressions with a seconds field,
// e.g. "0 0 3 * * *" for 03:00 every day.
type Scheduler struct {
	cron    *cron.Cron
	timeout time.Duration
	tasks   map[string]cron.EntryID
	mu      sync.RWMutex
}

// NewScheduler creates a new scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithSeconds()),
		timeout: 5 * time.Minute,
		tasks:   make(map[string]cron.EntryID),
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	s.cron.Start()
	log.Info().Strs("tasks", s.Tasks()).Msg("Maintenance scheduler started")
}

// Stop stops the scheduler and waits for running tasks
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info().Msg("Maintenance scheduler stopped")
}

// Add schedules a task, replacing any task with the same name
func (s *Scheduler) Add(schedule string, task Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entryID, exists := s.tasks[task.Name]; exists {
		s.cron.Remove(entryID)
		delete(s.tasks, task.Name)
	}

	entryID, err := s.cron.AddFunc(schedule, func() { s.run(task) })
	if err != nil {
		return fmt.Errorf("failed to schedule %s: %w", task.Name, err)
	}

	s.tasks[task.Name] = entryID
	log.Debug().Str("task", task.Name).Str("schedule", schedule).Msg("Scheduled task")
	return nil
}

// Tasks returns the scheduled task names, sorted
func (s *Scheduler) Tasks() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.tasks))
	for name := range s.tasks {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Scheduler) run(task Task) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	start := time.Now()
	if err := task.Run(ctx); err != nil {
		log.Error().Err(err).Str("task", task.Name).Msg("Scheduled task failed")
		return
	}
	log.Info().Str("task", task.Name).Dur("duration", time.Since(start)).Msg("Scheduled task finished")
}
