package jobs

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/database"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Job{}))
	return NewService(db)
}

func loadJob(t *testing.T, svc *Service, id uuid.UUID) *Job {
	t.Helper()
	var job Job
	require.NoError(t, svc.queue.db.First(&job, "id = ?", id).Error)
	return &job
}

type payload struct {
	To string `json:"to"`
}

func TestWorker_RunOnceCompletesJob(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	job, err := svc.EnqueueNotification(ctx, "greet", payload{To: "a@example.com"})
	require.NoError(t, err)

	var got payload
	worker := svc.RegisterWorker(WorkerConfig{Queue: QueueNotifications}, HandlerFunc{
		Type: "greet",
		Fn: func(ctx context.Context, job *Job) error {
			return DecodePayload(job, &got)
		},
	})

	require.NoError(t, worker.RunOnce(ctx))
	assert.Equal(t, "a@example.com", got.To)

	stored := loadJob(t, svc, job.ID)
	assert.Equal(t, StatusCompleted, stored.Status)
	assert.Equal(t, 1, stored.Attempts)
	assert.NotNil(t, stored.CompletedAt)

	assert.ErrorIs(t, worker.RunOnce(ctx), ErrNoJobsAvailable)
}

func TestWorker_FailureSchedulesRetryThenFails(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	now := time.Now()
	svc.queue.now = func() time.Time { return now }

	job, err := svc.Enqueue(ctx, "flaky", nil, EnqueueOptions{Queue: "q", MaxRetries: 2})
	require.NoError(t, err)

	calls := 0
	worker := svc.RegisterWorker(WorkerConfig{Queue: "q"}, HandlerFunc{
		Type: "flaky",
		Fn: func(context.Context, *Job) error {
			calls++
			return errors.New("smtp down")
		},
	})

	require.NoError(t, worker.RunOnce(ctx))
	stored := loadJob(t, svc, job.ID)
	assert.Equal(t, StatusRetrying, stored.Status)
	assert.Equal(t, "smtp down", stored.Error)

	// not due yet
	assert.ErrorIs(t, worker.RunOnce(ctx), ErrNoJobsAvailable)

	now = now.Add(time.Hour)
	require.NoError(t, worker.RunOnce(ctx))
	stored = loadJob(t, svc, job.ID)
	assert.Equal(t, StatusFailed, stored.Status)
	assert.Equal(t, 2, calls)
}

func TestWorker_UnknownTypeFails(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	job, err := svc.Enqueue(ctx, "mystery", nil, EnqueueOptions{Queue: "q", MaxRetries: 1})
	require.NoError(t, err)

	worker := svc.RegisterWorker(WorkerConfig{Queue: "q"})
	require.NoError(t, worker.RunOnce(ctx))

	assert.Equal(t, StatusFailed, loadJob(t, svc, job.ID).Status)
}

func TestQueue_RequeueStaleAndCleanup(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	q := svc.Queue()

	_, err := svc.Enqueue(ctx, "x", nil)
	require.NoError(t, err)
	claimed, err := q.Dequeue(ctx, "default")
	require.NoError(t, err)
	require.NotNil(t, claimed)

	n, err := q.RequeueStale(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	q.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	n, err = q.RequeueStale(ctx, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	again, err := q.Dequeue(ctx, "default")
	require.NoError(t, err)
	require.NotNil(t, again)
	assert.Equal(t, claimed.ID, again.ID)
	assert.Equal(t, 2, again.Attempts)

	require.NoError(t, q.MarkCompleted(ctx, again.ID))
	q.now = func() time.Time { return time.Now().Add(48 * time.Hour) }
	deleted, err := svc.Cleanup(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)
}

func TestService_RequeueStaleAfterQuickRestart(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	q := svc.Queue()
	now := time.Now()
	q.now = func() time.Time { return now }

	job, err := svc.EnqueueNotification(ctx, "notify", payload{To: "admin@example.com"})
	require.NoError(t, err)

	// the previous process claimed the job and died before finishing it
	claimed, err := q.Dequeue(ctx, QueueNotifications)
	require.NoError(t, err)
	require.NotNil(t, claimed)

	handled := false
	worker := svc.RegisterWorker(WorkerConfig{Queue: QueueNotifications, Timeout: 30 * time.Second}, HandlerFunc{
		Type: "notify",
		Fn: func(context.Context, *Job) error {
			handled = true
			return nil
		},
	})
	assert.Equal(t, time.Minute, svc.StaleAfter())

	// still within the worker timeout: may belong to a live worker
	n, err := svc.RequeueStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	now = now.Add(2 * time.Minute)
	n, err = svc.RequeueStale(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, worker.RunOnce(ctx))
	assert.True(t, handled)

	stored := loadJob(t, svc, job.ID)
	assert.Equal(t, StatusCompleted, stored.Status)
	assert.Equal(t, 2, stored.Attempts)
}

func TestService_StaleAfterDefaultsWithoutWorkers(t *testing.T) {
	svc := newTestService(t)
	assert.Equal(t, DefaultWorkerConfig().Timeout+staleMargin, svc.StaleAfter())
}

func TestCalculateBackoff(t *testing.T) {
	assert.Equal(t, 2, calculateBackoff(1))
	assert.Equal(t, 1024, calculateBackoff(10))
	assert.Equal(t, 3600, calculateBackoff(40))
}

func TestScheduler_AddReplaces(t *testing.T) {
	s := NewScheduler()
	noop := func(context.Context) error { return nil }

	require.NoError(t, s.Add("0 0 3 * * *", Task{Name: "audit", Run: noop}))
	require.NoError(t, s.Add("0 0 4 * * *", Task{Name: "audit", Run: noop}))
	require.NoError(t, s.Add("@every 1h", Task{Name: "chat", Run: noop}))
	assert.Equal(t, []string{"audit", "chat"}, s.Tasks())

	assert.Error(t, s.Add("not a cron", Task{Name: "bad", Run: noop}))
	assert.Equal(t, []string{"audit", "chat"}, s.Tasks())
}
