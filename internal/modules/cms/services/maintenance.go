package services

import (
	"context"
	"time"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/audit"
	"github.com/sinfini-marketing/sinfini-web-be/internal/core/jobs"
	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/utils"
)

// finished background jobs are kept this long
const jobRetention = 7 * 24 * time.Hour

// staleJobSweep is independent of MAINTENANCE_CRON
const staleJobSweep = "@every 1m"

// RetentionPolicy is how long each kind of record is kept
type RetentionPolicy struct {
	AuditDays   int
	ChatLogDays int
}

// RegisterMaintenance schedules the retention tasks on schedule and the
// stale job sweep every minute
func RegisterMaintenance(scheduler *jobs.Scheduler, schedule string, policy RetentionPolicy, auditService *audit.Service, chatbotService *ChatbotService, jobService *jobs.Service) error {
	for _, task := range retentionTasks(policy, auditService, chatbotService, jobService) {
		if err := scheduler.Add(schedule, task); err != nil {
			return err
		}
	}
	return scheduler.Add(staleJobSweep, requeueTask(jobService))
}

func retentionTasks(policy RetentionPolicy, auditService *audit.Service, chatbotService *ChatbotService, jobService *jobs.Service) []jobs.Task {
	return []jobs.Task{
		{
			Name: "purge_audit_logs",
			Run: func(ctx context.Context) error {
				n, err := auditService.DeleteOldLogs(ctx, policy.AuditDays)
				logPurge("audit_logs", n, err)
				return err
			},
		},
		{
			Name: "purge_chat_logs",
			Run: func(ctx context.Context) error {
				n, err := chatbotService.PurgeLogs(ctx, policy.ChatLogDays)
				logPurge("chat_logs", n, err)
				return err
			},
		},
		{
			Name: "purge_jobs",
			Run: func(ctx context.Context) error {
				n, err := jobService.Cleanup(ctx, jobRetention)
				logPurge("jobs", n, err)
				return err
			},
		},
	}
}

func requeueTask(jobService *jobs.Service) jobs.Task {
	return jobs.Task{
		Name: "requeue_stale_jobs",
		Run: func(ctx context.Context) error {
			n, err := jobService.RequeueStale(ctx)
			if err == nil && n > 0 {
				utils.LogWarn("Requeued orphaned jobs", map[string]interface{}{"count": n})
			}
			return err
		},
	}
}

func logPurge(table string, deleted int64, err error) {
	if err != nil {
		return
	}
	utils.LogInfo("Retention purge", map[string]interface{}{
		"table":   table,
		"deleted": deleted,
	})
}
