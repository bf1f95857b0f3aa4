package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/database"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&AuditLog{}))
	return NewService(db), db
}

func TestService_LogChangeStoresValues(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	actor := Actor{Username: "admin", IPAddress: "10.0.0.1", Method: "PUT", Endpoint: "/api/products/1"}

	err := svc.LogChange(ctx, actor, ActionUpdate, "product", "1",
		map[string]string{"name": "Old"}, map[string]string{"name": "New"})
	require.NoError(t, err)

	history, err := svc.GetEntityHistory(ctx, "product", "1")
	require.NoError(t, err)
	require.Len(t, history, 1)

	entry := history[0]
	assert.Equal(t, "admin", entry.Actor)
	assert.Equal(t, ActionUpdate, entry.Action)
	assert.Equal(t, "10.0.0.1", entry.IPAddress)

	var newValue map[string]string
	require.NoError(t, json.Unmarshal(entry.NewValue, &newValue))
	assert.Equal(t, "New", newValue["name"])
}

func TestService_GetLogsFiltersAndPaginates(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	actor := Actor{Username: "admin"}

	for i := 0; i < 5; i++ {
		svc.Record(ctx, actor, ActionCreate, "product", fmt.Sprint(i), nil, map[string]int{"i": i})
	}
	svc.Record(ctx, actor, ActionDelete, "blog_post", "9", nil, nil)

	resp, err := svc.GetLogs(ctx, AuditFilter{Entity: "product", Page: 1, PageSize: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.TotalCount)
	assert.Len(t, resp.Logs, 2)
	assert.Equal(t, 3, resp.TotalPages)

	resp, err = svc.GetLogs(ctx, AuditFilter{Action: ActionDelete})
	require.NoError(t, err)
	require.Len(t, resp.Logs, 1)
	assert.Equal(t, "blog_post", resp.Logs[0].Entity)
	assert.Equal(t, 50, resp.PageSize)
}

func TestService_DeleteOldLogs(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	old := &AuditLog{Actor: "admin", Action: ActionLogin, Entity: "session", CreatedAt: time.Now().AddDate(0, 0, -120)}
	recent := &AuditLog{Actor: "admin", Action: ActionLogin, Entity: "session"}
	require.NoError(t, svc.Log(ctx, old))
	require.NoError(t, svc.Log(ctx, recent))

	deleted, err := svc.DeleteOldLogs(ctx, 90)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var count int64
	require.NoError(t, db.Model(&AuditLog{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	_, err = svc.DeleteOldLogs(ctx, 0)
	assert.Error(t, err)
}

func TestService_RecordOnNilServiceIsNoop(t *testing.T) {
	var svc *Service
	assert.NotPanics(t, func() {
		svc.Record(context.Background(), Actor{}, ActionCreate, "product", "1", nil, nil)
	})
}
