package seed

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/auth"
	"github.com/sinfini-marketing/sinfini-web-be/internal/core/chatbot"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/models"
	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/database"
)

func TestRun_IsIdempotent(t *testing.T) {
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&auth.User{}, &models.Product{}, &models.BlogPost{}, &models.GalleryItem{}, &models.ChatbotSettings{}))

	authService := auth.NewService(db, "secret", 1)
	opts := Options{AdminUsername: "admin", AdminPassword: "s3cret", DemoData: true}
	ctx := context.Background()

	first, err := Run(ctx, db, authService, opts)
	require.NoError(t, err)
	assert.True(t, first.AdminCreated)
	assert.True(t, first.SettingsCreated)
	assert.Equal(t, len(demoProducts()), first.Products)
	assert.Equal(t, 3, first.BlogPosts)
	assert.Equal(t, 6, first.GalleryItems)

	second, err := Run(ctx, db, authService, opts)
	require.NoError(t, err)
	assert.Equal(t, &Result{}, second)

	var settings models.ChatbotSettings
	require.NoError(t, db.First(&settings, models.SettingsRowID).Error)
	assert.Equal(t, chatbot.DefaultGreeting, settings.Greeting)
	assert.Equal(t, chatbot.DefaultFAQs(), settings.FAQList())

	_, err = authService.Login(ctx, &auth.LoginRequest{Username: "admin", Password: "s3cret"})
	assert.NoError(t, err)
}

func TestRun_WithoutPasswordSkipsAdmin(t *testing.T) {
	db, err := database.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&auth.User{}, &models.ChatbotSettings{}))

	result, err := Run(context.Background(), db, auth.NewService(db, "secret", 1), Options{AdminUsername: "admin"})
	require.NoError(t, err)
	assert.False(t, result.AdminCreated)

	var users int64
	require.NoError(t, db.Model(&auth.User{}).Count(&users).Error)
	assert.Zero(t, users)
}
