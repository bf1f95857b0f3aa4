// Package seed prepares a fresh database: the admin account, the default
// chatbot settings and optional demo content for the public site.
package seed

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/auth"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/models"
	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/utils"
)

// Options controls what Run seeds
type Options struct {
	AdminUsername string
	AdminPassword string
	DemoData      bool
}

// Result reports what Run created
type Result struct {
	AdminCreated    bool
	SettingsCreated bool
	Products        int
	BlogPosts       int
	GalleryItems    int
}

// Run seeds missing data. Existing rows are never modified, so it is safe to
// call on every start.
func Run(ctx context.Context, db *gorm.DB, authService *auth.Service, opts Options) (*Result, error) {
	result := &Result{}

	if opts.AdminPassword == "" {
		utils.LogWarn("ADMIN_PASSWORD not set, skipping admin account seeding", nil)
	} else {
		created, err := authService.EnsureAdmin(ctx, opts.AdminUsername, opts.AdminPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to seed admin user: %w", err)
		}
		result.AdminCreated = created
	}

	created, err := ensureChatbotSettings(ctx, db)
	if err != nil {
		return nil, err
	}
	result.SettingsCreated = created

	if opts.DemoData {
		if err := seedDemo(ctx, db, result); err != nil {
			return nil, err
		}
	}

	utils.LogInfo("Database seeded", map[string]interface{}{
		"admin_created":    result.AdminCreated,
		"settings_created": result.SettingsCreated,
		"products":         result.Products,
		"blog_posts":       result.BlogPosts,
		"gallery_items":    result.GalleryItems,
	})
	return result, nil
}

func ensureChatbotSettings(ctx context.Context, db *gorm.DB) (bool, error) {
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(models.DefaultChatbotSettings())
	if res.Error != nil {
		return false, fmt.Errorf("failed to seed chatbot settings: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// seedDemo fills each content table that is still empty
func seedDemo(ctx context.Context, db *gorm.DB, result *Result) error {
	tx := db.WithContext(ctx)

	if empty, err := isEmpty(tx, &models.Product{}); err != nil {
		return err
	} else if empty {
		products := demoProducts()
		if err := tx.Create(&products).Error; err != nil {
			return fmt.Errorf("failed to seed products: %w", err)
		}
		result.Products = len(products)
	}

	if empty, err := isEmpty(tx, &models.BlogPost{}); err != nil {
		return err
	} else if empty {
		posts := demoBlogPosts()
		if err := tx.Create(&posts).Error; err != nil {
			return fmt.Errorf("failed to seed blog posts: %w", err)
		}
		result.BlogPosts = len(posts)
	}

	if empty, err := isEmpty(tx, &models.GalleryItem{}); err != nil {
		return err
	} else if empty {
		items := demoGalleryItems()
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to seed gallery items: %w", err)
		}
		result.GalleryItems = len(items)
	}

	return nil
}

func isEmpty(db *gorm.DB, model interface{}) (bool, error) {
	var count int64
	if err := db.Model(model).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count %T: %w", model, err)
	}
	return count == 0, nil
}
