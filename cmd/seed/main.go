package main

import (
	"context"
	"flag"

	"github.com/rs/zerolog/log"

	"github.com/sinfini-marketing/sinfini-web-be/internal/core/auth"
	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/seed"
	"github.com/sinfini-marketing/sinfini-web-be/internal/server"
	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/config"
	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/database"
	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/utils"
)

func main() {
	cfg := config.LoadConfig()
	demo := flag.Bool("demo", cfg.SeedDemoData, "Insert demo products, blog posts and gallery items into empty tables")
	flag.Parse()

	utils.InitLogger(cfg.Env)

	db, err := database.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	defer db.Close()

	if err := db.AutoMigrate(server.Models()...); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	authService := auth.NewService(db.GORM, cfg.JWTSecret, cfg.JWTExpiresHours)
	result, err := seed.Run(context.Background(), db.GORM, authService, seed.Options{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		DemoData:      *demo,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}

	log.Info().
		Bool("admin_created", result.AdminCreated).
		Bool("settings_created", result.SettingsCreated).
		Int("products", result.Products).
		Int("blog_posts", result.BlogPosts).
		Int("gallery_items", result.GalleryItems).
		Msg("seed completed")
}
