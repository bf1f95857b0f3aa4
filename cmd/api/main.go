package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sinfini-marketing/sinfini-web-be/internal/modules/cms/seed"
	"github.com/sinfini-marketing/sinfini-web-be/internal/server"
	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/config"
	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/database"
	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/utils"
)

const shutdownTimeout = 10 * time.Second

// @title Sinfini Web API
// @version 1.0
// @description Public site and admin CMS for Sinfini Marketing FZC: products, blog, gallery, contact form and the FAQ chatbot.
// @contact.name Sinfini Marketing FZC
// @contact.email info@sinfinimarketing.com
// @host localhost:5000
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting sinfini-web-be")

	db, err := database.NewDB(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect database")
	}
	defer db.Close()

	if err := db.AutoMigrate(server.Models()...); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	srv, err := server.New(cfg, db.GORM)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build server")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := seed.Run(ctx, db.GORM, srv.AuthService(), seed.Options{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		DemoData:      cfg.SeedDemoData,
	}); err != nil {
		log.Fatal().Err(err).Msg("failed to seed database")
	}

	if err := srv.Start(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to start background workers")
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Listen()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("server stopped")
		}
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
