package main

import (
	"errors"
	"flag"
	"strconv"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/rs/zerolog/log"

	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/config"
	"github.com/sinfini-marketing/sinfini-web-be/internal/shared/utils"
	"github.com/sinfini-marketing/sinfini-web-be/migrations"
)

func main() {
	var command string
	flag.StringVar(&command, "cmd", "up", "Migration command (up, down, version, force)")
	flag.Parse()

	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)

	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is not set; the SQLite fallback is migrated automatically by the api")
	}
	log.Info().Str("database", maskDatabaseURL(cfg.DatabaseURL)).Str("cmd", command).Msg("running migrations")

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open embedded migrations")
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create migrate instance")
	}
	defer m.Close()

	switch command {
	case "up":
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("migration up failed")
		}
		log.Info().Msg("migrations up completed")

	case "down":
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			log.Fatal().Err(err).Msg("migration down failed")
		}
		log.Info().Msg("migrations down completed")

	case "version":
		version, dirty, err := m.Version()
		if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
			log.Fatal().Err(err).Msg("failed to get version")
		}
		log.Info().Uint("version", version).Bool("dirty", dirty).Msg("current version")

	case "force":
		if flag.NArg() < 1 {
			log.Fatal().Msg("force requires a version number")
		}
		v, err := strconv.Atoi(flag.Arg(0))
		if err != nil {
			log.Fatal().Err(err).Str("arg", flag.Arg(0)).Msg("invalid version")
		}
		if err := m.Force(v); err != nil {
			log.Fatal().Err(err).Msg("force failed")
		}
		log.Info().Int("version", v).Msg("forced version")

	default:
		log.Fatal().Str("cmd", command).Msg("unknown command (use: up, down, version, force)")
	}
}

// maskDatabaseURL hides the password in a database URL for logging
func maskDatabaseURL(url string) string {
	if len(url) < 20 {
		return "***"
	}
	return url[:20] + "***" + url[len(url)-10:]
}
