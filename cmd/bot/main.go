package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/checkinhq/checkin-bot/internal/bot"
	"github.com/checkinhq/checkin-bot/internal/cache"
	"github.com/checkinhq/checkin-bot/internal/config"
	"github.com/checkinhq/checkin-bot/internal/database"
	"github.com/checkinhq/checkin-bot/internal/domain/service"
	"github.com/checkinhq/checkin-bot/internal/logger"
	"github.com/checkinhq/checkin-bot/migrator"
)

func main() {
	// A missing .env is fine, containers run from real env vars.
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.New(cfg.LogLevel)

	if cfg.BotToken == "" {
		log.Fatal().Msg("BOT_TOKEN is not set")
	}

	db, err := database.New(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	log.Info().Str("driver", cfg.DBDriver).Msg("running migrations")
	if err := migrator.Migrate(db.DB(), cfg.DBDriver); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	dm := database.NewInstance(db)

	store := cache.New(dm, log)
	if err := store.Preload(); err != nil {
		log.Warn().Err(err).Msg("failed to preload settings, loading lazily")
	}

	b, err := bot.New(cfg.BotToken, cfg.CommandPrefix, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create bot")
	}

	svc := service.New(store, dm, b.Messenger(), log)
	b.SetService(svc.Checkin)

	svc.Scheduler.Start()
	defer svc.Scheduler.Stop()

	if err := b.Start(); err != nil {
		log.Fatal().Err(err).Msg("failed to connect to discord")
	}
	defer b.Stop()

	log.Info().Str("prefix", cfg.CommandPrefix).Msg("check-in bot is running, press CTRL-C to exit")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info().Msg("shutting down")
}
