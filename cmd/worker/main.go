// The worker populates flights for pairs that have none and tails the
// audit topic. Generation runs once at startup and then on an interval;
// it is idempotent, so overlapping instances stay safe.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkolev/routecatalog/config"
	"github.com/mkolev/routecatalog/internal/auth"
	"github.com/mkolev/routecatalog/internal/kafka"
	"github.com/mkolev/routecatalog/internal/repository"
	"github.com/mkolev/routecatalog/internal/service/catalog"
	"github.com/mkolev/routecatalog/internal/store"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := store.Open(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer db.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	access := auth.NewAccess(db, auth.PlainVerifier{})
	service := catalog.NewService(
		repository.NewUserRepository(db, repository.ModeParameterized),
		repository.NewPairRepository(db, repository.ModeParameterized),
		repository.NewFlightRepository(db, repository.ModeParameterized),
		access, access,
		catalog.WithProducer(producer, cfg.Kafka.AuditTopic))

	go tailAuditEvents(ctx, cfg)

	generate(ctx, service)

	interval := time.Duration(cfg.Worker.GenerateIntervalMinutes) * time.Minute
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("worker stopped")
			return
		case <-ticker.C:
			generate(ctx, service)
		}
	}
}

func generate(ctx context.Context, service catalog.UseCase) {
	generated, err := service.Generate(ctx)
	if err != nil {
		log.Error().Err(err).Msg("flight generation failed")
		return
	}
	if generated > 0 {
		log.Info().Int("generated", generated).Msg("flights generated")
	}
}

func tailAuditEvents(ctx context.Context, cfg *config.Config) {
	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.AuditTopic)
	defer consumer.Close()

	for {
		event, err := consumer.ReadAuditEvent(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || ctx.Err() != nil {
				return
			}
			log.Warn().Err(err).Msg("failed to read audit event")
			continue
		}
		log.Info().
			Str("id", event.ID).
			Str("type", event.Type).
			Str("subject", event.Subject).
			Msg("audit event")
	}
}
