package main

import (
	"context"
	"database/sql"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mkolev/routecatalog/config"
	"github.com/mkolev/routecatalog/internal/auth"
	"github.com/mkolev/routecatalog/internal/bootstrap"
	"github.com/mkolev/routecatalog/internal/cache"
	"github.com/mkolev/routecatalog/internal/kafka"
	"github.com/mkolev/routecatalog/internal/migrations"
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

	migrationDB, err := sql.Open("pgx", cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("open migration connection")
	}
	if err := migrations.Apply(ctx, migrationDB); err != nil {
		log.Fatal().Err(err).Msg("apply migrations")
	}
	migrationDB.Close()

	db, err := store.Open(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("connect postgres")
	}
	defer db.Close()

	verifier, err := auth.VerifierFor(cfg.Auth.Scheme)
	if err != nil {
		log.Fatal().Err(err).Msg("configure auth")
	}
	access := auth.NewAccess(db, verifier)

	flightsCache := cache.NewRedisCache(cfg.Redis)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	opts := []catalog.ServiceOption{
		catalog.WithCache(flightsCache),
		catalog.WithProducer(producer, cfg.Kafka.AuditTopic),
	}
	if cfg.Flags.DebugExposePasswords {
		opts = append(opts, catalog.WithExposedPasswords())
	}

	safe := catalog.NewService(
		repository.NewUserRepository(db, repository.ModeParameterized),
		repository.NewPairRepository(db, repository.ModeParameterized),
		repository.NewFlightRepository(db, repository.ModeParameterized),
		access, access, opts...)
	unsafe := catalog.NewService(
		repository.NewUserRepository(db, repository.ModeConcatenated),
		repository.NewPairRepository(db, repository.ModeConcatenated),
		repository.NewFlightRepository(db, repository.ModeConcatenated),
		access, access, opts...)

	if err := bootstrap.Run(ctx, cfg, safe, unsafe); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}
