package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/niksmo/office-catalog/config"
	"github.com/niksmo/office-catalog/internal/adapter"
	"github.com/niksmo/office-catalog/internal/adapter/kafka"
	"github.com/niksmo/office-catalog/internal/adapter/storage"
	"github.com/niksmo/office-catalog/pkg/schema"
	"github.com/niksmo/office-catalog/pkg/sigctx"
	"github.com/twmb/franz-go/pkg/sr"
)

func main() {
	sigCtx, stop := sigctx.NotifyContext(context.Background())
	defer stop()

	cfg := config.Load()
	initLogger(cfg.LogLevel)

	if !cfg.EventsEnabled() {
		die("main", errors.New("broker.seed_brokers: required"))
	}

	serde := createSerde(sigCtx, cfg)
	consumer := createConsumer(cfg, serde, createJournal(cfg.EventLogFile))

	slog.Info("event log is running",
		"topic", cfg.Broker.Topics.CatalogEvents,
		"group", cfg.Broker.Consumers.EventLogGroup,
	)

	consumer.Run(sigCtx)

	slog.Info("event log is closing...")
	consumer.Close()
	slog.Info("event log is closed")
}

func initLogger(level slog.Leveler) {
	opts := &slog.HandlerOptions{Level: level}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func createSerde(ctx context.Context, cfg config.Config) schema.Serde {
	const op = "main.createSerde"

	cl, err := sr.NewClient(sr.URLs(cfg.Broker.SchemaRegistryURLs...))
	if err != nil {
		die(op, err)
	}

	serde, err := schema.NewSerdeCatalogEventV1(
		ctx,
		schema.SubjectOpt(cfg.Broker.Topics.CatalogEvents+"-value"),
		schema.SchemaIdentifierOpt(schema.NewRegistryIdentifier(cl)),
	)
	if err != nil {
		die(op, err)
	}
	return serde
}

func createJournal(path string) *storage.EventsJournal {
	if path == "" {
		return storage.NewEventsJournal(os.Stdout)
	}
	return storage.NewFileEventsJournal(path)
}

func createConsumer(
	cfg config.Config, decoder kafka.Decoder, journal *storage.EventsJournal,
) *kafka.EventsConsumer {
	const op = "main.createConsumer"

	tlsConfig, err := adapter.MakeTLSConfig(
		cfg.Broker.TLS.CA, cfg.Broker.TLS.Cert, cfg.Broker.TLS.Key,
	)
	if err != nil {
		die(op, err)
	}

	c, err := kafka.NewEventsConsumer(
		kafka.ConsumerClientOpt(
			cfg.Broker.SeedBrokers,
			cfg.Broker.Topics.CatalogEvents,
			cfg.Broker.Consumers.EventLogGroup,
			tlsConfig,
		),
		kafka.ConsumerDecoderOpt(decoder),
		kafka.ConsumerEventsHandlerOpt(journal),
	)
	if err != nil {
		die(op, err)
	}
	return c
}

func die(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
