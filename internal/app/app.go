package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/niksmo/office-catalog/config"
	"github.com/niksmo/office-catalog/internal/adapter"
	"github.com/niksmo/office-catalog/internal/adapter/httphandler"
	"github.com/niksmo/office-catalog/internal/adapter/kafka"
	"github.com/niksmo/office-catalog/internal/adapter/storage"
	"github.com/niksmo/office-catalog/internal/core/port"
	"github.com/niksmo/office-catalog/internal/core/service"
	"github.com/niksmo/office-catalog/pkg/schema"
	"github.com/twmb/franz-go/pkg/sr"
)

type outbound struct {
	sqlDB          *storage.SQLDB
	productsReader port.ProductsReader
	eventsProducer *kafka.EventsProducer
}

type App struct {
	ctx        context.Context
	cfg        config.Config
	serde      schema.Serde
	outbound   outbound
	service    *service.Service
	httpServer httphandler.HTTPServer
}

func New(ctx context.Context, cfg config.Config) *App {
	app := &App{ctx: ctx, cfg: cfg}

	app.initLogger()
	app.initSerde()
	app.initOutboundAdapters()
	app.initCoreService()
	app.initInboundAdapters()

	return app
}

func (app *App) initLogger() {
	opts := &slog.HandlerOptions{Level: app.cfg.LogLevel}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, opts))
	slog.SetDefault(logger)
}

func (app *App) initSerde() {
	const op = "App.initSerde"
	log := slog.With("op", op)

	if !app.cfg.EventsEnabled() {
		log.Info("no seed brokers, catalog events are disabled")
		return
	}

	srClient, err := sr.NewClient(sr.URLs(app.cfg.Broker.SchemaRegistryURLs...))
	if err != nil {
		app.fallDown(op, err)
	}

	subject := app.cfg.Broker.Topics.CatalogEvents + "-value"
	serde, err := schema.NewSerdeCatalogEventV1(
		app.ctx,
		schema.SubjectOpt(subject),
		schema.SchemaIdentifierOpt(schema.NewRegistryIdentifier(srClient)),
	)
	if err != nil {
		app.fallDown(op, err)
	}

	app.serde = serde
}

func (app *App) initOutboundAdapters() {
	const op = "App.initOutboundAdapters"

	if app.cfg.SQLDB != "" {
		sqlDB, err := storage.NewSQLDB(app.ctx, app.cfg.SQLDB)
		if err != nil {
			app.fallDown(op, err)
		}
		app.outbound.sqlDB = &sqlDB
		app.outbound.productsReader = storage.NewProductsRepository(sqlDB)
	} else {
		app.outbound.productsReader = storage.DefaultProducts{}
	}

	if app.serde == nil {
		return
	}

	tlsConfig, err := adapter.MakeTLSConfig(
		app.cfg.Broker.TLS.CA, app.cfg.Broker.TLS.Cert, app.cfg.Broker.TLS.Key,
	)
	if err != nil {
		app.fallDown(op, err)
	}

	eventsProducer, err := kafka.NewEventsProducer(
		kafka.ProducerClientOpt(
			app.ctx,
			app.cfg.Broker.SeedBrokers,
			app.cfg.Broker.Topics.CatalogEvents,
			tlsConfig,
		),
		kafka.ProducerEncoderOpt(app.serde),
	)
	if err != nil {
		app.fallDown(op, err)
	}
	app.outbound.eventsProducer = &eventsProducer
}

func (app *App) initCoreService() {
	const op = "App.initCoreService"

	var eventsProducer port.EventsProducer
	if app.outbound.eventsProducer != nil {
		eventsProducer = app.outbound.eventsProducer
	}

	s, err := service.Load(app.ctx, app.outbound.productsReader, eventsProducer)
	if err != nil {
		app.fallDown(op, err)
	}
	app.service = s
}

func (app *App) initInboundAdapters() {
	mux := http.NewServeMux()
	httphandler.RegisterCatalog(mux, app.service)
	httphandler.RegisterFavorites(mux, app.service)
	httphandler.RegisterCart(mux, app.service)
	httphandler.RegisterView(mux, app.service)

	app.httpServer = httphandler.NewHTTPServer(app.cfg.HTTPServerAddr, mux)
}

func (app *App) Run(stopFn context.CancelFunc) {
	go app.httpServer.Run(stopFn)

	slog.Info("application is running")
}

func (app *App) Close(ctx context.Context) {
	slog.Info("application is closing...")

	app.httpServer.Close(ctx)
	if app.outbound.eventsProducer != nil {
		app.outbound.eventsProducer.Close()
	}
	if app.outbound.sqlDB != nil {
		app.outbound.sqlDB.Close()
	}

	slog.Info("application is closed")
}

func (app *App) fallDown(op string, err error) {
	panic(fmt.Errorf("%s: %w", op, err))
}
