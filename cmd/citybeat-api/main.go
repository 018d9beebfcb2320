// @title CityBeat API
// @version 1.0
// @description Local event discovery backend: catalog queries over an immutable, enriched event catalog and a durable per-user interaction store.
package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"

	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus"

	"citybeat/config"
	_ "citybeat/docs"
	"citybeat/internal/adapters/contact"
	"citybeat/internal/catalog"
	delivery "citybeat/internal/delivery/http"
	"citybeat/internal/delivery/http/controllers"
	"citybeat/internal/delivery/http/middleware"
	"citybeat/internal/domain"
	"citybeat/internal/metrics"
	"citybeat/internal/repository/jsonfile"
	"citybeat/internal/repository/postgres"
	"citybeat/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()
	m := metrics.New(prometheus.DefaultRegisterer)

	// Catalog: loaded once, enriched, immutable afterwards. A load
	// failure leaves it empty; the server keeps serving.
	catalogStore := jsonfile.NewCatalogStore(cfg.EventsFile)
	events, err := catalogStore.Load()
	if err != nil {
		logger.Error("catalog load failed, serving empty catalog", "err", err)
		events = nil
	}
	if catalog.Enrich(events) {
		if err := catalogStore.Save(events); err != nil {
			logger.Warn("failed to persist enriched catalog", "err", err)
		}
	}
	cat := catalog.New(events)
	m.CatalogEvents.Set(float64(len(events)))
	logger.Info("catalog ready", "events", len(events))

	// User store: whole-document persistence, file by default.
	var persister domain.StorePersister
	switch cfg.StoreBackend {
	case "postgres":
		db, err := sql.Open("postgres", cfg.DBUrl)
		if err != nil {
			logger.Error("open database", "err", err)
			os.Exit(1)
		}
		if err := postgres.EnsureSchema(context.Background(), db); err != nil {
			logger.Error("ensure store schema", "err", err)
			os.Exit(1)
		}
		persister = postgres.NewStorePersister(db)
	default:
		persister = jsonfile.NewUserStore(cfg.UsersFile)
	}
	users, err := persister.Load()
	if err != nil {
		logger.Error("user store load failed, starting empty", "err", err)
		users = nil
	}
	userSvc := services.NewUserService(users, cat, persister, logger, m)

	sender := contact.NewSender(contact.SenderConfig{
		Provider:    cfg.ContactProvider,
		LogFile:     cfg.ContactLogFile,
		ToAddress:   cfg.ContactTo,
		FromAddress: cfg.ContactFrom,
		SES: contact.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretAccessKey,
		},
	})
	contactSvc := services.NewContactService(sender, logger, m)

	router := delivery.NewRouter(
		controllers.NewEventsController(logger, cat),
		controllers.NewUserController(logger, userSvc),
		controllers.NewContactController(logger, contactSvc),
	)
	handler := middleware.CORS(middleware.LoggingMiddleware(logger, router))

	logger.Info("listening", "port", cfg.Port, "env", cfg.Environment)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		logger.Error("server stopped", "err", err)
		os.Exit(1)
	}
}
