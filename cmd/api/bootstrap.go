package main

import (
	"context"
	"fmt"

	"fieldservice_quotes/internal/adapter/cache"
	"fieldservice_quotes/internal/adapter/events"
	"fieldservice_quotes/internal/adapter/http/handlers"
	"fieldservice_quotes/internal/adapter/http/routes"
	"fieldservice_quotes/internal/adapter/http/validation"
	"fieldservice_quotes/internal/adapter/persistence/repository"
	"fieldservice_quotes/internal/config"
	"fieldservice_quotes/internal/infrastructure/database"
	"fieldservice_quotes/internal/infrastructure/metrics"
	"fieldservice_quotes/internal/infrastructure/payments"
	"fieldservice_quotes/internal/usecase"
	"fieldservice_quotes/internal/usecase/interfaces"
	"fieldservice_quotes/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

type application struct {
	handlers     routes.Handlers
	routeOptions routes.Options
	closers      []func() error
	log          *logger.Logger
}

// Close releases database and cache connections in reverse order of opening.
// It is safe to call more than once.
func (a *application) Close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.log.Error(ctx, "error closing resource", err)
		}
	}
	a.closers = nil
}

func bootstrap(ctx context.Context, cfg *config.Config, logg *logger.Logger) (*application, error) {
	app := &application{log: logg}

	quoteRepo, paymentRepo, err := newRepositories(ctx, cfg)
	if err != nil {
		return nil, err
	}

	catalog, err := app.newCatalog(ctx, cfg, logg)
	if err != nil {
		app.Close(ctx)
		return nil, err
	}

	policy, err := usecase.StatusPolicyByName(cfg.Quotes.StatusPolicy)
	if err != nil {
		app.Close(ctx)
		return nil, err
	}

	publisher, err := newEventPublisher(ctx, cfg, logg)
	if err != nil {
		app.Close(ctx)
		return nil, err
	}

	var gateway interfaces.IPaymentGateway
	if gw, err := payments.NewMercadoPagoGateway(cfg.MercadoPago, logg); err != nil {
		logg.Warn(ctx, "payment gateway not configured; payments are disabled", err)
	} else {
		gateway = gw
	}

	itemUseCase := usecase.NewLineItemUseCase(quoteRepo, catalog, logg)
	quoteUseCase := usecase.NewQuoteUseCase(quoteRepo, catalog, itemUseCase, policy, publisher, logg)
	paymentUseCase := usecase.NewQuotePaymentUseCase(paymentRepo, quoteRepo, gateway, usecase.PaymentOptions{
		MockMode:       cfg.MercadoPago.Mock,
		TestPayerEmail: cfg.MercadoPago.TestPayerEmail,
	}, logg)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	v := validation.New()
	app.handlers = routes.Handlers{
		Quotes:    handlers.NewQuoteHandler(quoteUseCase, v, logg),
		LineItems: handlers.NewLineItemHandler(itemUseCase, logg),
		Payments:  handlers.NewQuotePaymentHandler(paymentUseCase, cfg.MercadoPago.Mock, logg),
	}
	app.routeOptions = routes.Options{
		Log:      logg,
		Metrics:  metrics.NewHTTPMetrics(registry),
		Gatherer: registry,
	}
	return app, nil
}

func newRepositories(ctx context.Context, cfg *config.Config) (interfaces.IQuoteRepository, interfaces.IQuotePaymentRepository, error) {
	if cfg.Quotes.Storage == config.StorageMemory {
		return repository.NewQuoteMemoryRepository(), repository.NewQuotePaymentMemoryRepository(), nil
	}

	ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
	if err != nil {
		return nil, nil, err
	}
	return repository.NewQuoteDynamoRepository(ddb, cfg.DynamoDB.QuotesTable),
		repository.NewQuotePaymentDynamoRepository(ddb, cfg.DynamoDB.PaymentsTable),
		nil
}

func (a *application) newCatalog(ctx context.Context, cfg *config.Config, logg *logger.Logger) (interfaces.ICatalog, error) {
	db, err := database.OpenCatalog(ctx, cfg.Catalog, logg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("catalog connection pool: %w", err)
	}
	a.closers = append(a.closers, sqlDB.Close)

	var catalog interfaces.ICatalog = repository.NewCatalogGormRepository(db)
	if !cfg.Redis.Enabled() {
		return catalog, nil
	}

	client, err := cache.Connect(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, client.Close)
	logg.Info(logg.WithField(ctx, "ttl", cfg.Redis.CacheTTL.String()), "catalog cache enabled")
	return cache.NewCatalogCache(catalog, client, cfg.Redis.CacheTTL, logg), nil
}

// newEventPublisher returns nil when no queue is configured; quote changes are
// then not announced.
func newEventPublisher(ctx context.Context, cfg *config.Config, logg *logger.Logger) (interfaces.IQuoteEventPublisher, error) {
	if cfg.Events.QueueURL == "" {
		logg.Info(ctx, "quote events disabled")
		return nil, nil
	}
	awsCfg, err := database.NewAWSConfig(ctx, cfg.DynamoDB)
	if err != nil {
		return nil, fmt.Errorf("failed to create sqs config: %w", err)
	}
	return events.NewSQSPublisher(sqs.NewFromConfig(awsCfg), cfg.Events.QueueURL), nil
}
