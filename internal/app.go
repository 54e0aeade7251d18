package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	logger_adapter "joytop-admin-service/internal/adapters/logger"
	"joytop-admin-service/internal/adapters/marketplace_api_client"
	postgres_adapter "joytop-admin-service/internal/adapters/postgres"
	rabbitmq_adapter "joytop-admin-service/internal/adapters/rabbitmq"
	"joytop-admin-service/internal/adapters/rest"
	"joytop-admin-service/internal/configs"
	"joytop-admin-service/internal/constants"
	"joytop-admin-service/internal/contextkeys"
	"joytop-admin-service/internal/contracts"
	"joytop-admin-service/internal/core/domain"
	"joytop-admin-service/internal/core/port"
	"joytop-admin-service/internal/core/usecase"
	"joytop-admin-service/schemas"

	fluentlogger "joytop-admin-service/pkg/fluent_logger"
	"joytop-admin-service/pkg/postgres"
	"joytop-admin-service/pkg/rabbitmq/rabbitmq_common"
	"joytop-admin-service/pkg/rabbitmq/rabbitmq_producer"

	"github.com/fluent/fluent-logger-golang/fluent"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// App – структура приложения
type App struct {
	config       *configs.AppConfig
	dbPool       *pgxpool.Pool
	apiServer    *rest.Server
	fluentClient *fluent.Fluent
	logger       port.LoggerPort
	baseLogger   port.LoggerPort

	viewRegistry   *usecase.ViewRegistry
	eventsProducer *rabbitmq_producer.Publisher
	connManager    *rabbitmq_common.ConnectionManager
}

// NewApp создает новый экземпляр приложения.
// Здесь все зависимости создаются и связываются.
func NewApp() (*App, error) {
	appConfig, err := configs.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("error loading application configuration: %w", err)
	}

	metricsRegistry := prometheus.NewRegistry()
	metricsRegistry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// --- 1. ИНИЦИАЛИЗАЦИЯ ЛОГГЕРОВ ---
	var activeLoggers []port.LoggerPort

	stdoutLogger := logger_adapter.NewSlogAdapter(logger_adapter.SlogConfig{
		Level:    logger_adapter.ParseLevel(appConfig.StdoutLogger.Level),
		IsJSON:   false,
		UseColor: true,
	})
	activeLoggers = append(activeLoggers, stdoutLogger)

	var fluentClient *fluent.Fluent
	if appConfig.FluentBit.Enabled {
		fluentClient, err = fluentlogger.NewClient(fluentlogger.Config{
			Host:      appConfig.FluentBit.Host,
			Port:      appConfig.FluentBit.Port,
			TagPrefix: appConfig.AppName,
			Async:     true,
		})
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit client", err, nil)
			return nil, fmt.Errorf("failed to create fluentbit client: %w", err)
		}

		fluentAdapter, err := logger_adapter.NewFluentLoggerAdapter(fluentClient, logger_adapter.ParseLevel(appConfig.FluentBit.Level))
		if err != nil {
			stdoutLogger.Error("Failed to create fluentbit adapter", err, nil)
			_ = fluentClient.Close()
			return nil, err
		}
		activeLoggers = append(activeLoggers, fluentAdapter)

		metricsRegistry.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "joytop_admin",
			Name:      "fluent_post_errors_total",
			Help:      "Log records that could not be delivered to Fluent Bit.",
		}, func() float64 { return float64(fluentAdapter.PostErrors()) }))
	}

	multiLogger, err := logger_adapter.NewMultiloggerAdapter(activeLoggers...)
	if err != nil {
		return nil, fmt.Errorf("failed to create multi-logger: %w", err)
	}

	// --- 2. БАЗОВЫЙ ЛОГГЕР ПРИЛОЖЕНИЯ ---
	baseLogger := multiLogger.WithFields(port.Fields{
		"service_name": appConfig.AppName,
	})

	appLogger := baseLogger.WithFields(port.Fields{"component": "app"})
	appLogger.Info("Logger system initialized", port.Fields{
		"active_loggers": len(activeLoggers), "fluent_enabled": appConfig.FluentBit.Enabled,
	})

	application := &App{
		config:       appConfig,
		fluentClient: fluentClient,
		logger:       appLogger,
		baseLogger:   baseLogger,
	}

	// --- 3. ИСХОДЯЩИЕ АДАПТЕРЫ ---
	apiClient, err := marketplace_api_client.NewClient(marketplace_api_client.Config{
		BaseURL:      appConfig.MarketplaceAPI.URL,
		APIPrefix:    appConfig.MarketplaceAPI.Prefix,
		DefaultLang:  appConfig.MarketplaceAPI.DefaultLang,
		Timeout:      appConfig.MarketplaceAPI.Timeout,
		RetryMax:     appConfig.MarketplaceAPI.RetryMax,
		RetryWaitMin: appConfig.MarketplaceAPI.RetryWaitMin,
		RetryWaitMax: appConfig.MarketplaceAPI.RetryWaitMax,
	}, marketplace_api_client.NewMetrics(metricsRegistry))
	if err != nil {
		appLogger.Error("Failed to create marketplace api client", err, nil)
		application.closeResources()
		return nil, fmt.Errorf("failed to create marketplace api client: %w", err)
	}
	appLogger.Info("Marketplace API client initialized.", port.Fields{"base_url": appConfig.MarketplaceAPI.URL})

	validator, err := contracts.NewPayloadValidator(schemas.SchemasFS)
	if err != nil {
		appLogger.Error("Failed to compile payload schemas", err, nil)
		application.closeResources()
		return nil, fmt.Errorf("failed to compile payload schemas: %w", err)
	}

	var sinks []port.MutationSinkPort

	if appConfig.RabbitMQ.Enabled {
		connManagerBridge := logger_adapter.NewAmqpLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_conn_manager"}))
		connManager, err := rabbitmq_common.NewConnectionManager(rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL}, connManagerBridge)
		if err != nil {
			appLogger.Error("Failed to create connection manager", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to create connection manager: %w", err)
		}
		application.connManager = connManager
		appLogger.Info("RabbitMQ Connection Manager initialized.", nil)

		producerCfg := rabbitmq_producer.PublisherConfig{
			Config:                   rabbitmq_common.Config{URL: appConfig.RabbitMQ.URL},
			ExchangeName:             constants.AdminExchangeName,
			ExchangeType:             constants.AdminExchangeType,
			DurableExchange:          true,
			DeclareExchangeIfMissing: true,

			Logger: logger_adapter.NewAmqpLoggerBridge(baseLogger.WithFields(port.Fields{"component": "rabbitmq_producer"})),
		}
		eventsProducer, err := rabbitmq_producer.NewPublisher(producerCfg, connManager)
		if err != nil {
			appLogger.Error("Failed to create event producer", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to create event producer: %w", err)
		}
		application.eventsProducer = eventsProducer

		eventsPublisher, err := rabbitmq_adapter.NewResourceEventsPublisher(eventsProducer)
		if err != nil {
			application.closeResources()
			return nil, err
		}
		sinks = append(sinks, eventsPublisher)
		appLogger.Info("RabbitMQ resource events publisher initialized.", nil)
	}

	var auditJournal port.AuditJournalPort
	if appConfig.Audit.Enabled {
		dbPool, err := postgres.NewClient(context.Background(), postgres.Config{DatabaseURL: appConfig.Audit.DatabaseURL})
		if err != nil {
			appLogger.Error("Failed to connect to PostgreSQL", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
		}
		application.dbPool = dbPool
		appLogger.Info("Successfully connected to PostgreSQL pool!", nil)

		journal, err := postgres_adapter.NewPostgresAuditJournal(dbPool)
		if err != nil {
			application.closeResources()
			return nil, fmt.Errorf("failed to create audit journal: %w", err)
		}
		schemaCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		err = journal.EnsureSchema(schemaCtx)
		cancel()
		if err != nil {
			appLogger.Error("Failed to prepare audit journal table", err, nil)
			application.closeResources()
			return nil, fmt.Errorf("failed to prepare audit journal table: %w", err)
		}
		auditJournal = journal
		sinks = append(sinks, journal)
		appLogger.Info("Postgres audit journal initialized.", nil)
	}

	// --- 4. USE CASES ---
	notifier := usecase.NewMutationNotifier(sinks...)
	catalog := usecase.NewResourceCatalog(appConfig.Views.DefaultPageSize, validator, notifier)
	registerResources(catalog, apiClient)
	appLogger.Info("Resource catalog initialized.", port.Fields{"resources": catalog.Resources()})

	viewRegistry := usecase.NewViewRegistry(catalog, appConfig.Views.IdleTTL)
	application.viewRegistry = viewRegistry
	metricsRegistry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: "joytop_admin",
		Name:      "mounted_views",
		Help:      "Number of list views currently mounted.",
	}, func() float64 { return float64(viewRegistry.Len()) }))

	getStatisticsUseCase := usecase.NewGetStatisticsUseCase(apiClient)
	listAuditRecordsUseCase := usecase.NewListAuditRecordsUseCase(auditJournal)

	// --- 5. REST API ---
	application.apiServer = rest.NewServer(rest.ServerConfig{
		Port:               appConfig.Rest.PORT,
		CORSAllowedOrigins: appConfig.Rest.CORSAllowedOrigins,
		DefaultLang:        appConfig.MarketplaceAPI.DefaultLang,
		Gatherer:           metricsRegistry,
	},
		rest.NewViewsHandler(viewRegistry),
		rest.NewDashboardHandler(getStatisticsUseCase, listAuditRecordsUseCase),
		baseLogger,
	)
	appLogger.Info("REST API server configured.", nil)

	return application, nil
}

// registerResources регистрирует все ресурсы маркетплейса, доступные панели
func registerResources(catalog *usecase.ResourceCatalog, client *marketplace_api_client.Client) {
	usecase.Register[domain.District](catalog, marketplace_api_client.NewResourceClient[domain.District](client, constants.ResourceDistricts))
	usecase.Register[domain.City](catalog, marketplace_api_client.NewResourceClient[domain.City](client, constants.ResourceCities))
	usecase.Register[domain.User](catalog, marketplace_api_client.NewResourceClient[domain.User](client, constants.ResourceUsers))
	usecase.Register[domain.Tariff](catalog, marketplace_api_client.NewResourceClient[domain.Tariff](client, constants.ResourceTariffs))
	usecase.Register[domain.Category](catalog, marketplace_api_client.NewResourceClient[domain.Category](client, constants.ResourceCategories))
	usecase.Register[domain.Banner](catalog, marketplace_api_client.NewResourceClient[domain.Banner](client, constants.ResourceBanners))
	usecase.Register[domain.StaticPage](catalog, marketplace_api_client.NewResourceClient[domain.StaticPage](client, constants.ResourcePages))
	usecase.Register[domain.Payment](catalog, marketplace_api_client.NewResourceClient[domain.Payment](client, constants.ResourcePayments))
	usecase.Register[domain.Property](catalog, marketplace_api_client.NewResourceClient[domain.Property](client, constants.ResourceProperties,
		marketplace_api_client.ExpandGeohashFilter))
}

// Run запускает все компоненты приложения и управляет их жизненным циклом.
func (a *App) Run() error {
	appCtx, cancelApp := context.WithCancel(context.Background())
	appCtx = contextkeys.ContextWithLogger(appCtx, a.baseLogger)

	var wg sync.WaitGroup

	defer func() {
		a.logger.Info("Shutdown sequence initiated...", nil)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if a.apiServer != nil {
			if err := a.apiServer.Stop(shutdownCtx); err != nil {
				a.logger.Error("Error during API server shutdown", err, nil)
			}
		}

		a.logger.Info("Waiting for background processes to finish...", nil)
		wg.Wait()
		a.logger.Info("All background processes finished.", nil)

		a.closeResources()
	}()

	a.logger.Info("Application is starting...", nil)

	errorsCh := make(chan error, 1)

	wg.Add(1)
	go func() {
		defer wg.Done()
		a.viewRegistry.Run(appCtx)
	}()

	go func() {
		a.logger.Info("Starting HTTP server...", port.Fields{"port": a.config.Rest.PORT})
		if err := a.apiServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errorsCh <- fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	a.logger.Info("Application running. Waiting for signals or server error...", nil)
	var runErr error
	select {
	case receivedSignal := <-quit:
		a.logger.Warn("Received OS signal, shutting down...", port.Fields{"signal": receivedSignal.String()})
	case err := <-errorsCh:
		a.logger.Error("A critical component failed, shutting down", err, nil)
		runErr = err
	}

	cancelApp()
	return runErr
}

// closeResources закрывает внешние подключения в обратном порядке создания
func (a *App) closeResources() {
	if a.eventsProducer != nil {
		if err := a.eventsProducer.Close(); err != nil {
			a.logger.Error("Error closing event producer", err, nil)
		}
	}
	if a.connManager != nil {
		if err := a.connManager.Close(); err != nil {
			a.logger.Error("Error closing RabbitMQ connection", err, nil)
		}
	}
	if a.dbPool != nil {
		a.dbPool.Close()
		a.logger.Info("PostgreSQL pool closed.", nil)
	}

	a.logger.Info("Application shut down gracefully.", nil)

	if a.fluentClient != nil {
		if err := a.fluentClient.Close(); err != nil {
			// fluent может быть уже недоступен
			fmt.Printf("ERROR: Error closing fluent client: %v\n", err)
		}
	}
}
