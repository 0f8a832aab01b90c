package routes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cotizador_seguros/internal/adapter/http/handlers"
	"cotizador_seguros/internal/adapter/persistence/repository"
	"cotizador_seguros/internal/infrastructure/config"
	"cotizador_seguros/internal/infrastructure/database"
	"cotizador_seguros/internal/infrastructure/metrics"
	"cotizador_seguros/internal/infrastructure/notification"
	"cotizador_seguros/internal/infrastructure/pricing"
	"cotizador_seguros/internal/infrastructure/scheduler"
	"cotizador_seguros/internal/usecase"
	"cotizador_seguros/internal/usecase/interfaces"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const sweepJobTimeout = 30 * time.Second

type repositories struct {
	customers     interfaces.ICustomerRepository
	vehicles      interfaces.IVehicleRepository
	conversations interfaces.IConversationRepository
	quotes        interfaces.IQuoteRepository
}

type eventHub interface {
	interfaces.IEventPublisher
	interfaces.IEventSubscriber
	Close() error
}

// application holds every long-lived component of the process.
type application struct {
	cfg     *config.Config
	logger  *zap.Logger
	db      *gorm.DB
	repos   repositories
	hub     eventHub
	metrics *metrics.Metrics
	worker  *usecase.QuoteWorker
	cron    *scheduler.Scheduler

	toolsHandler    *handlers.ToolsHandler
	quoteHandler    *handlers.QuoteHandler
	customerHandler *handlers.CustomerHandler
	eventsHandler   *handlers.EventsHandler
}

func newApplication(ctx context.Context, cfg *config.Config, log *zap.Logger) (*application, error) {
	app := &application{cfg: cfg, logger: log, metrics: metrics.New()}

	if err := app.openStorage(ctx); err != nil {
		return nil, err
	}
	if err := app.openHub(ctx); err != nil {
		app.close(ctx)
		return nil, err
	}

	simulator := pricing.NewSimulator(log,
		pricing.WithLatency(cfg.Quote.SimulatorLatency),
		pricing.WithFailureRate(cfg.Quote.SimulatorFailure),
	)
	notifier := usecase.NewQuoteNotifier(app.repos.quotes, app.repos.conversations, app.hub, cfg.Notification.ChannelPrefix, log)
	app.worker = usecase.NewQuoteWorker(app.repos.quotes, simulator, notifier, usecase.QuoteWorkerConfig{
		Policy: usecase.RetryPolicy{
			MaxAttempts: cfg.Quote.MaxAttempts,
			Backoff:     cfg.Quote.BackoffSchedule(),
		},
		Expiry:    cfg.Quote.Expiry,
		Workers:   cfg.Quote.Workers,
		QueueSize: cfg.Quote.QueueSize,
	}, log, usecase.WithWorkerMetrics(app.metrics))

	conversations := usecase.NewConversationRegistry(app.repos.conversations, log)
	customers := usecase.NewCustomerResolver(app.repos.customers, app.repos.vehicles, log)
	vehicles := usecase.NewVehicleResolver(app.repos.vehicles, log)
	quotes := usecase.NewQuoteUseCase(app.repos.quotes, app.repos.conversations, app.worker, app.metrics, log)
	tools := usecase.NewAgentToolUseCase(conversations, customers, vehicles, quotes, log)
	profiles := usecase.NewCustomerUseCase(customers, vehicles, conversations)

	app.toolsHandler = handlers.NewToolsHandler(tools, app.metrics, log)
	app.quoteHandler = handlers.NewQuoteHandler(quotes)
	app.customerHandler = handlers.NewCustomerHandler(profiles)
	app.eventsHandler = handlers.NewEventsHandler(app.hub, cfg.Notification.ChannelPrefix, log)

	if cfg.Quote.SweepSchedule != "" {
		sweeper := usecase.NewQuoteSweeper(app.repos.quotes, app.worker, cfg.Quote.StaleAfter, log)
		app.cron = scheduler.New(log, sweepJobTimeout)
		err := app.cron.Add("quote-sweeper", cfg.Quote.SweepSchedule, func(ctx context.Context) error {
			_, err := sweeper.Sweep(ctx)
			return err
		})
		if err != nil {
			app.close(ctx)
			return nil, err
		}
	}

	return app, nil
}

func (a *application) openStorage(ctx context.Context) error {
	switch a.cfg.Storage.Driver {
	case config.StoragePostgres, config.StorageSQLite:
		db, err := database.OpenGorm(a.cfg.Storage.Driver, a.cfg.Database, a.logger)
		if err != nil {
			return err
		}
		if a.cfg.Database.AutoMigrate {
			if err := database.Migrate(db); err != nil {
				_ = database.Close(db)
				return err
			}
		}
		a.db = db
		a.repos = repositories{
			customers:     repository.NewCustomerGormRepository(db),
			vehicles:      repository.NewVehicleGormRepository(db),
			conversations: repository.NewConversationGormRepository(db),
			quotes:        repository.NewQuoteGormRepository(db),
		}
	case config.StorageDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, a.cfg.DynamoDB)
		if err != nil {
			return err
		}
		tables := dynamoTables(a.cfg.DynamoDB)
		// local endpoints (dynamodb-local, localstack) start empty
		if a.cfg.DynamoDB.Endpoint != "" {
			if err := repository.EnsureDynamoTables(ctx, ddb, tables); err != nil {
				return err
			}
		}
		a.repos = repositories{
			customers:     repository.NewCustomerDynamoRepository(ddb, tables),
			vehicles:      repository.NewVehicleDynamoRepository(ddb, tables),
			conversations: repository.NewConversationDynamoRepository(ddb, tables),
			quotes:        repository.NewQuoteDynamoRepository(ddb, tables),
		}
	default:
		return fmt.Errorf("unsupported storage driver %q", a.cfg.Storage.Driver)
	}
	a.logger.Info("storage ready", zap.String("driver", a.cfg.Storage.Driver))
	return nil
}

func (a *application) openHub(ctx context.Context) error {
	switch a.cfg.Notification.Driver {
	case config.NotificationRedis:
		client, err := notification.NewRedisClient(ctx, a.cfg.Redis)
		if err != nil {
			return err
		}
		a.hub = notification.NewRedisHub(client, a.logger)
	default:
		a.hub = notification.NewMemoryHub(a.logger)
	}
	a.logger.Info("notification hub ready", zap.String("driver", a.cfg.Notification.Driver))
	return nil
}

func dynamoTables(cfg config.DynamoDBConfig) repository.DynamoTables {
	return repository.DynamoTables{
		Customers:            cfg.CustomersTable,
		Vehicles:             cfg.VehiclesTable,
		Conversations:        cfg.ConversationsTable,
		ConversationVehicles: cfg.ConversationVehiclesTable,
		RiskSnapshots:        cfg.RiskSnapshotsTable,
		Quotes:               cfg.QuotesTable,
		QuoteAlternatives:    cfg.QuoteAlternativesTable,
		UniqueKeys:           cfg.UniqueKeysTable,
	}.WithDefaults()
}

// start launches the background pipeline: workers first, then the sweeper
// that feeds them.
func (a *application) start(ctx context.Context) {
	a.worker.Start(ctx)
	if a.cron != nil {
		a.cron.Start()
	}
}

// close releases everything in reverse start order. In-flight quote
// computations are waited for until ctx is done.
func (a *application) close(ctx context.Context) {
	var errs []error
	if a.cron != nil {
		errs = append(errs, a.cron.Stop(ctx))
	}
	if a.worker != nil {
		errs = append(errs, a.worker.Stop(ctx))
	}
	if a.hub != nil {
		errs = append(errs, a.hub.Close())
	}
	if a.db != nil {
		errs = append(errs, database.Close(a.db))
	}
	if err := errors.Join(errs...); err != nil {
		a.logger.Warn("shutdown finished with errors", zap.Error(err))
	}
}
