package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shopdesk/internal/domain"
	"github.com/vladislavdragonenkov/shopdesk/internal/metrics"
	"github.com/vladislavdragonenkov/shopdesk/internal/service/shop"
	"github.com/vladislavdragonenkov/shopdesk/internal/storage/memory"
	"github.com/vladislavdragonenkov/shopdesk/internal/storage/postgres"
	"github.com/vladislavdragonenkov/shopdesk/internal/transfer"
)

// Dependencies содержит собранные зависимости приложения.
type Dependencies struct {
	Shop     *shop.Service
	Transfer *transfer.Service
	Metrics  *metrics.ShopMetrics
	Logger   *log.Entry

	pg *postgres.Store
}

// NewDependencies собирает хранилище по cfg.StorageDriver и строит на нём
// сервисный слой. Для postgres при включённом автонакате применяются
// миграции схемы.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	shopMetrics := metrics.NewShopMetrics()

	var (
		clients   domain.ClientRepository
		products  domain.ProductRepository
		orders    domain.OrderRepository
		analytics domain.AnalyticsRepository
		tables    domain.TableStore
		pg        *postgres.Store
	)

	switch cfg.StorageDriver {
	case StorageDriverMemory, "":
		store := memory.NewStore()
		clients = memory.NewClientRepository(store)
		products = memory.NewProductRepository(store)
		orders = memory.NewOrderRepository(store)
		analytics = memory.NewAnalyticsRepository(store)
		tables = store
		logger.Info("using in-memory storage")
	case StorageDriverPostgres:
		if cfg.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres storage requires a DSN")
		}
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres storage: %w", err)
		}
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				_ = store.Close()
				return nil, fmt.Errorf("failed to migrate postgres schema: %w", err)
			}
		}
		pg = store
		clients = postgres.NewClientRepository(store)
		products = postgres.NewProductRepository(store)
		orders = postgres.NewOrderRepository(store)
		analytics = postgres.NewAnalyticsRepository(store)
		tables = store
		logger.Info("using postgres storage")
	default:
		return nil, fmt.Errorf("unknown storage driver: %q", cfg.StorageDriver)
	}

	return &Dependencies{
		Shop:     shop.NewService(clients, products, orders, analytics, logger.WithField("layer", "service"), shopMetrics),
		Transfer: transfer.NewService(tables, logger.WithField("layer", "transfer"), shopMetrics),
		Metrics:  shopMetrics,
		Logger:   logger,
		pg:       pg,
	}, nil
}

// Close освобождает ресурсы хранилища.
func (d *Dependencies) Close() error {
	if d == nil || d.pg == nil {
		return nil
	}
	return d.pg.Close()
}
