package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/eshop/internal/domain"
	"github.com/vladislavdragonenkov/eshop/internal/metrics"
	"github.com/vladislavdragonenkov/eshop/internal/service/billing"
	"github.com/vladislavdragonenkov/eshop/internal/service/catalog"
	"github.com/vladislavdragonenkov/eshop/internal/service/customer"
	"github.com/vladislavdragonenkov/eshop/internal/service/store"
	"github.com/vladislavdragonenkov/eshop/internal/service/user"
	"github.com/vladislavdragonenkov/eshop/internal/storage/memory"
	"github.com/vladislavdragonenkov/eshop/internal/storage/postgres"
)

// Dependencies содержит собранные зависимости приложения.
type Dependencies struct {
	Billing   *billing.Service
	Catalog   *catalog.Service
	Customers *customer.Service
	Users     *user.Service
	StoreInfo *store.Service

	Logger *log.Entry

	// PostgresStore не nil, когда приложение работает на PostgreSQL.
	PostgresStore *postgres.Store
}

type repositories struct {
	invoices   domain.InvoiceRepository
	items      domain.InvoiceItemRepository
	products   domain.ProductRepository
	customers  domain.CustomerRepository
	categories domain.CategoryRepository
	users      domain.UserRepository
	storeInfos domain.StoreInfoRepository
}

// NewDependencies собирает сервисы поверх выбранного хранилища.
// Непустой DSN включает PostgreSQL; иначе используется память.
func NewDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*Dependencies, error) {
	if logger == nil {
		logger = log.WithField("component", "app")
	}

	deps := &Dependencies{Logger: logger}

	var repos repositories
	if cfg.PostgresDSN != "" {
		pgStore, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := pgStore.EnsureSchema(ctx); err != nil {
			_ = pgStore.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		deps.PostgresStore = pgStore
		repos = repositories{
			invoices:   postgres.NewInvoiceRepository(pgStore),
			items:      postgres.NewInvoiceItemRepository(pgStore),
			products:   postgres.NewProductRepository(pgStore),
			customers:  postgres.NewCustomerRepository(pgStore),
			categories: postgres.NewCategoryRepository(pgStore),
			users:      postgres.NewUserRepository(pgStore),
			storeInfos: postgres.NewStoreInfoRepository(pgStore),
		}
		logger.Info("используется PostgreSQL-хранилище")
	} else {
		memStore := memory.NewStore()
		repos = repositories{
			invoices:   memory.NewInvoiceRepository(memStore),
			items:      memory.NewInvoiceItemRepository(memStore),
			products:   memory.NewProductRepository(memStore),
			customers:  memory.NewCustomerRepository(memStore),
			categories: memory.NewCategoryRepository(memStore),
			users:      memory.NewUserRepository(memStore),
			storeInfos: memory.NewStoreInfoRepository(memStore),
		}
		logger.Info("используется хранилище в памяти")
	}

	deps.Billing = billing.NewService(
		repos.invoices, repos.items, repos.products, repos.customers,
		logger.WithField("component", "billing-service"),
		metrics.NewBillingMetrics(),
	)
	deps.Catalog = catalog.NewService(
		repos.products, repos.categories,
		logger.WithField("component", "catalog-service"),
	)
	deps.Customers = customer.NewService(
		repos.customers,
		logger.WithField("component", "customer-service"),
	)
	deps.Users = user.NewService(
		repos.users,
		logger.WithField("component", "user-service"),
	)
	deps.StoreInfo = store.NewService(
		repos.storeInfos,
		logger.WithField("component", "store-service"),
	)

	return deps, nil
}

// Close освобождает ресурсы зависимостей.
func (d *Dependencies) Close() error {
	if d.PostgresStore != nil {
		return d.PostgresStore.Close()
	}
	return nil
}
