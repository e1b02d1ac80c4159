package cli

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/soar-qa/juiceshop-e2e/internal/config"
	"github.com/soar-qa/juiceshop-e2e/internal/database"
	"github.com/soar-qa/juiceshop-e2e/internal/handlers"
	"github.com/soar-qa/juiceshop-e2e/internal/repository"
	"github.com/soar-qa/juiceshop-e2e/internal/services"
)

// OpenOrderRepository returns the order store of the demo storefront: Postgres
// when POSTGRES_* is configured, memory otherwise. The returned func releases
// the store.
func OpenOrderRepository(getenv func(string) string) (services.OrderRepository, func() error, error) {
	if !config.PostgresConfigured(getenv) {
		log.Println("No Postgres configured, keeping orders in memory")
		return repository.NewMemoryOrderRepository(), func() error { return nil }, nil
	}

	if err := database.Connect(getenv); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Connected to database successfully")

	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	return repository.NewOrderRepository(), database.Close, nil
}

// BuildServerDependencies creates all handlers of the demo storefront on top
// of orders
func BuildServerDependencies(templateDir string, getenv func(string) string, orders services.OrderRepository) (ServerDependencies, error) {
	deps := ServerDependencies{
		ServerConfig: config.LoadServerConfig(getenv),
	}

	orderService := services.NewOrderService(orders)
	shop := services.NewStorefrontService(services.DefaultCatalog(), orderService)

	catalogHandler, err := handlers.NewCatalogHandler(templateDir, shop)
	if err != nil {
		return deps, fmt.Errorf("failed to create catalog handler: %w", err)
	}
	deps.CatalogHandler = catalogHandler

	basketHandler, err := handlers.NewBasketHandler(templateDir, shop)
	if err != nil {
		return deps, fmt.Errorf("failed to create basket handler: %w", err)
	}
	deps.BasketHandler = basketHandler

	checkoutHandler, err := handlers.NewCheckoutHandler(templateDir, shop)
	if err != nil {
		return deps, fmt.Errorf("failed to create checkout handler: %w", err)
	}
	deps.CheckoutHandler = checkoutHandler

	completionHandler, err := handlers.NewCompletionHandler(templateDir, shop, orderService)
	if err != nil {
		return deps, fmt.Errorf("failed to create completion handler: %w", err)
	}
	deps.CompletionHandler = completionHandler

	accountHandler, err := handlers.NewAccountHandler(templateDir, shop)
	if err != nil {
		return deps, fmt.Errorf("failed to create account handler: %w", err)
	}
	deps.AccountHandler = accountHandler

	deps.BasketAPIHandler = handlers.NewBasketAPIHandler(shop)
	deps.ImageHandler = handlers.ProductImageHandler{}

	log.Printf("Storefront built from %s with %d products", filepath.Clean(templateDir), len(shop.Catalog()))
	return deps, nil
}
