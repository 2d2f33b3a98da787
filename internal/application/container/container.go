// Package container provides dependency injection for all singleton services
package container

import (
	"github.com/statecraft-labs/statecraft-go/internal/application/services"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/caching/manager"
	"github.com/statecraft-labs/statecraft-go/internal/infrastructure/observability/logging"
)

// Container holds all singleton services and infrastructure dependencies
type Container struct {
	// Application Services (stateless singletons)
	SessionService *services.SessionService
	CartService    *services.CartService
	CatalogService *services.CatalogService
	StateService   *services.StateService
	AuthService    *services.AuthService

	// Infrastructure Dependencies
	CacheManager *manager.Manager
	Logger       *logging.ChanneledLogger
}

// NewContainer creates and wires all singleton services
func NewContainer(cacheManager *manager.Manager, logger *logging.ChanneledLogger) *Container {
	return &Container{
		SessionService: services.NewSessionService(cacheManager, logger),
		CartService:    services.NewCartService(cacheManager, logger),
		CatalogService: services.NewCatalogService(cacheManager, logger),
		StateService:   services.NewStateService(cacheManager, logger),
		AuthService:    services.NewAuthService(logger),

		CacheManager: cacheManager,
		Logger:       logger,
	}
}
