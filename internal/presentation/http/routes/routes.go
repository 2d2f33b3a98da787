// Package routes provides HTTP route configuration for the presentation layer.
package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/statecraft-labs/statecraft-go/internal/application/container"
	"github.com/statecraft-labs/statecraft-go/internal/presentation/http/handlers"
	"github.com/statecraft-labs/statecraft-go/internal/presentation/http/middleware"
)

// SetupRoutes configures all HTTP routes and middleware with dependency injection.
func SetupRoutes(container *container.Container) *gin.Engine {
	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	// Initialize handlers
	sessionHandlers := handlers.NewSessionHandlers(container.SessionService)
	cartHandlers := handlers.NewCartHandlers(container.CartService)
	catalogHandlers := handlers.NewCatalogHandlers(container.CatalogService)
	infoHandlers := handlers.NewInfoHandlers(container.StateService)
	sysopHandlers := handlers.NewSysopHandlers(container.AuthService, container.StateService, container.Logger)

	r.GET("/health", infoHandlers.Health)

	api := r.Group("/api/v1")
	{
		// Stateless surface: no session required, no session consulted.
		api.GET("/info", infoHandlers.Info)

		api.POST("/sessions", sessionHandlers.Create)

		// Stateful surface keyed by the session header.
		current := api.Group("/sessions/current")
		{
			current.GET("", middleware.RequireSession(container.SessionService), sessionHandlers.Get)
			current.PATCH("", middleware.RequireSession(container.SessionService), sessionHandlers.Update)
			// Delete skips the middleware: logging out a dead session is a
			// successful no-op, not a 401.
			current.DELETE("", sessionHandlers.Delete)
		}

		cart := api.Group("/cart")
		cart.Use(middleware.RequireSession(container.SessionService))
		{
			cart.GET("", cartHandlers.Get)
			cart.DELETE("", cartHandlers.Clear)
			cart.POST("/items", cartHandlers.AddItem)
			cart.DELETE("/items/:productId", cartHandlers.RemoveItem)
		}

		users := api.Group("/users")
		{
			users.GET("", catalogHandlers.ListUsers)
			users.POST("", catalogHandlers.CreateUser)
			users.GET("/:userId", catalogHandlers.GetUser)
			users.PATCH("/:userId/preferences", catalogHandlers.UpdateUserPreferences)
		}

		products := api.Group("/products")
		{
			products.GET("", catalogHandlers.ListProducts)
			products.GET("/:productId", catalogHandlers.GetProduct)

			// Catalog mutation is an admin concern.
			sysopOnly := middleware.RequireSysop(container.AuthService)
			products.POST("", sysopOnly, catalogHandlers.CreateProduct)
			products.PATCH("/:productId", sysopOnly, catalogHandlers.UpdateProduct)
			products.DELETE("/:productId", sysopOnly, catalogHandlers.RemoveProduct)
		}
	}

	sysopAPI := r.Group("/api/sysop")
	{
		sysopAPI.POST("/login", sysopHandlers.Login)

		// Sysop authenticated endpoints
		sysopAPI.Use(middleware.RequireSysop(container.AuthService))
		{
			sysopAPI.GET("/stats", sysopHandlers.Stats)
			sysopAPI.GET("/state/export", sysopHandlers.ExportState)
			sysopAPI.POST("/state/import", sysopHandlers.ImportState)
			sysopAPI.GET("/logs/levels", sysopHandlers.GetLogLevels)
			sysopAPI.POST("/logs/levels", sysopHandlers.SetLogLevel)
		}
	}

	return r
}
