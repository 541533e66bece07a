package router

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/seo-radar/api/internal/auth"
	"github.com/octobees/seo-radar/api/internal/config"
	"github.com/octobees/seo-radar/api/internal/handler"
	middlewarepkg "github.com/octobees/seo-radar/api/internal/middleware"
)

// Handlers aggregates HTTP handlers used by the router.
type Handlers struct {
	Auth        *handler.AuthHandler
	Users       *handler.UserAdminHandler
	Companies   *handler.CompaniesHandler
	Competitors *handler.CompetitorsHandler
}

// Register wires all HTTP routes for the API.
func Register(e *echo.Echo, cfg *config.Config, jwtManager *auth.JWTManager, handlers Handlers) {
	e.GET("/healthz", func(c echo.Context) error {
		return handler.Success(c, http.StatusOK, "service healthy", map[string]any{"status": "ok"})
	})

	e.POST("/auth/register", handlers.Auth.Register)
	e.POST("/auth/login", handlers.Auth.Login)

	secured := e.Group("")
	secured.Use(middlewarepkg.JWT(jwtManager))

	admin := secured.Group("/admin", middlewarepkg.RequireRole("admin"))
	admin.GET("/users", handlers.Users.List)
	admin.POST("/users", handlers.Users.Create)
	admin.PATCH("/users/:id", handlers.Users.Update)
	admin.DELETE("/users/:id", handlers.Users.Delete)

	secured.POST("/companies", handlers.Companies.Create)
	secured.GET("/companies", handlers.Companies.List)
	secured.GET("/companies/:id", handlers.Companies.Get)
	secured.PATCH("/companies/:id", handlers.Companies.Update)
	secured.DELETE("/companies/:id", handlers.Companies.Delete)

	searchLimiter := middlewarepkg.SearchRateLimiter(cfg.RateLimitSearch)
	secured.POST("/companies/:id/competitors/search", handlers.Competitors.Search, searchLimiter)
	secured.POST("/companies/:id/competitors/merge", handlers.Competitors.Merge)
	secured.PATCH("/companies/:id/competitors/:competitor_id/status", handlers.Competitors.UpdateStatus)
	secured.PUT("/companies/:id/competitors/:competitor_id/products", handlers.Competitors.AssignProducts)
	secured.DELETE("/companies/:id/competitors/:competitor_id", handlers.Competitors.Delete)

	secured.GET("/credits", handlers.Competitors.Credits, searchLimiter)
}
