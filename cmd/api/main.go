package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/octobees/seo-radar/api/internal/auth"
	"github.com/octobees/seo-radar/api/internal/cache"
	"github.com/octobees/seo-radar/api/internal/config"
	"github.com/octobees/seo-radar/api/internal/database"
	"github.com/octobees/seo-radar/api/internal/handler"
	"github.com/octobees/seo-radar/api/internal/logger"
	middlewarepkg "github.com/octobees/seo-radar/api/internal/middleware"
	"github.com/octobees/seo-radar/api/internal/ranker"
	"github.com/octobees/seo-radar/api/internal/repository"
	"github.com/octobees/seo-radar/api/internal/router"
	"github.com/octobees/seo-radar/api/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	appLog := logger.New(cfg.LogLevel, cfg.LogPretty)
	defer appLog.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := database.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		appLog.Fatal("failed to connect database", logger.Error(err))
	}
	defer pool.Close()

	searchCache := cache.NewNoop()
	if cfg.RedisAddr != "" {
		redisCache, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SearchCacheTTL, appLog)
		if err != nil {
			appLog.Fatal("failed to connect redis", logger.Error(err))
		}
		searchCache = redisCache
	}

	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL)

	usersRepo := repository.NewPGXUsersRepository(pool)
	companiesRepo := repository.NewPGXCompaniesRepository(pool)

	httpClient := &http.Client{Timeout: 15 * time.Second}
	rankerClient := ranker.New(httpClient, cfg.RankerBaseURL, cfg.RankerAPIKey)

	authService := service.NewAuthService(usersRepo, jwtManager)
	userService := service.NewUserService(usersRepo)
	companiesService := service.NewCompaniesService(companiesRepo)
	competitorsService := service.NewCompetitorsService(companiesRepo, rankerClient, searchCache, cfg.DefaultCountry, cfg.DefaultResultLimit)

	handlers := router.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Users:       handler.NewUserAdminHandler(userService),
		Companies:   handler.NewCompaniesHandler(companiesService),
		Competitors: handler.NewCompetitorsHandler(competitorsService),
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middlewarepkg.RequestID())
	e.Use(middlewarepkg.Logging(appLog))
	e.Use(echoMiddleware.Recover())

	router.Register(e, cfg, jwtManager, handlers)

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- e.Start(":" + cfg.Port)
	}()
	appLog.Info("server started", logger.String("port", cfg.Port))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		appLog.Info("shutting down", logger.String("signal", sig.String()))
	case err := <-serverErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLog.Fatal("server error", logger.Error(err))
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		appLog.Warn("graceful shutdown failed", logger.Error(err))
	}
}
