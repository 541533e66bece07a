package middleware

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/octobees/seo-radar/api/internal/logger"
)

// Logging writes a structured line for each HTTP request.
func Logging(log logger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			latency := time.Since(start)

			if err != nil {
				c.Error(err)
			}

			rid, _ := c.Get(ContextKeyRequestID).(string)
			log.Info("request",
				logger.String("request_id", rid),
				logger.String("method", c.Request().Method),
				logger.String("path", c.Request().URL.Path),
				logger.Int("status", c.Response().Status),
				logger.Duration("latency", latency),
			)

			return err
		}
	}
}
