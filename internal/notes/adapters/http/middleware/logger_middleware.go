package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"gonotes/pkg/logger"
)

// NewLoggerMiddleware кладет в контекст запроса логгер и X-Request-ID и логирует итог запроса.
func NewLoggerMiddleware(log *logger.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(logger.HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		c.Set(logger.HeaderRequestID, requestID)

		ctx := logger.NewRequestIDContext(c.Context(), requestID)
		ctx = logger.NewContext(ctx, log)
		setContext(c, ctx)

		reqLog := log.With(
			zap.String("path", c.Path()),
			zap.String("method", c.Method()),
			zap.String("ip", c.IP()),
		)
		reqLog.Debug(ctx, "request started")

		err := c.Next()

		fields := []zap.Field{
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
		}
		if err != nil {
			reqLog.Error(ctx, "request failed", append(fields, zap.Error(err))...)
			return err
		}

		reqLog.Info(ctx, "request completed", fields...)
		return nil
	}
}
