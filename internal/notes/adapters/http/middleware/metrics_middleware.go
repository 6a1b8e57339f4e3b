package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"gonotes/internal/notes/adapters/http/response"
	"gonotes/pkg/metrics"
)

// NewMetricsMiddleware учитывает запросы по шаблону маршрута и бизнес-ошибки по коду.
func NewMetricsMiddleware(m *metrics.Metrics) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		m.RequestsInFlight.Inc()
		defer m.RequestsInFlight.Dec()

		err := c.Next()

		route := c.Route().Path
		if route == "" {
			route = "unmatched"
		}
		m.Observe(c.Method(), route, c.Response().StatusCode(), time.Since(start))
		for _, code := range response.ErrorCodes(c) {
			m.BusinessErrors.WithLabelValues(code).Inc()
		}

		return err
	}
}
