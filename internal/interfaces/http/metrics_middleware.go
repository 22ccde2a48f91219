package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/invorya/inventra-api/pkg/metrics"
)

// MetricsMiddleware registra latencia y conteo de peticiones en Prometheus.
// Usa la ruta registrada (c.Route().Path) para no explotar la cardinalidad
// con IDs en el path.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		path := c.Route().Path
		status := strconv.Itoa(c.Response().StatusCode())
		method := c.Method()

		metrics.HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(start).Seconds())
		return err
	}
}
