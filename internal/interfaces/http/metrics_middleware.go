package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Estoque-api/pkg/logger"
)

// RequestObserver registra una petición terminada (telemetry.ObserveHTTPRequest en producción).
type RequestObserver func(method, route string, status int, d time.Duration)

// Metrics mide cada petición con la plantilla de ruta (no la URL concreta) para acotar la cardinalidad.
func Metrics(observe RequestObserver, log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// Deja que el ErrorHandler fije el status antes de medir.
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		status := c.Response().StatusCode()
		route := c.Route().Path
		elapsed := time.Since(start)
		if observe != nil {
			observe(c.Method(), route, status, elapsed)
		}
		log.Debug().
			Str("method", c.Method()).
			Str("route", route).
			Int("status", status).
			Dur("latency", elapsed).
			Msg("http")
		return nil
	}
}
