package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
)

// httpObserver lo implementa *metrics.Registry.
type httpObserver interface {
	ObserveHTTP(method, route string, status int, elapsed time.Duration)
}

// MetricsMiddleware mide cada solicitud por ruta registrada (no por path
// concreto) para acotar la cardinalidad.
func MetricsMiddleware(obs httpObserver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
			route = r.Path
		}
		obs.ObserveHTTP(c.Method(), route, status, time.Since(start))
		return err
	}
}
