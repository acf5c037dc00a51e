package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/jhoicas/shop-admin/pkg/logger"
)

// CommonMiddleware recover, request id y log de acceso, en ese orden.
func CommonMiddleware(log *logger.Logger) []fiber.Handler {
	return []fiber.Handler{
		recover.New(),
		requestid.New(),
		RequestLogger(log),
	}
}

// RequestLogger registra cada petición con método, ruta, status y latencia.
// Nunca registra cuerpos: login y reportes llevan contraseñas.
func RequestLogger(log *logger.Logger) fiber.Handler {
	access := log.Named("http")
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		ev := access.Info()
		if status >= fiber.StatusInternalServerError {
			ev = access.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = access.Warn()
		}
		ev.Str("request_id", requestID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("user_id", GetUserID(c)).
			Msg("request")
		return err
	}
}
