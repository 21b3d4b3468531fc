package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/people360/pkg/logger"
)

// requestID id asignado por el middleware requestid de Fiber.
func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.Get(fiber.HeaderXRequestID)
}

// RequestLogger registra cada petición terminada con método, ruta, estado y latencia.
func RequestLogger(l *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler de Fiber fije el estado antes de registrar
			if herr := c.App().ErrorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}
		l.Request(c.Method(), c.Path(), c.Response().StatusCode(), time.Since(start), requestID(c))
		return nil
	}
}
