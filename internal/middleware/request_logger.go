package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-ID"

// RequestID ensures each request carries an identifier for tracing and logging.
func RequestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqID := c.Get(requestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}
		c.Set(requestIDHeader, reqID)
		c.Locals(requestIDHeader, reqID)

		return c.Next()
	}
}

// GetRequestID returns the identifier assigned by RequestID.
func GetRequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDHeader).(string)
	return id
}

// RequestLogger writes one structured entry per request once the handler
// chain has finished.
func RequestLogger(logger *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		chainErr := c.Next()
		if chainErr != nil {
			// Let the app's ErrorHandler render the response so the status is final.
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		fields := logrus.Fields{
			"status":     status,
			"latency":    time.Since(start).String(),
			"client_ip":  c.IP(),
			"method":     c.Method(),
			"path":       c.Path(),
			"request_id": GetRequestID(c),
		}
		if s, ok := CurrentSession(c); ok {
			fields["role"] = string(s.Role)
		}

		entry := logger.WithFields(fields)
		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error("server error")
		case status >= fiber.StatusBadRequest:
			entry.Warn("client error")
		default:
			entry.Info("request processed")
		}

		return nil
	}
}
