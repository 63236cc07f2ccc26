package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// ErrorLocalKey holds an internal error that a handler hid from the client but wants logged.
const ErrorLocalKey = "error"

// Logger writes one structured entry per request with request_id, method, path, status
// and latency in milliseconds. Server errors log at error level, client errors at warn.
func Logger(log logrus.FieldLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}

		entry := log.WithFields(logrus.Fields{
			"request_id": RequestIDFromCtx(c),
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency":    float64(time.Since(start).Microseconds()) / 1000,
		})
		if uid, ok := UserIDFromCtx(c); ok {
			entry = entry.WithField("user_id", uid)
		}
		if cause, ok := c.Locals(ErrorLocalKey).(error); ok {
			entry = entry.WithError(cause)
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error("request")
		case status >= fiber.StatusBadRequest:
			entry.Warn("request")
		default:
			entry.Info("request")
		}
		return err
	}
}
