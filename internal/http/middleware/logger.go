package middleware

import (
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a middleware that logs each HTTP request as one JSON line through
// the global zerolog logger.
// Fields:
// - request_id (taken from context locals set by RequestID middleware)
// - method
// - path
// - status
// - latency (in milliseconds, as float)
func Logger() fiber.Handler {
	return requestLogger(func() zerolog.Logger { return log.Logger }, nil)
}

// LoggerWithWriter logs to w with a "ts" timestamp in loc.
func LoggerWithWriter(w io.Writer, loc *time.Location) fiber.Handler {
	if loc == nil {
		loc = time.UTC
	}
	l := zerolog.New(w)
	return requestLogger(func() zerolog.Logger { return l }, loc)
}

func requestLogger(logger func() zerolog.Logger, loc *time.Location) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Process request
		err := c.Next()

		rid, _ := c.Locals(RequestIDLocalKey).(string)
		status := c.Response().StatusCode()
		var fe *fiber.Error
		switch {
		case errors.As(err, &fe):
			status = fe.Code
		case err != nil:
			// Plain errors (recovered panics included) end up as a 500 in ErrorHandler.
			status = fiber.StatusInternalServerError
		}

		l := logger()
		ev := l.Info()
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = l.Error()
		case status >= fiber.StatusBadRequest:
			ev = l.Warn()
		}
		if loc != nil {
			ev = ev.Str("ts", start.In(loc).Format(time.RFC3339Nano))
		}

		ev.Str("request_id", rid).
			Str("method", c.Method()).
			// Use only the path segment (no query string)
			Str("path", c.Path()).
			Int("status", status).
			Float64("latency", float64(time.Since(start).Microseconds())/1000).
			Send()

		return err
	}
}
