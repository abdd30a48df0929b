package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

const RequestIDHeader = "X-Request-ID"

// Logger attaches a request-scoped logger carrying request_id to the request
// context and logs every processed request.
func Logger(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		requestID := c.Request().Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Response().Header().Set(RequestIDHeader, requestID)

		ctx := c.Request().Context()

		logger := log.With().Str("request_id", requestID).Logger()
		ctx = logger.WithContext(ctx)

		c.SetRequest(c.Request().WithContext(ctx))

		err := next(c)
		if err != nil {
			c.Error(err)
		}

		latency := time.Since(start).Milliseconds()

		req := c.Request()
		res := c.Response()

		log.Ctx(req.Context()).Info().
			Str("method", req.Method).
			Str("endpoint", req.URL.Path).
			Int("status", res.Status).
			Int64("latency", latency).
			Str("remote_ip", c.RealIP()).
			Msg("Request processed")

		return nil
	}
}
