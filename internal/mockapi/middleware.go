package mockapi

import (
	"errors"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dmitrijs2005/usermanager/internal/logging"
)

// RequestIDHeader is the header clients use to correlate requests.
const RequestIDHeader = "X-Request-ID"

// LoggingMiddleware logs one structured line per request.
func LoggingMiddleware(logger logging.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			req := c.Request()
			status := c.Response().Status
			var he *echo.HTTPError
			if errors.As(err, &he) {
				status = he.Code
			}
			args := []any{
				"method", req.Method,
				"uri", req.URL.Path,
				"status", status,
				"latency", time.Since(start),
				"request_id", req.Header.Get(RequestIDHeader),
				"ip", c.RealIP(),
			}
			if err != nil {
				args = append(args, "error", err.Error())
			}

			switch {
			case status >= 500:
				logger.Error(req.Context(), "server error", args...)
			case status >= 400:
				logger.Warn(req.Context(), "client error", args...)
			default:
				logger.Info(req.Context(), "request processed", args...)
			}

			return err
		}
	}
}
