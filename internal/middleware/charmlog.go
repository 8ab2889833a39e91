package middleware

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/labstack/echo/v4"
)

// CharmLog logs one line per request through the package-level charm logger.
// Handler errors are passed to echo's error handler first so the logged
// status is the one the client sees.
func CharmLog() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			fields := []any{
				"method", req.Method,
				"path", req.URL.Path,
				"status", res.Status,
				"latency", time.Since(start),
			}
			if res.Status >= 500 {
				log.Error("ipc request", fields...)
			} else {
				log.Debug("ipc request", fields...)
			}
			return nil
		}
	}
}
