package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/labstack/echo/v4"

	applogger "PairSignal/pkg/logger"
)

// Recover turns a handler panic into a logged 500 response.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	if l == nil {
		l = applogger.Nop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}
				l.Error("panic recovered",
					applogger.String("method", c.Request().Method),
					applogger.String("route", c.Path()),
					applogger.Any("panic", r),
					applogger.String("stack", string(debug.Stack())),
				)
				err = writeStatus(c, http.StatusInternalServerError)
			}()
			return next(c)
		}
	}
}

// writeStatus renders the bare {status, message} envelope; a committed response is left alone.
func writeStatus(c echo.Context, status int) error {
	if c.Response().Committed {
		return fmt.Errorf("status %d after response was committed", status)
	}
	return c.JSON(status, map[string]interface{}{
		"status":  status,
		"message": http.StatusText(status),
	})
}
