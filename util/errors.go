package util

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/totegamma/charsheet/core"
)

// ErrorHandler renders errors returned by handlers in the response envelope.
// Unknown errors become 500 and are logged.
func ErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := core.StatusCode(err)
	message := err.Error()

	var he *echo.HTTPError
	if errors.As(err, &he) {
		status = he.Code
		message = http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}

	if status == http.StatusInternalServerError {
		slog.ErrorContext(
			c.Request().Context(),
			"unhandled error",
			slog.String("error", err.Error()),
			slog.String("method", c.Request().Method),
			slog.String("path", c.Path()),
		)
		message = http.StatusText(http.StatusInternalServerError)
	}

	var res error
	if c.Request().Method == http.MethodHead {
		res = c.NoContent(status)
	} else {
		res = c.JSON(status, core.ResponseBase[any]{Status: "error", Error: message})
	}
	if res != nil {
		slog.ErrorContext(c.Request().Context(), "failed to write error response", slog.String("error", res.Error()))
	}
}
