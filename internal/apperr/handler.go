package apperr

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// Response is the body of every failed request.
type Response struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func GlobalErrorHandler() echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, body := render(err)
		if status >= http.StatusInternalServerError {
			slog.Error("Unhandled error",
				"error", err,
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
			)
		}

		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func render(err error) (int, Response) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, Response{Message: ve.Message, Errors: ve.Fields}
	}

	var ae *Error
	if errors.As(err, &ae) {
		if ae.Kind == Internal {
			return http.StatusInternalServerError, Response{Message: "internal server error"}
		}
		return ae.Kind.Status(), Response{Message: ae.Message}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return he.Code, Response{Message: http.StatusText(he.Code)}
		}
		return he.Code, Response{Message: fmt.Sprintf("%v", he.Message)}
	}

	return http.StatusInternalServerError, Response{Message: "internal server error"}
}
