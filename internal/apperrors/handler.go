package apperrors

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
)

const internalMessage = "internal server error"

// Response is the JSON body of every failed request.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// HTTPErrorHandler renders application and echo errors with the common envelope.
// Persistence failures and unknown errors are logged and answered generically.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status, body := render(err)
	if status >= http.StatusInternalServerError {
		c.Logger().Errorf("%s %s: %v", c.Request().Method, c.Path(), err)
	}

	var writeErr error
	if c.Request().Method == http.MethodHead {
		writeErr = c.NoContent(status)
	} else {
		writeErr = c.JSON(status, body)
	}
	if writeErr != nil {
		c.Logger().Error(writeErr)
	}
}

func render(err error) (int, Response) {
	if e, ok := As(err); ok {
		if e.Kind == PersistenceFailure {
			return e.Kind.Status(), Response{Message: internalMessage}
		}
		return e.Kind.Status(), Response{Message: e.Message, Errors: e.Fields}
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Code >= http.StatusInternalServerError {
			return he.Code, Response{Message: internalMessage}
		}
		msg := http.StatusText(he.Code)
		if s, ok := he.Message.(string); ok {
			msg = s
		}
		return he.Code, Response{Message: msg}
	}

	return http.StatusInternalServerError, Response{Message: internalMessage}
}
