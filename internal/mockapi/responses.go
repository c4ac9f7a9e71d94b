package mockapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/employera/internal/client/validation"
	"github.com/labstack/echo/v4"
)

const (
	msgNoCredentials   = "Authentication credentials were not provided."
	msgTokenInvalid    = "Given token not valid for any token type"
	msgBadLogin        = "Invalid email or password."
	msgMissingLogin    = `Must include "email" and "password".`
	msgEmailTaken      = "user with this email already exists."
	msgPasswordsDiffer = "Password fields didn't match."
	msgOldPassword     = "Old password is not correct"
	msgEmailParam      = "Email parameter is required"
)

// fieldErrors is the per-field error body: {"email": ["..."]}.
type fieldErrors map[string][]string

func nonFieldError(msg string) fieldErrors {
	return fieldErrors{"non_field_errors": {msg}}
}

func fromValidation(err error) (fieldErrors, bool) {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return nil, false
	}
	out := make(fieldErrors, len(verr.Fields))
	for k, msg := range verr.Fields {
		out[k] = []string{msg}
	}
	return out, true
}

type detailBody struct {
	Detail string `json:"detail"`
	Code   string `json:"code,omitempty"`
}

type statusBody struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// handleError renders errors not produced by a handler itself, such as
// unknown routes and malformed bodies, as {"detail": "..."}.
func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	msg := http.StatusText(code)

	var he *echo.HTTPError
	switch {
	case errors.As(err, &he):
		code = he.Code
		if m, ok := he.Message.(string); ok {
			msg = m
		} else {
			msg = http.StatusText(code)
		}
	case errors.Is(err, errUserNotFound):
		code = http.StatusNotFound
		msg = "User not found."
	default:
		s.log.Error(c.Request().Context(), "unhandled error", "error", err)
	}

	if c.Request().Method == http.MethodHead {
		_ = c.NoContent(code)
		return
	}
	_ = c.JSON(code, detailBody{Detail: msg})
}
