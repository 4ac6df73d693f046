package core

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

type ErrorNotFound struct {
}

func (e ErrorNotFound) Error() string {
	return "Not Found"
}

func NewErrorNotFound() ErrorNotFound {
	return ErrorNotFound{}
}

type ErrorPermissionDenied struct {
}

func (e ErrorPermissionDenied) Error() string {
	return "Permission Denied"
}

func NewErrorPermissionDenied() ErrorPermissionDenied {
	return ErrorPermissionDenied{}
}

type ErrorUnauthorized struct {
}

func (e ErrorUnauthorized) Error() string {
	return "Unauthorized"
}

func NewErrorUnauthorized() ErrorUnauthorized {
	return ErrorUnauthorized{}
}

type ErrorBadRequest struct {
	Reason string
}

func (e ErrorBadRequest) Error() string {
	if e.Reason == "" {
		return "Bad Request"
	}
	return "Bad Request: " + e.Reason
}

func NewErrorBadRequest(format string, args ...any) ErrorBadRequest {
	return ErrorBadRequest{Reason: fmt.Sprintf(format, args...)}
}

type ErrorConflict struct {
}

func (e ErrorConflict) Error() string {
	return "Conflict"
}

func NewErrorConflict() ErrorConflict {
	return ErrorConflict{}
}

// ErrorUpstream carries a non-2xx status returned by the identity provider.
type ErrorUpstream struct {
	Status int
	Path   string
}

func (e ErrorUpstream) Error() string {
	return fmt.Sprintf("upstream %s returned %d", e.Path, e.Status)
}

func NewErrorUpstream(status int, path string) ErrorUpstream {
	return ErrorUpstream{Status: status, Path: path}
}

// IsNotFound reports whether err is a local or upstream not found.
func IsNotFound(err error) bool {
	if errors.As(err, &ErrorNotFound{}) {
		return true
	}
	var upstream ErrorUpstream
	if errors.As(err, &upstream) {
		return upstream.Status == http.StatusNotFound
	}
	return false
}

// StatusCode maps an error to the HTTP status it should be reported with.
func StatusCode(err error) int {
	var upstream ErrorUpstream
	switch {
	case errors.As(err, &ErrorUnauthorized{}):
		return http.StatusUnauthorized
	case errors.As(err, &ErrorPermissionDenied{}):
		return http.StatusForbidden
	case errors.As(err, &ErrorNotFound{}):
		return http.StatusNotFound
	case errors.As(err, &ErrorBadRequest{}):
		return http.StatusBadRequest
	case errors.As(err, &ErrorConflict{}):
		return http.StatusConflict
	case errors.As(err, &upstream):
		return upstream.Status
	default:
		return http.StatusInternalServerError
	}
}

// IsIntegrityViolation reports whether err is a postgres integrity constraint violation (class 23)
func IsIntegrityViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgerrcode.IsIntegrityConstraintViolation(pgErr.Code)
	}
	return false
}
