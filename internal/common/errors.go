package common

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrNotFound       = errors.New("requested resource not found")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrBadRequest     = errors.New("bad request")
	ErrConflict       = errors.New("resource conflict") // e.g., duplicate _id on insert
	ErrInternalServer = errors.New("internal server error")
)

// Auth failures. Each one is also an ErrUnauthorized or ErrBadRequest so
// HTTPStatusFromError only needs the broad classes.
var (
	ErrNotAuthenticated   = &kindError{msg: "Not authenticated", class: ErrUnauthorized}
	ErrSessionExpired     = &kindError{msg: "Session expired", class: ErrUnauthorized}
	ErrInvalidCredentials = &kindError{msg: "Invalid credentials", class: ErrUnauthorized}
	ErrUsernameTaken      = &kindError{msg: "Username already taken", class: ErrBadRequest}
)

type kindError struct {
	msg   string
	class error
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Is(target error) bool { return target == e.class }

// NotFoundError reports an id lookup, update or delete that matched nothing.
type NotFoundError struct {
	Entity string
}

func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// BadRequest wraps ErrBadRequest with a caller-facing message.
func BadRequest(msg string) error {
	return &kindError{msg: msg, class: ErrBadRequest}
}

// HTTPStatusFromError maps domain errors to HTTP status codes.
func HTTPStatusFromError(err error) int {
	if err == nil {
		return http.StatusOK
	}
	if errors.Is(err, ErrNotFound) {
		return http.StatusNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	if errors.Is(err, ErrBadRequest) {
		return http.StatusBadRequest
	}
	if errors.Is(err, ErrConflict) {
		return http.StatusConflict
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" { // Unique violation
			return http.StatusConflict
		}
	}
	if mongo.IsDuplicateKeyError(err) {
		return http.StatusConflict
	}

	return http.StatusInternalServerError
}

// Errorf creates a new error with formatting, useful for wrapping.
func Errorf(format string, args ...interface{}) error {
	return fmt.Errorf(format, args...)
}
