// Package apperror defines the error kinds the service surfaces at its HTTP
// boundary and the translation from storage-layer failures into those kinds.
package apperror

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Kind classifies an error for HTTP status mapping.
type Kind int

const (
	KindUnexpected Kind = iota
	KindNotFound
	KindConflict
	KindInvalidArgument
	KindInvalidCredentials
	KindUnauthenticated
	KindForbidden
)

// Error is the domain error carried from services to the HTTP boundary.
// Message is safe to show to clients; Err holds the underlying cause and is
// only logged server-side.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NotFound reports that a referenced entity does not exist. The entity kind
// and id are part of the client-visible message so callers can tell which
// reference failed to resolve.
func NotFound(entity string, id uuid.UUID) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", entity, id)}
}

// NotFoundMsg reports a missing entity without an id, for lookups by a
// non-id key.
func NotFoundMsg(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(msg string) *Error {
	return &Error{Kind: KindConflict, Message: msg}
}

func InvalidArgument(msg string) *Error {
	return &Error{Kind: KindInvalidArgument, Message: msg}
}

// InvalidCredentials is deliberately identical for unknown email and wrong
// password so the response does not reveal which part was wrong.
func InvalidCredentials() *Error {
	return &Error{Kind: KindInvalidCredentials, Message: "invalid email or password"}
}

func Unauthenticated() *Error {
	return &Error{Kind: KindUnauthenticated, Message: "authentication required"}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

func Unexpected(err error) *Error {
	return &Error{Kind: KindUnexpected, Message: "an unexpected error occurred", Err: err}
}

// KindOf extracts the kind of err, or KindUnexpected for unclassified errors.
func KindOf(err error) Kind {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind
	}
	return KindUnexpected
}

// IsNotFound reports whether err is a not-found error, either ours or the
// driver's no-rows sentinel.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound || errors.Is(err, pgx.ErrNoRows)
}

// Postgres SQLSTATE codes the storage layer raises for constraint violations.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// FromStorage translates a storage-layer error into a domain error. Unique
// and foreign-key violations become Conflict; pgx.ErrNoRows becomes a
// NotFound carrying the given entity kind; everything else is Unexpected.
func FromStorage(entity string, err error) error {
	if err == nil {
		return nil
	}
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return NotFoundMsg(fmt.Sprintf("%s not found", entity))
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &Error{Kind: KindConflict, Message: "duplicate value violates a uniqueness constraint", Err: err}
		case pgForeignKeyViolation:
			return &Error{Kind: KindConflict, Message: "record is referenced by other records", Err: err}
		}
	}
	return Unexpected(err)
}
