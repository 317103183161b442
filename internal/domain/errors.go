package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
// Implementing this interface lets the handler layer pick a status
// without enumerating concrete error types.
type HTTPError interface {
	error
	StatusCode() int
}

// DeniedDescription is the single public description used for every
// visibility denial, whether the underlying cause is a private resource
// or a block relationship in either direction. The three causes must
// stay observably identical; callers must never substitute a more
// specific message for any of them.
const DeniedDescription = "you cannot access this resource"

// Sentinel errors - use with errors.Is()
var (
	// ErrUnauthenticated means no valid session token was presented.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrActorNotFound means the token verified but the backing user
	// row no longer exists. Distinct from ErrUnauthenticated: it maps
	// to 403, never 401.
	ErrActorNotFound = errors.New("actor not found")

	ErrForbidden  = errors.New("forbidden")
	ErrNotFound   = errors.New("not found")
	ErrConflict   = errors.New("already exists")
	ErrValidation = errors.New("validation failed")

	// ErrIntegrity covers store failures inside multi-step operations
	// (archive-then-delete, restore) where the invariant could not be
	// upheld. Always maps to 500 and is logged at the service layer.
	ErrIntegrity = errors.New("integrity failure")
)

// Block graph state errors. AlreadyBlocked and NotBlocked surface as
// 409 so a client can tell a state conflict from a policy denial.
var (
	ErrSelfBlock      = errors.New("cannot block yourself")
	ErrAlreadyBlocked = errors.New("user already blocked")
	ErrNotBlocked     = errors.New("user is not blocked")
)

// Catalog lifecycle errors.
var (
	// ErrArchiveFailed means the archive copy or its integrity check
	// failed; the active item is guaranteed untouched.
	ErrArchiveFailed = errors.New("archive failed")

	// ErrDuplicateObjectID means a restore found an active item already
	// using the archived record's object id.
	ErrDuplicateObjectID = errors.New("object id already in use")
)

// Domain error types implementing HTTPError
type (
	// NotFoundError indicates a resource was not found, used only where
	// leaking existence is not itself sensitive.
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates invalid input
	ValidationError struct {
		Message string
	}

	// UnauthenticatedError indicates a missing or invalid token
	UnauthenticatedError struct {
		Message string
	}

	// ForbiddenError indicates a policy denial
	ForbiddenError struct {
		Message string
	}

	// ConflictError indicates a conflicting state transition
	ConflictError struct {
		Message string
	}

	// IntegrityError indicates a broken archive/restore invariant or an
	// unanticipated store failure
	IntegrityError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string        { return e.Message }
func (e *ValidationError) Error() string      { return e.Message }
func (e *UnauthenticatedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string       { return e.Message }
func (e *ConflictError) Error() string        { return e.Message }
func (e *IntegrityError) Error() string       { return e.Message }

func (e *NotFoundError) StatusCode() int        { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int      { return http.StatusBadRequest }
func (e *UnauthenticatedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int       { return http.StatusForbidden }
func (e *ConflictError) StatusCode() int        { return http.StatusConflict }
func (e *IntegrityError) StatusCode() int       { return http.StatusInternalServerError }

// Is allows errors.Is() to match the sentinel counterparts.
func (e *NotFoundError) Is(target error) bool        { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool      { return target == ErrValidation }
func (e *UnauthenticatedError) Is(target error) bool { return target == ErrUnauthenticated }
func (e *ForbiddenError) Is(target error) bool       { return target == ErrForbidden }
func (e *ConflictError) Is(target error) bool        { return target == ErrConflict }
func (e *IntegrityError) Is(target error) bool       { return target == ErrIntegrity }
