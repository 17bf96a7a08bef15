// Package repository defines error types that are reused across multiple
// repositories. These values allow higher layers such as handlers to
// distinguish between failure scenarios: NotFoundError signals that a
// referenced entity does not exist, ConflictError that a uniqueness
// constraint was violated, and ErrNoUpdateFields that a partial update
// arrived with an empty field set. Anything else propagates untransformed
// and is treated as fatal to the request.
package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"
)

// ErrNoUpdateFields is returned when a partial update carries no fields.
// Handlers should translate this into an HTTP 400 response.
var ErrNoUpdateFields = errors.New("no fields to update")

// ErrInvalidCredentials is returned by UserRepo.Authenticate when the
// username is unknown or the password does not match. The two cases are
// deliberately indistinguishable. Handlers should translate this into an
// HTTP 401 response.
var ErrInvalidCredentials = errors.New("invalid username/password")

// ErrEmployeeRange is returned when a company search asks for
// minEmployees greater than maxEmployees.
var ErrEmployeeRange = errors.New("minEmployees cannot be greater than maxEmployees")

// NotFoundError reports that a referenced entity is absent. Key carries the
// identifier the caller used so it can appear in the client error message.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("no %s: %s", e.Entity, e.Key) }

// ConflictError reports a uniqueness violation, such as registering a
// duplicate username or applying twice to the same job.
type ConflictError struct {
	Entity string
	Key    string
}

func (e *ConflictError) Error() string { return fmt.Sprintf("duplicate %s: %s", e.Entity, e.Key) }

// PostgreSQL SQLSTATE codes, see
// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == pgForeignKeyViolation
}
