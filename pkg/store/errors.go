// pkg/store/errors.go
package store

import (
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgconn"
)

// ErrorCategory classifies why a load batch was rejected. The category
// feeds the report's failure cause, nothing else.
type ErrorCategory int

const (
	CategoryOther ErrorCategory = iota
	CategoryConnectivity
	CategoryConstraint
)

// String returns a string representation of the error category
func (c ErrorCategory) String() string {
	switch c {
	case CategoryConnectivity:
		return "connectivity"
	case CategoryConstraint:
		return "constraint violation"
	default:
		return "load error"
	}
}

// LoadError is a store rejection of one batch. It is isolated to the load
// stage: the orchestrator records it in the report instead of crashing.
type LoadError struct {
	Table    string
	Category ErrorCategory
	Err      error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Table, e.Category, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// classifyLoadError wraps err as a *LoadError with its category. Postgres
// error classes 08 (connection) and 23 (integrity constraint) map
// directly; driver-level network failures also count as connectivity.
func classifyLoadError(table string, err error) error {
	category := CategoryOther

	var pgErr *pgconn.PgError
	var netErr net.Error
	switch {
	case errors.As(err, &pgErr):
		switch {
		case strings.HasPrefix(pgErr.Code, "08"):
			category = CategoryConnectivity
		case strings.HasPrefix(pgErr.Code, "23"):
			category = CategoryConstraint
		}
	case errors.As(err, &netErr):
		category = CategoryConnectivity
	}

	return &LoadError{Table: table, Category: category, Err: err}
}
