package repository

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// StoreError is the error body the remote store returns.
type StoreError struct {
	Status  int    `json:"-"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e *StoreError) Error() string {
	if e.Message == "" {
		return http.StatusText(e.Status)
	}
	return e.Message
}

// RemoteQueryError is a failed filtered list.
type RemoteQueryError struct {
	Table   string
	Message string
	Code    string
	Err     error
}

func (e *RemoteQueryError) Error() string { return e.Message }
func (e *RemoteQueryError) Unwrap() error { return e.Err }

// RemoteWriteError is a failed insert or update.
type RemoteWriteError struct {
	Table   string
	Op      string
	Message string
	Code    string
	Err     error
}

func (e *RemoteWriteError) Error() string { return e.Message }
func (e *RemoteWriteError) Unwrap() error { return e.Err }

// ExternalLookupError is a failed call to a third-party lookup API.
type ExternalLookupError struct {
	Service    string
	StatusCode int
	Message    string
	Err        error
}

func (e *ExternalLookupError) Error() string {
	return fmt.Sprintf("%s lookup failed: %s", e.Service, e.Message)
}

func (e *ExternalLookupError) Unwrap() error { return e.Err }

// AuthError is a rejection from the auth provider.
type AuthError struct {
	StatusCode int
	Message    string
}

func (e *AuthError) Error() string { return e.Message }

func NewQueryError(table string, err error) *RemoteQueryError {
	msg, code := describe(err)
	return &RemoteQueryError{Table: table, Message: msg, Code: code, Err: err}
}

func NewWriteError(table, op string, err error) *RemoteWriteError {
	msg, code := describe(err)
	return &RemoteWriteError{Table: table, Op: op, Message: msg, Code: code, Err: err}
}

// describe extracts the human message and the SQLSTATE-like code from a
// store or driver error.
func describe(err error) (string, string) {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Error(), storeErr.Code
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return fmt.Sprintf("duplicate value violates unique constraint %q", pgErr.ConstraintName), pgErr.Code
		case "23503":
			return fmt.Sprintf("referenced row does not exist (%s)", pgErr.ConstraintName), pgErr.Code
		}
		return pgErr.Message, pgErr.Code
	}

	return err.Error(), ""
}
