package repository

import (
	"context"

	"telesalud-admin/internal/domain/query"
)

// Ack is the acknowledgment of an insert or update. The generated id is not
// part of it.
type Ack struct {
	Table string `json:"table"`
	Count int64  `json:"count"`
}

// TableClient executes table verbs against the remote store. Implementations
// return *StoreError (or a driver error) untouched; repositories normalize it.
type TableClient interface {
	// Select runs sel and decodes the rows into dest, a pointer to a slice.
	Select(ctx context.Context, sel query.Select, dest interface{}) error
	Insert(ctx context.Context, table string, record interface{}) (*Ack, error)
	// Update replaces every column of record except id on the rows matching match.
	Update(ctx context.Context, table string, record interface{}, match query.Predicate) (*Ack, error)
}
