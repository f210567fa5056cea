// Package memory is an in-process table store. It evaluates the same
// predicates as the remote store and is used by STORE_DRIVER=memory and by
// tests.
package memory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"telesalud-admin/internal/domain/query"
	"telesalud-admin/internal/domain/repository"
	"telesalud-admin/internal/domain/schema"
)

type row map[string]interface{}

// TableClient keeps rows as decoded JSON objects, one slice per table, in
// insertion order.
type TableClient struct {
	mu     sync.RWMutex
	tables map[string][]row
	nextID map[string]int64

	// FailWith, when set, is returned by every call on that table.
	FailWith map[string]error
}

func NewTableClient() *TableClient {
	return &TableClient{
		tables:   make(map[string][]row),
		nextID:   make(map[string]int64),
		FailWith: make(map[string]error),
	}
}

func (c *TableClient) Select(ctx context.Context, sel query.Select, dest interface{}) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if err := c.failure(sel.Table); err != nil {
		return err
	}

	out := make([]row, 0)
	for _, r := range c.tables[sel.Table] {
		if !matchesAll(r, sel.Predicates) {
			continue
		}
		copied := clone(r)
		for _, rel := range sel.Embeds {
			copied[rel.Table] = c.lookup(rel.Table, r[rel.ForeignKey])
		}
		out = append(out, copied)
	}

	raw, err := json.Marshal(out)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, dest)
}

func (c *TableClient) Insert(ctx context.Context, table string, record interface{}) (*repository.Ack, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.failure(table); err != nil {
		return nil, err
	}

	r, err := toRow(record)
	if err != nil {
		return nil, err
	}
	c.nextID[table]++
	r[schema.ColumnID] = idNumber(c.nextID[table])
	c.tables[table] = append(c.tables[table], r)

	return &repository.Ack{Table: table, Count: 1}, nil
}

func (c *TableClient) Update(ctx context.Context, table string, record interface{}, match query.Predicate) (*repository.Ack, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.failure(table); err != nil {
		return nil, err
	}

	patch, err := toRow(record)
	if err != nil {
		return nil, err
	}
	delete(patch, schema.ColumnID)

	var count int64
	for _, r := range c.tables[table] {
		if !matches(r, match) {
			continue
		}
		for k, v := range patch {
			r[k] = v
		}
		count++
	}

	return &repository.Ack{Table: table, Count: count}, nil
}

// Seed inserts records as-is, keeping their ids, and advances the id sequence.
func (c *TableClient) Seed(table string, records ...interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, record := range records {
		r, err := toRow(record)
		if err != nil {
			return err
		}
		id, _ := strconv.ParseInt(fmt.Sprint(r[schema.ColumnID]), 10, 64)
		if id == 0 {
			c.nextID[table]++
			r[schema.ColumnID] = idNumber(c.nextID[table])
		} else if id > c.nextID[table] {
			c.nextID[table] = id
		}
		c.tables[table] = append(c.tables[table], r)
	}
	return nil
}

func (c *TableClient) failure(table string) error {
	if err, ok := c.FailWith[table]; ok && err != nil {
		return err
	}
	return nil
}

func (c *TableClient) lookup(table string, id interface{}) row {
	if id == nil {
		return nil
	}
	for _, r := range c.tables[table] {
		if fmt.Sprint(r[schema.ColumnID]) == fmt.Sprint(id) {
			return clone(r)
		}
	}
	return nil
}

func matchesAll(r row, preds []query.Predicate) bool {
	for _, p := range preds {
		if !matches(r, p) {
			return false
		}
	}
	return true
}

// matches compares on the text form of both sides, the way the remote
// store compares query-string values.
func matches(r row, p query.Predicate) bool {
	v, ok := r[p.Column]
	if !ok || v == nil {
		return false
	}
	got := fmt.Sprint(v)
	want := fmt.Sprint(p.Value)
	switch p.Op {
	case query.OpEq:
		return got == want
	case query.OpILike:
		return strings.Contains(strings.ToLower(got), strings.ToLower(want))
	default:
		return false
	}
}

func toRow(record interface{}) (row, error) {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil, err
	}
	// json.Number keeps integers printable as integers for comparison.
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	r := row{}
	if err := dec.Decode(&r); err != nil {
		return nil, err
	}
	return r, nil
}

func idNumber(id int64) json.Number {
	return json.Number(strconv.FormatInt(id, 10))
}

func clone(r row) row {
	out := make(row, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}
