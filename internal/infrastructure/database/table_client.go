package database

import (
	"context"
	"fmt"
	"reflect"

	"telesalud-admin/internal/domain/query"
	"telesalud-admin/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TableClient is the gorm implementation of repository.TableClient for a
// self-hosted Postgres carrying the same tables as the hosted backend.
type TableClient struct {
	db *gorm.DB
}

func NewTableClient(db *gorm.DB) repository.TableClient {
	return &TableClient{db: db}
}

func (c *TableClient) Select(ctx context.Context, sel query.Select, dest interface{}) error {
	tx := c.db.WithContext(ctx).Table(sel.Table)
	for _, rel := range sel.Embeds {
		tx = tx.Preload(rel.Field)
	}
	for _, expr := range Expressions(sel.Predicates) {
		tx = tx.Where(expr)
	}
	return tx.Find(dest).Error
}

func (c *TableClient) Insert(ctx context.Context, table string, record interface{}) (*repository.Ack, error) {
	result := c.db.WithContext(ctx).Table(table).Omit(clause.Associations).Create(record)
	if result.Error != nil {
		return nil, result.Error
	}
	return &repository.Ack{Table: table, Count: result.RowsAffected}, nil
}

// Update writes every column including zero values, so disponible=false and
// empty strings reach the row.
func (c *TableClient) Update(ctx context.Context, table string, record interface{}, match query.Predicate) (*repository.Ack, error) {
	if reflect.ValueOf(record).Kind() != reflect.Ptr {
		return nil, fmt.Errorf("update %s: record must be a pointer, got %T", table, record)
	}

	result := c.db.WithContext(ctx).
		Model(record).
		Table(table).
		Where(Expression(match)).
		Select("*").
		Omit("id", clause.Associations).
		Updates(record)
	if result.Error != nil {
		return nil, result.Error
	}
	return &repository.Ack{Table: table, Count: result.RowsAffected}, nil
}

// Expression translates one predicate into a gorm clause.
func Expression(p query.Predicate) clause.Expression {
	switch p.Op {
	case query.OpILike:
		return clause.Expr{
			SQL:  "? ILIKE ?",
			Vars: []interface{}{clause.Column{Name: p.Column}, fmt.Sprintf("%%%v%%", p.Value)},
		}
	default:
		return clause.Eq{Column: clause.Column{Name: p.Column}, Value: p.Value}
	}
}

func Expressions(preds []query.Predicate) []clause.Expression {
	exprs := make([]clause.Expression, 0, len(preds))
	for _, p := range preds {
		exprs = append(exprs, Expression(p))
	}
	return exprs
}
