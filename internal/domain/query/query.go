// Package query describes remote reads as immutable values. A Select is built
// once, extended with predicates, and only translated into a concrete store
// call (PostgREST query string, gorm clauses) by a table client.
package query

import "telesalud-admin/internal/domain/schema"

// Operator is the comparison a predicate applies.
type Operator string

const (
	// OpEq is exact equality.
	OpEq Operator = "eq"
	// OpILike is a case-insensitive substring match.
	OpILike Operator = "ilike"
)

// Predicate constrains one column. Value is the raw term: for OpILike the
// table client wraps it in wildcards.
type Predicate struct {
	Column string
	Op     Operator
	Value  interface{}
}

func Eq(column string, value interface{}) Predicate {
	return Predicate{Column: column, Op: OpEq, Value: value}
}

func ILike(column, term string) Predicate {
	return Predicate{Column: column, Op: OpILike, Value: term}
}

// Select reads every column of Table plus the embedded relations, filtered
// by the conjunction of Predicates.
type Select struct {
	Table      string
	Embeds     []schema.Relation
	Predicates []Predicate
}

// From starts an unfiltered select over table.
func From(table string, embeds ...schema.Relation) Select {
	return Select{
		Table:  table,
		Embeds: append([]schema.Relation(nil), embeds...),
	}
}

// Where returns a copy of s with preds appended; s itself is left untouched.
func (s Select) Where(preds ...Predicate) Select {
	next := Select{
		Table:      s.Table,
		Embeds:     append([]schema.Relation(nil), s.Embeds...),
		Predicates: make([]Predicate, 0, len(s.Predicates)+len(preds)),
	}
	next.Predicates = append(next.Predicates, s.Predicates...)
	next.Predicates = append(next.Predicates, preds...)
	return next
}
