package search

import (
	"strconv"
	"strings"
)

// Dialect decides how positional placeholders are spelled.
type Dialect int

const (
	// Postgres numbers placeholders as $1, $2, ...
	Postgres Dialect = iota
	// SQLite numbers placeholders as ?1, ?2, ...
	SQLite
)

// DialectFor maps a GORM dialector name to a Dialect. Unknown names get
// Postgres.
func DialectFor(name string) Dialect {
	if name == "sqlite" {
		return SQLite
	}
	return Postgres
}

// Placeholder returns the spelling of the n-th (1-based) placeholder.
func (d Dialect) Placeholder(n int) string {
	if d == SQLite {
		return "?" + strconv.Itoa(n)
	}
	return "$" + strconv.Itoa(n)
}

func (d Dialect) String() string {
	if d == SQLite {
		return "sqlite"
	}
	return "postgres"
}

// matchAll is the condition used when no predicate is emitted.
const matchAll = "1=1"

// Clause is one rendered predicate and the values bound to its placeholders.
type Clause struct {
	SQL  string
	Args []any
}

// Query is a compiled filter: the clauses in emission order and the
// flattened argument list.
type Query struct {
	Clauses []Clause
	Args    []any
}

// Where joins the clauses with AND. An empty query matches every row.
func (q Query) Where() string {
	if len(q.Clauses) == 0 {
		return matchAll
	}
	parts := make([]string, len(q.Clauses))
	for i, c := range q.Clauses {
		parts[i] = c.SQL
	}
	return strings.Join(parts, " AND ")
}

// Compile renders f for dialect d. Placeholders are allocated from 1 in
// emission order, one per bound value.
func Compile(f Filter, d Dialect) Query {
	var q Query
	next := 1
	for _, p := range Predicates(f) {
		args := p.Args()
		slots := make([]string, len(args))
		for i := range slots {
			slots[i] = d.Placeholder(next)
			next++
		}
		q.Clauses = append(q.Clauses, Clause{SQL: p.Render(slots), Args: args})
		q.Args = append(q.Args, args...)
	}
	return q
}
