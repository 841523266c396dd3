package search

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/cookatlas/backend/internal/models"
)

// ErrSearchFailed is the only error Search returns to callers; the store
// error is wrapped underneath it.
var ErrSearchFailed = errors.New("search failed")

// Order is the direction of the recipe_id sort.
type Order int

const (
	Ascending Order = iota
	Descending
)

func (o Order) String() string {
	if o == Descending {
		return "DESC"
	}
	return "ASC"
}

// Store runs a read query. *sql.DB and *sql.Conn satisfy it; the caller owns
// opening and closing it.
type Store interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Executor runs compiled filters against the recipes table. It keeps no
// per-call state and is safe for concurrent use.
type Executor struct {
	store   Store
	dialect Dialect
	logger  *zap.Logger
}

// NewExecutor returns an Executor over store. A nil logger discards output.
func NewExecutor(store Store, dialect Dialect, logger *zap.Logger) *Executor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Executor{
		store:   store,
		dialect: dialect,
		logger:  logger,
	}
}

// Statement returns the SELECT for f and its arguments.
func (e *Executor) Statement(f Filter, order Order) (string, []any) {
	q := Compile(f, e.dialect)
	stmt := fmt.Sprintf("SELECT %s FROM %s WHERE %s ORDER BY recipe_id %s",
		strings.Join(models.RecipeColumns, ", "),
		models.Recipe{}.TableName(),
		q.Where(),
		order,
	)
	return stmt, q.Args
}

// Search returns every recipe matching f, ordered by recipe_id. The result
// is never nil.
func (e *Executor) Search(ctx context.Context, f Filter, order Order) ([]models.Recipe, error) {
	start := time.Now()
	stmt, args := e.Statement(f, order)

	recipes, err := e.query(ctx, stmt, args)
	observeSearch(order, err, time.Since(start))
	if err != nil {
		e.logger.Error("recipe search failed",
			zap.String("sql", stmt),
			zap.Int("args", len(args)),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrSearchFailed, err)
	}

	e.logger.Debug("recipe search",
		zap.String("sql", stmt),
		zap.Int("args", len(args)),
		zap.Stringer("order", order),
		zap.Int("results", len(recipes)))
	return recipes, nil
}

func (e *Executor) query(ctx context.Context, stmt string, args []any) ([]models.Recipe, error) {
	rows, err := e.store.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	recipes := []models.Recipe{}
	for rows.Next() {
		var r models.Recipe
		if err := rows.Scan(r.ScanDest()...); err != nil {
			return nil, err
		}
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return recipes, nil
}
