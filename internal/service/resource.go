package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Resource is plain CRUD over one table with a single integer key.
type Resource[T any] struct {
	db        *gorm.DB
	idColumn  string
	updatable map[string]bool
}

// NewResource serves T keyed by idColumn. Only the listed columns can be
// changed by Update.
func NewResource[T any](db *gorm.DB, idColumn string, updatable ...string) *Resource[T] {
	cols := make(map[string]bool, len(updatable))
	for _, c := range updatable {
		cols[c] = true
	}
	return &Resource[T]{db: db, idColumn: idColumn, updatable: cols}
}

// Updatable reports whether column may be set by Update.
func (r *Resource[T]) Updatable(column string) bool {
	return r.updatable[column]
}

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	items := []T{}
	if err := r.db.WithContext(ctx).Order(r.idColumn + " ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Resource[T]) Get(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := r.db.WithContext(ctx).First(&item, r.idColumn+" = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

func (r *Resource[T]) Create(ctx context.Context, item *T) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update sets the given columns. Columns that are not updatable are
// rejected.
func (r *Resource[T]) Update(ctx context.Context, id uint, fields map[string]interface{}) (*T, error) {
	for col := range fields {
		if !r.updatable[col] {
			return nil, fmt.Errorf("%w: %s", ErrInvalidField, col)
		}
	}
	if len(fields) == 0 {
		return r.Get(ctx, id)
	}

	result := r.db.WithContext(ctx).Model(new(T)).Where(r.idColumn+" = ?", id).Updates(fields)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.Get(ctx, id)
}

func (r *Resource[T]) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Where(r.idColumn+" = ?", id).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Link is a many-to-many table keyed by two integer columns.
type Link[T any] struct {
	db        *gorm.DB
	left      string
	right     string
	newRecord func(left, right uint) T
}

func NewLink[T any](db *gorm.DB, left, right string, newRecord func(left, right uint) T) *Link[T] {
	return &Link[T]{db: db, left: left, right: right, newRecord: newRecord}
}

// Columns returns the names of the two key columns.
func (l *Link[T]) Columns() (string, string) {
	return l.left, l.right
}

func (l *Link[T]) where(ctx context.Context, left, right uint) *gorm.DB {
	return l.db.WithContext(ctx).Where(l.left+" = ? AND "+l.right+" = ?", left, right)
}

func (l *Link[T]) List(ctx context.Context) ([]T, error) {
	items := []T{}
	err := l.db.WithContext(ctx).Order(l.left + " ASC").Order(l.right + " ASC").Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (l *Link[T]) Get(ctx context.Context, left, right uint) (*T, error) {
	var item T
	if err := l.where(ctx, left, right).First(&item).Error; err != nil {
		return nil, notFound(err)
	}
	return &item, nil
}

// Create links left and right; an existing link returns ErrAlreadyExists.
func (l *Link[T]) Create(ctx context.Context, left, right uint) (*T, error) {
	var count int64
	if err := l.where(ctx, left, right).Model(new(T)).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrAlreadyExists
	}

	item := l.newRecord(left, right)
	if err := l.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (l *Link[T]) Delete(ctx context.Context, left, right uint) error {
	result := l.where(ctx, left, right).Delete(new(T))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
