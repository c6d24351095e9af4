package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned instead of gorm.ErrRecordNotFound.
var ErrNotFound = errors.New("record not found")

// ErrDuplicate is what a write that hits a unique index returns once the
// connection is opened with TranslateError.
var ErrDuplicate = gorm.ErrDuplicatedKey

// Scope narrows a query. Scopes are applied to both the count and the page query,
// so they must not order or preload.
type Scope func(*gorm.DB) *gorm.DB

// ListOptions controls ordering, eager loading and paging of a list query.
// A zero Limit means no limit.
type ListOptions struct {
	Page     int
	Limit    int
	Order    string
	Preloads []string
}

func (o ListOptions) offset() int {
	if o.Page < 1 || o.Limit < 1 {
		return 0
	}
	return (o.Page - 1) * o.Limit
}

// Repository is the CRUD surface shared by every entity.
type Repository[T any] struct {
	db *gorm.DB
}

func New[T any](db *gorm.DB) *Repository[T] {
	return &Repository[T]{db: db}
}

// conn returns the transaction bound to ctx, if any, or the root handle.
func (r *Repository[T]) conn(ctx context.Context) *gorm.DB {
	return connFrom(ctx, r.db)
}

func (r *Repository[T]) Create(ctx context.Context, v *T) error {
	return r.conn(ctx).Omit(clause.Associations).Create(v).Error
}

func (r *Repository[T]) Get(ctx context.Context, id uint, preloads ...string) (*T, error) {
	q := r.conn(ctx)
	for _, p := range preloads {
		q = q.Preload(p)
	}
	v := new(T)
	if err := q.First(v, id).Error; err != nil {
		return nil, notFound(err)
	}
	return v, nil
}

// Save writes every column of v. Associations are never cascaded.
func (r *Repository[T]) Save(ctx context.Context, v *T) error {
	return r.conn(ctx).Omit(clause.Associations).Save(v).Error
}

func (r *Repository[T]) Delete(ctx context.Context, id uint) error {
	res := r.conn(ctx).Delete(new(T), id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteIDs removes the rows with the given ids that also match filters.
func (r *Repository[T]) DeleteIDs(ctx context.Context, ids []uint, filters ...Scope) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.conn(ctx).Scopes(scopes(filters)...).Where("id IN ?", ids).Delete(new(T))
	return res.RowsAffected, res.Error
}

func (r *Repository[T]) DeleteAll(ctx context.Context) (int64, error) {
	res := r.conn(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(T))
	return res.RowsAffected, res.Error
}

func (r *Repository[T]) FindIDs(ctx context.Context, ids []uint) ([]T, error) {
	var out []T
	if len(ids) == 0 {
		return out, nil
	}
	err := r.conn(ctx).Where("id IN ?", ids).Find(&out).Error
	return out, err
}

// All returns every row in the given order.
func (r *Repository[T]) All(ctx context.Context, order string) ([]T, error) {
	return r.Find(ctx, ListOptions{Order: order})
}

func (r *Repository[T]) Find(ctx context.Context, opts ListOptions, filters ...Scope) ([]T, error) {
	var out []T
	q := r.conn(ctx).Scopes(scopes(filters)...)
	for _, p := range opts.Preloads {
		q = q.Preload(p)
	}
	if opts.Order != "" {
		q = q.Order(opts.Order)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit).Offset(opts.offset())
	}
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository[T]) First(ctx context.Context, order string, filters ...Scope) (*T, error) {
	q := r.conn(ctx).Scopes(scopes(filters)...)
	if order != "" {
		q = q.Order(order)
	}
	v := new(T)
	if err := q.Take(v).Error; err != nil {
		return nil, notFound(err)
	}
	return v, nil
}

func (r *Repository[T]) Count(ctx context.Context, filters ...Scope) (int64, error) {
	var n int64
	err := r.conn(ctx).Model(new(T)).Scopes(scopes(filters)...).Count(&n).Error
	return n, err
}

// Page counts the matching rows and returns one page of them.
func (r *Repository[T]) Page(ctx context.Context, opts ListOptions, filters ...Scope) ([]T, int64, error) {
	total, err := r.Count(ctx, filters...)
	if err != nil {
		return nil, 0, fmt.Errorf("count: %w", err)
	}
	if total == 0 {
		return []T{}, 0, nil
	}
	rows, err := r.Find(ctx, opts, filters...)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func scopes(in []Scope) []func(*gorm.DB) *gorm.DB {
	out := make([]func(*gorm.DB) *gorm.DB, 0, len(in))
	for _, s := range in {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// Where is a Scope around a single condition.
func Where(query string, args ...interface{}) Scope {
	return func(db *gorm.DB) *gorm.DB { return db.Where(query, args...) }
}

// Like matches any of columns against %term%, case-insensitively.
func Like(term string, columns ...string) Scope {
	if term == "" || len(columns) == 0 {
		return nil
	}
	pattern := "%" + strings.ToLower(term) + "%"
	return func(db *gorm.DB) *gorm.DB {
		cond := db.Session(&gorm.Session{NewDB: true})
		for i, c := range columns {
			if i == 0 {
				cond = cond.Where("LOWER("+c+") LIKE ?", pattern)
				continue
			}
			cond = cond.Or("LOWER("+c+") LIKE ?", pattern)
		}
		return db.Where(cond)
	}
}
