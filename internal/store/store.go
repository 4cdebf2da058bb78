// Package store persists the kitchen entities and enforces their invariants:
// unique names, required relations, cascades and idempotent relation toggles.
package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

// PageSize is the fixed number of rows on every list page.
const PageSize = 5

var (
	// ErrNotFound is returned when an identifier does not resolve to a row.
	ErrNotFound = errors.New("record not found")
	// ErrPageNotFound is returned for page numbers outside the result.
	ErrPageNotFound = errors.New("page not found")
)

// Store wraps a GORM handle with the kitchen operations.
type Store struct {
	db *gorm.DB
}

// New returns a Store bound to db.
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) conn(ctx context.Context) (*gorm.DB, error) {
	if s == nil || s.db == nil {
		return nil, gorm.ErrInvalidDB
	}
	return s.db.WithContext(ctx), nil
}

// transaction runs fn against a Store bound to a transaction.
func (s *Store) transaction(ctx context.Context, fn func(tx *Store) error) error {
	db, err := s.conn(ctx)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}

// Page is one slice of an ordered, filtered list.
type Page[T any] struct {
	Items    []T
	Number   int
	NumPages int
	Total    int64
}

// HasPrevious reports whether a page precedes this one.
func (p Page[T]) HasPrevious() bool { return p.Number > 1 }

// HasNext reports whether a page follows this one.
func (p Page[T]) HasNext() bool { return p.Number < p.NumPages }

// ParsePage reads a 1-based page number from a query value. An empty value
// selects the first page and "last" selects the final one (returned as -1).
func ParsePage(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	switch trimmed {
	case "":
		return 1, nil
	case "last":
		return -1, nil
	}
	n, err := strconv.Atoi(trimmed)
	if err != nil || n < 1 {
		return 0, ErrPageNotFound
	}
	return n, nil
}

// paginate counts the filtered query, then loads the requested page ordered
// by order. Page 1 of an empty result is valid; every other page outside the
// result is ErrPageNotFound. A page of -1 selects the last page.
func paginate[T any](query *gorm.DB, order string, page int) (Page[T], error) {
	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return Page[T]{}, fmt.Errorf("count: %w", err)
	}

	numPages := int((total + PageSize - 1) / PageSize)
	if numPages == 0 {
		numPages = 1
	}
	if page == -1 {
		page = numPages
	}
	if page < 1 || page > numPages {
		return Page[T]{}, ErrPageNotFound
	}

	items := make([]T, 0, PageSize)
	err := query.Session(&gorm.Session{}).
		Order(order).
		Offset((page - 1) * PageSize).
		Limit(PageSize).
		Find(&items).Error
	if err != nil {
		return Page[T]{}, fmt.Errorf("list: %w", err)
	}

	return Page[T]{Items: items, Number: page, NumPages: numPages, Total: total}, nil
}

// containsFilter adds a case-insensitive substring match on column. Both
// sides are lowered by the database. An empty term leaves the query untouched.
func containsFilter(query *gorm.DB, column, term string) *gorm.DB {
	if term == "" {
		return query
	}
	return query.Where("LOWER("+column+") LIKE LOWER(?) ESCAPE '\\'", "%"+escapeLike(term)+"%")
}

func escapeLike(value string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return replacer.Replace(value)
}

// ValidationError collects field level problems. No write happens when one
// is returned.
type ValidationError struct {
	Fields map[string][]string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, key+": "+strings.Join(e.Fields[key], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}

// Add records a message for field.
func (e *ValidationError) Add(field, message string) {
	if e.Fields == nil {
		e.Fields = make(map[string][]string)
	}
	e.Fields[field] = append(e.Fields[field], message)
}

// Field returns the first message recorded for field.
func (e *ValidationError) Field(field string) string {
	if e == nil || len(e.Fields[field]) == 0 {
		return ""
	}
	return e.Fields[field][0]
}

// Err returns e when it holds at least one problem, nil otherwise.
func (e *ValidationError) Err() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// FieldError builds a single-field ValidationError.
func FieldError(field, message string) *ValidationError {
	v := &ValidationError{}
	v.Add(field, message)
	return v
}

// AsValidation unwraps a ValidationError from err.
func AsValidation(err error) (*ValidationError, bool) {
	var v *ValidationError
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// exists reports whether a row of model matches column = value, ignoring the
// row with excludeID.
func (s *Store) exists(ctx context.Context, model any, column string, value any, excludeID uint) (bool, error) {
	db, err := s.conn(ctx)
	if err != nil {
		return false, err
	}
	query := db.Model(model).Where(column+" = ?", value)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// checkUnique adds a field error when value is already taken.
func (s *Store) checkUnique(ctx context.Context, verr *ValidationError, model any, field, label, value string, excludeID uint) error {
	if value == "" {
		return nil
	}
	taken, err := s.exists(ctx, model, field, value, excludeID)
	if err != nil {
		return fmt.Errorf("check %s uniqueness: %w", field, err)
	}
	if taken {
		verr.Add(field, fmt.Sprintf("%s with this %s already exists.", label, strings.ReplaceAll(field, "_", " ")))
	}
	return nil
}

// translateWriteError maps a unique index violation raced past the up-front
// check onto the same field error.
func translateWriteError(err error, field, label string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return FieldError(field, fmt.Sprintf("%s with this %s already exists.", label, field))
	}
	return err
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

func requireText(verr *ValidationError, field, value string, max int) {
	switch {
	case value == "":
		verr.Add(field, "This field is required.")
	case max > 0 && len([]rune(value)) > max:
		verr.Add(field, fmt.Sprintf("Ensure this value has at most %d characters.", max))
	}
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
