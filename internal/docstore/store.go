// Package docstore is the document store collaborator: schemaless records
// grouped in named collections, created with a generated id or put under a
// caller-chosen one.
package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Collections used by the service.
const (
	Reports          = "reports"
	AdoptionRequests = "adoptionRequests"
	Appointments     = "appointments"
	Posts            = "posts"
	Discussions      = "discussions"
	Users            = "users"
	Carts            = "carts"
)

// TimeLayout is the fixed-width UTC layout used for timestamps inside
// documents, so that ordering by the string value is chronological.
const TimeLayout = "2006-01-02T15:04:05.000000Z"

// FormatTime renders t with TimeLayout.
func FormatTime(t time.Time) string { return t.UTC().Format(TimeLayout) }

// ParseTime parses a timestamp written by FormatTime.
func ParseTime(s string) (time.Time, error) { return time.Parse(TimeLayout, s) }

// ErrNotFound is returned when a document does not exist.
var ErrNotFound = errors.New("document not found")

// Operator is a filter comparison.
type Operator string

const (
	OpEqual Operator = "=="
	OpIn    Operator = "in"
)

// Filter restricts a query on one top-level field.
type Filter struct {
	Field string
	Op    Operator
	Value any
}

// Where builds an equality filter.
func Where(field string, value any) Filter { return Filter{Field: field, Op: OpEqual, Value: value} }

// In builds a membership filter.
func In(field string, values ...string) Filter { return Filter{Field: field, Op: OpIn, Value: values} }

// Query selects documents of one collection.
type Query struct {
	Collection string
	Filters    []Filter
	OrderBy    string
	Desc       bool
}

// Document is a stored record.
type Document struct {
	ID         string
	Collection string
	Data       map[string]any
	CreatedAt  time.Time
}

// Store is the document store port.
type Store interface {
	Create(ctx context.Context, collection string, data map[string]any) (string, error)
	Put(ctx context.Context, collection, id string, data map[string]any) error
	Get(ctx context.Context, collection, id string) (Document, error)
	Query(ctx context.Context, q Query) ([]Document, error)
	Delete(ctx context.Context, collection, id string) error
	Count(ctx context.Context, collection string) (int64, error)
}

// normalize round-trips data through JSON so that both stores hand back the
// same shapes (numbers as float64, nested structs as maps).
func normalize(data map[string]any) (map[string]any, []byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, nil, fmt.Errorf("encode document: %w", err)
	}
	out := map[string]any{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, nil, fmt.Errorf("decode document: %w", err)
	}
	return out, raw, nil
}

func validateFilter(f Filter) error {
	if f.Field == "" {
		return fmt.Errorf("filter field is required")
	}
	switch f.Op {
	case OpEqual:
		return nil
	case OpIn:
		if _, ok := f.Value.([]string); !ok {
			return fmt.Errorf("filter %s: in requires a string list", f.Field)
		}
		return nil
	}
	return fmt.Errorf("filter %s: unsupported operator %q", f.Field, f.Op)
}
