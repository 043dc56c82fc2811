// Package store persists the test cases saved through the API. One
// collection, insert/list/delete only: records are immutable once created.
package store

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound    = errors.New("test case not found")
	ErrInvalidID   = errors.New("invalid test case id")
	ErrUnavailable = errors.New("store unavailable")
)

// TestCase is a saved token under test. ID and CreatedAt are assigned by
// the store at insert time and never change.
type TestCase struct {
	ID          string    `json:"id" bson:"-"`
	Token       string    `json:"token" bson:"token"`
	Secret      string    `json:"secret,omitempty" bson:"secret,omitempty"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Metadata    string    `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// TestCaseStore is the persistence boundary. Implementations must be safe
// for concurrent use by in-flight requests.
type TestCaseStore interface {
	// Insert stores a new record and returns it with ID and CreatedAt set.
	Insert(ctx context.Context, tc *TestCase) (*TestCase, error)
	// ListAll returns every stored record, newest first.
	ListAll(ctx context.Context) ([]TestCase, error)
	// DeleteByID reports whether a record was actually removed; deleting an
	// absent id is not an error.
	DeleteByID(ctx context.Context, id string) (bool, error)
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
