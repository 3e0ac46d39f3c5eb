// Package store archives encoding results.
//
// The archive keeps each encoded flowsheet as a small document (notation,
// content hash, counts) so that past runs can be listed and fetched without
// re-encoding. The MongoDB backend is intended for server deployments; the
// CLI only archives when asked to.
package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Record is an archived encoding result.
type Record struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name"`             // Flowsheet name
	SheetHash string    `json:"sheet_hash" bson:"sheet_hash"` // Content hash of the flowsheet JSON
	Notation  string    `json:"notation" bson:"notation"`     // The SFILES string
	Units     int       `json:"units" bson:"units"`
	Streams   int       `json:"streams" bson:"streams"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// Store is the interface for archive backends.
type Store interface {
	// Save persists a record. The record's ID must be set.
	Save(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID. Returns ErrNotFound if absent.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns the most recent records, newest first, up to limit.
	List(ctx context.Context, limit int) ([]Record, error)

	// Close releases backend resources.
	Close(ctx context.Context) error
}
