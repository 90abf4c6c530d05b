// Package store persists named layouts.
//
// A [SavedLayout] snapshots one packed result under a human-readable name so
// it can be fetched, listed, and diffed later. Two backends exist: an
// in-memory store for tests and single-process use, and a MongoDB store for
// shared deployments. Both implement [Store].
package store

import (
	"context"
	"errors"
	"time"

	"github.com/Inutilepat83/OSI-Cards-sub011/pkg/grid"
)

// ErrNotFound indicates the requested layout does not exist.
var ErrNotFound = errors.New("layout not found")

// SavedLayout is one persisted layout snapshot.
type SavedLayout struct {
	ID        string            `json:"id" bson:"_id"`
	Name      string            `json:"name" bson:"name"`
	Strategy  string            `json:"strategy,omitempty" bson:"strategy,omitempty"`
	CreatedAt time.Time         `json:"created_at" bson:"created_at"`
	Result    grid.LayoutResult `json:"result" bson:"result"`
}

// Store persists and retrieves saved layouts.
//
// Save is an upsert: writing an ID that already exists replaces the previous
// snapshot. Get and Delete return [ErrNotFound] for unknown IDs.
type Store interface {
	Save(ctx context.Context, layout SavedLayout) error
	Get(ctx context.Context, id string) (SavedLayout, error)

	// List returns layouts newest first, up to limit. A non-positive limit
	// returns everything.
	List(ctx context.Context, limit int) ([]SavedLayout, error)

	Delete(ctx context.Context, id string) error
	Close(ctx context.Context) error
}
