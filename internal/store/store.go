// Package store persists frozen dataset snapshots in SQLite.
package store

import (
	"context"
	"time"

	"github.com/gridsight/hexviz/internal/dataset"
)

// Snapshot is a named, frozen copy of a parsed dataset.
type Snapshot struct {
	ID        string               `json:"id"`
	Name      string               `json:"name"`
	Source    string               `json:"source"`
	Records   []dataset.CellRecord `json:"records,omitempty"`
	Count     int                  `json:"count"`
	Min       float64              `json:"min"`
	Max       float64              `json:"max"`
	CreatedAt time.Time            `json:"created_at"`
}

// Store is the snapshot persistence interface.
type Store interface {
	Migrate(ctx context.Context) error
	SaveSnapshot(ctx context.Context, name, source string, records []dataset.CellRecord) (*Snapshot, error)
	GetSnapshot(ctx context.Context, name string) (*Snapshot, error)
	ListSnapshots(ctx context.Context) ([]Snapshot, error)
	DeleteSnapshot(ctx context.Context, name string) error
	Close() error
}
