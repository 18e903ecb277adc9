// Package viewer builds and serves the choropleth map view.
package viewer

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/gridsight/hexviz/internal/dataset"
)

// State is the lifecycle state of a View.
type State string

const (
	// StateLoading is the initial state before the dataset has been read.
	StateLoading State = "loading"
	// StateReady means the dataset loaded with at least one record.
	StateReady State = "ready"
	// StateEmpty means the load produced zero records. Terminal; no retry.
	StateEmpty State = "empty"
)

// View owns one dataset for its lifetime: it loads exactly once and then
// stays Ready or Empty.
type View struct {
	loader *dataset.Loader

	once sync.Once

	mu      sync.RWMutex
	state   State
	records []dataset.CellRecord
	rng     dataset.ValueRange
}

// NewView creates a View in the Loading state.
func NewView(loader *dataset.Loader) *View {
	return &View{loader: loader, state: StateLoading}
}

// Load runs the dataset load on first call and returns the resulting state.
// Subsequent calls return the settled state without reloading.
func (v *View) Load(ctx context.Context) State {
	v.once.Do(func() {
		records := v.loader.Load(ctx)
		rng := dataset.ComputeRange(records)

		v.mu.Lock()
		defer v.mu.Unlock()
		v.records = records
		v.rng = rng
		if len(records) == 0 {
			v.state = StateEmpty
		} else {
			v.state = StateReady
		}

		zap.L().Info("view: dataset loaded",
			zap.Int("records", len(records)),
			zap.Float64("min", rng.Min),
			zap.Float64("max", rng.Max),
			zap.String("state", string(v.state)),
		)
	})

	return v.State()
}

// State returns the current lifecycle state.
func (v *View) State() State {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.state
}

// Records returns the loaded records. Valid once Load has returned.
func (v *View) Records() []dataset.CellRecord {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.records
}

// Range returns the value range of the loaded records.
func (v *View) Range() dataset.ValueRange {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.rng
}

// SetRecords seeds the view with an already-parsed dataset (snapshot serving
// path). It settles the state the same way Load does and disables the loader.
func (v *View) SetRecords(records []dataset.CellRecord) State {
	v.once.Do(func() {
		rng := dataset.ComputeRange(records)

		v.mu.Lock()
		defer v.mu.Unlock()
		v.records = records
		v.rng = rng
		if len(records) == 0 {
			v.state = StateEmpty
		} else {
			v.state = StateReady
		}
	})

	return v.State()
}
