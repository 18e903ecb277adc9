package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/gridsight/hexviz/internal/dataset"
	"github.com/gridsight/hexviz/internal/store"
)

// loadRecords resolves the dataset for a command: from a named snapshot when
// --snapshot is set, otherwise by parsing the configured CSV source.
func loadRecords(ctx context.Context, snapshotName string) ([]dataset.CellRecord, error) {
	if snapshotName != "" {
		st, err := openStore(ctx)
		if err != nil {
			return nil, err
		}
		defer st.Close() //nolint:errcheck

		snap, err := st.GetSnapshot(ctx, snapshotName)
		if err != nil {
			return nil, err
		}
		return snap.Records, nil
	}

	loader := dataset.NewLoader(cfg.Dataset.Source, nil)
	return loader.Load(ctx), nil
}

// openStore opens the snapshot database and runs migrations.
func openStore(ctx context.Context) (store.Store, error) {
	st, err := store.NewSQLite(cfg.Store.Path)
	if err != nil {
		return nil, eris.Wrap(err, "open snapshot store")
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}
