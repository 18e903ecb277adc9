package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridsight/hexviz/internal/dataset"
)

var importName string

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Freeze the CSV source as a named snapshot",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		loader := dataset.NewLoader(cfg.Dataset.Source, nil)
		records := loader.Load(ctx)
		if len(records) == 0 {
			return eris.Errorf("no records parsed from %s", cfg.Dataset.Source)
		}

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		snap, err := st.SaveSnapshot(ctx, importName, cfg.Dataset.Source, records)
		if err != nil {
			return err
		}

		zap.L().Info("snapshot saved",
			zap.String("name", snap.Name),
			zap.Int("records", snap.Count),
			zap.Float64("min", snap.Min),
			zap.Float64("max", snap.Max),
		)
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importName, "name", "", "snapshot name (required)")
	_ = importCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(importCmd)
}
