package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gridsight/hexviz/internal/dataset"
	"github.com/gridsight/hexviz/internal/viewer"
)

var (
	renderOut      string
	renderSnapshot string
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Write the colored layer as GeoJSON",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		records, err := loadRecords(ctx, renderSnapshot)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return eris.New("dataset is empty, nothing to render")
		}

		layer, err := viewer.BuildLayer(records, dataset.ComputeRange(records), cfg.Map)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(layer.Features, "", "  ")
		if err != nil {
			return eris.Wrap(err, "marshal feature collection")
		}
		data = append(data, '\n')

		if renderOut == "" || renderOut == "-" {
			_, err = os.Stdout.Write(data)
			return eris.Wrap(err, "write stdout")
		}
		if err := os.WriteFile(renderOut, data, 0o644); err != nil {
			return eris.Wrapf(err, "write %s", renderOut)
		}

		zap.L().Info("render complete",
			zap.String("out", renderOut),
			zap.Int("features", layer.Count),
		)
		return nil
	},
}

func init() {
	renderCmd.Flags().StringVar(&renderOut, "out", "-", "output file (- for stdout)")
	renderCmd.Flags().StringVar(&renderSnapshot, "snapshot", "", "render from a stored snapshot instead of the CSV source")
	rootCmd.AddCommand(renderCmd)
}
