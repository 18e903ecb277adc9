package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/gridsight/hexviz/internal/dataset"
)

var statsSnapshot string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print dataset summary",
	RunE: func(cmd *cobra.Command, _ []string) error {
		records, err := loadRecords(cmd.Context(), statsSnapshot)
		if err != nil {
			return err
		}

		if len(records) == 0 {
			fmt.Println("dataset is empty")
			return nil
		}

		rng := dataset.ComputeRange(records)
		fmt.Printf("records: %d\n", len(records))
		fmt.Printf("range:   %.3f .. %.3f\n", rng.Min, rng.Max)

		byCity := make(map[string]int)
		for _, rec := range records {
			byCity[rec.City]++
		}
		cities := make([]string, 0, len(byCity))
		for city := range byCity {
			cities = append(cities, city)
		}
		sort.Strings(cities)
		for _, city := range cities {
			fmt.Printf("  %-20s %d\n", city, byCity[city])
		}
		return nil
	},
}

func init() {
	statsCmd.Flags().StringVar(&statsSnapshot, "snapshot", "", "read from a stored snapshot instead of the CSV source")
	rootCmd.AddCommand(statsCmd)
}
