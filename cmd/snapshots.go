package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var snapshotsCmd = &cobra.Command{
	Use:   "snapshots",
	Short: "List stored dataset snapshots",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		snaps, err := st.ListSnapshots(ctx)
		if err != nil {
			return err
		}
		if len(snaps) == 0 {
			fmt.Println("no snapshots")
			return nil
		}

		fmt.Printf("%-20s %8s %12s %12s  %s\n", "NAME", "RECORDS", "MIN", "MAX", "CREATED")
		for _, s := range snaps {
			fmt.Printf("%-20s %8d %12.3f %12.3f  %s\n",
				s.Name, s.Count, s.Min, s.Max, s.CreatedAt.Format("2006-01-02 15:04"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(snapshotsCmd)
}
