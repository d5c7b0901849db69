package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/plaud-export/internal/ledger"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show export run history from the local ledger",
	RunE: func(cmd *cobra.Command, args []string) error {
		exportDir, _ := cmd.Flags().GetString("export-dir")
		if exportDir == "obsi" && viper.GetString("export_dir") != "" {
			exportDir = viper.GetString("export_dir")
		}
		path, _ := cmd.Flags().GetString("ledger")
		if path == "" {
			path = ledgerPath(exportDir)
		}
		limit, _ := cmd.Flags().GetInt("limit")
		showOutcomes, _ := cmd.Flags().GetBool("outcomes")

		store, err := ledger.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.ListRuns(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			fmt.Println("No runs recorded.")
			return nil
		}
		for _, r := range runs {
			fmt.Printf("%s  %s  %-20s %d attempted, %d persisted, %d archived, %d failed\n",
				r.StartedAt.Local().Format("2006-01-02 15:04"), r.ID[:8], r.Folder,
				r.Attempted, r.Persisted, r.Archived, r.Failed)
			if !showOutcomes {
				continue
			}
			outcomes, err := store.RunOutcomes(cmd.Context(), r.ID)
			if err != nil {
				return err
			}
			for _, o := range outcomes {
				status := "failed"
				switch {
				case o.Archived:
					status = "archived"
				case o.Persisted:
					status = "persisted"
				}
				line := fmt.Sprintf("    %-28s %s", o.RecordID, status)
				if o.Err != "" {
					line += "  (" + o.Err + ")"
				}
				fmt.Println(line)
			}
		}
		return nil
	},
}

func init() {
	runsCmd.Flags().String("export-dir", "obsi", "base directory of the export tree")
	runsCmd.Flags().String("ledger", "", "ledger database path (default: <export-dir>/.index/export.db)")
	runsCmd.Flags().Int("limit", 20, "maximum number of runs to show")
	runsCmd.Flags().Bool("outcomes", false, "also show per-record outcomes")

	rootCmd.AddCommand(runsCmd)
}

// ledgerPath returns the default ledger location under the export tree.
func ledgerPath(exportDir string) string {
	if p := viper.GetString("ledger_path"); p != "" {
		return p
	}
	return filepath.Join(exportDir, ".index", "export.db")
}
