package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/plaud-export/internal/tag"
)

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Stamp exported notes with their folder name as the first tag",
	Long: `Tag walks the export tree and makes each note's top-level folder its
first "#tag", inserting a tag line when the note has none.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		exportDir, _ := cmd.Flags().GetString("export-dir")
		if exportDir == "obsi" && viper.GetString("export_dir") != "" {
			exportDir = viper.GetString("export_dir")
		}
		if _, err := os.Stat(exportDir); err != nil {
			return fmt.Errorf("export directory %s: %w", exportDir, err)
		}

		summary, err := tag.Apply(exportDir, os.Stdout)
		if err != nil {
			return err
		}
		fmt.Printf("\n%d file(s) updated, %d failed\n", summary.Updated, summary.Failed)
		if summary.Failed > 0 {
			return fmt.Errorf("%d file(s) failed", summary.Failed)
		}
		return nil
	},
}

func init() {
	tagCmd.Flags().String("export-dir", "obsi", "base directory of the export tree")
	rootCmd.AddCommand(tagCmd)
}
