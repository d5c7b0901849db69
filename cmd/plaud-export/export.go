package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/plaud-export/internal/export"
	"github.com/pdiddy/plaud-export/internal/gitsync"
	"github.com/pdiddy/plaud-export/internal/ledger"
	"github.com/pdiddy/plaud-export/internal/plaud"
	"github.com/pdiddy/plaud-export/internal/storage"
	"github.com/pdiddy/plaud-export/pkg/types"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export folders of recordings to the local Markdown tree",
	Long: `Export fetches every record of every folder (or one folder with --folder),
renders each record into a single Markdown document, and writes it under
<export-dir>/<folder>/<year>/<month>/. Records are processed one at a time
with a pacing delay; nothing runs concurrently.

With --archive, a record is moved to the remote trash only after its
document is confirmed on disk. A record that could not be written is never
archived.`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().String("folder", "", "export only this folder (by name)")
	exportCmd.Flags().String("export-dir", "obsi", "base directory for the export tree")
	exportCmd.Flags().Bool("archive", false, "move each record to the remote trash after its document is written")
	exportCmd.Flags().Duration("delay", defaultDelay, "pause between consecutive records")
	exportCmd.Flags().Bool("git", false, "git add/commit/pull/push the export tree afterwards")
	exportCmd.Flags().String("trace", "", "write an HTTP trace of all API calls to this JSONL file")
	exportCmd.Flags().Bool("no-metadata", false, "skip the per-record YAML sidecars")
	exportCmd.Flags().Bool("no-ledger", false, "skip recording the run in the SQLite ledger")

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := apiConfig(cmd)
	if err != nil {
		return err
	}

	folderName, _ := cmd.Flags().GetString("folder")
	exportDir, _ := cmd.Flags().GetString("export-dir")
	if exportDir == "obsi" && viper.GetString("export_dir") != "" {
		exportDir = viper.GetString("export_dir")
	}
	archive, _ := cmd.Flags().GetBool("archive")
	delay, _ := cmd.Flags().GetDuration("delay")
	doGit, _ := cmd.Flags().GetBool("git")
	tracePath, _ := cmd.Flags().GetString("trace")
	noMetadata, _ := cmd.Flags().GetBool("no-metadata")
	noLedger, _ := cmd.Flags().GetBool("no-ledger")

	client, cleanup, err := newAPIClient(cfg, tracePath)
	if err != nil {
		return err
	}
	defer cleanup()

	folders, err := client.ListFolders(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing folders: %w", err)
	}
	if folderName != "" {
		folders, err = selectFolder(folders, folderName)
		if err != nil {
			return err
		}
	}
	if len(folders) == 0 {
		fmt.Println("No folders found.")
		return nil
	}

	var store *ledger.Store
	if !noLedger {
		store, err = ledger.Open(ledgerPath(exportDir))
		if err != nil {
			// The ledger is bookkeeping; never fail an export over it.
			fmt.Fprintf(os.Stderr, "warning: run ledger unavailable: %v\n", err)
		} else {
			defer store.Close()
		}
	}

	failed := 0
	for i, folder := range folders {
		fmt.Printf("[%d/%d] %s\n", i+1, len(folders), folder.Name)

		records, err := client.ListRecords(cmd.Context(), folder)
		if err != nil {
			fmt.Fprintf(os.Stderr, "  failed: %v\n", err)
			failed++
			continue
		}
		if len(records) == 0 {
			fmt.Println("  no records")
			continue
		}
		fmt.Printf("  %d record(s)\n", len(records))

		coordinator := &export.Coordinator{
			Retriever:           client,
			Sink:                storage.NewDirSink(exportDir, folder.Name, !noMetadata),
			Archiver:            client,
			Delay:               delay,
			ArchiveAfterPersist: archive,
			Out:                 os.Stdout,
		}
		started := time.Now()
		summary, runErr := coordinator.Run(cmd.Context(), records)
		failed += summary.Failed

		if store != nil && summary.Attempted > 0 {
			if _, err := store.RecordRun(cmd.Context(), folder.Name, started, summary); err != nil {
				fmt.Fprintf(os.Stderr, "warning: recording run: %v\n", err)
			}
		}
		if runErr != nil {
			return runErr
		}
	}

	if doGit {
		if err := gitsync.Sync(exportDir, time.Now(), os.Stdout); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d record(s) failed", failed)
	}
	return nil
}

// selectFolder narrows the folder list to the one named name,
// case-insensitively.
func selectFolder(folders []types.Folder, name string) ([]types.Folder, error) {
	for _, f := range folders {
		if strings.EqualFold(strings.TrimSpace(f.Name), strings.TrimSpace(name)) {
			return []types.Folder{f}, nil
		}
	}
	names := make([]string, len(folders))
	for i, f := range folders {
		names[i] = f.Name
	}
	return nil, fmt.Errorf("folder %q not found (have: %s)", name, strings.Join(names, ", "))
}

var (
	_ export.Retriever = (*plaud.Client)(nil)
	_ export.Archiver  = (*plaud.Client)(nil)
)
