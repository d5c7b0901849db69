package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var foldersCmd = &cobra.Command{
	Use:   "folders",
	Short: "List the remote folders",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := apiConfig(cmd)
		if err != nil {
			return err
		}
		client, cleanup, err := newAPIClient(cfg, "")
		if err != nil {
			return err
		}
		defer cleanup()

		folders, err := client.ListFolders(cmd.Context())
		if err != nil {
			return fmt.Errorf("listing folders: %w", err)
		}
		if len(folders) == 0 {
			fmt.Println("No folders found.")
			return nil
		}
		for _, f := range folders {
			fmt.Printf("%s\t%s\n", f.ID, f.Name)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(foldersCmd)
}
