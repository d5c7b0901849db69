// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the plaud-export CLI.
package main

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/plaud-export/internal/netlog"
	"github.com/pdiddy/plaud-export/internal/plaud"
	"github.com/pdiddy/plaud-export/internal/token"
	"github.com/pdiddy/plaud-export/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	defaultTimeout   = 30 * time.Second
	defaultDelay     = 500 * time.Millisecond
	defaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// rootCmd is the base command for the plaud-export CLI.
var rootCmd = &cobra.Command{
	Use:   "plaud-export",
	Short: "Export Plaud recordings to Markdown, with safe remote archival",
	Long: `plaud-export downloads note records from the Plaud web API, merges each
record's transcripts, outlines, summaries, and notes into one Markdown
document, and writes them into a folder/year/month export tree.

With --archive, each remote record is moved to the trash only after its
document has been durably written locally. Run history is kept in a local
SQLite ledger.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./plaud-export.yaml or ~/.config/plaud-export/config.yaml)")
	rootCmd.PersistentFlags().String("base-url", "", "API base URL (default: "+plaud.DefaultBaseURL+")")
	rootCmd.PersistentFlags().String("token-file", ".token", "path to the bearer token file")
	rootCmd.PersistentFlags().Duration("timeout", defaultTimeout, "HTTP request timeout")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("plaud-export")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "plaud-export"))
		}
	}

	viper.SetEnvPrefix("PLAUD_EXPORT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// apiConfig assembles the API settings from flags, config file, and the
// token file, in that precedence for the base URL.
func apiConfig(cmd *cobra.Command) (types.APIConfig, error) {
	baseURL, _ := cmd.Flags().GetString("base-url")
	if baseURL == "" {
		baseURL = viper.GetString("base_url")
	}
	timeout, _ := cmd.Flags().GetDuration("timeout")

	tokenFile, _ := cmd.Flags().GetString("token-file")
	tok := viper.GetString("token")
	if tok == "" {
		loaded, err := token.Load(tokenFile)
		if err != nil {
			return types.APIConfig{}, fmt.Errorf("no API token: %w (create %s with the bearer token)", err, tokenFile)
		}
		tok = loaded
	}

	return types.APIConfig{
		HTTPConfig: types.HTTPConfig{Timeout: timeout, UserAgent: defaultUserAgent},
		BaseURL:    baseURL,
		Token:      tok,
	}, nil
}

// newAPIClient builds the API client, mirroring traffic into a netlog sink
// when tracePath is set. The returned cleanup closes the trace file.
func newAPIClient(cfg types.APIConfig, tracePath string) (*plaud.Client, func(), error) {
	httpClient := &http.Client{Timeout: cfg.Timeout}
	cleanup := func() {}

	if tracePath != "" {
		f, err := os.Create(tracePath)
		if err != nil {
			return nil, nil, fmt.Errorf("creating trace file: %w", err)
		}
		sink := netlog.NewSink(f)
		httpClient.Transport = netlog.NewTransport(sink, nil)
		cleanup = func() {
			for kind, n := range sink.Summary() {
				fmt.Fprintf(os.Stderr, "trace: %d %s events\n", n, kind)
			}
			f.Close()
		}
	}

	return plaud.NewClient(cfg, httpClient), cleanup, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
