package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"sheetq/pkg/config"
	"sheetq/pkg/gsheet"

	log "github.com/sirupsen/logrus"
)

var (
	cfgPath       string
	verbose       bool
	localPreview  bool
	spreadsheetID string
)

func main() {
	// A missing .env is fine; env vars may come from the shell.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "sheetq",
		Short: "Batching client for Google Sheets",
		Long: `sheetq queues worksheet mutations locally and commits them in batched
API calls, or renders them as local HTML previews when run with --preview.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				log.SetLevel(log.DebugLevel)
			}
			log.SetFormatter(&log.TextFormatter{
				FullTimestamp: true,
			})
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "sheetq.toml", "Path to the settings file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.PersistentFlags().BoolVar(&localPreview, "preview", false, "Render locally instead of calling the API")
	rootCmd.PersistentFlags().StringVar(&spreadsheetID, "spreadsheet", "", "Spreadsheet ID (overrides config and SPREADSHEET_ID)")

	rootCmd.AddCommand(tabsCmd(), pushCmd(), deleteCmd(), serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openSession builds a Spreadsheet from flags, the settings file, and the
// environment.
func openSession(ctx context.Context) (*gsheet.Spreadsheet, *config.Store, error) {
	store, err := config.Open(cfgPath)
	if err != nil {
		return nil, nil, err
	}

	id := spreadsheetID
	if id == "" {
		id = store.Settings.SpreadsheetID
	}
	if id == "" {
		id = os.Getenv("SPREADSHEET_ID")
	}

	creds, err := config.Credentials()
	if err != nil {
		return nil, nil, err
	}

	cfg := gsheet.Config{
		SpreadsheetID:   id,
		Name:            store.Settings.SpreadsheetName,
		CredentialsJSON: creds,
		CredentialsFile: store.Settings.CredentialsFile,
		MaxRetries:      store.Settings.MaxRetries,
		BaseDelay:       time.Duration(store.Settings.BaseDelaySecs * float64(time.Second)),
		LocalPreview:    localPreview,
		PreviewDir:      store.Settings.PreviewDir,
	}

	sp, err := gsheet.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	return sp, store, nil
}
