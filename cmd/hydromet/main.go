package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/i474232898/hydromet/internal/config"
	"github.com/i474232898/hydromet/internal/hydromet"
	"github.com/i474232898/hydromet/internal/hydromet/providers"
	"github.com/i474232898/hydromet/internal/logging"
	"github.com/i474232898/hydromet/internal/store"
)

const appName = "hydromet"

var (
	cfg    *config.AppConfig
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   appName,
	Short: "Hydromet - station report parser",
	Long: `Hydromet fetches the observation table published by a weather station,
stores it as a dated flat file and reports temperature extremes.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	envErr := godotenv.Load()

	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = logging.New(os.Stderr, cfg, appName)
	slog.SetDefault(logger)
	if envErr != nil {
		logger.Debug("no .env file loaded", "err", envErr)
	}
	return nil
}

// newService wires the extractor and flat file store into a pipeline service.
func newService(reports hydromet.ReportStore) *hydromet.Service {
	// Shared HTTP client for outbound station calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	extractor := providers.NewHTMLTableProvider(httpClient, cfg.SourceCharset, cfg.FetchRetries)
	files := store.NewFlatFile(cfg.DataDir)

	return hydromet.NewService(extractor, files, reports, cfg.PipelineOptions(), logger)
}
