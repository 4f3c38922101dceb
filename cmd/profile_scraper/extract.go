package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jonathan/profile-scraper/internal/extraction"
	"github.com/jonathan/profile-scraper/internal/fetch"
	"github.com/jonathan/profile-scraper/internal/observability"
	"github.com/jonathan/profile-scraper/internal/schemas"
	"github.com/jonathan/profile-scraper/internal/types"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract <saved-page.html>",
	Short: "Extract profile fields from a saved HTML page",
	Long: "Run the extraction engine over a page saved to disk and print the resulting record. " +
		"With --json the record is validated against the profile record schema before printing.",
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

var (
	extractURL  string
	extractJSON bool
)

func init() {
	extractCmd.Flags().StringVar(&extractURL, "url", "", "URL to record for the page (default: the file path)")
	extractCmd.Flags().BoolVar(&extractJSON, "json", false, "Print the record as schema-validated JSON")

	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	logger := newLogger(verbose)

	record, err := extractRecord(cmd.Context(), args[0], extractURL, logger, time.Now)
	if err != nil {
		return err
	}

	if extractJSON {
		data, err := schemas.ValidateRecord(record)
		if err != nil {
			return fmt.Errorf("record failed schema validation: %w", err)
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}

	observability.NewPrinter(os.Stdout).PrintRecord(record)
	return nil
}

// extractRecord loads a saved page and builds its record the same way a batch run would.
func extractRecord(ctx context.Context, path, url string, logger zerolog.Logger, now func() time.Time) (types.ProfileRecord, error) {
	html, err := fetch.FileSource{}.PageHTML(ctx, path)
	if err != nil {
		return types.ProfileRecord{}, err
	}
	if url == "" {
		url = path
	}

	if fetch.IsLoginWall(html) {
		logger.Warn().Str("file", path).Msg("saved page is a login wall")
		return types.NewRecord(url, types.ProfileFields{}, types.LoginWall(), now()), nil
	}

	fields := extraction.New(logger).Extract(html)
	return types.NewRecord(url, fields, types.Success(), now()), nil
}
