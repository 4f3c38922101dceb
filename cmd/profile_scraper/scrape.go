package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/jonathan/profile-scraper/internal/config"
	"github.com/jonathan/profile-scraper/internal/extraction"
	"github.com/jonathan/profile-scraper/internal/fetch"
	"github.com/jonathan/profile-scraper/internal/observability"
	"github.com/jonathan/profile-scraper/internal/pacing"
	"github.com/jonathan/profile-scraper/internal/pipeline"
	"github.com/jonathan/profile-scraper/internal/sink"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Scrape every profile URL in the URL file into CSV",
	Long: "Visit each URL from the URL file in order, extract the profile fields and append one " +
		"row per URL to the output CSV (and PostgreSQL when a database URL is configured). " +
		"Pages behind a login wall or that fail to load are recorded with their status and " +
		"the batch continues.",
	RunE: runScrape,
}

func init() {
	addConfigFlags(scrapeCmd.Flags())
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	cfg, err := effectiveConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger := newLogger(cfg.Verbose)

	urls, err := pipeline.LoadURLs(cfg.URLsFile, cfg.MaxProfiles)
	if err != nil {
		return err
	}
	if len(urls) == 0 {
		return fmt.Errorf("no URLs found in %s", cfg.URLsFile)
	}
	logger.Info().Int("count", len(urls)).Str("file", cfg.URLsFile).Msg("loaded profile URLs")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, closeSource, err := openSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSource()

	out, err := openSinks(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = out.Close() }()

	printer := observability.NewPrinter(os.Stdout)
	runner := &pipeline.Runner{
		Source: fetch.NewRetrying(source, fetch.RetryConfig{
			MaxRetries:      uint64(cfg.MaxRetries),
			InitialInterval: fetch.DefaultRetryConfig().InitialInterval,
			MaxInterval:     fetch.DefaultRetryConfig().MaxInterval,
		}, logger),
		Extractor: extraction.New(logger),
		Sink:      out,
		Pacer: pacing.New(
			pacing.Range{Min: cfg.PoliteDelayMin, Max: cfg.PoliteDelayMax},
			pacing.Range{Min: cfg.ErrorBackoffMin, Max: cfg.ErrorBackoffMax},
		),
		Logger: logger,
		OnProgress: func(ev pipeline.ProgressEvent) {
			printer.PrintProgress(ev.Index, ev.Total, ev.Summary.Succeeded, ev.Summary.Failed)
		},
	}

	summary, runErr := runner.Run(ctx, urls)
	if err := out.Close(); err != nil {
		logger.Error().Err(err).Msg("failed to close output")
	}

	printer.PrintSummary(summary)
	if records, err := sink.ReadCSV(cfg.OutputCSV); err == nil {
		printer.PrintSample(records, observability.DefaultSampleSize)
	}
	fmt.Fprintf(os.Stdout, "Results saved to %s\n", cfg.OutputCSV)

	if errors.Is(runErr, context.Canceled) {
		return fmt.Errorf("batch interrupted after %d of %d profiles", summary.Processed, summary.Total)
	}
	return runErr
}

// openSource returns the page source for the configured fetch mode and a function releasing it.
func openSource(ctx context.Context, cfg config.Config, logger zerolog.Logger) (fetch.PageSource, func(), error) {
	if cfg.FetchMode == config.FetchModeHTTP {
		opts := fetch.DefaultOptions()
		opts.Timeout = cfg.PageTimeout
		return fetch.NewHTTPSource(opts), func() {}, nil
	}

	session, err := fetch.NewBrowserSession(ctx, fetch.BrowserOptions{
		Headless:    cfg.HeadlessEnabled(),
		PageTimeout: cfg.PageTimeout,
		SettleDelay: cfg.SettleDelay,
		UserAgent:   fetch.DefaultUserAgent,
		UserDataDir: cfg.UserDataDir,
	}, logger)
	if err != nil {
		return nil, nil, err
	}

	if cfg.ManualLogin {
		if err := session.Login(ctx, os.Stdout, os.Stdin); err != nil {
			_ = session.Close()
			return nil, nil, fmt.Errorf("manual login failed: %w", err)
		}
	}
	return session, func() { _ = session.Close() }, nil
}

// openSinks opens the CSV output and, when configured, the PostgreSQL table.
func openSinks(ctx context.Context, cfg config.Config, logger zerolog.Logger) (sink.Multi, error) {
	out := sink.Multi{sink.NewCSVSink(cfg.OutputCSV)}
	if cfg.DatabaseURL == "" {
		return out, nil
	}

	runID := uuid.New()
	pg, err := sink.ConnectPostgres(ctx, cfg.DatabaseURL, runID)
	if err != nil {
		return nil, err
	}
	logger.Info().Str("run_id", runID.String()).Msg("writing records to PostgreSQL")
	return append(out, pg), nil
}
