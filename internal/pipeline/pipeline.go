// Package pipeline runs a batch of profile URLs through fetch, extraction and the output sinks.
package pipeline

import (
	"context"
	"errors"
	"time"

	"github.com/jonathan/profile-scraper/internal/fetch"
	"github.com/jonathan/profile-scraper/internal/sink"
	"github.com/jonathan/profile-scraper/internal/types"
	"github.com/rs/zerolog"
)

// Extractor turns raw page markup into profile fields.
type Extractor interface {
	Extract(rawHTML string) types.ProfileFields
}

// Pacer spaces out page loads. Admit gates every load; Wait and Backoff run after a page.
type Pacer interface {
	Admit(ctx context.Context) error
	Wait(ctx context.Context) (time.Duration, error)
	Backoff(ctx context.Context) (time.Duration, error)
}

// ProgressEvent is reported after every visited URL.
type ProgressEvent struct {
	Index   int // 1-based position in the batch
	Total   int
	Record  types.ProfileRecord
	Summary Summary
}

// ProgressCallback is called when a URL has been processed and persisted.
type ProgressCallback func(event ProgressEvent)

// Summary tallies a batch.
type Summary struct {
	Total      int
	Processed  int
	Succeeded  int
	LoginWalls int
	Failed     int // login walls and fetch errors
	SinkErrors int
}

// Runner processes URLs strictly one after another.
type Runner struct {
	Source     fetch.PageSource
	Extractor  Extractor
	Sink       sink.Sink
	Pacer      Pacer
	Logger     zerolog.Logger
	Clock      func() time.Time
	OnProgress ProgressCallback
}

// Run visits every URL, appends one record per URL to the sink and returns the tally.
// A failing page or sink never stops the batch. When ctx is cancelled, Run stops before the
// next URL and returns the partial summary together with ctx.Err().
func (r *Runner) Run(ctx context.Context, urls []string) (Summary, error) {
	summary := Summary{Total: len(urls)}
	clock := r.Clock
	if clock == nil {
		clock = time.Now
	}

	for i, url := range urls {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if r.Pacer != nil {
			if err := r.Pacer.Admit(ctx); err != nil {
				return summary, err
			}
		}
		r.Logger.Info().Int("index", i+1).Int("total", len(urls)).Str("url", url).Msg("processing profile")

		record, err := r.visit(ctx, url, clock)
		if err != nil {
			return summary, err
		}

		if err := r.Sink.Append(ctx, record); err != nil {
			summary.SinkErrors++
			r.Logger.Error().Err(err).Str("url", url).Msg("failed to persist record")
		}

		summary.Processed++
		switch record.Status.Kind {
		case types.StatusSuccess:
			summary.Succeeded++
		case types.StatusLoginWall:
			summary.LoginWalls++
			summary.Failed++
		default:
			summary.Failed++
		}
		r.logRecord(record)

		if r.OnProgress != nil {
			r.OnProgress(ProgressEvent{Index: i + 1, Total: len(urls), Record: record, Summary: summary})
		}

		if i == len(urls)-1 || r.Pacer == nil {
			continue
		}
		if err := r.pace(ctx, record); err != nil {
			return summary, err
		}
	}

	r.Logger.Info().
		Int("succeeded", summary.Succeeded).
		Int("failed", summary.Failed).
		Int("total", summary.Total).
		Msg("batch complete")
	return summary, nil
}

// visit builds the record for one URL. It only returns an error when ctx was cancelled
// while the page was loading.
func (r *Runner) visit(ctx context.Context, url string, clock func() time.Time) (types.ProfileRecord, error) {
	html, err := r.Source.PageHTML(ctx, url)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return types.ProfileRecord{}, ctxErr
		}
		r.Logger.Warn().Err(err).Str("url", url).Msg("page load failed")
		return types.NewRecord(url, types.ProfileFields{}, types.Failed(failureReason(err)), clock()), nil
	}

	if fetch.IsLoginWall(html) {
		r.Logger.Warn().Str("url", url).Msg("login wall detected")
		return types.NewRecord(url, types.ProfileFields{}, types.LoginWall(), clock()), nil
	}

	fields := r.Extractor.Extract(html)
	return types.NewRecord(url, fields, types.Success(), clock()), nil
}

func (r *Runner) pace(ctx context.Context, record types.ProfileRecord) error {
	var d time.Duration
	var err error
	if record.Status.Kind == types.StatusError {
		d, err = r.Pacer.Backoff(ctx)
	} else {
		d, err = r.Pacer.Wait(ctx)
	}
	if err != nil {
		return err
	}
	r.Logger.Debug().Dur("delay", d).Msg("paused before next profile")
	return nil
}

func (r *Runner) logRecord(record types.ProfileRecord) {
	if !record.Succeeded() {
		r.Logger.Info().Str("status", record.Status.String()).Msg("profile skipped")
		return
	}
	r.Logger.Info().
		Str("name", record.Name).
		Str("headline", truncate(record.Headline, 60)).
		Str("current_company", record.CurrentCompany).
		Str("previous_company", record.PreviousCompany).
		Bool("about", record.About != "").
		Msg("profile extracted")
}

// failureReason prefers the innermost cause so the stored reason names what actually broke.
func failureReason(err error) string {
	var fetchErr *fetch.Error
	if errors.As(err, &fetchErr) && fetchErr.Cause != nil {
		return fetchErr.Message + ": " + fetchErr.Cause.Error()
	}
	if errors.As(err, &fetchErr) {
		return fetchErr.Message
	}
	return err.Error()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
