package fetch

import (
	"context"
	"errors"
	"io/fs"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
)

// RetryConfig configures the Retrying source.
type RetryConfig struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryConfig retries a failed page load twice.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries:      2,
		InitialInterval: time.Second,
		MaxInterval:     5 * time.Second,
	}
}

// Retrying wraps a PageSource with exponential back-off.
type Retrying struct {
	source PageSource
	cfg    RetryConfig
	logger zerolog.Logger
}

// NewRetrying wraps source.
func NewRetrying(source PageSource, cfg RetryConfig, logger zerolog.Logger) *Retrying {
	return &Retrying{source: source, cfg: cfg, logger: logger}
}

// PageHTML implements PageSource. Client errors, login walls and cancellation are not retried.
func (r *Retrying) PageHTML(ctx context.Context, url string) (string, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.cfg.InitialInterval
	b.MaxInterval = r.cfg.MaxInterval
	bo := backoff.WithContext(backoff.WithMaxRetries(b, r.cfg.MaxRetries), ctx)

	var html string
	attempt := 0
	op := func() error {
		attempt++
		page, err := r.source.PageHTML(ctx, url)
		if err == nil {
			html = page
			return nil
		}
		if ctx.Err() != nil {
			return backoff.Permanent(ctx.Err())
		}
		if isPermanent(err) {
			return backoff.Permanent(err)
		}
		r.logger.Warn().Err(err).Str("url", url).Int("attempt", attempt).Msg("page load failed, retrying")
		return err
	}

	if err := backoff.Retry(op, bo); err != nil {
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			return "", permanent.Err
		}
		return "", err
	}
	return html, nil
}

func isPermanent(err error) bool {
	if errors.Is(err, ErrLoginWall) || errors.Is(err, ErrInvalidURL) || errors.Is(err, fs.ErrNotExist) {
		return true
	}
	var fetchErr *Error
	if errors.As(err, &fetchErr) {
		code := fetchErr.StatusCode
		return code >= 400 && code < 500 && code != http.StatusTooManyRequests
	}
	return false
}
