package fetch

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/rs/zerolog"
)

const (
	// LoginURL is opened for the operator when a manual login is requested.
	LoginURL = "https://www.linkedin.com/login"
	// FeedURL is loaded after login to confirm the session is signed in.
	FeedURL = "https://www.linkedin.com/feed/"
)

// BrowserOptions configures a BrowserSession.
type BrowserOptions struct {
	Headless    bool
	PageTimeout time.Duration // per page, navigation through markup capture
	SettleDelay time.Duration // wait after the body is ready for scripts to render
	UserAgent   string
	UserDataDir string // optional profile directory so a login survives restarts
}

// DefaultBrowserOptions returns the settings used for batch runs.
func DefaultBrowserOptions() BrowserOptions {
	return BrowserOptions{
		Headless:    true,
		PageTimeout: 60 * time.Second,
		SettleDelay: 2 * time.Second,
		UserAgent:   DefaultUserAgent,
	}
}

// BrowserSession is one exclusive headless Chrome tab. Pages are loaded one at a time.
type BrowserSession struct {
	mu          sync.Mutex
	ctx         context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	opts        BrowserOptions
	logger      zerolog.Logger
}

// NewBrowserSession starts Chrome and opens the session tab. Requires Chrome/Chromium to be
// installed on the system.
func NewBrowserSession(ctx context.Context, opts BrowserOptions, logger zerolog.Logger) (*BrowserSession, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1920, 1080),
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.UserDataDir != "" {
		allocOpts = append(allocOpts, chromedp.UserDataDir(opts.UserDataDir))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, cancelTab := chromedp.NewContext(allocCtx)

	// An empty Run launches the browser so start-up failures surface here.
	if err := chromedp.Run(tabCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, &Error{URL: "about:blank", Message: "failed to start browser", Cause: err}
	}

	logger = logger.With().Str("component", "browser").Logger()
	logger.Info().Bool("headless", opts.Headless).Msg("browser session started")

	return &BrowserSession{
		ctx:         tabCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
		opts:        opts,
		logger:      logger,
	}, nil
}

// PageHTML implements PageSource: navigate, wait for the body, let scripts settle and return
// the rendered markup of the whole document.
func (b *BrowserSession) PageHTML(ctx context.Context, url string) (string, error) {
	var html string
	err := b.run(ctx, url,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(b.opts.SettleDelay),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", err
	}
	b.logger.Debug().Str("url", url).Int("bytes", len(html)).Msg("page rendered")
	return html, nil
}

// Login opens the login page, waits until the operator confirms on confirm (one line, usually
// ENTER on stdin) and then checks the feed. When the session still looks signed out the
// operator is asked whether to continue anyway; declining returns an Error wrapping ErrLoginWall.
func (b *BrowserSession) Login(ctx context.Context, prompt io.Writer, confirm io.Reader) error {
	if err := b.run(ctx, LoginURL, chromedp.Navigate(LoginURL), chromedp.WaitReady("body")); err != nil {
		return err
	}

	in := bufio.NewReader(confirm)
	_, _ = fmt.Fprintln(prompt, "Log in using the browser window, then press ENTER to continue...")
	if _, err := waitForLine(ctx, in); err != nil {
		return err
	}

	html, err := b.PageHTML(ctx, FeedURL)
	if err != nil {
		return err
	}
	if !IsLoginWall(html) {
		b.logger.Info().Msg("manual login confirmed")
		return nil
	}

	proceed, err := confirmContinue(ctx, prompt, in)
	if err != nil {
		return err
	}
	if !proceed {
		return &Error{URL: FeedURL, Message: "still signed out after manual login", Cause: ErrLoginWall}
	}
	b.logger.Warn().Msg("continuing without a confirmed login")
	return nil
}

// confirmContinue asks whether to scrape despite a failed login. Only "y" or "yes" proceeds.
func confirmContinue(ctx context.Context, prompt io.Writer, in *bufio.Reader) (bool, error) {
	_, _ = fmt.Fprint(prompt, "Login may have failed. Continue scraping? (y/N): ")
	answer, err := waitForLine(ctx, in)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}

// Close shuts the tab and the browser process.
func (b *BrowserSession) Close() error {
	b.cancelTab()
	b.cancelAlloc()
	return nil
}

func (b *BrowserSession) run(ctx context.Context, url string, actions ...chromedp.Action) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	pageCtx, cancel := context.WithTimeout(b.ctx, b.opts.PageTimeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if err := chromedp.Run(pageCtx, actions...); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return &Error{URL: url, Message: "browser rendering failed", Cause: err}
	}
	return nil
}

// waitForLine returns the next line from in, or "" at EOF. On cancellation it returns at
// once but the reading goroutine stays blocked until input arrives; the CLI exits right after,
// so the goroutine is never reclaimed.
func waitForLine(ctx context.Context, in *bufio.Reader) (string, error) {
	type result struct {
		line string
		err  error
	}
	done := make(chan result, 1)
	go func() {
		line, err := in.ReadString('\n')
		if err == io.EOF {
			err = nil
		}
		done <- result{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.line, r.err
	}
}
