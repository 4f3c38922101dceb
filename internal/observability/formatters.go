// Package observability provides formatted console output for batch runs.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/profile-scraper/internal/pipeline"
	"github.com/jonathan/profile-scraper/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// headlinePreview is how much of a headline the sample shows
	headlinePreview = 60
	// DefaultSampleSize is the number of records shown after a batch
	DefaultSampleSize = 3
)

// Printer handles formatted console output.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, clip(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// clip shortens s to n characters, marking the cut with "...".
func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// PrintProgress prints a one-line running tally.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(processed, total, succeeded, failed int) {
	fmt.Fprintf(p.out, "[%d/%d] ok=%d failed=%d\n", processed, total, succeeded, failed)
}

// PrintSummary prints the final tally of a batch.
func (p *Printer) PrintSummary(s pipeline.Summary) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Processed:    %d of %d\n", s.Processed, s.Total))
	sb.WriteString(fmt.Sprintf("Successful:   %d\n", s.Succeeded))
	sb.WriteString(fmt.Sprintf("Failed:       %d\n", s.Failed))
	if s.LoginWalls > 0 {
		sb.WriteString(fmt.Sprintf("Login walls:  %d\n", s.LoginWalls))
	}
	if s.SinkErrors > 0 {
		sb.WriteString(fmt.Sprintf("Write errors: %d\n", s.SinkErrors))
	}
	p.printBox("SCRAPING COMPLETE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSample shows the last n successful records.
func (p *Printer) PrintSample(records []types.ProfileRecord, n int) {
	var ok []types.ProfileRecord
	for _, r := range records {
		if r.Succeeded() {
			ok = append(ok, r)
		}
	}
	if len(ok) == 0 || n <= 0 {
		return
	}
	if len(ok) > n {
		ok = ok[len(ok)-n:]
	}

	var sb strings.Builder
	for i, r := range ok {
		sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(r.Name)))
		sb.WriteString(fmt.Sprintf("Headline: %s\n", orDash(clip(r.Headline, headlinePreview))))
		sb.WriteString(fmt.Sprintf("Current:  %s\n", orDash(r.CurrentCompany)))
		sb.WriteString(fmt.Sprintf("Previous: %s\n", orDash(r.PreviousCompany)))
		sb.WriteString(fmt.Sprintf("Scraped:  %s\n", r.ScrapedAtString()))
		if i < len(ok)-1 {
			sb.WriteString("\n")
		}
	}
	p.printBox(fmt.Sprintf("SAMPLE (LAST %d)", len(ok)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecord prints every field of a single record, the biography wrapped to the box width.
func (p *Printer) PrintRecord(r types.ProfileRecord) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("URL:      %s\n", orDash(r.URL)))
	sb.WriteString(fmt.Sprintf("Status:   %s\n", r.Status))
	sb.WriteString(fmt.Sprintf("Name:     %s\n", orDash(r.Name)))
	sb.WriteString(fmt.Sprintf("Headline: %s\n", orDash(r.Headline)))
	sb.WriteString(fmt.Sprintf("Current:  %s\n", orDash(r.CurrentCompany)))
	sb.WriteString(fmt.Sprintf("Previous: %s\n", orDash(r.PreviousCompany)))
	sb.WriteString("About:\n")
	if r.About == "" {
		sb.WriteString("  -\n")
	}
	for _, line := range wrap(r.About, boxWidth-6) {
		sb.WriteString("  " + line + "\n")
	}
	p.printBox("PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// wrap breaks text into lines of at most width characters at word boundaries.
func wrap(text string, width int) []string {
	var lines []string
	var line []rune
	for _, word := range strings.Fields(text) {
		w := []rune(word)
		if len(line) > 0 && len(line)+1+len(w) > width {
			lines = append(lines, string(line))
			line = line[:0]
		}
		if len(line) > 0 {
			line = append(line, ' ')
		}
		line = append(line, w...)
	}
	if len(line) > 0 {
		lines = append(lines, string(line))
	}
	return lines
}
