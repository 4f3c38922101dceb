// Package types provides type definitions for structured data used throughout the profile-scraper system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"strings"
	"time"
)

// ScrapedAtLayout is the timestamp layout written to the output sinks.
const ScrapedAtLayout = "2006-01-02 15:04:05"

// MaxStatusReasonLength caps the error reason stored on a record.
const MaxStatusReasonLength = 100

// StatusKind classifies the outcome of a single page visit.
type StatusKind string

const (
	// StatusSuccess means the page was fetched and extraction ran.
	StatusSuccess StatusKind = "success"
	// StatusLoginWall means the page was replaced by an authentication prompt.
	StatusLoginWall StatusKind = "login_wall"
	// StatusError means the page could not be fetched.
	StatusError StatusKind = "error"
)

// Status is the outcome recorded on a ProfileRecord.
type Status struct {
	Kind   StatusKind
	Reason string // only set for StatusError
}

// Success returns a success status.
func Success() Status { return Status{Kind: StatusSuccess} }

// LoginWall returns a login wall status.
func LoginWall() Status { return Status{Kind: StatusLoginWall} }

// Failed returns an error status carrying the reason, truncated to MaxStatusReasonLength.
func Failed(reason string) Status {
	if r := []rune(reason); len(r) > MaxStatusReasonLength {
		reason = string(r[:MaxStatusReasonLength])
	}
	return Status{Kind: StatusError, Reason: reason}
}

// String renders the status the way it is persisted ("success", "login_wall", "error: <reason>").
func (s Status) String() string {
	if s.Kind == StatusError {
		return errorPrefix + s.Reason
	}
	return string(s.Kind)
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(text []byte) error {
	*s = ParseStatus(string(text))
	return nil
}

// errorPrefix starts every persisted error status.
const errorPrefix = string(StatusError) + ": "

// ParseStatus is the inverse of Status.String. The reason is kept exactly as written.
// A value that is no known status becomes an error status carrying the raw value.
func ParseStatus(raw string) Status {
	switch {
	case raw == string(StatusSuccess):
		return Success()
	case raw == string(StatusLoginWall):
		return LoginWall()
	case strings.HasPrefix(raw, errorPrefix):
		return Status{Kind: StatusError, Reason: strings.TrimPrefix(raw, errorPrefix)}
	default:
		return Status{Kind: StatusError, Reason: raw}
	}
}

// ProfileFields holds the five extracted fields of one profile page.
// A field that could not be located is the empty string.
type ProfileFields struct {
	Name            string `json:"name"`
	Headline        string `json:"headline"`
	About           string `json:"about"`
	CurrentCompany  string `json:"current_company"`
	PreviousCompany string `json:"previous_company"`
}

// ProfileRecord is one output row: the extracted fields plus visit metadata.
// It is built once per input URL and never mutated after it is handed to a sink.
type ProfileRecord struct {
	URL string `json:"url"`
	ProfileFields
	Status    Status    `json:"status"`
	ScrapedAt time.Time `json:"scraped_at"`
}

// NewRecord assembles a record for a visited URL.
func NewRecord(url string, fields ProfileFields, status Status, scrapedAt time.Time) ProfileRecord {
	return ProfileRecord{
		URL:           url,
		ProfileFields: fields,
		Status:        status,
		ScrapedAt:     scrapedAt,
	}
}

// Succeeded reports whether the record came from a successfully extracted page.
func (r ProfileRecord) Succeeded() bool {
	return r.Status.Kind == StatusSuccess
}

// ScrapedAtString formats ScrapedAt with ScrapedAtLayout.
func (r ProfileRecord) ScrapedAtString() string {
	return r.ScrapedAt.Format(ScrapedAtLayout)
}

// CSVHeader is the column order used by every tabular sink.
var CSVHeader = []string{
	"url",
	"name",
	"headline",
	"about",
	"current_company",
	"previous_company",
	"status",
	"scraped_at",
}

// Row renders the record in CSVHeader order.
func (r ProfileRecord) Row() []string {
	return []string{
		r.URL,
		r.Name,
		r.Headline,
		r.About,
		r.CurrentCompany,
		r.PreviousCompany,
		r.Status.String(),
		r.ScrapedAtString(),
	}
}

// ScoredCandidate is a text fragment with a heuristic confidence score.
// Scores are only comparable within the extraction call that produced them.
type ScoredCandidate struct {
	Text  string
	Score int
}

// MaxCompanies is the number of employer names kept per profile.
const MaxCompanies = 2

// CompanySet is an ordered, deduplicated list of employer names.
// The first entry is the current employer and the second is the previous one.
type CompanySet struct {
	names []string
}

// Add appends name unless it is already present or the set is full.
// It reports whether the name was added.
func (c *CompanySet) Add(name string) bool {
	if c.Full() || c.Contains(name) {
		return false
	}
	c.names = append(c.names, name)
	return true
}

// Contains reports whether name was already collected.
func (c *CompanySet) Contains(name string) bool {
	for _, n := range c.names {
		if n == name {
			return true
		}
	}
	return false
}

// Full reports whether MaxCompanies names have been collected.
func (c *CompanySet) Full() bool {
	return len(c.names) >= MaxCompanies
}

// Len returns the number of collected names.
func (c *CompanySet) Len() int {
	return len(c.names)
}

// Names returns a copy of the collected names in discovery order.
func (c *CompanySet) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Current returns the first collected name, or "".
func (c *CompanySet) Current() string {
	if len(c.names) > 0 {
		return c.names[0]
	}
	return ""
}

// Previous returns the second collected name, or "".
func (c *CompanySet) Previous() string {
	if len(c.names) > 1 {
		return c.names[1]
	}
	return ""
}
