// Package sink persists profile records as they are produced.
package sink

import (
	"context"
	"errors"
	"fmt"

	"github.com/jonathan/profile-scraper/internal/types"
)

// Sink receives one record per visited URL, in input order.
type Sink interface {
	Append(ctx context.Context, record types.ProfileRecord) error
	Close() error
}

// WriteError represents a failure to persist a record.
type WriteError struct {
	Sink    string
	URL     string
	Message string
	Cause   error
}

func (e *WriteError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s sink: %s (%s): %v", e.Sink, e.Message, e.URL, e.Cause)
	}
	return fmt.Sprintf("%s sink: %s (%s)", e.Sink, e.Message, e.URL)
}

func (e *WriteError) Unwrap() error {
	return e.Cause
}

// Multi appends every record to each sink in order.
type Multi []Sink

// Append writes to all sinks and returns the first error after every sink was attempted.
func (m Multi) Append(ctx context.Context, record types.ProfileRecord) error {
	var first error
	for _, s := range m {
		if err := s.Append(ctx, record); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Close closes every sink and joins their errors.
func (m Multi) Close() error {
	var errs []error
	for _, s := range m {
		if err := s.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
