package sink

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/jonathan/profile-scraper/internal/types"
)

// CSVSink writes records to a CSV file. The file is created, or truncated, on the first
// Append together with the header row. Every row is flushed immediately so an interrupted
// batch keeps what it already wrote.
type CSVSink struct {
	path   string
	file   *os.File
	writer *csv.Writer
}

// NewCSVSink returns a sink for path. Nothing touches the disk before the first Append.
func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

// Path returns the output file path.
func (s *CSVSink) Path() string {
	return s.path
}

// Append implements Sink.
func (s *CSVSink) Append(_ context.Context, record types.ProfileRecord) error {
	if s.writer == nil {
		if err := s.open(); err != nil {
			return &WriteError{Sink: "csv", URL: record.URL, Message: "failed to create output file", Cause: err}
		}
	}
	if err := s.writer.Write(record.Row()); err != nil {
		return &WriteError{Sink: "csv", URL: record.URL, Message: "failed to write row", Cause: err}
	}
	s.writer.Flush()
	if err := s.writer.Error(); err != nil {
		return &WriteError{Sink: "csv", URL: record.URL, Message: "failed to flush row", Cause: err}
	}
	return nil
}

func (s *CSVSink) open() error {
	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(s.path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.Write(types.CSVHeader); err != nil {
		_ = f.Close()
		return err
	}
	s.file = f
	s.writer = w
	return nil
}

// Close implements Sink.
func (s *CSVSink) Close() error {
	if s.file == nil {
		return nil
	}
	s.writer.Flush()
	werr := s.writer.Error()
	cerr := s.file.Close()
	s.file = nil
	s.writer = nil
	return errors.Join(werr, cerr)
}

// ReadCSV loads the records written by a CSVSink.
func ReadCSV(path string) ([]types.ProfileRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	r := csv.NewReader(f)
	r.FieldsPerRecord = len(types.CSVHeader)

	header, err := r.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", path, err)
	}
	if !slices.Equal(header, types.CSVHeader) {
		return nil, fmt.Errorf("unexpected header in %s: %v", path, header)
	}

	var records []types.ProfileRecord
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		record, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("failed to parse row %d of %s: %w", len(records)+1, path, err)
		}
		records = append(records, record)
	}
}

func parseRow(row []string) (types.ProfileRecord, error) {
	scrapedAt, err := time.ParseInLocation(types.ScrapedAtLayout, row[7], time.Local)
	if err != nil {
		return types.ProfileRecord{}, err
	}
	fields := types.ProfileFields{
		Name:            row[1],
		Headline:        row[2],
		About:           row[3],
		CurrentCompany:  row[4],
		PreviousCompany: row[5],
	}
	return types.NewRecord(row[0], fields, types.ParseStatus(row[6]), scrapedAt), nil
}
