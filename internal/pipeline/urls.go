package pipeline

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// DefaultMaxProfiles caps a batch when no limit is configured.
const DefaultMaxProfiles = 20

// LoadURLs reads one URL per line, skipping blank lines, and keeps at most max entries.
// A max of zero or less keeps every URL.
func LoadURLs(path string, max int) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open URL file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		urls = append(urls, line)
		if max > 0 && len(urls) == max {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read URL file: %w", err)
	}
	return urls, nil
}
