package fetch

import (
	"context"
	"os"
	"strings"
)

// FileSource reads saved pages from disk. The URL may be a plain path or a file:// URL.
type FileSource struct{}

// PageHTML implements PageSource.
func (FileSource) PageHTML(ctx context.Context, location string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := strings.TrimPrefix(location, "file://")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &Error{URL: location, Message: "failed to read saved page", Cause: err}
	}
	return string(data), nil
}
