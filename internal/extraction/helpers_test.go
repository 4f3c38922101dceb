package extraction

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

const filler = "Builds reliable systems for small teams and enjoys mentoring new engineers on the craft of software. "

// textOfLength returns readable text of exactly n characters that ends in a non-space.
func textOfLength(n int) string {
	s := strings.Repeat(filler, n/len(filler)+1)[:n]
	return s[:n-1] + "."
}

func newTestExtractor() *Extractor {
	return New(zerolog.Nop())
}

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func zeroLogger() zerolog.Logger {
	return zerolog.Nop()
}
