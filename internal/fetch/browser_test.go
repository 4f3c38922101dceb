package fetch

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmContinue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"yes", "y\n", true},
		{"full word with spaces", "  Yes \n", true},
		{"no", "n\n", false},
		{"empty line", "\n", false},
		{"anything else", "sure\n", false},
		{"end of input", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var prompt bytes.Buffer
			got, err := confirmContinue(context.Background(), &prompt, bufio.NewReader(strings.NewReader(tt.input)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, prompt.String(), "Continue scraping? (y/N)")
		})
	}
}

func TestWaitForLine_SharedReader(t *testing.T) {
	in := bufio.NewReader(strings.NewReader("\ny\n"))

	first, err := waitForLine(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "\n", first)

	second, err := waitForLine(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "y\n", second)
}

func TestWaitForLine_Cancelled(t *testing.T) {
	r, w := io.Pipe()
	defer func() { _ = w.Close() }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := waitForLine(ctx, bufio.NewReader(r))
	assert.ErrorIs(t, err, context.Canceled)
}
