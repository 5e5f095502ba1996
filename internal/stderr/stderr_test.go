//go:build !windows

package stderr

import (
	"bytes"
	"fmt"
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCapture_LogsFdTwoLines(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	c, err := Start(logger)
	require.NoError(t, err)

	fmt.Fprintln(os.Stderr, "ALSA lib pcm.c: underrun occurred")
	fmt.Fprintln(os.Stderr, "   ")
	c.Stop()
	c.Stop()

	out := buf.String()
	assert.Contains(t, out, `"component":"stderr"`)
	assert.Contains(t, out, "underrun occurred")
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")), "blank lines are dropped")
}

func TestCapture_NilIsSafe(t *testing.T) {
	var c *Capture
	c.Stop()
}
