package standings

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTable(t *testing.T) {
	rows := Compute([]string{"Bears", "Hawks"}, []Result{{"Bears", "Hawks"}, {"Bears", "Hawks"}, {"Hawks", "Bears"}})

	var buf bytes.Buffer
	require.NoError(t, WriteTable(&buf, rows))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Team                   W   L    PCT    GB", lines[0])
	assert.Equal(t, "Bears                  2   1  0.667     -", lines[1])
	assert.Equal(t, "Hawks                  1   2  0.333   1.0", lines[2])
}
