package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadPromptLineStopsAtNewline(t *testing.T) {
	t.Parallel()

	in := strings.NewReader("Secret123\r\nAgain456\nrest")

	first, err := readPromptLine(in)
	require.NoError(t, err)
	require.Equal(t, "Secret123", string(first))

	second, err := readPromptLine(in)
	require.NoError(t, err)
	require.Equal(t, "Again456", string(second))

	tail, err := readPromptLine(in)
	require.NoError(t, err)
	require.Equal(t, "rest", string(tail))
}
