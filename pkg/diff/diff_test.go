package diff

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateUnifiedDiffIdenticalContent(t *testing.T) {
	t.Parallel()

	content := []byte("{\n  \"key\": {}\n}\n")
	require.Empty(t, GenerateUnifiedDiff(content, content, "a", "b"))
	require.Equal(t, Stats{}, Count(content, content))
}

func TestGenerateUnifiedDiffMarksChangedLines(t *testing.T) {
	t.Parallel()

	original := []byte("{\n  \"key\": {\n    \"background\": \"#FF0000\"\n  }\n}\n")
	updated := []byte("{\n  \"key\": {\n    \"background\": \"rgba(255,0,0,1)\"\n  }\n}\n")

	result := GenerateUnifiedDiff(original, updated, "theme.json", "theme.json (formatted)")
	require.True(t, strings.HasPrefix(result, "--- theme.json\n+++ theme.json (formatted)\n"))
	require.Contains(t, result, "-    \"background\": \"#FF0000\"\n")
	require.Contains(t, result, "+    \"background\": \"rgba(255,0,0,1)\"\n")
	require.Contains(t, result, "   \"key\": {\n")
	require.Contains(t, result, "@@ -1,5 +1,5 @@")

	require.Equal(t, Stats{Added: 1, Removed: 1}, Count(original, updated))
}

func TestGenerateUnifiedDiffIsDeterministic(t *testing.T) {
	t.Parallel()

	a := []byte("one\ntwo\n")
	b := []byte("one\nthree\n")
	require.Equal(t, GenerateUnifiedDiff(a, b, "x", "y"), GenerateUnifiedDiff(a, b, "x", "y"))
}

func TestGenerateUnifiedDiffTruncatesLargeOutput(t *testing.T) {
	t.Parallel()

	var original, updated strings.Builder
	for i := 0; i < 6000; i++ {
		fmt.Fprintf(&original, "old line %d\n", i)
		fmt.Fprintf(&updated, "new line %d\n", i)
	}

	result := GenerateUnifiedDiff([]byte(original.String()), []byte(updated.String()), "a", "b")
	require.Contains(t, result, truncateMessage)
	require.LessOrEqual(t, len(strings.Split(result, "\n")), maxDiffLines+2)
}
