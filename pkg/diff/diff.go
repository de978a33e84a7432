package diff

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

const (
	maxDiffLines    = 10000
	truncateMessage = "... (diff truncated, exceeds 10,000 lines) ..."
)

// Stats counts changed lines.
type Stats struct {
	Added   int
	Removed int
}

// GenerateUnifiedDiff returns a line-oriented diff of original against
// updated, or the empty string when both are identical. Output longer than
// 10,000 lines is truncated with a marker.
func GenerateUnifiedDiff(original, updated []byte, originalLabel, updatedLabel string) string {
	out, _ := generate(original, updated, originalLabel, updatedLabel)
	return out
}

// Count returns how many lines a diff would add and remove.
func Count(original, updated []byte) Stats {
	_, stats := generate(original, updated, "", "")
	return stats
}

func generate(original, updated []byte, originalLabel, updatedLabel string) (string, Stats) {
	if bytes.Equal(original, updated) {
		return "", Stats{}
	}

	dmp := diffmatchpatch.New()
	originalChars, updatedChars, lineArray := dmp.DiffLinesToChars(string(original), string(updated))
	diffs := dmp.DiffMain(originalChars, updatedChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "--- %s\n", originalLabel)
	fmt.Fprintf(&buf, "+++ %s\n", updatedLabel)
	fmt.Fprintf(&buf, "@@ -1,%d +1,%d @@\n", countLines(original), countLines(updated))

	var stats Stats
	for _, d := range diffs {
		prefix := " "
		switch d.Type {
		case diffmatchpatch.DiffDelete:
			prefix = "-"
		case diffmatchpatch.DiffInsert:
			prefix = "+"
		}

		for _, line := range splitLines(d.Text) {
			buf.WriteString(prefix)
			buf.WriteString(line)
			buf.WriteString("\n")
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				stats.Removed++
			case diffmatchpatch.DiffInsert:
				stats.Added++
			}
		}
	}

	result := buf.String()
	lines := strings.Split(result, "\n")
	if len(lines) > maxDiffLines {
		truncated := strings.Join(lines[:maxDiffLines], "\n")
		return truncated + "\n" + truncateMessage + "\n", stats
	}

	return result, stats
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func countLines(data []byte) int {
	return len(splitLines(string(data)))
}
