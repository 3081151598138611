package report

import (
	"fmt"
	"io"
	"strings"
)

// maxDiffLines caps how many changed lines a dry run prints per file.
const maxDiffLines = 10

// WriteLineDiff prints changed lines between original and updated, capped at
// maxDiffLines shown lines, and returns the total number of changed lines.
//
// The comparison is positional: a pure line-rewrite pass keeps line counts
// stable, so pairing line N with line N is the honest view. Added or removed
// trailing lines are counted but shown only as part of the overflow note.
func WriteLineDiff(w io.Writer, original, updated string) int {
	origLines := strings.Split(original, "\n")
	newLines := strings.Split(updated, "\n")

	n := len(origLines)
	if len(newLines) < n {
		n = len(newLines)
	}

	diffs := 0
	for i := 0; i < n; i++ {
		if origLines[i] == newLines[i] {
			continue
		}
		diffs++
		if diffs <= maxDiffLines {
			fmt.Fprintf(w, "  L%d: %s\n", i+1, truncate(origLines[i], 100))
			fmt.Fprintf(w, "    → %s\n", truncate(newLines[i], 100))
		}
	}
	if len(origLines) != len(newLines) {
		diffs += abs(len(origLines) - len(newLines))
	}
	if diffs > maxDiffLines {
		fmt.Fprintf(w, "  ... and %d more changed lines\n", diffs-maxDiffLines)
	}
	return diffs
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
