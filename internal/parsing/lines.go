package parsing

import "strings"

// Markers that identify receipt metadata lines (order numbers, totals,
// delivery details) which must never become items.
var (
	metadataMarkers = []string{"Order#", "Subtotal", "Total", "Driver tip"}

	// matched case-insensitively
	foldedMetadataMarkers = []string{"delivery", "payment method"}
)

// normalizeLines splits raw receipt text into trimmed, non-empty lines,
// preserving the original order. It never fails; empty input yields an
// empty slice.
func normalizeLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// isMetadataLine reports whether a line is receipt metadata rather than a
// purchasable item. Metadata lines are discarded before any item rule runs.
func isMetadataLine(line string) bool {
	for _, marker := range metadataMarkers {
		if strings.Contains(line, marker) {
			return true
		}
	}
	lower := strings.ToLower(line)
	for _, marker := range foldedMetadataMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
