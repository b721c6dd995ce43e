package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/rivo/uniseg"
)

// truncate shortens a string to the given display width, adding an ellipsis
// if needed. Grapheme clusters are never split.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	if uniseg.StringWidth(value) <= limit {
		return value
	}
	if limit <= 3 {
		return cutWidth(value, limit)
	}
	return cutWidth(value, limit-3) + "..."
}

// cutWidth returns the longest prefix of value that fits in width cells.
func cutWidth(value string, width int) string {
	var b strings.Builder
	used := 0
	state := -1
	rest := value
	for len(rest) > 0 {
		var cluster string
		var w int
		cluster, rest, w, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if used+w > width {
			break
		}
		b.WriteString(cluster)
		used += w
	}
	return b.String()
}

// singleLine collapses newlines and runs of whitespace into single spaces.
func singleLine(value string) string {
	return strings.Join(strings.Fields(value), " ")
}

// padRight pads a string with spaces to the given display width.
func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	w := uniseg.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

func humanizeDuration(d time.Duration) string {
	switch {
	case d < time.Second:
		return "now"
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm", int(d.Minutes()))
	default:
		return fmt.Sprintf("%dh", int(d.Hours()))
	}
}

// maxInt returns the larger of two integers.
func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
