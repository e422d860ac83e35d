package utils

import (
	"strings"

	"github.com/PolarWolf314/kanote/internal/ui"
)

// FormatPaths formats a slice of paths into a readable string.
func FormatPaths(paths []string) string {
	var b strings.Builder
	b.WriteString("\n")
	for _, path := range paths {
		b.WriteString("    - ")
		b.WriteString(ui.Path.Sprint(path))
		b.WriteString("\n")
	}
	return b.String()
}

// Truncate returns the first line of s, shortened to at most max runes.
// An ellipsis marks any cut.
func Truncate(s string, max int) string {
	line, _, cut := strings.Cut(s, "\n")
	line = strings.TrimSpace(line)

	runes := []rune(line)
	if len(runes) > max {
		if max <= 1 {
			return "…"
		}
		return string(runes[:max-1]) + "…"
	}
	if cut {
		return line + " …"
	}
	return line
}
