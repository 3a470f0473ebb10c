package util

import (
	"strings"
)

// SanitizePathName strips characters that are unsafe in task directory names
// or that confuse ffmpeg argument parsing.
func SanitizePathName(name string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		":", "_",
		"*", "_",
		"?", "",
		"\"", "",
		"<", "_",
		">", "_",
		"|", "_",
		"=", "",
		" ", "_",
	)
	return replacer.Replace(name)
}

// TruncateRunes shortens s to at most n runes.
func TruncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
