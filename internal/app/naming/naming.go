// Package naming turns a transcription into a filesystem-safe file name.
package naming

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MaxFilenameLength is the usual per-component limit of Linux and macOS filesystems, in bytes
const MaxFilenameLength = 255

// DefaultMaxWords is how many transcription words end up in a name
const DefaultMaxWords = 8

// CleanFilename keeps letters, digits, underscores and hyphens, turns every run
// of whitespace and hyphens into a single underscore and strips underscores
// from both ends. Applying it twice gives the same result as applying it once.
func CleanFilename(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	separator := false
	for _, r := range name {
		switch {
		case r == '-' || unicode.IsSpace(r):
			separator = true
		case r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r):
			if separator {
				b.WriteByte('_')
				separator = false
			}
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "_")
}

// SynthesizeName builds "<index>_<first maxWords words of text, cleaned><ext>".
// maxWords <= 0 keeps every word. Names longer than MaxFilenameLength bytes
// lose the tail of the body, never the index or the extension.
func SynthesizeName(index int, text string, ext string, maxWords int) string {
	words := strings.Fields(text)
	if maxWords > 0 && len(words) > maxWords {
		words = words[:maxWords]
	}
	body := CleanFilename(strings.Join(words, "_"))

	prefix := strconv.Itoa(index) + "_"
	if budget := MaxFilenameLength - len(prefix) - len(ext); len(body) > budget {
		body = strings.TrimRight(truncate(body, budget), "_")
	}
	return prefix + body + ext
}

// truncate cuts s to at most n bytes without splitting a rune
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
