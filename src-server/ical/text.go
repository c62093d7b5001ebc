package ical

import (
	"strings"
	"time"
)

const dateTimeLayout = "20060102T150405Z"

// Convert a time to the UTC iCalendar form YYYYMMDDTHHMMSSZ.
func FormatDateTime(t time.Time) string {
	return t.UTC().Format(dateTimeLayout)
}

// EscapeText prepares a TEXT property value. Blank input, whitespace and
// newlines included, gives "" and is not restored by UnescapeText.
//
// The replacements run in this order; backslash goes first so the escapes
// added afterwards aren't escaped again.
func EscapeText(s string) string {
	if strings.TrimSpace(s) == "" {
		return ""
	}
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, ";", `\;`)
	s = strings.ReplaceAll(s, ",", `\,`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return s
}

// UnescapeText reverses EscapeText. `\N` is read as a newline too; any other
// backslash sequence is kept as is.
func UnescapeText(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '\\' || i+1 == len(s) {
			sb.WriteByte(s[i])
			continue
		}
		switch next := s[i+1]; next {
		case '\\', ';', ',':
			sb.WriteByte(next)
			i++
		case 'n', 'N':
			sb.WriteByte('\n')
			i++
		default:
			sb.WriteByte('\\')
		}
	}
	return sb.String()
}
