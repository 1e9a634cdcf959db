// Package tokenizer implements the bracket aware text scanning shared by all
// the instruction table grammars.
package tokenizer

import (
	"errors"
	"strings"

	"github.com/Manu343726/isadb/pkg/utils"
)

var (
	// Returned when a comma separated list contains an empty item
	ErrEmptySegment = errors.New("empty segment")
	// Returned when an opening delimiter has no matching closer
	ErrUnbalanced = errors.New("unbalanced brackets")
)

var closers = map[byte]byte{
	'(': ')',
	'<': '>',
	'[': ']',
	'{': '}',
}

// Returns the closing delimiter matching the given opening delimiter, or 0
// if the character is not an opening delimiter
func Closer(open byte) byte {
	return closers[open]
}

// Returns the index of the delimiter closing the one found at s[open].
// Only occurrences of the same delimiter pair are counted for nesting, any
// other character is opaque. If the delimiter is not balanced, len(s) is
// returned.
func MatchClosingChar(s string, open int) int {
	if open < 0 || open >= len(s) {
		return len(s)
	}

	opening := s[open]
	closing := closers[opening]

	if closing == 0 {
		return len(s)
	}

	depth := 1

	for i := open + 1; i < len(s); i++ {
		switch s[i] {
		case opening:
			depth++
		case closing:
			depth--
			if depth == 0 {
				return i
			}
		}
	}

	return len(s)
}

// Splits s on the given separator, skipping any separator found inside a
// (possibly nested) bracketed span. Segments are not trimmed.
func SplitOutside(s string, separator byte) ([]string, error) {
	var segments []string
	start := 0

	for i := 0; i < len(s); i++ {
		c := s[i]

		if c == separator {
			segments = append(segments, s[start:i])
			start = i + 1
			continue
		}

		if Closer(c) != 0 {
			end := MatchClosingChar(s, i)
			if end == len(s) {
				return nil, utils.MakeError(ErrUnbalanced, "'%c' at position %v of '%v' is never closed", c, i, s)
			}
			i = end
		}
	}

	return append(segments, s[start:]), nil
}

// Splits a comma separated list while respecting nested [...] {...} (...) <...>
// spans. Each item is trimmed. Empty items are malformed input and make the
// whole split fail. A blank list yields no items.
func SplitTopLevel(s string) ([]string, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	segments, err := SplitOutside(s, ',')
	if err != nil {
		return nil, err
	}

	for i := range segments {
		segments[i] = strings.TrimSpace(segments[i])

		if segments[i] == "" {
			return nil, utils.MakeError(ErrEmptySegment, "item %v of '%v'", i, s)
		}
	}

	return segments, nil
}

// Splits s on whitespace, keeping bracketed spans (which may contain spaces)
// within a single field
func Fields(s string) ([]string, error) {
	var fields []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			fields = append(fields, current.String())
			current.Reset()
		}
	}

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch {
		case c == ' ' || c == '\t' || c == '\n':
			flush()
		case Closer(c) != 0:
			end := MatchClosingChar(s, i)
			if end == len(s) {
				return nil, utils.MakeError(ErrUnbalanced, "'%c' at position %v of '%v' is never closed", c, i, s)
			}
			current.WriteString(s[i : end+1])
			i = end
		default:
			current.WriteByte(c)
		}
	}

	flush()
	return fields, nil
}
