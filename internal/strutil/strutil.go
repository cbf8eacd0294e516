// Package strutil provides the small set of pure byte-string helpers the
// rest of redshell is built on: splitting, trimming, separator collapsing,
// and concatenation. Every function here is total and allocates only owned
// strings — none of them mutate their input.
package strutil

import "strings"

// Split breaks s into non-empty tokens on any byte in seps. Runs of
// separators collapse and leading/trailing separators are discarded.
func Split(s string, seps string) []string {
	if seps == "" {
		if s == "" {
			return nil
		}
		return []string{s}
	}

	isSep := func(b byte) bool {
		return strings.IndexByte(seps, b) >= 0
	}

	var tokens []string
	start := -1
	for i := 0; i < len(s); i++ {
		if isSep(s[i]) {
			if start >= 0 {
				tokens = append(tokens, s[start:i])
				start = -1
			}
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		tokens = append(tokens, s[start:])
	}
	return tokens
}

// SplitFirst splits s at the first occurrence of sep into a left and right
// half. ok is false if sep does not occur in s.
func SplitFirst(s string, sep byte) (left, right string, ok bool) {
	idx := strings.IndexByte(s, sep)
	if idx < 0 {
		return s, "", false
	}
	return s[:idx], s[idx+1:], true
}

// Concat returns a newly owned concatenation of a and b.
func Concat(a, b string) string {
	var sb strings.Builder
	sb.Grow(len(a) + len(b))
	sb.WriteString(a)
	sb.WriteString(b)
	return sb.String()
}

// StripTrailing removes every trailing occurrence of b from s.
func StripTrailing(s string, b byte) string {
	end := len(s)
	for end > 0 && s[end-1] == b {
		end--
	}
	return s[:end]
}

// ReplaceByte returns a copy of s with every occurrence of from replaced by to.
func ReplaceByte(s string, from, to byte) string {
	if strings.IndexByte(s, from) < 0 {
		return s
	}
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == from {
			out[i] = to
		} else {
			out[i] = s[i]
		}
	}
	return string(out)
}

// CollapseRuns replaces any maximal run of b in s with a single b.
func CollapseRuns(s string, b byte) string {
	if len(s) == 0 {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	prevWasB := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == b {
			if prevWasB {
				continue
			}
			prevWasB = true
		} else {
			prevWasB = false
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

// RStripNewline removes at most one trailing '\n' from s.
func RStripNewline(s string) string {
	if len(s) > 0 && s[len(s)-1] == '\n' {
		return s[:len(s)-1]
	}
	return s
}

// NormalizeWhitespace replaces tabs with spaces, collapses runs of spaces
// to one, and strips trailing whitespace and the trailing newline. This is
// the whitespace-normalisation pass the parser runs on every top-level
// piece before classifying it (spec §4.3 step 2).
func NormalizeWhitespace(s string) string {
	s = RStripNewline(s)
	s = ReplaceByte(s, '\t', ' ')
	s = CollapseRuns(s, ' ')
	s = StripTrailing(s, ' ')
	return s
}
