package parser

import (
	"strings"

	"github.com/gopherden/redshell/internal/strutil"
)

// Parse parses one raw input line (possibly including its trailing
// newline) into an ordered list of command segments, following the
// pipeline in spec §4.3:
//
//  1. split the line on ';'
//  2. normalise whitespace in each piece
//  3. classify the piece's composition (Pipe / RedirectAppend / Redirect / Plain)
//  4. word-split each side
//  5. flag an empty left side
//
// Parse is referentially transparent: its result depends only on line.
func Parse(line string) []Segment {
	var segments []Segment

	for _, piece := range strutil.Split(line, ";") {
		normalized := strutil.NormalizeWhitespace(piece)
		if strings.TrimSpace(normalized) == "" {
			// A segment consisting only of whitespace is dropped.
			continue
		}
		segments = append(segments, parseSegment(normalized))
	}

	return segments
}

// parseSegment classifies and word-splits a single, already
// whitespace-normalised piece of the input line.
func parseSegment(piece string) Segment {
	if left, right, ok := strutil.SplitFirst(piece, '|'); ok {
		return buildSegment(Pipe, left, right)
	}

	if left, right, ok := splitRedirectAppend(piece); ok {
		return buildSegment(RedirectAppend, left, right)
	}

	if left, right, ok := strutil.SplitFirst(piece, '>'); ok {
		return buildSegment(Redirect, left, right)
	}

	return buildSegment(Plain, piece, "")
}

// splitRedirectAppend finds the first exactly-two-character ">>" run in
// piece. A run of three or more '>' (e.g. ">>>") never matches — the
// parser tests for "exactly two '>'" (spec §4.3).
func splitRedirectAppend(piece string) (left, right string, ok bool) {
	for i := 0; i+1 < len(piece); i++ {
		if piece[i] != '>' || piece[i+1] != '>' {
			continue
		}
		precededByGT := i > 0 && piece[i-1] == '>'
		followedByGT := i+2 < len(piece) && piece[i+2] == '>'
		if precededByGT || followedByGT {
			continue
		}
		return piece[:i], piece[i+2:], true
	}
	return "", "", false
}

// buildSegment word-splits both sides of a classified piece and flags an
// empty left side.
func buildSegment(kind Kind, left, right string) Segment {
	seg := Segment{Kind: kind}

	seg.Argv = strutil.Split(left, " \t")
	if len(seg.Argv) == 0 {
		seg.LeadingEmpty = true
	}

	if kind != Plain {
		seg.RhsArgv = strutil.Split(right, " \t")
	}

	return seg
}
