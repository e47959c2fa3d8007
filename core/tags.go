package core

import (
	"bytes"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Tag is one ASCII metadata marker of the form <KEYWORD:value> embedded in
// a modern .note container.
type Tag struct {
	Keyword string
	Value   string
	// Start is the offset of the opening '<'; End is the offset just past
	// the closing '>'.
	Start int
	End   int
}

// ScanTags returns every well-formed <keyword:value> marker within
// data[lo:hi), in file order. The scan is a pure function over the byte
// slice: it holds no cursor state and never mutates its input. Markers whose
// closing '>' lies at or beyond hi are not reported.
func ScanTags(data []byte, lo, hi int, keyword string) []Tag {
	if lo < 0 {
		lo = 0
	}
	if hi > len(data) {
		hi = len(data)
	}
	pattern := []byte("<" + keyword + ":")

	var tags []Tag
	for pos := lo; pos < hi; {
		rel := bytes.Index(data[pos:hi], pattern)
		if rel < 0 {
			break
		}
		start := pos + rel
		valueStart := start + len(pattern)
		if valueStart >= hi {
			break
		}
		gt := bytes.IndexByte(data[valueStart:hi], '>')
		if gt < 0 {
			// Unterminated marker; nothing else well-formed can follow a
			// missing '>' within this window, but a later marker might
			// still open, so advance past the '<' and keep scanning.
			pos = start + 1
			continue
		}
		end := valueStart + gt + 1
		tags = append(tags, Tag{
			Keyword: keyword,
			Value:   decodeTagValue(data[valueStart : end-1]),
			Start:   start,
			End:     end,
		})
		pos = end
	}
	return tags
}

// FindTags scans the whole buffer for a keyword.
func FindTags(data []byte, keyword string) []Tag {
	return ScanTags(data, 0, len(data), keyword)
}

// LastTagBefore returns the nearest marker with the given keyword whose
// start lies within the bounded lookback window [pos-window, pos).
func LastTagBefore(data []byte, keyword string, pos, window int) (Tag, bool) {
	lo := pos - window
	if lo < 0 {
		lo = 0
	}
	if pos > len(data) {
		pos = len(data)
	}
	tags := ScanTags(data, lo, pos, keyword)
	if len(tags) == 0 {
		return Tag{}, false
	}
	return tags[len(tags)-1], true
}

// decodeTagValue interprets a tag value as UTF-8 when valid, falling back
// to Latin-1 so that user-assigned layer names with stray high bytes still
// decode to something readable instead of being dropped.
func decodeTagValue(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	s, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}
