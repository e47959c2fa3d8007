package reader

import "bytes"

// Header prefixes whose length is skipped before sniffing for content.
var knownHeaders = [][]byte{
	[]byte("SNSV"),
	[]byte("NOTE"),
	[]byte("noteSN_FILE_VER_"),
}

// DetectContent reports whether a buffer appears to hold actual note
// content rather than a bare header. It is a heuristic used to annotate
// the blank diagnostic page emitted for unrecognized formats: downstream
// tooling can then distinguish "empty notebook" from "notebook we failed
// to parse".
func DetectContent(data []byte) bool {
	if len(data) < 16 {
		return false
	}

	skip := 0
	for _, h := range knownHeaders {
		if bytes.HasPrefix(data, h) {
			skip = len(h) + 8 // header plus a little metadata
			break
		}
	}
	if len(data) <= skip {
		return false
	}
	body := data[skip:]

	// A body that is mostly non-zero bytes very likely carries stroke data.
	nonZero := 0
	for _, b := range body {
		if b != 0 {
			nonZero++
		}
	}
	if nonZero*10 > len(body) {
		return true
	}

	// Varied byte values near the start also suggest real content.
	if distinct(body, 100) > 10 {
		return true
	}

	// Finally: any reasonably sized buffer that is not a run of a handful
	// of repeated bytes.
	return len(data) > 50 && distinct(data, len(data)) > 5
}

// distinct counts distinct byte values among the first n bytes.
func distinct(data []byte, n int) int {
	if n > len(data) {
		n = len(data)
	}
	var seen [256]bool
	count := 0
	for _, b := range data[:n] {
		if !seen[b] {
			seen[b] = true
			count++
		}
	}
	return count
}
