// Package format provides file format detection for the inkwell library.
package format

import "bytes"

// Variant represents a recognized .note container variant.
type Variant int

const (
	// Unknown indicates an unrecognized container. It is a valid, handled
	// outcome, not an error: downstream stages skip structured parsing and
	// emit a single blank diagnostic page.
	Unknown Variant = iota
	// Legacy indicates the original "NOTE" container (firmware v1.0-v3.0).
	Legacy
	// Modern indicates the "noteSN_FILE_VER_" container used by current
	// firmware.
	Modern
)

// String returns the string representation of the variant.
func (v Variant) String() string {
	switch v {
	case Legacy:
		return "Legacy"
	case Modern:
		return "Modern"
	default:
		return "Unknown"
	}
}

// Info describes the detected format of a .note buffer.
type Info struct {
	Variant Variant
	// Version is the version tag embedded in the header: "1.0", "2.0" or
	// "3.0" for Legacy files, the ASCII digit string following the modern
	// signature for Modern files, and empty for Unknown.
	Version string
}

var (
	legacySignature = []byte("NOTE")
	modernSignature = []byte("noteSN_FILE_VER_")
)

// Legacy version tokens appear immediately after the signature.
var legacyVersions = map[string]string{
	"v1.0": "1.0",
	"v2.0": "2.0",
	"v3.0": "3.0",
}

// oldestLegacyVersion is assumed when the token after a legacy signature is
// unrecognized.
const oldestLegacyVersion = "1.0"

// Detect classifies a .note buffer from its magic and version bytes.
// It never fails: buffers that match neither signature are reported as
// Unknown.
func Detect(data []byte) Info {
	if bytes.HasPrefix(data, modernSignature) {
		return Info{Variant: Modern, Version: modernVersion(data[len(modernSignature):])}
	}
	if bytes.HasPrefix(data, legacySignature) {
		return Info{Variant: Legacy, Version: legacyVersion(data[len(legacySignature):])}
	}
	return Info{Variant: Unknown}
}

// modernVersion reads the ASCII digits that follow the modern signature,
// up to a NUL terminator or the first non-digit byte.
func modernVersion(data []byte) string {
	end := 0
	for end < len(data) && data[end] >= '0' && data[end] <= '9' {
		end++
	}
	return string(data[:end])
}

// legacyVersion maps the token after the legacy signature to a version
// string, defaulting to the oldest supported version.
func legacyVersion(data []byte) string {
	if len(data) >= 4 {
		if v, ok := legacyVersions[string(data[:4])]; ok {
			return v
		}
	}
	return oldestLegacyVersion
}
