package inkwell

import (
	"fmt"
	"strings"
)

// WarningCode classifies a non-fatal problem encountered while decoding.
type WarningCode int

const (
	// WarnFormatUnrecognized means the container signature matched no known
	// variant; the document carries a single blank diagnostic page.
	WarnFormatUnrecognized WarningCode = iota
	// WarnBadLayerAddress means a LAYERBITMAP tag carried a value that is
	// not a parseable, non-negative address.
	WarnBadLayerAddress
	// WarnLayerOutOfBounds means a layer's address or length prefix pointed
	// outside the file buffer.
	WarnLayerOutOfBounds
	// WarnBadLayerLength means a layer's length prefix decoded to a
	// non-positive value.
	WarnBadLayerLength
	// WarnOversizedLayer means a layer's length prefix claimed more bytes
	// than the configured ceiling allows.
	WarnOversizedLayer
	// WarnTruncatedBitmap means a layer's byte stream ended mid-pair and
	// only decoded partially.
	WarnTruncatedBitmap
	// WarnPageOutOfRange means a requested page number does not exist in
	// the file; the page is skipped.
	WarnPageOutOfRange
	// WarnPageFailed means decoding one page failed internally; that page
	// is replaced with a blank diagnostic page so its siblings survive.
	WarnPageFailed
)

// String returns a stable identifier for the code.
func (c WarningCode) String() string {
	switch c {
	case WarnFormatUnrecognized:
		return "format-unrecognized"
	case WarnBadLayerAddress:
		return "bad-layer-address"
	case WarnLayerOutOfBounds:
		return "layer-out-of-bounds"
	case WarnBadLayerLength:
		return "bad-layer-length"
	case WarnOversizedLayer:
		return "oversized-layer"
	case WarnTruncatedBitmap:
		return "truncated-bitmap"
	case WarnPageOutOfRange:
		return "page-out-of-range"
	case WarnPageFailed:
		return "page-failed"
	default:
		return "unknown"
	}
}

// Warning describes a non-fatal issue encountered during decoding.
// Warnings are returned beside results rather than logged, so callers
// decide what is worth surfacing.
type Warning struct {
	Code WarningCode
	// Page is the 1-indexed page the warning belongs to, or 0 for
	// document-level warnings.
	Page    int
	Message string
}

// String renders the warning for human consumption.
func (w Warning) String() string {
	if w.Page > 0 {
		return fmt.Sprintf("%s (page %d): %s", w.Code, w.Page, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Code, w.Message)
}

// FormatWarnings joins warnings into a single human-readable string,
// suitable for logging.
//
// Example:
//
//	doc, warnings, err := inkwell.Open("notebook.note").Document()
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", inkwell.FormatWarnings(warnings))
//	}
func FormatWarnings(warnings []Warning) string {
	if len(warnings) == 0 {
		return ""
	}
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
