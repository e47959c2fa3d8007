package reader

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/tsawler/inkwell/core"
	"github.com/tsawler/inkwell/format"
)

// Config bounds the discovery pass.
type Config struct {
	// SizeCeiling is the largest compressed layer size accepted from a
	// length prefix. Claims above it are rejected before any allocation.
	SizeCeiling int
	// Lookback is the window, in bytes, searched backwards from a
	// <LAYERBITMAP:...> marker for the owning LAYERNAME and LAYERTYPE tags.
	Lookback int
}

// DefaultConfig returns the discovery bounds used by the fluent API.
func DefaultConfig() Config {
	return Config{
		SizeCeiling: 500000,
		Lookback:    256,
	}
}

// Reader parses a fully buffered .note file. The buffer is treated as an
// immutable, shared, read-only view; the Reader never mutates it.
//
// A Reader caches its discovery results and is not safe for concurrent use
// until Layers has been called once.
type Reader struct {
	data []byte
	info format.Info
	cfg  Config

	located    bool
	layers     []LayerDescriptor
	rejections []Rejection
}

// FromBytes creates a Reader over a complete .note buffer.
// An empty buffer is the only hard failure in the decode pipeline and is
// reported as [core.ErrEmptyInput].
func FromBytes(data []byte) (*Reader, error) {
	return FromBytesConfig(data, DefaultConfig())
}

// FromBytesConfig creates a Reader with explicit discovery bounds.
func FromBytesConfig(data []byte, cfg Config) (*Reader, error) {
	if len(data) == 0 {
		return nil, core.ErrEmptyInput
	}
	if cfg.SizeCeiling <= 0 {
		cfg.SizeCeiling = DefaultConfig().SizeCeiling
	}
	if cfg.Lookback <= 0 {
		cfg.Lookback = DefaultConfig().Lookback
	}
	return &Reader{
		data: data,
		info: format.Detect(data),
		cfg:  cfg,
	}, nil
}

// Open reads a .note file from disk and returns a Reader over its bytes.
func Open(filename string) (*Reader, error) {
	return OpenConfig(filename, DefaultConfig())
}

// OpenConfig reads a .note file from disk with explicit discovery bounds.
func OpenConfig(filename string, cfg Config) (*Reader, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return FromBytesConfig(data, cfg)
}

// FormatInfo returns the detected container variant and version tag.
func (r *Reader) FormatInfo() format.Info {
	return r.info
}

// Size returns the buffer length in bytes.
func (r *Reader) Size() int {
	return len(r.data)
}

// Bytes returns the underlying buffer. Callers must not mutate it.
func (r *Reader) Bytes() []byte {
	return r.data
}

// legacyHeaderLen is the legacy signature plus its version token.
const legacyHeaderLen = 8

// maxHeaderMetadata bounds the legacy structured-metadata block; larger
// claims are treated as garbage.
const maxHeaderMetadata = 10000

// HeaderMetadata returns the structured metadata block carried by legacy
// v2.0+ headers, or nil when absent or implausible. The block sits after
// the version token behind a 4-byte little-endian length.
func (r *Reader) HeaderMetadata() []byte {
	if r.info.Variant != format.Legacy || r.info.Version < "2.0" {
		return nil
	}
	if len(r.data) < legacyHeaderLen+4 {
		return nil
	}
	n := int(binary.LittleEndian.Uint32(r.data[legacyHeaderLen : legacyHeaderLen+4]))
	if n <= 0 || n >= maxHeaderMetadata || legacyHeaderLen+4+n > len(r.data) {
		return nil
	}
	meta := make([]byte, n)
	copy(meta, r.data[legacyHeaderLen+4:legacyHeaderLen+4+n])
	return meta
}

// LayerData returns the compressed payload a descriptor points at, or nil
// if the descriptor no longer fits the buffer. The returned slice aliases
// the underlying buffer and must not be mutated.
func (r *Reader) LayerData(d LayerDescriptor) []byte {
	start := d.Offset
	end := d.Offset + int64(d.Length)
	if start < 0 || d.Length <= 0 || end > int64(len(r.data)) {
		return nil
	}
	return r.data[start:end]
}

// PageCount reports the number of pages the discovered layers span.
// A document with no discoverable layers still decodes to one blank
// diagnostic page.
func (r *Reader) PageCount() int {
	layers, _ := r.Layers()
	count := 1
	for _, d := range layers {
		if d.Page+1 > count {
			count = d.Page + 1
		}
	}
	return count
}
