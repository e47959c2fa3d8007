// Package reader provides high-level .note buffer reading and layer
// discovery.
//
// This package orchestrates the lower-level core and format packages to
// turn a fully buffered .note file into an ordered list of layer
// descriptors ready for decoding.
//
// # Opening Buffers
//
// The reader operates on a complete, immutable byte buffer supplied by the
// caller:
//
//	r, err := reader.FromBytes(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Or use [Open] to read a file from disk first.
//
// # Layer Discovery
//
// [Reader.Layers] produces the full ordered [LayerDescriptor] list for the
// document using three strategies:
//
//  1. Tag scan (primary) - ASCII <LAYERTYPE:...>, <LAYERNAME:...> and
//     <LAYERBITMAP:address> markers embedded in modern containers.
//  2. Legacy hardcoded table - fixed offsets for the oldest format,
//     filtered to those that fit the file.
//  3. Known-offset table - sample-derived offsets, used only as a last
//     resort when nothing else matches.
//
// Every candidate offset is validated before any allocation: the 4-byte
// little-endian length prefix is read, and candidates whose decoded length
// is non-positive, exceeds the configured ceiling, or runs past the end of
// the buffer are rejected. Rejections are reported alongside the surviving
// descriptors so callers can surface them as diagnostics.
package reader
