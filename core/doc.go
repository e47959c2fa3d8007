// Package core provides low-level parsing primitives for Supernote .note
// files.
//
// This package implements the fundamental building blocks the higher-level
// reader and render packages are composed from:
//
//   - [LayerType] - the five raster planes a page can carry, in composition
//     order (background first)
//   - [Bitmap] - a flat 8-bit grayscale raster (0 = ink, 255 = blank)
//   - [ColorTable] - the mapping from RATTA_RLE color command bytes to
//     grayscale intensities
//   - [DecodeRattaRLE] - the RATTA_RLE bitmap decompressor
//   - [ScanTags] / [LastTagBefore] - a pure lexer for the ASCII
//     <KEYWORD:value> markers embedded in modern .note containers
//
// # RATTA_RLE
//
// RATTA_RLE is the reverse-engineered run-length encoding Supernote uses to
// compress per-layer ink bitmaps. The command stream is a sequence of
// (color, length) byte pairs with extended-length and continuation forms;
// see [RLEParams] for the decoding constants. The constants were recovered
// from a sample corpus, not an official specification, so they are exposed
// as tunable parameters.
//
// All functions in this package are pure: they read an immutable byte slice
// and return freshly allocated results. None of them panic on malformed
// input; truncated or adversarial streams yield best-effort partial results.
package core
