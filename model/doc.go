// Package model provides the intermediate representation for decoded .note
// documents.
//
// This package defines the user-facing data structures the decode pipeline
// produces. A [Document] is an ordered sequence of [Page] values, each
// carrying a flattened raster, the individual per-layer rasters for
// advanced composition callers, and per-page [Diagnostics].
//
// All entities are constructed once by the decode pipeline from an
// immutable byte buffer; there is no mutation after construction and no
// persisted state.
package model
