// Package render flattens decoded .note layers into page rasters and
// converts them into standard image formats for OCR and export.
//
// # Compositing
//
// [Flatten] composites up to five decoded layers back-to-front onto a white
// canvas under a [Overlay] visibility policy. Source pixels darker than the
// ink threshold overwrite the canvas; lighter pixels are transparent. The
// background layer's near-white region is forced to pure white first so
// that scan noise never bleeds into the composited ink.
//
// # Visibility
//
// Each layer type resolves to one of [Default], [Visible] or [Invisible].
// An overlay in which every layer is Invisible is the special
// "export everything" mode: it includes all layers regardless of per-type
// policy, guaranteeing full ink recovery even for layers hidden during
// normal on-device display. Use [ExportEverything] to build it.
//
// # Export
//
// [GrayImage] converts a bitmap to an image.Gray, [Scale] resamples it, and
// [EncodePNG] produces PNG bytes suitable for OCR engines.
package render
