// Package imaging prepares replacement raster images for embedding in an
// animation document.
//
// The package contains:
//   - Contain-fit normalization into an asset's frame (Normalizer)
//   - Data URI encoding and decoding helpers
//   - A cheap natural-dimension probe (NaturalSize)
//
// Output is always PNG: replaced assets may be letterboxed, and PNG keeps
// the letterbox margin transparent instead of flattening it to a color.
package imaging
