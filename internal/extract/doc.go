// Package extract walks an animation document and enumerates its editable
// entities: text layers, color-bearing layers, and image assets.
//
// The extractor runs read-only, in a single pass, and produces three
// independent enumerations in layer order:
//
//	texts := extract.TextLayers(doc)
//	colors := extract.Colors(doc)
//	images := extract.ImageAssetIndices(doc)
//
// Each color entry carries a stable identifier (composed from the layer
// index, the color's role, and a per-layer occurrence counter) and the path
// address the patcher needs to replace it.
//
// All projections are recomputed from scratch whenever the document changes;
// none of them is incrementally updated or persisted.
package extract
