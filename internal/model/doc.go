// Package model holds the in-memory representation of a Lottie animation
// document.
//
// A Lottie file is schemaless beyond a small typed header (version, frame
// rate, in/out point, canvas size, layer list), so the document is kept as
// the generic JSON tree it was parsed from, wrapped in a Document value that
// exposes typed accessors for the header and the layer/asset lists.
//
// # Ownership and mutation
//
// A Document is treated as immutable by every consumer. Edits never modify a
// Document in place; they go through the patcher, which deep-clones the tree
// and returns a new Document. Clone is also used before handing a document to
// a rendering player, because players are known to mutate the tree they are
// given.
//
// # Validation
//
// Parse enforces the minimal shape contract once, at intake:
//
//	doc, err := model.Parse(data)
//	if err != nil {
//	    var verr *model.ValidationError
//	    if errors.As(err, &verr) {
//	        // not a Lottie document
//	    }
//	}
//
// Edits are assumed to preserve the shape; it is not re-checked afterwards.
package model
