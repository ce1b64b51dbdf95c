// Package player defines the boundary to the animation playback engine.
//
// The engine is consumed as a black box: construct an instance into a
// container from a document, destroy it, get notified once construction
// completes, and live-patch individual text layers. Everything else about
// rendering is out of scope for this module.
//
// Two contract notes matter to callers:
//
//   - Players mutate the document tree they are constructed with. Always
//     pass an owned, freshly cloned document across this boundary.
//   - Live updates exist only for text content and text fill color. Any
//     other change needs a destroy-then-construct cycle, because instances
//     carry internal state (repeaters, expressions, frame position) that
//     goes inconsistent when the tree is patched underneath them.
//
// The headless implementation in this package backs the CLI and the tests.
package player
