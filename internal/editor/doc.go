// Package editor coordinates edits against a loaded animation document and
// its player instance.
//
// The Editor decides, per edit, between two update paths:
//
//   - Live-patch: text content and text fill color are pushed directly into
//     the running player's element tree for immediate feedback, and the
//     tracked document is patched at the same logical path so exports see
//     the change. No reload happens.
//   - Full reload: shape fills/strokes, solid backgrounds, and image asset
//     replacements patch the tracked document and then destroy and rebuild
//     the player from a deep copy of it. The player cannot apply those
//     changes incrementally, and its internal state (repeaters, expressions,
//     frame position) goes inconsistent if the tree is patched underneath a
//     live instance.
//
// The reload protocol pins the container's rendered size while the old
// instance is torn down, holds the new instance paused until it reports
// construction complete, and then starts playback cold from frame zero.
//
// The Editor is the single owner of the tracked document; UI layers request
// edits through its API and never touch the document directly. Overlapping
// asynchronous intakes are disambiguated with generation stamps (BeginLoad /
// Load), so a slow read can never overwrite a newer document.
package editor
