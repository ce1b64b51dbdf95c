// Package intake handles file input and output at the application edge.
//
// This package contains functions for:
//   - Reading and validating animation documents (.json only)
//   - Reading replacement images as data URIs (content-sniffed)
//   - Deriving export filenames
//   - Writing exported files
//
// Validation failures are ordinary errors surfaced to the user as transient
// messages; nothing in this package is fatal to a running session.
package intake
