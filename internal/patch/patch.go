// Package patch applies path-addressed value replacements to an animation
// document without mutating the original.
//
// A Path is an ordered sequence of string keys and integer indices reachable
// by successive indexing from the document root. Paths are produced by the
// extractor and stay valid only while the document's structural shape is
// unchanged; a path that no longer resolves indicates the extractor's
// addresses and the document have desynchronized, which Apply reports as a
// *PathError.
package patch

import (
	"fmt"
	"strings"

	"github.com/lottiekit/lottie-editor/internal/model"
)

// Step is one element of a Path: either an object key or an array index.
type Step struct {
	key   string
	index int
	isKey bool
}

// Key returns a Step addressing an object field.
func Key(k string) Step { return Step{key: k, isKey: true} }

// Index returns a Step addressing an array element.
func Index(i int) Step { return Step{index: i} }

func (s Step) String() string {
	if s.isKey {
		return s.key
	}
	return fmt.Sprintf("[%d]", s.index)
}

// Path addresses a location inside an animation document.
type Path []Step

func (p Path) String() string {
	var b strings.Builder
	for i, s := range p {
		if s.isKey && i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// PathError reports a path that does not resolve against a document. It is an
// invariant violation, not a recoverable user error: addresses are re-derived
// after every document change, so a miss means stale state.
type PathError struct {
	Path Path
	Step int
	Msg  string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %s does not resolve at step %d (%s): %s",
		e.Path, e.Step, e.Path[e.Step], e.Msg)
}

// Apply returns a new document with the value at path replaced by value. The
// input document is deep-cloned first and never mutated.
//
// One convention is preserved: when the existing value at the target is an
// array of exactly 3 elements and the replacement is also an array, only the
// replacement's first 3 elements are stored. Lottie encodes some colors as
// RGB triples and some as RGBA quads; the patch keeps each site's arity
// rather than silently widening a triple.
func Apply(doc *model.Document, path Path, value any) (*model.Document, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("empty path")
	}

	out := doc.Clone()
	parent, err := walk(out.Root(), path)
	if err != nil {
		return nil, err
	}

	// Absent intermediate hops are stale-address errors, but the final hop
	// may name an object key that does not exist yet; the patch creates it.
	last := path[len(path)-1]
	var existing any
	if obj, ok := parent.(map[string]any); ok && last.isKey {
		existing = obj[last.key]
	} else {
		existing, err = index(parent, last, path, len(path)-1)
		if err != nil {
			return nil, err
		}
	}

	if prev, ok := existing.([]any); ok && len(prev) == 3 {
		if next, ok := asSlice(value); ok && len(next) > 3 {
			value = next[:3]
		}
	}

	if err := assign(parent, last, value, path); err != nil {
		return nil, err
	}
	return out, nil
}

// Lookup resolves path against doc and returns the value found there.
func Lookup(doc *model.Document, path Path) (any, error) {
	if len(path) == 0 {
		return nil, fmt.Errorf("empty path")
	}
	parent, err := walk(doc.Root(), path)
	if err != nil {
		return nil, err
	}
	return index(parent, path[len(path)-1], path, len(path)-1)
}

// walk follows path[0 : len-1] and returns the parent container of the
// target location.
func walk(root any, path Path) (any, error) {
	node := root
	for i := 0; i < len(path)-1; i++ {
		child, err := index(node, path[i], path, i)
		if err != nil {
			return nil, err
		}
		node = child
	}
	return node, nil
}

func index(node any, step Step, path Path, at int) (any, error) {
	if step.isKey {
		obj, ok := node.(map[string]any)
		if !ok {
			return nil, &PathError{Path: path, Step: at, Msg: "container is not an object"}
		}
		child, ok := obj[step.key]
		if !ok {
			return nil, &PathError{Path: path, Step: at, Msg: "key absent"}
		}
		return child, nil
	}

	arr, ok := node.([]any)
	if !ok {
		return nil, &PathError{Path: path, Step: at, Msg: "container is not an array"}
	}
	if step.index < 0 || step.index >= len(arr) {
		return nil, &PathError{Path: path, Step: at, Msg: "index out of range"}
	}
	return arr[step.index], nil
}

func assign(parent any, step Step, value any, path Path) error {
	if step.isKey {
		obj, ok := parent.(map[string]any)
		if !ok {
			return &PathError{Path: path, Step: len(path) - 1, Msg: "container is not an object"}
		}
		obj[step.key] = value
		return nil
	}

	arr, ok := parent.([]any)
	if !ok {
		return &PathError{Path: path, Step: len(path) - 1, Msg: "container is not an array"}
	}
	if step.index < 0 || step.index >= len(arr) {
		return &PathError{Path: path, Step: len(path) - 1, Msg: "index out of range"}
	}
	arr[step.index] = value
	return nil
}

func asSlice(v any) ([]any, bool) {
	switch v := v.(type) {
	case []any:
		return v, true
	case []float64:
		out := make([]any, len(v))
		for i, f := range v {
			out[i] = f
		}
		return out, true
	default:
		return nil, false
	}
}
