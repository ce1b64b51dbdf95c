package model

import (
	"encoding/json"
	"fmt"
)

// Layer type tags used by Lottie.
const (
	LayerTypeSolid = 1
	LayerTypeImage = 2
	LayerTypeShape = 4
	LayerTypeText  = 5
)

// ValidationError describes why a JSON value is not a usable Lottie document.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid animation document: field %q %s", e.Field, e.Reason)
}

// Document is a parsed Lottie animation.
//
// The underlying tree is generic JSON (map[string]any / []any / float64 /
// string / bool / nil). Document values are never mutated in place; see the
// package documentation for the ownership rules.
type Document struct {
	root map[string]any
}

// Parse decodes and validates a Lottie document.
//
// Validation covers only the minimal shape contract: the six scalar header
// fields must be present with the correct primitive types and "layers" must
// be a JSON array. The rest of the tree is accepted as-is.
func Parse(data []byte) (*Document, error) {
	var root map[string]any
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("parse animation: %w", err)
	}
	return FromTree(root)
}

// FromTree validates an already-decoded JSON tree as a Lottie document.
func FromTree(root map[string]any) (*Document, error) {
	if root == nil {
		return nil, &ValidationError{Field: "(root)", Reason: "is not a JSON object"}
	}
	if _, ok := root["v"].(string); !ok {
		return nil, &ValidationError{Field: "v", Reason: "must be a string"}
	}
	for _, field := range []string{"fr", "ip", "op", "w", "h"} {
		if _, ok := root[field].(float64); !ok {
			return nil, &ValidationError{Field: field, Reason: "must be a number"}
		}
	}
	if _, ok := root["layers"].([]any); !ok {
		return nil, &ValidationError{Field: "layers", Reason: "must be an array"}
	}
	return &Document{root: root}, nil
}

// Root returns the underlying JSON tree. Callers must not mutate it.
func (d *Document) Root() map[string]any { return d.root }

// Version returns the Lottie schema version string.
func (d *Document) Version() string { v, _ := d.root["v"].(string); return v }

// FrameRate returns the animation frame rate.
func (d *Document) FrameRate() float64 { fr, _ := d.root["fr"].(float64); return fr }

// InPoint returns the first frame of the animation.
func (d *Document) InPoint() float64 { ip, _ := d.root["ip"].(float64); return ip }

// OutPoint returns the last frame of the animation.
func (d *Document) OutPoint() float64 { op, _ := d.root["op"].(float64); return op }

// Width returns the canvas width in pixels.
func (d *Document) Width() int { w, _ := d.root["w"].(float64); return int(w) }

// Height returns the canvas height in pixels.
func (d *Document) Height() int { h, _ := d.root["h"].(float64); return int(h) }

// Layers returns the ordered layer list. Elements that are not JSON objects
// are returned as nil entries so indices still line up with the document.
func (d *Document) Layers() []map[string]any {
	raw, _ := d.root["layers"].([]any)
	layers := make([]map[string]any, len(raw))
	for i, v := range raw {
		layers[i], _ = v.(map[string]any)
	}
	return layers
}

// Assets returns the ordered asset list, or nil if the document has none.
func (d *Document) Assets() []map[string]any {
	raw, _ := d.root["assets"].([]any)
	if raw == nil {
		return nil
	}
	assets := make([]map[string]any, len(raw))
	for i, v := range raw {
		assets[i], _ = v.(map[string]any)
	}
	return assets
}

// Clone returns a deep copy of the document. The copy shares no containers
// with the original, so either side can be handed to a mutating consumer.
func (d *Document) Clone() *Document {
	return &Document{root: CloneValue(d.root).(map[string]any)}
}

// Bytes marshals the document back to JSON.
func (d *Document) Bytes() ([]byte, error) {
	return json.Marshal(d.root)
}

// CloneValue deep-copies a generic JSON value (maps, slices, scalars).
func CloneValue(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, child := range v {
			out[k] = CloneValue(child)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, child := range v {
			out[i] = CloneValue(child)
		}
		return out
	default:
		return v
	}
}

// LayerType returns the integer type tag of a layer object, or -1 when the
// tag is absent or not a number.
func LayerType(layer map[string]any) int {
	ty, ok := layer["ty"].(float64)
	if !ok {
		return -1
	}
	return int(ty)
}

// LayerName returns the "nm" field of a layer, or the empty string.
func LayerName(layer map[string]any) string {
	nm, _ := layer["nm"].(string)
	return nm
}
