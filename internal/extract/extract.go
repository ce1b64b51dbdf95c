package extract

import (
	"fmt"

	"github.com/lottiekit/lottie-editor/internal/colorconv"
	"github.com/lottiekit/lottie-editor/internal/model"
	"github.com/lottiekit/lottie-editor/internal/patch"
)

// ColorRole classifies where a color lives in the document.
type ColorRole string

const (
	RoleText   ColorRole = "text"
	RoleFill   ColorRole = "fill"
	RoleStroke ColorRole = "stroke"
	RoleSolid  ColorRole = "solid"
)

// TextLayerInfo is the projection of one text layer for the editing UI.
type TextLayerInfo struct {
	Index int
	Name  string
	Text  string
}

// ColorInfo is the projection of one editable color: a stable identifier, a
// role, the path address the patcher needs, and the current value.
//
// ColorInfo values are transient. They are recomputed from scratch on every
// document change and must never be cached across one.
type ColorInfo struct {
	ID         string
	Role       ColorRole
	LayerIndex int
	Path       patch.Path
	Color      colorconv.RGBA
}

// LayerColors groups the editable colors of a single layer. A layer appears
// here only if it contributed at least one color.
type LayerColors struct {
	Index   int
	Name    string
	Entries []ColorInfo
}

// TextLayers enumerates the text layers of doc in layer order.
func TextLayers(doc *model.Document) []TextLayerInfo {
	var out []TextLayerInfo
	for i, layer := range doc.Layers() {
		if layer == nil || model.LayerType(layer) != model.LayerTypeText {
			continue
		}
		name := model.LayerName(layer)
		if name == "" {
			name = fmt.Sprintf("Text Layer %d", i)
		}
		text, _ := textDocumentField(layer, "t").(string)
		out = append(out, TextLayerInfo{Index: i, Name: name, Text: text})
	}
	return out
}

// TextValuePath returns the path address of a text layer's string value.
func TextValuePath(layerIndex int) patch.Path {
	return textKeyframePath(layerIndex, "t")
}

// TextFillColorPath returns the path address of a text layer's fill-color
// triple.
func TextFillColorPath(layerIndex int) patch.Path {
	return textKeyframePath(layerIndex, "fc")
}

// Colors enumerates every editable color in doc, grouped by layer, in layer
// order. Within a shape layer, colors appear in document order with group
// contents visited depth-first.
func Colors(doc *model.Document) []LayerColors {
	var out []LayerColors
	for i, layer := range doc.Layers() {
		if layer == nil {
			continue
		}

		lc := LayerColors{Index: i, Name: model.LayerName(layer)}
		if lc.Name == "" {
			lc.Name = fmt.Sprintf("Layer %d", i)
		}

		switch model.LayerType(layer) {
		case model.LayerTypeText:
			if info, ok := textFillColor(layer, i); ok {
				lc.Entries = append(lc.Entries, info)
			}
		case model.LayerTypeShape:
			shapes, _ := layer["shapes"].([]any)
			prefix := patch.Path{patch.Key("layers"), patch.Index(i), patch.Key("shapes")}
			counter := 0
			lc.Entries = appendShapeColors(lc.Entries, shapes, prefix, i, &counter)
		case model.LayerTypeSolid:
			if sc, ok := layer["sc"].(string); ok {
				lc.Entries = append(lc.Entries, ColorInfo{
					ID:         fmt.Sprintf("layer-%d-solid", i),
					Role:       RoleSolid,
					LayerIndex: i,
					Path:       patch.Path{patch.Key("layers"), patch.Index(i), patch.Key("sc")},
					Color:      colorconv.FromHex(sc),
				})
			}
		}

		if len(lc.Entries) > 0 {
			out = append(out, lc)
		}
	}
	return out
}

// FindColor resolves a color identifier against a fresh enumeration of doc.
func FindColor(doc *model.Document, id string) (ColorInfo, bool) {
	for _, lc := range Colors(doc) {
		for _, info := range lc.Entries {
			if info.ID == id {
				return info, true
			}
		}
	}
	return ColorInfo{}, false
}

// ImageAssetIndices enumerates the indices of image-like assets: entries of
// the document's asset list whose payload field "p" is a string. Whether the
// payload is an external reference or an embedded data URI is not
// distinguished.
func ImageAssetIndices(doc *model.Document) []int {
	var out []int
	for i, asset := range doc.Assets() {
		if asset == nil {
			continue
		}
		if _, ok := asset["p"].(string); ok {
			out = append(out, i)
		}
	}
	return out
}

// appendShapeColors walks a shape node list, emitting fill and stroke colors
// as encountered and recursing into group contents ("it").
func appendShapeColors(entries []ColorInfo, shapes []any, prefix patch.Path, layerIndex int, counter *int) []ColorInfo {
	for j, node := range shapes {
		shape, ok := node.(map[string]any)
		if !ok {
			continue
		}

		switch shape["ty"] {
		case "fl":
			if info, ok := shapeColor(shape, prefix, j, layerIndex, RoleFill, *counter); ok {
				entries = append(entries, info)
				*counter++
			}
		case "st":
			if info, ok := shapeColor(shape, prefix, j, layerIndex, RoleStroke, *counter); ok {
				entries = append(entries, info)
				*counter++
			}
		case "gr":
			children, _ := shape["it"].([]any)
			childPrefix := append(append(patch.Path{}, prefix...), patch.Index(j), patch.Key("it"))
			entries = appendShapeColors(entries, children, childPrefix, layerIndex, counter)
		}
	}
	return entries
}

func shapeColor(shape map[string]any, prefix patch.Path, j, layerIndex int, role ColorRole, n int) (ColorInfo, bool) {
	c, _ := shape["c"].(map[string]any)
	if c == nil {
		return ColorInfo{}, false
	}
	k, _ := c["k"].([]any)
	rgba, ok := rgbaFromSlice(k)
	if !ok {
		return ColorInfo{}, false
	}
	return ColorInfo{
		ID:         fmt.Sprintf("layer-%d-%s-%d", layerIndex, role, n),
		Role:       role,
		LayerIndex: layerIndex,
		Path:       append(append(patch.Path{}, prefix...), patch.Index(j), patch.Key("c"), patch.Key("k")),
		Color:      rgba,
	}, true
}

func textFillColor(layer map[string]any, layerIndex int) (ColorInfo, bool) {
	fc, _ := textDocumentField(layer, "fc").([]any)
	rgba, ok := rgbaFromSlice(fc)
	if !ok {
		return ColorInfo{}, false
	}
	return ColorInfo{
		ID:         fmt.Sprintf("layer-%d-text", layerIndex),
		Role:       RoleText,
		LayerIndex: layerIndex,
		Path:       TextFillColorPath(layerIndex),
		Color:      rgba,
	}, true
}

// textDocumentField reads a field of the first document-data keyframe of a
// text layer: layer.t.d.k[0].s.<field>. Returns nil when any hop is absent.
func textDocumentField(layer map[string]any, field string) any {
	t, _ := layer["t"].(map[string]any)
	if t == nil {
		return nil
	}
	d, _ := t["d"].(map[string]any)
	if d == nil {
		return nil
	}
	k, _ := d["k"].([]any)
	if len(k) == 0 {
		return nil
	}
	first, _ := k[0].(map[string]any)
	if first == nil {
		return nil
	}
	s, _ := first["s"].(map[string]any)
	if s == nil {
		return nil
	}
	return s[field]
}

func textKeyframePath(layerIndex int, field string) patch.Path {
	return patch.Path{
		patch.Key("layers"), patch.Index(layerIndex),
		patch.Key("t"), patch.Key("d"), patch.Key("k"), patch.Index(0),
		patch.Key("s"), patch.Key(field),
	}
}

// rgbaFromSlice converts a JSON color array to an RGBA value. A 3-element
// array gets alpha 1.0 synthesized; a 4-element array is used as-is.
func rgbaFromSlice(k []any) (colorconv.RGBA, bool) {
	if len(k) != 3 && len(k) != 4 {
		return colorconv.RGBA{}, false
	}
	rgba := colorconv.RGBA{0, 0, 0, 1}
	for i, v := range k {
		f, ok := v.(float64)
		if !ok {
			return colorconv.RGBA{}, false
		}
		rgba[i] = f
	}
	return rgba, true
}
