package patch

import (
	"errors"
	"testing"

	"github.com/lottiekit/lottie-editor/internal/model"
)

func testDoc(t *testing.T) *model.Document {
	t.Helper()
	doc, err := model.Parse([]byte(`{
		"v":"5.5.0","fr":30,"ip":0,"op":60,"w":100,"h":100,
		"layers":[
			{"ty":1,"sc":"#ff0000"},
			{"ty":4,"shapes":[{"ty":"fl","c":{"k":[1,0,0]}}]}
		]
	}`))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

func TestApply_ReplacesValue(t *testing.T) {
	doc := testDoc(t)
	path := Path{Key("layers"), Index(0), Key("sc")}

	out, err := Apply(doc, path, "#00ff00")
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	got, err := Lookup(out, path)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got != "#00ff00" {
		t.Errorf("patched value = %v, want %q", got, "#00ff00")
	}
}

func TestApply_OriginalUnchanged(t *testing.T) {
	doc := testDoc(t)
	path := Path{Key("layers"), Index(0), Key("sc")}

	if _, err := Apply(doc, path, "#00ff00"); err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	got, err := Lookup(doc, path)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got != "#ff0000" {
		t.Errorf("original document changed: value = %v, want %q", got, "#ff0000")
	}
}

func TestApply_TruncatesQuadIntoTriple(t *testing.T) {
	doc := testDoc(t)
	path := Path{Key("layers"), Index(1), Key("shapes"), Index(0), Key("c"), Key("k")}

	out, err := Apply(doc, path, []any{0.0, 1.0, 0.0, 1.0})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	got, err := Lookup(out, path)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	arr, ok := got.([]any)
	if !ok || len(arr) != 3 {
		t.Fatalf("patched value = %v, want a 3-element array", got)
	}
	if arr[0] != 0.0 || arr[1] != 1.0 || arr[2] != 0.0 {
		t.Errorf("patched value = %v, want [0 1 0]", arr)
	}
}

func TestApply_NonTripleTargetReplacedVerbatim(t *testing.T) {
	doc := testDoc(t)
	path := Path{Key("layers"), Index(0), Key("sc")}

	// Target is a string, so a 4-element replacement is stored as-is.
	out, err := Apply(doc, path, []any{0.0, 1.0, 0.0, 1.0})
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}

	got, _ := Lookup(out, path)
	arr, ok := got.([]any)
	if !ok || len(arr) != 4 {
		t.Errorf("patched value = %v, want the 4-element array unchanged", got)
	}
}

func TestApply_UnresolvablePath(t *testing.T) {
	doc := testDoc(t)

	tests := []struct {
		name string
		path Path
	}{
		{"absent intermediate key", Path{Key("layers"), Index(0), Key("nope"), Key("x")}},
		{"index out of range", Path{Key("layers"), Index(9), Key("sc")}},
		{"key into array", Path{Key("layers"), Key("sc")}},
		{"index into object", Path{Index(0), Key("sc")}},
		{"absent intermediate", Path{Key("missing"), Index(0)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(doc, tt.path, "x")
			var perr *PathError
			if !errors.As(err, &perr) {
				t.Errorf("Apply() error = %v, want *PathError", err)
			}
		})
	}
}

func TestApply_CreatesMissingFinalKey(t *testing.T) {
	doc := testDoc(t)
	path := Path{Key("layers"), Index(0), Key("sw")}

	out, err := Apply(doc, path, 42.0)
	if err != nil {
		t.Fatalf("Apply() error = %v", err)
	}
	got, err := Lookup(out, path)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got != 42.0 {
		t.Errorf("created value = %v, want 42", got)
	}
}

func TestApply_EmptyPath(t *testing.T) {
	if _, err := Apply(testDoc(t), nil, "x"); err == nil {
		t.Error("Apply(empty path) succeeded, want error")
	}
}

func TestPath_String(t *testing.T) {
	p := Path{Key("layers"), Index(2), Key("shapes"), Index(0), Key("c"), Key("k")}
	want := "layers[2].shapes[0].c.k"
	if got := p.String(); got != want {
		t.Errorf("Path.String() = %q, want %q", got, want)
	}
}
