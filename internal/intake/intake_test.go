package intake

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lottiekit/lottie-editor/internal/model"
)

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("write temp file: %v", err)
	}
	return path
}

func TestReadAnimation(t *testing.T) {
	path := writeTemp(t, "anim.json",
		[]byte(`{"v":"5.5.0","fr":30,"ip":0,"op":60,"w":100,"h":100,"layers":[]}`))

	name, data, err := ReadAnimation(path)
	if err != nil {
		t.Fatalf("ReadAnimation() error = %v", err)
	}
	if name != "anim.json" {
		t.Errorf("name = %q, want %q", name, "anim.json")
	}
	doc, err := model.Parse(data)
	if err != nil {
		t.Fatalf("Parse(returned data) error = %v", err)
	}
	if doc.Version() != "5.5.0" {
		t.Errorf("Version() = %q, want %q", doc.Version(), "5.5.0")
	}
}

func TestReadAnimation_Rejections(t *testing.T) {
	t.Run("wrong extension", func(t *testing.T) {
		path := writeTemp(t, "anim.txt", []byte(`{}`))
		if _, _, err := ReadAnimation(path); err == nil {
			t.Error("ReadAnimation(.txt) succeeded, want error")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeTemp(t, "anim.json", []byte(`{not json`))
		if _, _, err := ReadAnimation(path); err == nil {
			t.Error("ReadAnimation(malformed) succeeded, want error")
		}
	})

	t.Run("wrong shape", func(t *testing.T) {
		path := writeTemp(t, "anim.json", []byte(`{"hello":"world"}`))
		if _, _, err := ReadAnimation(path); err == nil {
			t.Error("ReadAnimation(non-lottie) succeeded, want error")
		}
	})

	t.Run("missing file", func(t *testing.T) {
		if _, _, err := ReadAnimation(filepath.Join(t.TempDir(), "nope.json")); err == nil {
			t.Error("ReadAnimation(missing) succeeded, want error")
		}
	})
}

func TestReadImage(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	path := writeTemp(t, "pic.png", buf.Bytes())

	uri, err := ReadImage(path)
	if err != nil {
		t.Fatalf("ReadImage() error = %v", err)
	}
	if !strings.HasPrefix(uri, "data:image/png;base64,") {
		t.Errorf("ReadImage() = %.40q, want a PNG data URI", uri)
	}
}

func TestReadImage_NotAnImage(t *testing.T) {
	path := writeTemp(t, "pic.png", []byte("plain text pretending to be an image"))
	if _, err := ReadImage(path); err == nil {
		t.Error("ReadImage(text file) succeeded, want error")
	}
}

func TestExportFileName(t *testing.T) {
	tests := []struct {
		original string
		want     string
	}{
		{"bounce.json", "bounce-edited.json"},
		{"/tmp/animations/loader.json", "loader-edited.json"},
		{"no-extension", "no-extension-edited.json"},
		{"", "animation-edited.json"},
	}

	for _, tt := range tests {
		t.Run(tt.original, func(t *testing.T) {
			if got := ExportFileName(tt.original, "-edited"); got != tt.want {
				t.Errorf("ExportFileName(%q) = %q, want %q", tt.original, got, tt.want)
			}
		})
	}
}
