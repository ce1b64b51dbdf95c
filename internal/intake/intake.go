package intake

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/lottiekit/lottie-editor/internal/imaging"
	"github.com/lottiekit/lottie-editor/internal/model"
)

// ReadAnimation loads and validates an animation document from disk.
//
// Only files with a .json extension are accepted; the content must parse as
// JSON and satisfy the minimal document shape contract.
//
// Returns the file's base name (used later to derive the export name) along
// with the raw content, which the caller installs through the coordinator.
func ReadAnimation(path string) (name string, data []byte, err error) {
	if !strings.EqualFold(filepath.Ext(path), ".json") {
		return "", nil, fmt.Errorf("%s: only .json files are supported", filepath.Base(path))
	}

	data, err = os.ReadFile(path)
	if err != nil {
		return "", nil, fmt.Errorf("read animation file: %w", err)
	}

	if _, err := model.Parse(data); err != nil {
		return "", nil, err
	}
	return filepath.Base(path), data, nil
}

// ReadImage loads a raster image from disk and returns it as a data URI.
// The content is sniffed; anything that is not an image is rejected.
func ReadImage(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image file: %w", err)
	}

	mimeType := http.DetectContentType(data)
	if !strings.HasPrefix(mimeType, "image/") {
		return "", fmt.Errorf("%s: not an image (detected %s)", filepath.Base(path), mimeType)
	}
	return imaging.EncodeDataURI(mimeType, data), nil
}

// ExportFileName derives the download name for an exported document from the
// original filename: the stem plus a fixed suffix, always ending in .json.
//
//	ExportFileName("bounce.json", "-edited") // "bounce-edited.json"
//	ExportFileName("", "-edited")            // "animation-edited.json"
func ExportFileName(original, suffix string) string {
	stem := strings.TrimSuffix(filepath.Base(original), filepath.Ext(original))
	if stem == "" || stem == "." {
		stem = "animation"
	}
	return stem + suffix + ".json"
}

// WriteFile writes data to a file with mode 0644, creating parent
// directories as needed.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}
