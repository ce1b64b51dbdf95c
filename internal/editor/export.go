package editor

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lottiekit/lottie-editor/internal/extract"
	"github.com/lottiekit/lottie-editor/internal/imaging"
	"github.com/lottiekit/lottie-editor/internal/intake"
	"github.com/lottiekit/lottie-editor/internal/patch"
	"golang.org/x/sync/errgroup"
)

// embedLimit bounds how many asset files are read and encoded at once
// during export.
const embedLimit = 4

// Export produces the downloadable JSON for the tracked document, with every
// image asset normalized to an embedded, self-contained data URI, and the
// derived filename (original stem plus the configured suffix).
//
// External references are resolved against the directory the document was
// loaded from. An asset whose file cannot be read is reported as a warning
// and left untouched rather than failing the whole export.
func (e *Editor) Export() (name string, data []byte, err error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.doc == nil {
		return "", nil, ErrNoDocument
	}

	doc := e.doc
	assets := doc.Assets()

	// Encode external assets concurrently, then patch serially so the
	// tracked document stays single-writer.
	embedded := make([]string, len(assets))
	g := new(errgroup.Group)
	g.SetLimit(embedLimit)
	for _, i := range extract.ImageAssetIndices(doc) {
		i := i
		p, _ := assets[i]["p"].(string)
		if imaging.IsDataURI(p) {
			continue
		}
		asset := assets[i]
		g.Go(func() error {
			u, _ := asset["u"].(string)
			path := filepath.Join(e.assetDir, filepath.FromSlash(u), p)
			raw, err := os.ReadFile(path)
			if err != nil {
				e.progress(ProgressEvent{
					Message: fmt.Sprintf("Asset %d left external: %v", i, err),
					Level:   LevelWarning,
				})
				return nil
			}
			embedded[i] = imaging.EncodeDataURI("", raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", nil, err
	}

	for i, uri := range embedded {
		if uri == "" {
			continue
		}
		for _, f := range []struct {
			key   string
			value any
		}{
			{"p", uri},
			{"u", ""},
			{"e", float64(1)},
		} {
			path := patch.Path{patch.Key("assets"), patch.Index(i), patch.Key(f.key)}
			doc, err = patch.Apply(doc, path, f.value)
			if err != nil {
				return "", nil, fmt.Errorf("embed asset %d: %w", i, err)
			}
		}
	}

	data, err = doc.Bytes()
	if err != nil {
		return "", nil, err
	}
	return intake.ExportFileName(e.docName, e.settings.ExportSuffix), data, nil
}

// ExportToFile writes the export result to path. An empty path falls back to
// the derived export filename in the working directory.
func (e *Editor) ExportToFile(path string) (string, error) {
	name, data, err := e.Export()
	if err != nil {
		return "", err
	}
	if path == "" {
		path = name
	}
	if err := intake.WriteFile(path, data); err != nil {
		return "", err
	}
	return path, nil
}
