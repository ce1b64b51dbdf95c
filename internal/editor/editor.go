package editor

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/lottiekit/lottie-editor/internal/colorconv"
	"github.com/lottiekit/lottie-editor/internal/config"
	"github.com/lottiekit/lottie-editor/internal/extract"
	"github.com/lottiekit/lottie-editor/internal/imaging"
	"github.com/lottiekit/lottie-editor/internal/intake"
	"github.com/lottiekit/lottie-editor/internal/model"
	"github.com/lottiekit/lottie-editor/internal/patch"
	"github.com/lottiekit/lottie-editor/internal/player"
)

// State is the coordinator's lifecycle state.
type State int

const (
	// StateNoDocument means nothing is loaded; edits are no-ops.
	StateNoDocument State = iota

	// StateLoaded means a document is installed and a player is active.
	StateLoaded

	// StateReloading is the transient state during a full player remount.
	StateReloading
)

// ErrNoDocument is returned by operations that need a loaded document.
var ErrNoDocument = errors.New("no document loaded")

// ErrStaleLoad is returned when a load completion carries an outdated
// generation: a newer intake started while this one's read was in flight.
var ErrStaleLoad = errors.New("stale load superseded by a newer one")

// Editor is the update coordinator. It owns the tracked document (the single
// source of truth for export), the active player handle, and the remount
// key, and decides per edit whether to live-patch the running player or
// rebuild the document and force a full reload.
//
// The tracked document is replaced wholesale on every full-reload edit,
// never mutated in place. All entity projections (text layers, colors, image
// assets) are recomputed from scratch whenever the document changes.
type Editor struct {
	settings   *config.Settings
	factory    player.Factory
	container  player.Container
	normalizer *imaging.Normalizer

	doc      *model.Document
	docName  string
	assetDir string
	plyr     player.Player
	state    State

	remountKey int
	generation int

	texts         []extract.TextLayerInfo
	colors        []extract.LayerColors
	imageAssets   []int
	selectedAsset int

	onProgress func(ProgressEvent)
	mu         sync.Mutex
}

// New creates an Editor with no document loaded.
func New(settings *config.Settings, factory player.Factory, container player.Container, onProgress func(ProgressEvent)) *Editor {
	return &Editor{
		settings:      settings,
		factory:       factory,
		container:     container,
		normalizer:    imaging.NewNormalizer(),
		state:         StateNoDocument,
		selectedAsset: -1,
		onProgress:    onProgress,
	}
}

// BeginLoad starts a new intake attempt and returns its generation stamp.
// Call it before kicking off an asynchronous file read and pass the stamp to
// Load with the read's result; a stamp that has been superseded by a newer
// BeginLoad makes Load fail with ErrStaleLoad instead of clobbering the
// newer document.
func (e *Editor) BeginLoad() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generation++
	return e.generation
}

// Load validates and installs a document, tearing down any previous player
// and constructing a fresh one.
//
// name is the original filename (used to derive the export name) and
// assetDir is the directory external asset references resolve against; both
// may be empty.
func (e *Editor) Load(gen int, name, assetDir string, data []byte) error {
	doc, err := model.Parse(data)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if gen != e.generation {
		return ErrStaleLoad
	}

	e.doc = doc
	e.docName = name
	e.assetDir = assetDir
	if err := e.remount(); err != nil {
		e.doc = nil
		e.docName = ""
		e.state = StateNoDocument
		return err
	}
	e.refreshProjections()
	e.progress(ProgressEvent{
		Message: fmt.Sprintf("Loaded %s (%dx%d, %g fps, %d layers)",
			name, doc.Width(), doc.Height(), doc.FrameRate(), len(doc.Layers())),
		Level: LevelSuccess,
	})
	return nil
}

// LoadFile reads, validates, and installs a document from disk.
func (e *Editor) LoadFile(path string) error {
	gen := e.BeginLoad()
	name, data, err := intake.ReadAnimation(path)
	if err != nil {
		return err
	}
	return e.Load(gen, name, filepath.Dir(path), data)
}

// Reset discards the document and destroys the player.
func (e *Editor) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.plyr != nil {
		e.plyr.Destroy()
		e.plyr = nil
	}
	e.doc = nil
	e.docName = ""
	e.assetDir = ""
	e.state = StateNoDocument
	e.refreshProjections()
}

// State returns the coordinator state.
func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// RemountKey returns the current remount key. It increments on every full
// player rebuild, so two equal keys always refer to the same instance.
func (e *Editor) RemountKey() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.remountKey
}

// Name returns the loaded document's original filename.
func (e *Editor) Name() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.docName
}

// Document returns the tracked document. Callers must treat it as immutable.
func (e *Editor) Document() *model.Document {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc
}

// DocumentBytes marshals the tracked document.
func (e *Editor) DocumentBytes() ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.doc == nil {
		return nil, ErrNoDocument
	}
	return e.doc.Bytes()
}

// TextLayers returns the current text layer projection.
func (e *Editor) TextLayers() []extract.TextLayerInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]extract.TextLayerInfo(nil), e.texts...)
}

// Colors returns the current color projection, grouped by layer.
func (e *Editor) Colors() []extract.LayerColors {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]extract.LayerColors(nil), e.colors...)
}

// ImageAssets returns the indices of image-like assets.
func (e *Editor) ImageAssets() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]int(nil), e.imageAssets...)
}

// SelectedAsset returns the active image asset index, or -1 when the
// document has no image assets.
func (e *Editor) SelectedAsset() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectedAsset
}

// SelectImageAsset picks the active image asset for replacement.
func (e *Editor) SelectImageAsset(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, i := range e.imageAssets {
		if i == index {
			e.selectedAsset = index
			return nil
		}
	}
	return fmt.Errorf("asset %d is not an image asset", index)
}

// SetText edits a text layer's string value.
//
// Text is a live-patch edit: the new value is pushed straight into the
// running player's element tree (no reload), and the tracked document is
// patched at the same logical path so a later export reflects the change.
func (e *Editor) SetText(layerIndex int, text string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.doc == nil {
		e.progress(ProgressEvent{Message: "Ignoring text edit: no document loaded", Level: LevelVerbose})
		return nil
	}

	doc, err := patch.Apply(e.doc, extract.TextValuePath(layerIndex), text)
	if err != nil {
		return fmt.Errorf("patch text of layer %d: %w", layerIndex, err)
	}

	if e.plyr != nil {
		if err := e.plyr.UpdateTextLayer(layerIndex, player.TextUpdate{Text: &text}); err != nil {
			return fmt.Errorf("live-update text of layer %d: %w", layerIndex, err)
		}
	}

	e.doc = doc
	e.refreshProjections()
	e.progress(ProgressEvent{Message: fmt.Sprintf("Updated text of layer %d", layerIndex), Level: LevelVerbose})
	return nil
}

// SetColor edits one color entry.
//
// Text fill colors are live-patched like text content. Shape fills and
// strokes and solid backgrounds force a full reload: the player has no live
// update path for them, and patching its tree in place leaves repeaters and
// expressions in an inconsistent state.
func (e *Editor) SetColor(info extract.ColorInfo, c colorconv.RGBA) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.doc == nil {
		e.progress(ProgressEvent{Message: "Ignoring color edit: no document loaded", Level: LevelVerbose})
		return nil
	}

	var value any
	switch info.Role {
	case extract.RoleSolid:
		value = colorconv.ToHex(c)
	default:
		// The patcher truncates this back to a triple where the document
		// stores one.
		value = []any{c[0], c[1], c[2], c[3]}
	}

	doc, err := patch.Apply(e.doc, info.Path, value)
	if err != nil {
		return fmt.Errorf("patch color %s: %w", info.ID, err)
	}
	e.doc = doc

	if info.Role == extract.RoleText {
		if e.plyr != nil {
			rgb := [3]float64{c[0], c[1], c[2]}
			if err := e.plyr.UpdateTextLayer(info.LayerIndex, player.TextUpdate{FillColor: &rgb}); err != nil {
				return fmt.Errorf("live-update color %s: %w", info.ID, err)
			}
		}
		e.refreshProjections()
		e.progress(ProgressEvent{Message: fmt.Sprintf("Updated %s", info.ID), Level: LevelVerbose})
		return nil
	}

	if err := e.remount(); err != nil {
		return err
	}
	e.refreshProjections()
	e.progress(ProgressEvent{Message: fmt.Sprintf("Updated %s (reloaded player)", info.ID), Level: LevelVerbose})
	return nil
}

// SetColorByID resolves a color identifier against the current document and
// edits it.
func (e *Editor) SetColorByID(id string, c colorconv.RGBA) error {
	e.mu.Lock()
	doc := e.doc
	e.mu.Unlock()

	if doc == nil {
		return nil
	}
	info, ok := extract.FindColor(doc, id)
	if !ok {
		return fmt.Errorf("no color %q in document", id)
	}
	return e.SetColor(info, c)
}

// ReplaceImage swaps an image asset's payload for a replacement raster
// image, contain-fitted to the asset's frame, and forces a full reload.
//
// The asset's stored width/height define the frame; when they are missing,
// the replacement's natural dimensions are substituted.
func (e *Editor) ReplaceImage(assetIndex int, sourceDataURI string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.doc == nil {
		e.progress(ProgressEvent{Message: "Ignoring image edit: no document loaded", Level: LevelVerbose})
		return nil
	}

	assets := e.doc.Assets()
	if assetIndex < 0 || assetIndex >= len(assets) || assets[assetIndex] == nil {
		return fmt.Errorf("asset %d does not exist", assetIndex)
	}
	asset := assets[assetIndex]
	if _, ok := asset["p"].(string); !ok {
		return fmt.Errorf("asset %d is not an image asset", assetIndex)
	}

	frameW, frameH := assetFrame(asset)
	if frameW == 0 || frameH == 0 {
		raw, err := imaging.DecodeDataURI(sourceDataURI)
		if err != nil {
			return err
		}
		nw, nh, err := imaging.NaturalSize(raw)
		if err != nil {
			return err
		}
		if frameW == 0 {
			frameW = nw
		}
		if frameH == 0 {
			frameH = nh
		}
	}

	normalized, err := e.normalizer.Normalize(sourceDataURI, frameW, frameH)
	if err != nil {
		return err
	}

	doc := e.doc
	fields := []struct {
		key   string
		value any
	}{
		{"p", normalized},    // embedded payload
		{"u", ""},            // drop the external path
		{"e", float64(1)},    // mark as embedded
		{"w", float64(frameW)},
		{"h", float64(frameH)},
	}
	for _, f := range fields {
		path := patch.Path{patch.Key("assets"), patch.Index(assetIndex), patch.Key(f.key)}
		doc, err = patch.Apply(doc, path, f.value)
		if err != nil {
			return fmt.Errorf("patch asset %d: %w", assetIndex, err)
		}
	}
	e.doc = doc

	if err := e.remount(); err != nil {
		return err
	}
	e.refreshProjections()
	e.progress(ProgressEvent{
		Message: fmt.Sprintf("Replaced image asset %d (%dx%d)", assetIndex, frameW, frameH),
		Level:   LevelSuccess,
	})
	return nil
}

// remount tears down the current player (if any) and constructs a new one
// from a deep copy of the tracked document. Callers hold e.mu.
//
// Before teardown the container's rendered size is pinned as its minimum so
// the surrounding layout does not collapse during the gap. The new instance
// is constructed paused; once it signals construction complete, the pin is
// cleared and playback starts cold from frame zero. Frame position is
// deliberately not restored: layers with repeaters or expressions can reach
// an inconsistent internal state when resumed mid-animation after a
// structural change.
func (e *Editor) remount() error {
	pinned := false
	if e.plyr != nil {
		w, h := e.container.Size()
		e.container.PinMinSize(w, h)
		pinned = true
		e.plyr.Destroy()
		e.plyr = nil
	}
	e.state = StateReloading
	e.remountKey++

	opts := player.Options{
		RenderMode: e.settings.RenderMode,
		Loop:       e.settings.Loop,
		Autoplay:   false,
	}
	autoplay := e.settings.Autoplay
	container := e.container
	p, err := e.factory.New(container, e.doc.Clone(), opts, func(p player.Player) {
		container.ClearMinSize()
		if autoplay {
			p.Play()
		}
	})
	if err != nil {
		if pinned {
			e.container.ClearMinSize()
		}
		e.state = StateNoDocument
		return fmt.Errorf("construct player: %w", err)
	}
	e.plyr = p
	e.state = StateLoaded
	return nil
}

// refreshProjections recomputes every derived enumeration from the tracked
// document. Callers hold e.mu.
func (e *Editor) refreshProjections() {
	if e.doc == nil {
		e.texts = nil
		e.colors = nil
		e.imageAssets = nil
		e.selectedAsset = -1
		return
	}

	e.texts = extract.TextLayers(e.doc)
	e.colors = extract.Colors(e.doc)
	e.imageAssets = extract.ImageAssetIndices(e.doc)

	// Keep the selection if its index survived; otherwise default to the
	// first image asset.
	kept := false
	for _, i := range e.imageAssets {
		if i == e.selectedAsset {
			kept = true
			break
		}
	}
	if !kept {
		if len(e.imageAssets) > 0 {
			e.selectedAsset = e.imageAssets[0]
		} else {
			e.selectedAsset = -1
		}
	}
}

func (e *Editor) progress(event ProgressEvent) {
	if e.onProgress != nil {
		e.onProgress(event)
	}
}

// assetFrame reads an asset's stored frame size; absent fields come back 0.
func assetFrame(asset map[string]any) (int, int) {
	w, _ := asset["w"].(float64)
	h, _ := asset["h"].(float64)
	return int(w), int(h)
}
