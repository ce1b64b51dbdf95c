package player

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/lottiekit/lottie-editor/internal/model"
)

// HeadlessFactory builds headless players. The CLI uses it so batch edits
// run through the same coordinator paths as the interactive editor, and
// tests use it to observe the coordinator's lifecycle calls.
type HeadlessFactory struct{}

// NewHeadlessFactory creates a factory for headless player instances.
func NewHeadlessFactory() *HeadlessFactory {
	return &HeadlessFactory{}
}

// New constructs a headless player. The ready notification fires
// synchronously before New returns, which matches the tightest timing a real
// engine can exhibit and keeps the editor honest about its ordering.
func (f *HeadlessFactory) New(container Container, doc *model.Document, opts Options, onReady ReadyFunc) (Player, error) {
	p := &HeadlessPlayer{
		id:      uuid.NewString(),
		doc:     doc,
		playing: opts.Autoplay,
	}
	if onReady != nil {
		onReady(p)
	}
	return p, nil
}

// HeadlessPlayer is a Player with no rendering surface. It keeps the
// document it was given (without cloning, like a real engine) and records
// live text updates so tests can assert on them.
type HeadlessPlayer struct {
	id        string
	doc       *model.Document
	playing   bool
	destroyed bool

	// TextUpdates records every UpdateTextLayer call in order.
	TextUpdates []RecordedTextUpdate
}

// RecordedTextUpdate is one observed UpdateTextLayer call.
type RecordedTextUpdate struct {
	LayerIndex int
	Update     TextUpdate
}

// ID returns the instance identifier.
func (p *HeadlessPlayer) ID() string { return p.id }

// UpdateTextLayer validates the target layer and records the update.
func (p *HeadlessPlayer) UpdateTextLayer(layerIndex int, update TextUpdate) error {
	if p.destroyed {
		return fmt.Errorf("player %s is destroyed", p.id)
	}
	layers := p.doc.Layers()
	if layerIndex < 0 || layerIndex >= len(layers) {
		return fmt.Errorf("layer index %d out of range", layerIndex)
	}
	if model.LayerType(layers[layerIndex]) != model.LayerTypeText {
		return fmt.Errorf("layer %d is not a text layer", layerIndex)
	}
	p.TextUpdates = append(p.TextUpdates, RecordedTextUpdate{LayerIndex: layerIndex, Update: update})
	return nil
}

// Play starts playback.
func (p *HeadlessPlayer) Play() { p.playing = true }

// Pause halts playback.
func (p *HeadlessPlayer) Pause() { p.playing = false }

// Playing reports the playback state.
func (p *HeadlessPlayer) Playing() bool { return p.playing }

// Destroy marks the instance as torn down.
func (p *HeadlessPlayer) Destroy() {
	p.destroyed = true
	p.playing = false
}

// Destroyed reports whether Destroy has been called.
func (p *HeadlessPlayer) Destroyed() bool { return p.destroyed }

// FixedContainer is a Container with a static rendered size. It records
// pin/clear calls for tests.
type FixedContainer struct {
	W, H    int
	MinW    int
	MinH    int
	Pinned  bool
	Cleared int
}

// Size returns the container's rendered size.
func (c *FixedContainer) Size() (int, int) { return c.W, c.H }

// PinMinSize records the pinned minimum size.
func (c *FixedContainer) PinMinSize(w, h int) {
	c.MinW, c.MinH = w, h
	c.Pinned = true
}

// ClearMinSize removes the pinned minimum size.
func (c *FixedContainer) ClearMinSize() {
	c.Pinned = false
	c.Cleared++
}
