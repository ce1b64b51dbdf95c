package player

import (
	"github.com/lottiekit/lottie-editor/internal/model"
)

// Options configures a player instance at construction time.
type Options struct {
	// RenderMode selects the playback engine's renderer ("svg", "canvas", ...).
	RenderMode string

	// Loop restarts playback from frame zero when the out point is reached.
	Loop bool

	// Autoplay starts playback immediately after construction. The editor
	// always constructs with Autoplay false and starts playback itself once
	// the ready notification fires.
	Autoplay bool
}

// TextUpdate is a partial document-data payload for live-patching one text
// layer of a running player. Nil fields are left untouched.
type TextUpdate struct {
	// Text replaces the layer's string value.
	Text *string

	// FillColor replaces the layer's fill color. Only the RGB triple is
	// carried; players have no alpha channel on text fills.
	FillColor *[3]float64
}

// Player is a handle to a constructed playback engine instance.
//
// Players are a black box: they own a private copy of the document tree and
// are known to mutate it, so a document must be deep-cloned before being
// handed to New. A player supports live updates only for text content and
// text fill color; every other document change requires destroying the
// instance and constructing a new one.
type Player interface {
	// ID identifies this instance; every construction gets a fresh one.
	ID() string

	// UpdateTextLayer live-patches one text layer, addressed by its index in
	// the document's layer list.
	UpdateTextLayer(layerIndex int, update TextUpdate) error

	// Play starts or resumes playback.
	Play()

	// Pause halts playback.
	Pause()

	// Destroy tears the instance down. The handle is unusable afterwards.
	Destroy()
}

// ReadyFunc is invoked exactly once, after a new instance has finished its
// internal construction, with the instance it belongs to. Playback held
// paused until then can be started from inside the callback.
type ReadyFunc func(Player)

// Factory constructs player instances into a container.
type Factory interface {
	New(container Container, doc *model.Document, opts Options, onReady ReadyFunc) (Player, error)
}

// Container is the rectangle a player renders into. During a reload the
// editor pins the container's current size as an explicit minimum so the
// surrounding layout does not collapse in the teardown/rebuild gap.
type Container interface {
	// Size returns the currently rendered width and height.
	Size() (width, height int)

	// PinMinSize sets an explicit minimum size on the container.
	PinMinSize(width, height int)

	// ClearMinSize removes a previously pinned minimum size.
	ClearMinSize()
}
