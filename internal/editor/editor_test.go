package editor

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/lottiekit/lottie-editor/internal/colorconv"
	"github.com/lottiekit/lottie-editor/internal/config"
	"github.com/lottiekit/lottie-editor/internal/extract"
	"github.com/lottiekit/lottie-editor/internal/imaging"
	"github.com/lottiekit/lottie-editor/internal/model"
	"github.com/lottiekit/lottie-editor/internal/patch"
	"github.com/lottiekit/lottie-editor/internal/player"
)

// recordingFactory wraps the headless factory and keeps every constructed
// player so tests can observe lifecycle calls.
type recordingFactory struct {
	inner   *player.HeadlessFactory
	players []*player.HeadlessPlayer
}

func (f *recordingFactory) New(c player.Container, d *model.Document, o player.Options, r player.ReadyFunc) (player.Player, error) {
	p, err := f.inner.New(c, d, o, r)
	if err != nil {
		return nil, err
	}
	f.players = append(f.players, p.(*player.HeadlessPlayer))
	return p, nil
}

func (f *recordingFactory) last(t *testing.T) *player.HeadlessPlayer {
	t.Helper()
	if len(f.players) == 0 {
		t.Fatal("no player constructed")
	}
	return f.players[len(f.players)-1]
}

func newTestEditor() (*Editor, *recordingFactory, *player.FixedContainer) {
	factory := &recordingFactory{inner: player.NewHeadlessFactory()}
	container := &player.FixedContainer{W: 100, H: 100}
	e := New(config.DefaultSettings(), factory, container, nil)
	return e, factory, container
}

func load(t *testing.T, e *Editor, body string) {
	t.Helper()
	if err := e.Load(e.BeginLoad(), "anim.json", "", []byte(body)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
}

const docWithEverything = `{"v":"5.5.0","fr":30,"ip":0,"op":60,"w":100,"h":100,
	"layers":[
		{"ty":5,"nm":"Title","t":{"d":{"k":[{"s":{"t":"Hi","fc":[1,0,0]}}]}}},
		{"ty":4,"shapes":[{"ty":"fl","c":{"k":[0,1,0]}}]},
		{"ty":1,"sc":"#0000ff"}
	],
	"assets":[{"id":"image_0","w":50,"h":100,"u":"images/","p":"img_0.png","e":0}]}`

func TestLoad(t *testing.T) {
	e, factory, _ := newTestEditor()
	load(t, e, docWithEverything)

	if e.State() != StateLoaded {
		t.Errorf("State() = %v, want StateLoaded", e.State())
	}
	if e.RemountKey() != 1 {
		t.Errorf("RemountKey() = %d, want 1", e.RemountKey())
	}
	if !factory.last(t).Playing() {
		t.Error("player is paused after load, want playing (deferred autoplay)")
	}
	if got := e.TextLayers(); len(got) != 1 || got[0].Text != "Hi" {
		t.Errorf("TextLayers() = %+v, want one entry with text Hi", got)
	}
	if got := e.Colors(); len(got) != 3 {
		t.Errorf("Colors() has %d layers, want 3", len(got))
	}
	if got := e.SelectedAsset(); got != 0 {
		t.Errorf("SelectedAsset() = %d, want 0 (default first)", got)
	}
}

func TestLoad_InvalidDocument(t *testing.T) {
	e, _, _ := newTestEditor()

	err := e.Load(e.BeginLoad(), "bad.json", "", []byte(`{"not":"lottie"}`))
	if err == nil {
		t.Fatal("Load(invalid) succeeded, want error")
	}
	if e.State() != StateNoDocument {
		t.Errorf("State() = %v after failed load, want StateNoDocument", e.State())
	}
}

func TestLoad_StaleGenerationDropped(t *testing.T) {
	e, _, _ := newTestEditor()

	older := e.BeginLoad()
	newer := e.BeginLoad()

	if err := e.Load(newer, "new.json", "", []byte(docWithEverything)); err != nil {
		t.Fatalf("Load(newer) error = %v", err)
	}
	err := e.Load(older, "old.json", "",
		[]byte(`{"v":"5.5.0","fr":30,"ip":0,"op":60,"w":1,"h":1,"layers":[]}`))
	if !errors.Is(err, ErrStaleLoad) {
		t.Fatalf("Load(older) error = %v, want ErrStaleLoad", err)
	}
	if e.Name() != "new.json" {
		t.Errorf("Name() = %q, want the newer document to win", e.Name())
	}
}

func TestEditsWithoutDocumentAreNoOps(t *testing.T) {
	e, factory, _ := newTestEditor()

	if err := e.SetText(0, "x"); err != nil {
		t.Errorf("SetText() error = %v, want nil no-op", err)
	}
	if err := e.SetColor(extract.ColorInfo{Role: extract.RoleSolid}, colorconv.Default); err != nil {
		t.Errorf("SetColor() error = %v, want nil no-op", err)
	}
	if err := e.ReplaceImage(0, "data:"); err != nil {
		t.Errorf("ReplaceImage() error = %v, want nil no-op", err)
	}
	if len(factory.players) != 0 {
		t.Error("a player was constructed by a no-op edit")
	}
}

func TestSetText_LivePatch(t *testing.T) {
	e, factory, _ := newTestEditor()
	load(t, e, docWithEverything)
	p := factory.last(t)

	if err := e.SetText(0, "Hello"); err != nil {
		t.Fatalf("SetText() error = %v", err)
	}

	// No reload happened.
	if e.RemountKey() != 1 {
		t.Errorf("RemountKey() = %d after text edit, want 1 (no reload)", e.RemountKey())
	}
	if p.Destroyed() {
		t.Error("player was destroyed by a live-patch edit")
	}

	// The live player received the new value.
	if len(p.TextUpdates) != 1 || p.TextUpdates[0].LayerIndex != 0 ||
		p.TextUpdates[0].Update.Text == nil || *p.TextUpdates[0].Update.Text != "Hello" {
		t.Errorf("TextUpdates = %+v, want one text update Hello on layer 0", p.TextUpdates)
	}

	// The tracked document was patched too.
	got, err := patch.Lookup(e.Document(), extract.TextValuePath(0))
	if err != nil || got != "Hello" {
		t.Errorf("tracked document text = %v (err %v), want Hello", got, err)
	}

	// And the projection updated.
	if texts := e.TextLayers(); texts[0].Text != "Hello" {
		t.Errorf("TextLayers()[0].Text = %q, want Hello", texts[0].Text)
	}
}

func TestSetColor_TextRoleLivePatches(t *testing.T) {
	e, factory, _ := newTestEditor()
	load(t, e, docWithEverything)
	p := factory.last(t)

	if err := e.SetColorByID("layer-0-text", colorconv.RGBA{0, 0, 1, 1}); err != nil {
		t.Fatalf("SetColorByID() error = %v", err)
	}

	if e.RemountKey() != 1 {
		t.Errorf("RemountKey() = %d after text color edit, want 1 (no reload)", e.RemountKey())
	}
	if len(p.TextUpdates) != 1 || p.TextUpdates[0].Update.FillColor == nil {
		t.Fatalf("TextUpdates = %+v, want one fill-color update", p.TextUpdates)
	}
	if got := *p.TextUpdates[0].Update.FillColor; got != [3]float64{0, 0, 1} {
		t.Errorf("live fill color = %v, want [0 0 1] (alpha dropped)", got)
	}

	// Document stores the triple (target was a 3-element array).
	got, err := patch.Lookup(e.Document(), extract.TextFillColorPath(0))
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if arr := got.([]any); len(arr) != 3 || arr[2] != 1.0 {
		t.Errorf("stored fill color = %v, want 3-element [0 0 1]", got)
	}
}

func TestSetColor_SolidForcesReload(t *testing.T) {
	e, factory, container := newTestEditor()
	load(t, e, docWithEverything)
	first := factory.last(t)

	if err := e.SetColorByID("layer-2-solid", colorconv.RGBA{1, 1, 0, 1}); err != nil {
		t.Fatalf("SetColorByID() error = %v", err)
	}

	if e.RemountKey() != 2 {
		t.Errorf("RemountKey() = %d, want 2 (one reload)", e.RemountKey())
	}
	if !first.Destroyed() {
		t.Error("old player not destroyed on reload")
	}
	second := factory.last(t)
	if second == first {
		t.Fatal("no new player constructed on reload")
	}
	if !second.Playing() {
		t.Error("new player is paused, want playing from frame zero after ready")
	}

	// Layout pin was set during the gap and cleared on ready.
	if container.Pinned {
		t.Error("container min-size still pinned after reload")
	}
	if container.Cleared == 0 {
		t.Error("container min-size was never cleared")
	}
	if container.MinW != 100 || container.MinH != 100 {
		t.Errorf("pinned min size = %dx%d, want the rendered 100x100", container.MinW, container.MinH)
	}

	got, err := patch.Lookup(e.Document(), patch.Path{patch.Key("layers"), patch.Index(2), patch.Key("sc")})
	if err != nil || got != "#ffff00" {
		t.Errorf("solid color = %v (err %v), want #ffff00", got, err)
	}
	if e.State() != StateLoaded {
		t.Errorf("State() = %v, want StateLoaded", e.State())
	}
}

func TestSetColor_ShapeFillTruncatedToTriple(t *testing.T) {
	e, _, _ := newTestEditor()
	load(t, e, docWithEverything)

	if err := e.SetColorByID("layer-1-fill-0", colorconv.RGBA{1, 0, 1, 1}); err != nil {
		t.Fatalf("SetColorByID() error = %v", err)
	}

	got, err := patch.Lookup(e.Document(),
		patch.Path{patch.Key("layers"), patch.Index(1), patch.Key("shapes"), patch.Index(0), patch.Key("c"), patch.Key("k")})
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if arr := got.([]any); len(arr) != 3 {
		t.Errorf("stored fill = %v, want the alpha truncated back off", got)
	}
}

func pngDataURI(t *testing.T, w, h int) string {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatalf("png.Encode() error = %v", err)
	}
	return imaging.EncodeDataURI("image/png", buf.Bytes())
}

func TestReplaceImage(t *testing.T) {
	e, factory, _ := newTestEditor()
	load(t, e, docWithEverything)

	if err := e.ReplaceImage(0, pngDataURI(t, 200, 100)); err != nil {
		t.Fatalf("ReplaceImage() error = %v", err)
	}

	if e.RemountKey() != 2 {
		t.Errorf("RemountKey() = %d, want 2 (image replacement reloads)", e.RemountKey())
	}
	if !factory.players[0].Destroyed() {
		t.Error("old player not destroyed on image replacement")
	}

	asset := e.Document().Assets()[0]
	p, _ := asset["p"].(string)
	if !imaging.IsDataURI(p) {
		t.Errorf("asset payload = %.40q, want an embedded data URI", p)
	}
	if asset["u"] != "" || asset["e"] != float64(1) {
		t.Errorf("asset u/e = %v/%v, want \"\"/1", asset["u"], asset["e"])
	}
	// Frame size preserved from the original asset.
	if asset["w"] != float64(50) || asset["h"] != float64(100) {
		t.Errorf("asset frame = %vx%v, want 50x100", asset["w"], asset["h"])
	}

	// The embedded image is exactly the frame size (contain-fit, letterboxed).
	raw, err := imaging.DecodeDataURI(p)
	if err != nil {
		t.Fatalf("DecodeDataURI() error = %v", err)
	}
	w, h, err := imaging.NaturalSize(raw)
	if err != nil {
		t.Fatalf("NaturalSize() error = %v", err)
	}
	if w != 50 || h != 100 {
		t.Errorf("embedded image = %dx%d, want 50x100", w, h)
	}
}

func TestReplaceImage_MissingFrameUsesNaturalSize(t *testing.T) {
	e, _, _ := newTestEditor()
	load(t, e, `{"v":"5.5.0","fr":30,"ip":0,"op":60,"w":100,"h":100,"layers":[],
		"assets":[{"id":"image_0","p":"img.png"}]}`)

	if err := e.ReplaceImage(0, pngDataURI(t, 33, 44)); err != nil {
		t.Fatalf("ReplaceImage() error = %v", err)
	}

	asset := e.Document().Assets()[0]
	if asset["w"] != float64(33) || asset["h"] != float64(44) {
		t.Errorf("asset frame = %vx%v, want natural 33x44", asset["w"], asset["h"])
	}
}

func TestReplaceImage_BadTargets(t *testing.T) {
	e, _, _ := newTestEditor()
	load(t, e, docWithEverything)

	if err := e.ReplaceImage(7, pngDataURI(t, 4, 4)); err == nil {
		t.Error("ReplaceImage(out of range) succeeded, want error")
	}
	if err := e.ReplaceImage(0, "data:image/png;base64,bm9wZQ=="); err == nil {
		t.Error("ReplaceImage(undecodable payload) succeeded, want error")
	}
	// Failures leave the previous document and player intact.
	if e.RemountKey() != 1 {
		t.Errorf("RemountKey() = %d after failed edits, want 1", e.RemountKey())
	}
}

func TestExport_RequiresDocument(t *testing.T) {
	e, _, _ := newTestEditor()
	if _, _, err := e.Export(); !errors.Is(err, ErrNoDocument) {
		t.Errorf("Export() error = %v, want ErrNoDocument", err)
	}
}

func TestExport_EmbedsExternalAssets(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "images"), 0755); err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "images", "img_0.png"), buf.Bytes(), 0644); err != nil {
		t.Fatal(err)
	}

	e, _, _ := newTestEditor()
	if err := e.Load(e.BeginLoad(), "bounce.json", dir, []byte(docWithEverything)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	name, data, err := e.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if name != "bounce-edited.json" {
		t.Errorf("export name = %q, want bounce-edited.json", name)
	}

	out, err := model.Parse(data)
	if err != nil {
		t.Fatalf("Parse(export) error = %v", err)
	}
	asset := out.Assets()[0]
	p, _ := asset["p"].(string)
	if !imaging.IsDataURI(p) {
		t.Errorf("exported asset payload = %.40q, want embedded data URI", p)
	}
	if asset["u"] != "" || asset["e"] != float64(1) {
		t.Errorf("exported asset u/e = %v/%v, want \"\"/1", asset["u"], asset["e"])
	}

	// The tracked document itself is untouched by export.
	tracked := e.Document().Assets()[0]
	if tracked["p"] != "img_0.png" {
		t.Errorf("tracked asset payload changed to %v on export", tracked["p"])
	}
}

func TestExport_MissingAssetFileLeftExternal(t *testing.T) {
	var warnings []ProgressEvent
	factory := &recordingFactory{inner: player.NewHeadlessFactory()}
	e := New(config.DefaultSettings(), factory, &player.FixedContainer{W: 10, H: 10}, func(ev ProgressEvent) {
		if ev.Level == LevelWarning {
			warnings = append(warnings, ev)
		}
	})
	if err := e.Load(e.BeginLoad(), "anim.json", t.TempDir(), []byte(docWithEverything)); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	_, data, err := e.Export()
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	out, _ := model.Parse(data)
	if out.Assets()[0]["p"] != "img_0.png" {
		t.Errorf("unreadable asset was rewritten: %v", out.Assets()[0]["p"])
	}
	if len(warnings) == 0 {
		t.Error("no warning emitted for unreadable asset")
	}
}

func TestReset(t *testing.T) {
	e, factory, _ := newTestEditor()
	load(t, e, docWithEverything)

	e.Reset()

	if e.State() != StateNoDocument {
		t.Errorf("State() = %v, want StateNoDocument", e.State())
	}
	if !factory.last(t).Destroyed() {
		t.Error("player not destroyed on reset")
	}
	if e.Document() != nil || len(e.TextLayers()) != 0 || e.SelectedAsset() != -1 {
		t.Error("projections not cleared on reset")
	}
}
