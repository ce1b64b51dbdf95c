// Package tui provides a Bubble Tea terminal user interface for the Lottie
// editor.
package tui

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/lottiekit/lottie-editor/internal/colorconv"
	"github.com/lottiekit/lottie-editor/internal/config"
	"github.com/lottiekit/lottie-editor/internal/editor"
	"github.com/lottiekit/lottie-editor/internal/extract"
	"github.com/lottiekit/lottie-editor/internal/intake"
	"github.com/lottiekit/lottie-editor/internal/player"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	selectedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4"))

	tabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#6C757D"))

	activeTabStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateIntake State = iota
	StateLoading
	StateEditing
)

// Panel selects which entity list the editing view shows.
type Panel int

const (
	PanelText Panel = iota
	PanelColors
	PanelImages
)

var panelNames = []string{"Text", "Colors", "Images"}

// logBuffer collects progress events from the editor. Events arrive on
// command goroutines, so access is guarded.
type logBuffer struct {
	mu      sync.Mutex
	entries []editor.ProgressEvent
	max     int
}

func (l *logBuffer) add(ev editor.ProgressEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, ev)
	if len(l.entries) > l.max {
		l.entries = l.entries[len(l.entries)-l.max:]
	}
}

func (l *logBuffer) snapshot() []editor.ProgressEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]editor.ProgressEvent(nil), l.entries...)
}

// flatColor is one row of the colors panel.
type flatColor struct {
	layerName string
	info      extract.ColorInfo
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state State
	panel Panel

	pathInput textinput.Model
	editInput textinput.Model
	spinner   spinner.Model
	editing   bool

	settings *config.Settings
	editor   *editor.Editor
	logs     *logBuffer

	cursor int
	texts  []extract.TextLayerInfo
	colors []flatColor
	images []int

	status      string
	statusLevel editor.ProgressLevel
	statusSeq   int

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings) Model {
	pi := textinput.New()
	pi.Placeholder = "path/to/animation.json"
	pi.Focus()
	pi.CharLimit = 500
	pi.Width = 60

	ei := textinput.New()
	ei.CharLimit = 500
	ei.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#F8B500"))

	logs := &logBuffer{max: settings.MaxLogLines}
	ed := editor.New(settings, player.NewHeadlessFactory(), &player.FixedContainer{}, logs.add)

	return Model{
		state:     StateIntake,
		pathInput: pi,
		editInput: ei,
		spinner:   sp,
		settings:  settings,
		editor:    ed,
		logs:      logs,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// loadDoneMsg is sent when a document intake completes.
	loadDoneMsg struct {
		Err error
	}

	// editDoneMsg is sent when an edit has been applied.
	editDoneMsg struct {
		What string
		Err  error
	}

	// exportDoneMsg is sent when an export completes.
	exportDoneMsg struct {
		Path string
		Err  error
	}

	// clearStatusMsg dismisses a transient status message.
	clearStatusMsg struct {
		Seq int
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		model, cmd, handled := m.handleKey(msg)
		if handled {
			return model, cmd
		}
		m = model

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case loadDoneMsg:
		if msg.Err != nil {
			m.state = StateIntake
			cmds = append(cmds, m.setStatus(msg.Err.Error(), editor.LevelError))
		} else {
			m.state = StateEditing
			m.panel = PanelText
			m.cursor = 0
			m.refresh()
			cmds = append(cmds, m.setStatus(fmt.Sprintf("Loaded %s", m.editor.Name()), editor.LevelSuccess))
		}

	case editDoneMsg:
		m.refresh()
		if msg.Err != nil {
			cmds = append(cmds, m.setStatus(msg.Err.Error(), editor.LevelError))
		} else {
			cmds = append(cmds, m.setStatus(msg.What, editor.LevelSuccess))
		}

	case exportDoneMsg:
		if msg.Err != nil {
			cmds = append(cmds, m.setStatus(msg.Err.Error(), editor.LevelError))
		} else {
			cmds = append(cmds, m.setStatus(fmt.Sprintf("Exported %s", msg.Path), editor.LevelSuccess))
		}

	case clearStatusMsg:
		if msg.Seq == m.statusSeq {
			m.status = ""
		}
	}

	// Update whichever text input is active.
	if m.state == StateIntake {
		var cmd tea.Cmd
		m.pathInput, cmd = m.pathInput.Update(msg)
		cmds = append(cmds, cmd)
	} else if m.editing {
		var cmd tea.Cmd
		m.editInput, cmd = m.editInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// handleKey processes key presses. The bool result reports whether the key
// was consumed and should not reach the text inputs.
func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd, bool) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit, true

	case "esc":
		if m.editing {
			m.editing = false
			return m, nil, true
		}
		if m.state == StateIntake {
			return m, tea.Quit, true
		}

	case "enter":
		switch {
		case m.state == StateIntake && m.pathInput.Value() != "":
			m.state = StateLoading
			return m, tea.Batch(m.loadCmd(m.pathInput.Value()), m.spinner.Tick), true
		case m.state == StateEditing && !m.editing:
			return m.beginEdit()
		case m.state == StateEditing && m.editing:
			return m.applyEdit()
		}

	case "tab":
		if m.state == StateEditing && !m.editing {
			m.panel = (m.panel + 1) % 3
			m.cursor = 0
			return m, nil, true
		}

	case "up", "k":
		if m.state == StateEditing && !m.editing && m.cursor > 0 {
			m.cursor--
			return m, nil, true
		}

	case "down", "j":
		if m.state == StateEditing && !m.editing && m.cursor < m.panelLen()-1 {
			m.cursor++
			return m, nil, true
		}

	case "e":
		if m.state == StateEditing && !m.editing {
			return m, m.exportCmd(), true
		}

	case "n":
		if m.state == StateEditing && !m.editing {
			m.editor.Reset()
			m.state = StateIntake
			m.pathInput.SetValue("")
			m.pathInput.Focus()
			return m, nil, true
		}

	case "q":
		if m.state == StateEditing && !m.editing {
			return m, tea.Quit, true
		}
	}
	return m, nil, false
}

// beginEdit opens the inline input for the entity under the cursor.
func (m Model) beginEdit() (Model, tea.Cmd, bool) {
	switch m.panel {
	case PanelText:
		if m.cursor >= len(m.texts) {
			return m, nil, true
		}
		m.editInput.SetValue(m.texts[m.cursor].Text)
		m.editInput.Placeholder = "new text"
	case PanelColors:
		if m.cursor >= len(m.colors) {
			return m, nil, true
		}
		m.editInput.SetValue(colorconv.ToHex(m.colors[m.cursor].info.Color))
		m.editInput.Placeholder = "#rrggbb"
	case PanelImages:
		if m.cursor >= len(m.images) {
			return m, nil, true
		}
		m.editInput.SetValue("")
		m.editInput.Placeholder = "path/to/replacement.png"
	}
	m.editing = true
	m.editInput.Focus()
	return m, textinput.Blink, true
}

// applyEdit commits the inline input through the coordinator.
func (m Model) applyEdit() (Model, tea.Cmd, bool) {
	value := m.editInput.Value()
	m.editing = false
	ed := m.editor

	switch m.panel {
	case PanelText:
		layer := m.texts[m.cursor].Index
		return m, func() tea.Msg {
			err := ed.SetText(layer, value)
			return editDoneMsg{What: fmt.Sprintf("Updated text layer %d", layer), Err: err}
		}, true

	case PanelColors:
		info := m.colors[m.cursor].info
		return m, func() tea.Msg {
			err := ed.SetColor(info, colorconv.FromHex(value))
			return editDoneMsg{What: fmt.Sprintf("Updated %s", info.ID), Err: err}
		}, true

	case PanelImages:
		asset := m.images[m.cursor]
		return m, func() tea.Msg {
			uri, err := intake.ReadImage(value)
			if err != nil {
				return editDoneMsg{Err: err}
			}
			if err := ed.SelectImageAsset(asset); err != nil {
				return editDoneMsg{Err: err}
			}
			err = ed.ReplaceImage(asset, uri)
			return editDoneMsg{What: fmt.Sprintf("Replaced image asset %d", asset), Err: err}
		}, true
	}
	return m, nil, true
}

// refresh re-reads the entity projections from the editor.
func (m *Model) refresh() {
	m.texts = m.editor.TextLayers()
	m.images = m.editor.ImageAssets()

	m.colors = m.colors[:0]
	for _, lc := range m.editor.Colors() {
		for _, info := range lc.Entries {
			m.colors = append(m.colors, flatColor{layerName: lc.Name, info: info})
		}
	}

	if max := m.panelLen(); m.cursor >= max && max > 0 {
		m.cursor = max - 1
	}
}

func (m Model) panelLen() int {
	switch m.panel {
	case PanelText:
		return len(m.texts)
	case PanelColors:
		return len(m.colors)
	default:
		return len(m.images)
	}
}

// setStatus shows a transient message that auto-dismisses after the
// configured timeout.
func (m *Model) setStatus(text string, level editor.ProgressLevel) tea.Cmd {
	m.status = text
	m.statusLevel = level
	m.statusSeq++
	seq := m.statusSeq
	timeout := time.Duration(m.settings.MessageTimeoutSeconds * float64(time.Second))
	return tea.Tick(timeout, func(_ time.Time) tea.Msg {
		return clearStatusMsg{Seq: seq}
	})
}

func (m Model) loadCmd(path string) tea.Cmd {
	gen := m.editor.BeginLoad()
	ed := m.editor
	return func() tea.Msg {
		name, data, err := intake.ReadAnimation(path)
		if err != nil {
			return loadDoneMsg{Err: err}
		}
		err = ed.Load(gen, name, filepath.Dir(path), data)
		if err == editor.ErrStaleLoad {
			// A newer intake superseded this one; drop it quietly.
			return loadDoneMsg{}
		}
		return loadDoneMsg{Err: err}
	}
}

func (m Model) exportCmd() tea.Cmd {
	ed := m.editor
	return func() tea.Msg {
		path, err := ed.ExportToFile("")
		return exportDoneMsg{Path: path, Err: err}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Lottie Editor"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Edit text, colors, and images in Lottie animations"))
	b.WriteString("\n\n")

	switch m.state {
	case StateIntake:
		b.WriteString(m.viewIntake())
	case StateLoading:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(subtitleStyle.Render("Loading animation..."))
		b.WriteString("\n")
	case StateEditing:
		b.WriteString(m.viewEditing())
	}

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.levelStyle(m.statusLevel).Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.helpText()))
	return b.String()
}

func (m Model) viewIntake() string {
	var b strings.Builder
	b.WriteString(subtitleStyle.Render("Open a Lottie .json file:"))
	b.WriteString("\n\n")
	b.WriteString(m.pathInput.View())
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewEditing() string {
	var b strings.Builder

	doc := m.editor.Document()
	if doc != nil {
		b.WriteString(infoStyle.Render(fmt.Sprintf(
			"%s  %dx%d  %g fps  frames %g-%g",
			m.editor.Name(), doc.Width(), doc.Height(),
			doc.FrameRate(), doc.InPoint(), doc.OutPoint(),
		)))
		b.WriteString("\n\n")
	}

	for i, name := range panelNames {
		if Panel(i) == m.panel {
			b.WriteString(activeTabStyle.Render(name))
		} else {
			b.WriteString(tabStyle.Render(name))
		}
	}
	b.WriteString("\n\n")

	switch m.panel {
	case PanelText:
		b.WriteString(m.viewTextPanel())
	case PanelColors:
		b.WriteString(m.viewColorPanel())
	case PanelImages:
		b.WriteString(m.viewImagePanel())
	}

	if m.editing {
		b.WriteString("\n")
		b.WriteString(m.editInput.View())
		b.WriteString("\n")
	}

	if logs := m.logs.snapshot(); len(logs) > 0 {
		b.WriteString("\n")
		for _, ev := range logs {
			b.WriteString(m.levelStyle(ev.Level).Render("• " + ev.Message))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) viewTextPanel() string {
	if len(m.texts) == 0 {
		return dimStyle.Render("No text layers in this animation.") + "\n"
	}
	var b strings.Builder
	for i, info := range m.texts {
		b.WriteString(m.renderRow(i, fmt.Sprintf("%s: %q", info.Name, info.Text)))
	}
	return b.String()
}

func (m Model) viewColorPanel() string {
	if len(m.colors) == 0 {
		return dimStyle.Render("No editable colors in this animation.") + "\n"
	}
	var b strings.Builder
	for i, row := range m.colors {
		hex := colorconv.ToHex(row.info.Color)
		swatch := lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
		line := fmt.Sprintf("%s %s  %s (%s)", swatch, hex, row.layerName, row.info.Role)
		b.WriteString(m.renderRow(i, line))
	}
	return b.String()
}

func (m Model) viewImagePanel() string {
	if len(m.images) == 0 {
		return dimStyle.Render("No image assets in this animation.") + "\n"
	}
	var b strings.Builder
	doc := m.editor.Document()
	for i, idx := range m.images {
		line := fmt.Sprintf("Asset %d", idx)
		if doc != nil && doc.Assets()[idx] != nil {
			asset := doc.Assets()[idx]
			w, _ := asset["w"].(float64)
			h, _ := asset["h"].(float64)
			p, _ := asset["p"].(string)
			kind := "external"
			if strings.HasPrefix(p, "data:") {
				kind = "embedded"
			}
			line = fmt.Sprintf("Asset %d  %gx%g  %s", idx, w, h, kind)
		}
		if idx == m.editor.SelectedAsset() {
			line += "  (selected)"
		}
		b.WriteString(m.renderRow(i, line))
	}
	return b.String()
}

func (m Model) renderRow(i int, line string) string {
	if i == m.cursor && !m.editing {
		return selectedStyle.Render("> "+line) + "\n"
	}
	return "  " + line + "\n"
}

func (m Model) levelStyle(level editor.ProgressLevel) lipgloss.Style {
	switch level {
	case editor.LevelError:
		return errorStyle
	case editor.LevelWarning:
		return warningStyle
	case editor.LevelSuccess:
		return successStyle
	case editor.LevelInfo:
		return infoStyle
	default:
		return dimStyle
	}
}

func (m Model) helpText() string {
	switch {
	case m.state == StateIntake:
		return "enter: open • esc: quit"
	case m.state == StateLoading:
		return ""
	case m.editing:
		return "enter: apply • esc: cancel"
	default:
		return "tab: panel • ↑/↓: select • enter: edit • e: export • n: new file • q: quit"
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
