// Package ui implements the voxbooth terminal interface: a script
// editor pane, speech preview controls and the recording booth.
package ui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/x/editor"
	runewidth "github.com/mattn/go-runewidth"

	"github.com/voxlabs/voxbooth/booth"
	"github.com/voxlabs/voxbooth/booth/clip"
	"github.com/voxlabs/voxbooth/booth/save"
	"github.com/voxlabs/voxbooth/internal/audio"
	"github.com/voxlabs/voxbooth/internal/capability"
	"github.com/voxlabs/voxbooth/script"
	"github.com/voxlabs/voxbooth/speech"
)

type focusArea int

const (
	focusEditor focusArea = iota
	focusBooth
)

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayVoices
	overlayIdeas
)

// Config carries everything resolved in main: the capability set, the
// controller configurations and the optional script file.
type Config struct {
	Caps       capability.Set
	SpeechCfg  speech.Config
	AudioCfg   audio.Config
	OutputDir  string
	ScriptPath string
	ProfileID  string
	Logger     *log.Logger
}

// Model is the top-level Bubble Tea model.
type Model struct {
	cfg Config

	preview  *speech.Controller
	recorder *booth.Controller
	store    *clip.Store
	player   audio.Player

	editor textarea.Model
	spin   spinner.Model

	focus         focusArea
	overlay       overlayKind
	voicePicker   *picker
	ideaPicker    *picker
	profile       script.VoiceProfile
	takeCursor    int
	requestingMic bool
	width         int
	height        int
	flash         string
	lastErr       error

	watcher  *scriptWatcher
	tempFile string

	quitting bool
}

// NewModel wires the controllers to the resolved capabilities and
// prepares the initial view.
func NewModel(cfg Config) (*Model, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}

	store, err := clip.NewStore()
	if err != nil {
		return nil, fmt.Errorf("creating clip store: %w", err)
	}

	var saver booth.Saver
	if cfg.OutputDir != "" {
		s, err := save.New(cfg.OutputDir, cfg.AudioCfg.SampleRate, cfg.AudioCfg.Channels)
		if err != nil {
			return nil, err
		}
		saver = s
	}

	player := cfg.Caps.Player
	if player == nil {
		player = audio.NewMockPlayer()
	}

	ta := textarea.New()
	ta.Placeholder = "Write your voiceover script here..."
	ta.ShowLineNumbers = false
	ta.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(accentColor())

	m := &Model{
		cfg:      cfg,
		preview:  speech.NewController(cfg.Caps.Synth, cfg.SpeechCfg, cfg.Logger),
		recorder: booth.NewController(cfg.Caps.Capture, store, saver, cfg.Logger),
		store:    store,
		player:   player,
		editor:   ta,
		spin:     sp,
		profile:  script.ProfileByID(cfg.ProfileID),
	}

	if cfg.ScriptPath != "" {
		if w, err := newScriptWatcher(cfg.ScriptPath); err == nil {
			m.watcher = w
		} else {
			cfg.Logger.Warn("script watch unavailable", "err", err)
		}
	}

	return m, nil
}

// NewProgram creates the Bubble Tea program for the model.
func NewProgram(m *Model) *tea.Program {
	return tea.NewProgram(m, tea.WithAltScreen())
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{textarea.Blink}
	if m.cfg.ScriptPath != "" {
		cmds = append(cmds, loadScriptCmd(m.cfg.ScriptPath))
	}
	if m.watcher != nil {
		cmds = append(cmds, m.watcher.wait())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(m.editorWidth())
		m.editor.SetHeight(m.paneHeight())
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case spinner.TickMsg:
		if !m.requestingMic {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case recordingStartedMsg:
		m.requestingMic = false
		if msg.err != nil {
			m.lastErr = msg.err
			return m, flashCmd("microphone unavailable")
		}
		return m, nil

	case recordingStoppedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, flashCmd("recording failed")
		}
		m.takeCursor = 0
		return m, flashCmd("take recorded")

	case takePlayedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, flashCmd("playback failed")
		}
		return m, nil

	case takeSavedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, flashCmd("save failed")
		}
		return m, flashCmd("saved " + filepath.Join(m.cfg.OutputDir, "take-"+msg.id+".wav"))

	case speakingTickMsg:
		if m.preview.Speaking() {
			return m, speakingTickCmd()
		}
		return m, nil

	case scriptFileChangedMsg:
		cmds := []tea.Cmd{loadScriptCmd(m.cfg.ScriptPath)}
		if m.watcher != nil {
			cmds = append(cmds, m.watcher.wait())
		}
		return m, tea.Batch(cmds...)

	case scriptReloadedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, flashCmd("script reload failed")
		}
		m.editor.SetValue(msg.content)
		return m, nil

	case editorFinishedMsg:
		if msg.err != nil {
			m.lastErr = msg.err
			return m, flashCmd("editor failed")
		}
		if m.tempFile != "" && msg.path == m.tempFile {
			data, err := os.ReadFile(msg.path)
			os.Remove(msg.path)
			m.tempFile = ""
			if err != nil {
				m.lastErr = err
				return m, flashCmd("script reload failed")
			}
			m.editor.SetValue(string(data))
			return m, nil
		}
		return m, loadScriptCmd(msg.path)

	case statusFlashMsg:
		m.flash = string(msg)
		return m, nil

	case clearFlashMsg:
		m.flash = ""
		return m, nil
	}

	// Remaining messages feed the editor so the cursor keeps blinking.
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m.shutdown()
	}

	if m.overlay != overlayNone {
		return m.handleOverlayKey(msg)
	}

	if m.focus == focusEditor {
		switch msg.Type {
		case tea.KeyEsc, tea.KeyTab:
			m.focus = focusBooth
			m.editor.Blur()
			return m, nil
		}
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}

	return m.handleBoothKey(msg)
}

// handleBoothKey processes command-mode keys: preview, recording and
// take actions.
func (m *Model) handleBoothKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m.shutdown()

	case "tab", "i", "esc":
		m.focus = focusEditor
		return m, m.editor.Focus()

	case "p":
		if !m.preview.Supported() {
			return m, flashCmd("speech preview is not available")
		}
		m.preview.Preview(m.editor.Value())
		return m, speakingTickCmd()

	case "s":
		m.preview.StopPreview()
		return m, nil

	case "r":
		if !m.recorder.Supported() {
			return m, flashCmd("recording is not available")
		}
		if m.recorder.Recording() {
			return m, stopRecordingCmd(m.recorder)
		}
		if m.requestingMic {
			return m, nil
		}
		m.requestingMic = true
		return m, tea.Batch(m.spin.Tick, startRecordingCmd(m.recorder))

	case "up", "k":
		if m.takeCursor > 0 {
			m.takeCursor--
		}
		return m, nil

	case "down", "j":
		if m.takeCursor < len(m.recorder.Takes())-1 {
			m.takeCursor++
		}
		return m, nil

	case "enter":
		if take, ok := m.selectedTake(); ok {
			return m, playTakeCmd(m.recorder, m.player, take.ID)
		}
		return m, nil

	case "x":
		if take, ok := m.selectedTake(); ok {
			m.recorder.DeleteTake(take.ID)
			if m.takeCursor >= len(m.recorder.Takes()) && m.takeCursor > 0 {
				m.takeCursor--
			}
			return m, flashCmd("take deleted")
		}
		return m, nil

	case "w":
		if take, ok := m.selectedTake(); ok {
			return m, saveTakeCmd(m.recorder, take.ID)
		}
		return m, nil

	case "v":
		m.openVoicePicker()
		return m, nil

	case "o":
		m.openIdeaPicker()
		return m, nil

	case "c":
		if err := clipboard.WriteAll(m.editor.Value()); err != nil {
			m.lastErr = err
			return m, flashCmd("copy failed")
		}
		return m, flashCmd("script copied")

	case "e":
		return m.openExternalEditor()

	case "+", "=":
		m.preview.SetRate(m.preview.Rate() + 0.1)
		return m, nil

	case "-":
		m.preview.SetRate(m.preview.Rate() - 0.1)
		return m, nil

	case "]":
		m.preview.SetPitch(m.preview.Pitch() + 0.1)
		return m, nil

	case "[":
		m.preview.SetPitch(m.preview.Pitch() - 0.1)
		return m, nil
	}
	return m, nil
}

func (m *Model) handleOverlayKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.voicePicker
	if m.overlay == overlayIdeas {
		p = m.ideaPicker
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.overlay = overlayNone
		return m, nil
	case tea.KeyUp:
		p.moveCursor(-1)
		return m, nil
	case tea.KeyDown:
		p.moveCursor(1)
		return m, nil
	case tea.KeyBackspace:
		p.backspace()
		return m, nil
	case tea.KeyEnter:
		return m.acceptOverlay(p)
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			p.typeRune(r)
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) acceptOverlay(p *picker) (tea.Model, tea.Cmd) {
	idx := p.selected()
	if idx < 0 {
		return m, nil
	}

	switch m.overlay {
	case overlayVoices:
		voices := m.preview.Voices()
		if idx < len(voices) {
			if err := m.preview.SelectVoice(voices[idx].Name); err != nil {
				m.lastErr = err
			}
		}
	case overlayIdeas:
		if idx < len(script.Ideas) {
			m.editor.SetValue(script.Ideas[idx].Body)
		}
	}
	m.overlay = overlayNone
	return m, nil
}

func (m *Model) openVoicePicker() {
	voices := m.preview.Voices()
	if len(voices) == 0 {
		return
	}
	labels := make([]string, len(voices))
	for i, v := range voices {
		labels[i] = fmt.Sprintf("%s (%s)", v.Name, v.Language)
	}
	m.voicePicker = newPicker("Select voice", labels)
	m.overlay = overlayVoices
}

func (m *Model) openIdeaPicker() {
	labels := make([]string, len(script.Ideas))
	for i, idea := range script.Ideas {
		labels[i] = idea.Title
	}
	m.ideaPicker = newPicker("Script ideas", labels)
	m.overlay = overlayIdeas
}

// openExternalEditor hands the script to $EDITOR, through the script
// file when one is loaded and a temp file otherwise.
func (m *Model) openExternalEditor() (tea.Model, tea.Cmd) {
	path := m.cfg.ScriptPath
	if path == "" {
		f, err := os.CreateTemp("", "voxbooth-script-*.md")
		if err != nil {
			m.lastErr = err
			return m, flashCmd("editor failed")
		}
		if _, err := f.WriteString(m.editor.Value()); err != nil {
			f.Close()
			m.lastErr = err
			return m, flashCmd("editor failed")
		}
		f.Close()
		path = f.Name()
		m.tempFile = path
	}

	c, err := editor.Cmd("voxbooth", path)
	if err != nil {
		m.lastErr = err
		return m, flashCmd("no editor configured")
	}
	return m, tea.ExecProcess(c, func(err error) tea.Msg {
		return editorFinishedMsg{path: path, err: err}
	})
}

func (m *Model) selectedTake() (booth.Take, bool) {
	takes := m.recorder.Takes()
	if m.takeCursor < 0 || m.takeCursor >= len(takes) {
		return booth.Take{}, false
	}
	return takes[m.takeCursor], true
}

// shutdown tears down both controllers, releasing every clip handle and
// cancelling any in-flight utterance or capture.
func (m *Model) shutdown() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, tea.Quit
	}
	m.quitting = true
	m.preview.Close()
	m.recorder.Close()
	m.player.Stop()
	_ = m.player.Close()
	if m.watcher != nil {
		m.watcher.close()
	}
	return m, tea.Quit
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 {
		return "loading..."
	}

	if m.overlay != overlayNone {
		return m.overlayView()
	}

	editorPane := m.paneStyle(focusEditor).Render(
		titleStyle.Render("Script") + "\n" + m.editor.View(),
	)
	boothPane := m.paneStyle(focusBooth).Width(m.boothWidth()).Render(m.boothView())

	body := lipgloss.JoinHorizontal(lipgloss.Top, editorPane, boothPane)
	return body + "\n" + m.statusBar() + "\n" + m.helpLine()
}

func (m *Model) overlayView() string {
	p := m.voicePicker
	if m.overlay == overlayIdeas {
		p = m.ideaPicker
	}

	view := p.view(m.paneHeight() / 2)
	if m.overlay == overlayIdeas {
		if idx := p.selected(); idx >= 0 && idx < len(script.Ideas) {
			view += "\n" + m.renderIdeaBody(script.Ideas[idx].Body)
		}
	}
	return paneBorderStyle.Width(m.width - 4).Render(view)
}

// renderIdeaBody renders an idea's markdown body for the picker
// preview, falling back to plain text when rendering fails.
func (m *Model) renderIdeaBody(body string) string {
	wrap := m.width - 8
	if wrap > 72 {
		wrap = 72
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return dimStyle.Render(body)
	}
	out, err := r.Render(body)
	if err != nil {
		return dimStyle.Render(body)
	}
	return out
}

func (m *Model) boothView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Booth"))
	b.WriteString("\n")

	switch {
	case m.requestingMic:
		b.WriteString(m.spin.View() + " requesting microphone...")
	case m.recorder.Recording():
		b.WriteString(recordingStyle.Render("● recording") + dimStyle.Render("  press r to stop"))
	case !m.recorder.Supported():
		b.WriteString(noteStyle.Render(m.cfg.Caps.CaptureNote))
	default:
		b.WriteString(dimStyle.Render("ready"))
	}
	b.WriteString("\n\n")

	b.WriteString(renderTakes(m.recorder.Takes(), m.takeCursor, m.boothWidth()-4, m.focus == focusBooth))
	b.WriteString("\n\n")

	b.WriteString(titleStyle.Render(m.profile.Label))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.profile.Description))
	b.WriteString("\n")
	for _, s := range m.profile.Suggestions {
		b.WriteString(dimStyle.Render("· "+s) + "\n")
	}

	if !m.preview.Supported() && m.cfg.Caps.SpeechNote != "" {
		b.WriteString("\n" + noteStyle.Render(m.cfg.Caps.SpeechNote))
	}
	if m.cfg.Caps.PlaybackNote != "" {
		b.WriteString("\n" + noteStyle.Render(m.cfg.Caps.PlaybackNote))
	}
	return b.String()
}

func (m *Model) statusBar() string {
	words := script.WordCount(m.editor.Value())
	rate := m.preview.Rate()

	parts := []string{
		fmt.Sprintf("%d words", words),
		fmt.Sprintf("~%ss", script.EstimateSeconds(words, rate)),
		fmt.Sprintf("pitch %.1f", m.preview.Pitch()),
		fmt.Sprintf("rate %.1f", rate),
	}
	if v := m.preview.SelectedVoice(); v != "" {
		parts = append(parts, "voice "+v)
	}
	if m.preview.Speaking() {
		parts = append(parts, speakingStyle.Render("speaking"))
	}

	line := statusBarStyle.Render(strings.Join(parts, "  │  "))
	if m.flash != "" {
		line += "  " + noteStyle.Render(m.flash)
	} else if m.lastErr != nil {
		line += "  " + errorStyle.Render(truncateError(m.lastErr, m.width/2))
	}
	return line
}

func (m *Model) helpLine() string {
	if m.focus == focusEditor {
		return helpStyle.Render("esc: booth controls • ctrl+c: quit")
	}
	return helpStyle.Render("i: edit • p: preview • s: stop • r: record • enter: play • w: save • x: delete • v: voice • o: ideas • c: copy • e: $EDITOR • q: quit")
}

func (m *Model) paneStyle(area focusArea) lipgloss.Style {
	if m.focus == area && m.overlay == overlayNone {
		return focusedPaneStyle
	}
	return paneBorderStyle
}

func (m *Model) editorWidth() int {
	w := m.width - m.boothWidth() - 6
	if w < 20 {
		w = 20
	}
	return w
}

func (m *Model) boothWidth() int {
	w := m.width / 3
	if w < 30 {
		w = 30
	}
	return w
}

func (m *Model) paneHeight() int {
	h := m.height - 6
	if h < 5 {
		h = 5
	}
	return h
}

func truncateError(err error, width int) string {
	s := err.Error()
	if width > 3 && runewidth.StringWidth(s) > width {
		return runewidth.Truncate(s, width, "…")
	}
	return s
}
