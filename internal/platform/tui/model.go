package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
	"unicode"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/monster-math/internal/audio"
	"github.com/vovakirdan/monster-math/internal/config"
	"github.com/vovakirdan/monster-math/internal/core"
	"github.com/vovakirdan/monster-math/internal/game"
	"github.com/vovakirdan/monster-math/internal/storage"
)

// Rows taken by the HUD, the answer field and the help bar.
const chromeRows = 3

// Options configures a Model.
type Options struct {
	Config  config.MonsterConfig
	Runtime core.RuntimeConfig
	Store   *storage.Store // Optional
	// Device opens the local audio device. Nil keeps the game silent.
	Device audio.Opener
	Muted  bool
	// StartTier skips the start screen and begins this tier's countdown.
	StartTier int
	Logger    *log.Logger // Optional
}

// Model is the Bubble Tea model for one Monster Math player.
type Model struct {
	session    *game.Session
	engine     *audio.ToneEngine // nil when sound is off
	cfg        config.MonsterConfig
	runtime    core.RuntimeConfig
	logger     *log.Logger
	screen     *core.Screen
	input      textinput.Model
	keys       KeyMap
	help       help.Model
	width      int
	height     int
	lastState  game.State
	audioTried bool
	quitting   bool
}

// NewModel creates the model and its session.
func NewModel(opts Options) Model {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	def := core.DefaultConfig()
	if opts.Runtime.ScreenW <= 0 || opts.Runtime.ScreenH <= 0 {
		opts.Runtime.ScreenW, opts.Runtime.ScreenH = def.ScreenW, def.ScreenH
	}
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = def.TickRate
	}
	if opts.Runtime.Seed == 0 {
		opts.Runtime.Seed = time.Now().UnixNano()
	}

	var sounds game.Sounds
	var engine *audio.ToneEngine
	if opts.Device != nil && opts.Config.Audio.Enabled {
		engine = audio.NewToneEngine(opts.Config.Audio, opts.Device)
		engine.SetMuted(opts.Muted)
		sounds = audio.NewDirector(engine, audio.ClockScheduler(), nil)
	}

	sessionOpts := game.Options{
		Config:  opts.Config,
		Runtime: opts.Runtime,
		Sounds:  sounds,
		OnError: func(err error) {
			logger.Warn("persistence failed", "error", err)
		},
	}
	if opts.Store != nil {
		sessionOpts.Scores = opts.Store
		sessionOpts.History = historyRecorder(opts.Store)
	}

	ti := textinput.New()
	ti.Prompt = "answer › "
	ti.Placeholder = "type a number"
	ti.CharLimit = 4
	ti.Width = 12

	h := help.New()
	h.ShowAll = false

	session := game.NewSession(sessionOpts)
	if opts.StartTier > 0 && !session.SelectLevel(opts.StartTier) {
		logger.Warn("unknown tier, showing the start screen", "tier", opts.StartTier)
	}

	w, hgt := opts.Runtime.ScreenW, opts.Runtime.ScreenH
	return Model{
		session: session,
		engine:  engine,
		cfg:     opts.Config,
		runtime: opts.Runtime,
		logger:  logger,
		screen:  core.NewScreen(w, max(hgt-chromeRows, 1)),
		input:   ti,
		keys:    DefaultKeyMap(),
		help:    h,
		width:   w,
		height:  hgt,
	}
}

// historyRecorder stores finished sessions in store.
func historyRecorder(store *storage.Store) game.Recorder {
	return game.RecorderFunc(func(r game.Result) error {
		_, err := store.RecordSession(storage.SessionRecord{
			Tier:     r.Tier,
			Score:    r.Score,
			Outcome:  r.Outcome.String(),
			Duration: r.Duration,
		})
		return err
	})
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.runtime.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-chromeRows, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleTick steps the session and reacts to state changes.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	m.session.Step()

	var cmd tea.Cmd
	if st := m.session.State(); st != m.lastState {
		snap := m.session.Snapshot()
		m.logger.Debug("state changed", "from", m.lastState, "to", st, "tier", snap.Tier, "score", snap.Score)
		switch {
		case st == game.StateCountdown:
			// Starting a level also unlocks audio.
			m.initAudio()
		case st == game.StateRunning && m.lastState == game.StateCountdown:
			m.input.Reset()
			cmd = m.input.Focus()
		case st == game.StateEnded:
			m.input.Blur()
			m.logger.Info("level over", "outcome", snap.Outcome, "score", snap.Score, "best", snap.HighScore)
		case st == game.StateIdle:
			m.input.Reset()
			m.input.Blur()
		}
		m.lastState = st
	}

	return m, tea.Batch(cmd, tickCmd(m.runtime.TickRate))
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.initAudio()

	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	state := m.session.State()
	switch action := m.keys.Action(msg, state); action {
	case core.ActionQuit:
		m.quitting = true
		m.Close()
		return m, tea.Quit

	case core.ActionTier1, core.ActionTier2, core.ActionTier3:
		if m.session.SelectLevel(action.Tier()) {
			m.logger.Debug("level selected", "tier", action.Tier())
		}
		return m, nil

	case core.ActionPause:
		m.session.TogglePause()
		if m.session.State() == game.StatePaused {
			m.input.Blur()
			return m, nil
		}
		return m, m.input.Focus()

	case core.ActionMenu:
		m.session.Acknowledge()
		return m, nil

	case core.ActionMute:
		if m.engine != nil {
			m.engine.SetMuted(!m.engine.Muted())
		}
		return m, nil
	}

	if state != game.StateRunning || !answerKey(msg) {
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.session.Input(m.input.Value()) {
		m.input.Reset()
	}
	return m, cmd
}

// answerKey reports whether msg edits the answer field: digits and editing
// keys only.
func answerKey(msg tea.KeyMsg) bool {
	switch msg.Type {
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if !unicode.IsDigit(r) {
				return false
			}
		}
		return len(msg.Runes) > 0
	case tea.KeyBackspace, tea.KeyDelete, tea.KeyLeft, tea.KeyRight, tea.KeyCtrlU:
		return true
	}
	return false
}

// initAudio opens the audio device on the first key press.
func (m *Model) initAudio() {
	if m.engine == nil || m.audioTried {
		return
	}
	m.audioTried = true
	if err := m.engine.Init(); err != nil {
		m.logger.Warn("audio unavailable, playing silently", "error", err)
	}
}

// Close tears down the session and the audio device. Safe to call twice.
func (m Model) Close() {
	m.session.Close()
	if m.engine != nil {
		m.engine.Close()
	}
}

// Session returns the underlying session.
func (m Model) Session() *game.Session {
	return m.session
}

// saveScreenshot saves the current playfield to a text file.
func (m *Model) saveScreenshot() {
	m.session.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	dir := filepath.Join(home, ".monstermath", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}

	name := fmt.Sprintf("monstermath_%s.txt", time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot failed", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// Run starts a local game and blocks until the player quits.
func Run(opts Options) error {
	model := NewModel(opts)
	defer model.Close()

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
