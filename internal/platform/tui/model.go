package tui

import (
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/registry"
	"github.com/vovakirdan/starfall/internal/replay"
	"github.com/vovakirdan/starfall/internal/storage"
)

// DefaultHold is how long a key press counts as held. It covers the gap
// between terminal auto-repeats.
const DefaultHold = 120 * time.Millisecond

// Config configures a play session.
type Config struct {
	Runtime core.RuntimeConfig
	Scenes  []string      // Order the switch key cycles through; defaults to every registered scene
	Hold    time.Duration // Zero uses DefaultHold
	Record  bool          // Journal inputs for replays

	// Game.ConfigPath applies to the starting scene only. Scenes reached
	// with the switch key use the default config search.
	Game registry.Options
}

type backgrounder interface {
	Background() core.Color
}

type configEncoder interface {
	ConfigYAML() ([]byte, error)
}

// Model is the Bubble Tea model for running a scene.
type Model struct {
	cfg      Config
	runtime  core.RuntimeConfig
	logger   *log.Logger
	first    string // Scene Game.ConfigPath belongs to
	sceneIdx int
	game     registry.Game
	screen   *core.Screen
	painter  *Painter
	keys     KeyMap
	help     help.Model
	held     *HeldKeys
	pointers int // Pointer-downs not yet delivered, one per tick
	tick     uint64
	state    core.GameState
	recorder *replay.Recorder
	journals []storage.Replay
	err      error
	quitting bool
}

// NewModel creates the host model and starts sceneID. Scene construction
// errors are returned here, before the terminal is taken over.
func NewModel(sceneID string, cfg Config) (Model, error) {
	if len(cfg.Scenes) == 0 {
		cfg.Scenes = registry.IDs()
	}
	idx := slices.Index(cfg.Scenes, sceneID)
	if idx < 0 {
		if !registry.Exists(sceneID) {
			return Model{}, fmt.Errorf("tui: unknown scene %q", sceneID)
		}
		cfg.Scenes = append(cfg.Scenes, sceneID)
		idx = len(cfg.Scenes) - 1
	}
	if cfg.Hold <= 0 {
		cfg.Hold = DefaultHold
	}
	if cfg.Runtime.TickRate <= 0 {
		cfg.Runtime.TickRate = 60
	}
	cfg.Game = cfg.Game.WithDefaults()

	m := Model{
		cfg:     cfg,
		first:   sceneID,
		runtime: cfg.Runtime,
		logger:  cfg.Game.Logger,
		screen:  core.NewScreen(cfg.Runtime.ScreenW, max(cfg.Runtime.ScreenH-1, 1)),
		painter: NewPainter(core.ColorDefault),
		keys:    DefaultKeyMap(),
		help:    help.New(),
		held:    NewHeldKeys(holdTicks(cfg.Hold, cfg.Runtime.TickRate)),
	}
	m.help.Width = cfg.Runtime.ScreenW
	if err := m.open(idx); err != nil {
		return Model{}, err
	}
	return m, nil
}

// open destroys the running scene, if any, and creates Scenes[idx].
func (m *Model) open(idx int) error {
	if m.game != nil {
		m.finishRecording()
		m.game.Destroy()
		m.game = nil
	}
	id := m.cfg.Scenes[idx]
	opts := m.cfg.Game
	if id != m.first {
		opts.ConfigPath, opts.ConfigData = "", nil
	}
	g, err := registry.Create(id, opts)
	if err != nil {
		return err
	}
	m.game, m.sceneIdx = g, idx
	return m.reset()
}

// reset starts a fresh session of the current scene.
func (m *Model) reset() error {
	m.finishRecording()
	m.runtime.Seed = m.cfg.Runtime.Seed
	if m.runtime.Seed == 0 {
		m.runtime.Seed = time.Now().UnixNano()
	}
	if err := m.game.Reset(m.runtime); err != nil {
		return err
	}
	m.tick, m.pointers = 0, 0
	m.held.Reset()
	m.state = m.game.State()
	if m.cfg.Record {
		var sceneConfig []byte
		if c, ok := m.game.(configEncoder); ok {
			data, err := c.ConfigYAML()
			if err != nil {
				return err
			}
			sceneConfig = data
		}
		m.recorder = replay.NewRecorder(m.game.ID(), m.runtime, sceneConfig)
	}
	bg := core.ColorDefault
	if b, ok := m.game.(backgrounder); ok {
		bg = b.Background()
	}
	m.painter.SetBackground(bg)
	m.logger.Info("session ready", "scene", m.game.ID(), "seed", m.runtime.Seed)
	return nil
}

func (m *Model) finishRecording() {
	if m.recorder == nil {
		return
	}
	if m.recorder.Len() > 0 {
		m.journals = append(m.journals, m.recorder.Replay())
	}
	m.recorder = nil
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

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			m.pointers++
		}
		return m, nil

	case tea.FocusMsg:
		m.game.Focus()
		return m, nil

	case tea.BlurMsg:
		m.held.Reset()
		m.game.Blur()
		return m, nil

	case tea.WindowSizeMsg:
		m.runtime.ScreenW = msg.Width
		m.runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit(nil)

	case key.Matches(msg, m.keys.Switch):
		if len(m.cfg.Scenes) > 1 {
			next := (m.sceneIdx + 1) % len(m.cfg.Scenes)
			if err := m.open(next); err != nil {
				return m.quit(err)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Restart):
		if err := m.reset(); err != nil {
			return m.quit(err)
		}
		return m, nil

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	switch a := m.keys.Action(msg); a {
	case core.ActionPointer:
		m.pointers++
	case core.ActionNone:
	default:
		m.held.Press(a, m.tick+1)
	}
	return m, nil
}

func (m Model) quit(err error) (tea.Model, tea.Cmd) {
	if m.game != nil {
		m.finishRecording()
		m.game.Destroy()
	}
	m.err = err
	m.quitting = true
	return m, tea.Quit
}

// handleTick runs one simulation tick with the held directions and at most
// one queued pointer-down.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	m.tick++
	in := m.held.Frame(m.tick)
	if m.pointers > 0 {
		in.Set(core.ActionPointer)
		m.pointers--
	}
	if m.recorder != nil {
		m.recorder.Record(in)
	}
	m.state = m.game.Step(in).State
	return m, tickCmd(m.runtime.TickRate)
}

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.screen.Clear()
	m.game.Render(m.screen)
	return m.painter.Render(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

// Game returns the running scene.
func (m Model) Game() registry.Game { return m.game }

// State returns the scene state after the last tick.
func (m Model) State() core.GameState { return m.state }

// Result is what a finished play session leaves behind.
type Result struct {
	Journals []storage.Replay // One per recorded session, in play order
}

// Result returns the journals recorded so far.
func (m Model) Result() Result {
	return Result{Journals: m.journals}
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error { return m.err }

// Run starts the Bubble Tea program on sceneID.
func Run(sceneID string, cfg Config) (Result, error) {
	model, err := NewModel(sceneID, cfg)
	if err != nil {
		return Result{}, err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
	)
	return finish(p.Run())
}

// finish extracts the result of a finished program. Journals recorded
// before a program error are kept.
func finish(final tea.Model, err error) (Result, error) {
	fm, ok := final.(Model)
	if !ok {
		return Result{}, err
	}
	if err != nil {
		return fm.Result(), err
	}
	return fm.Result(), fm.Err()
}
