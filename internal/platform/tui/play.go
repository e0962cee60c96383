package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/orbhop/internal/core"
	"github.com/vovakirdan/orbhop/internal/registry"
	"github.com/vovakirdan/orbhop/internal/replay"
	"github.com/vovakirdan/orbhop/internal/stage"
	"github.com/vovakirdan/orbhop/internal/storage"
)

// inputBuffer is how many ticks a direction key stays queued while the
// player is still busy. Terminals report presses, not held keys.
const inputBuffer = 8

// Options configures the terminal front end.
type Options struct {
	Store     *storage.Store // may be nil
	Runtime   core.RuntimeConfig
	Timing    stage.Timing
	Profile   string
	ReplayDir string // empty disables replay files
	Logger    *log.Logger
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}

// PlayModel is the Bubble Tea model for playing the stages of one pack.
type PlayModel struct {
	opts     Options
	packID   string
	pack     registry.Pack
	ctrl     *stage.Controller
	feed     *eventFeed
	visuals  *spriteFactory
	rec      *replay.Recorder
	screen   *core.Screen
	keys     *KeyMapper
	frame    core.InputFrame
	held     stage.Direction
	heldTTL  int
	paused   bool
	saved    bool
	quitting bool
	back     bool
	status   string
}

// NewPlayModel loads stage index of pack.
func NewPlayModel(opts Options, packID string, pack registry.Pack, index int) (PlayModel, error) {
	feed := newEventFeed(opts.logger())
	visuals := &spriteFactory{}
	ctrl, err := stage.New(pack, index,
		stage.WithTiming(opts.Timing),
		stage.WithLogger(opts.logger()),
		stage.WithEvents(feed),
		stage.WithVisuals(visuals),
	)
	if err != nil {
		return PlayModel{}, err
	}

	m := PlayModel{
		opts:    opts,
		packID:  packID,
		pack:    pack,
		ctrl:    ctrl,
		feed:    feed,
		visuals: visuals,
		screen:  core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH),
		keys:    NewKeyMapper(),
		frame:   core.NewInputFrame(),
		held:    stage.DirNone,
	}
	m.startRecording()
	return m, nil
}

func (m *PlayModel) startRecording() {
	m.rec = replay.NewRecorder(m.packID, m.ctrl.StageIndex(), m.ctrl.StageID(), m.opts.Timing)
	m.saved = m.ctrl.IsCleared()
}

// Init starts the tick loop.
func (m PlayModel) Init() tea.Cmd {
	return tickCmd(m.opts.Runtime)
}

// Update handles messages and updates the model state.
func (m PlayModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.opts.Runtime.ScreenW = msg.Width
		m.opts.Runtime.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		m.step()
		return m, tickCmd(m.opts.Runtime)
	}

	return m, nil
}

// handleKey processes keyboard input. Directions are queued for the next
// tick; the other commands apply at once.
func (m PlayModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.frame.Clear()
	if m.keys.MapKeyToFrame(msg, &m.frame) {
		m.quitting = true
		return m, tea.Quit
	}

	switch {
	case m.frame.Direction() != core.ActionNone:
		if !m.paused {
			m.held = Heading(m.frame.Direction())
			m.heldTTL = inputBuffer
		}

	case m.frame.Has(core.ActionUndo):
		if m.paused {
			break
		}
		m.rec.Undo(m.ctrl.Ticks())
		m.held = stage.DirNone
		if m.ctrl.Undo() {
			m.feed.clear()
			m.status = ""
			m.saved = m.ctrl.IsCleared()
		}

	case m.frame.Has(core.ActionReset):
		if m.paused {
			break
		}
		m.rec.Reset(m.ctrl.Ticks())
		m.held = stage.DirNone
		m.ctrl.Reset()
		m.feed.clear()
		m.status = ""
		m.saved = m.ctrl.IsCleared()

	case m.frame.Has(core.ActionNext), m.frame.Has(core.ActionConfirm):
		if m.ctrl.IsCleared() {
			m.advance()
		}

	case m.frame.Has(core.ActionPause):
		m.paused = !m.paused

	case m.frame.Has(core.ActionBack):
		m.back = true
	}

	return m, nil
}

// step runs one simulation tick with the queued direction.
func (m *PlayModel) step() {
	if m.paused {
		return
	}

	dir := stage.DirNone
	if m.heldTTL > 0 {
		dir = m.held
		m.heldTTL--
	}

	moves := m.ctrl.Moves()
	m.rec.Move(m.ctrl.Ticks(), dir)
	m.ctrl.Update(dir, true, 1)
	if m.ctrl.Moves() != moves {
		m.heldTTL = 0
	}
	m.feed.tick()

	if m.ctrl.IsCleared() && !m.saved {
		m.recordClear()
	}
}

// recordClear persists the result and progress of a cleared stage, and the
// replay of the first clear.
func (m *PlayModel) recordClear() {
	m.saved = true
	l := m.opts.logger()

	if m.rec.Recording() {
		m.rec.Finish(m.ctrl.Ticks(), m.ctrl.Hash())
		if m.opts.ReplayDir != "" {
			if err := m.saveReplay(); err != nil {
				l.Warn("could not save replay", "error", err)
			}
		}
	}

	if m.opts.Store == nil {
		return
	}
	res := storage.Result{
		Profile: m.opts.Profile,
		Pack:    m.packID,
		StageID: m.ctrl.StageID(),
		Moves:   m.ctrl.Moves(),
		Undos:   m.ctrl.Undos(),
		Resets:  m.ctrl.Resets(),
		Ticks:   m.ctrl.Ticks(),
	}
	prev, had, err := m.opts.Store.Best(m.packID, res.StageID)
	if err == nil {
		_, err = m.opts.Store.SaveResult(res)
	}
	if err == nil {
		err = m.opts.Store.SaveProgress(m.opts.Profile, m.packID, m.ctrl.StageIndex()+1)
	}
	if err != nil {
		l.Warn("could not save result", "stage", res.StageID, "error", err)
		m.status = "result not saved"
		return
	}
	if !had || res.Better(prev) {
		m.status = "New record!"
	}
}

func (m *PlayModel) saveReplay() error {
	if err := os.MkdirAll(m.opts.ReplayDir, 0o755); err != nil {
		return err
	}
	name := fmt.Sprintf("%s_%s_%s.json", m.packID, m.ctrl.StageID(), time.Now().Format("20060102_150405"))
	return m.rec.Save(filepath.Join(m.opts.ReplayDir, name))
}

// advance loads the next stage, or returns to the stage picker after the
// last one.
func (m *PlayModel) advance() {
	ok, err := m.ctrl.AdvanceToNextStage()
	if err != nil {
		m.opts.logger().Error("could not load next stage", "error", err)
		m.status = "next stage failed to load"
		return
	}
	if !ok {
		m.back = true
		return
	}
	m.held, m.heldTTL = stage.DirNone, 0
	m.feed.clear()
	m.status = ""
	m.startRecording()
}

// View renders the current state to a string for display.
func (m PlayModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	status := m.status
	switch {
	case m.paused:
		status = "PAUSED"
	case m.feed.message() != "":
		status = m.feed.message()
	}
	area := core.NewRect(0, 2, m.screen.Width(), core.Max(m.screen.Height()-5, 0))
	drawBoard(m.screen, area, m.ctrl)
	drawHUD(m.screen, m.ctrl, m.pack.Title(), status)
	return RenderScreen(m.screen)
}

// Controller exposes the running stage.
func (m PlayModel) Controller() *stage.Controller { return m.ctrl }

// IsQuitting returns true if user requested to quit entirely.
func (m PlayModel) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to the stage picker.
func (m PlayModel) BackToMenu() bool { return m.back }
