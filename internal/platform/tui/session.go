package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// SessionModel manages the full flow: picker -> stage -> picker.
// It is the top-level model of both local and SSH sessions.
type SessionModel struct {
	opts      Options
	packID    string
	picker    PickerModel
	playModel *PlayModel
	quitting  bool
}

// NewSessionModel creates a session opened on packID.
func NewSessionModel(opts Options, packID string) SessionModel {
	return SessionModel{
		opts:   opts,
		packID: packID,
		picker: NewPickerModel(opts, packID),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.picker.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.opts.Runtime.ScreenW = wsm.Width
		m.opts.Runtime.ScreenH = wsm.Height
	}

	if m.playModel != nil {
		return m.updatePlay(msg)
	}
	return m.updatePicker(msg)
}

// updatePicker handles updates while choosing a stage.
func (m SessionModel) updatePicker(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.picker.Update(msg)
	if pm, ok := next.(PickerModel); ok {
		m.picker = pm
	}

	if m.picker.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if sel := m.picker.Selected(); sel != nil {
		play, err := NewPlayModel(m.opts, sel.PackID, sel.Pack, sel.Index)
		if err != nil {
			m.opts.logger().Error("could not start stage", "pack", sel.PackID, "index", sel.Index, "error", err)
			m.picker = NewPickerModel(m.opts, sel.PackID)
			return m, nil
		}
		m.packID = sel.PackID
		m.playModel = &play
		return m, m.playModel.Init()
	}

	return m, cmd
}

// updatePlay handles updates while a stage is running.
func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.playModel.Update(msg)
	if pm, ok := next.(PlayModel); ok {
		m.playModel = &pm
	}

	if m.playModel.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.playModel.BackToMenu() {
		m.playModel = nil
		m.picker = NewPickerModel(m.opts, m.packID)
		return m, m.picker.Init()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	if m.playModel != nil {
		return m.playModel.View()
	}
	return m.picker.View()
}

// Run starts a local session on the terminal.
func Run(opts Options, packID string) error {
	p := tea.NewProgram(
		NewSessionModel(opts, packID),
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	return err
}

// RunStage plays a single stage of a pack without the picker.
func RunStage(opts Options, sel Selection) error {
	play, err := NewPlayModel(opts, sel.PackID, sel.Pack, sel.Index)
	if err != nil {
		return err
	}
	p := tea.NewProgram(stageOnly{play}, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// stageOnly quits where a session would return to the picker.
type stageOnly struct {
	PlayModel
}

func (m stageOnly) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.PlayModel.Update(msg)
	if pm, ok := next.(PlayModel); ok {
		m.PlayModel = pm
	}
	if m.BackToMenu() {
		return m, tea.Quit
	}
	return m, cmd
}
