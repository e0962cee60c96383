package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/orbhop/internal/core"
	"github.com/vovakirdan/orbhop/internal/registry"
	"github.com/vovakirdan/orbhop/internal/storage"
)

// PickerKeyMap defines the key bindings for the stage picker.
type PickerKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Select   key.Binding
	NextPack key.Binding
	PrevPack key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PickerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.NextPack, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PickerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select},
		{k.NextPack, k.PrevPack, k.Quit},
	}
}

// DefaultPickerKeyMap returns default key bindings.
func DefaultPickerKeyMap() PickerKeyMap {
	return PickerKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		NextPack: key.NewBinding(
			key.WithKeys("tab", "right", "l"),
			key.WithHelp("tab", "next pack"),
		),
		PrevPack: key.NewBinding(
			key.WithKeys("shift+tab", "left", "h"),
			key.WithHelp("S-tab", "prev pack"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Selection is the stage chosen in the picker.
type Selection struct {
	PackID string
	Pack   registry.Pack
	Index  int
}

// PickerModel is the Bubble Tea model for choosing a pack and stage.
// Stages past the profile's progress are locked.
type PickerModel struct {
	opts       Options
	packs      []registry.PackInfo
	packCursor int
	pack       registry.Pack
	loadErr    error
	unlocked   int
	best       map[string]storage.Result
	table      table.Model
	help       help.Model
	keys       PickerKeyMap
	width      int
	height     int
	quitting   bool
	selected   *Selection
}

// NewPickerModel creates a picker opened on packID, or the first pack.
func NewPickerModel(opts Options, packID string) PickerModel {
	h := help.New()
	h.ShowAll = false

	m := PickerModel{
		opts:   opts,
		packs:  registry.List(),
		keys:   DefaultPickerKeyMap(),
		help:   h,
		width:  opts.Runtime.ScreenW,
		height: opts.Runtime.ScreenH,
	}
	for i, p := range m.packs {
		if p.ID == packID {
			m.packCursor = i
		}
	}
	m.table = m.createTable()
	m.loadPack()
	return m
}

// createTable creates a new table with appropriate columns.
func (m *PickerModel) createTable() table.Model {
	nameWidth := core.Max(m.width-40, 12)
	if nameWidth > 30 {
		nameWidth = 30
	}
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Stage", Width: nameWidth},
		{Title: "Best", Width: 8},
		{Title: "Undos", Width: 6},
		{Title: "", Width: 8},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(core.Max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// loadPack loads the pack under the cursor with its progress and results.
func (m *PickerModel) loadPack() {
	m.pack, m.loadErr = nil, nil
	m.unlocked, m.best = 0, nil
	if len(m.packs) == 0 {
		m.table.SetRows(nil)
		return
	}

	id := m.packs[m.packCursor].ID
	m.pack, m.loadErr = registry.Create(id)
	if m.loadErr != nil {
		m.opts.logger().Error("could not load pack", "pack", id, "error", m.loadErr)
		m.table.SetRows(nil)
		return
	}

	if m.opts.Store == nil {
		m.unlocked = m.pack.StageCount()
	} else {
		var err error
		if m.unlocked, err = m.opts.Store.LoadProgress(m.opts.Profile, id); err != nil {
			m.opts.logger().Warn("could not load progress", "pack", id, "error", err)
		}
		if m.best, err = m.opts.Store.BestPerStage(id, m.opts.Profile); err != nil {
			m.opts.logger().Warn("could not load results", "pack", id, "error", err)
		}
	}
	m.updateTableRows()
}

// updateTableRows fills the table from the current pack.
func (m *PickerModel) updateTableRows() {
	rows := make([]table.Row, 0, m.pack.StageCount())
	for i := 0; i < m.pack.StageCount(); i++ {
		l, err := m.pack.Stage(i)
		if err != nil {
			continue
		}
		best, undos, mark := "-", "-", ""
		if r, ok := m.best[l.ID]; ok {
			best = fmt.Sprintf("%d", r.Moves)
			undos = fmt.Sprintf("%d", r.Undos)
			mark = "cleared"
		}
		if !m.isUnlocked(i) {
			mark = "locked"
		}
		rows = append(rows, table.Row{fmt.Sprintf("%d", i+1), l.Name, best, undos, mark})
	}
	m.table.SetRows(rows)

	// Resume at the furthest unlocked stage.
	cursor := 0
	if m.opts.Store != nil {
		cursor = core.Min(m.unlocked, core.Max(len(rows)-1, 0))
	}
	m.table.SetCursor(cursor)
}

func (m PickerModel) isUnlocked(i int) bool {
	return i <= m.unlocked
}

// Init initializes the picker model.
func (m PickerModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m PickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextPack):
			if len(m.packs) > 0 {
				m.packCursor = (m.packCursor + 1) % len(m.packs)
				m.loadPack()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevPack):
			if len(m.packs) > 0 {
				m.packCursor = (m.packCursor - 1 + len(m.packs)) % len(m.packs)
				m.loadPack()
			}
			return m, nil

		case key.Matches(msg, m.keys.Select):
			i := m.table.Cursor()
			if m.pack != nil && i >= 0 && i < m.pack.StageCount() && m.isUnlocked(i) {
				m.selected = &Selection{PackID: m.packs[m.packCursor].ID, Pack: m.pack, Index: i}
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		if m.pack != nil {
			m.updateTableRows()
		}
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the picker.
func (m PickerModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := "ORBHOP"
	if len(m.packs) > 0 {
		title = fmt.Sprintf("ORBHOP - %s", m.packs[m.packCursor].Title)
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case m.loadErr != nil:
		b.WriteString(tableStyle.Render("Pack failed to load:\n" + m.loadErr.Error()))
	case m.pack == nil:
		b.WriteString(tableStyle.Render("No packs registered."))
	default:
		b.WriteString(tableStyle.Render(m.table.View()))
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Selected returns the chosen stage, or nil.
func (m PickerModel) Selected() *Selection { return m.selected }

// IsQuitting returns true if user wants to quit entirely.
func (m PickerModel) IsQuitting() bool { return m.quitting }
