package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/lasatanica/backoffice/internal/router"
	"github.com/lasatanica/backoffice/internal/surface"
)

// Focus is what receives key presses
type Focus int

const (
	// FocusScreen sends keys to the action bars and the selected table
	FocusScreen Focus = iota
	// FocusForm sends keys to the form on screen
	FocusForm
)

// Model renders a surface.Buffer and turns key presses into screen
// interactions. Interactions run one at a time off the UI goroutine.
type Model struct {
	ctx    context.Context
	buffer *surface.Buffer
	nav    router.Navigator
	start  router.Route

	// Screen state
	focus      Focus
	tableIndex int
	cursor     int
	tableRef   *surface.Table

	// Form state
	formRef    *surface.Form
	form       *huh.Form
	formValues map[string]*string
	submitted  *surface.Form
	keepValues map[string]string

	// UI state
	header   string
	busy     bool
	width    int
	height   int
	ready    bool
	quitting bool
	showHelp bool

	spinner spinner.Model
	help    help.Model
	keys    keyMap
	styles  Styles
}

// Styles contains lipgloss styles for the TUI
type Styles struct {
	Title       lipgloss.Style
	Subtitle    lipgloss.Style
	Status      lipgloss.Style
	Error       lipgloss.Style
	Success     lipgloss.Style
	Warning     lipgloss.Style
	Muted       lipgloss.Style
	Border      lipgloss.Style
	Highlighted lipgloss.Style
	Help        lipgloss.Style
	Key         lipgloss.Style
	KeyDesc     lipgloss.Style
}

// DefaultStyles returns the default lipgloss styles
func DefaultStyles() Styles {
	return Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")). // Purple
			MarginBottom(1),
		Subtitle: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86")), // Cyan
		Status: lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")),
		Error: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")), // Red
		Success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("46")), // Green
		Warning: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("226")), // Yellow
		Muted: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")), // Gray
		Border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1),
		Highlighted: lipgloss.NewStyle().
			Background(lipgloss.Color("63")).
			Foreground(lipgloss.Color("230")). // Light yellow
			Bold(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1),
		Key: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63")),
		KeyDesc: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
	}
}

// keyMap defines the keyboard shortcuts that are not screen actions
type keyMap struct {
	Quit      key.Binding
	Help      key.Binding
	Up        key.Binding
	Down      key.Binding
	Select    key.Binding
	NextTable key.Binding
	Form      key.Binding
	Leave     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "salir"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "ayuda"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "subir"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "bajar"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "abrir fila"),
		),
		NextTable: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "siguiente tabla"),
		),
		Form: key.NewBinding(
			key.WithKeys("ctrl+f"),
			key.WithHelp("ctrl+f", "ir al formulario"),
		),
		Leave: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "salir del formulario"),
		),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.NextTable, k.Form, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.NextTable},
		{k.Form, k.Leave, k.Help, k.Quit},
	}
}

// jobDoneMsg reports the end of an interaction. panicked holds the
// recovered value when it panicked.
type jobDoneMsg struct {
	panicked any
}

// NewModel creates a model drawing buf. Init navigates to start.
func NewModel(ctx context.Context, buf *surface.Buffer, nav router.Navigator, start router.Route) *Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))

	return &Model{
		ctx:     ctx,
		buffer:  buf,
		nav:     nav,
		start:   start,
		spinner: s,
		help:    help.New(),
		keys:    defaultKeys(),
		styles:  DefaultStyles(),
	}
}

// Init navigates to the start route (required by Bubble Tea)
func (m *Model) Init() tea.Cmd {
	start := m.start
	return m.run(func(ctx context.Context) {
		m.nav.NavigateTo(ctx, start, nil)
	})
}

// Update handles messages and updates the model state (required by Bubble Tea)
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		if m.form != nil {
			m.form = m.form.WithWidth(m.formWidth())
		}
		return m, nil

	case spinner.TickMsg:
		if !m.busy {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case jobDoneMsg:
		m.busy = false
		if msg.panicked != nil {
			m.buffer.Notify(surface.LevelError, fmt.Sprintf("Error inesperado: %v", msg.panicked))
		}
		return m, m.sync()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}
		if m.busy {
			return m, nil
		}
		if m.focus == FocusForm && m.form != nil {
			return m.updateForm(msg)
		}
		return m.handleKeyPress(msg)
	}

	if m.focus == FocusForm && m.form != nil && !m.busy {
		return m.updateForm(msg)
	}
	return m, nil
}

// handleKeyPress handles keys while the screen has focus
func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	frame := m.buffer.Snapshot()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp
		return m, nil

	case key.Matches(msg, m.keys.Form):
		if m.form != nil {
			m.focus = FocusForm
		}
		return m, nil

	case key.Matches(msg, m.keys.NextTable):
		tables := selectable(frame)
		if len(tables) > 0 {
			m.tableIndex = (m.tableIndex + 1) % len(tables)
			m.tableRef = tables[m.tableIndex]
			m.cursor = 0
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if t := m.focusedTable(frame); t != nil && m.cursor < len(t.Rows)-1 {
			m.cursor++
		}
		return m, nil

	case key.Matches(msg, m.keys.Select):
		t := m.focusedTable(frame)
		if t == nil || t.Select == nil || len(t.Rows) == 0 {
			return m, nil
		}
		row, sel := m.cursor, t.Select
		return m, m.run(func(ctx context.Context) { sel(ctx, row) })
	}

	for _, a := range frame.Actions() {
		if a.Key == msg.String() && a.Run != nil {
			return m, m.run(a.Run)
		}
	}
	return m, nil
}

// updateForm forwards msg to the form and submits it once completed
func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.Leave) {
		return m, m.cancelForm()
	}

	model, cmd := m.form.Update(msg)
	if f, ok := model.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		return m, m.submitForm()
	case huh.StateAborted:
		return m, m.cancelForm()
	}
	return m, cmd
}

// submitForm hands the entered values to the form's Submit
func (m *Model) submitForm() tea.Cmd {
	spec := m.formRef
	values := make(map[string]string, len(m.formValues))
	for k, v := range m.formValues {
		values[k] = *v
	}
	m.submitted, m.keepValues = spec, values
	m.form, m.formRef = nil, nil
	m.focus = FocusScreen
	if spec == nil || spec.Submit == nil {
		return nil
	}
	return m.run(func(ctx context.Context) { spec.Submit(ctx, values) })
}

// cancelForm leaves the form, running its Cancel when it has one. A form
// without Cancel stays on screen with what was typed so far.
func (m *Model) cancelForm() tea.Cmd {
	spec := m.formRef
	m.focus = FocusScreen
	if spec == nil {
		return nil
	}
	if spec.Cancel == nil {
		typed := make(map[string]string, len(m.formValues))
		for k, v := range m.formValues {
			typed[k] = *v
		}
		m.form, m.formValues = buildForm(spec, typed, m.formWidth())
		return m.form.Init()
	}
	m.form, m.formRef = nil, nil
	return m.run(spec.Cancel)
}

// run executes fn off the UI goroutine. A panic is reported as an error.
func (m *Model) run(fn func(ctx context.Context)) tea.Cmd {
	m.busy = true
	ctx := m.ctx
	job := func() (msg tea.Msg) {
		defer func() {
			if r := recover(); r != nil {
				msg = jobDoneMsg{panicked: r}
			}
		}()
		fn(ctx)
		return jobDoneMsg{}
	}
	return tea.Batch(m.spinner.Tick, job)
}

// sync aligns the form and table focus with the current frame
func (m *Model) sync() tea.Cmd {
	frame := m.buffer.Snapshot()

	tables := selectable(frame)
	found := false
	for i, t := range tables {
		if t == m.tableRef {
			m.tableIndex = i
			found = true
		}
	}
	if !found {
		m.tableIndex = 0
		m.cursor = 0
		m.tableRef = nil
		if len(tables) > 0 {
			m.tableRef = tables[0]
		}
	}
	if m.tableRef != nil && m.cursor >= len(m.tableRef.Rows) {
		m.cursor = max(len(m.tableRef.Rows)-1, 0)
	}

	submitted, keep := m.submitted, m.keepValues
	m.submitted, m.keepValues = nil, nil

	forms := frame.Forms()
	if len(forms) == 0 {
		m.form, m.formRef = nil, nil
		m.focus = FocusScreen
		return nil
	}
	spec := forms[len(forms)-1]
	if spec == m.formRef && m.form != nil {
		return nil
	}
	if spec != submitted {
		keep = nil
	}
	m.formRef = spec
	m.form, m.formValues = buildForm(spec, keep, m.formWidth())
	m.focus = FocusForm
	return m.form.Init()
}

// focusedTable returns the selected table of frame, or the first table
func (m *Model) focusedTable(frame surface.Frame) *surface.Table {
	tables := selectable(frame)
	if len(tables) == 0 {
		return nil
	}
	if m.tableIndex < len(tables) {
		return tables[m.tableIndex]
	}
	return tables[0]
}

func (m *Model) formWidth() int {
	if m.width <= 0 {
		return 0
	}
	return min(m.width-4, 80)
}

// SetHeader sets the line drawn above every screen
func (m *Model) SetHeader(header string) {
	m.header = header
}

// Focus returns what currently receives key presses
func (m *Model) Focus() Focus {
	return m.focus
}

// Busy reports whether an interaction is running
func (m *Model) Busy() bool {
	return m.busy
}

// selectable returns the tables of frame whose rows can be opened
func selectable(frame surface.Frame) []*surface.Table {
	var out []*surface.Table
	for _, t := range frame.Tables() {
		if t.Select != nil {
			out = append(out, t)
		}
	}
	return out
}
