package tui

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lasatanica/backoffice/internal/router"
	"github.com/lasatanica/backoffice/internal/surface"
)

type fakeNav struct {
	mu     sync.Mutex
	routes []router.Route
	onNav  func(ctx context.Context, route router.Route)
}

func (n *fakeNav) NavigateTo(ctx context.Context, route router.Route, _ router.Params) router.Outcome {
	n.mu.Lock()
	n.routes = append(n.routes, route)
	on := n.onNav
	n.mu.Unlock()
	if on != nil {
		on(ctx, route)
	}
	return router.Mounted
}

func (n *fakeNav) CurrentRoute() router.Route {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.routes) == 0 {
		return ""
	}
	return n.routes[len(n.routes)-1]
}

// drain runs cmd and feeds the end of every interaction back into m.
// Commands that do not answer promptly (cursor blinks, ticks) are dropped.
func drain(t *testing.T, m *Model, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		return
	}

	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()

	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(200 * time.Millisecond):
		return
	}

	switch msg := msg.(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			drain(t, m, c)
		}
	case jobDoneMsg:
		_, next := m.Update(msg)
		drain(t, m, next)
	case spinner.TickMsg:
	}
}

func press(t *testing.T, m *Model, keys ...string) {
	t.Helper()
	for _, k := range keys {
		var msg tea.KeyMsg
		switch k {
		case "enter":
			msg = tea.KeyMsg{Type: tea.KeyEnter}
		case "esc":
			msg = tea.KeyMsg{Type: tea.KeyEsc}
		case "up":
			msg = tea.KeyMsg{Type: tea.KeyUp}
		case "down":
			msg = tea.KeyMsg{Type: tea.KeyDown}
		case "tab":
			msg = tea.KeyMsg{Type: tea.KeyTab}
		case "ctrl+c":
			msg = tea.KeyMsg{Type: tea.KeyCtrlC}
		case "ctrl+f":
			msg = tea.KeyMsg{Type: tea.KeyCtrlF}
		default:
			msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
		}
		_, cmd := m.Update(msg)
		drain(t, m, cmd)
	}
}

func newTestModel(t *testing.T, draw func(buf *surface.Buffer)) (*Model, *surface.Buffer, *fakeNav) {
	t.Helper()
	buf := surface.NewBuffer()
	nav := &fakeNav{}
	nav.onNav = func(_ context.Context, route router.Route) {
		buf.Reset(string(route))
		if draw != nil {
			draw(buf)
		}
	}

	m := NewModel(context.Background(), buf, nav, router.Route("home"))
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	drain(t, m, m.Init())
	return m, buf, nav
}

func TestInitNavigatesToStart(t *testing.T) {
	m, _, nav := newTestModel(t, nil)

	assert.Equal(t, router.Route("home"), nav.CurrentRoute())
	assert.False(t, m.Busy())
	assert.Equal(t, FocusScreen, m.Focus())
}

func TestActionKeyRunsAction(t *testing.T) {
	var ran int
	m, _, _ := newTestModel(t, func(buf *surface.Buffer) {
		buf.Actions(surface.Action{Key: "a", Label: "Añadir", Run: func(context.Context) { ran++ }})
	})

	press(t, m, "a", "z")

	assert.Equal(t, 1, ran)
}

func TestTableNavigationAndSelect(t *testing.T) {
	var chosen []int
	m, _, _ := newTestModel(t, func(buf *surface.Buffer) {
		buf.Table(surface.Table{
			Headers: []string{"ID", "Nombre"},
			Rows:    [][]string{{"1", "Ana"}, {"2", "Luis"}, {"3", "Marta"}},
			Select:  func(_ context.Context, row int) { chosen = append(chosen, row) },
		})
	})

	press(t, m, "down", "down", "down", "enter")
	press(t, m, "up", "enter")

	assert.Equal(t, []int{2, 1}, chosen)
}

func TestTabMovesBetweenTables(t *testing.T) {
	var first, second []int
	m, _, _ := newTestModel(t, func(buf *surface.Buffer) {
		buf.Table(surface.Table{Rows: [][]string{{"a"}}, Select: func(_ context.Context, row int) { first = append(first, row) }})
		buf.Table(surface.Table{Rows: [][]string{{"b"}, {"c"}}, Select: func(_ context.Context, row int) { second = append(second, row) }})
	})

	press(t, m, "tab", "down", "enter")

	assert.Empty(t, first)
	assert.Equal(t, []int{1}, second)
}

func TestKeysIgnoredWhileBusy(t *testing.T) {
	var ran int
	m, _, _ := newTestModel(t, func(buf *surface.Buffer) {
		buf.Actions(surface.Action{Key: "a", Label: "Añadir", Run: func(context.Context) { ran++ }})
	})

	m.busy = true
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})

	assert.Nil(t, cmd)
	assert.Zero(t, ran)
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t, nil)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, m.View())
}

func TestPanicInActionIsReported(t *testing.T) {
	m, buf, _ := newTestModel(t, func(buf *surface.Buffer) {
		buf.Actions(surface.Action{Key: "x", Label: "Romper", Run: func(context.Context) { panic("boom") }})
	})

	press(t, m, "x")

	last, ok := buf.Snapshot().LastNotification()
	require.True(t, ok)
	assert.Equal(t, surface.LevelError, last.Level)
	assert.Contains(t, last.Message, "boom")
	assert.False(t, m.Busy())
}

func TestViewRendersFrame(t *testing.T) {
	m, buf, _ := newTestModel(t, func(buf *surface.Buffer) {
		buf.Fields(surface.Field{Label: "Nombre", Value: "Ana"})
		buf.Table(surface.Table{Headers: []string{"ID", "Concepto"}, Rows: [][]string{{"7", "Cuota"}}})
		buf.Actions(surface.Action{Key: "n", Label: "Nuevo"})
	})
	buf.Notify(surface.LevelSuccess, "Guardado")

	out := m.View()

	for _, want := range []string{"home", "Guardado", "Nombre", "Ana", "Concepto", "Cuota", "[n]", "Nuevo"} {
		assert.Contains(t, out, want)
	}
}

func TestViewBeforeWindowSize(t *testing.T) {
	m := NewModel(context.Background(), surface.NewBuffer(), &fakeNav{}, router.Route("home"))

	assert.Equal(t, "Iniciando...", m.View())
}

func TestFormTakesFocus(t *testing.T) {
	m, _, _ := newTestModel(t, func(buf *surface.Buffer) {
		buf.Form(surface.Form{
			Title:  "Buscar",
			Fields: []surface.FormField{{Key: "q", Label: "Texto"}},
		})
	})

	assert.Equal(t, FocusForm, m.Focus())
	require.NotNil(t, m.form)
	assert.Contains(t, m.View(), "Texto")
}

func TestEscRunsCancel(t *testing.T) {
	var cancelled int
	m, _, _ := newTestModel(t, func(buf *surface.Buffer) {
		buf.Form(surface.Form{
			Title:  "Nuevo",
			Fields: []surface.FormField{{Key: "name", Label: "Nombre"}},
			Cancel: func(context.Context) { cancelled++ },
		})
	})

	press(t, m, "esc")

	assert.Equal(t, 1, cancelled)
}

func TestEscWithoutCancelKeepsForm(t *testing.T) {
	var ran int
	m, _, _ := newTestModel(t, func(buf *surface.Buffer) {
		buf.Form(surface.Form{Fields: []surface.FormField{{Key: "q", Label: "Texto"}}})
		buf.Actions(surface.Action{Key: "a", Label: "Añadir", Run: func(context.Context) { ran++ }})
	})

	press(t, m, "esc")
	assert.Equal(t, FocusScreen, m.Focus())
	assert.NotNil(t, m.form)

	press(t, m, "a")
	assert.Equal(t, 1, ran)

	press(t, m, "ctrl+f")
	assert.Equal(t, FocusForm, m.Focus())
}

func TestSubmitPassesValues(t *testing.T) {
	var got map[string]string
	m, _, _ := newTestModel(t, func(buf *surface.Buffer) {
		buf.Form(surface.Form{
			Fields: []surface.FormField{{Key: "email", Label: "Email"}, {Key: "role", Label: "Rol", Options: []surface.Option{{Label: "Admin", Value: "admin"}, {Label: "Staff", Value: "staff"}}}},
			Submit: func(_ context.Context, values map[string]string) { got = values },
		})
	})
	require.Contains(t, m.formValues, "email")
	*m.formValues["email"] = "ana@example.com"
	*m.formValues["role"] = "staff"

	drain(t, m, m.submitForm())

	assert.Equal(t, map[string]string{"email": "ana@example.com", "role": "staff"}, got)
}

func TestBuildFormPrefillsValues(t *testing.T) {
	spec := &surface.Form{Fields: []surface.FormField{
		{Key: "name", Label: "Nombre", Value: "inicial"},
		{Key: "city", Label: "Ciudad"},
	}}

	form, values := buildForm(spec, map[string]string{"city": "Sevilla"}, 60)

	require.NotNil(t, form)
	assert.Equal(t, "inicial", *values["name"])
	assert.Equal(t, "Sevilla", *values["city"])
}

func TestFieldValidator(t *testing.T) {
	required := fieldValidator(surface.FormField{Required: true})
	assert.EqualError(t, required(""), requiredMessage)
	assert.EqualError(t, required("  "), requiredMessage)
	assert.NoError(t, required("x"))

	optional := fieldValidator(surface.FormField{})
	assert.NoError(t, optional(""))
}
