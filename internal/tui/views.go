package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/lasatanica/backoffice/internal/surface"
)

// visibleNotifications is how many of the latest notifications are shown
const visibleNotifications = 3

// View renders the TUI (required by Bubble Tea)
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Iniciando..."
	}

	frame := m.buffer.Snapshot()
	var b strings.Builder

	if m.header != "" {
		b.WriteString(m.styles.Subtitle.Render(m.header))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Title.Render(frame.Title))
	b.WriteString("\n")

	if notes := m.renderNotifications(frame); notes != "" {
		b.WriteString(notes)
		b.WriteString("\n\n")
	}

	focused := m.focusedTable(frame)
	for _, block := range frame.Blocks {
		var out string
		switch block.Kind {
		case surface.BlockText:
			out = block.Text
		case surface.BlockFields:
			out = m.renderFields(block.Fields)
		case surface.BlockActions:
			out = m.renderActions(block.Actions)
		case surface.BlockTable:
			out = m.renderTable(block.Table, block.Table == focused && m.focus == FocusScreen)
		case surface.BlockForm:
			out = m.renderForm(block.Form)
		}
		if out == "" {
			continue
		}
		b.WriteString(out)
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderStatus(frame))
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render(m.help.View(m.keys)))
	return b.String()
}

func (m *Model) renderNotifications(frame surface.Frame) string {
	notes := frame.Notifications
	if len(notes) > visibleNotifications {
		notes = notes[len(notes)-visibleNotifications:]
	}
	lines := make([]string, 0, len(notes))
	for _, n := range notes {
		lines = append(lines, m.levelStyle(n.Level).Render(levelIcon(n.Level)+" "+n.Message))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) levelStyle(level surface.Level) lipgloss.Style {
	switch level {
	case surface.LevelSuccess:
		return m.styles.Success
	case surface.LevelWarning:
		return m.styles.Warning
	case surface.LevelError:
		return m.styles.Error
	default:
		return m.styles.Status
	}
}

func levelIcon(level surface.Level) string {
	switch level {
	case surface.LevelSuccess:
		return "✓"
	case surface.LevelWarning:
		return "!"
	case surface.LevelError:
		return "✗"
	default:
		return "•"
	}
}

func (m *Model) renderFields(fields []surface.Field) string {
	width := 0
	for _, f := range fields {
		width = max(width, lipgloss.Width(f.Label))
	}
	label := m.styles.Muted.Width(width + 2)

	lines := make([]string, len(fields))
	for i, f := range fields {
		lines[i] = label.Render(f.Label+":") + f.Value
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderActions(actions []surface.Action) string {
	parts := make([]string, len(actions))
	for i, a := range actions {
		parts[i] = m.styles.Key.Render("["+a.Key+"]") + " " + m.styles.KeyDesc.Render(a.Label)
	}
	return strings.Join(parts, "  ")
}

func (m *Model) renderTable(t *surface.Table, focused bool) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}
	border := lipgloss.Color("241")
	if focused {
		border = lipgloss.Color("63")
	}

	cursor := m.cursor
	header := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)
	selected := m.styles.Highlighted.Padding(0, 1)

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(border)).
		Headers(t.Headers...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return header
			case focused && row == cursor:
				return selected
			default:
				return cell
			}
		})
	if m.width > 0 {
		tbl = tbl.Width(m.width)
	}
	return tbl.String()
}

func (m *Model) renderForm(spec *surface.Form) string {
	if spec == m.formRef && m.form != nil {
		style := m.styles.Border
		if m.focus != FocusForm {
			style = style.BorderForeground(lipgloss.Color("241"))
		}
		return style.Render(m.form.View())
	}
	return m.styles.Muted.Render(spec.Title)
}

func (m *Model) renderStatus(frame surface.Frame) string {
	switch {
	case m.busy || frame.Loading:
		label := frame.LoadingLabel
		if label == "" {
			label = "Cargando..."
		}
		return m.spinner.View() + " " + m.styles.Status.Render(label)
	case m.focus == FocusForm:
		return m.styles.Muted.Render("Formulario activo")
	default:
		return m.styles.Muted.Render(fmt.Sprintf("Pantalla: %s", frame.Title))
	}
}
