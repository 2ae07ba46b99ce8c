package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"kazi/internal/api"
)

// TablePageModel shows one static table inside a scrollable viewport. The
// list screens (attendance, leave, tasks, directory, payroll, approvals)
// all render through it.
type TablePageModel struct {
	styles   Styles
	viewport viewport.Model
	table    *SimpleTable
	err      error
	ready    bool
}

// NewTablePageModel creates an empty table page.
func NewTablePageModel(styles Styles) TablePageModel {
	return TablePageModel{styles: styles}
}

// SetTable replaces the page content.
func (m *TablePageModel) SetTable(table *SimpleTable) {
	m.table = table
	m.err = nil
	m.refresh()
}

// SetError shows a fetch failure instead of the table.
func (m *TablePageModel) SetError(err error) {
	m.err = err
	m.refresh()
}

// SetSize resizes the page.
func (m *TablePageModel) SetSize(width, height int) {
	if !m.ready {
		m.viewport = viewport.New(width, height-2)
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = height - 2
	}
	m.refresh()
}

func (m *TablePageModel) refresh() {
	if !m.ready {
		return
	}
	switch {
	case m.err != nil:
		m.viewport.SetContent(m.styles.Error.Render(api.Message(m.err)))
	case m.table == nil:
		m.viewport.SetContent(m.styles.Muted.Render("Loading..."))
	default:
		m.viewport.SetContent(m.table.View(m.styles))
	}
}

// Init implements tea.Model.
func (m TablePageModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m TablePageModel) Update(msg tea.Msg) (TablePageModel, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m TablePageModel) View() string {
	if !m.ready {
		return ""
	}
	return m.styles.Content.Render(m.viewport.View())
}
