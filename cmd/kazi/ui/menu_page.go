package ui

import (
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kazi/internal/nav"
)

// NavigateMsg is emitted when the user picks a menu entry.
type NavigateMsg struct {
	Path  string
	Label string
}

type menuItem struct {
	entry nav.Entry
}

func (i menuItem) Title() string       { return i.entry.Label }
func (i menuItem) Description() string { return i.entry.Path }
func (i menuItem) FilterValue() string { return i.entry.Label }

// MenuPageModel shows the navigation entries the signed-in user may see.
// The entries come pre-filtered; the page never re-checks grants itself.
type MenuPageModel struct {
	list   list.Model
	styles Styles
	width  int
	height int
}

// NewMenuPageModel builds the menu from already-filtered entries.
func NewMenuPageModel(entries []nav.Entry, styles Styles) MenuPageModel {
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, menuItem{entry: e})
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(styles.Theme.Primary).
		BorderLeftForeground(styles.Theme.Primary)
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(styles.Theme.Muted).
		BorderLeftForeground(styles.Theme.Primary)

	l := list.New(items, delegate, 0, 0)
	l.Title = "kazi"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = styles.Header

	return MenuPageModel{list: l, styles: styles}
}

// SetEntries replaces the menu content, e.g. after an identity change.
func (m *MenuPageModel) SetEntries(entries []nav.Entry) {
	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, menuItem{entry: e})
	}
	m.list.SetItems(items)
}

// SetSize resizes the page.
func (m *MenuPageModel) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
}

// Init implements tea.Model.
func (m MenuPageModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m MenuPageModel) Update(msg tea.Msg) (MenuPageModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "enter" {
		if item, ok := m.list.SelectedItem().(menuItem); ok {
			return m, func() tea.Msg {
				return NavigateMsg{Path: item.entry.Path, Label: item.entry.Label}
			}
		}
	}
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m MenuPageModel) View() string {
	return lipgloss.NewStyle().Padding(1, 2).Render(m.list.View())
}
