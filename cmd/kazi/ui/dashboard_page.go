package ui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kazi/internal/api"
	"kazi/internal/format"
)

// DashboardPageModel renders the employee home: four stat cards over the
// most recent leave requests.
type DashboardPageModel struct {
	styles Styles
	width  int
	height int
	data   *api.EmployeeDashboard
	err    error
}

// NewDashboardPageModel creates an empty dashboard page.
func NewDashboardPageModel(styles Styles) DashboardPageModel {
	return DashboardPageModel{styles: styles}
}

// SetData fills the page after a successful bundle fetch.
func (m *DashboardPageModel) SetData(data *api.EmployeeDashboard) {
	m.data = data
	m.err = nil
}

// SetError shows a fetch failure in place of the cards.
func (m *DashboardPageModel) SetError(err error) {
	m.err = err
}

// SetSize resizes the page.
func (m *DashboardPageModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init implements tea.Model.
func (m DashboardPageModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m DashboardPageModel) Update(msg tea.Msg) (DashboardPageModel, tea.Cmd) {
	return m, nil
}

// View implements tea.Model.
func (m DashboardPageModel) View() string {
	if m.err != nil {
		return m.styles.Content.Render(m.styles.Error.Render("Dashboard unavailable: " + api.Message(m.err)))
	}
	if m.data == nil {
		return m.styles.Content.Render(m.styles.Muted.Render("Loading dashboard..."))
	}

	stats := m.data.Stats
	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		m.card("Pending tasks", itoa(stats.PendingTasks)),
		m.card("Upcoming leave", format.Days(float64(stats.UpcomingLeave))),
		m.card("Attendance rate", fmt.Sprintf("%.0f%%", stats.AttendanceRate)),
		m.card("Next payout", format.KES(stats.NextPayout)),
	)

	leave := NewSimpleTable("Recent leave", "Type", "From", "To", "Days", "Status")
	leave.Empty = "No leave requests yet."
	for i, lr := range m.data.RecentLeave {
		if i == 5 {
			break
		}
		leave.AddRow(format.Title(lr.LeaveType), lr.StartDate, lr.EndDate,
			format.Days(lr.TotalDays), format.Title(lr.Status))
	}

	return m.styles.Content.Render(
		lipgloss.JoinVertical(lipgloss.Left, cards, "", leave.View(m.styles)),
	)
}

func itoa(n int) string { return strconv.Itoa(n) }

func (m DashboardPageModel) card(label, value string) string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Muted.Render(label),
		m.styles.Bold.Render(value),
	)
	return m.styles.Card.MarginRight(1).Render(body)
}
