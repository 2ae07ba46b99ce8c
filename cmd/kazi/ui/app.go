package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kazi/internal/api"
	"kazi/internal/format"
	"kazi/internal/logging"
	"kazi/internal/nav"
	"kazi/internal/session"
	"kazi/internal/wizard"
)

type page int

const (
	pageMenu page = iota
	pageDashboard
	pageTable
	pageWizard
)

// ThemeChangedMsg restyles the shell, e.g. after a config reload.
type ThemeChangedMsg struct{ Theme Theme }

type dashboardDataMsg struct {
	data *api.EmployeeDashboard
	err  error
}

type tableDataMsg struct {
	path  string
	table *SimpleTable
	err   error
}

// App is the root model of the interactive shell. It owns the filtered
// menu and routes between pages.
type App struct {
	styles    Styles
	client    *api.Client
	store     *session.Store
	menu      MenuPageModel
	dashboard DashboardPageModel
	table     TablePageModel
	wizardPg  WizardPageModel
	page      page
	path      string
	startPath string
	width     int
	height    int
}

// NewApp builds the shell for a signed-in session.
func NewApp(client *api.Client, store *session.Store, theme Theme) App {
	styles := NewStyles(theme)
	entries := nav.Visible(store, nav.DefaultMenu())
	return App{
		styles:    styles,
		client:    client,
		store:     store,
		menu:      NewMenuPageModel(entries, styles),
		dashboard: NewDashboardPageModel(styles),
		table:     NewTablePageModel(styles),
	}
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.startPath == "" {
		return nil
	}
	path := a.startPath
	return func() tea.Msg { return NavigateMsg{Path: path} }
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		contentHeight := msg.Height - 2
		a.menu.SetSize(msg.Width, contentHeight)
		a.dashboard.SetSize(msg.Width, contentHeight)
		a.table.SetSize(msg.Width, contentHeight)
		a.wizardPg.SetSize(msg.Width, contentHeight)
		return a, nil

	case ThemeChangedMsg:
		a.styles = NewStyles(msg.Theme)
		a.menu = NewMenuPageModel(nav.Visible(a.store, nav.DefaultMenu()), a.styles)
		a.menu.SetSize(a.width, a.height-2)
		a.dashboard = NewDashboardPageModel(a.styles)
		a.table = NewTablePageModel(a.styles)
		a.table.SetSize(a.width, a.height-2)
		a.page = pageMenu
		return a, nil

	case NavigateMsg:
		return a.navigate(msg)

	case WizardRedirectMsg:
		logging.UI("wizard redirect to %s", msg.Path)
		return a.navigate(NavigateMsg{Path: msg.Path, Label: "Dashboard"})

	case dashboardDataMsg:
		if msg.err != nil {
			a.dashboard.SetError(msg.err)
		} else {
			a.dashboard.SetData(msg.data)
		}
		return a, nil

	case tableDataMsg:
		if msg.path != a.path {
			return a, nil // stale fetch for a page we already left
		}
		if msg.err != nil {
			a.table.SetError(msg.err)
		} else {
			a.table.SetTable(msg.table)
		}
		return a, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return a, tea.Quit
		case "q":
			if a.page == pageMenu {
				return a, tea.Quit
			}
		case "esc":
			// The wizard uses esc for Back; everything else returns home.
			if a.page != pageMenu && a.page != pageWizard {
				a.page = pageMenu
				a.path = ""
				return a, nil
			}
		}
	}

	return a.updatePage(msg)
}

func (a App) updatePage(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch a.page {
	case pageMenu:
		a.menu, cmd = a.menu.Update(msg)
	case pageDashboard:
		a.dashboard, cmd = a.dashboard.Update(msg)
	case pageTable:
		a.table, cmd = a.table.Update(msg)
	case pageWizard:
		a.wizardPg, cmd = a.wizardPg.Update(msg)
	}
	return a, cmd
}

func (a App) navigate(msg NavigateMsg) (tea.Model, tea.Cmd) {
	logging.UI("navigate %s", msg.Path)
	a.path = msg.Path

	switch msg.Path {
	case "/dashboard":
		a.page = pageDashboard
		a.dashboard = NewDashboardPageModel(a.styles)
		a.dashboard.SetSize(a.width, a.height-2)
		client := a.client
		return a, func() tea.Msg {
			data, err := client.EmployeeDashboard(context.Background())
			return dashboardDataMsg{data: data, err: err}
		}

	case "/onboarding":
		a.page = pageWizard
		runner := wizard.NewRunner(wizard.NewMachine(), a.client)
		a.wizardPg = NewWizardPageModel(runner, a.styles)
		a.wizardPg.SetSize(a.width, a.height-2)
		return a, a.wizardPg.Init()

	default:
		a.page = pageTable
		a.table = NewTablePageModel(a.styles)
		a.table.SetSize(a.width, a.height-2)
		return a, a.loadTable(msg.Path)
	}
}

// loadTable fetches the content for a list page in the background.
func (a App) loadTable(path string) tea.Cmd {
	client := a.client
	return func() tea.Msg {
		table, err := fetchTable(context.Background(), client, path)
		return tableDataMsg{path: path, table: table, err: err}
	}
}

// fetchTable maps a menu path to its gateway call and table shape.
func fetchTable(ctx context.Context, client *api.Client, path string) (*SimpleTable, error) {
	switch path {
	case "/attendance":
		records, err := client.Attendance(ctx, "", "")
		if err != nil {
			return nil, err
		}
		t := NewSimpleTable("Attendance", "Date", "In", "Out", "Hours", "Status")
		t.Empty = "No attendance records."
		for i := range records {
			r := &records[i]
			t.AddRow(r.Date, r.ActualCheckIn, r.ActualCheckOut, fmt.Sprintf("%.1f", r.HoursWorked), format.Title(r.Status))
		}
		return t, nil

	case "/leave":
		requests, err := client.LeaveRequests(ctx, api.LeaveListOptions{})
		if err != nil {
			return nil, err
		}
		t := NewSimpleTable("Leave Requests", "Type", "From", "To", "Days", "Status")
		t.Empty = "No leave requests."
		for _, lr := range requests {
			t.AddRow(format.Title(lr.LeaveType), lr.StartDate, lr.EndDate, format.Days(lr.TotalDays), format.Title(lr.Status))
		}
		return t, nil

	case "/tasks":
		tasks, err := client.Tasks(ctx, "")
		if err != nil {
			return nil, err
		}
		t := NewSimpleTable("Tasks", "Title", "Due", "Priority", "Status")
		t.Empty = "No tasks assigned."
		for _, task := range tasks {
			t.AddRow(task.Title, task.DueDate, format.Title(task.Priority), format.Title(task.Status))
		}
		return t, nil

	case "/employees":
		employees, err := client.Employees(ctx, api.EmployeeListOptions{})
		if err != nil {
			return nil, err
		}
		t := NewSimpleTable(fmt.Sprintf("Employees (%d)", len(employees)),
			"Code", "Name", "Email", "Designation", "Department")
		t.Empty = "Directory is empty."
		for i := range employees {
			e := &employees[i]
			t.AddRow(e.EmployeeCode, e.User.FullName, e.User.Email, e.Designation, e.Department)
		}
		return t, nil

	case "/payroll":
		runs, err := client.PayrollRuns(ctx)
		if err != nil {
			return nil, err
		}
		t := NewSimpleTable("Payroll Runs", "Period", "Status", "Gross", "Net", "Employees")
		t.Empty = "No payroll runs."
		for i := range runs {
			r := &runs[i]
			t.AddRow(r.Period, format.Title(r.Status), format.KES(r.TotalGross),
				format.KES(r.TotalNet), fmt.Sprintf("%d", r.TotalEmployees))
		}
		return t, nil

	case "/hr/approvals":
		reqs, err := client.PendingApprovals(ctx)
		if err != nil {
			return nil, err
		}
		t := NewSimpleTable("Pending Onboarding Approvals",
			"Candidate", "Department", "Position", "HR", "Dept Head")
		t.Empty = "Nothing waiting on you."
		for i := range reqs {
			req := &reqs[i]
			department, position := "-", "-"
			if req.Department != nil {
				department = req.Department.Name
			}
			if req.JobPosition != nil {
				position = req.JobPosition.Title
			}
			name := req.User.FullName
			if name == "" {
				name = req.User.Email
			}
			t.AddRow(name, department, position,
				format.Title(req.HRStatus), format.Title(req.DeptHeadStatus))
		}
		return t, nil

	case "/reports":
		items, err := client.RecentActivity(ctx)
		if err != nil {
			return nil, err
		}
		t := NewSimpleTable("Recent Activity", "When", "Who", "What")
		t.Empty = "No recent activity."
		for i := range items {
			item := &items[i]
			t.AddRow(item.Timestamp, item.User.FullName, item.Description)
		}
		return t, nil

	default:
		return nil, fmt.Errorf("unknown page %q", path)
	}
}

// View implements tea.Model.
func (a App) View() string {
	var body string
	switch a.page {
	case pageMenu:
		body = a.menu.View()
	case pageDashboard:
		body = a.dashboard.View()
	case pageTable:
		body = a.table.View()
	case pageWizard:
		body = a.wizardPg.View()
	}

	header := a.styles.Header.Width(a.width).Render("kazi • " + a.store.FullName())
	footer := a.styles.Footer.Render("esc: menu • q: quit")
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// Run starts the interactive shell. themeUpdates may be nil; when set,
// each value restyles the running shell (config live-reload).
func Run(client *api.Client, store *session.Store, theme Theme, themeUpdates <-chan Theme) error {
	app := NewApp(client, store, theme)
	program := tea.NewProgram(app, tea.WithAltScreen())
	if themeUpdates != nil {
		go func() {
			for th := range themeUpdates {
				program.Send(ThemeChangedMsg{Theme: th})
			}
		}()
	}
	_, err := program.Run()
	return err
}

// RunWizard starts the shell directly on the provisioning wizard.
func RunWizard(client *api.Client, store *session.Store, theme Theme) error {
	app := NewApp(client, store, theme)
	app.startPath = "/onboarding"
	_, err := tea.NewProgram(app, tea.WithAltScreen()).Run()
	return err
}
