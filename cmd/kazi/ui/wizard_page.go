package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"kazi/internal/api"
	"kazi/internal/validate"
	"kazi/internal/wizard"
)

// Messages emitted by the wizard page.

// WizardFinishedMsg is sent once the tenant is provisioned.
type WizardFinishedMsg struct{}

// WizardRedirectMsg is sent when the tenant was already provisioned and
// the wizard must not open.
type WizardRedirectMsg struct{ Path string }

type wizardStepDoneMsg struct{}
type wizardErrMsg struct{ err error }
type wizardOpenCheckMsg struct{ err error }

const completionNote = `# Setup complete

Your company is provisioned. Invited employees will receive their
sign-in instructions by email.

Press any key to go to the dashboard.`

// WizardPageModel walks an admin through tenant provisioning: company
// info, org structure, job positions, invitations, review.
type WizardPageModel struct {
	styles  Styles
	runner  *wizard.Runner
	inputs  []textinput.Model
	labels  []string
	focus   int
	spinner spinner.Model
	busy    bool
	checked bool
	errText string
	done    bool
	width   int
	height  int
}

// NewWizardPageModel builds the wizard over a runner.
func NewWizardPageModel(runner *wizard.Runner, styles Styles) WizardPageModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := WizardPageModel{
		styles:  styles,
		runner:  runner,
		spinner: sp,
	}
	m.buildInputs()
	return m
}

// SetSize resizes the page.
func (m *WizardPageModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init checks with the server that the wizard may open at all.
func (m WizardPageModel) Init() tea.Cmd {
	runner := m.runner
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return wizardOpenCheckMsg{err: runner.CheckOpen(context.Background())}
	})
}

// buildInputs rebuilds the form for the current step.
func (m *WizardPageModel) buildInputs() {
	switch m.runner.Machine().Current() {
	case wizard.StepCompanyInfo:
		m.labels = []string{"Company name", "Admin email", "Admin full name", "Admin phone", "Industry"}
	case wizard.StepOrgStructure:
		m.labels = []string{"Division", "Department", "Teams (comma separated)"}
	case wizard.StepJobPositions:
		m.labels = []string{"Position titles (comma separated)", "Level", "Platform role"}
	case wizard.StepInvitations:
		m.labels = []string{"Email", "Full name", "Job position ID"}
	default:
		m.labels = nil
	}

	m.inputs = make([]textinput.Model, len(m.labels))
	for i, label := range m.labels {
		in := textinput.New()
		in.Placeholder = label
		in.CharLimit = 120
		in.Width = 48
		if i == 0 {
			in.Focus()
		}
		m.inputs[i] = in
	}
	m.focus = 0
}

func (m *WizardPageModel) setFocus(idx int) {
	m.focus = idx
	for i := range m.inputs {
		if i == idx {
			m.inputs[i].Focus()
		} else {
			m.inputs[i].Blur()
		}
	}
}

func (m *WizardPageModel) value(i int) string {
	return strings.TrimSpace(m.inputs[i].Value())
}

// Update implements tea.Model.
func (m WizardPageModel) Update(msg tea.Msg) (WizardPageModel, tea.Cmd) {
	switch msg := msg.(type) {
	case wizardOpenCheckMsg:
		m.checked = true
		if msg.err == wizard.ErrAlreadyProvisioned {
			return m, func() tea.Msg { return WizardRedirectMsg{Path: "/dashboard"} }
		}
		if msg.err != nil {
			m.errText = api.Message(msg.err)
		}
		return m, nil

	case wizardStepDoneMsg:
		m.busy = false
		m.errText = ""
		m.buildInputs()
		return m, nil

	case wizardErrMsg:
		// A failed call changed nothing server-side we can trust, and the
		// machine was left untouched; the form stays put for a retry.
		m.busy = false
		m.errText = api.Message(msg.err)
		return m, nil

	case WizardFinishedMsg:
		m.busy = false
		m.done = true
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.done {
			return m, func() tea.Msg { return NavigateMsg{Path: "/dashboard", Label: "Dashboard"} }
		}
		if m.busy {
			return m, nil
		}
		switch msg.String() {
		case "esc":
			// Back is a no-op on the first step.
			m.runner.Machine().Back()
			m.errText = ""
			m.buildInputs()
			return m, nil
		case "tab", "down":
			if len(m.inputs) > 0 {
				m.setFocus((m.focus + 1) % len(m.inputs))
			}
			return m, nil
		case "shift+tab", "up":
			if len(m.inputs) > 0 {
				m.setFocus((m.focus + len(m.inputs) - 1) % len(m.inputs))
			}
			return m, nil
		case "enter":
			if m.focus < len(m.inputs)-1 {
				m.setFocus(m.focus + 1)
				return m, nil
			}
			return m.submit()
		}
	}

	if len(m.inputs) > 0 {
		var cmd tea.Cmd
		m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// submit validates the current form and runs the step against the server.
func (m WizardPageModel) submit() (WizardPageModel, tea.Cmd) {
	runner := m.runner
	switch runner.Machine().Current() {
	case wizard.StepCompanyInfo:
		input := api.OrganizationInput{
			CompanyName:   m.value(0),
			AdminEmail:    m.value(1),
			AdminFullName: m.value(2),
			AdminPhone:    m.value(3),
			Industry:      m.value(4),
		}
		if err := validate.Required("company name", input.CompanyName); err != nil {
			m.errText = err.Error()
			return m, nil
		}
		if err := validate.Email(input.AdminEmail); err != nil {
			m.errText = err.Error()
			return m, nil
		}
		if err := validate.Required("admin full name", input.AdminFullName); err != nil {
			m.errText = err.Error()
			return m, nil
		}
		if input.AdminPhone != "" {
			if err := validate.Phone(input.AdminPhone); err != nil {
				m.errText = err.Error()
				return m, nil
			}
		}
		return m.run(func() error { return runner.SubmitSetup(context.Background(), input) })

	case wizard.StepOrgStructure:
		division := m.value(0)
		department := m.value(1)
		if err := validate.Required("division", division); err != nil {
			m.errText = err.Error()
			return m, nil
		}
		if err := validate.Required("department", department); err != nil {
			m.errText = err.Error()
			return m, nil
		}
		org := wizard.OrgStructure{Divisions: []wizard.Division{{
			Name: division,
			Departments: []wizard.Department{{
				Name:  department,
				Teams: splitList(m.value(2)),
			}},
		}}}
		return m.run(func() error { return runner.SubmitOrgStructure(context.Background(), org) })

	case wizard.StepJobPositions:
		titles := splitList(m.value(0))
		if len(titles) == 0 {
			m.errText = "at least one position title is required"
			return m, nil
		}
		level := m.value(1)
		if level == "" {
			level = "entry"
		}
		role := m.value(2)
		if role == "" {
			role = "Employee"
		}
		// Positions hang off the HR-side department record created at the
		// structure step.
		deptID := 0
		if depts := runner.Departments(); len(depts) > 0 {
			deptID = depts[0].HRDepartmentID
		}
		positions := make([]api.JobPositionInput, 0, len(titles))
		for _, title := range titles {
			positions = append(positions, api.JobPositionInput{
				Title:        title,
				DepartmentID: deptID,
				Level:        level,
				RBACRoleName: role,
			})
		}
		return m.run(func() error { return runner.SubmitJobPositions(context.Background(), positions) })

	case wizard.StepInvitations:
		invite := api.TeamMemberInvite{
			Email:    m.value(0),
			FullName: m.value(1),
		}
		if err := validate.Email(invite.Email); err != nil {
			m.errText = err.Error()
			return m, nil
		}
		if id, err := strconv.Atoi(m.value(2)); err == nil {
			invite.JobPositionID = id
		} else {
			m.errText = "job position id must be a number"
			return m, nil
		}
		if depts := runner.Departments(); len(depts) > 0 {
			invite.DepartmentID = depts[0].ID
		}
		return m.run(func() error {
			results, err := runner.SubmitInvitations(context.Background(), []api.TeamMemberInvite{invite})
			if err != nil {
				return err
			}
			for _, res := range results {
				if res.Status == "error" {
					return fmt.Errorf("%s: %s", res.Email, res.Message)
				}
			}
			return nil
		})

	case wizard.StepReview:
		for s := wizard.StepCompanyInfo; s < wizard.StepReview; s++ {
			if !runner.Machine().Completed(s) {
				// Advancing from the last step with open work jumps the
				// cursor back to the lowest incomplete step.
				runner.Machine().Complete()
				m.errText = ""
				m.buildInputs()
				return m, nil
			}
		}
		// Everything was provisioned step by step; finishing is local.
		if err := runner.Finish(); err != nil {
			m.errText = api.Message(err)
			return m, nil
		}
		return m, func() tea.Msg { return WizardFinishedMsg{} }
	}
	return m, nil
}

func (m WizardPageModel) run(step func() error) (WizardPageModel, tea.Cmd) {
	return m.run2(func() tea.Msg {
		if err := step(); err != nil {
			return wizardErrMsg{err: err}
		}
		return wizardStepDoneMsg{}
	})
}

func (m WizardPageModel) run2(cmd tea.Cmd) (WizardPageModel, tea.Cmd) {
	m.busy = true
	m.errText = ""
	return m, tea.Batch(m.spinner.Tick, cmd)
}

// View implements tea.Model.
func (m WizardPageModel) View() string {
	if m.done {
		return m.styles.Content.Render(RenderMarkdown(completionNote, m.width-4))
	}

	machine := m.runner.Machine()
	var sb strings.Builder

	sb.WriteString(m.styles.Title.Render("Company Setup"))
	sb.WriteString("\n")
	sb.WriteString(m.progress())
	sb.WriteString("\n\n")

	current := machine.Current()
	sb.WriteString(m.styles.Bold.Render(current.Title()))
	sb.WriteString("\n\n")

	if current == wizard.StepReview {
		sb.WriteString(m.reviewSummary())
	} else {
		for i, in := range m.inputs {
			label := m.styles.Muted.Render(m.labels[i])
			sb.WriteString(label + "\n" + m.styles.Input.Render(in.View()) + "\n\n")
		}
	}

	if m.busy {
		sb.WriteString(m.spinner.View() + " " + m.styles.Muted.Render("Talking to the server..."))
		sb.WriteString("\n")
	}
	if m.errText != "" {
		sb.WriteString(m.styles.Error.Render(m.errText))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(m.styles.Footer.Render("enter: continue • esc: back • tab: next field"))

	return m.styles.Content.Render(sb.String())
}

// progress renders the five step pips with completion marks.
func (m WizardPageModel) progress() string {
	machine := m.runner.Machine()
	parts := make([]string, 0, 5)
	for _, s := range wizard.Steps() {
		label := s.Title()
		switch {
		case s == machine.Current():
			parts = append(parts, m.styles.Badge.Render(label))
		case machine.Completed(s):
			parts = append(parts, m.styles.Success.Render("✓ "+label))
		default:
			parts = append(parts, m.styles.Muted.Render(label))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, strings.Join(parts, m.styles.Muted.Render(" › ")))
}

func (m WizardPageModel) reviewSummary() string {
	machine := m.runner.Machine()
	var sb strings.Builder
	for _, s := range wizard.Steps() {
		if s == wizard.StepReview {
			continue
		}
		mark := m.styles.Error.Render("✗")
		if machine.Completed(s) {
			mark = m.styles.Success.Render("✓")
		}
		sb.WriteString(mark + " " + s.Title() + "\n")
	}
	sb.WriteString("\n")
	sb.WriteString(m.styles.Body.Render("Press enter to complete setup."))
	sb.WriteString("\n")
	return sb.String()
}

func splitList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
