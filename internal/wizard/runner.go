package wizard

import (
	"context"
	"errors"
	"fmt"

	"kazi/internal/api"
	"kazi/internal/logging"
)

// ErrAlreadyProvisioned means the tenant finished onboarding earlier and
// the wizard must not open.
var ErrAlreadyProvisioned = errors.New("tenant is already provisioned")

// ErrStepsIncomplete means finish was attempted with open steps.
var ErrStepsIncomplete = errors.New("earlier steps are incomplete")

// Provisioner is the slice of the gateway the wizard drives. The concrete
// *api.Client satisfies it; tests substitute fakes.
type Provisioner interface {
	SetupStatus(ctx context.Context) (*api.OrganizationStatus, error)
	Initialize(ctx context.Context, input api.OrganizationInput) (*api.SetupResult, error)
	CreateDivision(ctx context.Context, name, description string) (*api.OrgUnit, error)
	CreateDepartment(ctx context.Context, input api.DepartmentInput) (*api.Department, error)
	CreateTeam(ctx context.Context, input api.TeamInput) (*api.OrgUnit, error)
	CreateJobPosition(ctx context.Context, input api.JobPositionInput) (*api.JobPosition, error)
	InviteTeamMembers(ctx context.Context, invites []api.TeamMemberInvite) ([]api.InvitationResult, error)
}

// OrgStructure is the step-two payload: divisions with their departments
// and teams, created top-down in one pass.
type OrgStructure struct {
	Divisions []Division
}

// Division groups departments under one name.
type Division struct {
	Name        string
	Description string
	Departments []Department
}

// Department groups teams under one name.
type Department struct {
	Name  string
	Teams []string
}

// CreatedDepartment records the server ids a department creation returned.
// ID keys later invitations; HRDepartmentID keys job positions.
type CreatedDepartment struct {
	Name           string
	ID             int
	HRDepartmentID int
}

// Runner executes wizard steps against the server. A failed call leaves
// the machine untouched: no step is marked complete, the cursor does not
// move and the company id keeps its previous value.
type Runner struct {
	machine     *Machine
	backend     Provisioner
	departments []CreatedDepartment
}

// NewRunner wires a machine to the gateway.
func NewRunner(machine *Machine, backend Provisioner) *Runner {
	return &Runner{machine: machine, backend: backend}
}

// Machine exposes the state for rendering.
func (r *Runner) Machine() *Machine { return r.machine }

// Departments lists the departments created at the structure step, in
// creation order.
func (r *Runner) Departments() []CreatedDepartment { return r.departments }

// CheckOpen guards wizard mount: a provisioned tenant gets
// ErrAlreadyProvisioned and the caller redirects to the dashboard.
func (r *Runner) CheckOpen(ctx context.Context) error {
	status, err := r.backend.SetupStatus(ctx)
	if err != nil {
		return err
	}
	if status.SetupComplete {
		return ErrAlreadyProvisioned
	}
	return nil
}

// SubmitSetup runs the company-info step and captures the company id.
func (r *Runner) SubmitSetup(ctx context.Context, input api.OrganizationInput) error {
	result, err := r.backend.Initialize(ctx, input)
	if err != nil {
		return err
	}
	r.machine.SetCompanyID(result.CompanyID)
	r.advance()
	return nil
}

// SubmitOrgStructure creates divisions, departments and teams top-down,
// recording each department's ids for the later steps. The step completes
// only when every unit was created.
func (r *Runner) SubmitOrgStructure(ctx context.Context, org OrgStructure) error {
	for _, div := range org.Divisions {
		created, err := r.backend.CreateDivision(ctx, div.Name, div.Description)
		if err != nil {
			return fmt.Errorf("division %q: %w", div.Name, err)
		}
		for _, dept := range div.Departments {
			createdDept, err := r.backend.CreateDepartment(ctx, api.DepartmentInput{
				Name:       dept.Name,
				DivisionID: created.ID,
			})
			if err != nil {
				return fmt.Errorf("department %q: %w", dept.Name, err)
			}
			r.departments = append(r.departments, CreatedDepartment{
				Name:           dept.Name,
				ID:             createdDept.ID,
				HRDepartmentID: createdDept.HRDepartmentID,
			})
			for _, team := range dept.Teams {
				input := api.TeamInput{Name: team, DepartmentID: createdDept.ID}
				if _, err := r.backend.CreateTeam(ctx, input); err != nil {
					return fmt.Errorf("team %q: %w", team, err)
				}
			}
		}
	}
	r.advance()
	return nil
}

// SubmitJobPositions creates the given positions. Callers set each
// position's DepartmentID from the structure step's results.
func (r *Runner) SubmitJobPositions(ctx context.Context, positions []api.JobPositionInput) error {
	for _, pos := range positions {
		if _, err := r.backend.CreateJobPosition(ctx, pos); err != nil {
			return fmt.Errorf("position %q: %w", pos.Title, err)
		}
	}
	r.advance()
	return nil
}

// SubmitInvitations sends every invitee in one request. The server answers
// per invitee, so a rejected address does not fail the batch; the caller
// gets the outcomes to render.
func (r *Runner) SubmitInvitations(ctx context.Context, invites []api.TeamMemberInvite) ([]api.InvitationResult, error) {
	results, err := r.backend.InviteTeamMembers(ctx, invites)
	if err != nil {
		return nil, err
	}
	r.advance()
	return results, nil
}

// Finish closes the wizard. Provisioning already happened step by step, so
// there is nothing left to send; the only check is that every earlier step
// actually completed.
func (r *Runner) Finish() error {
	for s := StepCompanyInfo; s < StepReview; s++ {
		if !r.machine.Completed(s) {
			return ErrStepsIncomplete
		}
	}
	r.advance()
	logging.Wizard("onboarding complete for company %d", r.machine.CompanyID())
	return nil
}

func (r *Runner) advance() {
	from := r.machine.Current()
	to := r.machine.Complete()
	logging.Wizard("step %q complete, now at %q", from.Title(), to.Title())
}
