package wizard

import (
	"context"
	"errors"
	"testing"

	"kazi/internal/api"
)

// fakeBackend counts calls and fails on demand.
type fakeBackend struct {
	status    api.OrganizationStatus
	statusErr error
	failSetup bool
	failTeam  bool

	setups      int
	divisions   int
	depts       int
	teams       int
	positions   int
	inviteCalls int
	lastInvites []api.TeamMemberInvite
}

var errBoom = errors.New("boom")

func (f *fakeBackend) SetupStatus(ctx context.Context) (*api.OrganizationStatus, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return &f.status, nil
}

func (f *fakeBackend) Initialize(ctx context.Context, input api.OrganizationInput) (*api.SetupResult, error) {
	if f.failSetup {
		return nil, errBoom
	}
	f.setups++
	return &api.SetupResult{CompanyID: 77, Message: "created"}, nil
}

func (f *fakeBackend) CreateDivision(ctx context.Context, name, description string) (*api.OrgUnit, error) {
	f.divisions++
	return &api.OrgUnit{ID: 10 + f.divisions}, nil
}

func (f *fakeBackend) CreateDepartment(ctx context.Context, input api.DepartmentInput) (*api.Department, error) {
	f.depts++
	return &api.Department{ID: 20 + f.depts, HRDepartmentID: 30 + f.depts}, nil
}

func (f *fakeBackend) CreateTeam(ctx context.Context, input api.TeamInput) (*api.OrgUnit, error) {
	if f.failTeam {
		return nil, errBoom
	}
	f.teams++
	return &api.OrgUnit{ID: 40 + f.teams}, nil
}

func (f *fakeBackend) CreateJobPosition(ctx context.Context, input api.JobPositionInput) (*api.JobPosition, error) {
	f.positions++
	return &api.JobPosition{ID: 50 + f.positions, MappedRole: input.RBACRoleName}, nil
}

func (f *fakeBackend) InviteTeamMembers(ctx context.Context, invites []api.TeamMemberInvite) ([]api.InvitationResult, error) {
	f.inviteCalls++
	f.lastInvites = invites
	results := make([]api.InvitationResult, len(invites))
	for i, inv := range invites {
		results[i] = api.InvitationResult{Email: inv.Email, Status: "invited"}
	}
	return results, nil
}

func TestCheckOpenRedirectsProvisionedTenant(t *testing.T) {
	t.Parallel()

	r := NewRunner(NewMachine(), &fakeBackend{status: api.OrganizationStatus{SetupComplete: true}})
	if err := r.CheckOpen(context.Background()); !errors.Is(err, ErrAlreadyProvisioned) {
		t.Fatalf("expected ErrAlreadyProvisioned, got %v", err)
	}

	r = NewRunner(NewMachine(), &fakeBackend{})
	if err := r.CheckOpen(context.Background()); err != nil {
		t.Fatalf("fresh tenant should open: %v", err)
	}
}

func TestSubmitSetupCapturesCompanyID(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	r := NewRunner(NewMachine(), backend)
	input := api.OrganizationInput{CompanyName: "Acme Ltd", AdminEmail: "admin@acme.co.ke"}
	if err := r.SubmitSetup(context.Background(), input); err != nil {
		t.Fatal(err)
	}
	if got := r.Machine().CompanyID(); got != 77 {
		t.Errorf("company id not captured, got %d", got)
	}
	if r.Machine().Current() != StepOrgStructure {
		t.Errorf("cursor should be at step 1, got %v", r.Machine().Current())
	}
}

func TestFailedCallLeavesStateUntouched(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{failSetup: true}
	r := NewRunner(NewMachine(), backend)
	input := api.OrganizationInput{CompanyName: "Acme Ltd"}
	if err := r.SubmitSetup(context.Background(), input); err == nil {
		t.Fatal("expected error")
	}
	m := r.Machine()
	if m.Current() != StepCompanyInfo || m.Completed(StepCompanyInfo) || m.CompanyID() != 0 {
		t.Errorf("machine changed after failed call: cursor=%v completed=%v id=%d",
			m.Current(), m.Completed(StepCompanyInfo), m.CompanyID())
	}
}

func TestOrgStructureRecordsDepartmentIDs(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	m := NewMachine()
	m.SetCompanyID(77)
	m.completed[StepCompanyInfo] = true
	m.current = StepOrgStructure

	r := NewRunner(m, backend)
	org := OrgStructure{Divisions: []Division{{
		Name:        "Operations",
		Departments: []Department{{Name: "Field Services", Teams: []string{"Nairobi North"}}},
	}}}
	if err := r.SubmitOrgStructure(context.Background(), org); err != nil {
		t.Fatal(err)
	}
	depts := r.Departments()
	if len(depts) != 1 {
		t.Fatalf("expected one recorded department, got %d", len(depts))
	}
	if depts[0].ID != 21 || depts[0].HRDepartmentID != 31 {
		t.Errorf("department ids not captured: %+v", depts[0])
	}
}

func TestPartialOrgFailureDoesNotComplete(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{failTeam: true}
	m := NewMachine()
	m.SetCompanyID(77)
	m.completed[StepCompanyInfo] = true
	m.current = StepOrgStructure

	r := NewRunner(m, backend)
	org := OrgStructure{Divisions: []Division{{
		Name:        "Operations",
		Departments: []Department{{Name: "Field Services", Teams: []string{"Nairobi North"}}},
	}}}
	if err := r.SubmitOrgStructure(context.Background(), org); err == nil {
		t.Fatal("expected error")
	}
	if m.Completed(StepOrgStructure) || m.Current() != StepOrgStructure {
		t.Error("org step must stay incomplete after a mid-pass failure")
	}
}

func TestInvitationsTravelInOneBatch(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	m := NewMachine()
	m.SetCompanyID(77)
	for s := StepCompanyInfo; s < StepInvitations; s++ {
		m.completed[s] = true
	}
	m.current = StepInvitations

	r := NewRunner(m, backend)
	results, err := r.SubmitInvitations(context.Background(), []api.TeamMemberInvite{
		{Email: "wanjiku@example.co.ke", FullName: "Wanjiku Kamau", DepartmentID: 21, JobPositionID: 5},
		{Email: "otieno@example.co.ke", FullName: "Brian Otieno", DepartmentID: 21, JobPositionID: 5},
	})
	if err != nil {
		t.Fatal(err)
	}
	if backend.inviteCalls != 1 {
		t.Errorf("all invitees belong in one request, got %d calls", backend.inviteCalls)
	}
	if len(backend.lastInvites) != 2 || len(results) != 2 {
		t.Errorf("batch lost invitees: sent=%d results=%d", len(backend.lastInvites), len(results))
	}
	if !m.Completed(StepInvitations) {
		t.Error("invitation step should be complete")
	}
}

func TestFinishGuardsIncompleteSteps(t *testing.T) {
	t.Parallel()

	m := NewMachine()
	m.current = StepReview
	m.completed[StepCompanyInfo] = true

	r := NewRunner(m, &fakeBackend{})
	if err := r.Finish(); !errors.Is(err, ErrStepsIncomplete) {
		t.Fatalf("expected ErrStepsIncomplete, got %v", err)
	}
}

func TestFinishIsLocalOnly(t *testing.T) {
	t.Parallel()

	backend := &fakeBackend{}
	m := NewMachine()
	m.SetCompanyID(77)
	for s := StepCompanyInfo; s < StepReview; s++ {
		m.completed[s] = true
	}
	m.current = StepReview

	r := NewRunner(m, backend)
	if err := r.Finish(); err != nil {
		t.Fatal(err)
	}
	if !m.AllCompleted() {
		t.Error("all steps should be complete after finish")
	}
	// Provisioning happened step by step; finishing sends nothing.
	total := backend.setups + backend.divisions + backend.depts + backend.teams + backend.positions + backend.inviteCalls
	if total != 0 {
		t.Errorf("finish must not call the server, saw %d calls", total)
	}
}
