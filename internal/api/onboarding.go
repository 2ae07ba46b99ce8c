package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Tenant provisioning endpoints driven by the setup wizard, plus the
// two-stage approval chain for invited employees.

// OrganizationStatus reports how far tenant provisioning has progressed.
// SetupComplete is the flag that closes the wizard for good.
type OrganizationStatus struct {
	CompanyExists        bool   `json:"company_exists"`
	CompanyName          string `json:"company_name,omitempty"`
	SetupComplete        bool   `json:"setup_complete"`
	TotalDivisions       int    `json:"total_divisions"`
	TotalDepartments     int    `json:"total_departments"`
	TotalTeams           int    `json:"total_teams"`
	TotalEmployees       int    `json:"total_employees"`
	HRDepartmentsCreated int    `json:"hr_departments_created"`
	JobPositionsCreated  int    `json:"job_positions_created"`
	WorkflowsConfigured  bool   `json:"workflows_configured"`
}

// OrganizationInput is the step-one company registration payload. Country
// and Timezone default server-side to Kenya / Africa-Nairobi when empty.
type OrganizationInput struct {
	CompanyName   string `json:"company_name"`
	AdminEmail    string `json:"admin_email"`
	AdminFullName string `json:"admin_full_name"`
	AdminPhone    string `json:"admin_phone,omitempty"`
	Industry      string `json:"industry,omitempty"`
	Country       string `json:"country,omitempty"`
	Timezone      string `json:"timezone,omitempty"`
}

// SetupResult is the company-registration response. CompanyID threads
// through every later provisioning call.
type SetupResult struct {
	CompanyID int    `json:"company_id"`
	Message   string `json:"message"`
}

// OrgUnit is the response shape shared by division and team creation.
type OrgUnit struct {
	ID      int    `json:"id"`
	Message string `json:"message"`
}

// Department is the department-creation response. HRDepartmentID points at
// the HR-side department record the server provisions alongside.
type Department struct {
	ID             int    `json:"id"`
	HRDepartmentID int    `json:"hr_department_id"`
	Message        string `json:"message"`
}

// DepartmentInput creates a department under a division.
type DepartmentInput struct {
	Name        string `json:"name"`
	DivisionID  int    `json:"division_id"`
	Description string `json:"description,omitempty"`
	HeadEmail   string `json:"head_email,omitempty"`
}

// TeamInput creates a team under a department.
type TeamInput struct {
	Name         string `json:"name"`
	DepartmentID int    `json:"department_id"`
	Description  string `json:"description,omitempty"`
	LeadEmail    string `json:"lead_email,omitempty"`
}

// HRDepartmentInput creates an HR department directly, outside the
// division/department tree.
type HRDepartmentInput struct {
	Name        string `json:"name"`
	Code        string `json:"code"`
	Description string `json:"description,omitempty"`
}

// JobPositionInput defines a role employees can be invited into. The
// rbac_role_name binds the position to a platform role.
type JobPositionInput struct {
	Title            string `json:"title"`
	Code             string `json:"code,omitempty"`
	DepartmentID     int    `json:"department_id"`
	Description      string `json:"description,omitempty"`
	Level            string `json:"level"`
	RBACRoleName     string `json:"rbac_role_name"`
	RequiresApproval bool   `json:"requires_approval,omitempty"`
}

// JobPosition is the job-position creation response.
type JobPosition struct {
	ID         int    `json:"id"`
	MappedRole string `json:"mapped_role"`
	Message    string `json:"message"`
}

// JobPositionSummary is one entry in the job-position listing.
type JobPositionSummary struct {
	ID           int    `json:"id"`
	Title        string `json:"title"`
	Code         string `json:"code,omitempty"`
	DepartmentID int    `json:"department_id"`
	Level        string `json:"level"`
	RBACRoleName string `json:"rbac_role_name"`
}

// TeamMemberInvite is one invitee in a bulk invitation.
type TeamMemberInvite struct {
	Email         string `json:"email"`
	FullName      string `json:"full_name"`
	Phone         string `json:"phone,omitempty"`
	DepartmentID  int    `json:"department_id"`
	TeamID        int    `json:"team_id,omitempty"`
	JobPositionID int    `json:"job_position_id"`
	CustomMessage string `json:"custom_message,omitempty"`
}

// InvitationResult is the per-invitee outcome of a bulk invitation.
// Status is one of invited, already_exists or error.
type InvitationResult struct {
	Email               string `json:"email"`
	FullName            string `json:"full_name"`
	Status              string `json:"status"`
	Message             string `json:"message,omitempty"`
	OnboardingRequestID int    `json:"onboarding_request_id,omitempty"`
}

// OnboardingUser identifies the invited person on an approval request.
type OnboardingUser struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// OnboardingRef is a named record attached to an approval request.
type OnboardingRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// OnboardingPosition is the job position attached to an approval request.
type OnboardingPosition struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// OnboardingRequest is one invited employee moving through the two-stage
// approval chain: HR first, then the department head.
type OnboardingRequest struct {
	ID             int                 `json:"id"`
	User           OnboardingUser      `json:"user"`
	Department     *OnboardingRef      `json:"department,omitempty"`
	JobPosition    *OnboardingPosition `json:"job_position,omitempty"`
	RequestedRole  *OnboardingRef      `json:"requested_role,omitempty"`
	Status         string              `json:"status"`
	HRStatus       string              `json:"hr_status"`
	DeptHeadStatus string              `json:"dept_head_status"`
	HRComments     string              `json:"hr_comments,omitempty"`
	CreatedAt      string              `json:"created_at,omitempty"`
}

// Onboarding request statuses.
const (
	OnboardingPending          = "PENDING"
	OnboardingHRApproved       = "HR_APPROVED"
	OnboardingDeptHeadApproved = "DEPT_HEAD_APPROVED"
	OnboardingCompleted        = "COMPLETED"
	OnboardingRejected         = "REJECTED"
)

// SetupStatus reports whether this tenant already finished the wizard.
func (c *Client) SetupStatus(ctx context.Context) (*OrganizationStatus, error) {
	var status OrganizationStatus
	if err := c.get(ctx, "/onboarding/status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Initialize registers the tenant company and its admin account.
func (c *Client) Initialize(ctx context.Context, input OrganizationInput) (*SetupResult, error) {
	var result SetupResult
	if err := c.post(ctx, "/onboarding/setup", input, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateDivision adds a top-level org unit.
func (c *Client) CreateDivision(ctx context.Context, name, description string) (*OrgUnit, error) {
	body := struct {
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	}{Name: name, Description: description}

	var unit OrgUnit
	if err := c.post(ctx, "/onboarding/divisions", body, &unit); err != nil {
		return nil, err
	}
	return &unit, nil
}

// CreateDepartment adds a department under a division. The server creates
// a matching HR department and returns both ids.
func (c *Client) CreateDepartment(ctx context.Context, input DepartmentInput) (*Department, error) {
	var dept Department
	if err := c.post(ctx, "/onboarding/departments", input, &dept); err != nil {
		return nil, err
	}
	return &dept, nil
}

// CreateTeam adds a team under a department.
func (c *Client) CreateTeam(ctx context.Context, input TeamInput) (*OrgUnit, error) {
	var unit OrgUnit
	if err := c.post(ctx, "/onboarding/teams", input, &unit); err != nil {
		return nil, err
	}
	return &unit, nil
}

// CreateHRDepartment adds an HR department by name and code.
func (c *Client) CreateHRDepartment(ctx context.Context, input HRDepartmentInput) (*OrgUnit, error) {
	var unit OrgUnit
	if err := c.post(ctx, "/onboarding/hr-departments", input, &unit); err != nil {
		return nil, err
	}
	return &unit, nil
}

// CreateJobPosition defines a role employees can be invited into.
func (c *Client) CreateJobPosition(ctx context.Context, input JobPositionInput) (*JobPosition, error) {
	var pos JobPosition
	if err := c.post(ctx, "/onboarding/job-positions", input, &pos); err != nil {
		return nil, err
	}
	return &pos, nil
}

// JobPositions lists defined positions, optionally for one department.
func (c *Client) JobPositions(ctx context.Context, departmentID int) ([]JobPositionSummary, error) {
	query := url.Values{}
	if departmentID > 0 {
		query.Set("department_id", strconv.Itoa(departmentID))
	}
	var positions []JobPositionSummary
	if err := c.get(ctx, "/onboarding/job-positions", query, &positions); err != nil {
		return nil, err
	}
	return positions, nil
}

// InviteTeamMembers sends one bulk invitation request. The server replies
// with a per-invitee outcome rather than failing the whole batch.
func (c *Client) InviteTeamMembers(ctx context.Context, invites []TeamMemberInvite) ([]InvitationResult, error) {
	body := struct {
		Invites []TeamMemberInvite `json:"invites"`
	}{Invites: invites}

	var results []InvitationResult
	if err := c.post(ctx, "/onboarding/invite", body, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// ResendInvitation re-sends a pending invitation email.
func (c *Client) ResendInvitation(ctx context.Context, id int) error {
	return c.post(ctx, fmt.Sprintf("/onboarding/invite/resend/%d", id), nil, nil)
}

// PendingApprovals lists onboarding requests awaiting the caller's stage
// of the approval chain.
func (c *Client) PendingApprovals(ctx context.Context) ([]OnboardingRequest, error) {
	var reqs []OnboardingRequest
	if err := c.get(ctx, "/onboarding/pending-approvals", nil, &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// ApproveHR records HR's approval on an onboarding request.
func (c *Client) ApproveHR(ctx context.Context, id int, comments string) error {
	body := struct {
		Comments string `json:"comments,omitempty"`
	}{Comments: comments}
	return c.post(ctx, fmt.Sprintf("/onboarding/%d/hr-approve", id), body, nil)
}

// RejectHR records HR's rejection. A reason is required.
func (c *Client) RejectHR(ctx context.Context, id int, reason string) error {
	body := struct {
		Comments string `json:"comments,omitempty"`
		Reason   string `json:"reason"`
	}{Comments: reason, Reason: reason}
	return c.post(ctx, fmt.Sprintf("/onboarding/%d/hr-reject", id), body, nil)
}

// ApproveDeptHead records the department head's approval.
func (c *Client) ApproveDeptHead(ctx context.Context, id int, comments string) error {
	body := struct {
		Comments string `json:"comments,omitempty"`
	}{Comments: comments}
	return c.post(ctx, fmt.Sprintf("/onboarding/%d/dept-approve", id), body, nil)
}

// RejectDeptHead records the department head's rejection. A reason is
// required.
func (c *Client) RejectDeptHead(ctx context.Context, id int, reason string) error {
	body := struct {
		Comments string `json:"comments,omitempty"`
		Reason   string `json:"reason"`
	}{Comments: reason, Reason: reason}
	return c.post(ctx, fmt.Sprintf("/onboarding/%d/dept-reject", id), body, nil)
}
