package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures the last request and replies with a canned body.
type recorder struct {
	method string
	path   string
	query  string
	body   map[string]any
	reply  any
}

func (rec *recorder) server(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.query = r.URL.RawQuery
		rec.body = nil
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&rec.body)
		}
		if rec.reply == nil {
			rec.reply = map[string]any{}
		}
		json.NewEncoder(w).Encode(rec.reply)
	}))
}

func TestOTPEndpoints(t *testing.T) {
	rec := &recorder{}
	server := rec.server(t)
	defer server.Close()

	client := NewClient(server.URL)
	require.NoError(t, client.RequestOTP(context.Background(), "wanjiku@example.co.ke"))
	assert.Equal(t, "/auth/otp/request", rec.path)
	assert.Equal(t, "wanjiku@example.co.ke", rec.body["username"],
		"the OTP request names the account with a username field")

	rec.reply = TokenPair{Access: "a", Refresh: "r"}
	pair, err := client.VerifyOTP(context.Background(), "wanjiku@example.co.ke", "123456")
	require.NoError(t, err)
	assert.Equal(t, "/auth/otp/login", rec.path)
	assert.Equal(t, "123456", rec.body["otp"])
	assert.Equal(t, "a", pair.Access)
}

func TestLeaveRequestEndpoint(t *testing.T) {
	rec := &recorder{reply: LeaveRequest{ID: 5, Status: "pending"}}
	server := rec.server(t)
	defer server.Close()

	client := NewClient(server.URL)
	req, err := client.SubmitLeaveRequest(context.Background(), LeaveRequestInput{
		LeaveType: "annual",
		StartDate: "2026-09-07",
		EndDate:   "2026-09-11",
		TotalDays: 5,
		Reason:    "Family visit",
	})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/employee/leave/requests", rec.path)
	assert.Equal(t, "annual", rec.body["leave_type"])
	assert.Equal(t, "2026-09-07", rec.body["start_date"])
	assert.EqualValues(t, 5, rec.body["total_days"])
	assert.Equal(t, 5, req.ID)
}

func TestCancelLeaveCarriesReason(t *testing.T) {
	rec := &recorder{reply: LeaveRequest{ID: 12, Status: "cancelled"}}
	server := rec.server(t)
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.CancelLeaveRequest(context.Background(), 12, "Plans changed")
	require.NoError(t, err)
	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/employee/leave/requests/12/cancel", rec.path)
	assert.Equal(t, "Plans changed", rec.body["cancellation_reason"])
}

func TestAttendancePunchEndpoints(t *testing.T) {
	rec := &recorder{reply: AttendanceRecord{ID: 1, ActualCheckIn: "08:02"}}
	server := rec.server(t)
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.CheckIn(context.Background(), "Nairobi HQ")
	require.NoError(t, err)
	assert.Equal(t, "/employee/attendance/check-in", rec.path)
	assert.Equal(t, "Nairobi HQ", rec.body["check_in_location"])

	_, err = client.CheckOut(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "/employee/attendance/check-out", rec.path)
	_, hasLocation := rec.body["check_out_location"]
	assert.False(t, hasLocation, "empty location must be omitted")

	rec.reply = AttendanceStatus{Status: AttendanceCheckedIn}
	status, err := client.CurrentAttendance(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/employee/attendance/current", rec.path)
	assert.Equal(t, AttendanceCheckedIn, status.Status)
}

func TestEmployeeListFilters(t *testing.T) {
	rec := &recorder{reply: []Employee{}}
	server := rec.server(t)
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.Employees(context.Background(), EmployeeListOptions{
		Department: "Engineering",
		Status:     "active",
		Search:     "njeri",
	})
	require.NoError(t, err)
	assert.Equal(t, "/hr/employees", rec.path)
	assert.Equal(t, "department=Engineering&search=njeri&status=active", rec.query)
}

func TestEmployeePartialUpdateOmitsUnsetFields(t *testing.T) {
	rec := &recorder{reply: Employee{ID: 3}}
	server := rec.server(t)
	defer server.Close()

	designation := "Senior Technician"
	client := NewClient(server.URL)
	_, err := client.UpdateEmployee(context.Background(), 3, EmployeeInput{Designation: &designation})
	require.NoError(t, err)
	assert.Equal(t, http.MethodPatch, rec.method)
	assert.Equal(t, "/hr/employees/3", rec.path)
	assert.Equal(t, designation, rec.body["designation"])
	_, hasDept := rec.body["department"]
	assert.False(t, hasDept, "unset fields must not appear in a PATCH body")
}

func TestHRDashboardPaths(t *testing.T) {
	rec := &recorder{reply: HRDashboardStats{TotalEmployees: 41}}
	server := rec.server(t)
	defer server.Close()

	client := NewClient(server.URL)
	stats, err := client.HRStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/hr/dashboard/stats", rec.path)
	assert.Equal(t, 41, stats.TotalEmployees)

	rec.reply = []Activity{}
	_, err = client.RecentActivity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/hr/dashboard/recent-activity", rec.path)
}

func TestOnboardingSetupAndStructurePaths(t *testing.T) {
	rec := &recorder{reply: SetupResult{CompanyID: 77}}
	server := rec.server(t)
	defer server.Close()

	client := NewClient(server.URL)
	result, err := client.Initialize(context.Background(), OrganizationInput{
		CompanyName:   "Acme Ltd",
		AdminEmail:    "admin@acme.co.ke",
		AdminFullName: "Grace Njeri",
	})
	require.NoError(t, err)
	assert.Equal(t, "/onboarding/setup", rec.path)
	assert.Equal(t, "Acme Ltd", rec.body["company_name"])
	assert.Equal(t, "admin@acme.co.ke", rec.body["admin_email"])
	assert.Equal(t, 77, result.CompanyID)

	rec.reply = OrgUnit{ID: 11}
	_, err = client.CreateDivision(context.Background(), "Operations", "")
	require.NoError(t, err)
	assert.Equal(t, "/onboarding/divisions", rec.path)
	assert.Equal(t, "Operations", rec.body["name"])

	rec.reply = Department{ID: 21, HRDepartmentID: 31}
	dept, err := client.CreateDepartment(context.Background(), DepartmentInput{
		Name:       "Field Services",
		DivisionID: 11,
	})
	require.NoError(t, err)
	assert.Equal(t, "/onboarding/departments", rec.path)
	assert.EqualValues(t, 11, rec.body["division_id"])
	assert.Equal(t, 31, dept.HRDepartmentID)

	rec.reply = OrgUnit{ID: 41}
	_, err = client.CreateTeam(context.Background(), TeamInput{Name: "Nairobi North", DepartmentID: 21})
	require.NoError(t, err)
	assert.Equal(t, "/onboarding/teams", rec.path)
	assert.EqualValues(t, 21, rec.body["department_id"])

	rec.reply = OrgUnit{ID: 51}
	_, err = client.CreateHRDepartment(context.Background(), HRDepartmentInput{Name: "Engineering", Code: "ENG"})
	require.NoError(t, err)
	assert.Equal(t, "/onboarding/hr-departments", rec.path)
	assert.Equal(t, "ENG", rec.body["code"])
}

func TestBulkInviteIsOneRequest(t *testing.T) {
	rec := &recorder{reply: []InvitationResult{
		{Email: "wanjiku@example.co.ke", Status: "invited"},
		{Email: "otieno@example.co.ke", Status: "already_exists"},
	}}
	server := rec.server(t)
	defer server.Close()

	client := NewClient(server.URL)
	results, err := client.InviteTeamMembers(context.Background(), []TeamMemberInvite{
		{Email: "wanjiku@example.co.ke", FullName: "Wanjiku Kamau", DepartmentID: 21, JobPositionID: 5},
		{Email: "otieno@example.co.ke", FullName: "Brian Otieno", DepartmentID: 21, JobPositionID: 5},
	})
	require.NoError(t, err)
	assert.Equal(t, "/onboarding/invite", rec.path)
	invites, ok := rec.body["invites"].([]any)
	require.True(t, ok, "invitees travel in a single invites array")
	assert.Len(t, invites, 2)
	require.Len(t, results, 2)
	assert.Equal(t, "already_exists", results[1].Status)
}

func TestApprovalChainPaths(t *testing.T) {
	rec := &recorder{}
	server := rec.server(t)
	defer server.Close()

	client := NewClient(server.URL)
	require.NoError(t, client.ApproveHR(context.Background(), 8, "Looks good"))
	assert.Equal(t, "/onboarding/8/hr-approve", rec.path)
	assert.Equal(t, "Looks good", rec.body["comments"])

	require.NoError(t, client.RejectHR(context.Background(), 8, "Missing documents"))
	assert.Equal(t, "/onboarding/8/hr-reject", rec.path)
	assert.Equal(t, "Missing documents", rec.body["reason"])

	require.NoError(t, client.ApproveDeptHead(context.Background(), 8, ""))
	assert.Equal(t, "/onboarding/8/dept-approve", rec.path)

	require.NoError(t, client.RejectDeptHead(context.Background(), 8, "Role filled"))
	assert.Equal(t, "/onboarding/8/dept-reject", rec.path)
	assert.Equal(t, "Role filled", rec.body["reason"])

	rec.reply = []OnboardingRequest{{ID: 8, Status: OnboardingPending}}
	reqs, err := client.PendingApprovals(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/onboarding/pending-approvals", rec.path)
	require.Len(t, reqs, 1)
	assert.Equal(t, OnboardingPending, reqs[0].Status)
}

func TestPayrollLifecyclePaths(t *testing.T) {
	rec := &recorder{reply: PayrollRun{ID: 4, Status: "draft"}}
	server := rec.server(t)
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.CalculatePayroll(context.Background(), "September 2026", "September", 2026)
	require.NoError(t, err)
	assert.Equal(t, "/payroll/calculate", rec.path)
	assert.Equal(t, "September", rec.body["month"])
	assert.EqualValues(t, 2026, rec.body["year"])

	_, err = client.ApprovePayrollRun(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "/payroll/runs/4/approve", rec.path)

	_, err = client.ProcessPayrollRun(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "/payroll/runs/4/process", rec.path)

	rec.reply = []EmployeePayout{}
	_, err = client.Payouts(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, "/payroll/runs/4/payouts", rec.path)
}

func TestDashboardBundleFailsWhenOneLegFails(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/employee/dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(EmployeeDashboardStats{PendingTasks: 2})
	})
	mux.HandleFunc("/employee/leave/requests", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"detail": "leave service down"})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.URL)
	_, err := client.EmployeeDashboard(context.Background())
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "leave service down", se.Detail)
}

func TestDashboardBundleMergesBothLegs(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/employee/dashboard/stats", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(EmployeeDashboardStats{PendingTasks: 2, AttendanceRate: 96})
	})
	mux.HandleFunc("/employee/leave/requests", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		json.NewEncoder(w).Encode([]LeaveRequest{{ID: 1, Status: "approved"}})
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := NewClient(server.URL)
	dash, err := client.EmployeeDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, dash.Stats.PendingTasks)
	require.Len(t, dash.RecentLeave, 1)
	assert.Equal(t, "approved", dash.RecentLeave[0].Status)
}
