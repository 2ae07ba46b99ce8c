package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
)

// Self-service endpoints: everything under /employee/ acts on the
// signed-in user's own records.

// EmployeeDashboardStats is the headline card data for the employee home.
type EmployeeDashboardStats struct {
	PendingTasks   int     `json:"pending_tasks"`
	UpcomingLeave  int     `json:"upcoming_leave"`
	AttendanceRate float64 `json:"attendance_rate"`
	NextPayout     float64 `json:"next_payout"`
}

// AttendanceRecord is one day's attendance entry. Hour totals are computed
// server-side per the attendance policy.
type AttendanceRecord struct {
	ID             int     `json:"id"`
	Date           string  `json:"date"`
	ActualCheckIn  string  `json:"actual_check_in,omitempty"`
	ActualCheckOut string  `json:"actual_check_out,omitempty"`
	HoursWorked    float64 `json:"hours_worked"`
	RegularHours   float64 `json:"regular_hours"`
	OvertimeHours  float64 `json:"overtime_hours"`
	LateMinutes    int     `json:"late_minutes"`
	IsLate         bool    `json:"is_late"`
	Status         string  `json:"status"`
}

// AttendanceStatus values reported by the punch clock.
const (
	AttendanceCheckedIn  = "checked_in"
	AttendanceCheckedOut = "checked_out"
)

// AttendanceStatus is the current punch-clock state. Status is empty when
// the user has never punched in today.
type AttendanceStatus struct {
	Status string `json:"status"`
}

// LeaveRequest is a leave application in any lifecycle state.
type LeaveRequest struct {
	ID        int     `json:"id"`
	LeaveType string  `json:"leave_type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	TotalDays float64 `json:"total_days"`
	Reason    string  `json:"reason"`
	Status    string  `json:"status"`
}

// LeaveRequestInput is the payload for a new leave application.
type LeaveRequestInput struct {
	LeaveType string  `json:"leave_type"`
	StartDate string  `json:"start_date"`
	EndDate   string  `json:"end_date"`
	TotalDays float64 `json:"total_days"`
	Reason    string  `json:"reason"`
}

// LeaveBalance is the entitlement ledger for one leave type and year.
type LeaveBalance struct {
	LeaveType      string  `json:"leave_type"`
	TotalEntitled  float64 `json:"total_entitled"`
	Used           float64 `json:"used"`
	Pending        float64 `json:"pending"`
	Available      float64 `json:"available"`
	CarriedForward float64 `json:"carried_forward"`
	Year           int     `json:"year"`
}

// Task is a work item assigned to the user.
type Task struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	Priority    string `json:"priority"`
	Status      string `json:"status"`
}

// LeaveListOptions narrows a leave-request listing.
type LeaveListOptions struct {
	Year  int
	Skip  int
	Limit int
}

func (o LeaveListOptions) values() url.Values {
	query := url.Values{}
	if o.Year > 0 {
		query.Set("year", strconv.Itoa(o.Year))
	}
	if o.Skip > 0 {
		query.Set("skip", strconv.Itoa(o.Skip))
	}
	if o.Limit > 0 {
		query.Set("limit", strconv.Itoa(o.Limit))
	}
	return query
}

// DashboardStats fetches the employee home card data.
func (c *Client) DashboardStats(ctx context.Context) (*EmployeeDashboardStats, error) {
	var stats EmployeeDashboardStats
	if err := c.get(ctx, "/employee/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// Attendance lists the user's attendance records between two dates
// (YYYY-MM-DD, inclusive).
func (c *Client) Attendance(ctx context.Context, from, to string) ([]AttendanceRecord, error) {
	query := url.Values{}
	if from != "" {
		query.Set("start_date", from)
	}
	if to != "" {
		query.Set("end_date", to)
	}
	var records []AttendanceRecord
	if err := c.get(ctx, "/employee/attendance", query, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CheckIn clocks the user in for today, optionally tagging a location.
func (c *Client) CheckIn(ctx context.Context, location string) (*AttendanceRecord, error) {
	body := struct {
		CheckInLocation string `json:"check_in_location,omitempty"`
	}{CheckInLocation: location}

	var rec AttendanceRecord
	if err := c.post(ctx, "/employee/attendance/check-in", body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// CheckOut clocks the user out.
func (c *Client) CheckOut(ctx context.Context, location string) (*AttendanceRecord, error) {
	body := struct {
		CheckOutLocation string `json:"check_out_location,omitempty"`
	}{CheckOutLocation: location}

	var rec AttendanceRecord
	if err := c.post(ctx, "/employee/attendance/check-out", body, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// CurrentAttendance reports the punch-clock state right now.
func (c *Client) CurrentAttendance(ctx context.Context) (*AttendanceStatus, error) {
	var status AttendanceStatus
	if err := c.get(ctx, "/employee/attendance/current", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// LeaveRequests lists the user's own leave applications.
func (c *Client) LeaveRequests(ctx context.Context, opts LeaveListOptions) ([]LeaveRequest, error) {
	var reqs []LeaveRequest
	if err := c.get(ctx, "/employee/leave/requests", opts.values(), &reqs); err != nil {
		return nil, err
	}
	return reqs, nil
}

// SubmitLeaveRequest files a new leave application.
func (c *Client) SubmitLeaveRequest(ctx context.Context, input LeaveRequestInput) (*LeaveRequest, error) {
	var req LeaveRequest
	if err := c.post(ctx, "/employee/leave/requests", input, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// CancelLeaveRequest withdraws a pending leave application. The server
// requires a cancellation reason.
func (c *Client) CancelLeaveRequest(ctx context.Context, id int, reason string) (*LeaveRequest, error) {
	body := struct {
		CancellationReason string `json:"cancellation_reason"`
	}{CancellationReason: reason}

	var req LeaveRequest
	if err := c.post(ctx, fmt.Sprintf("/employee/leave/requests/%d/cancel", id), body, &req); err != nil {
		return nil, err
	}
	return &req, nil
}

// LeaveBalances lists entitlements per leave type, optionally for one year.
func (c *Client) LeaveBalances(ctx context.Context, year int) ([]LeaveBalance, error) {
	query := url.Values{}
	if year > 0 {
		query.Set("year", strconv.Itoa(year))
	}
	var balances []LeaveBalance
	if err := c.get(ctx, "/employee/leave/balances", query, &balances); err != nil {
		return nil, err
	}
	return balances, nil
}

// Tasks lists the user's tasks, optionally filtered by status.
func (c *Client) Tasks(ctx context.Context, status string) ([]Task, error) {
	query := url.Values{}
	if status != "" {
		query.Set("status", status)
	}
	var tasks []Task
	if err := c.get(ctx, "/employee/tasks", query, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// UpdateTaskStatus moves a task to a new status.
func (c *Client) UpdateTaskStatus(ctx context.Context, id int, status string) (*Task, error) {
	body := struct {
		Status string `json:"status"`
	}{Status: status}

	var task Task
	if err := c.patch(ctx, fmt.Sprintf("/employee/tasks/%d", id), body, &task); err != nil {
		return nil, err
	}
	return &task, nil
}
