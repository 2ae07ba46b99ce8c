package api

import (
	"context"
	"fmt"
	"net/url"
)

// HR administration endpoints. Visibility is enforced server-side; the
// client just mirrors the grants it was told about.

// EmployeeUser is the platform account behind a directory entry.
type EmployeeUser struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Phone    string `json:"phone,omitempty"`
	IsActive bool   `json:"is_active"`
}

// Employee is a directory entry.
type Employee struct {
	ID             int          `json:"id"`
	User           EmployeeUser `json:"user"`
	EmployeeCode   string       `json:"employee_code"`
	EngagementType string       `json:"engagement_type"`
	HireDate       string       `json:"hire_date"`
	Department     string       `json:"department"`
	Designation    string       `json:"designation"`
	AttendanceRate float64      `json:"attendance_rate"`
	BankName       string       `json:"bank_name,omitempty"`
	BankAccount    string       `json:"bank_account,omitempty"`
	TaxID          string       `json:"tax_id,omitempty"`
	Address        string       `json:"address,omitempty"`
	IsActive       bool         `json:"is_active"`
}

// EmployeeInput is a partial update to a directory entry. Pointer fields
// are omitted from the PATCH body when nil, so partial updates stay
// partial.
type EmployeeInput struct {
	Department  *string `json:"department,omitempty"`
	Designation *string `json:"designation,omitempty"`
	Address     *string `json:"address,omitempty"`
	BankName    *string `json:"bank_name,omitempty"`
	BankAccount *string `json:"bank_account,omitempty"`
	TaxID       *string `json:"tax_id,omitempty"`
}

// EmployeeListOptions narrows a directory listing.
type EmployeeListOptions struct {
	Department string
	Status     string
	Search     string
}

func (o EmployeeListOptions) values() url.Values {
	query := url.Values{}
	if o.Department != "" {
		query.Set("department", o.Department)
	}
	if o.Status != "" {
		query.Set("status", o.Status)
	}
	if o.Search != "" {
		query.Set("search", o.Search)
	}
	return query
}

// HRDashboardStats is the headline card data for the HR home.
type HRDashboardStats struct {
	TotalEmployees    int     `json:"total_employees"`
	ActiveEmployees   int     `json:"active_employees"`
	PendingOnboarding int     `json:"pending_onboarding"`
	PendingLeave      int     `json:"pending_leave"`
	PendingApprovals  int     `json:"pending_approvals"`
	PayrollMonth      float64 `json:"payroll_month"`
	AttendanceRate    float64 `json:"attendance_rate"`
	EmployeeGrowth    float64 `json:"employee_growth"`
}

// Activity is one entry in the HR activity feed.
type Activity struct {
	ID          int            `json:"id"`
	Type        string         `json:"type"`
	User        OnboardingUser `json:"user"`
	Description string         `json:"description"`
	Timestamp   string         `json:"timestamp"`
	Status      string         `json:"status,omitempty"`
}

// Employees lists the directory, optionally filtered.
func (c *Client) Employees(ctx context.Context, opts EmployeeListOptions) ([]Employee, error) {
	var emps []Employee
	if err := c.get(ctx, "/hr/employees", opts.values(), &emps); err != nil {
		return nil, err
	}
	return emps, nil
}

// Employee fetches one directory entry.
func (c *Client) Employee(ctx context.Context, id int) (*Employee, error) {
	var emp Employee
	if err := c.get(ctx, fmt.Sprintf("/hr/employees/%d", id), nil, &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

// UpdateEmployee applies a partial update to a directory entry.
func (c *Client) UpdateEmployee(ctx context.Context, id int, input EmployeeInput) (*Employee, error) {
	var emp Employee
	if err := c.patch(ctx, fmt.Sprintf("/hr/employees/%d", id), input, &emp); err != nil {
		return nil, err
	}
	return &emp, nil
}

// DeleteEmployee soft-deletes a directory entry.
func (c *Client) DeleteEmployee(ctx context.Context, id int) error {
	return c.delete(ctx, fmt.Sprintf("/hr/employees/%d", id))
}

// RestoreEmployee reverses a soft delete.
func (c *Client) RestoreEmployee(ctx context.Context, id int) error {
	return c.post(ctx, fmt.Sprintf("/hr/employees/%d/restore", id), nil, nil)
}

// HRStats fetches the HR home card data.
func (c *Client) HRStats(ctx context.Context) (*HRDashboardStats, error) {
	var stats HRDashboardStats
	if err := c.get(ctx, "/hr/dashboard/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// RecentActivity fetches the HR activity feed.
func (c *Client) RecentActivity(ctx context.Context) ([]Activity, error) {
	var items []Activity
	if err := c.get(ctx, "/hr/dashboard/recent-activity", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}
