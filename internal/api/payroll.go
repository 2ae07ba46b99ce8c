package api

import (
	"context"
	"fmt"
)

// Payroll endpoints. Runs move draft -> processing -> completed; the
// server rejects out-of-order transitions.

// PayrollRun is one payroll cycle for a period. Month is the server's
// string month key, not a number.
type PayrollRun struct {
	ID              int     `json:"id"`
	Period          string  `json:"period"`
	Month           string  `json:"month"`
	Year            int     `json:"year"`
	Status          string  `json:"status"`
	TotalEmployees  int     `json:"total_employees"`
	TotalGross      float64 `json:"total_gross"`
	TotalDeductions float64 `json:"total_deductions"`
	TotalNet        float64 `json:"total_net"`
	ProcessedBy     string  `json:"processed_by,omitempty"`
	ProcessedAt     string  `json:"processed_at,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// EmployeePayout is one employee's line in a payroll run.
type EmployeePayout struct {
	ID           int     `json:"id"`
	EmployeeID   int     `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	EmployeeCode string  `json:"employee_code"`
	Department   string  `json:"department"`
	BaseSalary   float64 `json:"base_salary"`
	Allowances   float64 `json:"allowances"`
	Deductions   float64 `json:"deductions"`
	NetPay       float64 `json:"net_pay"`
	BankAccount  string  `json:"bank_account"`
	Status       string  `json:"status"`
}

// PayrollRuns lists the tenant's payroll runs, newest first.
func (c *Client) PayrollRuns(ctx context.Context) ([]PayrollRun, error) {
	var runs []PayrollRun
	if err := c.get(ctx, "/payroll/runs", nil, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// CalculatePayroll computes a run for the given period. The server creates
// the run and returns it in draft status.
func (c *Client) CalculatePayroll(ctx context.Context, period, month string, year int) (*PayrollRun, error) {
	body := struct {
		Period string `json:"period"`
		Month  string `json:"month"`
		Year   int    `json:"year"`
	}{Period: period, Month: month, Year: year}

	var run PayrollRun
	if err := c.post(ctx, "/payroll/calculate", body, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// ApprovePayrollRun signs off a draft run.
func (c *Client) ApprovePayrollRun(ctx context.Context, id int) (*PayrollRun, error) {
	var run PayrollRun
	if err := c.post(ctx, fmt.Sprintf("/payroll/runs/%d/approve", id), nil, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// ProcessPayrollRun disburses an approved run.
func (c *Client) ProcessPayrollRun(ctx context.Context, id int) (*PayrollRun, error) {
	var run PayrollRun
	if err := c.post(ctx, fmt.Sprintf("/payroll/runs/%d/process", id), nil, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// Payouts lists the per-employee lines of one run.
func (c *Client) Payouts(ctx context.Context, runID int) ([]EmployeePayout, error) {
	var payouts []EmployeePayout
	if err := c.get(ctx, fmt.Sprintf("/payroll/runs/%d/payouts", runID), nil, &payouts); err != nil {
		return nil, err
	}
	return payouts, nil
}
