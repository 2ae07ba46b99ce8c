package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"kazi/cmd/kazi/ui"
	"kazi/internal/api"
	"kazi/internal/format"
)

var payrollCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Payroll runs and payouts (finance)",
}

var payrollRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List payroll runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}
		runs, err := client.PayrollRuns(ctx)
		if err != nil {
			return fmt.Errorf("could not load payroll runs: %s", api.Message(err))
		}

		t := ui.NewSimpleTable("Payroll Runs", "ID", "Period", "Employees", "Gross", "Deductions", "Net", "Status")
		t.Empty = "No payroll runs yet."
		for i := range runs {
			run := &runs[i]
			t.AddRow(strconv.Itoa(run.ID), run.Period, strconv.Itoa(run.TotalEmployees),
				format.KES(run.TotalGross), format.KES(run.TotalDeductions),
				format.KES(run.TotalNet), format.Title(run.Status))
		}
		printTable(t)
		return nil
	},
}

var (
	payrollPeriod string
	payrollMonth  string
	payrollYear   int
)

var payrollCalculateCmd = &cobra.Command{
	Use:   "calculate",
	Short: "Compute a run for a period",
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		if payrollMonth == "" {
			payrollMonth = now.Month().String()
		}
		if payrollYear == 0 {
			payrollYear = now.Year()
		}
		if payrollPeriod == "" {
			payrollPeriod = fmt.Sprintf("%s %d", payrollMonth, payrollYear)
		}

		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}
		run, err := client.CalculatePayroll(ctx, payrollPeriod, payrollMonth, payrollYear)
		if err != nil {
			return fmt.Errorf("calculation failed: %s", api.Message(err))
		}
		success("Run #%d (%s) is now %s: gross %s, net %s", run.ID, run.Period,
			format.Title(run.Status), format.KES(run.TotalGross), format.KES(run.TotalNet))
		return nil
	},
}

// payrollTransition runs one stage of the draft -> processing -> completed
// pipeline.
func payrollTransition(verb string, call func(*cobra.Command, int) (*api.PayrollRun, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid run id %q", args[0])
		}
		run, err := call(cmd, id)
		if err != nil {
			return fmt.Errorf("%s failed: %s", verb, api.Message(err))
		}
		success("Run #%d (%s) is now %s: gross %s, net %s", run.ID, run.Period,
			format.Title(run.Status), format.KES(run.TotalGross), format.KES(run.TotalNet))
		return nil
	}
}

var payrollApproveCmd = &cobra.Command{
	Use:   "approve <run-id>",
	Short: "Sign off a draft run",
	Args:  cobra.ExactArgs(1),
	RunE: payrollTransition("approval", func(cmd *cobra.Command, id int) (*api.PayrollRun, error) {
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return nil, err
		}
		return client.ApprovePayrollRun(ctx, id)
	}),
}

var payrollProcessCmd = &cobra.Command{
	Use:   "process <run-id>",
	Short: "Disburse an approved run",
	Args:  cobra.ExactArgs(1),
	RunE: payrollTransition("processing", func(cmd *cobra.Command, id int) (*api.PayrollRun, error) {
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return nil, err
		}
		return client.ProcessPayrollRun(ctx, id)
	}),
}

var payrollPayoutsCmd = &cobra.Command{
	Use:   "payouts <run-id>",
	Short: "List a run's per-employee lines",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid run id %q", args[0])
		}
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}
		payouts, err := client.Payouts(ctx, id)
		if err != nil {
			return fmt.Errorf("could not load payouts: %s", api.Message(err))
		}

		t := ui.NewSimpleTable(fmt.Sprintf("Payouts for run #%d", id),
			"Code", "Employee", "Department", "Base", "Allowances", "Deductions", "Net", "Status")
		t.Empty = "No payouts for this run."
		for i := range payouts {
			p := &payouts[i]
			t.AddRow(p.EmployeeCode, p.EmployeeName, p.Department,
				format.KES(p.BaseSalary), format.KES(p.Allowances),
				format.KES(p.Deductions), format.KES(p.NetPay), format.Title(p.Status))
		}
		printTable(t)
		return nil
	},
}

func init() {
	payrollCalculateCmd.Flags().StringVar(&payrollPeriod, "period", "", "period label (default \"<month> <year>\")")
	payrollCalculateCmd.Flags().StringVar(&payrollMonth, "month", "", "month name (default current)")
	payrollCalculateCmd.Flags().IntVar(&payrollYear, "year", 0, "year (default current)")

	payrollCmd.AddCommand(payrollRunsCmd, payrollCalculateCmd,
		payrollApproveCmd, payrollProcessCmd, payrollPayoutsCmd)
	rootCmd.AddCommand(payrollCmd)
}
