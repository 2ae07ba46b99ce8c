package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"kazi/cmd/kazi/ui"
	"kazi/internal/api"
	"kazi/internal/dates"
	"kazi/internal/format"
)

var leaveCmd = &cobra.Command{
	Use:   "leave",
	Short: "Leave requests and balances",
}

var leaveListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your leave requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}
		requests, err := client.LeaveRequests(ctx, api.LeaveListOptions{Year: leaveYear})
		if err != nil {
			return fmt.Errorf("could not load leave requests: %s", api.Message(err))
		}

		t := ui.NewSimpleTable("Leave Requests", "ID", "Type", "From", "To", "Days", "Status")
		t.Empty = "No leave requests."
		for _, lr := range requests {
			t.AddRow(strconv.Itoa(lr.ID), format.Title(lr.LeaveType), lr.StartDate, lr.EndDate,
				format.Days(lr.TotalDays), format.Title(lr.Status))
		}
		printTable(t)
		return nil
	},
}

var (
	leaveType   string
	leaveFrom   string
	leaveTo     string
	leaveReason string
)

var leaveRequestCmd = &cobra.Command{
	Use:   "request",
	Short: "File a leave request",
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := dates.ParseISO(leaveFrom)
		if err != nil {
			return fmt.Errorf("invalid --from date: %w", err)
		}
		end, err := dates.ParseISO(leaveTo)
		if err != nil {
			return fmt.Errorf("invalid --to date: %w", err)
		}
		days := dates.WorkingDays(start, end)
		if days == 0 {
			return fmt.Errorf("the range %s to %s contains no working days", leaveFrom, leaveTo)
		}

		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}
		lr, err := client.SubmitLeaveRequest(ctx, api.LeaveRequestInput{
			LeaveType: leaveType,
			StartDate: leaveFrom,
			EndDate:   leaveTo,
			TotalDays: float64(days),
			Reason:    leaveReason,
		})
		if err != nil {
			return fmt.Errorf("request failed: %s", api.Message(err))
		}
		success("Leave request #%d filed: %s, %s", lr.ID, format.Days(lr.TotalDays), format.Title(lr.Status))
		return nil
	},
}

var leaveCancelReason string

var leaveCancelCmd = &cobra.Command{
	Use:   "cancel <id>",
	Short: "Withdraw a pending leave request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		if leaveCancelReason == "" {
			return fmt.Errorf("a cancellation needs --reason")
		}
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}
		if _, err := client.CancelLeaveRequest(ctx, id, leaveCancelReason); err != nil {
			return fmt.Errorf("cancel failed: %s", api.Message(err))
		}
		success("Leave request #%d cancelled", id)
		return nil
	},
}

var leaveBalancesCmd = &cobra.Command{
	Use:   "balances",
	Short: "Remaining leave per type",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}
		balances, err := client.LeaveBalances(ctx, leaveYear)
		if err != nil {
			return fmt.Errorf("could not load balances: %s", api.Message(err))
		}

		t := ui.NewSimpleTable("Leave Balances", "Type", "Entitled", "Used", "Pending", "Available")
		for _, b := range balances {
			t.AddRow(format.Title(b.LeaveType), format.Days(b.TotalEntitled),
				format.Days(b.Used), format.Days(b.Pending), format.Days(b.Available))
		}
		printTable(t)
		return nil
	},
}

var leaveYear int

func init() {
	leaveListCmd.Flags().IntVar(&leaveYear, "year", 0, "filter by year (default all)")
	leaveBalancesCmd.Flags().IntVar(&leaveYear, "year", 0, "balances for a year (default current)")
	leaveCancelCmd.Flags().StringVar(&leaveCancelReason, "reason", "", "why the request is withdrawn (required)")
	leaveRequestCmd.Flags().StringVar(&leaveType, "type", "annual", "leave type")
	leaveRequestCmd.Flags().StringVar(&leaveFrom, "from", "", "first day (YYYY-MM-DD)")
	leaveRequestCmd.Flags().StringVar(&leaveTo, "to", "", "last day (YYYY-MM-DD)")
	leaveRequestCmd.Flags().StringVar(&leaveReason, "reason", "", "reason shown to the approver")
	_ = leaveRequestCmd.MarkFlagRequired("from")
	_ = leaveRequestCmd.MarkFlagRequired("to")

	leaveCmd.AddCommand(leaveListCmd, leaveRequestCmd, leaveCancelCmd, leaveBalancesCmd)
	rootCmd.AddCommand(leaveCmd)
}
