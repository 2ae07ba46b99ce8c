package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"kazi/cmd/kazi/ui"
	"kazi/internal/api"
	"kazi/internal/dates"
	"kazi/internal/format"
)

var attendanceCmd = &cobra.Command{
	Use:   "attendance",
	Short: "Your attendance records",
}

var attendanceLocation string

var attendanceShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List this week's attendance",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}

		now := time.Now()
		from := dates.FormatISO(dates.StartOfWeek(now))
		to := dates.FormatISO(dates.EndOfWeek(now))
		records, err := client.Attendance(ctx, from, to)
		if err != nil {
			return fmt.Errorf("could not load attendance: %s", api.Message(err))
		}

		t := ui.NewSimpleTable("Attendance "+from+" to "+to, "Date", "In", "Out", "Hours", "Overtime", "Status")
		t.Empty = "No records for this week."
		for i := range records {
			r := &records[i]
			t.AddRow(r.Date, r.ActualCheckIn, r.ActualCheckOut,
				fmt.Sprintf("%.1f", r.HoursWorked), fmt.Sprintf("%.1f", r.OvertimeHours),
				format.Title(r.Status))
		}
		printTable(t)
		return nil
	},
}

var attendanceCheckInCmd = &cobra.Command{
	Use:   "check-in",
	Short: "Clock in for today",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}
		rec, err := client.CheckIn(ctx, attendanceLocation)
		if err != nil {
			return fmt.Errorf("check-in failed: %s", api.Message(err))
		}
		success("Checked in at %s", rec.ActualCheckIn)
		return nil
	},
}

var attendanceCheckOutCmd = &cobra.Command{
	Use:   "check-out",
	Short: "Clock out",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}
		rec, err := client.CheckOut(ctx, attendanceLocation)
		if err != nil {
			return fmt.Errorf("check-out failed: %s", api.Message(err))
		}
		success("Checked out at %s (%.1f hours)", rec.ActualCheckOut, rec.HoursWorked)
		return nil
	},
}

var attendanceSummaryMonth string

var attendanceSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Monthly attendance summary",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}
		month := attendanceSummaryMonth
		if month == "" {
			month = time.Now().Format("2006-01")
		}
		start, err := time.Parse("2006-01", month)
		if err != nil {
			return fmt.Errorf("invalid month %q, want YYYY-MM", month)
		}
		end := start.AddDate(0, 1, -1)
		records, err := client.Attendance(ctx, dates.FormatISO(start), dates.FormatISO(end))
		if err != nil {
			return fmt.Errorf("could not load summary: %s", api.Message(err))
		}

		// The server has no summary endpoint; the totals are ours to add up.
		var present, late int
		var hours, regular, overtime float64
		for i := range records {
			r := &records[i]
			if r.Status == "present" || r.Status == "half_day" {
				present++
			}
			if r.IsLate {
				late++
			}
			hours += r.HoursWorked
			regular += r.RegularHours
			overtime += r.OvertimeHours
		}

		t := ui.NewSimpleTable("Summary "+month, "Metric", "Value")
		t.AddRow("Days present", fmt.Sprintf("%d", present))
		t.AddRow("Days late", fmt.Sprintf("%d", late))
		t.AddRow("Total hours", fmt.Sprintf("%.1f", hours))
		t.AddRow("Regular hours", fmt.Sprintf("%.1f", regular))
		t.AddRow("Overtime hours", fmt.Sprintf("%.1f", overtime))
		printTable(t)
		return nil
	},
}

var attendanceStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Am I clocked in right now?",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}
		status, err := client.CurrentAttendance(ctx)
		if err != nil {
			return fmt.Errorf("could not load status: %s", api.Message(err))
		}
		switch status.Status {
		case api.AttendanceCheckedIn:
			fmt.Println("Checked in.")
		case api.AttendanceCheckedOut:
			fmt.Println("Checked out for the day.")
		default:
			fmt.Println("Not checked in.")
		}
		return nil
	},
}

func init() {
	attendanceCmd.PersistentFlags().StringVar(&attendanceLocation, "location", "", "location tag for check-in/out")
	attendanceSummaryCmd.Flags().StringVar(&attendanceSummaryMonth, "month", "", "month as YYYY-MM (default current)")
	attendanceCmd.AddCommand(attendanceShowCmd, attendanceCheckInCmd, attendanceCheckOutCmd,
		attendanceSummaryCmd, attendanceStatusCmd)
	rootCmd.AddCommand(attendanceCmd)
}
