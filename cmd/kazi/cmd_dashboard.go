package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"kazi/cmd/kazi/ui"
	"kazi/internal/api"
	"kazi/internal/format"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Print your home screen figures",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}
		if store.HasRole("Admin") || store.HasRole("HRManager") {
			return printHRDashboard(cmd)
		}
		return printEmployeeDashboard(cmd)
	},
}

func printEmployeeDashboard(cmd *cobra.Command) error {
	ctx, cancel := commandContext()
	defer cancel()
	dash, err := client.EmployeeDashboard(ctx)
	if err != nil {
		return fmt.Errorf("could not load dashboard: %s", api.Message(err))
	}

	stats := ui.NewSimpleTable("Hi, "+store.FullName(), "Metric", "Value")
	stats.AddRow("Pending tasks", strconv.Itoa(dash.Stats.PendingTasks))
	stats.AddRow("Upcoming leave", format.Days(float64(dash.Stats.UpcomingLeave)))
	stats.AddRow("Attendance rate", fmt.Sprintf("%.0f%%", dash.Stats.AttendanceRate))
	stats.AddRow("Next payout", format.KES(dash.Stats.NextPayout))
	printTable(stats)

	leave := ui.NewSimpleTable("Recent Leave", "ID", "Type", "From", "To", "Status")
	leave.Empty = "No leave requests."
	for i, lr := range dash.RecentLeave {
		if i == 5 {
			break
		}
		leave.AddRow(strconv.Itoa(lr.ID), format.Title(lr.LeaveType), lr.StartDate,
			lr.EndDate, format.Title(lr.Status))
	}
	printTable(leave)
	return nil
}

func printHRDashboard(cmd *cobra.Command) error {
	ctx, cancel := commandContext()
	defer cancel()
	dash, err := client.HRDashboard(ctx)
	if err != nil {
		return fmt.Errorf("could not load dashboard: %s", api.Message(err))
	}

	stats := ui.NewSimpleTable("HR Overview", "Metric", "Value")
	stats.AddRow("Total employees", strconv.Itoa(dash.Stats.TotalEmployees))
	stats.AddRow("Pending onboarding", strconv.Itoa(dash.Stats.PendingOnboarding))
	stats.AddRow("Pending leave", strconv.Itoa(dash.Stats.PendingLeave))
	stats.AddRow("Pending approvals", strconv.Itoa(dash.Stats.PendingApprovals))
	stats.AddRow("Attendance rate", fmt.Sprintf("%.0f%%", dash.Stats.AttendanceRate))
	printTable(stats)

	feed := ui.NewSimpleTable("Recent Activity", "When", "Who", "What")
	feed.Empty = "No recent activity."
	for i := range dash.Activity {
		item := &dash.Activity[i]
		feed.AddRow(item.Timestamp, item.User.FullName, item.Description)
	}
	printTable(feed)
	return nil
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}
