package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"kazi/cmd/kazi/ui"
	"kazi/internal/api"
)

var onboardingCmd = &cobra.Command{
	Use:   "onboarding",
	Short: "Tenant provisioning",
}

var onboardingStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Has this tenant finished setup?",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}
		status, err := client.SetupStatus(ctx)
		if err != nil {
			return fmt.Errorf("could not load setup status: %s", api.Message(err))
		}
		if !status.CompanyExists {
			fmt.Println("No company registered. Run: kazi onboarding setup")
			return nil
		}

		t := ui.NewSimpleTable("Setup status for "+status.CompanyName, "Metric", "Value")
		t.AddRow("Divisions", strconv.Itoa(status.TotalDivisions))
		t.AddRow("Departments", strconv.Itoa(status.TotalDepartments))
		t.AddRow("Teams", strconv.Itoa(status.TotalTeams))
		t.AddRow("Employees", strconv.Itoa(status.TotalEmployees))
		t.AddRow("HR departments", strconv.Itoa(status.HRDepartmentsCreated))
		t.AddRow("Job positions", strconv.Itoa(status.JobPositionsCreated))
		printTable(t)

		if status.SetupComplete {
			success("Provisioning complete")
		} else {
			fmt.Println("Setup incomplete. Run: kazi onboarding setup")
		}
		return nil
	},
}

var onboardingSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Walk through the provisioning wizard",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}
		return ui.RunWizard(client, store, ui.ThemeFor(cfg.UI.Theme))
	},
}

var (
	hrDeptCode        string
	hrDeptDescription string
)

var onboardingHRDeptCmd = &cobra.Command{
	Use:   "hr-department <name>",
	Short: "Create an HR department",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if hrDeptCode == "" {
			return fmt.Errorf("an HR department needs --code")
		}
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}
		unit, err := client.CreateHRDepartment(ctx, api.HRDepartmentInput{
			Name:        args[0],
			Code:        hrDeptCode,
			Description: hrDeptDescription,
		})
		if err != nil {
			return fmt.Errorf("could not create HR department: %s", api.Message(err))
		}
		success("HR department #%d (%s) created", unit.ID, args[0])
		return nil
	},
}

var onboardingResendCmd = &cobra.Command{
	Use:   "resend-invite <id>",
	Short: "Re-send a pending invitation email",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid invitation id %q", args[0])
		}
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}
		if err := client.ResendInvitation(ctx, id); err != nil {
			return fmt.Errorf("could not resend invitation: %s", api.Message(err))
		}
		success("Invitation #%d resent", id)
		return nil
	},
}

func init() {
	onboardingHRDeptCmd.Flags().StringVar(&hrDeptCode, "code", "", "short code, e.g. ENG (required)")
	onboardingHRDeptCmd.Flags().StringVar(&hrDeptDescription, "description", "", "what the department covers")
	onboardingCmd.AddCommand(onboardingStatusCmd, onboardingSetupCmd, onboardingHRDeptCmd, onboardingResendCmd)
	rootCmd.AddCommand(onboardingCmd)
}
