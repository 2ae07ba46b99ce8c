package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"kazi/cmd/kazi/ui"
	"kazi/internal/api"
	"kazi/internal/format"
	"kazi/internal/nav"
)

var (
	approvalsComment string
	approvalsReason  string
)

var approvalsCmd = &cobra.Command{
	Use:   "approvals",
	Short: "Onboarding requests waiting on you",
}

// approvalStage picks which stage of the chain the signed-in user acts
// on: HR staff decide the hr stage, everyone else (department heads)
// decides the dept stage.
func approvalStage() string {
	if store.HasRole(nav.RoleHRManager) || store.HasRole(nav.RoleAdmin) {
		return "hr"
	}
	return "dept"
}

func approvalName(req *api.OnboardingRequest) string {
	if req.User.FullName != "" {
		return req.User.FullName
	}
	return req.User.Email
}

var approvalsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List pending onboarding requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}
		reqs, err := client.PendingApprovals(ctx)
		if err != nil {
			return fmt.Errorf("could not load approvals: %s", api.Message(err))
		}

		t := ui.NewSimpleTable("Pending Onboarding Approvals",
			"ID", "Candidate", "Department", "Position", "HR", "Dept Head", "Status")
		t.Empty = "Nothing waiting on you."
		for i := range reqs {
			req := &reqs[i]
			department, position := "-", "-"
			if req.Department != nil {
				department = req.Department.Name
			}
			if req.JobPosition != nil {
				position = req.JobPosition.Title
			}
			t.AddRow(strconv.Itoa(req.ID), approvalName(req), department, position,
				format.Title(req.HRStatus), format.Title(req.DeptHeadStatus), format.Title(req.Status))
		}
		printTable(t)
		return nil
	},
}

var approvalsApproveCmd = &cobra.Command{
	Use:   "approve <request-id>",
	Short: "Approve an onboarding request at your stage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}

		stage := approvalStage()
		var call func(context.Context, int, string) error
		if stage == "hr" {
			call = client.ApproveHR
		} else {
			call = client.ApproveDeptHead
		}
		if err := call(ctx, id, approvalsComment); err != nil {
			return fmt.Errorf("approval failed: %s", api.Message(err))
		}
		success("Onboarding request #%d approved (%s stage)", id, stage)
		return nil
	},
}

var approvalsRejectCmd = &cobra.Command{
	Use:   "reject <request-id>",
	Short: "Reject an onboarding request at your stage",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		if approvalsReason == "" {
			return fmt.Errorf("a rejection needs --reason")
		}
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}

		stage := approvalStage()
		var call func(context.Context, int, string) error
		if stage == "hr" {
			call = client.RejectHR
		} else {
			call = client.RejectDeptHead
		}
		if err := call(ctx, id, approvalsReason); err != nil {
			return fmt.Errorf("rejection failed: %s", api.Message(err))
		}
		success("Onboarding request #%d rejected (%s stage)", id, stage)
		return nil
	},
}

func init() {
	approvalsApproveCmd.Flags().StringVarP(&approvalsComment, "comment", "m", "", "comment recorded with the approval")
	approvalsRejectCmd.Flags().StringVar(&approvalsReason, "reason", "", "reason shown to the candidate (required)")
	approvalsCmd.AddCommand(approvalsListCmd, approvalsApproveCmd, approvalsRejectCmd)
	rootCmd.AddCommand(approvalsCmd)
}
