package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"kazi/cmd/kazi/ui"
	"kazi/internal/api"
	"kazi/internal/format"
	"kazi/internal/validate"
)

var (
	employeesDepartment string
	employeesStatus     string
	employeesSearch     string
)

var employeesCmd = &cobra.Command{
	Use:   "employees",
	Short: "The employee directory (HR)",
}

var employeesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List directory entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}
		employees, err := client.Employees(ctx, api.EmployeeListOptions{
			Department: employeesDepartment,
			Status:     employeesStatus,
			Search:     employeesSearch,
		})
		if err != nil {
			return fmt.Errorf("could not load directory: %s", api.Message(err))
		}

		t := ui.NewSimpleTable("Employees", "ID", "Code", "Name", "Email", "Designation", "Department")
		t.Empty = "No matching employees."
		for i := range employees {
			e := &employees[i]
			t.AddRow(strconv.Itoa(e.ID), e.EmployeeCode, e.User.FullName,
				e.User.Email, e.Designation, e.Department)
		}
		printTable(t)
		return nil
	},
}

var employeesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one directory entry",
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
		e, err := client.Employee(ctx, id)
		if err != nil {
			return fmt.Errorf("could not load employee: %s", api.Message(err))
		}

		t := ui.NewSimpleTable(e.User.FullName, "Field", "Value")
		t.AddRow("Employee code", e.EmployeeCode)
		t.AddRow("Email", e.User.Email)
		t.AddRow("Phone", format.Phone(e.User.Phone))
		t.AddRow("Designation", e.Designation)
		t.AddRow("Department", e.Department)
		t.AddRow("Engagement", format.Title(e.EngagementType))
		t.AddRow("Hired", e.HireDate)
		t.AddRow("Attendance rate", fmt.Sprintf("%.0f%%", e.AttendanceRate))
		active := "yes"
		if !e.IsActive {
			active = "no"
		}
		t.AddRow("Active", active)
		printTable(t)
		return nil
	},
}

var (
	empDepartment  string
	empDesignation string
	empAddress     string
	empBankName    string
	empBankAccount string
	empTaxID       string
)

var employeesUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Update a directory entry",
	Long:  "Only the flags you pass are changed; everything else keeps its value.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid id %q", args[0])
		}
		if empTaxID != "" {
			empTaxID = strings.ToUpper(empTaxID)
			if err := validate.KRAPin(empTaxID); err != nil {
				return err
			}
		}
		input := api.EmployeeInput{
			Department:  optional(empDepartment),
			Designation: optional(empDesignation),
			Address:     optional(empAddress),
			BankName:    optional(empBankName),
			BankAccount: optional(empBankAccount),
			TaxID:       optional(empTaxID),
		}
		if input == (api.EmployeeInput{}) {
			return fmt.Errorf("nothing to update, pass at least one flag")
		}

		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}
		e, err := client.UpdateEmployee(ctx, id, input)
		if err != nil {
			return fmt.Errorf("could not update employee: %s", api.Message(err))
		}
		success("Updated %s (#%d)", e.User.FullName, e.ID)
		return nil
	},
}

var employeesRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Soft-delete a directory entry",
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
		if err := client.DeleteEmployee(ctx, id); err != nil {
			return fmt.Errorf("could not remove employee: %s", api.Message(err))
		}
		success("Employee #%d removed (restorable with: kazi employees restore %d)", id, id)
		return nil
	},
}

var employeesRestoreCmd = &cobra.Command{
	Use:   "restore <id>",
	Short: "Restore a soft-deleted entry",
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
		if err := client.RestoreEmployee(ctx, id); err != nil {
			return fmt.Errorf("could not restore employee: %s", api.Message(err))
		}
		success("Employee #%d restored", id)
		return nil
	},
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func init() {
	employeesListCmd.Flags().StringVar(&employeesDepartment, "department", "", "filter by department")
	employeesListCmd.Flags().StringVar(&employeesStatus, "status", "", "filter by status (active, inactive)")
	employeesListCmd.Flags().StringVar(&employeesSearch, "search", "", "name or email filter")

	employeesUpdateCmd.Flags().StringVar(&empDepartment, "department", "", "department")
	employeesUpdateCmd.Flags().StringVar(&empDesignation, "designation", "", "job title")
	employeesUpdateCmd.Flags().StringVar(&empAddress, "address", "", "postal address")
	employeesUpdateCmd.Flags().StringVar(&empBankName, "bank-name", "", "bank name")
	employeesUpdateCmd.Flags().StringVar(&empBankAccount, "bank-account", "", "bank account number")
	employeesUpdateCmd.Flags().StringVar(&empTaxID, "tax-id", "", "KRA PIN")

	employeesCmd.AddCommand(employeesListCmd, employeesShowCmd,
		employeesUpdateCmd, employeesRemoveCmd, employeesRestoreCmd)
	rootCmd.AddCommand(employeesCmd)
}
