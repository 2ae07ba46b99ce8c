package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"kazi/cmd/kazi/ui"
	"kazi/internal/api"
	"kazi/internal/format"
)

var tasksStatusFilter string

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Your assigned tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext()
		defer cancel()
		if err := requireSession(ctx); err != nil {
			return err
		}
		tasks, err := client.Tasks(ctx, tasksStatusFilter)
		if err != nil {
			return fmt.Errorf("could not load tasks: %s", api.Message(err))
		}

		t := ui.NewSimpleTable("Tasks", "ID", "Title", "Due", "Priority", "Status")
		t.Empty = "No tasks assigned."
		for _, task := range tasks {
			t.AddRow(strconv.Itoa(task.ID), task.Title, task.DueDate,
				format.Title(task.Priority), format.Title(task.Status))
		}
		printTable(t)
		return nil
	},
}

var tasksDoneCmd = &cobra.Command{
	Use:   "done <id>",
	Short: "Mark a task completed",
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
		task, err := client.UpdateTaskStatus(ctx, id, "completed")
		if err != nil {
			return fmt.Errorf("update failed: %s", api.Message(err))
		}
		success("Task #%d %s", task.ID, format.Title(task.Status))
		return nil
	},
}

func init() {
	tasksListCmd.Flags().StringVar(&tasksStatusFilter, "status", "", "filter by status")
	tasksCmd.AddCommand(tasksListCmd, tasksDoneCmd)
	rootCmd.AddCommand(tasksCmd)
}
