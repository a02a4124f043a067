package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/studyflow/internal/domain/schedule"
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Manage study tasks",
}

var (
	taskAddCategory  string
	taskAddImportant bool
	taskAddDeadline  string
	taskListJSON     bool
	taskListAll      bool
)

var taskAddCmd = &cobra.Command{
	Use:   "add <title> <estimated-hours>",
	Short: "Add a study task with an hour estimate",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		hours, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid estimated hours %q: %w", args[1], err)
		}

		task, err := services.Task.AddTask(args[0], hours, taskAddCategory, taskAddImportant, taskAddDeadline, currentActor())
		if err != nil {
			return MapError(fmt.Errorf("failed to add task: %w", err))
		}
		fmt.Printf("Added task %s: %s (%.2gh)\n", task.ID, task.Title, task.EstimatedHours)
		return nil
	},
}

var taskListCmd = &cobra.Command{
	Use:   "list",
	Short: "List study tasks with their unscheduled hours",
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		tasks, err := services.Task.ListTasks()
		if err != nil {
			return MapError(fmt.Errorf("failed to list tasks: %w", err))
		}
		plans, err := services.Workspace.Repo.LoadPlans()
		if err != nil {
			return MapError(fmt.Errorf("failed to load plans: %w", err))
		}

		if !taskListAll {
			pending := tasks[:0]
			for _, t := range tasks {
				if t.Status == schedule.TaskPending {
					pending = append(pending, t)
				}
			}
			tasks = pending
		}

		if taskListJSON {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(tasks)
		}

		fmt.Printf("Tasks (%d)\n", len(tasks))
		fmt.Println(strings.Repeat("-", 15))
		for _, t := range tasks {
			marker := " "
			if t.Important {
				marker = "!"
			}
			left := schedule.UnscheduledHours(t, plans)
			fmt.Printf("  %s %-36s [%s] %s (%.2gh left of %.2gh)\n", marker, t.ID, t.Status, t.Title, left, t.EstimatedHours)
		}
		if len(tasks) == 0 {
			fmt.Println("  (none)")
		}
		return nil
	},
}

var taskCompleteCmd = &cobra.Command{
	Use:   "complete <task-id>",
	Short: "Mark a task as completed",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		services, err := loadServicesForCurrentDir()
		if err != nil {
			return err
		}

		if err := services.Task.CompleteTask(args[0], currentActor()); err != nil {
			return MapError(fmt.Errorf("failed to complete task: %w", err))
		}
		fmt.Printf("Task %s completed.\n", args[0])
		return nil
	},
}

func init() {
	taskAddCmd.Flags().StringVarP(&taskAddCategory, "category", "c", "", "Task category (e.g. math, reading)")
	taskAddCmd.Flags().BoolVar(&taskAddImportant, "important", false, "Prioritize this task during redistribution")
	taskAddCmd.Flags().StringVarP(&taskAddDeadline, "deadline", "d", "", "Deadline date (YYYY-MM-DD)")

	taskListCmd.Flags().BoolVar(&taskListJSON, "json", false, "Output in JSON format")
	taskListCmd.Flags().BoolVarP(&taskListAll, "all", "a", false, "Include completed and cancelled tasks")

	taskCmd.AddCommand(taskAddCmd)
	taskCmd.AddCommand(taskListCmd)
	taskCmd.AddCommand(taskCompleteCmd)
	RootCmd.AddCommand(taskCmd)
}
