package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tgienger/dispatch/internal/dispatch"
)

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.CompletionOptions.DisableDefaultCmd = true

	employeeCmd := &cobra.Command{
		Use:   "employee",
		Short: "Manage employees",
	}

	var first, middle, last string
	employeeAddCmd := &cobra.Command{
		Use:   "add",
		Short: "Register an employee",
		Long: `Register an employee. First and last name are required, the middle name is optional.

Examples:
  dispatch employee add --first Anna --last Ivanova
  dispatch employee add --first Anna --middle Petrovna --last Ivanova`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			employee, err := r.svc.AddEmployee(dispatch.AddEmployeeRequest{
				FirstName:  first,
				MiddleName: middle,
				LastName:   last,
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added employee #%d %s\n", employee.ID, employee.Name)
			return nil
		},
	}
	employeeAddCmd.Flags().StringVar(&first, "first", "", "First name (required)")
	employeeAddCmd.Flags().StringVar(&middle, "middle", "", "Middle name")
	employeeAddCmd.Flags().StringVar(&last, "last", "", "Last name (required)")

	var employeeFormat string
	employeeListCmd := &cobra.Command{
		Use:   "list",
		Short: "List employees",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := r.svc.ListEmployees()
			if err != nil {
				return err
			}
			return writeEmployees(cmd.OutOrStdout(), employeeFormat, employees)
		},
	}
	employeeListCmd.Flags().StringVarP(&employeeFormat, "output", "o", formatTable, "Output format: table, json, yaml")

	employeeCmd.AddCommand(employeeAddCmd, employeeListCmd)

	taskCmd := &cobra.Command{
		Use:   "task",
		Short: "Manage tasks",
	}

	taskAddCmd := &cobra.Command{
		Use:   "add [task name]",
		Short: "Create an unassigned task",
		Long: `Create an unassigned task. Words are joined with spaces.

Examples:
  dispatch task add "Fix router"
  dispatch task add Replace cable at 5th street`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			task, err := r.svc.AddTask(dispatch.AddTaskRequest{Name: strings.Join(args, " ")})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added task #%d %s\n", task.ID, task.Name)
			return nil
		},
	}

	var taskFormat string
	taskListCmd := &cobra.Command{
		Use:   "list",
		Short: "Show all tasks with their assignee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tasks, err := r.svc.ListTasks()
			if err != nil {
				return err
			}
			return writeTasks(cmd.OutOrStdout(), taskFormat, tasks)
		},
	}
	taskListCmd.Flags().StringVarP(&taskFormat, "output", "o", formatTable, "Output format: table, json, yaml")

	taskCmd.AddCommand(taskAddCmd, taskListCmd)

	assignCmd := &cobra.Command{
		Use:   "assign",
		Short: "Hand every unassigned task to a random employee",
		Long: `Hand every unassigned task to an employee picked uniformly at random.
Already assigned tasks are left alone. Fails when no employee is registered.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := r.svc.AssignTasks()
			if err != nil {
				return err
			}
			if result.Assigned == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No unassigned tasks")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Assigned %d task(s) among %d employee(s)\n", result.Assigned, result.Employees)
			return nil
		},
	}

	r.cmd.AddCommand(employeeCmd, taskCmd, assignCmd)
}
