package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"task-tracker.com/task-tracker/internal/frontend"
	dto "task-tracker.com/task-tracker/pkg/data_models"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "List and manage tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tasks, oldest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := newStore()
		if err != nil {
			return err
		}
		if err := store.LoadTasks(cmd.Context()); err != nil {
			return err
		}
		return frontend.RenderTasks(cmd.OutOrStdout(), store.Snapshot())
	},
}

var tasksShowCmd = &cobra.Command{
	Use:   "show TASK_ID",
	Short: "Show a task and its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := parseID(args[0], "TASK_ID")
		if err != nil {
			return err
		}
		store, err := newStore()
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		if err := selectTask(ctx, store, taskID); err != nil {
			return err
		}
		if err := store.LoadComments(ctx); err != nil {
			return err
		}

		snap := store.Snapshot()
		out := cmd.OutOrStdout()
		if err := frontend.RenderTask(out, *snap.Selected); err != nil {
			return err
		}
		fmt.Fprintln(out)
		return frontend.RenderComments(out, snap)
	},
}

var tasksCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a task",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		var req dto.CreateTaskRequest
		if cmd.Flags().Changed("title") {
			title, _ := cmd.Flags().GetString("title")
			req.Title = &title
		}
		if cmd.Flags().Changed("description") {
			description, _ := cmd.Flags().GetString("description")
			req.Description = &description
		}

		store, err := newStore()
		if err != nil {
			return err
		}
		task, err := store.CreateTask(cmd.Context(), req)
		if err != nil {
			return err
		}
		return frontend.RenderTask(cmd.OutOrStdout(), *task)
	},
}

var tasksUpdateCmd = &cobra.Command{
	Use:   "update TASK_ID",
	Short: "Update the title or description of a task",
	Long:  "Only the flags given are sent, everything else is left as it is.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := parseID(args[0], "TASK_ID")
		if err != nil {
			return err
		}

		var req dto.UpdateTaskRequest
		flags := cmd.Flags()
		if flags.Changed("title") {
			title, _ := flags.GetString("title")
			req.Title = dto.Some(title)
		}
		clearDescription, _ := flags.GetBool("clear-description")
		switch {
		case clearDescription && flags.Changed("description"):
			return fmt.Errorf("--description and --clear-description are mutually exclusive")
		case clearDescription:
			req.Description = dto.Null()
		case flags.Changed("description"):
			description, _ := flags.GetString("description")
			req.Description = dto.Some(description)
		}

		store, err := newStore()
		if err != nil {
			return err
		}
		task, err := store.UpdateTask(cmd.Context(), taskID, req)
		if err != nil {
			return err
		}
		return frontend.RenderTask(cmd.OutOrStdout(), *task)
	},
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete TASK_ID",
	Short: "Delete a task together with its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := parseID(args[0], "TASK_ID")
		if err != nil {
			return err
		}
		store, err := newStore()
		if err != nil {
			return err
		}
		if err := store.DeleteTask(cmd.Context(), taskID); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted task %d\n", taskID)
		return nil
	},
}

func init() {
	tasksCreateCmd.Flags().String("title", "", "task title")
	tasksCreateCmd.Flags().String("description", "", "task description")

	tasksUpdateCmd.Flags().String("title", "", "new title")
	tasksUpdateCmd.Flags().String("description", "", "new description")
	tasksUpdateCmd.Flags().Bool("clear-description", false, "remove the description")

	tasksCmd.AddCommand(tasksListCmd, tasksShowCmd, tasksCreateCmd, tasksUpdateCmd, tasksDeleteCmd)
	rootCmd.AddCommand(tasksCmd)
}
