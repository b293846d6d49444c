package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"task-tracker.com/task-tracker/internal/frontend"
	dto "task-tracker.com/task-tracker/pkg/data_models"
)

var commentsCmd = &cobra.Command{
	Use:   "comments",
	Short: "List and manage the comments of a task",
}

var commentsListCmd = &cobra.Command{
	Use:   "list TASK_ID",
	Short: "List the comments of a task, oldest first",
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
		return frontend.RenderComments(cmd.OutOrStdout(), store.Snapshot())
	},
}

var commentsAddCmd = &cobra.Command{
	Use:   "add TASK_ID",
	Short: "Add a comment to a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := parseID(args[0], "TASK_ID")
		if err != nil {
			return err
		}

		var req dto.CreateCommentRequest
		if cmd.Flags().Changed("content") {
			content, _ := cmd.Flags().GetString("content")
			req.Content = &content
		}
		if cmd.Flags().Changed("author") {
			author, _ := cmd.Flags().GetString("author")
			req.Author = &author
		}

		return mutateComments(cmd, taskID, func(store *frontend.Store) error {
			_, err := store.CreateComment(cmd.Context(), req)
			return err
		})
	},
}

var commentsEditCmd = &cobra.Command{
	Use:   "edit TASK_ID COMMENT_ID",
	Short: "Edit the content or author of a comment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := parseID(args[0], "TASK_ID")
		if err != nil {
			return err
		}
		commentID, err := parseID(args[1], "COMMENT_ID")
		if err != nil {
			return err
		}

		var req dto.UpdateCommentRequest
		flags := cmd.Flags()
		if flags.Changed("content") {
			content, _ := flags.GetString("content")
			req.Content = dto.Some(content)
		}
		anonymous, _ := flags.GetBool("anonymous")
		switch {
		case anonymous && flags.Changed("author"):
			return fmt.Errorf("--author and --anonymous are mutually exclusive")
		case anonymous:
			req.Author = dto.Null()
		case flags.Changed("author"):
			author, _ := flags.GetString("author")
			req.Author = dto.Some(author)
		}

		return mutateComments(cmd, taskID, func(store *frontend.Store) error {
			_, err := store.UpdateComment(cmd.Context(), commentID, req)
			return err
		})
	},
}

var commentsDeleteCmd = &cobra.Command{
	Use:   "delete TASK_ID COMMENT_ID",
	Short: "Delete a comment",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		taskID, err := parseID(args[0], "TASK_ID")
		if err != nil {
			return err
		}
		commentID, err := parseID(args[1], "COMMENT_ID")
		if err != nil {
			return err
		}

		return mutateComments(cmd, taskID, func(store *frontend.Store) error {
			return store.DeleteComment(cmd.Context(), commentID)
		})
	},
}

// mutateComments selects the task, applies the change and prints the comment
// list the store re-fetched afterwards.
func mutateComments(cmd *cobra.Command, taskID uint, mutate func(*frontend.Store) error) error {
	store, err := newStore()
	if err != nil {
		return err
	}
	if err := selectTask(cmd.Context(), store, taskID); err != nil {
		return err
	}
	if err := mutate(store); err != nil {
		return err
	}
	return frontend.RenderComments(cmd.OutOrStdout(), store.Snapshot())
}

func init() {
	commentsAddCmd.Flags().String("content", "", "comment text")
	commentsAddCmd.Flags().String("author", "", "author name, omit to comment anonymously")

	commentsEditCmd.Flags().String("content", "", "new comment text")
	commentsEditCmd.Flags().String("author", "", "new author name")
	commentsEditCmd.Flags().Bool("anonymous", false, "remove the author")

	commentsCmd.AddCommand(commentsListCmd, commentsAddCmd, commentsEditCmd, commentsDeleteCmd)
	rootCmd.AddCommand(commentsCmd)
}
