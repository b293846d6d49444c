package frontend

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	model "task-tracker.com/task-tracker/pkg/models"
)

const (
	TimestampLayout = "2006-01-02 15:04:05"
	anonymousAuthor = "Anonymous"
)

func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimestampLayout)
}

func AuthorLabel(author *string) string {
	if author == nil || *author == "" {
		return anonymousAuthor
	}
	return *author
}

// RenderTasks prints the task list, marking the selected task with '*'.
func RenderTasks(w io.Writer, snap Snapshot) error {
	if msg := ErrorMessage(snap.Errors[TaskList]); msg != "" {
		_, err := fmt.Fprintf(w, "error: %s\n", msg)
		return err
	}
	if len(snap.Tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\tID\tTITLE\tUPDATED")
	for _, task := range snap.Tasks {
		marker := ""
		if snap.Selected != nil && snap.Selected.ID == task.ID {
			marker = "*"
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", marker, task.ID, oneLine(task.Title), FormatTimestamp(task.UpdatedAt))
	}
	return tw.Flush()
}

func RenderTask(w io.Writer, task model.Task) error {
	description := ""
	if task.Description != nil {
		description = *task.Description
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%d\n", task.ID)
	fmt.Fprintf(tw, "Title:\t%s\n", task.Title)
	fmt.Fprintf(tw, "Description:\t%s\n", description)
	fmt.Fprintf(tw, "Created:\t%s\n", FormatTimestamp(task.CreatedAt))
	fmt.Fprintf(tw, "Updated:\t%s\n", FormatTimestamp(task.UpdatedAt))
	return tw.Flush()
}

func RenderComments(w io.Writer, snap Snapshot) error {
	if msg := ErrorMessage(snap.Errors[CommentList]); msg != "" {
		_, err := fmt.Fprintf(w, "error: %s\n", msg)
		return err
	}
	if len(snap.Comments) == 0 {
		_, err := fmt.Fprintln(w, "No comments yet.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tAUTHOR\tCREATED\tCONTENT")
	for _, c := range snap.Comments {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\n", c.ID, AuthorLabel(c.Author), FormatTimestamp(c.CreatedAt), oneLine(c.Content))
	}
	return tw.Flush()
}

func RenderComment(w io.Writer, c model.Comment) error {
	_, err := fmt.Fprintf(w, "#%d by %s at %s\n%s\n", c.ID, AuthorLabel(c.Author), FormatTimestamp(c.UpdatedAt), c.Content)
	return err
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
