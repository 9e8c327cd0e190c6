package cli

import (
	"strconv"

	"github.com/spf13/cobra"

	"taskdeck/internal/api"
	"taskdeck/internal/model"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "List, inspect and mutate tasks",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksCreateCmd(app))
	cmd.AddCommand(newTasksUpdateCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var f model.TaskFilters
	var sortDir string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List visible tasks (own tasks; all tasks for admins)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opContext(app)
			defer cancel()

			client, err := loggedInClient(ctx, app)
			if err != nil {
				return err
			}
			f.SortDir = model.SortDir(sortDir)
			tasks, err := client.ListTasks(ctx, f)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, tasks)
		},
	}

	cmd.Flags().StringVar(&f.Search, "search", "", "Free-text search")
	cmd.Flags().StringVar(&f.Status, "status", model.StatusAll, `Status filter ("To Do", "In Progress", "Completed" or "All")`)
	cmd.Flags().StringVar(&f.Tags, "tags", "", "Tag filter")
	cmd.Flags().StringVar(&f.DueFrom, "due-from", "", "Due date lower bound (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.DueTo, "due-to", "", "Due date upper bound (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.SortBy, "sort-by", "", "Sort field (created_at, due_date, title)")
	cmd.Flags().StringVar(&sortDir, "sort-dir", "", "Sort direction (asc|desc)")
	cmd.Flags().IntVar(&f.PerPage, "per-page", 0, "Page size")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <task-id>",
		Short: "Show one task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := opContext(app)
			defer cancel()

			client, err := loggedInClient(ctx, app)
			if err != nil {
				return err
			}
			task, err := client.FetchTask(ctx, id)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, task)
		},
	}
}

// draftFromFlags builds a partial payload: only flags the user actually set
// are transmitted, so updates never clobber unspecified fields.
func draftFromFlags(cmd *cobra.Command, title, description, status, due, tags string, userID int) api.TaskDraft {
	var d api.TaskDraft
	if cmd.Flags().Changed("title") {
		d.Title = api.Ptr(title)
	}
	if cmd.Flags().Changed("description") {
		d.Description = api.Ptr(description)
	}
	if cmd.Flags().Changed("status") {
		d.Status = api.Ptr(model.Status(status))
	}
	if cmd.Flags().Changed("due") {
		d.DueDate = api.Ptr(due)
	}
	if cmd.Flags().Changed("tags") {
		d.Tags = api.Ptr(tags)
	}
	if cmd.Flags().Changed("assignee") {
		d.UserID = api.Ptr(userID)
	}
	return d
}

func addDraftFlags(cmd *cobra.Command, title, description, status, due, tags *string, userID *int) {
	cmd.Flags().StringVar(title, "title", "", "Task title")
	cmd.Flags().StringVar(description, "description", "", "Task description (markdown)")
	cmd.Flags().StringVar(status, "status", string(model.StatusToDo), `Status ("To Do", "In Progress", "Completed")`)
	cmd.Flags().StringVar(due, "due", "", "Due date (YYYY-MM-DD; empty clears)")
	cmd.Flags().StringVar(tags, "tags", "", "Comma-joined tags (empty clears)")
	cmd.Flags().IntVar(userID, "assignee", 0, "Owning user id (admins may reassign)")
}

func newTasksCreateCmd(app *App) *cobra.Command {
	var title, description, status, due, tags string
	var userID int

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := opContext(app)
			defer cancel()

			client, err := loggedInClient(ctx, app)
			if err != nil {
				return err
			}
			draft := draftFromFlags(cmd, title, description, status, due, tags, userID)
			if draft.UserID == nil {
				// Default assignee: the current identity.
				id, err := client.FetchIdentity(ctx)
				if err != nil {
					return err
				}
				draft.UserID = api.Ptr(id.ID)
			}
			task, err := client.CreateTask(ctx, draft)
			if err != nil {
				return err
			}
			return writeOut(cmd, app, task)
		},
	}

	addDraftFlags(cmd, &title, &description, &status, &due, &tags, &userID)
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTasksUpdateCmd(app *App) *cobra.Command {
	var title, description, status, due, tags string
	var userID int

	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Update a task (only supplied flags are sent)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			ctx, cancel := opContext(app)
			defer cancel()

			client, err := loggedInClient(ctx, app)
			if err != nil {
				return err
			}
			task, err := client.UpdateTask(ctx, id, draftFromFlags(cmd, title, description, status, due, tags, userID))
			if err != nil {
				return err
			}
			return writeOut(cmd, app, task)
		},
	}

	addDraftFlags(cmd, &title, &description, &status, &due, &tags, &userID)
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			// Scripts must confirm explicitly; the interactive confirm step
			// lives in the TUI.
			if !yes {
				return deleteNotConfirmedError{id: id}
			}
			ctx, cancel := opContext(app)
			defer cancel()

			client, err := loggedInClient(ctx, app)
			if err != nil {
				return err
			}
			if err := client.DeleteTask(ctx, id); err != nil {
				return err
			}
			return writeOut(cmd, app, map[string]any{"deleted": id})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm deletion")
	return cmd
}
