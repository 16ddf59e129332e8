package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
	"github.com/GoSim-25-26J-441/workdesk/internal/service"
	"github.com/spf13/cobra"
)

func newTasksCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "tasks",
		Aliases: []string{"task"},
		Short:   "Create, update and delete tasks",
	}
	cmd.AddCommand(newTasksListCommand(r), newTasksCreateCommand(r), newTasksUpdateCommand(r), newTasksDeleteCommand(r))
	return cmd
}

type taskFlags struct {
	title       string
	description string
	status      string
	priority    string
	due         string
	assignee    string
}

func (f *taskFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "task title")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().StringVar(&f.status, "status", "", fmt.Sprintf("status (%s|%s|%s)", domain.TaskStatusTodo, domain.TaskStatusInProgress, domain.TaskStatusDone))
	cmd.Flags().StringVar(&f.priority, "priority", "", fmt.Sprintf("priority (%s|%s|%s)", domain.PriorityLow, domain.PriorityMedium, domain.PriorityHigh))
	cmd.Flags().StringVar(&f.due, "due", "", "due date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.assignee, "assignee", "", "assignee participant id")
}

func (f *taskFlags) apply(cmd *cobra.Command, t *domain.Task) error {
	set := cmd.Flags().Changed
	if set("title") {
		t.Title = f.title
	}
	if set("description") {
		t.Description = f.description
	}
	if set("status") {
		t.Status = f.status
	}
	if set("priority") {
		t.Priority = f.priority
	}
	if set("assignee") {
		t.AssigneeID = f.assignee
	}
	if set("due") {
		d, err := dateFlag("due", f.due)
		if err != nil {
			return err
		}
		t.DueDate = d
	}
	return nil
}

func newTasksListCommand(r *runner) *cobra.Command {
	var project string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List loaded tasks, optionally of one project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				tasks := svc.State().Tasks
				if project != "" {
					tasks = svc.TasksForProject(project)
				}
				return out.Success(tasks, func(w io.Writer) { writeTasks(w, tasks) })
			})
		},
	}
	cmd.Flags().StringVarP(&project, "project", "p", "", "project id")
	return cmd
}

func newTasksCreateCommand(r *runner) *cobra.Command {
	var flags taskFlags
	var project string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a task to a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := domain.Task{ProjectID: project, Status: domain.TaskStatusTodo, Priority: domain.PriorityMedium}
			if err := flags.apply(cmd, &t); err != nil {
				return err
			}
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				created, err := svc.AddTask(ctx, t)
				if err != nil {
					return err
				}
				return out.Success(created, func(w io.Writer) { writeTasks(w, []domain.Task{created}) })
			})
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVarP(&project, "project", "p", "", "project id")
	_ = cmd.MarkFlagRequired("project")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func newTasksUpdateCommand(r *runner) *cobra.Command {
	var flags taskFlags
	cmd := &cobra.Command{
		Use:   "update <task-id>",
		Short: "Change fields of a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				var current domain.Task
				found := false
				for _, t := range svc.State().Tasks {
					if t.ID == args[0] {
						current, found = t, true
						break
					}
				}
				if !found {
					return fmt.Errorf("task %s: %w", args[0], domain.ErrNotFound)
				}
				if err := flags.apply(cmd, &current); err != nil {
					return err
				}
				updated, err := svc.UpdateTask(ctx, current)
				if err != nil {
					return err
				}
				return out.Success(updated, func(w io.Writer) { writeTasks(w, []domain.Task{updated}) })
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func newTasksDeleteCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <task-id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				if err := svc.DeleteTask(ctx, args[0]); err != nil {
					return err
				}
				return out.Success(map[string]string{"deleted": args[0]}, func(w io.Writer) {
					fmt.Fprintf(w, "Deleted task %s\n", args[0])
				})
			})
		},
	}
}
