package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
	"github.com/GoSim-25-26J-441/workdesk/internal/service"
	"github.com/GoSim-25-26J-441/workdesk/internal/store"
	"github.com/spf13/cobra"
)

func newProjectsCommand(r *runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "projects",
		Aliases: []string{"project"},
		Short:   "List, create, duplicate and delete projects",
	}
	cmd.AddCommand(
		newProjectsListCommand(r),
		newProjectsCreateCommand(r),
		newProjectsUpdateCommand(r),
		newProjectsDuplicateCommand(r),
		newProjectsDeleteCommand(r),
		newProjectsTasksCommand(r),
	)
	return cmd
}

func writeProjects(w io.Writer, projects []domain.Project) {
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		rows = append(rows, []string{p.ID, p.Name, p.Status, p.StartDate.String(), p.EndDate.String(), p.WorkspaceID, fmt.Sprint(len(p.ParticipantIDs))})
	}
	table(w, "ID\tNAME\tSTATUS\tSTART\tEND\tWORKSPACE\tPEOPLE", rows)
}

func writeTasks(w io.Writer, tasks []domain.Task) {
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		rows = append(rows, []string{t.ID, t.Title, t.Status, t.Priority, t.DueDate.String(), t.AssigneeID})
	}
	table(w, "ID\tTITLE\tSTATUS\tPRIORITY\tDUE\tASSIGNEE", rows)
}

func newProjectsListCommand(r *runner) *cobra.Command {
	var workspace string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects, optionally of one workspace",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				projects := svc.State().Projects
				if workspace != "" {
					projects = svc.WorkspaceProjects(workspace)
				}
				return out.Success(projects, func(w io.Writer) { writeProjects(w, projects) })
			})
		},
	}
	cmd.Flags().StringVarP(&workspace, "workspace", "w", "", "workspace id")
	return cmd
}

type projectFlags struct {
	name         string
	description  string
	status       string
	start        string
	end          string
	workspace    string
	client       string
	lead         string
	pmo          string
	participants []string
}

func (f *projectFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "project name")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().StringVar(&f.status, "status", "", "status")
	cmd.Flags().StringVar(&f.start, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.end, "end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().StringVarP(&f.workspace, "workspace", "w", "", "workspace id")
	cmd.Flags().StringVar(&f.client, "client", "", "client id")
	cmd.Flags().StringVar(&f.lead, "lead", "", "lead id")
	cmd.Flags().StringVar(&f.pmo, "pmo", "", "PMO participant id")
	cmd.Flags().StringSliceVar(&f.participants, "participant", nil, "participant id (repeatable)")
}

// apply copies the flags that were set onto p.
func (f *projectFlags) apply(cmd *cobra.Command, p *domain.Project) error {
	set := cmd.Flags().Changed
	if set("name") {
		p.Name = f.name
	}
	if set("description") {
		p.Description = f.description
	}
	if set("status") {
		p.Status = f.status
	}
	if set("workspace") {
		p.WorkspaceID = f.workspace
	}
	if set("client") {
		p.ClientID = f.client
	}
	if set("lead") {
		p.LeadID = f.lead
	}
	if set("pmo") {
		p.PmoID = f.pmo
	}
	if set("participant") {
		p.ParticipantIDs = domain.UniqueIDs(f.participants)
	}
	if set("start") {
		d, err := dateFlag("start", f.start)
		if err != nil {
			return err
		}
		p.StartDate = d
	}
	if set("end") {
		d, err := dateFlag("end", f.end)
		if err != nil {
			return err
		}
		p.EndDate = d
	}
	return nil
}

func dateFlag(name, v string) (domain.Date, error) {
	d, err := domain.ParseDate(v)
	if err != nil {
		return "", NewExitError(ExitCommandError, fmt.Sprintf("--%s: %v", name, err))
	}
	return d, nil
}

func newProjectsCreateCommand(r *runner) *cobra.Command {
	var flags projectFlags
	var template string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project, optionally expanding a template into its tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := domain.Project{Status: "Planejamento", WorkspaceID: store.DefaultWorkspaceID}
			if err := flags.apply(cmd, &p); err != nil {
				return err
			}
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				created, err := svc.AddProject(ctx, p, template)
				if created.ID == "" {
					return err
				}
				if err != nil {
					out.VerboseLog("warning: %v", err)
				}
				tasks := svc.TasksForProject(created.ID)
				data := map[string]any{"project": created, "tasks": tasks}
				return out.Success(data, func(w io.Writer) {
					fmt.Fprintf(w, "Created project %s (%s) with %d tasks\n", created.Name, created.ID, len(tasks))
				})
			})
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVarP(&template, "template", "t", domain.NoTemplate, "project template id, or \"none\"")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newProjectsUpdateCommand(r *runner) *cobra.Command {
	var flags projectFlags
	cmd := &cobra.Command{
		Use:   "update <project-id>",
		Short: "Change fields of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				p, ok := svc.Project(args[0])
				if !ok {
					return fmt.Errorf("project %s: %w", args[0], domain.ErrNotFound)
				}
				if err := flags.apply(cmd, &p); err != nil {
					return err
				}
				updated, err := svc.UpdateProject(ctx, p)
				if err != nil {
					return err
				}
				return out.Success(updated, func(w io.Writer) { writeProjects(w, []domain.Project{updated}) })
			})
		},
	}
	flags.bind(cmd)
	return cmd
}

func newProjectsDuplicateCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "duplicate <project-id>",
		Short: "Copy a project and all of its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				source, ok := svc.Project(args[0])
				if !ok {
					return fmt.Errorf("project %s: %w", args[0], domain.ErrNotFound)
				}
				res, err := svc.DuplicateProject(ctx, source)
				if res.Project.ID == "" {
					return err
				}

				failed := res.Tasks.Failed()
				errs := make([]string, 0, len(failed))
				for _, f := range failed {
					errs = append(errs, fmt.Sprintf("task %d: %v", f.Index, f.Err))
				}
				data := map[string]any{
					"project":     res.Project,
					"tasks":       res.Tasks.Succeeded(),
					"failedTasks": errs,
				}
				if err != nil {
					data["warning"] = err.Error()
				}
				return out.Success(data, func(w io.Writer) {
					fmt.Fprintf(w, "Duplicated %s as %s (%s): %d tasks copied", source.Name, res.Project.Name, res.Project.ID, len(res.Tasks.Succeeded()))
					if len(errs) > 0 {
						fmt.Fprintf(w, ", %d failed\n  %s", len(errs), strings.Join(errs, "\n  "))
					}
					if err != nil {
						fmt.Fprintf(w, "\nwarning: %v", err)
					}
					fmt.Fprintln(w)
				})
			})
		},
	}
}

func newProjectsDeleteCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a project and its tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				if err := svc.DeleteProject(ctx, args[0]); err != nil {
					return err
				}
				return out.Success(map[string]string{"deleted": args[0]}, func(w io.Writer) {
					fmt.Fprintf(w, "Deleted project %s\n", args[0])
				})
			})
		},
	}
}

func newProjectsTasksCommand(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks <project-id>",
		Short: "Fetch the current tasks of a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return r.with(cmd, func(ctx context.Context, svc *service.Service, out *OutputFormatter) error {
				tasks, err := svc.ProjectTasks(ctx, args[0])
				if err != nil {
					return err
				}
				return out.Success(tasks, func(w io.Writer) { writeTasks(w, tasks) })
			})
		},
	}
}
