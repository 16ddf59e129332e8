package store

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
	"golang.org/x/sync/errgroup"
)

// RemoteSource lists every remote-owned collection.
type RemoteSource interface {
	ListProjects(ctx context.Context) ([]domain.Project, error)
	ListTasks(ctx context.Context) ([]domain.Task, error)
	ListParticipants(ctx context.Context) ([]domain.Participant, error)
	ListRoles(ctx context.Context) ([]domain.Role, error)
	ListClients(ctx context.Context) ([]domain.Client, error)
	ListLeads(ctx context.Context) ([]domain.Lead, error)
}

// WorkspaceSource is consulted by Load when workspaces are remote-owned.
type WorkspaceSource interface {
	ListWorkspaces(ctx context.Context) ([]domain.Workspace, error)
}

// LoadReport lists the collections whose initial load failed.
type LoadReport struct {
	Failed map[string]error
}

func (r LoadReport) OK() bool { return len(r.Failed) == 0 }

// Load fetches all remote collections in parallel. It returns once every
// fetch has settled and sets Loaded in the same dispatch; a failed fetch
// leaves its collection empty.
func (c *Container) Load(ctx context.Context, src RemoteSource) LoadReport {
	var (
		projects     []domain.Project
		tasks        []domain.Task
		participants []domain.Participant
		roles        []domain.Role
		clients      []domain.Client
		leads        []domain.Lead
		workspaces   []domain.Workspace
	)

	fetches := []struct {
		name string
		run  func(context.Context) error
	}{
		{"projects", into(src.ListProjects, &projects)},
		{"tasks", into(src.ListTasks, &tasks)},
		{"participants", into(src.ListParticipants, &participants)},
		{"roles", into(src.ListRoles, &roles)},
		{"clients", into(src.ListClients, &clients)},
		{"leads", into(src.ListLeads, &leads)},
	}
	if c.remoteWorkspaces {
		ws, ok := src.(WorkspaceSource)
		if ok {
			fetches = append(fetches, struct {
				name string
				run  func(context.Context) error
			}{"workspaces", into(ws.ListWorkspaces, &workspaces)})
		} else {
			c.logger.Warn("remote workspaces requested but source cannot list them")
		}
	}

	errs := make([]error, len(fetches))
	var g errgroup.Group
	for i, f := range fetches {
		g.Go(func() error {
			if err := f.run(ctx); err != nil {
				errs[i] = err
				c.logger.Error("initial load failed", "collection", f.name, "error", err)
			}
			return nil
		})
	}
	_ = g.Wait()

	report := LoadReport{Failed: map[string]error{}}
	for i, err := range errs {
		if err != nil {
			report.Failed[fetches[i].name] = err
		}
	}

	p := Patch{
		Loaded:       Ref(true),
		Projects:     Ref(projects),
		Tasks:        Ref(tasks),
		Participants: Ref(participants),
		Roles:        Ref(roles),
		Clients:      Ref(clients),
		Leads:        Ref(leads),
	}
	if c.remoteWorkspaces {
		p.Workspaces = Ref(workspaces)
	}
	c.Dispatch(ctx, p)

	c.logger.Info("initial load settled",
		"projects", len(projects),
		"tasks", len(tasks),
		"participants", len(participants),
		"failed", len(report.Failed),
	)
	return report
}

func into[T any](list func(context.Context) ([]T, error), dst *[]T) func(context.Context) error {
	return func(ctx context.Context) error {
		items, err := list(ctx)
		if err != nil {
			return fmt.Errorf("failed to list: %w", err)
		}
		*dst = items
		return nil
	}
}
