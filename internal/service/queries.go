package service

import (
	"context"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
	"github.com/GoSim-25-26J-441/workdesk/internal/store"
)

// WorkspaceProjects filters the loaded projects by workspace. It never calls the API.
func (s *Service) WorkspaceProjects(workspaceID string) []domain.Project {
	out := []domain.Project{}
	for _, p := range s.state.Snapshot().Projects {
		if p.WorkspaceID == workspaceID {
			out = append(out, p)
		}
	}
	return out
}

// TasksForProject filters the tasks already in state.
func (s *Service) TasksForProject(projectID string) []domain.Task {
	out := []domain.Task{}
	for _, t := range s.state.Snapshot().Tasks {
		if t.ProjectID == projectID {
			out = append(out, t)
		}
	}
	return out
}

// ProjectTasks refetches the tasks of one project and replaces that
// project's tasks in state with the result. Calling it twice leaves the
// same state as calling it once.
func (s *Service) ProjectTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	fetched, err := s.gw.ListProjectTasks(ctx, projectID)
	if err != nil {
		return nil, s.fail("fetch project tasks", err, "project_id", projectID)
	}
	s.state.Update(ctx, func(st store.State) store.Patch {
		tasks := make([]domain.Task, 0, len(st.Tasks)+len(fetched))
		for _, t := range st.Tasks {
			if t.ProjectID != projectID {
				tasks = append(tasks, t)
			}
		}
		for _, t := range fetched {
			tasks = append(tasks, t.Clone())
		}
		return store.Patch{Tasks: store.Ref(tasks)}
	})
	return fetched, nil
}

func (s *Service) Project(id string) (domain.Project, bool) {
	return find(s.state.Snapshot().Projects, id)
}

func (s *Service) Participant(id string) (domain.Participant, bool) {
	return find(s.state.Snapshot().Participants, id)
}

func (s *Service) Role(id string) (domain.Role, bool) {
	return find(s.state.Snapshot().Roles, id)
}

func (s *Service) Client(id string) (domain.Client, bool) {
	return find(s.state.Snapshot().Clients, id)
}

func (s *Service) Lead(id string) (domain.Lead, bool) {
	return find(s.state.Snapshot().Leads, id)
}

func (s *Service) Workspace(id string) (domain.Workspace, bool) {
	return find(s.state.Snapshot().Workspaces, id)
}

func (s *Service) ProjectTemplate(id string) (domain.ProjectTemplate, bool) {
	return find(s.state.Snapshot().ProjectTemplates, id)
}
