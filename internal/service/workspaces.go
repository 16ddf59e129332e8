package service

import (
	"context"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
	"github.com/GoSim-25-26J-441/workdesk/internal/store"
)

// AddWorkspace creates w in the records API when workspaces are remote, or
// mints a local id and keeps it in the cache otherwise.
func (s *Service) AddWorkspace(ctx context.Context, w domain.Workspace) (domain.Workspace, error) {
	if s.state.RemoteWorkspaces() {
		created, err := s.gw.CreateWorkspace(ctx, w)
		if err != nil {
			return domain.Workspace{}, s.fail("add workspace", err, "name", w.Name)
		}
		s.state.Update(ctx, func(st store.State) store.Patch {
			return store.Patch{Workspaces: store.Ref(upsert(st.Workspaces, created))}
		})
		return created, nil
	}

	if err := w.Normalize(); err != nil {
		return domain.Workspace{}, s.fail("add workspace", err, "name", w.Name)
	}
	w.ID = s.newID("ws")
	s.state.Update(ctx, func(st store.State) store.Patch {
		return store.Patch{Workspaces: store.Ref(append(st.Workspaces, w))}
	})
	return w, nil
}

func (s *Service) UpdateWorkspace(ctx context.Context, w domain.Workspace) (domain.Workspace, error) {
	if s.state.RemoteWorkspaces() {
		updated, err := s.gw.UpdateWorkspace(ctx, w)
		if err != nil {
			return domain.Workspace{}, s.fail("update workspace", err, "workspace_id", w.ID)
		}
		w = updated
	} else if err := w.Normalize(); err != nil {
		return domain.Workspace{}, s.fail("update workspace", err, "workspace_id", w.ID)
	}
	s.state.Update(ctx, func(st store.State) store.Patch {
		return store.Patch{Workspaces: store.Ref(replace(st.Workspaces, w))}
	})
	return w, nil
}

// DeleteWorkspace refuses while any project belongs to the workspace. In
// local mode the check and the removal happen under one dispatch.
func (s *Service) DeleteWorkspace(ctx context.Context, id string) error {
	if s.state.RemoteWorkspaces() {
		if refs := countProjects(s.state.Snapshot().Projects, id); refs > 0 {
			s.logger.Warn("workspace delete blocked", "workspace_id", id, "projects", refs)
			return workspaceInUse(id, refs)
		}
		if err := s.gw.DeleteWorkspace(ctx, id); err != nil {
			return s.fail("delete workspace", err, "workspace_id", id)
		}
		s.state.Update(ctx, func(st store.State) store.Patch {
			return store.Patch{Workspaces: store.Ref(without(st.Workspaces, id))}
		})
		return nil
	}

	var guard *GuardError
	s.state.Update(ctx, func(st store.State) store.Patch {
		if refs := countProjects(st.Projects, id); refs > 0 {
			guard = workspaceInUse(id, refs)
			return store.Patch{}
		}
		return store.Patch{Workspaces: store.Ref(without(st.Workspaces, id))}
	})
	if guard != nil {
		s.logger.Warn("workspace delete blocked", "workspace_id", id, "projects", guard.References)
		return guard
	}
	return nil
}

func countProjects(projects []domain.Project, workspaceID string) int {
	n := 0
	for _, p := range projects {
		if p.WorkspaceID == workspaceID {
			n++
		}
	}
	return n
}
