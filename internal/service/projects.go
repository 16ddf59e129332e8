package service

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
	"github.com/GoSim-25-26J-441/workdesk/internal/store"
)

// AddProject creates p and, unless templateID is empty or domain.NoTemplate,
// expands that template into tasks of the new project. Generated tasks are
// kept in local state only unless persisting them was enabled. A non-nil
// error alongside a project with an id means the project exists but some
// generated tasks could not be created.
func (s *Service) AddProject(ctx context.Context, p domain.Project, templateID string) (domain.Project, error) {
	created, err := s.gw.CreateProject(ctx, p)
	if err != nil {
		return domain.Project{}, s.fail("add project", err, "name", p.Name)
	}
	if created.StartDate.IsZero() {
		created.StartDate = p.StartDate
	}

	var generated []domain.Task
	var partial error
	if templateID != "" && templateID != domain.NoTemplate {
		tmpl, ok := find(s.state.Snapshot().ProjectTemplates, templateID)
		if !ok {
			s.logger.Warn("project template not found, project created without tasks", "template_id", templateID, "project_id", created.ID)
		} else if generated, err = ExpandTemplate(created, tmpl, s.newID); err != nil {
			s.logger.Error("template expansion failed", "template_id", templateID, "project_id", created.ID, "error", err)
			generated, partial = nil, fmt.Errorf("failed to expand template %s: %w", templateID, err)
		}
	}

	if s.persistGeneratedTasks && len(generated) > 0 {
		res := runBatch(ctx, s.duplicateConcurrency, generated, func(ctx context.Context, t domain.Task) (domain.Task, error) {
			t.ID = ""
			return s.gw.CreateTask(ctx, t)
		})
		generated = res.Succeeded()
		if err := res.Err(); err != nil {
			s.logger.Error("generated tasks not persisted", "project_id", created.ID, "failed", len(res.Failed()), "error", err)
			partial = fmt.Errorf("failed to persist %d generated tasks: %w", len(res.Failed()), err)
		}
	}

	s.state.Update(ctx, func(st store.State) store.Patch {
		return store.Patch{
			Projects: store.Ref(upsert(st.Projects, created)),
			Tasks:    store.Ref(append(st.Tasks, generated...)),
		}
	})
	return created, partial
}

// UpdateProject sends the full record; the participant set is replaced as a whole.
func (s *Service) UpdateProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	updated, err := s.gw.UpdateProject(ctx, p)
	if err != nil {
		return domain.Project{}, s.fail("update project", err, "project_id", p.ID)
	}
	s.state.Update(ctx, func(st store.State) store.Patch {
		return store.Patch{Projects: store.Ref(replace(st.Projects, updated))}
	})
	return updated, nil
}

// DeleteProject removes the project and every task that belongs to it.
func (s *Service) DeleteProject(ctx context.Context, id string) error {
	if err := s.gw.DeleteProject(ctx, id); err != nil {
		return s.fail("delete project", err, "project_id", id)
	}
	s.state.Update(ctx, func(st store.State) store.Patch {
		tasks := make([]domain.Task, 0, len(st.Tasks))
		for _, t := range st.Tasks {
			if t.ProjectID != id {
				tasks = append(tasks, t)
			}
		}
		return store.Patch{
			Projects: store.Ref(without(st.Projects, id)),
			Tasks:    store.Ref(tasks),
		}
	})
	return nil
}

// DuplicateResult reports the new project and the outcome of each task copy,
// in the order of the source tasks.
type DuplicateResult struct {
	Project domain.Project
	Tasks   BatchResult[domain.Task]
}

// DuplicateProject copies source under the name "<name> (copy)" and then
// recreates each of its current tasks in the copy, concurrently. The project
// and every task that was created land in state in one dispatch. Per-task
// failures are reported in the result, not as the returned error.
func (s *Service) DuplicateProject(ctx context.Context, source domain.Project) (DuplicateResult, error) {
	dup := source.Clone()
	dup.ID = ""
	dup.Name = source.Name + " (copy)"

	created, err := s.gw.CreateProject(ctx, dup)
	if err != nil {
		return DuplicateResult{}, s.fail("duplicate project", err, "project_id", source.ID)
	}

	sourceTasks, err := s.ProjectTasks(ctx, source.ID)
	if err != nil {
		s.state.Update(ctx, func(st store.State) store.Patch {
			return store.Patch{Projects: store.Ref(upsert(st.Projects, created))}
		})
		return DuplicateResult{Project: created}, fmt.Errorf("project duplicated without tasks: %w", err)
	}

	res := runBatch(ctx, s.duplicateConcurrency, sourceTasks, func(ctx context.Context, t domain.Task) (domain.Task, error) {
		t.ID = ""
		t.ProjectID = created.ID
		return s.gw.CreateTask(ctx, t)
	})
	if failed := res.Failed(); len(failed) > 0 {
		s.logger.Error("some tasks were not duplicated",
			"project_id", created.ID,
			"failed", len(failed),
			"total", len(sourceTasks),
			"error", res.Err(),
		)
	}

	s.state.Update(ctx, func(st store.State) store.Patch {
		return store.Patch{
			Projects: store.Ref(upsert(st.Projects, created)),
			Tasks:    store.Ref(append(st.Tasks, res.Succeeded()...)),
		}
	})
	return DuplicateResult{Project: created, Tasks: res}, nil
}
