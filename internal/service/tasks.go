package service

import (
	"context"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
	"github.com/GoSim-25-26J-441/workdesk/internal/store"
)

func (s *Service) AddTask(ctx context.Context, t domain.Task) (domain.Task, error) {
	created, err := s.gw.CreateTask(ctx, t)
	if err != nil {
		return domain.Task{}, s.fail("add task", err, "project_id", t.ProjectID)
	}
	s.state.Update(ctx, func(st store.State) store.Patch {
		return store.Patch{Tasks: store.Ref(upsert(st.Tasks, created))}
	})
	return created, nil
}

// UpdateTask sends the full record. The task keeps the project it was created in.
func (s *Service) UpdateTask(ctx context.Context, t domain.Task) (domain.Task, error) {
	updated, err := s.gw.UpdateTask(ctx, t)
	if err != nil {
		return domain.Task{}, s.fail("update task", err, "task_id", t.ID)
	}
	s.state.Update(ctx, func(st store.State) store.Patch {
		return store.Patch{Tasks: store.Ref(replace(st.Tasks, updated))}
	})
	return updated, nil
}

func (s *Service) DeleteTask(ctx context.Context, id string) error {
	if err := s.gw.DeleteTask(ctx, id); err != nil {
		return s.fail("delete task", err, "task_id", id)
	}
	s.state.Update(ctx, func(st store.State) store.Patch {
		return store.Patch{Tasks: store.Ref(without(st.Tasks, id))}
	})
	return nil
}
