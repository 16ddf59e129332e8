package service

import (
	"context"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
	"github.com/GoSim-25-26J-441/workdesk/internal/store"
)

func (s *Service) AddLead(ctx context.Context, l domain.Lead) (domain.Lead, error) {
	created, err := s.gw.CreateLead(ctx, l)
	if err != nil {
		return domain.Lead{}, s.fail("add lead", err, "name", l.Name)
	}
	s.state.Update(ctx, func(st store.State) store.Patch {
		return store.Patch{Leads: store.Ref(upsert(st.Leads, created))}
	})
	return created, nil
}

func (s *Service) UpdateLead(ctx context.Context, l domain.Lead) (domain.Lead, error) {
	updated, err := s.gw.UpdateLead(ctx, l)
	if err != nil {
		return domain.Lead{}, s.fail("update lead", err, "lead_id", l.ID)
	}
	s.state.Update(ctx, func(st store.State) store.Patch {
		return store.Patch{Leads: store.Ref(replace(st.Leads, updated))}
	})
	return updated, nil
}

func (s *Service) DeleteLead(ctx context.Context, id string) error {
	if err := s.gw.DeleteLead(ctx, id); err != nil {
		return s.fail("delete lead", err, "lead_id", id)
	}
	s.state.Update(ctx, func(st store.State) store.Patch {
		return store.Patch{Leads: store.Ref(without(st.Leads, id))}
	})
	return nil
}
