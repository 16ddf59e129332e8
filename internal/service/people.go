package service

import (
	"context"
	"fmt"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
	"github.com/GoSim-25-26J-441/workdesk/internal/store"
)

// participantAvatar picks one of five stock avatars from the current head count.
func participantAvatar(count int) string {
	return fmt.Sprintf("/avatars/0%d.png", count%5+1)
}

func clientAvatar(count int) string {
	return fmt.Sprintf("/avatars/c0%d.png", count%3+1)
}

// AddParticipant creates p with the given initial password; an empty password
// lets the API assign its default one.
func (s *Service) AddParticipant(ctx context.Context, p domain.Participant, password string) (domain.Participant, error) {
	if p.Avatar == "" {
		p.Avatar = participantAvatar(len(s.state.Snapshot().Participants))
	}
	created, err := s.gw.CreateParticipant(ctx, p, password)
	if err != nil {
		return domain.Participant{}, s.fail("add participant", err, "email", p.Email)
	}
	s.state.Update(ctx, func(st store.State) store.Patch {
		return store.Patch{Participants: store.Ref(upsert(st.Participants, created))}
	})
	return created, nil
}

// UpdateParticipant also refreshes the session user when it is the one edited.
func (s *Service) UpdateParticipant(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	updated, err := s.gw.UpdateParticipant(ctx, p)
	if err != nil {
		return domain.Participant{}, s.fail("update participant", err, "participant_id", p.ID)
	}
	s.state.Update(ctx, func(st store.State) store.Patch {
		patch := store.Patch{Participants: store.Ref(replace(st.Participants, updated))}
		if st.CurrentUser != nil && st.CurrentUser.ID == updated.ID {
			patch.CurrentUser = store.SetUser(updated)
		}
		return patch
	})
	return updated, nil
}

// DeleteParticipant drops the participant, its project memberships and its
// task assignments.
func (s *Service) DeleteParticipant(ctx context.Context, id string) error {
	if err := s.gw.DeleteParticipant(ctx, id); err != nil {
		return s.fail("delete participant", err, "participant_id", id)
	}
	s.state.Update(ctx, func(st store.State) store.Patch {
		projects := st.Projects
		for i := range projects {
			projects[i].ParticipantIDs = dropID(projects[i].ParticipantIDs, id)
		}
		tasks := st.Tasks
		for i := range tasks {
			if tasks[i].AssigneeID == id {
				tasks[i].AssigneeID = ""
			}
		}
		return store.Patch{
			Participants: store.Ref(without(st.Participants, id)),
			Projects:     store.Ref(projects),
			Tasks:        store.Ref(tasks),
		}
	})
	return nil
}

func (s *Service) AddRole(ctx context.Context, r domain.Role) (domain.Role, error) {
	created, err := s.gw.CreateRole(ctx, r)
	if err != nil {
		return domain.Role{}, s.fail("add role", err, "name", r.Name)
	}
	s.state.Update(ctx, func(st store.State) store.Patch {
		return store.Patch{Roles: store.Ref(upsert(st.Roles, created))}
	})
	return created, nil
}

func (s *Service) UpdateRole(ctx context.Context, r domain.Role) (domain.Role, error) {
	updated, err := s.gw.UpdateRole(ctx, r)
	if err != nil {
		return domain.Role{}, s.fail("update role", err, "role_id", r.ID)
	}
	s.state.Update(ctx, func(st store.State) store.Patch {
		return store.Patch{Roles: store.Ref(replace(st.Roles, updated))}
	})
	return updated, nil
}

// DeleteRole refuses, without calling the API, while any participant holds the role.
func (s *Service) DeleteRole(ctx context.Context, id string) error {
	refs := 0
	for _, p := range s.state.Snapshot().Participants {
		if p.RoleID == id {
			refs++
		}
	}
	if refs > 0 {
		s.logger.Warn("role delete blocked", "role_id", id, "participants", refs)
		return roleInUse(id, refs)
	}

	if err := s.gw.DeleteRole(ctx, id); err != nil {
		return s.fail("delete role", err, "role_id", id)
	}
	s.state.Update(ctx, func(st store.State) store.Patch {
		return store.Patch{Roles: store.Ref(without(st.Roles, id))}
	})
	return nil
}

func (s *Service) AddClient(ctx context.Context, c domain.Client) (domain.Client, error) {
	if c.Avatar == "" {
		c.Avatar = clientAvatar(len(s.state.Snapshot().Clients))
	}
	created, err := s.gw.CreateClient(ctx, c)
	if err != nil {
		return domain.Client{}, s.fail("add client", err, "name", c.Name)
	}
	s.state.Update(ctx, func(st store.State) store.Patch {
		return store.Patch{Clients: store.Ref(upsert(st.Clients, created))}
	})
	return created, nil
}

func (s *Service) UpdateClient(ctx context.Context, c domain.Client) (domain.Client, error) {
	updated, err := s.gw.UpdateClient(ctx, c)
	if err != nil {
		return domain.Client{}, s.fail("update client", err, "client_id", c.ID)
	}
	s.state.Update(ctx, func(st store.State) store.Patch {
		return store.Patch{Clients: store.Ref(replace(st.Clients, updated))}
	})
	return updated, nil
}

func (s *Service) DeleteClient(ctx context.Context, id string) error {
	if err := s.gw.DeleteClient(ctx, id); err != nil {
		return s.fail("delete client", err, "client_id", id)
	}
	s.state.Update(ctx, func(st store.State) store.Patch {
		return store.Patch{Clients: store.Ref(without(st.Clients, id))}
	})
	return nil
}

func dropID(ids []string, id string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
