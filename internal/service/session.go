package service

import (
	"context"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
	"github.com/GoSim-25-26J-441/workdesk/internal/store"
)

// Login verifies the credentials against the records API and makes the
// participant the session user. The user survives restarts through the cache.
func (s *Service) Login(ctx context.Context, email, password string) (domain.Participant, error) {
	user, err := s.gw.Login(ctx, email, password)
	if err != nil {
		return domain.Participant{}, s.fail("log in", err, "email", email)
	}
	s.state.Dispatch(ctx, store.Patch{CurrentUser: store.SetUser(user)})
	s.logger.Info("logged in", "participant_id", user.ID)
	return user, nil
}

func (s *Service) Logout(ctx context.Context) {
	s.state.Dispatch(ctx, store.Patch{CurrentUser: store.ClearUser()})
}

// CurrentUser returns the session user or ErrNotLoggedIn.
func (s *Service) CurrentUser() (domain.Participant, error) {
	u := s.state.Snapshot().CurrentUser
	if u == nil {
		return domain.Participant{}, ErrNotLoggedIn
	}
	return *u, nil
}
