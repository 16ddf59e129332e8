package store

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/GoSim-25-26J-441/workdesk/internal/cache"
	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContainer(t *testing.T, opts ...ContainerOption) (*Container, *cache.Cache) {
	t.Helper()
	c := cache.New(cache.NewMemoryBackend(), nil)
	return NewContainer(context.Background(), c, opts...), c
}

func TestNewContainer_SeedsLocalCollections(t *testing.T) {
	ct, _ := newTestContainer(t)
	s := ct.Snapshot()

	assert.False(t, s.Loaded)
	assert.Nil(t, s.CurrentUser)
	assert.Equal(t, DefaultCompanyInfo(), s.CompanyInfo)
	assert.Equal(t, DefaultProjectTemplates(), s.ProjectTemplates)
	assert.Equal(t, DefaultWorkspaces(), s.Workspaces)
	assert.NotNil(t, s.Projects)
	assert.Empty(t, s.Projects)
}

func TestNewContainer_HydratesFromCache(t *testing.T) {
	ctx := context.Background()
	c := cache.New(cache.NewMemoryBackend(), nil)
	c.Write(ctx, cache.KeyWorkspaces, []domain.Workspace{{ID: "ws-9", Name: "Saved"}})
	c.Write(ctx, cache.KeyCurrentUser, domain.Participant{ID: "u1", Name: "Ana"})

	s := NewContainer(ctx, c).Snapshot()
	assert.Equal(t, []domain.Workspace{{ID: "ws-9", Name: "Saved"}}, s.Workspaces)
	require.NotNil(t, s.CurrentUser)
	assert.Equal(t, "u1", s.CurrentUser.ID)
}

func TestDispatch_ReplacesCollections(t *testing.T) {
	ctx := context.Background()
	ct, _ := newTestContainer(t)

	ct.Dispatch(ctx, Patch{Projects: Ref([]domain.Project{{ID: "p1"}, {ID: "p2"}})})
	ct.Dispatch(ctx, Patch{Projects: Ref([]domain.Project{{ID: "p3"}})})

	s := ct.Snapshot()
	assert.Equal(t, []domain.Project{{ID: "p3"}}, s.Projects)
	assert.Equal(t, DefaultWorkspaces(), s.Workspaces, "absent fields are untouched")
}

func TestDispatch_CurrentUser(t *testing.T) {
	ctx := context.Background()
	ct, c := newTestContainer(t)

	ct.Dispatch(ctx, Patch{CurrentUser: SetUser(domain.Participant{ID: "u1"})})
	require.NotNil(t, ct.Snapshot().CurrentUser)

	t.Run("zero change keeps the user", func(t *testing.T) {
		ct.Dispatch(ctx, Patch{Tasks: Ref([]domain.Task{})})
		require.NotNil(t, ct.Snapshot().CurrentUser)
		assert.Equal(t, "u1", ct.Snapshot().CurrentUser.ID)
	})

	t.Run("explicit clear", func(t *testing.T) {
		ct.Dispatch(ctx, Patch{CurrentUser: ClearUser()})
		assert.Nil(t, ct.Snapshot().CurrentUser)
		assert.Nil(t, cache.Read[*domain.Participant](ctx, c, cache.KeyCurrentUser, nil))
	})
}

func TestDispatch_WritesThroughLocalCollections(t *testing.T) {
	ctx := context.Background()
	ct, c := newTestContainer(t)

	templates := []domain.ProjectTemplate{{ID: "t1", Name: "Mine", Tasks: []domain.TemplateTask{{Title: "a"}}}}
	info := domain.CompanyInfo{Name: "ACME"}
	ct.Dispatch(ctx, Patch{ProjectTemplates: Ref(templates), CompanyInfo: &info})

	assert.Equal(t, templates, cache.Read[[]domain.ProjectTemplate](ctx, c, cache.KeyProjectTemplates, nil))
	assert.Equal(t, info, cache.Read(ctx, c, cache.KeyCompanyInfo, domain.CompanyInfo{}))

	// survives a restart of the session
	reopened := NewContainer(ctx, c).Snapshot()
	assert.Equal(t, templates, reopened.ProjectTemplates)
	assert.Equal(t, info, reopened.CompanyInfo)
}

func TestDispatch_RemoteWorkspacesAreNotCached(t *testing.T) {
	ctx := context.Background()
	ct, c := newTestContainer(t, WithRemoteWorkspaces())
	assert.Empty(t, ct.Snapshot().Workspaces)

	ct.Dispatch(ctx, Patch{Workspaces: Ref([]domain.Workspace{{ID: "ws-1"}})})
	assert.Len(t, ct.Snapshot().Workspaces, 1)
	assert.Nil(t, cache.Read[[]domain.Workspace](ctx, c, cache.KeyWorkspaces, nil))
}

func TestSnapshot_IsACopy(t *testing.T) {
	ctx := context.Background()
	ct, _ := newTestContainer(t)
	ct.Dispatch(ctx, Patch{Projects: Ref([]domain.Project{{ID: "p1", ParticipantIDs: []string{"u1"}}})})

	s := ct.Snapshot()
	s.Projects[0].Name = "mutated"
	s.Projects[0].ParticipantIDs[0] = "u9"

	again := ct.Snapshot()
	assert.Equal(t, "", again.Projects[0].Name)
	assert.Equal(t, []string{"u1"}, again.Projects[0].ParticipantIDs)
}

func TestUpdate_SerializesReadModifyWrite(t *testing.T) {
	ctx := context.Background()
	ct, _ := newTestContainer(t)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ct.Update(ctx, func(s State) Patch {
				return Patch{Tasks: Ref(append(s.Tasks, domain.Task{ID: "t"}))}
			})
		}()
	}
	wg.Wait()

	assert.Len(t, ct.Snapshot().Tasks, 50)
}

func TestSubscribe(t *testing.T) {
	ctx := context.Background()
	ct, _ := newTestContainer(t)

	var got []int
	cancel := ct.Subscribe(func(s State) { got = append(got, len(s.Leads)) })

	ct.Dispatch(ctx, Patch{Leads: Ref([]domain.Lead{{ID: "l1"}})})
	ct.Dispatch(ctx, Patch{})
	cancel()
	ct.Dispatch(ctx, Patch{Leads: Ref([]domain.Lead{})})

	assert.Equal(t, []int{1}, got)
}

type fakeSource struct {
	projects   []domain.Project
	failTasks  bool
	workspaces []domain.Workspace
}

func (f *fakeSource) ListProjects(context.Context) ([]domain.Project, error) { return f.projects, nil }
func (f *fakeSource) ListTasks(context.Context) ([]domain.Task, error) {
	if f.failTasks {
		return nil, errors.New("connection refused")
	}
	return []domain.Task{{ID: "t1", ProjectID: "p1"}}, nil
}
func (f *fakeSource) ListParticipants(context.Context) ([]domain.Participant, error) {
	return []domain.Participant{{ID: "u1"}}, nil
}
func (f *fakeSource) ListRoles(context.Context) ([]domain.Role, error)     { return nil, nil }
func (f *fakeSource) ListClients(context.Context) ([]domain.Client, error) { return nil, nil }
func (f *fakeSource) ListLeads(context.Context) ([]domain.Lead, error)     { return nil, nil }
func (f *fakeSource) ListWorkspaces(context.Context) ([]domain.Workspace, error) {
	return f.workspaces, nil
}

func TestLoad(t *testing.T) {
	ctx := context.Background()

	t.Run("all collections", func(t *testing.T) {
		ct, _ := newTestContainer(t)
		report := ct.Load(ctx, &fakeSource{projects: []domain.Project{{ID: "p1"}}})

		assert.True(t, report.OK())
		s := ct.Snapshot()
		assert.True(t, s.Loaded)
		assert.Len(t, s.Projects, 1)
		assert.Len(t, s.Tasks, 1)
		assert.NotNil(t, s.Roles)
		assert.Equal(t, DefaultWorkspaces(), s.Workspaces, "local workspaces are not fetched")
	})

	t.Run("a failed collection does not block loaded", func(t *testing.T) {
		ct, _ := newTestContainer(t)
		report := ct.Load(ctx, &fakeSource{failTasks: true})

		require.Contains(t, report.Failed, "tasks")
		s := ct.Snapshot()
		assert.True(t, s.Loaded)
		assert.Empty(t, s.Tasks)
		assert.Len(t, s.Participants, 1)
	})

	t.Run("remote workspaces", func(t *testing.T) {
		ct, _ := newTestContainer(t, WithRemoteWorkspaces())
		ct.Load(ctx, &fakeSource{workspaces: []domain.Workspace{{ID: "ws-r"}}})
		assert.Equal(t, []domain.Workspace{{ID: "ws-r"}}, ct.Snapshot().Workspaces)
	})
}
