package repository

import (
	"context"
	"strings"
	"testing"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_CreateAssignsIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	a, err := repo.Projects().Create(ctx, domain.Project{ID: "chosen-by-client", Name: "A", StartDate: "2024-01-10T00:00:00Z"})
	require.NoError(t, err)
	b, err := repo.Projects().Create(ctx, domain.Project{Name: "B"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(a.ID, "proj-"))
	assert.NotEqual(t, "chosen-by-client", a.ID)
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, domain.Date("2024-01-10"), a.StartDate)

	list, err := repo.Projects().List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestMemory_CreateRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	_, err := repo.Projects().Create(ctx, domain.Project{Name: ""})
	assert.ErrorIs(t, err, domain.ErrInvalidRecord)

	_, err = repo.Tasks().Create(ctx, domain.Task{Title: "orphan", ProjectID: "proj-missing"})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestMemory_Update(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	p, err := repo.Projects().Create(ctx, domain.Project{Name: "A"})
	require.NoError(t, err)
	task, err := repo.Tasks().Create(ctx, domain.Task{Title: "t", ProjectID: p.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.TaskStatusTodo, task.Status)

	t.Run("replaces the record", func(t *testing.T) {
		task.Title = "renamed"
		task.ProjectID = "somewhere-else"
		updated, err := repo.Tasks().Update(ctx, task.ID, task)
		require.NoError(t, err)
		assert.Equal(t, "renamed", updated.Title)
		assert.Equal(t, p.ID, updated.ProjectID, "a task never leaves its project")
	})

	t.Run("missing id", func(t *testing.T) {
		_, err := repo.Projects().Update(ctx, "proj-nope", domain.Project{Name: "x"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestMemory_DeleteProjectCascades(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	keep, _ := repo.Projects().Create(ctx, domain.Project{Name: "keep"})
	gone, _ := repo.Projects().Create(ctx, domain.Project{Name: "gone"})
	_, err := repo.Tasks().Create(ctx, domain.Task{Title: "a", ProjectID: gone.ID})
	require.NoError(t, err)
	kept, err := repo.Tasks().Create(ctx, domain.Task{Title: "b", ProjectID: keep.ID})
	require.NoError(t, err)

	require.NoError(t, repo.Projects().Delete(ctx, gone.ID))
	require.NoError(t, repo.Projects().Delete(ctx, gone.ID), "deleting twice is not an error")

	tasks, err := repo.Tasks().List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Task{kept}, tasks)

	_, err = repo.ProjectTasks(ctx, gone.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMemory_ReferenceChecks(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	role, err := repo.Roles().Create(ctx, domain.Role{Name: "Admin", Permissions: []string{"all", "all"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"all"}, role.Permissions)

	_, err = repo.Roles().Create(ctx, domain.Role{Name: "admin"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = repo.CreateParticipant(ctx, domain.Participant{Name: "Ana", Email: "ana@example.com", RoleID: role.ID}, "")
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Roles().Delete(ctx, role.ID), domain.ErrConflict)

	ws, err := repo.Workspaces().Create(ctx, domain.Workspace{Name: "Main"})
	require.NoError(t, err)
	_, err = repo.Projects().Create(ctx, domain.Project{Name: "p", WorkspaceID: ws.ID})
	require.NoError(t, err)
	assert.ErrorIs(t, repo.Workspaces().Delete(ctx, ws.ID), domain.ErrConflict)
}

func TestMemory_Authenticate(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	created, err := repo.CreateParticipant(ctx, domain.Participant{Name: "Ana", Email: "Ana@Example.com"}, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", created.Email)

	_, err = repo.CreateParticipant(ctx, domain.Participant{Name: "Other", Email: "ana@example.com"}, "x")
	assert.ErrorIs(t, err, domain.ErrConflict)

	user, err := repo.Authenticate(ctx, "ANA@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, created, user)

	_, err = repo.Authenticate(ctx, "ana@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = repo.Authenticate(ctx, "nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	defaulted, err := repo.CreateParticipant(ctx, domain.Participant{Name: "Bia", Email: "bia@example.com"}, "")
	require.NoError(t, err)
	user, err = repo.Authenticate(ctx, "bia@example.com", DefaultPassword)
	require.NoError(t, err)
	assert.Equal(t, defaulted.ID, user.ID)
}

func TestMemory_ListIsACopy(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()
	_, err := repo.Projects().Create(ctx, domain.Project{Name: "A", ParticipantIDs: []string{"u1"}})
	require.NoError(t, err)

	list, _ := repo.Projects().List(ctx)
	list[0].ParticipantIDs[0] = "changed"

	again, _ := repo.Projects().List(ctx)
	assert.Equal(t, []string{"u1"}, again[0].ParticipantIDs)
}
