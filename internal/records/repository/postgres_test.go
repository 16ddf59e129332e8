package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func setupPostgres(t *testing.T) (*Postgres, sqlmock.Sqlmock, *sql.DB) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewPostgres(db), mock, db
}

var projectRowColumns = []string{
	"id", "name", "description", "start_date", "end_date", "status",
	"workspace_id", "client_id", "lead_id", "pmo_id",
}

var taskRowColumns = []string{
	"id", "title", "description", "status", "priority", "due_date",
	"assignee_id", "project_id", "comments", "attachments", "checklist",
}

func TestPostgres_ListProjects(t *testing.T) {
	repo, mock, db := setupPostgres(t)
	defer db.Close()

	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM projects ORDER BY id`).
		WillReturnRows(sqlmock.NewRows(projectRowColumns).
			AddRow("proj-1", "ERP", "", start, nil, "Em Andamento", "ws-1", "", "", "").
			AddRow("proj-2", "Site", "d", nil, nil, "", "", "", "", ""))
	mock.ExpectQuery(`SELECT project_id, participant_id FROM project_participants`).
		WillReturnRows(sqlmock.NewRows([]string{"project_id", "participant_id"}).
			AddRow("proj-1", "u1").
			AddRow("proj-1", "u2"))

	projects, err := repo.Projects().List(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 2)

	assert.Equal(t, domain.Date("2024-01-10"), projects[0].StartDate)
	assert.Equal(t, domain.Date(""), projects[0].EndDate)
	assert.Equal(t, []string{"u1", "u2"}, projects[0].ParticipantIDs)
	assert.Equal(t, []string{}, projects[1].ParticipantIDs)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_CreateProject(t *testing.T) {
	repo, mock, db := setupPostgres(t)
	defer db.Close()

	t.Run("retries on id collision", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO projects`).
			WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "projects_pkey"})
		mock.ExpectRollback()

		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO projects`).
			WithArgs(sqlmock.AnyArg(), "ERP", "", "2024-01-10", nil, "", "ws-1", nil, nil, nil).
			WillReturnRows(sqlmock.NewRows(projectRowColumns).
				AddRow("proj-abc", "ERP", "", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), nil, "", "ws-1", "", "", ""))
		mock.ExpectExec(`INSERT INTO project_participants`).
			WithArgs(sqlmock.AnyArg(), "u1").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		created, err := repo.Projects().Create(context.Background(), domain.Project{
			Name:           "ERP",
			StartDate:      "2024-01-10",
			WorkspaceID:    "ws-1",
			ParticipantIDs: []string{"u1", "u1"},
		})
		require.NoError(t, err)
		assert.Equal(t, "proj-abc", created.ID)
		assert.Equal(t, []string{"u1"}, created.ParticipantIDs)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown participant is a conflict", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO projects`).
			WillReturnRows(sqlmock.NewRows(projectRowColumns).
				AddRow("proj-def", "ERP", "", nil, nil, "", "", "", "", ""))
		mock.ExpectExec(`INSERT INTO project_participants`).
			WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "project_participants_participant_id_fkey"})
		mock.ExpectRollback()

		_, err := repo.Projects().Create(context.Background(), domain.Project{Name: "ERP", ParticipantIDs: []string{"ghost"}})
		assert.ErrorIs(t, err, domain.ErrConflict)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgres_UpdateProject(t *testing.T) {
	repo, mock, db := setupPostgres(t)
	defer db.Close()

	t.Run("replaces membership", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE projects`).
			WillReturnRows(sqlmock.NewRows(projectRowColumns).
				AddRow("proj-1", "Renamed", "", nil, nil, "", "", "", "", ""))
		mock.ExpectExec(`DELETE FROM project_participants WHERE project_id = \$1`).
			WithArgs("proj-1").
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`INSERT INTO project_participants`).
			WithArgs("proj-1", "u3").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		updated, err := repo.Projects().Update(context.Background(), "proj-1", domain.Project{Name: "Renamed", ParticipantIDs: []string{"u3"}})
		require.NoError(t, err)
		assert.Equal(t, []string{"u3"}, updated.ParticipantIDs)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing project", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`UPDATE projects`).
			WillReturnRows(sqlmock.NewRows(projectRowColumns))
		mock.ExpectRollback()

		_, err := repo.Projects().Update(context.Background(), "proj-x", domain.Project{Name: "x"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestPostgres_ProjectTasks(t *testing.T) {
	repo, mock, db := setupPostgres(t)
	defer db.Close()

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("proj-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectQuery(`FROM tasks WHERE project_id = \$1`).
		WithArgs("proj-1").
		WillReturnRows(sqlmock.NewRows(taskRowColumns).
			AddRow("task-1", "Kickoff", "", "A Fazer", "Alta", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), "u1", "proj-1",
				`[{"id":"c1","authorId":"u1","content":"ok","createdAt":"2024-01-11T09:00:00Z"}]`, nil, `[]`))

	tasks, err := repo.ProjectTasks(context.Background(), "proj-1")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, domain.Date("2024-01-15"), tasks[0].DueDate)
	require.Len(t, tasks[0].Comments, 1)
	assert.Equal(t, "ok", tasks[0].Comments[0].Content)
	assert.NotNil(t, tasks[0].Attachments)
	assert.Empty(t, tasks[0].Attachments)
	require.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery(`SELECT EXISTS`).
		WithArgs("proj-missing").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	_, err = repo.ProjectTasks(context.Background(), "proj-missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgres_CreateTask(t *testing.T) {
	repo, mock, db := setupPostgres(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO tasks`).
		WithArgs(sqlmock.AnyArg(), "Kickoff", "", "A Fazer", "Alta", "2024-01-15", nil, "proj-1", `[]`, `[]`, `[]`).
		WillReturnRows(sqlmock.NewRows(taskRowColumns).
			AddRow("task-9", "Kickoff", "", "A Fazer", "Alta", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), "", "proj-1", `[]`, `[]`, `[]`))

	created, err := repo.Tasks().Create(context.Background(), domain.Task{
		Title: "Kickoff", Priority: domain.PriorityHigh, DueDate: "2024-01-15", ProjectID: "proj-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "task-9", created.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_ParticipantConflict(t *testing.T) {
	repo, mock, db := setupPostgres(t)
	defer db.Close()

	mock.ExpectQuery(`INSERT INTO participants`).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "participants_email_key"})

	_, err := repo.CreateParticipant(context.Background(), domain.Participant{Name: "Ana", Email: "ana@example.com"}, "pw")
	assert.ErrorIs(t, err, domain.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Authenticate(t *testing.T) {
	repo, mock, db := setupPostgres(t)
	defer db.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)
	columns := []string{"id", "name", "email", "role_id", "avatar", "password_hash"}

	t.Run("valid credentials", func(t *testing.T) {
		mock.ExpectQuery(`FROM participants WHERE email = \$1`).
			WithArgs("ana@example.com").
			WillReturnRows(sqlmock.NewRows(columns).AddRow("user-1", "Ana", "ana@example.com", "role-1", "", string(hash)))

		user, err := repo.Authenticate(context.Background(), " Ana@Example.com ", "s3cret")
		require.NoError(t, err)
		assert.Equal(t, domain.Participant{ID: "user-1", Name: "Ana", Email: "ana@example.com", RoleID: "role-1"}, user)
	})

	t.Run("wrong password", func(t *testing.T) {
		mock.ExpectQuery(`FROM participants WHERE email = \$1`).
			WillReturnRows(sqlmock.NewRows(columns).AddRow("user-1", "Ana", "ana@example.com", "", "", string(hash)))

		_, err := repo.Authenticate(context.Background(), "ana@example.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("unknown email", func(t *testing.T) {
		mock.ExpectQuery(`FROM participants WHERE email = \$1`).
			WillReturnRows(sqlmock.NewRows(columns))

		_, err := repo.Authenticate(context.Background(), "x@example.com", "s3cret")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_Leads(t *testing.T) {
	repo, mock, db := setupPostgres(t)
	defer db.Close()

	created := time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC)
	mock.ExpectQuery(`FROM leads ORDER BY id`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "name", "email", "company", "phone", "description", "status", "created_at", "value", "client_id", "comments", "attachments",
		}).AddRow("lead-1", "Acme", "", "Acme SA", "", "", "Novo", created, 1500.5, "client-1", nil, nil))

	leads, err := repo.Leads().List(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, 1500.5, leads[0].Value)
	assert.Equal(t, created, leads[0].CreatedAt)
	assert.Equal(t, []domain.Comment{}, leads[0].Comments)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgres_DeleteRoleInUse(t *testing.T) {
	repo, mock, db := setupPostgres(t)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM roles WHERE id = \$1`).
		WithArgs("role-1").
		WillReturnError(&pgconn.PgError{Code: "23503", ConstraintName: "participants_role_id_fkey"})

	err := repo.Roles().Delete(context.Background(), "role-1")
	assert.ErrorIs(t, err, domain.ErrConflict)
	require.NoError(t, mock.ExpectationsWereMet())
}
