package repository

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
)

//go:embed schema.sql
var schema string

// Postgres is a Repository over the relational schema in schema.sql.
type Postgres struct {
	db *sql.DB

	projects     *pgProjects
	tasks        *pgCollection[domain.Task]
	participants *pgCollection[domain.Participant]
	roles        *pgCollection[domain.Role]
	clients      *pgCollection[domain.Client]
	leads        *pgCollection[domain.Lead]
	workspaces   *pgCollection[domain.Workspace]
}

// OpenPostgres exposes pool through database/sql.
func OpenPostgres(pool *pgxpool.Pool) *Postgres {
	return NewPostgres(stdlib.OpenDBFromPool(pool))
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{
		db:       db,
		projects: &pgProjects{db: db},
		tasks: &pgCollection[domain.Task]{
			db: db, table: "tasks", prefix: prefixTask, columns: taskColumns,
			scan: scanTask, norm: (*domain.Task).Normalize,
			insert: `
INSERT INTO tasks (id, title, description, status, priority, due_date, assignee_id, project_id, comments, attachments, checklist)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb, $10::jsonb, $11::jsonb)
RETURNING ` + taskColumns,
			insertArgs: func(t domain.Task) ([]any, error) {
				args, err := taskArgs(t)
				if err != nil {
					return nil, err
				}
				// project_id goes between assignee and the json columns
				return append(args[:6:6], append([]any{t.ProjectID}, args[6:]...)...), nil
			},
			update: `
UPDATE tasks
SET title = $2, description = $3, status = $4, priority = $5, due_date = $6, assignee_id = $7,
    comments = $8::jsonb, attachments = $9::jsonb, checklist = $10::jsonb
WHERE id = $1
RETURNING ` + taskColumns,
			updateArgs: taskArgs,
		},
		participants: &pgCollection[domain.Participant]{
			db: db, table: "participants", prefix: prefixParticipant, columns: participantColumns,
			scan: scanParticipant, norm: (*domain.Participant).Normalize,
			insert: `
INSERT INTO participants (id, name, email, role_id, avatar, password_hash)
VALUES ($1, $2, $3, $4, $5, NULL)
RETURNING ` + participantColumns,
			insertArgs: participantArgs,
			update: `
UPDATE participants SET name = $2, email = $3, role_id = $4, avatar = $5
WHERE id = $1
RETURNING ` + participantColumns,
			updateArgs: participantArgs,
		},
		roles: &pgCollection[domain.Role]{
			db: db, table: "roles", prefix: prefixRole, columns: roleColumns,
			scan: scanRole, norm: (*domain.Role).Normalize,
			insert: `
INSERT INTO roles (id, name, permissions) VALUES ($1, $2, $3::jsonb)
RETURNING ` + roleColumns,
			insertArgs: roleArgs,
			update: `
UPDATE roles SET name = $2, permissions = $3::jsonb WHERE id = $1
RETURNING ` + roleColumns,
			updateArgs: roleArgs,
		},
		clients: &pgCollection[domain.Client]{
			db: db, table: "clients", prefix: prefixClient, columns: clientColumns,
			scan: scanClient, norm: (*domain.Client).Normalize,
			insert: `
INSERT INTO clients (id, name, email, phone, company, avatar, cnpj, address, suporteweb_code)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING ` + clientColumns,
			insertArgs: clientArgs,
			update: `
UPDATE clients
SET name = $2, email = $3, phone = $4, company = $5, avatar = $6, cnpj = $7, address = $8, suporteweb_code = $9
WHERE id = $1
RETURNING ` + clientColumns,
			updateArgs: clientArgs,
		},
		leads: &pgCollection[domain.Lead]{
			db: db, table: "leads", prefix: prefixLead, columns: leadColumns,
			scan: scanLead, norm: (*domain.Lead).Normalize,
			insert: `
INSERT INTO leads (id, name, email, company, phone, description, status, value, client_id, comments, attachments, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10::jsonb, $11::jsonb, COALESCE($12::timestamptz, now()))
RETURNING ` + leadColumns,
			insertArgs: func(l domain.Lead) ([]any, error) {
				args, err := leadArgs(l)
				if err != nil {
					return nil, err
				}
				var created any
				if !l.CreatedAt.IsZero() {
					created = l.CreatedAt.UTC()
				}
				return append(args, created), nil
			},
			update: `
UPDATE leads
SET name = $2, email = $3, company = $4, phone = $5, description = $6, status = $7, value = $8,
    client_id = $9, comments = $10::jsonb, attachments = $11::jsonb
WHERE id = $1
RETURNING ` + leadColumns,
			updateArgs: leadArgs,
		},
		workspaces: &pgCollection[domain.Workspace]{
			db: db, table: "workspaces", prefix: prefixWorkspace, columns: workspaceColumns,
			scan: scanWorkspace, norm: (*domain.Workspace).Normalize,
			insert: `
INSERT INTO workspaces (id, name, description, client_id) VALUES ($1, $2, $3, $4)
RETURNING ` + workspaceColumns,
			insertArgs: workspaceArgs,
			update: `
UPDATE workspaces SET name = $2, description = $3, client_id = $4 WHERE id = $1
RETURNING ` + workspaceColumns,
			updateArgs: workspaceArgs,
		},
	}
}

// Migrate creates missing tables.
func (r *Postgres) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}
	return nil
}

// Ping reports whether the database is reachable.
func (r *Postgres) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *Postgres) Close() error { return r.db.Close() }

func (r *Postgres) Projects() Collection[domain.Project]         { return r.projects }
func (r *Postgres) Tasks() Collection[domain.Task]               { return r.tasks }
func (r *Postgres) Participants() Collection[domain.Participant] { return r.participants }
func (r *Postgres) Roles() Collection[domain.Role]               { return r.roles }
func (r *Postgres) Clients() Collection[domain.Client]           { return r.clients }
func (r *Postgres) Leads() Collection[domain.Lead]               { return r.leads }
func (r *Postgres) Workspaces() Collection[domain.Workspace]     { return r.workspaces }

func (r *Postgres) ProjectTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)`, projectID).Scan(&exists); err != nil {
		return nil, fmt.Errorf("failed to look up project %s: %w", projectID, err)
	}
	if !exists {
		return nil, fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE project_id = $1 ORDER BY due_date NULLS LAST, id`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks of project %s: %w", projectID, err)
	}
	return collect(rows, scanTask)
}

func (r *Postgres) CreateParticipant(ctx context.Context, p domain.Participant, password string) (domain.Participant, error) {
	if err := p.Normalize(); err != nil {
		return domain.Participant{}, err
	}
	hash, err := hashPassword(password)
	if err != nil {
		return domain.Participant{}, err
	}

	const q = `
INSERT INTO participants (id, name, email, role_id, avatar, password_hash)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING ` + participantColumns

	return withNewID(prefixParticipant, func(id string) (domain.Participant, error) {
		args, _ := participantArgs(p)
		args = append(append([]any{id}, args...), hash)
		created, err := scanParticipant(r.db.QueryRowContext(ctx, q, args...))
		if err != nil {
			return domain.Participant{}, mapError(err, "participants")
		}
		return created, nil
	})
}

func (r *Postgres) Authenticate(ctx context.Context, email, password string) (domain.Participant, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var hash string
	var p domain.Participant
	err := r.db.QueryRowContext(ctx, `
SELECT `+participantColumns+`, COALESCE(password_hash, '')
FROM participants WHERE email = $1`, email).
		Scan(&p.ID, &p.Name, &p.Email, &p.RoleID, &p.Avatar, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Participant{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.Participant{}, fmt.Errorf("failed to look up participant: %w", err)
	}
	if !checkPassword(hash, password) {
		return domain.Participant{}, ErrInvalidCredentials
	}
	return p, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func collect[T any](rows *sql.Rows, scan func(scanner) (T, error)) ([]T, error) {
	defer rows.Close()
	out := make([]T, 0, 16)
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// mapError translates driver errors. A primary-key violation on table becomes
// errIDTaken so the insert is retried with a new id.
func mapError(err error, table string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			if pgErr.ConstraintName == table+"_pkey" {
				return errIDTaken
			}
			return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
		case "23503":
			return fmt.Errorf("%w: %s", domain.ErrConflict, pgErr.ConstraintName)
		}
	}
	return err
}

// pgCollection implements Collection for a table without child rows. Its
// insert statement takes the new id as $1 and its update statement the
// target id as $1; the remaining parameters come from the args funcs.
type pgCollection[T any] struct {
	db      *sql.DB
	table   string
	prefix  string
	columns string

	scan func(scanner) (T, error)
	norm func(*T) error

	insert     string
	insertArgs func(T) ([]any, error)
	update     string
	updateArgs func(T) ([]any, error)
}

func (c *pgCollection[T]) List(ctx context.Context) ([]T, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT `+c.columns+` FROM `+c.table+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c.table, err)
	}
	return collect(rows, c.scan)
}

func (c *pgCollection[T]) Create(ctx context.Context, v T) (T, error) {
	var zero T
	if err := c.norm(&v); err != nil {
		return zero, err
	}
	args, err := c.insertArgs(v)
	if err != nil {
		return zero, err
	}
	return withNewID(c.prefix, func(id string) (T, error) {
		created, err := c.scan(c.db.QueryRowContext(ctx, c.insert, append([]any{id}, args...)...))
		if err != nil {
			return zero, mapError(err, c.table)
		}
		return created, nil
	})
}

func (c *pgCollection[T]) Update(ctx context.Context, id string, v T) (T, error) {
	var zero T
	if err := c.norm(&v); err != nil {
		return zero, err
	}
	args, err := c.updateArgs(v)
	if err != nil {
		return zero, err
	}
	updated, err := c.scan(c.db.QueryRowContext(ctx, c.update, append([]any{id}, args...)...))
	if err != nil {
		return zero, fmt.Errorf("%s %s: %w", c.table, id, mapError(err, c.table))
	}
	return updated, nil
}

func (c *pgCollection[T]) Delete(ctx context.Context, id string) error {
	if _, err := c.db.ExecContext(ctx, `DELETE FROM `+c.table+` WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", c.table, id, mapError(err, c.table))
	}
	return nil
}

// Column lists and argument builders per table.

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func dateArg(d domain.Date) any {
	if d.IsZero() {
		return nil
	}
	return d.String()
}

func dateFrom(t sql.NullTime) domain.Date {
	if !t.Valid {
		return ""
	}
	return domain.DateOf(t.Time)
}

func jsonArg(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to encode json column: %w", err)
	}
	return string(data), nil
}

func jsonColumn[T any](data []byte, dst *[]T) error {
	*dst = []T{}
	if len(data) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("failed to decode json column: %w", err)
	}
	if *dst == nil {
		*dst = []T{}
	}
	return nil
}

const taskColumns = `id, title, COALESCE(description, ''), COALESCE(status, ''), COALESCE(priority, ''), due_date,
       COALESCE(assignee_id, ''), project_id, comments, attachments, checklist`

func scanTask(s scanner) (domain.Task, error) {
	var t domain.Task
	var due sql.NullTime
	var comments, attachments, checklist []byte
	if err := s.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &due,
		&t.AssigneeID, &t.ProjectID, &comments, &attachments, &checklist); err != nil {
		return domain.Task{}, err
	}
	t.DueDate = dateFrom(due)
	if err := jsonColumn(comments, &t.Comments); err != nil {
		return domain.Task{}, err
	}
	if err := jsonColumn(attachments, &t.Attachments); err != nil {
		return domain.Task{}, err
	}
	if err := jsonColumn(checklist, &t.Checklist); err != nil {
		return domain.Task{}, err
	}
	return t, nil
}

func taskArgs(t domain.Task) ([]any, error) {
	comments, err := jsonArg(t.Comments)
	if err != nil {
		return nil, err
	}
	attachments, err := jsonArg(t.Attachments)
	if err != nil {
		return nil, err
	}
	checklist, err := jsonArg(t.Checklist)
	if err != nil {
		return nil, err
	}
	return []any{t.Title, t.Description, t.Status, t.Priority, dateArg(t.DueDate), nullable(t.AssigneeID),
		comments, attachments, checklist}, nil
}

const participantColumns = `id, name, email, COALESCE(role_id, ''), COALESCE(avatar, '')`

func scanParticipant(s scanner) (domain.Participant, error) {
	var p domain.Participant
	err := s.Scan(&p.ID, &p.Name, &p.Email, &p.RoleID, &p.Avatar)
	return p, err
}

func participantArgs(p domain.Participant) ([]any, error) {
	return []any{p.Name, p.Email, nullable(p.RoleID), nullable(p.Avatar)}, nil
}

const roleColumns = `id, name, permissions`

func scanRole(s scanner) (domain.Role, error) {
	var r domain.Role
	var perms []byte
	if err := s.Scan(&r.ID, &r.Name, &perms); err != nil {
		return domain.Role{}, err
	}
	if err := jsonColumn(perms, &r.Permissions); err != nil {
		return domain.Role{}, err
	}
	return r, nil
}

func roleArgs(r domain.Role) ([]any, error) {
	perms, err := jsonArg(domain.UniqueIDs(r.Permissions))
	if err != nil {
		return nil, err
	}
	return []any{r.Name, perms}, nil
}

const clientColumns = `id, name, email, COALESCE(phone, ''), COALESCE(company, ''), COALESCE(avatar, ''),
       COALESCE(cnpj, ''), COALESCE(address, ''), COALESCE(suporteweb_code, '')`

func scanClient(s scanner) (domain.Client, error) {
	var c domain.Client
	err := s.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Company, &c.Avatar, &c.CNPJ, &c.Address, &c.ExternalCode)
	return c, err
}

func clientArgs(c domain.Client) ([]any, error) {
	return []any{c.Name, c.Email, nullable(c.Phone), nullable(c.Company), nullable(c.Avatar),
		nullable(c.CNPJ), nullable(c.Address), nullable(c.ExternalCode)}, nil
}

const leadColumns = `id, name, COALESCE(email, ''), COALESCE(company, ''), COALESCE(phone, ''), COALESCE(description, ''),
       COALESCE(status, ''), created_at, COALESCE(value, 0)::float8, COALESCE(client_id, ''), comments, attachments`

func scanLead(s scanner) (domain.Lead, error) {
	var l domain.Lead
	var created sql.NullTime
	var comments, attachments []byte
	if err := s.Scan(&l.ID, &l.Name, &l.Email, &l.Company, &l.Phone, &l.Description,
		&l.Status, &created, &l.Value, &l.ClientID, &comments, &attachments); err != nil {
		return domain.Lead{}, err
	}
	if created.Valid {
		l.CreatedAt = created.Time.UTC()
	}
	if err := jsonColumn(comments, &l.Comments); err != nil {
		return domain.Lead{}, err
	}
	if err := jsonColumn(attachments, &l.Attachments); err != nil {
		return domain.Lead{}, err
	}
	return l, nil
}

func leadArgs(l domain.Lead) ([]any, error) {
	comments, err := jsonArg(l.Comments)
	if err != nil {
		return nil, err
	}
	attachments, err := jsonArg(l.Attachments)
	if err != nil {
		return nil, err
	}
	return []any{l.Name, nullable(l.Email), nullable(l.Company), nullable(l.Phone), nullable(l.Description),
		l.Status, l.Value, nullable(l.ClientID), comments, attachments}, nil
}

const workspaceColumns = `id, name, COALESCE(description, ''), COALESCE(client_id, '')`

func scanWorkspace(s scanner) (domain.Workspace, error) {
	var w domain.Workspace
	err := s.Scan(&w.ID, &w.Name, &w.Description, &w.ClientID)
	return w, err
}

func workspaceArgs(w domain.Workspace) ([]any, error) {
	return []any{w.Name, w.Description, nullable(w.ClientID)}, nil
}
