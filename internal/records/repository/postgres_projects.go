package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
)

const projectColumns = `id, name, COALESCE(description, ''), start_date, end_date, COALESCE(status, ''),
       COALESCE(workspace_id, ''), COALESCE(client_id, ''), COALESCE(lead_id, ''), COALESCE(pmo_id, '')`

// pgProjects keeps the participant set in project_participants; a project and
// its membership are always written in one transaction.
type pgProjects struct {
	db *sql.DB
}

func scanProject(s scanner) (domain.Project, error) {
	var p domain.Project
	var start, end sql.NullTime
	if err := s.Scan(&p.ID, &p.Name, &p.Description, &start, &end, &p.Status,
		&p.WorkspaceID, &p.ClientID, &p.LeadID, &p.PmoID); err != nil {
		return domain.Project{}, err
	}
	p.StartDate = dateFrom(start)
	p.EndDate = dateFrom(end)
	p.ParticipantIDs = []string{}
	return p, nil
}

func projectArgs(p domain.Project) []any {
	return []any{p.Name, p.Description, dateArg(p.StartDate), dateArg(p.EndDate), p.Status,
		nullable(p.WorkspaceID), nullable(p.ClientID), nullable(p.LeadID), nullable(p.PmoID)}
}

func (r *pgProjects) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	projects, err := collect(rows, scanProject)
	if err != nil {
		return nil, err
	}

	members, err := r.db.QueryContext(ctx, `SELECT project_id, participant_id FROM project_participants ORDER BY project_id, participant_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list project participants: %w", err)
	}
	defer members.Close()

	byProject := make(map[string][]string, len(projects))
	for members.Next() {
		var projectID, participantID string
		if err := members.Scan(&projectID, &participantID); err != nil {
			return nil, err
		}
		byProject[projectID] = append(byProject[projectID], participantID)
	}
	if err := members.Err(); err != nil {
		return nil, err
	}

	for i := range projects {
		if ids, ok := byProject[projects[i].ID]; ok {
			projects[i].ParticipantIDs = ids
		}
	}
	return projects, nil
}

func (r *pgProjects) Create(ctx context.Context, p domain.Project) (domain.Project, error) {
	if err := p.Normalize(); err != nil {
		return domain.Project{}, err
	}

	const q = `
INSERT INTO projects (id, name, description, start_date, end_date, status, workspace_id, client_id, lead_id, pmo_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING ` + projectColumns

	return withNewID(prefixProject, func(id string) (domain.Project, error) {
		var created domain.Project
		err := r.inTx(ctx, func(tx *sql.Tx) error {
			var err error
			created, err = scanProject(tx.QueryRowContext(ctx, q, append([]any{id}, projectArgs(p)...)...))
			if err != nil {
				return mapError(err, "projects")
			}
			created.ParticipantIDs, err = insertMembers(ctx, tx, id, p.ParticipantIDs)
			return err
		})
		return created, err
	})
}

// Update replaces the record and its whole participant set.
func (r *pgProjects) Update(ctx context.Context, id string, p domain.Project) (domain.Project, error) {
	if err := p.Normalize(); err != nil {
		return domain.Project{}, err
	}

	const q = `
UPDATE projects
SET name = $2, description = $3, start_date = $4, end_date = $5, status = $6,
    workspace_id = $7, client_id = $8, lead_id = $9, pmo_id = $10
WHERE id = $1
RETURNING ` + projectColumns

	var updated domain.Project
	err := r.inTx(ctx, func(tx *sql.Tx) error {
		var err error
		updated, err = scanProject(tx.QueryRowContext(ctx, q, append([]any{id}, projectArgs(p)...)...))
		if err != nil {
			return fmt.Errorf("project %s: %w", id, mapError(err, "projects"))
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM project_participants WHERE project_id = $1`, id); err != nil {
			return fmt.Errorf("failed to clear participants of project %s: %w", id, err)
		}
		updated.ParticipantIDs, err = insertMembers(ctx, tx, id, p.ParticipantIDs)
		return err
	})
	return updated, err
}

// Delete removes the project; tasks and memberships go with it by cascade.
func (r *pgProjects) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete project %s: %w", id, mapError(err, "projects"))
	}
	return nil
}

func insertMembers(ctx context.Context, tx *sql.Tx, projectID string, participantIDs []string) ([]string, error) {
	ids := domain.UniqueIDs(participantIDs)
	for _, pid := range ids {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO project_participants (project_id, participant_id) VALUES ($1, $2)`,
			projectID, pid); err != nil {
			return nil, fmt.Errorf("failed to add participant %s: %w", pid, mapError(err, "project_participants"))
		}
	}
	return ids, nil
}

func (r *pgProjects) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
