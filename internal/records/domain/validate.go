package domain

import (
	"fmt"
	"strings"
)

// Normalize methods canonicalize a record received from outside (dates,
// membership sets, nil slices) and reject records missing required fields.
// Errors wrap ErrInvalidRecord.

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRecord, fmt.Sprintf(format, args...))
}

func (p *Project) Normalize() error {
	if strings.TrimSpace(p.Name) == "" {
		return invalid("project name is required")
	}
	var err error
	if p.StartDate, err = ParseDate(string(p.StartDate)); err != nil {
		return invalid("startDate: %v", err)
	}
	if p.EndDate, err = ParseDate(string(p.EndDate)); err != nil {
		return invalid("endDate: %v", err)
	}
	p.ParticipantIDs = UniqueIDs(p.ParticipantIDs)
	return nil
}

func (t *Task) Normalize() error {
	if strings.TrimSpace(t.Title) == "" {
		return invalid("task title is required")
	}
	if t.ProjectID == "" {
		return invalid("task projectId is required")
	}
	var err error
	if t.DueDate, err = ParseDate(string(t.DueDate)); err != nil {
		return invalid("dueDate: %v", err)
	}
	if t.Status == "" {
		t.Status = TaskStatusTodo
	}
	if t.Comments == nil {
		t.Comments = []Comment{}
	}
	if t.Attachments == nil {
		t.Attachments = []Attachment{}
	}
	if t.Checklist == nil {
		t.Checklist = []ChecklistItem{}
	}
	return nil
}

func (p *Participant) Normalize() error {
	p.Email = strings.ToLower(strings.TrimSpace(p.Email))
	if p.Name == "" || p.Email == "" {
		return invalid("participant name and email are required")
	}
	return nil
}

func (r *Role) Normalize() error {
	if strings.TrimSpace(r.Name) == "" {
		return invalid("role name is required")
	}
	r.Permissions = UniqueIDs(r.Permissions)
	return nil
}

func (c *Client) Normalize() error {
	if c.Name == "" || c.Email == "" {
		return invalid("client name and email are required")
	}
	return nil
}

func (l *Lead) Normalize() error {
	if l.Name == "" {
		return invalid("lead name is required")
	}
	if l.Comments == nil {
		l.Comments = []Comment{}
	}
	if l.Attachments == nil {
		l.Attachments = []Attachment{}
	}
	return nil
}

func (w *Workspace) Normalize() error {
	if strings.TrimSpace(w.Name) == "" {
		return invalid("workspace name is required")
	}
	return nil
}
