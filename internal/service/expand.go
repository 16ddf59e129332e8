package service

import (
	"fmt"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
)

// ExpandTemplate synthesizes one task per template task for project p. Each
// due date is p's start date plus the task's day offset; without a start date
// the due dates stay empty. Ids come from newID and must be unique per call.
func ExpandTemplate(p domain.Project, tmpl domain.ProjectTemplate, newID func(prefix string) string) ([]domain.Task, error) {
	tasks := make([]domain.Task, 0, len(tmpl.Tasks))
	for i, tt := range tmpl.Tasks {
		var due domain.Date
		if !p.StartDate.IsZero() {
			d, err := p.StartDate.AddDays(tt.DueDayOffset)
			if err != nil {
				return nil, fmt.Errorf("template %s task %d: %w", tmpl.ID, i, err)
			}
			due = d
		}
		tasks = append(tasks, domain.Task{
			ID:          newID("task"),
			Title:       tt.Title,
			Description: tt.Description,
			Status:      domain.TaskStatusTodo,
			Priority:    tt.Priority,
			DueDate:     due,
			ProjectID:   p.ID,
			Comments:    []domain.Comment{},
			Attachments: []domain.Attachment{},
			Checklist:   []domain.ChecklistItem{},
		})
	}
	return tasks, nil
}

func validateTemplate(t domain.ProjectTemplate) error {
	if t.Name == "" {
		return fmt.Errorf("%w: template name is required", domain.ErrInvalidRecord)
	}
	for i, tt := range t.Tasks {
		if tt.Title == "" {
			return fmt.Errorf("%w: template task %d has no title", domain.ErrInvalidRecord, i)
		}
		if tt.DueDayOffset < 0 {
			return fmt.Errorf("%w: template task %q has a negative day offset", domain.ErrInvalidRecord, tt.Title)
		}
	}
	return nil
}
