package gateway

import (
	"fmt"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
)

// This file is the only translation point between wire schemas and domain
// types. Outbound mappers drop ids: the API allocates them.

func projectFromWire(w projectWire) (domain.Project, error) {
	start, err := domain.ParseDate(w.StartDate)
	if err != nil {
		return domain.Project{}, fmt.Errorf("project %s startDate: %w", w.ID, err)
	}
	end, err := domain.ParseDate(w.EndDate)
	if err != nil {
		return domain.Project{}, fmt.Errorf("project %s endDate: %w", w.ID, err)
	}
	return domain.Project{
		ID:             w.ID,
		Name:           w.Name,
		Description:    w.Description,
		StartDate:      start,
		EndDate:        end,
		Status:         w.Status,
		WorkspaceID:    w.WorkspaceID,
		ClientID:       w.ClientID,
		LeadID:         w.LeadID,
		PmoID:          w.PmoID,
		ParticipantIDs: domain.UniqueIDs(w.ParticipantIDs),
	}, nil
}

func projectToWire(p domain.Project) projectWire {
	return projectWire{
		Name:           p.Name,
		Description:    p.Description,
		StartDate:      p.StartDate.String(),
		EndDate:        p.EndDate.String(),
		Status:         p.Status,
		WorkspaceID:    p.WorkspaceID,
		ClientID:       p.ClientID,
		LeadID:         p.LeadID,
		PmoID:          p.PmoID,
		ParticipantIDs: domain.UniqueIDs(p.ParticipantIDs),
	}
}

func taskFromWire(w taskWire) (domain.Task, error) {
	due, err := domain.ParseDate(w.DueDate)
	if err != nil {
		return domain.Task{}, fmt.Errorf("task %s dueDate: %w", w.ID, err)
	}
	return domain.Task{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Status:      w.Status,
		Priority:    w.Priority,
		DueDate:     due,
		AssigneeID:  w.AssigneeID,
		ProjectID:   w.ProjectID,
		Comments:    commentsFromWire(w.Comments),
		Attachments: attachmentsFromWire(w.Attachments),
		Checklist:   checklistFromWire(w.Checklist),
	}, nil
}

func taskToWire(t domain.Task) taskWire {
	return taskWire{
		Title:       t.Title,
		Description: t.Description,
		Status:      t.Status,
		Priority:    t.Priority,
		DueDate:     t.DueDate.String(),
		AssigneeID:  t.AssigneeID,
		ProjectID:   t.ProjectID,
		Comments:    commentsToWire(t.Comments),
		Attachments: attachmentsToWire(t.Attachments),
		Checklist:   checklistToWire(t.Checklist),
	}
}

func participantFromWire(w participantWire) (domain.Participant, error) {
	// Password is never carried into the domain, even if a server echoes it.
	return domain.Participant{
		ID:     w.ID,
		Name:   w.Name,
		Email:  w.Email,
		RoleID: w.RoleID,
		Avatar: w.Avatar,
	}, nil
}

func participantToWire(p domain.Participant, password string) participantWire {
	return participantWire{
		Name:     p.Name,
		Email:    p.Email,
		RoleID:   p.RoleID,
		Avatar:   p.Avatar,
		Password: password,
	}
}

func roleFromWire(w roleWire) (domain.Role, error) {
	return domain.Role{
		ID:          w.ID,
		Name:        w.Name,
		Permissions: domain.UniqueIDs(w.Permissions),
	}, nil
}

func roleToWire(r domain.Role) roleWire {
	return roleWire{Name: r.Name, Permissions: domain.UniqueIDs(r.Permissions)}
}

func clientFromWire(w clientWire) (domain.Client, error) {
	return domain.Client{
		ID:           w.ID,
		Name:         w.Name,
		Email:        w.Email,
		Phone:        w.Phone,
		Company:      w.Company,
		Avatar:       w.Avatar,
		CNPJ:         w.CNPJ,
		Address:      w.Address,
		ExternalCode: w.SuportewebCode,
	}, nil
}

func clientToWire(c domain.Client) clientWire {
	return clientWire{
		Name:           c.Name,
		Email:          c.Email,
		Phone:          c.Phone,
		Company:        c.Company,
		Avatar:         c.Avatar,
		CNPJ:           c.CNPJ,
		Address:        c.Address,
		SuportewebCode: c.ExternalCode,
	}
}

func leadFromWire(w leadWire) (domain.Lead, error) {
	l := domain.Lead{
		ID:          w.ID,
		Name:        w.Name,
		Email:       w.Email,
		Company:     w.Company,
		Phone:       w.Phone,
		Description: w.Description,
		Status:      w.Status,
		Value:       float64(w.Value),
		ClientID:    w.ClientID,
		Comments:    commentsFromWire(w.Comments),
		Attachments: attachmentsFromWire(w.Attachments),
	}
	if w.CreatedAt != nil {
		l.CreatedAt = *w.CreatedAt
	}
	return l, nil
}

func leadToWire(l domain.Lead) leadWire {
	w := leadWire{
		Name:        l.Name,
		Email:       l.Email,
		Company:     l.Company,
		Phone:       l.Phone,
		Description: l.Description,
		Status:      l.Status,
		Value:       flexNumber(l.Value),
		ClientID:    l.ClientID,
		Comments:    commentsToWire(l.Comments),
		Attachments: attachmentsToWire(l.Attachments),
	}
	if !l.CreatedAt.IsZero() {
		created := l.CreatedAt
		w.CreatedAt = &created
	}
	return w
}

func workspaceFromWire(w workspaceWire) (domain.Workspace, error) {
	return domain.Workspace{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		ClientID:    w.ClientID,
	}, nil
}

func workspaceToWire(ws domain.Workspace) workspaceWire {
	return workspaceWire{Name: ws.Name, Description: ws.Description, ClientID: ws.ClientID}
}

func commentsFromWire(in []commentWire) []domain.Comment {
	out := make([]domain.Comment, 0, len(in))
	for _, c := range in {
		out = append(out, domain.Comment{ID: c.ID, AuthorID: c.AuthorID, Content: c.Content, CreatedAt: c.CreatedAt})
	}
	return out
}

func commentsToWire(in []domain.Comment) []commentWire {
	out := make([]commentWire, 0, len(in))
	for _, c := range in {
		out = append(out, commentWire{ID: c.ID, AuthorID: c.AuthorID, Content: c.Content, CreatedAt: c.CreatedAt})
	}
	return out
}

func attachmentsFromWire(in []attachmentWire) []domain.Attachment {
	out := make([]domain.Attachment, 0, len(in))
	for _, a := range in {
		out = append(out, domain.Attachment{ID: a.ID, Name: a.Name, URL: a.URL, Size: a.Size})
	}
	return out
}

func attachmentsToWire(in []domain.Attachment) []attachmentWire {
	out := make([]attachmentWire, 0, len(in))
	for _, a := range in {
		out = append(out, attachmentWire{ID: a.ID, Name: a.Name, URL: a.URL, Size: a.Size})
	}
	return out
}

func checklistFromWire(in []checklistItemWire) []domain.ChecklistItem {
	out := make([]domain.ChecklistItem, 0, len(in))
	for _, c := range in {
		out = append(out, domain.ChecklistItem{ID: c.ID, Text: c.Text, Completed: c.Completed})
	}
	return out
}

func checklistToWire(in []domain.ChecklistItem) []checklistItemWire {
	out := make([]checklistItemWire, 0, len(in))
	for _, c := range in {
		out = append(out, checklistItemWire{ID: c.ID, Text: c.Text, Completed: c.Completed})
	}
	return out
}
