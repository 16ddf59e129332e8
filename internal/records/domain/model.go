package domain

import "time"

// Project is a unit of client work grouped under a workspace.
// ParticipantIDs is a membership set; it is always replaced as a whole.
type Project struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	StartDate      Date     `json:"startDate"`
	EndDate        Date     `json:"endDate"`
	Status         string   `json:"status"`
	WorkspaceID    string   `json:"workspaceId"`
	ClientID       string   `json:"clientId,omitempty"`
	LeadID         string   `json:"leadId,omitempty"`
	PmoID          string   `json:"pmoId,omitempty"`
	ParticipantIDs []string `json:"participantIds"`
}

// Task belongs to exactly one project for its whole lifetime.
type Task struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
	Priority    string          `json:"priority"`
	DueDate     Date            `json:"dueDate"`
	AssigneeID  string          `json:"assigneeId,omitempty"`
	ProjectID   string          `json:"projectId"`
	Comments    []Comment       `json:"comments"`
	Attachments []Attachment    `json:"attachments"`
	Checklist   []ChecklistItem `json:"checklist"`
}

type Comment struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type Attachment struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Participant is a user of the system. The credential is never part of it.
type Participant struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	RoleID string `json:"roleId"`
	Avatar string `json:"avatar"`
}

type Role struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

type Client struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone,omitempty"`
	Company      string `json:"company"`
	Avatar       string `json:"avatar,omitempty"`
	CNPJ         string `json:"cnpj"`
	Address      string `json:"address"`
	ExternalCode string `json:"suportewebCode,omitempty"`
}

type Lead struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Email       string       `json:"email,omitempty"`
	Company     string       `json:"company,omitempty"`
	Phone       string       `json:"phone,omitempty"`
	Description string       `json:"description,omitempty"`
	Status      string       `json:"status"`
	Value       float64      `json:"value"`
	CreatedAt   time.Time    `json:"createdAt"`
	ClientID    string       `json:"clientId,omitempty"`
	Comments    []Comment    `json:"comments"`
	Attachments []Attachment `json:"attachments"`
}

type Workspace struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ClientID    string `json:"clientId,omitempty"`
}

// ProjectTemplate is a reusable, ordered list of tasks expanded on project creation.
type ProjectTemplate struct {
	ID    string         `json:"id" yaml:"id,omitempty"`
	Name  string         `json:"name" yaml:"name"`
	Tasks []TemplateTask `json:"tasks" yaml:"tasks"`
}

// TemplateTask.DueDayOffset counts calendar days from the project start date.
type TemplateTask struct {
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description" yaml:"description"`
	Priority     string `json:"priority" yaml:"priority"`
	DueDayOffset int    `json:"dueDayOffset" yaml:"dueDayOffset"`
}

type CompanyInfo struct {
	Name         string `json:"name"`
	CNPJ         string `json:"cnpj"`
	Address      string `json:"address"`
	ExternalCode string `json:"suportewebCode,omitempty"`
	LogoURL      string `json:"logoUrl"`
}
