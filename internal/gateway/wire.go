package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Wire schemas: the JSON the records API exchanges. They stay inside this
// package; everything outside sees domain types produced by mapping.go.

type projectWire struct {
	ID             string   `json:"id,omitempty"`
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	StartDate      string   `json:"startDate"`
	EndDate        string   `json:"endDate"`
	Status         string   `json:"status"`
	WorkspaceID    string   `json:"workspaceId"`
	ClientID       string   `json:"clientId,omitempty"`
	LeadID         string   `json:"leadId,omitempty"`
	PmoID          string   `json:"pmoId,omitempty"`
	ParticipantIDs []string `json:"participantIds"`
}

type taskWire struct {
	ID          string              `json:"id,omitempty"`
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Status      string              `json:"status"`
	Priority    string              `json:"priority"`
	DueDate     string              `json:"dueDate"`
	AssigneeID  string              `json:"assigneeId,omitempty"`
	ProjectID   string              `json:"projectId"`
	Comments    []commentWire       `json:"comments"`
	Attachments []attachmentWire    `json:"attachments"`
	Checklist   []checklistItemWire `json:"checklist"`
}

type commentWire struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"authorId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

type attachmentWire struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

type checklistItemWire struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

type participantWire struct {
	ID       string `json:"id,omitempty"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	RoleID   string `json:"roleId"`
	Avatar   string `json:"avatar"`
	Password string `json:"password,omitempty"`
}

type roleWire struct {
	ID          string   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Permissions []string `json:"permissions"`
}

type clientWire struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone,omitempty"`
	Company        string `json:"company"`
	Avatar         string `json:"avatar,omitempty"`
	CNPJ           string `json:"cnpj"`
	Address        string `json:"address"`
	SuportewebCode string `json:"suportewebCode,omitempty"`
}

type leadWire struct {
	ID          string           `json:"id,omitempty"`
	Name        string           `json:"name"`
	Email       string           `json:"email,omitempty"`
	Company     string           `json:"company,omitempty"`
	Phone       string           `json:"phone,omitempty"`
	Description string           `json:"description,omitempty"`
	Status      string           `json:"status"`
	Value       flexNumber       `json:"value"`
	CreatedAt   *time.Time       `json:"createdAt,omitempty"`
	ClientID    string           `json:"clientId,omitempty"`
	Comments    []commentWire    `json:"comments"`
	Attachments []attachmentWire `json:"attachments"`
}

type workspaceWire struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	Description string `json:"description"`
	ClientID    string `json:"clientId,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type errorBody struct {
	Error string `json:"error"`
}

// flexNumber decodes a JSON number or a numeric string; postgres NUMERIC
// columns reach the wire as strings from some drivers.
type flexNumber float64

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*n = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s == "" {
			*n = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return fmt.Errorf("invalid numeric string %q: %w", s, err)
		}
		*n = flexNumber(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*n = flexNumber(f)
	return nil
}
