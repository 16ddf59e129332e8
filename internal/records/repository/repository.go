// Package repository stores the records served by the reference API.
package repository

import (
	"context"
	"errors"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
)

// ErrInvalidCredentials is returned by Authenticate for an unknown email or a
// wrong password; the two cases are not distinguished.
var ErrInvalidCredentials = errors.New("invalid credentials")

// DefaultPassword is assigned to participants created without one.
const DefaultPassword = "password123"

// Collection is the CRUD surface shared by every record kind. Create ignores
// the id of its argument and returns the stored record with its new id.
type Collection[T any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, v T) (T, error)
	Update(ctx context.Context, id string, v T) (T, error)
	Delete(ctx context.Context, id string) error
}

type Repository interface {
	Projects() Collection[domain.Project]
	Tasks() Collection[domain.Task]
	Participants() Collection[domain.Participant]
	Roles() Collection[domain.Role]
	Clients() Collection[domain.Client]
	Leads() Collection[domain.Lead]
	Workspaces() Collection[domain.Workspace]

	// ProjectTasks lists the tasks of one project.
	ProjectTasks(ctx context.Context, projectID string) ([]domain.Task, error)

	// CreateParticipant stores p with a bcrypt hash of password.
	CreateParticipant(ctx context.Context, p domain.Participant, password string) (domain.Participant, error)

	// Authenticate returns the participant owning email when password matches.
	Authenticate(ctx context.Context, email, password string) (domain.Participant, error)

	Close() error
}

// Id prefixes per collection.
const (
	prefixProject     = "proj"
	prefixTask        = "task"
	prefixParticipant = "user"
	prefixRole        = "role"
	prefixClient      = "client"
	prefixLead        = "lead"
	prefixWorkspace   = "ws"
)
