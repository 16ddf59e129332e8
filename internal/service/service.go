// Package service implements the mutation and query operations of a client
// session: every change goes through the records API first and lands in the
// store only after the API accepted it.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
	"github.com/GoSim-25-26J-441/workdesk/internal/store"
	"github.com/google/uuid"
)

// Gateway is the records API as seen by the service; *gateway.Client implements it.
type Gateway interface {
	store.RemoteSource
	store.WorkspaceSource

	CreateProject(ctx context.Context, p domain.Project) (domain.Project, error)
	UpdateProject(ctx context.Context, p domain.Project) (domain.Project, error)
	DeleteProject(ctx context.Context, id string) error
	ListProjectTasks(ctx context.Context, projectID string) ([]domain.Task, error)

	CreateTask(ctx context.Context, t domain.Task) (domain.Task, error)
	UpdateTask(ctx context.Context, t domain.Task) (domain.Task, error)
	DeleteTask(ctx context.Context, id string) error

	CreateParticipant(ctx context.Context, p domain.Participant, password string) (domain.Participant, error)
	UpdateParticipant(ctx context.Context, p domain.Participant) (domain.Participant, error)
	DeleteParticipant(ctx context.Context, id string) error

	CreateRole(ctx context.Context, r domain.Role) (domain.Role, error)
	UpdateRole(ctx context.Context, r domain.Role) (domain.Role, error)
	DeleteRole(ctx context.Context, id string) error

	CreateClient(ctx context.Context, c domain.Client) (domain.Client, error)
	UpdateClient(ctx context.Context, c domain.Client) (domain.Client, error)
	DeleteClient(ctx context.Context, id string) error

	CreateLead(ctx context.Context, l domain.Lead) (domain.Lead, error)
	UpdateLead(ctx context.Context, l domain.Lead) (domain.Lead, error)
	DeleteLead(ctx context.Context, id string) error

	CreateWorkspace(ctx context.Context, w domain.Workspace) (domain.Workspace, error)
	UpdateWorkspace(ctx context.Context, w domain.Workspace) (domain.Workspace, error)
	DeleteWorkspace(ctx context.Context, id string) error

	Login(ctx context.Context, email, password string) (domain.Participant, error)
}

type Service struct {
	gw     Gateway
	state  *store.Container
	logger *slog.Logger

	persistGeneratedTasks bool
	duplicateConcurrency  int
	newID                 func(prefix string) string
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithPersistGeneratedTasks sends template-generated tasks through the task
// create call instead of keeping them in local state only.
func WithPersistGeneratedTasks(enabled bool) Option {
	return func(s *Service) { s.persistGeneratedTasks = enabled }
}

// WithDuplicateConcurrency bounds the number of in-flight task creations of
// one duplication.
func WithDuplicateConcurrency(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.duplicateConcurrency = n
		}
	}
}

func New(gw Gateway, state *store.Container, opts ...Option) *Service {
	s := &Service{
		gw:                   gw,
		state:                state,
		logger:               slog.Default(),
		duplicateConcurrency: 8,
		newID:                func(prefix string) string { return prefix + "-" + uuid.NewString() },
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With("component", "service")
	return s
}

// Load runs the initial parallel fetch of every remote collection.
func (s *Service) Load(ctx context.Context) store.LoadReport {
	return s.state.Load(ctx, s.gw)
}

// State returns a copy of the current snapshot.
func (s *Service) State() store.State {
	return s.state.Snapshot()
}

// fail logs a failed operation and returns it wrapped; state is left as it was.
func (s *Service) fail(op string, err error, args ...any) error {
	s.logger.Error(op+" failed", append(args, "error", err)...)
	return fmt.Errorf("failed to %s: %w", op, err)
}

type identified interface {
	RecordID() string
}

// upsert replaces the record with v's id or appends v.
func upsert[T identified](items []T, v T) []T {
	for i := range items {
		if items[i].RecordID() == v.RecordID() {
			items[i] = v
			return items
		}
	}
	return append(items, v)
}

// replace swaps the record with v's id; items without it are returned as is.
func replace[T identified](items []T, v T) []T {
	for i := range items {
		if items[i].RecordID() == v.RecordID() {
			items[i] = v
			break
		}
	}
	return items
}

func without[T identified](items []T, id string) []T {
	out := make([]T, 0, len(items))
	for _, v := range items {
		if v.RecordID() != id {
			out = append(out, v)
		}
	}
	return out
}

func find[T identified](items []T, id string) (T, bool) {
	for _, v := range items {
		if v.RecordID() == id {
			return v, true
		}
	}
	var zero T
	return zero, false
}
