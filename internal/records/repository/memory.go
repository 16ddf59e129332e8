package repository

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
)

// Memory is a Repository kept in process memory. All collections share one
// lock so cascades and reference checks see a consistent view.
type Memory struct {
	mu sync.RWMutex

	projects     *memCollection[domain.Project]
	tasks        *memCollection[domain.Task]
	participants *memCollection[domain.Participant]
	roles        *memCollection[domain.Role]
	clients      *memCollection[domain.Client]
	leads        *memCollection[domain.Lead]
	workspaces   *memCollection[domain.Workspace]

	hashes map[string]string
}

func identity[T any](v T) T { return v }

func NewMemory() *Memory {
	m := &Memory{hashes: make(map[string]string)}

	m.projects = &memCollection[domain.Project]{
		mu: &m.mu, prefix: prefixProject,
		id:    func(p domain.Project) string { return p.ID },
		setID: func(p *domain.Project, id string) { p.ID = id },
		norm:  (*domain.Project).Normalize,
		clone: domain.Project.Clone,
		afterDelete: func(id string) {
			m.tasks.items = slices.DeleteFunc(m.tasks.items, func(t domain.Task) bool { return t.ProjectID == id })
		},
	}
	m.tasks = &memCollection[domain.Task]{
		mu: &m.mu, prefix: prefixTask,
		id:    func(t domain.Task) string { return t.ID },
		setID: func(t *domain.Task, id string) { t.ID = id },
		norm:  (*domain.Task).Normalize,
		clone: domain.Task.Clone,
		carry: func(stored domain.Task, v *domain.Task) { v.ProjectID = stored.ProjectID },
		check: func(t domain.Task) error {
			if _, ok := m.projects.find(t.ProjectID); !ok {
				return fmt.Errorf("%w: project %s does not exist", domain.ErrConflict, t.ProjectID)
			}
			return nil
		},
	}
	m.participants = &memCollection[domain.Participant]{
		mu: &m.mu, prefix: prefixParticipant,
		id:    func(p domain.Participant) string { return p.ID },
		setID: func(p *domain.Participant, id string) { p.ID = id },
		norm:  (*domain.Participant).Normalize,
		clone: identity[domain.Participant],
		conflicts: func(a, b domain.Participant) bool {
			return a.Email == b.Email
		},
		afterDelete: func(id string) {
			delete(m.hashes, id)
			for i := range m.projects.items {
				m.projects.items[i].ParticipantIDs = slices.DeleteFunc(m.projects.items[i].ParticipantIDs, func(pid string) bool { return pid == id })
			}
			for i := range m.tasks.items {
				if m.tasks.items[i].AssigneeID == id {
					m.tasks.items[i].AssigneeID = ""
				}
			}
		},
	}
	m.roles = &memCollection[domain.Role]{
		mu: &m.mu, prefix: prefixRole,
		id:    func(r domain.Role) string { return r.ID },
		setID: func(r *domain.Role, id string) { r.ID = id },
		norm:  (*domain.Role).Normalize,
		clone: domain.Role.Clone,
		conflicts: func(a, b domain.Role) bool {
			return strings.EqualFold(a.Name, b.Name)
		},
		beforeDelete: func(id string) error {
			if slices.ContainsFunc(m.participants.items, func(p domain.Participant) bool { return p.RoleID == id }) {
				return fmt.Errorf("%w: role %s is assigned to participants", domain.ErrConflict, id)
			}
			return nil
		},
	}
	m.clients = &memCollection[domain.Client]{
		mu: &m.mu, prefix: prefixClient,
		id:    func(c domain.Client) string { return c.ID },
		setID: func(c *domain.Client, id string) { c.ID = id },
		norm:  (*domain.Client).Normalize,
		clone: identity[domain.Client],
		conflicts: func(a, b domain.Client) bool {
			return a.Email == b.Email || (a.CNPJ != "" && a.CNPJ == b.CNPJ)
		},
	}
	m.leads = &memCollection[domain.Lead]{
		mu: &m.mu, prefix: prefixLead,
		id:    func(l domain.Lead) string { return l.ID },
		setID: func(l *domain.Lead, id string) { l.ID = id },
		norm:  (*domain.Lead).Normalize,
		clone: domain.Lead.Clone,
		stamp: func(l *domain.Lead) {
			if l.CreatedAt.IsZero() {
				l.CreatedAt = time.Now().UTC()
			}
		},
		carry: func(stored domain.Lead, v *domain.Lead) { v.CreatedAt = stored.CreatedAt },
	}
	m.workspaces = &memCollection[domain.Workspace]{
		mu: &m.mu, prefix: prefixWorkspace,
		id:    func(w domain.Workspace) string { return w.ID },
		setID: func(w *domain.Workspace, id string) { w.ID = id },
		norm:  (*domain.Workspace).Normalize,
		clone: identity[domain.Workspace],
		beforeDelete: func(id string) error {
			if slices.ContainsFunc(m.projects.items, func(p domain.Project) bool { return p.WorkspaceID == id }) {
				return fmt.Errorf("%w: workspace %s has projects", domain.ErrConflict, id)
			}
			return nil
		},
	}
	return m
}

func (m *Memory) Projects() Collection[domain.Project]         { return m.projects }
func (m *Memory) Tasks() Collection[domain.Task]               { return m.tasks }
func (m *Memory) Participants() Collection[domain.Participant] { return m.participants }
func (m *Memory) Roles() Collection[domain.Role]               { return m.roles }
func (m *Memory) Clients() Collection[domain.Client]           { return m.clients }
func (m *Memory) Leads() Collection[domain.Lead]               { return m.leads }
func (m *Memory) Workspaces() Collection[domain.Workspace]     { return m.workspaces }

func (m *Memory) ProjectTasks(_ context.Context, projectID string) ([]domain.Task, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.projects.find(projectID); !ok {
		return nil, fmt.Errorf("project %s: %w", projectID, domain.ErrNotFound)
	}
	out := []domain.Task{}
	for _, t := range m.tasks.items {
		if t.ProjectID == projectID {
			out = append(out, t.Clone())
		}
	}
	return out, nil
}

func (m *Memory) CreateParticipant(ctx context.Context, p domain.Participant, password string) (domain.Participant, error) {
	hash, err := hashPassword(password)
	if err != nil {
		return domain.Participant{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	created, err := m.participants.create(p)
	if err != nil {
		return domain.Participant{}, err
	}
	m.hashes[created.ID] = hash
	return created, nil
}

func (m *Memory) Authenticate(_ context.Context, email, password string) (domain.Participant, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, p := range m.participants.items {
		if p.Email == email {
			if checkPassword(m.hashes[p.ID], password) {
				return p, nil
			}
			break
		}
	}
	return domain.Participant{}, ErrInvalidCredentials
}

func (m *Memory) Close() error { return nil }

type memCollection[T any] struct {
	mu     *sync.RWMutex
	items  []T
	prefix string

	id    func(T) string
	setID func(*T, string)
	norm  func(*T) error
	clone func(T) T

	// optional hooks, evaluated under the write lock
	stamp        func(*T)
	carry        func(stored T, v *T)
	conflicts    func(a, b T) bool
	check        func(T) error
	beforeDelete func(id string) error
	afterDelete  func(id string)
}

func (c *memCollection[T]) find(id string) (int, bool) {
	for i, v := range c.items {
		if c.id(v) == id {
			return i, true
		}
	}
	return -1, false
}

func (c *memCollection[T]) validate(v T, except string) error {
	if c.check != nil {
		if err := c.check(v); err != nil {
			return err
		}
	}
	if c.conflicts == nil {
		return nil
	}
	for _, existing := range c.items {
		if c.id(existing) != except && c.conflicts(existing, v) {
			return fmt.Errorf("%w: %s %s", domain.ErrConflict, c.prefix, c.id(existing))
		}
	}
	return nil
}

func (c *memCollection[T]) List(context.Context) ([]T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	for i, v := range c.items {
		out[i] = c.clone(v)
	}
	return out, nil
}

func (c *memCollection[T]) Create(_ context.Context, v T) (T, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.create(v)
}

// create expects the write lock to be held.
func (c *memCollection[T]) create(v T) (T, error) {
	var zero T
	if err := c.norm(&v); err != nil {
		return zero, err
	}
	if err := c.validate(v, ""); err != nil {
		return zero, err
	}
	if c.stamp != nil {
		c.stamp(&v)
	}
	return withNewID(c.prefix, func(id string) (T, error) {
		if _, taken := c.find(id); taken {
			return zero, errIDTaken
		}
		c.setID(&v, id)
		c.items = append(c.items, c.clone(v))
		return c.clone(v), nil
	})
}

func (c *memCollection[T]) Update(_ context.Context, id string, v T) (T, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.find(id)
	if !ok {
		return zero, fmt.Errorf("%s %s: %w", c.prefix, id, domain.ErrNotFound)
	}
	c.setID(&v, id)
	if c.carry != nil {
		c.carry(c.items[i], &v)
	}
	if err := c.norm(&v); err != nil {
		return zero, err
	}
	if err := c.validate(v, id); err != nil {
		return zero, err
	}
	c.items[i] = c.clone(v)
	return c.clone(v), nil
}

// Delete removes id; deleting an absent id succeeds.
func (c *memCollection[T]) Delete(_ context.Context, id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	i, ok := c.find(id)
	if !ok {
		return nil
	}
	if c.beforeDelete != nil {
		if err := c.beforeDelete(id); err != nil {
			return err
		}
	}
	c.items = slices.Delete(c.items, i, i+1)
	if c.afterDelete != nil {
		c.afterDelete(id)
	}
	return nil
}
