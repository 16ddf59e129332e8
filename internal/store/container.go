package store

import (
	"context"
	"log/slog"
	"sync"

	"github.com/GoSim-25-26J-441/workdesk/internal/cache"
	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
)

// Container owns the session state. Dispatches are serialized; listeners run
// after the lock is released and receive their own copy of the new state.
type Container struct {
	mu    sync.Mutex
	state State

	cache            *cache.Cache
	logger           *slog.Logger
	remoteWorkspaces bool

	lmu       sync.Mutex
	listeners map[int]func(State)
	nextID    int
}

type ContainerOption func(*Container)

// WithRemoteWorkspaces makes workspaces a remote-owned collection: they are
// fetched by Load and never written to the local cache.
func WithRemoteWorkspaces() ContainerOption {
	return func(c *Container) { c.remoteWorkspaces = true }
}

func WithLogger(logger *slog.Logger) ContainerOption {
	return func(c *Container) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewContainer hydrates the local collections from c (nil is allowed) and
// starts with every remote collection empty and Loaded false.
func NewContainer(ctx context.Context, c *cache.Cache, opts ...ContainerOption) *Container {
	ct := &Container{
		cache:     c,
		logger:    slog.Default(),
		listeners: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(ct)
	}
	ct.logger = ct.logger.With("component", "store")

	ct.state = State{
		Projects:         []domain.Project{},
		Tasks:            []domain.Task{},
		Participants:     []domain.Participant{},
		Roles:            []domain.Role{},
		Clients:          []domain.Client{},
		Leads:            []domain.Lead{},
		CurrentUser:      cache.Read[*domain.Participant](ctx, c, cache.KeyCurrentUser, nil),
		CompanyInfo:      cache.Read(ctx, c, cache.KeyCompanyInfo, DefaultCompanyInfo()),
		ProjectTemplates: emptyIfNil(cache.Read(ctx, c, cache.KeyProjectTemplates, DefaultProjectTemplates())),
		Workspaces:       []domain.Workspace{},
	}
	if !ct.remoteWorkspaces {
		ct.state.Workspaces = emptyIfNil(cache.Read(ctx, c, cache.KeyWorkspaces, DefaultWorkspaces()))
	}
	return ct
}

// RemoteWorkspaces reports whether workspaces are owned by the records API.
func (c *Container) RemoteWorkspaces() bool {
	return c.remoteWorkspaces
}

// Snapshot returns a deep copy of the current state.
func (c *Container) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Dispatch applies p. Each present field replaces its collection; local-cache
// collections are written through.
func (c *Container) Dispatch(ctx context.Context, p Patch) {
	c.Update(ctx, func(State) Patch { return p })
}

// Update computes a patch from the current state and applies it under the
// same lock, so read-modify-write of one collection cannot interleave with
// another dispatch. fn receives a copy and must not block.
func (c *Container) Update(ctx context.Context, fn func(State) Patch) {
	c.mu.Lock()
	p := fn(c.state.clone())
	if p.Empty() {
		c.mu.Unlock()
		return
	}
	c.apply(ctx, p)
	next := c.state.clone()
	c.mu.Unlock()

	c.notify(next)
}

func (c *Container) apply(ctx context.Context, p Patch) {
	s := &c.state
	if p.Loaded != nil {
		s.Loaded = *p.Loaded
	}
	if p.Projects != nil {
		s.Projects = emptyIfNil(*p.Projects)
	}
	if p.Tasks != nil {
		s.Tasks = emptyIfNil(*p.Tasks)
	}
	if p.Participants != nil {
		s.Participants = emptyIfNil(*p.Participants)
	}
	if p.Roles != nil {
		s.Roles = emptyIfNil(*p.Roles)
	}
	if p.Clients != nil {
		s.Clients = emptyIfNil(*p.Clients)
	}
	if p.Leads != nil {
		s.Leads = emptyIfNil(*p.Leads)
	}

	if p.CurrentUser.Set {
		s.CurrentUser = nil
		if p.CurrentUser.User != nil {
			u := *p.CurrentUser.User
			s.CurrentUser = &u
			c.cache.Write(ctx, cache.KeyCurrentUser, u)
		} else {
			c.cache.Remove(ctx, cache.KeyCurrentUser)
		}
	}
	if p.CompanyInfo != nil {
		s.CompanyInfo = *p.CompanyInfo
		c.cache.Write(ctx, cache.KeyCompanyInfo, s.CompanyInfo)
	}
	if p.ProjectTemplates != nil {
		s.ProjectTemplates = emptyIfNil(*p.ProjectTemplates)
		c.cache.Write(ctx, cache.KeyProjectTemplates, s.ProjectTemplates)
	}
	if p.Workspaces != nil {
		s.Workspaces = emptyIfNil(*p.Workspaces)
		if !c.remoteWorkspaces {
			c.cache.Write(ctx, cache.KeyWorkspaces, s.Workspaces)
		}
	}
}

// Subscribe registers fn to run after every applied dispatch. The returned
// func removes it.
func (c *Container) Subscribe(fn func(State)) (cancel func()) {
	c.lmu.Lock()
	defer c.lmu.Unlock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() {
		c.lmu.Lock()
		defer c.lmu.Unlock()
		delete(c.listeners, id)
	}
}

func (c *Container) notify(s State) {
	c.lmu.Lock()
	fns := make([]func(State), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.lmu.Unlock()

	for _, fn := range fns {
		fn(s.clone())
	}
}
