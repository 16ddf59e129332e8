// Package store holds the authoritative in-memory snapshot of every record
// collection of a client session. All mutation goes through Container.Dispatch.
package store

import (
	"slices"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
)

// State is one consistent snapshot of the session.
type State struct {
	Loaded bool

	Projects     []domain.Project
	Tasks        []domain.Task
	Participants []domain.Participant
	Roles        []domain.Role
	Clients      []domain.Client
	Leads        []domain.Lead

	CurrentUser      *domain.Participant
	CompanyInfo      domain.CompanyInfo
	ProjectTemplates []domain.ProjectTemplate
	Workspaces       []domain.Workspace
}

// Patch is a partial snapshot. A nil field means "no change"; a present field
// replaces the whole collection, there is no merge by id.
type Patch struct {
	Loaded *bool

	Projects     *[]domain.Project
	Tasks        *[]domain.Task
	Participants *[]domain.Participant
	Roles        *[]domain.Role
	Clients      *[]domain.Client
	Leads        *[]domain.Lead

	CurrentUser      UserChange
	CompanyInfo      *domain.CompanyInfo
	ProjectTemplates *[]domain.ProjectTemplate
	Workspaces       *[]domain.Workspace
}

// UserChange distinguishes "leave the current user alone" (zero value) from
// "replace it", where a nil User clears the session.
type UserChange struct {
	Set  bool
	User *domain.Participant
}

func SetUser(p domain.Participant) UserChange {
	return UserChange{Set: true, User: &p}
}

func ClearUser() UserChange {
	return UserChange{Set: true}
}

// Ref returns a pointer to v, for building patches inline.
func Ref[T any](v T) *T {
	return &v
}

// Empty reports whether applying p would change nothing.
func (p Patch) Empty() bool {
	return p.Loaded == nil && p.Projects == nil && p.Tasks == nil && p.Participants == nil &&
		p.Roles == nil && p.Clients == nil && p.Leads == nil && !p.CurrentUser.Set &&
		p.CompanyInfo == nil && p.ProjectTemplates == nil && p.Workspaces == nil
}

func (s State) clone() State {
	out := s
	out.Projects = cloneEach(s.Projects, domain.Project.Clone)
	out.Tasks = cloneEach(s.Tasks, domain.Task.Clone)
	out.Participants = slices.Clone(s.Participants)
	out.Roles = cloneEach(s.Roles, domain.Role.Clone)
	out.Clients = slices.Clone(s.Clients)
	out.Leads = cloneEach(s.Leads, domain.Lead.Clone)
	out.ProjectTemplates = cloneEach(s.ProjectTemplates, domain.ProjectTemplate.Clone)
	out.Workspaces = slices.Clone(s.Workspaces)
	if s.CurrentUser != nil {
		u := *s.CurrentUser
		out.CurrentUser = &u
	}
	return out
}

func cloneEach[T any](in []T, clone func(T) T) []T {
	if in == nil {
		return nil
	}
	out := make([]T, len(in))
	for i, v := range in {
		out[i] = clone(v)
	}
	return out
}

// emptyIfNil keeps collections non-nil so snapshots encode as [] rather than null.
func emptyIfNil[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return in
}
