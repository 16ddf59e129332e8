package gateway

import (
	"context"
	"net/http"
	"net/url"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
)

// Collection names; each is also the first path segment of its routes.
const (
	CollectionProjects     = "projects"
	CollectionTasks        = "tasks"
	CollectionParticipants = "participants"
	CollectionRoles        = "roles"
	CollectionClients      = "clients"
	CollectionLeads        = "leads"
	CollectionWorkspaces   = "workspaces"
	collectionAuth         = "auth"
)

func itemPath(collection, id string) string {
	return "/" + collection + "/" + url.PathEscape(id)
}

func (c *Client) remove(ctx context.Context, collection, id string) error {
	return c.do(ctx, http.MethodDelete, collection, itemPath(collection, id), nil, nil)
}

// Projects

func (c *Client) ListProjects(ctx context.Context) ([]domain.Project, error) {
	return list(ctx, c, CollectionProjects, "/"+CollectionProjects, projectFromWire)
}

// CreateProject creates the project and its participant set in one call.
func (c *Client) CreateProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	return one(ctx, c, http.MethodPost, CollectionProjects, "/"+CollectionProjects, projectToWire(p), projectFromWire)
}

// UpdateProject sends the full record; ParticipantIDs replaces the stored membership set.
func (c *Client) UpdateProject(ctx context.Context, p domain.Project) (domain.Project, error) {
	return one(ctx, c, http.MethodPut, CollectionProjects, itemPath(CollectionProjects, p.ID), projectToWire(p), projectFromWire)
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.remove(ctx, CollectionProjects, id)
}

// ListProjectTasks returns the tasks scoped to one project.
func (c *Client) ListProjectTasks(ctx context.Context, projectID string) ([]domain.Task, error) {
	return list(ctx, c, CollectionTasks, itemPath(CollectionProjects, projectID)+"/tasks", taskFromWire)
}

// Tasks

func (c *Client) ListTasks(ctx context.Context) ([]domain.Task, error) {
	return list(ctx, c, CollectionTasks, "/"+CollectionTasks, taskFromWire)
}

func (c *Client) CreateTask(ctx context.Context, t domain.Task) (domain.Task, error) {
	return one(ctx, c, http.MethodPost, CollectionTasks, "/"+CollectionTasks, taskToWire(t), taskFromWire)
}

func (c *Client) UpdateTask(ctx context.Context, t domain.Task) (domain.Task, error) {
	return one(ctx, c, http.MethodPut, CollectionTasks, itemPath(CollectionTasks, t.ID), taskToWire(t), taskFromWire)
}

func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.remove(ctx, CollectionTasks, id)
}

// Participants

func (c *Client) ListParticipants(ctx context.Context) ([]domain.Participant, error) {
	return list(ctx, c, CollectionParticipants, "/"+CollectionParticipants, participantFromWire)
}

// CreateParticipant sends password once; it is hashed and kept by the API only.
func (c *Client) CreateParticipant(ctx context.Context, p domain.Participant, password string) (domain.Participant, error) {
	return one(ctx, c, http.MethodPost, CollectionParticipants, "/"+CollectionParticipants, participantToWire(p, password), participantFromWire)
}

func (c *Client) UpdateParticipant(ctx context.Context, p domain.Participant) (domain.Participant, error) {
	return one(ctx, c, http.MethodPut, CollectionParticipants, itemPath(CollectionParticipants, p.ID), participantToWire(p, ""), participantFromWire)
}

func (c *Client) DeleteParticipant(ctx context.Context, id string) error {
	return c.remove(ctx, CollectionParticipants, id)
}

// Roles

func (c *Client) ListRoles(ctx context.Context) ([]domain.Role, error) {
	return list(ctx, c, CollectionRoles, "/"+CollectionRoles, roleFromWire)
}

func (c *Client) CreateRole(ctx context.Context, r domain.Role) (domain.Role, error) {
	return one(ctx, c, http.MethodPost, CollectionRoles, "/"+CollectionRoles, roleToWire(r), roleFromWire)
}

func (c *Client) UpdateRole(ctx context.Context, r domain.Role) (domain.Role, error) {
	return one(ctx, c, http.MethodPut, CollectionRoles, itemPath(CollectionRoles, r.ID), roleToWire(r), roleFromWire)
}

func (c *Client) DeleteRole(ctx context.Context, id string) error {
	return c.remove(ctx, CollectionRoles, id)
}

// Clients

func (c *Client) ListClients(ctx context.Context) ([]domain.Client, error) {
	return list(ctx, c, CollectionClients, "/"+CollectionClients, clientFromWire)
}

func (c *Client) CreateClient(ctx context.Context, cl domain.Client) (domain.Client, error) {
	return one(ctx, c, http.MethodPost, CollectionClients, "/"+CollectionClients, clientToWire(cl), clientFromWire)
}

func (c *Client) UpdateClient(ctx context.Context, cl domain.Client) (domain.Client, error) {
	return one(ctx, c, http.MethodPut, CollectionClients, itemPath(CollectionClients, cl.ID), clientToWire(cl), clientFromWire)
}

func (c *Client) DeleteClient(ctx context.Context, id string) error {
	return c.remove(ctx, CollectionClients, id)
}

// Leads

func (c *Client) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	return list(ctx, c, CollectionLeads, "/"+CollectionLeads, leadFromWire)
}

func (c *Client) CreateLead(ctx context.Context, l domain.Lead) (domain.Lead, error) {
	return one(ctx, c, http.MethodPost, CollectionLeads, "/"+CollectionLeads, leadToWire(l), leadFromWire)
}

func (c *Client) UpdateLead(ctx context.Context, l domain.Lead) (domain.Lead, error) {
	return one(ctx, c, http.MethodPut, CollectionLeads, itemPath(CollectionLeads, l.ID), leadToWire(l), leadFromWire)
}

func (c *Client) DeleteLead(ctx context.Context, id string) error {
	return c.remove(ctx, CollectionLeads, id)
}

// Workspaces (route-backed configuration only)

func (c *Client) ListWorkspaces(ctx context.Context) ([]domain.Workspace, error) {
	return list(ctx, c, CollectionWorkspaces, "/"+CollectionWorkspaces, workspaceFromWire)
}

func (c *Client) CreateWorkspace(ctx context.Context, ws domain.Workspace) (domain.Workspace, error) {
	return one(ctx, c, http.MethodPost, CollectionWorkspaces, "/"+CollectionWorkspaces, workspaceToWire(ws), workspaceFromWire)
}

func (c *Client) UpdateWorkspace(ctx context.Context, ws domain.Workspace) (domain.Workspace, error) {
	return one(ctx, c, http.MethodPut, CollectionWorkspaces, itemPath(CollectionWorkspaces, ws.ID), workspaceToWire(ws), workspaceFromWire)
}

func (c *Client) DeleteWorkspace(ctx context.Context, id string) error {
	return c.remove(ctx, CollectionWorkspaces, id)
}

// Login exchanges credentials for the participant they belong to.
func (c *Client) Login(ctx context.Context, email, password string) (domain.Participant, error) {
	return one(ctx, c, http.MethodPost, collectionAuth, "/"+collectionAuth+"/login", loginRequest{Email: email, Password: password}, participantFromWire)
}
