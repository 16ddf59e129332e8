package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_ListProjects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/projects", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"id": "proj-1", "name": "ERP rollout", "description": "d",
			"startDate": "2024-01-10T00:00:00.000Z", "endDate": "2024-03-01",
			"status": "Em Andamento", "workspaceId": "ws-1", "clientId": null,
			"participantIds": ["u1", "u2", "u1"]
		}]`))
	}))
	defer server.Close()

	client := New(server.URL + "/api")
	projects, err := client.ListProjects(context.Background())
	require.NoError(t, err)
	require.Len(t, projects, 1)

	p := projects[0]
	assert.Equal(t, "proj-1", p.ID)
	assert.Equal(t, domain.Date("2024-01-10"), p.StartDate)
	assert.Equal(t, domain.Date("2024-03-01"), p.EndDate)
	assert.Equal(t, "", p.ClientID)
	assert.Equal(t, []string{"u1", "u2"}, p.ParticipantIDs)
}

func TestClient_CreateProject(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		_, hasID := body["id"]
		assert.False(t, hasID, "ids are allocated by the API")
		assert.Equal(t, "2024-01-10", body["startDate"])

		w.WriteHeader(http.StatusCreated)
		body["id"] = "proj-42"
		_ = json.NewEncoder(w).Encode(body)
	}))
	defer server.Close()

	client := New(server.URL, WithToken("secret"))
	created, err := client.CreateProject(context.Background(), domain.Project{
		ID:             "client-chosen",
		Name:           "New",
		StartDate:      "2024-01-10",
		ParticipantIDs: []string{"u1", "u1"},
	})
	require.NoError(t, err)
	assert.Equal(t, "proj-42", created.ID)
	assert.Equal(t, []string{"u1"}, created.ParticipantIDs)
}

func TestClient_ErrorResponses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/tasks/missing":
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"Task not found"}`))
		case "/roles":
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`boom`))
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	}))
	defer server.Close()

	client := New(server.URL)
	ctx := context.Background()

	t.Run("404 carries status and message", func(t *testing.T) {
		_, err := client.UpdateTask(ctx, domain.Task{ID: "missing"})
		require.Error(t, err)

		var gwErr *Error
		require.True(t, errors.As(err, &gwErr))
		assert.Equal(t, http.StatusNotFound, gwErr.Status)
		assert.Equal(t, "/tasks/missing", gwErr.Endpoint)
		assert.Equal(t, "Task not found", gwErr.Message)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("plain body is surfaced", func(t *testing.T) {
		_, err := client.ListRoles(ctx)
		require.Error(t, err)
		assert.Equal(t, http.StatusInternalServerError, StatusOf(err))
		assert.Contains(t, err.Error(), "boom")
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestClient_TransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	reg := prometheus.NewRegistry()
	client := New(url, WithMetrics(reg))

	_, err := client.ListClients(context.Background())
	require.Error(t, err)
	assert.Equal(t, 0, StatusOf(err))
	assert.Equal(t, float64(1), testutil.ToFloat64(client.metrics.requests.WithLabelValues(CollectionClients, http.MethodGet, "0")))
}

func TestClient_DeleteAcceptsNoContent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/tasks/task%201", r.URL.EscapedPath())
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	reg := prometheus.NewRegistry()
	client := New(server.URL, WithMetrics(reg))
	require.NoError(t, client.DeleteTask(context.Background(), "task 1"))
	assert.Equal(t, float64(1), testutil.ToFloat64(client.metrics.requests.WithLabelValues(CollectionTasks, http.MethodDelete, "204")))
}

func TestClient_LeadValueAsString(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[
			{"id":"lead-1","name":"Acme","status":"Novo","value":"1500.50","createdAt":"2024-02-01T10:00:00Z"},
			{"id":"lead-2","name":"Beta","status":"Novo","value":320}
		]`))
	}))
	defer server.Close()

	leads, err := New(server.URL).ListLeads(context.Background())
	require.NoError(t, err)
	require.Len(t, leads, 2)
	assert.Equal(t, 1500.5, leads[0].Value)
	assert.Equal(t, 2024, leads[0].CreatedAt.Year())
	assert.Equal(t, float64(320), leads[1].Value)
	assert.NotNil(t, leads[1].Comments)
	assert.True(t, leads[1].CreatedAt.IsZero())
}

func TestClient_ParticipantCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		require.NoError(t, json.Unmarshal(raw, &body))

		switch r.URL.Path {
		case "/participants":
			assert.Equal(t, "s3cret", body["password"])
		case "/auth/login":
			assert.Equal(t, "ana@example.com", body["email"])
		}
		// a careless server echoing the credential back
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"user-1","name":"Ana","email":"ana@example.com","roleId":"role-1","password":"s3cret"}`))
	}))
	defer server.Close()

	client := New(server.URL)
	created, err := client.CreateParticipant(context.Background(), domain.Participant{Name: "Ana", Email: "ana@example.com"}, "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", created.ID)

	data, err := json.Marshal(created)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "s3cret")

	user, err := client.Login(context.Background(), "ana@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
}

func TestClient_InvalidPayloadIsAnError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"task-1","dueDate":"not-a-date"}]`))
	}))
	defer server.Close()

	_, err := New(server.URL).ListProjectTasks(context.Background(), "proj-1")
	require.Error(t, err)
	assert.Equal(t, http.StatusOK, StatusOf(err))
}
