package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/GoSim-25-26J-441/workdesk/config"
	"github.com/GoSim-25-26J-441/workdesk/internal/records/domain"
	"github.com/GoSim-25-26J-441/workdesk/internal/records/repository"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestInitLogger_ProductionIsJSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	logger := initLogger(&buf, "info", "production")
	logger.Debug("hidden")
	logger.Info("shown", "key", "value")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["msg"])
	assert.Equal(t, "value", line["key"])
}

func TestCORSConfig(t *testing.T) {
	open := corsConfig(nil)
	assert.True(t, open.AllowAllOrigins)
	assert.False(t, open.AllowCredentials)

	star := corsConfig([]string{"*"})
	assert.True(t, star.AllowAllOrigins)
	assert.Empty(t, star.AllowOrigins)

	strict := corsConfig([]string{"http://localhost:3000"})
	assert.False(t, strict.AllowAllOrigins)
	assert.True(t, strict.AllowCredentials)
	assert.Equal(t, []string{"http://localhost:3000"}, strict.AllowOrigins)
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return BuildRouter(RouterDeps{
		ServiceName: "workdesk-api",
		Version:     "test",
		CORSOrigins: []string{"http://localhost:3000"},
		Repo:        repository.NewMemory(),
		Registry:    prometheus.NewRegistry(),
		Logger:      slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)),
	})
}

func TestBuildRouter(t *testing.T) {
	r := newTestRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/projects", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `workdesk_http_requests_total{code="200",method="GET",route="/api/projects"} 1`)

	req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestOpenSession(t *testing.T) {
	ctx := context.Background()
	server := httptest.NewServer(newTestRouter(t))
	t.Cleanup(server.Close)

	cfg := &config.Config{
		Gateway: config.GatewayConfig{BaseURL: server.URL + "/api", Timeout: 5 * time.Second},
		Cache:   config.CacheConfig{Backend: "memory"},
		Store:   config.StoreConfig{WorkspaceMode: config.WorkspaceModeRemote, DuplicateConcurrency: 2},
	}
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	sess, err := OpenSession(ctx, cfg, logger, prometheus.NewRegistry())
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close() })

	assert.True(t, sess.Store.RemoteWorkspaces())

	ws, err := sess.Service.AddWorkspace(ctx, domain.Workspace{Name: "Remoto"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ws.ID, "ws-"))

	report := sess.Service.Load(ctx)
	require.True(t, report.OK(), "%v", report.Failed)
	assert.Len(t, sess.Service.State().Workspaces, 1)
}

func TestOpenRecords_InMemoryWithoutDatabase(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	records, err := OpenRecords(context.Background(), config.DatabaseConfig{Host: "localhost"}, logger)
	require.NoError(t, err)
	defer records.Close()

	assert.Nil(t, records.DB)
	_, ok := records.Repo.(*repository.Memory)
	assert.True(t, ok)
}
