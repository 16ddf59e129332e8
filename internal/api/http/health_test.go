package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		db         Pinger
		wantCode   int
		wantStatus string
		wantDB     string
	}{
		{name: "no database", db: nil, wantCode: http.StatusOK, wantStatus: "healthy", wantDB: "disabled"},
		{name: "database up", db: pingFunc(func(context.Context) error { return nil }), wantCode: http.StatusOK, wantStatus: "healthy", wantDB: "up"},
		{name: "database down", db: pingFunc(func(context.Context) error { return errors.New("refused") }), wantCode: http.StatusServiceUnavailable, wantStatus: "degraded", wantDB: "down"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := gin.New()
			NewHealthHandler("workdesk-api", "1.2.3", tt.db).RegisterRoutes(r)

			for _, path := range []string{"/health", "/healthz"} {
				w := httptest.NewRecorder()
				r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
				require.Equal(t, tt.wantCode, w.Code)

				var resp HealthResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, tt.wantStatus, resp.Status)
				assert.Equal(t, tt.wantDB, resp.DB)
				assert.Equal(t, "workdesk-api", resp.Service)
				assert.Equal(t, "1.2.3", resp.Version)
			}
		})
	}
}
