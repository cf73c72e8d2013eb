package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipe-forge/internal/core/ai/queue"
	"recipe-forge/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPinger struct {
	err error
}

func (s stubPinger) HealthCheck(ctx context.Context) error { return s.err }

func setupRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health", h.HealthCheck)
	r.GET("/ready", h.ReadinessCheck)
	r.GET("/live", h.LivenessCheck)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestHealthCheck(t *testing.T) {
	w := get(setupRouter(NewHandler("1.2.3", nil, nil)), "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Contains(t, resp.Runtime, "goroutines")
	assert.Nil(t, resp.Queue)
}

func TestHealthCheck_QueueStatus(t *testing.T) {
	q := queue.NewManager(config.QueueConfig{Workers: 2, MaxSize: 8})
	defer q.Close()

	w := get(setupRouter(NewHandler("v", nil, q)), "/health")
	require.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Queue)
	assert.Equal(t, 2, resp.Queue.Workers)
	assert.Equal(t, 8, resp.Queue.MaxQueueSize)
}

func TestReadinessCheck(t *testing.T) {
	assert.Equal(t, http.StatusOK, get(setupRouter(NewHandler("v", stubPinger{}, nil)), "/ready").Code)

	w := get(setupRouter(NewHandler("v", stubPinger{err: errors.New("down")}, nil)), "/ready")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "unavailable")
}

func TestLivenessCheck(t *testing.T) {
	w := get(setupRouter(NewHandler("v", nil, nil)), "/live")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alive")
}
