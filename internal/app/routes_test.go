package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Manasa-Gp/task-management/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/Manasa-Gp/task-management/docs"
)

func testEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	cfg := config.Config{}
	cfg.App.Env = "test"
	cfg.App.Version = "v-test"
	// nil db/redis: only the service-level routes are exercised here.
	Setup(r, cfg, nil, nil)
	return r
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRootStatusPayload(t *testing.T) {
	w := get(testEngine(), "/")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Task Management API", body["service"])
	assert.Equal(t, "running", body["status"])
	assert.Equal(t, "v-test", body["version"])
}

func TestHealth(t *testing.T) {
	w := get(testEngine(), "/health")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"env":"test"}`, w.Body.String())
}

func TestVersion(t *testing.T) {
	w := get(testEngine(), "/version")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"version":"v-test"}`, w.Body.String())
}

func TestSwaggerDoc(t *testing.T) {
	w := get(testEngine(), "/swagger-doc.json")
	require.Equal(t, http.StatusOK, w.Code)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Contains(t, doc, "paths")
}
