package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"wanderplan/internal/api/controllers"
	"wanderplan/internal/config"
	dbm "wanderplan/internal/models/db_models"
	"wanderplan/internal/models/response_models"
	"wanderplan/internal/services"
	"wanderplan/pkg/llm"
	mem "wanderplan/pkg/memcache"
	"wanderplan/pkg/metrics"
	"wanderplan/pkg/middleware"
	"wanderplan/pkg/utils"
)

func newTestRouter(t *testing.T) (*gin.Engine, *utils.TokenIssuer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	for _, k := range services.AllowedSettingKeys() {
		t.Setenv(k, "")
	}

	log := zaptest.NewLogger(t)
	reg := prometheus.NewRegistry()
	rec := metrics.NewRecorder(reg)
	tokens := utils.NewTokenIssuer("test-secret")

	settings := services.NewSettingsService(filepath.Join(t.TempDir(), "local.json"), log)
	_, err := settings.UpdateSettings(map[string]interface{}{"LLM_PROVIDER": llm.ProviderMock})
	require.NoError(t, err)

	planner := services.NewPlannerService(settings, rec, mem.NewMemoryDrafts(time.Hour), log)

	return ProvideRouter(RouterParams{
		Config:   &config.Config{AppEnv: "test", RequestLog: true},
		Logger:   log,
		Recorder: rec,
		Tokens:   tokens,
		Planner:  controllers.NewPlannerController(planner),
		Budget:   controllers.NewBudgetController(services.NewBudgetService(settings)),
		Metrics:  controllers.NewMetricsController(rec, reg),
		Settings: controllers.NewSettingsController(settings),
		Accounts: controllers.NewAccountController(nil),
		Plans:    controllers.NewTravelPlanController(nil),
		Expenses: controllers.NewExpenseController(nil),
	}), tokens
}

func serve(r http.Handler, method, path, token string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_PlannerThroughMiddleware(t *testing.T) {
	r, _ := newTestRouter(t)

	body := []byte(`{"destination":"Hangzhou","start_date":"2025-03-01","end_date":"2025-03-02"}`)
	w := serve(r, http.MethodPost, "/planner/suggest", "", body)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	_, err := uuid.Parse(w.Header().Get(middleware.TraceHeader))
	assert.NoError(t, err)

	w = serve(r, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var snap response_models.MetricsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &snap))
	assert.Equal(t, uint64(1), snap.Routes["POST /planner/suggest"].Count)
	assert.Equal(t, uint64(1), snap.Planner.Success)
	assert.Equal(t, uint64(1), snap.TotalRequests)
}

func TestRouter_SettingsRequireAdmin(t *testing.T) {
	r, tokens := newTestRouter(t)

	w := serve(r, http.MethodGet, "/settings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	userToken, err := tokens.CreateToken(uuid.New(), dbm.RoleUser)
	require.NoError(t, err)
	w = serve(r, http.MethodGet, "/settings", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, err := tokens.CreateToken(uuid.New(), dbm.RoleAdmin)
	require.NoError(t, err)
	w = serve(r, http.MethodGet, "/settings", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"LLM_PROVIDER":"mock"`)
}

func TestRouter_ProtectedGroups(t *testing.T) {
	r, _ := newTestRouter(t)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/plans/my"},
		{http.MethodGet, "/plans/abc/day/1"},
		{http.MethodPost, "/expenses"},
		{http.MethodGet, "/expenses/stats?planId=x"},
		{http.MethodGet, "/auth/me"},
	} {
		w := serve(r, route.method, route.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, route.path)
	}
}

func TestRouter_Preflight(t *testing.T) {
	r, _ := newTestRouter(t)

	w := serve(r, http.MethodOptions, "/planner/suggest", "", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
