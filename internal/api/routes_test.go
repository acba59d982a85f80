package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/algorithm"
	"github.com/wanghhhaoo/Multi-hop-Offloading/internal/config"
	"github.com/wanghhhaoo/Multi-hop-Offloading/pkg/database"
	"github.com/wanghhhaoo/Multi-hop-Offloading/pkg/utils"
)

type envelope struct {
	Code int             `json:"code"`
	Data json.RawMessage `json:"data"`
	Msg  string          `json:"message"`
}

type testServer struct {
	t      *testing.T
	router *gin.Engine
	system *algorithm.System
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	utils.InitJWT("test-secret", time.Hour)

	db, err := database.Open(":memory:")
	require.NoError(t, err)

	cfg := config.Default()
	cfg.JWT.Secret = "test-secret"
	system := algorithm.NewSystem(nil, 0)

	router := gin.New()
	require.NoError(t, SetupRoutes(router, db, system, cfg, nil))
	return &testServer{t: t, router: router, system: system}
}

func (s *testServer) do(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var resp envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w.Code, resp
}

func (s *testServer) login(username, password string) string {
	s.t.Helper()
	code, resp := s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(s.t, http.StatusOK, code, resp.Msg)

	var tokens struct {
		AccessToken  string `json:"access_token"`
		RefreshToken string `json:"refresh_token"`
		ExpiresIn    int    `json:"expires_in"`
	}
	require.NoError(s.t, json.Unmarshal(resp.Data, &tokens))
	assert.Equal(s.t, 3600, tokens.ExpiresIn)
	return tokens.AccessToken
}

func TestPublicRoutes(t *testing.T) {
	s := newTestServer(t)

	code, resp := s.do(http.MethodGet, "/api/v1/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, utils.SUCCESS, resp.Code)

	code, _ = s.do(http.MethodGet, "/api/v1/overview", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = s.do(http.MethodPost, "/api/v1/auth/login", "", map[string]string{"username": "admin", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, code)

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "uav_simulation_running")
}

func TestSimulationLifecycle(t *testing.T) {
	s := newTestServer(t)
	token := s.login(database.DefaultAdminUsername, database.DefaultAdminPassword)

	code, resp := s.do(http.MethodPost, "/api/v1/simulation/start", token, map[string]interface{}{
		"topology":  "ring",
		"ring_size": 3,
		"tasks":     []int{2, 2, 2},
	})
	require.Equal(t, http.StatusOK, code, resp.Msg)
	var run struct {
		ID     uint   `json:"id"`
		RunKey string `json:"run_key"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &run))
	assert.NotEmpty(t, run.RunKey)
	assert.Equal(t, "running", run.Status)
	s.system.Wait()

	code, resp = s.do(http.MethodGet, "/api/v1/simulation/runs/1", token, nil)
	require.Equal(t, http.StatusOK, code)
	var saved struct {
		Status string `json:"status"`
		Nodes  []struct {
			InitialTasks int `json:"initial_tasks"`
		} `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &saved))
	assert.Equal(t, "completed", saved.Status)
	assert.Len(t, saved.Nodes, 3)

	code, resp = s.do(http.MethodGet, "/api/v1/simulation/runs?status=completed", token, nil)
	require.Equal(t, http.StatusOK, code)
	var page utils.PageResult
	require.NoError(t, json.Unmarshal(resp.Data, &page))
	assert.EqualValues(t, 1, page.Total)

	code, resp = s.do(http.MethodGet, "/api/v1/simulation/runs/1/stats?node=0", token, nil)
	require.Equal(t, http.StatusOK, code)
	var stats []map[string]interface{}
	require.NoError(t, json.Unmarshal(resp.Data, &stats))
	assert.NotEmpty(t, stats)

	code, resp = s.do(http.MethodGet, "/api/v1/simulation/info", token, nil)
	require.Equal(t, http.StatusOK, code)
	var info algorithm.SystemInfo
	require.NoError(t, json.Unmarshal(resp.Data, &info))
	assert.False(t, info.IsRunning)
	assert.Equal(t, run.RunKey, info.RunKey)

	code, _ = s.do(http.MethodGet, "/api/v1/simulation/runs/99", token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = s.do(http.MethodGet, "/api/v1/simulation/runs/1/stats?node=x", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/api/v1/simulation/start", token, map[string]interface{}{"topology": "mesh"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = s.do(http.MethodPost, "/api/v1/simulation/clear", token, nil)
	assert.Equal(t, http.StatusOK, code)

	code, _ = s.do(http.MethodDelete, "/api/v1/simulation/runs/1", token, nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestConcurrentStartConflicts(t *testing.T) {
	s := newTestServer(t)
	token := s.login(database.DefaultAdminUsername, database.DefaultAdminPassword)

	body := map[string]interface{}{"topology": "sample", "slot_interval_ms": 3600 * 1000}
	code, _ := s.do(http.MethodPost, "/api/v1/simulation/start", token, body)
	require.Equal(t, http.StatusOK, code)

	code, resp := s.do(http.MethodPost, "/api/v1/simulation/start", token, body)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, utils.CONFLICT, resp.Code)

	code, _ = s.do(http.MethodPost, "/api/v1/simulation/clear", token, nil)
	assert.Equal(t, http.StatusConflict, code)

	code, _ = s.do(http.MethodPost, "/api/v1/simulation/stop", token, nil)
	assert.Equal(t, http.StatusOK, code)
	s.system.Wait()
}

func TestViewerCannotMutate(t *testing.T) {
	s := newTestServer(t)
	admin := s.login(database.DefaultAdminUsername, database.DefaultAdminPassword)

	code, resp := s.do(http.MethodPost, "/api/v1/admin/operators", admin, map[string]string{
		"username": "viewer",
		"password": "viewer123",
	})
	require.Equal(t, http.StatusOK, code, resp.Msg)

	viewer := s.login("viewer", "viewer123")

	code, _ = s.do(http.MethodPost, "/api/v1/simulation/start", viewer, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodPost, "/api/v1/network/nodes", viewer, map[string]string{"name": "A"})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.do(http.MethodGet, "/api/v1/simulation/runs", viewer, nil)
	assert.Equal(t, http.StatusOK, code)

	code, resp = s.do(http.MethodGet, "/api/v1/auth/me", viewer, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(resp.Data), `"role":"viewer"`)
}

func TestNetworkTopologyInfo(t *testing.T) {
	s := newTestServer(t)
	token := s.login(database.DefaultAdminUsername, database.DefaultAdminPassword)

	// 数据库为空时无法构建拓扑
	code, _ := s.do(http.MethodGet, "/api/v1/network/topology/info", token, nil)
	assert.Equal(t, http.StatusBadRequest, code)

	ids := make([]uint, 0, 2)
	for _, name := range []string{"A", "B"} {
		code, resp := s.do(http.MethodPost, "/api/v1/network/nodes", token, map[string]string{"name": name})
		require.Equal(t, http.StatusOK, code, resp.Msg)
		var node struct {
			ID uint `json:"id"`
		}
		require.NoError(t, json.Unmarshal(resp.Data, &node))
		ids = append(ids, node.ID)
	}

	code, resp := s.do(http.MethodPost, "/api/v1/network/links", token, map[string]interface{}{
		"name":          "A-B",
		"status":        "up",
		"source_id":     ids[0],
		"target_id":     ids[1],
		"bidirectional": true,
	})
	require.Equal(t, http.StatusOK, code, resp.Msg)

	code, _ = s.do(http.MethodPost, "/api/v1/network/links", token, map[string]interface{}{
		"source_id": ids[0],
		"target_id": ids[0],
	})
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = s.do(http.MethodGet, "/api/v1/network/topology/info", token, nil)
	require.Equal(t, http.StatusOK, code)
	var info struct {
		NodeCount int              `json:"node_count"`
		Adjacency map[string][]int `json:"adjacency"`
		Diameter  int              `json:"diameter"`
		Connected bool             `json:"connected"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &info))
	assert.Equal(t, 2, info.NodeCount)
	assert.Equal(t, []int{1}, info.Adjacency["0"])
	assert.Equal(t, 1, info.Diameter)
	assert.True(t, info.Connected)

	code, _ = s.do(http.MethodGet, "/api/v1/network/nodes/99", token, nil)
	assert.Equal(t, http.StatusNotFound, code)
}
