package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"levelup/internal/auth"
	"levelup/internal/engine"
	"levelup/internal/storage"
)

type fixture struct {
	router *gin.Engine
	token  string
	svc    *engine.Service
}

func newFixture(t *testing.T, seed bool) fixture {
	t.Helper()
	ctx := context.Background()

	db, err := storage.Open(ctx, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	if seed {
		_, err = storage.SeedTemplates(ctx, storage.NewTemplateRepo(db))
		require.NoError(t, err)
	}

	svc := engine.NewService(db)
	authSvc := auth.NewService(storage.NewTokenRepo(db))
	token, err := authSvc.Mint(ctx, "alice")
	require.NoError(t, err)

	return fixture{
		router: New(svc, authSvc, nil).Router(),
		token:  token,
		svc:    svc,
	}
}

func (f fixture) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Authorization", "Bearer "+f.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthz(t *testing.T) {
	f := newFixture(t, false)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequiresToken(t *testing.T) {
	f := newFixture(t, true)

	req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/profile", nil)
	req.Header.Set("Authorization", "Bearer bogus")
	w = httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGenerateAndCompleteFlow(t *testing.T) {
	f := newFixture(t, true)

	w := f.do(t, http.MethodPost, "/api/quests/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["generated"])
	quests := body["quests"].([]any)
	require.Len(t, quests, 5)

	// Repeat generation returns the same set.
	w = f.do(t, http.MethodPost, "/api/quests/generate", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["generated"])

	w = f.do(t, http.MethodGet, "/api/quests/today", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, decode(t, w)["quests"].([]any), 5)

	first := quests[0].(map[string]any)
	w = f.do(t, http.MethodPost, "/api/quests/"+first["id"].(string)+"/complete", map[string]string{"reflection": "done early"})
	require.Equal(t, http.StatusOK, w.Code)
	res := decode(t, w)
	assert.Equal(t, first["xp_reward"], res["base_xp"])
	assert.Equal(t, first["xp_reward"], res["effective_xp"]) // fresh profile
	assert.Equal(t, false, res["already_completed"])

	w = f.do(t, http.MethodGet, "/api/profile", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, first["xp_reward"], decode(t, w)["total_xp"])
}

func TestCompleteUnknownQuest(t *testing.T) {
	f := newFixture(t, true)
	w := f.do(t, http.MethodPost, "/api/quests/nope/complete", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGenerateWithoutTemplates(t *testing.T) {
	f := newFixture(t, false)
	w := f.do(t, http.MethodPost, "/api/quests/generate", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestStreakEndpoints(t *testing.T) {
	f := newFixture(t, true)

	w := f.do(t, http.MethodGet, "/api/streak", nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(0), body["current_streak"])
	assert.Equal(t, float64(1), body["multiplier"])

	w = f.do(t, http.MethodPost, "/api/streak/checkin", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["penalty_applied"])

	w = f.do(t, http.MethodPost, "/api/streak/redeem", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decode(t, w)["redeemed"])
}

func TestStatsEndpoint(t *testing.T) {
	f := newFixture(t, true)

	w := f.do(t, http.MethodGet, "/api/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	stats := decode(t, w)["stats"].([]any)
	require.Len(t, stats, len(engine.StatOrder))
	first := stats[0].(map[string]any)
	assert.Equal(t, string(engine.StatOrder[0]), first["stat"])
	assert.Equal(t, float64(1), first["level"])
}

func TestAchievementsEndpoint(t *testing.T) {
	f := newFixture(t, true)

	w := f.do(t, http.MethodGet, "/api/achievements", nil)
	require.Equal(t, http.StatusOK, w.Code)
	achievements := decode(t, w)["achievements"].([]any)
	require.NotEmpty(t, achievements)
	for _, a := range achievements {
		assert.Equal(t, false, a.(map[string]any)["earned"])
	}
}
