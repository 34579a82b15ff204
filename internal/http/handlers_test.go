package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lmercier/tir-tracker/internal/auth"
	"github.com/lmercier/tir-tracker/internal/config"
	"github.com/lmercier/tir-tracker/internal/database"
	"github.com/lmercier/tir-tracker/internal/metrics"
	"github.com/lmercier/tir-tracker/internal/notifier"
	"github.com/lmercier/tir-tracker/internal/pubsub"
	"github.com/lmercier/tir-tracker/internal/shooting"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUsername = "admin"
	testPassword = "secret"
)

type testServer struct {
	*Server
	store    shooting.RangeStore
	notifier *notifier.Mock
	pubsub   *pubsub.MockPubSubClient
	metrics  *metrics.Mock
}

// setupTestServer initializes a new server with a test database and mock clients.
func setupTestServer(t *testing.T) (*testServer, func()) {
	t.Helper()

	db, dbTeardown, err := database.InitDB(":memory:", "", "", "../../migrations")
	require.NoError(t, err)

	store := shooting.New(db)
	cfg := config.Config{
		Auth:              config.AuthConfig{Username: testUsername, Password: testPassword},
		DefaultTotalShots: 10,
	}

	reg := prometheus.NewRegistry()
	metricsMock := metrics.NewMock()
	metricsHandler := metrics.NewMetricsHandler(reg)
	notifierMock := notifier.NewMock()
	pubsubMock := pubsub.NewMock("TEST")
	authSvc := auth.New(testUsername, testPassword)

	server := NewServer(store, metricsMock, metricsHandler, cfg, authSvc, notifierMock, pubsubMock)

	teardown := func() {
		if dbTeardown != nil {
			dbTeardown()
		}
		db.Close()
	}
	return &testServer{Server: server, store: store, notifier: notifierMock, pubsub: pubsubMock, metrics: metricsMock}, teardown
}

func testToken() string {
	return fmt.Sprintf("auth_token_%d_abc123", time.Now().Unix())
}

// doJSON performs a request against the server with an optional JSON
// body and a valid bearer token.
func doJSON(t *testing.T, s *testServer, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+testToken())

	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v))
	return v
}

func createTestPlayer(t *testing.T, s *testServer, name string, totalShots int) shooting.Player {
	t.Helper()
	rr := doJSON(t, s, http.MethodPost, "/players", map[string]any{"name": name, "totalShots": totalShots})
	require.Equal(t, http.StatusCreated, rr.Code)
	return decodeBody[shooting.Player](t, rr)
}

func recordTestShot(t *testing.T, s *testServer, playerID string, value float64) {
	t.Helper()
	rr := doJSON(t, s, http.MethodPost, "/scores", map[string]any{"playerId": playerID, "score": value})
	require.Equal(t, http.StatusCreated, rr.Code)
}

func TestHealthCheck(t *testing.T) {
	s, teardown := setupTestServer(t)
	defer teardown()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "OK!", rr.Body.String())
}

func TestLogin(t *testing.T) {
	s, teardown := setupTestServer(t)
	defer teardown()

	t.Run("valid credentials", func(t *testing.T) {
		rr := doJSON(t, s, http.MethodPost, "/auth/login", map[string]string{"username": testUsername, "password": testPassword})
		require.Equal(t, http.StatusOK, rr.Code)

		resp := decodeBody[map[string]any](t, rr)
		assert.Equal(t, true, resp["success"])
		token, _ := resp["token"].(string)
		assert.True(t, auth.ValidToken(token), "token %q should have the expected shape", token)
	})

	t.Run("missing password", func(t *testing.T) {
		rr := doJSON(t, s, http.MethodPost, "/auth/login", map[string]string{"username": testUsername})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		rr := doJSON(t, s, http.MethodPost, "/auth/login", map[string]string{"username": testUsername, "password": "nope"})
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestAuthRequiredOnMutations(t *testing.T) {
	s, teardown := setupTestServer(t)
	defer teardown()

	payload, _ := json.Marshal(map[string]any{"name": "Jean"})
	req := httptest.NewRequest(http.MethodPost, "/players", bytes.NewReader(payload))
	rr := httptest.NewRecorder()
	s.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/players", bytes.NewReader(payload))
	req.Header.Set("Authorization", "Bearer not_a_real_token")
	rr = httptest.NewRecorder()
	s.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestCreatePlayer(t *testing.T) {
	s, teardown := setupTestServer(t)
	defer teardown()

	t.Run("creates with defaults", func(t *testing.T) {
		rr := doJSON(t, s, http.MethodPost, "/players", map[string]any{"name": "Jean"})
		require.Equal(t, http.StatusCreated, rr.Code)

		player := decodeBody[shooting.Player](t, rr)
		assert.NotEmpty(t, player.ID)
		assert.Equal(t, "Jean", player.Name)
		assert.Equal(t, 10, player.TotalShots)
		assert.Equal(t, 0, player.ShotCount)

		assert.Equal(t, 1, s.metrics.PlayersCreated())
		require.Len(t, s.pubsub.SendMessageCalls, 1)
		assert.Equal(t, pubsub.EventPlayerCreated, s.pubsub.SendMessageCalls[0].Topic)
	})

	t.Run("duplicate name conflicts", func(t *testing.T) {
		rr := doJSON(t, s, http.MethodPost, "/players", map[string]any{"name": "Jean"})
		assert.Equal(t, http.StatusConflict, rr.Code)
	})

	t.Run("missing name rejected", func(t *testing.T) {
		rr := doJSON(t, s, http.MethodPost, "/players", map[string]any{"totalShots": 5})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		resp := decodeBody[map[string]string](t, rr)
		assert.NotEmpty(t, resp["error"])
	})
}

func TestListPlayersSortedByCreationDescending(t *testing.T) {
	s, teardown := setupTestServer(t)
	defer teardown()

	createTestPlayer(t, s, "Jean", 3)
	createTestPlayer(t, s, "Marie", 3)

	rr := doJSON(t, s, http.MethodGet, "/players", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	players := decodeBody[[]shooting.Player](t, rr)
	require.Len(t, players, 2)
	assert.Equal(t, "Marie", players[0].Name)
	assert.Equal(t, "Jean", players[1].Name)
}

func TestRecordScore(t *testing.T) {
	s, teardown := setupTestServer(t)
	defer teardown()

	player := createTestPlayer(t, s, "Jean", 3)
	s.pubsub.Reset()

	t.Run("creates score with derived fields", func(t *testing.T) {
		rr := doJSON(t, s, http.MethodPost, "/scores", map[string]any{"playerId": player.ID, "score": 9.0})
		require.Equal(t, http.StatusCreated, rr.Code)

		score := decodeBody[shooting.Score](t, rr)
		assert.Equal(t, 1, score.ShotNumber)
		assert.Equal(t, 9.0, score.Value)
		assert.Equal(t, 90.0, score.Precision)
		assert.Equal(t, "gold", score.Ring)

		assert.Equal(t, 1, s.metrics.ShotsRecorded())
		require.Len(t, s.pubsub.SendMessageCalls, 1)
		assert.Equal(t, pubsub.EventShotRecorded, s.pubsub.SendMessageCalls[0].Topic)
	})

	t.Run("coordinates drive precision", func(t *testing.T) {
		rr := doJSON(t, s, http.MethodPost, "/scores", map[string]any{"playerId": player.ID, "score": 5.0, "x": 3.0, "y": 4.0})
		require.Equal(t, http.StatusCreated, rr.Code)

		score := decodeBody[shooting.Score](t, rr)
		assert.Equal(t, 0.0, score.Precision, "an impact on the outermost ring edge scores zero precision")
	})

	t.Run("value outside range rejected", func(t *testing.T) {
		rr := doJSON(t, s, http.MethodPost, "/scores", map[string]any{"playerId": player.ID, "score": 10.5})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown player", func(t *testing.T) {
		rr := doJSON(t, s, http.MethodPost, "/scores", map[string]any{"playerId": "ghost", "score": 5.0})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("full sheet conflicts", func(t *testing.T) {
		recordTestShot(t, s, player.ID, 8)
		rr := doJSON(t, s, http.MethodPost, "/scores", map[string]any{"playerId": player.ID, "score": 8.0})
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, 1, s.metrics.ShotLimitRejections())
	})
}

func TestSessionCompleteNotification(t *testing.T) {
	s, teardown := setupTestServer(t)
	defer teardown()

	player := createTestPlayer(t, s, "Jean", 2)
	recordTestShot(t, s, player.ID, 8)
	assert.Empty(t, s.notifier.SessionCompleteCalls)

	recordTestShot(t, s, player.ID, 9)
	require.Len(t, s.notifier.SessionCompleteCalls, 1)
	assert.Equal(t, player.ID, s.notifier.SessionCompleteCalls[0].ID)
	assert.Equal(t, 17.0, s.notifier.SessionCompleteCalls[0].TotalScore)
}

func TestNewLeaderNotification(t *testing.T) {
	s, teardown := setupTestServer(t)
	defer teardown()

	jean := createTestPlayer(t, s, "Jean", 5)
	marie := createTestPlayer(t, s, "Marie", 5)

	recordTestShot(t, s, jean.ID, 8)
	assert.Empty(t, s.notifier.NewLeaderCalls, "the first leader is not announced")

	recordTestShot(t, s, marie.ID, 9)
	require.Len(t, s.notifier.NewLeaderCalls, 1)
	assert.Equal(t, marie.ID, s.notifier.NewLeaderCalls[0].PlayerID)

	recordTestShot(t, s, marie.ID, 9)
	assert.Len(t, s.notifier.NewLeaderCalls, 1, "an unchanged leader is not re-announced")
}

func TestUpdatePlayer(t *testing.T) {
	s, teardown := setupTestServer(t)
	defer teardown()

	player := createTestPlayer(t, s, "Jean", 3)
	recordTestShot(t, s, player.ID, 8)
	recordTestShot(t, s, player.ID, 9)
	recordTestShot(t, s, player.ID, 10)

	t.Run("rename", func(t *testing.T) {
		rr := doJSON(t, s, http.MethodPut, "/players/"+player.ID, map[string]any{"name": "Jean-Pierre"})
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "Jean-Pierre", decodeBody[shooting.Player](t, rr).Name)
	})

	t.Run("lowering totalShots truncates the sheet", func(t *testing.T) {
		rr := doJSON(t, s, http.MethodPut, "/players/"+player.ID, map[string]any{"totalShots": 2})
		require.Equal(t, http.StatusOK, rr.Code)

		updated := decodeBody[shooting.Player](t, rr)
		assert.Equal(t, 2, updated.TotalShots)
		assert.Equal(t, 2, updated.ShotCount)
		assert.Equal(t, 17.0, updated.TotalScore)
	})

	t.Run("reset-scores action", func(t *testing.T) {
		rr := doJSON(t, s, http.MethodPut, "/players/"+player.ID, map[string]any{"action": "reset-scores"})
		require.Equal(t, http.StatusOK, rr.Code)

		updated := decodeBody[shooting.Player](t, rr)
		assert.Equal(t, 0, updated.ShotCount)
		assert.Equal(t, 0.0, updated.TotalScore)
	})

	t.Run("invalid totalShots rejected", func(t *testing.T) {
		rr := doJSON(t, s, http.MethodPut, "/players/"+player.ID, map[string]any{"totalShots": 0})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("unknown player", func(t *testing.T) {
		rr := doJSON(t, s, http.MethodPut, "/players/ghost", map[string]any{"name": "Nobody"})
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})
}

func TestDeletePlayer(t *testing.T) {
	s, teardown := setupTestServer(t)
	defer teardown()

	player := createTestPlayer(t, s, "Jean", 3)
	recordTestShot(t, s, player.ID, 8)

	rr := doJSON(t, s, http.MethodDelete, "/players/"+player.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, s, http.MethodDelete, "/players/"+player.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSON(t, s, http.MethodGet, "/players", nil)
	assert.Empty(t, decodeBody[[]shooting.Player](t, rr))
}

func TestScoresEndpoints(t *testing.T) {
	s, teardown := setupTestServer(t)
	defer teardown()

	player := createTestPlayer(t, s, "Jean", 3)
	recordTestShot(t, s, player.ID, 8)
	recordTestShot(t, s, player.ID, 9)

	rr := doJSON(t, s, http.MethodGet, "/scores?playerId="+player.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, decodeBody[[]shooting.Score](t, rr), 2)

	rr = doJSON(t, s, http.MethodDelete, "/scores?playerId="+player.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, s, http.MethodGet, "/scores?playerId="+player.ID, nil)
	assert.Empty(t, decodeBody[[]shooting.Score](t, rr))

	rr = doJSON(t, s, http.MethodDelete, "/scores", nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = doJSON(t, s, http.MethodDelete, "/scores?playerId=ghost", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestLeaderboard(t *testing.T) {
	s, teardown := setupTestServer(t)
	defer teardown()

	jean := createTestPlayer(t, s, "Jean", 5)
	marie := createTestPlayer(t, s, "Marie", 5)

	recordTestShot(t, s, jean.ID, 8)
	recordTestShot(t, s, marie.ID, 9)
	recordTestShot(t, s, marie.ID, 7)

	rr := doJSON(t, s, http.MethodGet, "/leaderboard", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	entries := decodeBody[[]shooting.LeaderboardEntry](t, rr)
	require.Len(t, entries, 2)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Equal(t, marie.ID, entries[0].PlayerID)
	assert.Equal(t, 16.0, entries[0].TotalScore)
	assert.Equal(t, 2, entries[1].Rank)
	assert.Equal(t, jean.ID, entries[1].PlayerID)
}

func TestClearStore(t *testing.T) {
	s, teardown := setupTestServer(t)
	defer teardown()

	createTestPlayer(t, s, "Jean", 3)

	rr := doJSON(t, s, http.MethodPost, "/clear", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = doJSON(t, s, http.MethodGet, "/players", nil)
	assert.Empty(t, decodeBody[[]shooting.Player](t, rr))
}
