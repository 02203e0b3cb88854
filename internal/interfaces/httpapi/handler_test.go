package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/platform/cache"
	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
	"github.com/riskibarqy/fpl-insights/internal/usecase"
)

type stubSource struct {
	batch usecase.PlayerBatch
}

func (s *stubSource) FetchPlayers(context.Context) (usecase.PlayerBatch, error) {
	out := s.batch
	out.Players = append([]player.Record(nil), s.batch.Players...)
	return out, nil
}

func (s *stubSource) FetchPlayerSummary(_ context.Context, playerID int) (usecase.PlayerSummary, error) {
	return usecase.PlayerSummary{}, fmt.Errorf("%w: player=%d", usecase.ErrNotFound, playerID)
}

func stubBatch() usecase.PlayerBatch {
	records := []player.Record{
		{
			ID: 1, Name: "Haaland", FullName: "Erling Haaland", Team: "Man City", TeamID: 1,
			Position: player.PositionForward, Price: 15.1, TotalPoints: 262, Goals: 27, Assists: 5,
			Minutes: 2880, Form: 8.5, Ownership: 55.3,
		},
		{
			ID: 2, Name: "Saka", FullName: "Bukayo Saka", Team: "Arsenal", TeamID: 2,
			Position: player.PositionMidfielder, Price: 10.0, TotalPoints: 180, Goals: 12, Assists: 9,
			Minutes: 2700, Form: 6.2, Ownership: 40.1,
		},
		{
			ID: 3, Name: "Pickford", FullName: "Jordan Pickford", Team: "Everton", TeamID: 3,
			Position: player.PositionGoalkeeper, Price: 4.9, TotalPoints: 140, CleanSheets: 11,
			Minutes: 3420, Form: 4.0, Ownership: 12.7,
		},
	}
	for i := range records {
		records[i].SeasonsPlayed = 1
		records[i].ComputeDerived()
	}

	return usecase.PlayerBatch{
		Players:         records,
		CurrentGameweek: 12,
		TeamCount:       20,
		FetchedAt:       time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC),
	}
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	logger := logging.NewNop()
	source := &stubSource{batch: stubBatch()}
	enricher := usecase.NewHistoryService(source, nil, usecase.HistoryServiceConfig{}, logger)
	snapshots := usecase.NewSnapshotService(source, enricher, cache.NewStore(time.Hour), true, logger)

	handler := NewHandler(
		usecase.NewPlayerService(snapshots),
		usecase.NewStatsService(snapshots),
		usecase.NewOptimizerService(snapshots, logger),
		snapshots,
		"fpl-insights-api",
		"test",
		logger,
	)
	return NewRouter(handler, logger, []string{"*"})
}

func doRequest(t *testing.T, router http.Handler, method, target string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	if err := sonic.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("unmarshal response body: %v", err)
	}
	return rec.Code, body
}

func dataObject(t *testing.T, body map[string]any) map[string]any {
	t.Helper()

	data, ok := body["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected data object, got %T", body["data"])
	}
	return data
}

func TestHandler_Healthz(t *testing.T) {
	router := newTestRouter(t)

	code, body := doRequest(t, router, http.MethodGet, "/healthz")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if got := dataObject(t, body)["status"]; got != "ok" {
		t.Fatalf("expected status ok, got %v", got)
	}
}

func TestHandler_Root(t *testing.T) {
	router := newTestRouter(t)

	code, body := doRequest(t, router, http.MethodGet, "/")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	data := dataObject(t, body)
	if data["service"] != "fpl-insights-api" {
		t.Fatalf("expected service name, got %v", data["service"])
	}
	if _, ok := data["endpoints"].([]any); !ok {
		t.Fatalf("expected endpoints list")
	}
}

func TestHandler_ListPlayers(t *testing.T) {
	router := newTestRouter(t)

	code, body := doRequest(t, router, http.MethodGet, "/api/players")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	data := dataObject(t, body)
	if got := data["totalCount"].(float64); got != 3 {
		t.Fatalf("expected 3 players, got %v", got)
	}
	if got := data["currentGameweek"].(float64); got != 12 {
		t.Fatalf("expected gameweek 12, got %v", got)
	}
}

func TestHandler_ListPlayersFiltered(t *testing.T) {
	router := newTestRouter(t)

	code, body := doRequest(t, router, http.MethodGet, "/api/players?position=fwd&maxPrice=20")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if got := dataObject(t, body)["totalCount"].(float64); got != 1 {
		t.Fatalf("expected 1 forward, got %v", got)
	}
}

func TestHandler_ListPlayersBadInput(t *testing.T) {
	router := newTestRouter(t)

	code, _ := doRequest(t, router, http.MethodGet, "/api/players?position=striker")
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown position, got %d", code)
	}

	code, _ = doRequest(t, router, http.MethodGet, "/api/players?maxPrice=abc")
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric price, got %d", code)
	}
}

func TestHandler_GetPlayerHistory(t *testing.T) {
	router := newTestRouter(t)

	code, body := doRequest(t, router, http.MethodGet, "/api/players/1/history")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	data := dataObject(t, body)
	seasons, ok := data["seasons"].([]any)
	if !ok || len(seasons) != 3 {
		t.Fatalf("expected 3 season rows, got %v", data["seasons"])
	}

	code, _ = doRequest(t, router, http.MethodGet, "/api/players/999/history")
	if code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing player, got %d", code)
	}

	code, _ = doRequest(t, router, http.MethodGet, "/api/players/abc/history")
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for non-numeric id, got %d", code)
	}
}

func TestHandler_ListTopPlayers(t *testing.T) {
	router := newTestRouter(t)

	code, body := doRequest(t, router, http.MethodGet, "/api/top-players?limit=2&metric=unknownMetric")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	data := dataObject(t, body)
	if data["metric"] != "totalPoints" {
		t.Fatalf("expected fallback metric totalPoints, got %v", data["metric"])
	}
	players, ok := data["players"].([]any)
	if !ok || len(players) > 2 {
		t.Fatalf("expected at most 2 ranked players, got %v", data["players"])
	}
}

func TestHandler_GetStats(t *testing.T) {
	router := newTestRouter(t)

	code, body := doRequest(t, router, http.MethodGet, "/api/stats")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	data := dataObject(t, body)
	if got := data["totalPlayers"].(float64); got != 3 {
		t.Fatalf("expected 3 players in stats, got %v", got)
	}
	topScorer, ok := data["topScorer"].(map[string]any)
	if !ok || topScorer["name"] != "Haaland" {
		t.Fatalf("expected Haaland as top scorer, got %v", data["topScorer"])
	}
}

func TestHandler_OptimizeTeam(t *testing.T) {
	router := newTestRouter(t)

	code, body := doRequest(t, router, http.MethodGet, "/api/team-optimizer?formation=4-4-2&budget=50")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	data := dataObject(t, body)
	if data["formation"] != "4-4-2" {
		t.Fatalf("expected formation 4-4-2, got %v", data["formation"])
	}
	if data["metric"] != "overallScore" {
		t.Fatalf("expected default metric overallScore, got %v", data["metric"])
	}

	code, _ = doRequest(t, router, http.MethodGet, "/api/team-optimizer?budget=-5")
	if code != http.StatusBadRequest {
		t.Fatalf("expected 400 for negative budget, got %d", code)
	}
}

func TestHandler_BuildOptimalSquad(t *testing.T) {
	router := newTestRouter(t)

	code, body := doRequest(t, router, http.MethodGet, "/api/optimal-squad?consistency=false")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	data := dataObject(t, body)
	if data["weighedConsistency"] != false {
		t.Fatalf("expected weighedConsistency=false, got %v", data["weighedConsistency"])
	}
	if data["formation"] != "3-5-2" {
		t.Fatalf("expected default formation, got %v", data["formation"])
	}
}

func TestHandler_RefreshSnapshot(t *testing.T) {
	router := newTestRouter(t)

	code, body := doRequest(t, router, http.MethodPost, "/api/refresh")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if got := dataObject(t, body)["players"].(float64); got != 3 {
		t.Fatalf("expected 3 players after refresh, got %v", got)
	}
}
