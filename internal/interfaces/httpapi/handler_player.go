package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/riskibarqy/fpl-insights/internal/usecase"
)

type listPlayersRequest struct {
	Position   string   `validate:"omitempty,max=20"`
	MaxPrice   *float64 `validate:"omitempty,gt=0"`
	MinPoints  *int     `validate:"omitempty,gte=0"`
	MinSeasons *int     `validate:"omitempty,gte=0,lte=10"`
	Team       string   `validate:"omitempty,max=50"`
	Search     string   `validate:"omitempty,max=100"`
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	maxPrice, err := queryFloat(r, "maxPrice")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	minPoints, err := queryInt(r, "minPoints")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	minSeasons, err := queryInt(r, "minSeasons")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req := listPlayersRequest{
		Position:   queryString(r, "position"),
		MaxPrice:   maxPrice,
		MinPoints:  minPoints,
		MinSeasons: minSeasons,
		Team:       queryString(r, "team"),
		Search:     queryString(r, "search"),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.playerService.List(ctx, usecase.PlayerFilter{
		Position:   req.Position,
		MaxPrice:   req.MaxPrice,
		MinPoints:  req.MinPoints,
		MinSeasons: req.MinSeasons,
		Team:       req.Team,
		Search:     req.Search,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"players":         out.Players,
		"totalCount":      out.TotalCount,
		"currentGameweek": out.CurrentGameweek,
		"lastUpdated":     out.LastUpdated,
	})
}

func (h *Handler) GetPlayerHistory(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayerHistory")
	defer span.End()

	playerID, err := strconv.Atoi(r.PathValue("playerID"))
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: player id must be an integer", usecase.ErrInvalidInput))
		return
	}

	out, err := h.playerService.History(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player history failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"player":  out.Player,
		"profile": out.Profile,
		"seasons": out.Seasons,
	})
}

type listTopPlayersRequest struct {
	Metric     string `validate:"omitempty,max=40"`
	Limit      int    `validate:"omitempty,gt=0,lte=100"`
	Position   string `validate:"omitempty,max=20"`
	MinSeasons int    `validate:"omitempty,gte=0,lte=10"`
}

func (h *Handler) ListTopPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTopPlayers")
	defer span.End()

	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	minSeasons, err := queryInt(r, "minSeasons")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req := listTopPlayersRequest{
		Metric:   queryString(r, "metric"),
		Position: queryString(r, "position"),
	}
	if limit != nil {
		req.Limit = *limit
	}
	if minSeasons != nil {
		req.MinSeasons = *minSeasons
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.playerService.Top(ctx, usecase.TopQuery{
		Metric:     req.Metric,
		Limit:      req.Limit,
		Position:   req.Position,
		MinSeasons: req.MinSeasons,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "list top players failed", "metric", req.Metric, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]topPlayerDTO, 0, len(out.Players))
	for i, rec := range out.Players {
		items = append(items, topPlayerDTO{
			Rank:   i + 1,
			Value:  out.Values[i],
			Player: rec,
		})
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"metric":           out.Metric,
		"availableMetrics": usecase.MetricNames(),
		"players":          items,
	})
}
