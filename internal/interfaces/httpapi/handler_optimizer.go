package httpapi

import (
	"net/http"

	"github.com/riskibarqy/fpl-insights/internal/usecase"
)

type optimizeTeamRequest struct {
	Budget     float64 `validate:"omitempty,gt=0,lte=1000"`
	Formation  string  `validate:"omitempty,max=10"`
	MinSeasons int     `validate:"omitempty,gte=0,lte=10"`
	Metric     string  `validate:"omitempty,max=40"`
}

func (h *Handler) OptimizeTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OptimizeTeam")
	defer span.End()

	budget, err := queryFloat(r, "budget")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	minSeasons, err := queryInt(r, "minSeasons")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req := optimizeTeamRequest{
		Formation: queryString(r, "formation"),
		Metric:    queryString(r, "metric"),
	}
	if budget != nil {
		req.Budget = *budget
	}
	if minSeasons != nil {
		req.MinSeasons = *minSeasons
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.optimizerService.Optimize(ctx, usecase.OptimizeInput{
		Budget:     req.Budget,
		Formation:  req.Formation,
		MinSeasons: req.MinSeasons,
		Metric:     req.Metric,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "team optimization failed", "formation", req.Formation, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"squad":           out.Squad,
		"formation":       out.Formation.Name,
		"metric":          out.Metric,
		"minSeasons":      out.MinSeasons,
		"totalPoints":     out.TotalPoints,
		"avgOverallScore": out.AvgOverallScore,
		"shortfalls":      out.Shortfalls,
	})
}

type optimalSquadRequest struct {
	Budget    float64 `validate:"omitempty,gt=0,lte=1000"`
	Formation string  `validate:"omitempty,max=10"`
}

func (h *Handler) BuildOptimalSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BuildOptimalSquad")
	defer span.End()

	budget, err := queryFloat(r, "budget")
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	weighConsistency, err := queryBool(r, "consistency", true)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	req := optimalSquadRequest{Formation: queryString(r, "formation")}
	if budget != nil {
		req.Budget = *budget
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	out, err := h.optimizerService.OptimalSquad(ctx, usecase.OptimalSquadInput{
		Budget:           req.Budget,
		Formation:        req.Formation,
		WeighConsistency: weighConsistency,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "optimal squad failed", "formation", req.Formation, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"squad":                 out.Squad,
		"formation":             out.Formation.Name,
		"weighedConsistency":    out.WeighedConsistency,
		"squadConsistencyScore": out.SquadConsistencyScore,
		"shortfalls":            out.Shortfalls,
	})
}
