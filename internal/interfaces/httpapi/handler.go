package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
	"github.com/riskibarqy/fpl-insights/internal/usecase"
)

type Handler struct {
	playerService    *usecase.PlayerService
	statsService     *usecase.StatsService
	optimizerService *usecase.OptimizerService
	snapshotService  *usecase.SnapshotService
	serviceName      string
	serviceVersion   string
	logger           *logging.Logger
	validator        *validator.Validate
}

func NewHandler(
	playerService *usecase.PlayerService,
	statsService *usecase.StatsService,
	optimizerService *usecase.OptimizerService,
	snapshotService *usecase.SnapshotService,
	serviceName string,
	serviceVersion string,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		playerService:    playerService,
		statsService:     statsService,
		optimizerService: optimizerService,
		snapshotService:  snapshotService,
		serviceName:      serviceName,
		serviceVersion:   serviceVersion,
		logger:           logger,
		validator:        validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Root")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"service": h.serviceName,
		"version": h.serviceVersion,
		"endpoints": []string{
			"GET /api/players",
			"GET /api/players/{playerID}/history",
			"GET /api/top-players",
			"GET /api/stats",
			"GET /api/team-optimizer",
			"GET /api/optimal-squad",
			"POST /api/refresh",
		},
		"dataSources": []string{"fantasy.premierleague.com", "vaastav/Fantasy-Premier-League"},
	})
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) RefreshSnapshot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RefreshSnapshot")
	defer span.End()

	snapshot, err := h.snapshotService.Refresh(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "refresh snapshot failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{
		"players":     len(snapshot.Players),
		"gameweek":    snapshot.CurrentGameweek,
		"lastUpdated": snapshot.LastUpdated,
	})
}

func queryString(r *http.Request, key string) string {
	return strings.TrimSpace(r.URL.Query().Get(key))
}

func queryInt(r *http.Request, key string) (*int, error) {
	raw := queryString(r, key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", usecase.ErrInvalidInput, key)
	}
	return &v, nil
}

func queryFloat(r *http.Request, key string) (*float64, error) {
	raw := queryString(r, key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", usecase.ErrInvalidInput, key)
	}
	return &v, nil
}

func queryBool(r *http.Request, key string, fallback bool) (bool, error) {
	raw := queryString(r, key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be a boolean", usecase.ErrInvalidInput, key)
	}
	return v, nil
}
