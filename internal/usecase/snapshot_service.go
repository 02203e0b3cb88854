package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/fpl-insights/internal/domain/history"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/platform/cache"
	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
)

const snapshotCacheKey = "players:snapshot"

// Snapshot is one fully processed view of the player pool: mapped,
// enriched, and scored. Every endpoint reads from it.
type Snapshot struct {
	Players         []player.Record
	Profiles        map[int]history.Profile
	CurrentGameweek int
	TeamCount       int
	LastUpdated     time.Time
}

// SnapshotService owns the fetch→map→enrich→score pipeline behind a
// single cache entry, so concurrent requests share one upstream fetch.
type SnapshotService struct {
	source       PlayerSource
	enricher     *HistoryService
	store        *cache.Store
	cacheEnabled bool
	logger       *logging.Logger
}

func NewSnapshotService(source PlayerSource, enricher *HistoryService, store *cache.Store, cacheEnabled bool, logger *logging.Logger) *SnapshotService {
	if logger == nil {
		logger = logging.Default()
	}
	return &SnapshotService{
		source:       source,
		enricher:     enricher,
		store:        store,
		cacheEnabled: cacheEnabled,
		logger:       logger,
	}
}

// Get returns the current snapshot, loading it at most once across
// concurrent callers.
func (s *SnapshotService) Get(ctx context.Context) (Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotService.Get")
	defer span.End()

	key := snapshotCacheKey
	if !s.cacheEnabled {
		key = ""
	}

	out, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.load(ctx)
	})
	if err != nil {
		return Snapshot{}, err
	}

	snapshot, ok := out.(Snapshot)
	if !ok {
		return Snapshot{}, fmt.Errorf("unexpected snapshot cache payload type %T", out)
	}
	return snapshot, nil
}

// Refresh drops the cached snapshot and rebuilds it.
func (s *SnapshotService) Refresh(ctx context.Context) (Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SnapshotService.Refresh")
	defer span.End()

	s.store.Delete(ctx, snapshotCacheKey)
	return s.Get(ctx)
}

func (s *SnapshotService) load(ctx context.Context) (Snapshot, error) {
	started := time.Now()

	batch, err := s.source.FetchPlayers(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	profiles, err := s.enricher.Enrich(ctx, batch.Players)
	if err != nil {
		return Snapshot{}, fmt.Errorf("enrich players: %w", err)
	}

	for i := range batch.Players {
		rec := &batch.Players[i]
		Score(ctx, rec, profiles[rec.ID], s.logger)
	}

	s.logger.InfoContext(ctx, "player snapshot rebuilt",
		"players", len(batch.Players),
		"gameweek", batch.CurrentGameweek,
		"duration_ms", time.Since(started).Milliseconds(),
	)

	return Snapshot{
		Players:         batch.Players,
		Profiles:        profiles,
		CurrentGameweek: batch.CurrentGameweek,
		TeamCount:       batch.TeamCount,
		LastUpdated:     batch.FetchedAt,
	}, nil
}
