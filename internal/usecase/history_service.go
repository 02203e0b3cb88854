package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fpl-insights/internal/domain/history"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
)

const maxPastSeasons = 2

type HistoryServiceConfig struct {
	Enabled    bool
	BatchSize  int
	Workers    int
	BatchDelay time.Duration
}

// HistoryService attaches a three-season profile to every player.
// With enrichment enabled it fetches real per-player summaries in
// rate-limited batches; otherwise every profile is synthesized.
type HistoryService struct {
	source  PlayerSource
	archive SeasonArchive
	cfg     HistoryServiceConfig
	logger  *logging.Logger
}

func NewHistoryService(source PlayerSource, archive SeasonArchive, cfg HistoryServiceConfig, logger *logging.Logger) *HistoryService {
	if cfg.BatchSize < 1 {
		cfg.BatchSize = 20
	}
	if cfg.Workers < 1 {
		cfg.Workers = 5
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &HistoryService{
		source:  source,
		archive: archive,
		cfg:     cfg,
		logger:  logger,
	}
}

// Enrich mutates records in place (season totals, SeasonsPlayed) and
// returns one profile per player ID. Individual fetch failures only
// omit that player's real history; the player falls back to the
// synthesizer.
func (s *HistoryService) Enrich(ctx context.Context, records []player.Record) (map[int]history.Profile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.HistoryService.Enrich")
	defer span.End()

	profiles := make(map[int]history.Profile, len(records))

	if !s.cfg.Enabled {
		for i := range records {
			profiles[records[i].ID] = s.synthesize(&records[i])
		}
		return profiles, nil
	}

	summaries, err := s.fetchSummaries(ctx, records)
	if err != nil {
		return nil, err
	}

	archivePoints := s.loadArchive(ctx)

	for i := range records {
		rec := &records[i]
		summary, ok := summaries[rec.ID]
		if ok && len(summary.PastSeasons) > 0 {
			profiles[rec.ID] = s.applyRealHistory(rec, summary)
			continue
		}
		if points, ok := archivePoints[rec.FullName]; ok && len(points) > 0 {
			profiles[rec.ID] = s.applyArchiveHistory(rec, points)
			continue
		}
		profiles[rec.ID] = s.synthesize(rec)
	}

	return profiles, nil
}

// fetchSummaries pulls element summaries in bounded batches: a worker
// pool inside each batch, a fixed delay between batches to respect
// upstream rate limits. Workers write to their own slot; results are
// merged after each batch completes.
func (s *HistoryService) fetchSummaries(ctx context.Context, records []player.Record) (map[int]PlayerSummary, error) {
	pool, err := ants.NewPool(s.cfg.Workers)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	out := make(map[int]PlayerSummary, len(records))

	for start := 0; start < len(records); start += s.cfg.BatchSize {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		end := start + s.cfg.BatchSize
		if end > len(records) {
			end = len(records)
		}
		batch := records[start:end]
		slots := make([]*PlayerSummary, len(batch))

		var workers sync.WaitGroup
		for i := range batch {
			i := i
			playerID := batch[i].ID
			workers.Add(1)
			if err := pool.Submit(func() {
				defer workers.Done()

				summary, fetchErr := s.source.FetchPlayerSummary(ctx, playerID)
				if fetchErr != nil {
					s.logger.DebugContext(ctx, "player summary fetch failed, enrichment omitted", "player_id", playerID, "error", fetchErr)
					return
				}
				slots[i] = &summary
			}); err != nil {
				workers.Done()
				s.logger.WarnContext(ctx, "submit summary fetch failed", "player_id", playerID, "error", err)
			}
		}
		workers.Wait()

		for _, slot := range slots {
			if slot != nil {
				out[slot.PlayerID] = *slot
			}
		}

		if end < len(records) && s.cfg.BatchDelay > 0 {
			timer := time.NewTimer(s.cfg.BatchDelay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}
	}

	return out, nil
}

// loadArchive is a best-effort secondary source keyed by full name.
// Any failure degrades to synth-only.
func (s *HistoryService) loadArchive(ctx context.Context) map[string][]int {
	if s.archive == nil {
		return nil
	}

	merged := make(map[string][]int)
	for _, season := range history.PastSeasonLabels(time.Now().UTC(), maxPastSeasons) {
		points, err := s.archive.SeasonPoints(ctx, season)
		if err != nil {
			s.logger.DebugContext(ctx, "season archive unavailable", "season", season, "error", err)
			continue
		}
		for name, total := range points {
			merged[name] = append(merged[name], total)
		}
	}
	return merged
}

// applyRealHistory folds up to two past seasons into the record's
// totals and builds the profile from real per-season points.
func (s *HistoryService) applyRealHistory(rec *player.Record, summary PlayerSummary) history.Profile {
	past := summary.PastSeasons
	if len(past) > maxPastSeasons {
		past = past[len(past)-maxPastSeasons:]
	}

	seasonPoints := []int{rec.TotalPoints}
	for _, season := range past {
		seasonPoints = append(seasonPoints, season.TotalPoints)
		rec.TotalPoints += season.TotalPoints
		rec.Minutes += season.Minutes
		rec.Goals += season.Goals
		rec.Assists += season.Assists
		rec.CleanSheets += season.CleanSheets
	}
	rec.SeasonsPlayed = 1 + len(past)
	rec.ComputeDerived()

	return history.FromSeasons(rec.FullName, rec.Position, seasonPoints)
}

func (s *HistoryService) applyArchiveHistory(rec *player.Record, pastPoints []int) history.Profile {
	if len(pastPoints) > maxPastSeasons {
		pastPoints = pastPoints[len(pastPoints)-maxPastSeasons:]
	}

	seasonPoints := append([]int{rec.TotalPoints}, pastPoints...)
	rec.SeasonsPlayed = len(seasonPoints)
	rec.AvgPointsPerSeason = avgInts(seasonPoints)

	return history.FromSeasons(rec.FullName, rec.Position, seasonPoints)
}

// synthesize covers players with no real history at all. The profile
// spans three deterministic seasons, so the record reports three
// seasons played.
func (s *HistoryService) synthesize(rec *player.Record) history.Profile {
	profile := history.Synthesize(rec.FullName, rec.Position, rec.TotalPoints)
	rec.SeasonsPlayed = len(profile.SeasonsPoints)
	rec.AvgPointsPerSeason = profile.AvgPointsPerSeason
	return profile
}

func avgInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	total := 0
	for _, v := range values {
		total += v
	}
	return float64(total) / float64(len(values))
}
