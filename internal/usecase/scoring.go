package usecase

import (
	"context"
	"math"

	"github.com/riskibarqy/fpl-insights/internal/domain/history"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
)

// Scoring weights for the overall score. Total points dominate, with
// value-for-money, per-game output, and availability as correctives.
const (
	overallPointsWeight       = 0.4
	overallPPMWeight          = 0.3
	overallPPGWeight          = 2.0
	overallAvailabilityWeight = 0.1

	starterBonus       = 1.2
	injuryPenaltyFloor = 0.5
)

// Score fills a record's ScoreProfile from its season numbers and its
// history profile. Every output is finite; non-finite intermediate
// values contribute zero and are logged.
func Score(ctx context.Context, rec *player.Record, profile history.Profile, logger *logging.Logger) {
	ppg := float64(rec.TotalPoints) / math.Max(1, float64(rec.GamesPlayed))

	overall := overallPointsWeight*float64(rec.TotalPoints) +
		overallPPMWeight*rec.PointsPerMillion +
		overallPPGWeight*ppg +
		overallAvailabilityWeight*rec.AvailabilityScore

	consistency := consistencyScore(rec, profile)

	injuryPenalty := math.Max(injuryPenaltyFloor, 1-profile.InjuryRisk/10)
	formBonus := 1 + rec.Form/50
	bonus := 1.0
	if profile.ReliableStarter {
		bonus = starterBonus
	}
	value := rec.PointsPerMillion * (consistency / 100) * bonus * injuryPenalty * formBonus

	rec.Scores = player.ScoreProfile{
		OverallScore:     finite(ctx, logger, rec.ID, "overallScore", round1(overall)),
		ValueScore:       finite(ctx, logger, rec.ID, "valueScore", round2(value)),
		ConsistencyScore: finite(ctx, logger, rec.ID, "consistencyScore", round1(consistency)),
	}
}

// consistencyScore blends real and synthesized signals: real season
// data yields an avg-points-per-season/price ratio, synthesized
// profiles carry their CV-based score directly.
func consistencyScore(rec *player.Record, profile history.Profile) float64 {
	if profile.Synthesized {
		return profile.ConsistencyScore
	}
	seasons := math.Max(1, float64(rec.SeasonsPlayed))
	price := math.Max(1, rec.Price)
	return (float64(rec.TotalPoints) / seasons) / price
}

func finite(ctx context.Context, logger *logging.Logger, playerID int, field string, v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		logger.WarnContext(ctx, "non-finite score clamped to zero", "player_id", playerID, "field", field)
		return 0
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
