package usecase

import (
	"math"
	"testing"

	"github.com/riskibarqy/fpl-insights/internal/domain/history"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

func TestScore_OverallFormula(t *testing.T) {
	t.Parallel()

	rec := player.Record{
		ID: 1, FullName: "Test Player", Position: player.PositionForward,
		Price: 10, TotalPoints: 200, Minutes: 2700, SeasonsPlayed: 1,
	}
	rec.ComputeDerived()
	profile := history.Profile{ConsistencyScore: 80, Synthesized: true}

	Score(t.Context(), &rec, profile, logging.NewNop())

	ppg := float64(rec.TotalPoints) / float64(rec.GamesPlayed)
	want := 0.4*float64(rec.TotalPoints) + 0.3*rec.PointsPerMillion + 2*ppg + 0.1*rec.AvailabilityScore
	require.InDelta(t, want, rec.Scores.OverallScore, 0.05)
	require.Equal(t, 80.0, rec.Scores.ConsistencyScore)
}

func TestScore_ValueRespondsToProfile(t *testing.T) {
	t.Parallel()

	base := player.Record{
		ID: 1, FullName: "Test Player", Position: player.PositionMidfielder,
		Price: 8, TotalPoints: 150, Minutes: 2500, SeasonsPlayed: 1, Form: 5,
	}
	base.ComputeDerived()

	starter := base
	bench := base
	starterProfile := history.Profile{ConsistencyScore: 70, ReliableStarter: true, InjuryRisk: 1, Synthesized: true}
	benchProfile := history.Profile{ConsistencyScore: 70, ReliableStarter: false, InjuryRisk: 1, Synthesized: true}

	Score(t.Context(), &starter, starterProfile, logging.NewNop())
	Score(t.Context(), &bench, benchProfile, logging.NewNop())

	require.Greater(t, starter.Scores.ValueScore, bench.Scores.ValueScore)
	require.InDelta(t, starter.Scores.ValueScore, bench.Scores.ValueScore*1.2, 0.02)
}

func TestScore_InjuryPenaltyFloor(t *testing.T) {
	t.Parallel()

	rec := player.Record{
		ID: 1, FullName: "Fragile Player", Position: player.PositionDefender,
		Price: 6, TotalPoints: 100, Minutes: 1800, SeasonsPlayed: 1,
	}
	rec.ComputeDerived()

	// Injury risk of 9 would multiply by 0.1 without the floor.
	risky := rec
	capped := rec
	Score(t.Context(), &risky, history.Profile{ConsistencyScore: 60, InjuryRisk: 9, Synthesized: true}, logging.NewNop())
	Score(t.Context(), &capped, history.Profile{ConsistencyScore: 60, InjuryRisk: 5, Synthesized: true}, logging.NewNop())

	require.Equal(t, capped.Scores.ValueScore, risky.Scores.ValueScore, "penalty is floored at 0.5")
}

func TestScore_RealHistoryConsistency(t *testing.T) {
	t.Parallel()

	rec := player.Record{
		ID: 1, FullName: "Proven Player", Position: player.PositionMidfielder,
		Price: 10, TotalPoints: 450, Minutes: 2700, SeasonsPlayed: 3,
	}
	rec.ComputeDerived()

	Score(t.Context(), &rec, history.Profile{Synthesized: false}, logging.NewNop())

	// (450/3)/10 = 15.0
	require.Equal(t, 15.0, rec.Scores.ConsistencyScore)
}

func TestScore_AlwaysFinite(t *testing.T) {
	t.Parallel()

	rec := player.Record{ID: 1, FullName: "Zero Player", Position: player.PositionForward}
	rec.ComputeDerived()

	profile := history.Profile{ConsistencyScore: math.NaN(), InjuryRisk: math.Inf(1), Synthesized: true}
	Score(t.Context(), &rec, profile, logging.NewNop())

	for _, v := range []float64{rec.Scores.OverallScore, rec.Scores.ValueScore, rec.Scores.ConsistencyScore} {
		require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
	}
}
