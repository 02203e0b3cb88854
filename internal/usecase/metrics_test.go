package usecase

import (
	"math"
	"testing"

	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/stretchr/testify/require"
)

func TestResolveMetric(t *testing.T) {
	t.Parallel()

	rec := player.Record{TotalPoints: 120, PointsPerMillion: 15.5}

	extract, name := ResolveMetric("pointsPerMillion")
	require.Equal(t, "pointsPerMillion", name)
	require.Equal(t, 15.5, extract(rec))

	extract, name = ResolveMetric("no-such-metric")
	require.Equal(t, MetricTotalPoints, name)
	require.Equal(t, 120.0, extract(rec))

	extract, name = ResolveMetric("")
	require.Equal(t, MetricTotalPoints, name)
	require.Equal(t, 120.0, extract(rec))
}

func TestMetricNames(t *testing.T) {
	t.Parallel()

	names := MetricNames()
	require.Contains(t, names, MetricTotalPoints)
	require.Contains(t, names, "overallScore")
	require.Contains(t, names, "valueScore")
	require.IsIncreasing(t, names)
}

func TestRankByMetric_TieBreak(t *testing.T) {
	t.Parallel()

	records := []player.Record{
		{ID: 4, TotalPoints: 100, PointsPerMillion: 10},
		{ID: 2, TotalPoints: 120, PointsPerMillion: 10},
		{ID: 1, TotalPoints: 100, PointsPerMillion: 10},
		{ID: 3, TotalPoints: 100, PointsPerMillion: 12},
	}

	rankByMetric(records, func(r player.Record) float64 { return r.PointsPerMillion })

	ids := []int{records[0].ID, records[1].ID, records[2].ID, records[3].ID}
	// Highest metric first, then total points desc, then ID asc.
	require.Equal(t, []int{3, 2, 1, 4}, ids)
}

func TestRankByMetric_NonFiniteRanksLast(t *testing.T) {
	t.Parallel()

	records := []player.Record{
		{ID: 1, PointsPerMillion: math.NaN(), TotalPoints: 500},
		{ID: 2, PointsPerMillion: 5},
		{ID: 3, PointsPerMillion: math.Inf(1), TotalPoints: 400},
	}

	rankByMetric(records, func(r player.Record) float64 { return r.PointsPerMillion })

	require.Equal(t, 2, records[0].ID, "only the finite value may rank first")
	require.Equal(t, 1, records[1].ID, "non-finite ties break on total points")
	require.Equal(t, 3, records[2].ID)
}
