package usecase

import (
	"math"
	"sort"

	"github.com/riskibarqy/fpl-insights/internal/domain/player"
)

// MetricTotalPoints is the default ranking metric; unknown metric
// names silently resolve to it.
const MetricTotalPoints = "totalPoints"

var metricExtractors = map[string]func(player.Record) float64{
	MetricTotalPoints:    func(r player.Record) float64 { return float64(r.TotalPoints) },
	"pointsPerMillion":   func(r player.Record) float64 { return r.PointsPerMillion },
	"avgPointsPerSeason": func(r player.Record) float64 { return r.AvgPointsPerSeason },
	"avgPointsPerGame": func(r player.Record) float64 {
		return float64(r.TotalPoints) / math.Max(1, float64(r.GamesPlayed))
	},
	"overallScore":      func(r player.Record) float64 { return r.Scores.OverallScore },
	"consistencyScore":  func(r player.Record) float64 { return r.Scores.ConsistencyScore },
	"valueScore":        func(r player.Record) float64 { return r.Scores.ValueScore },
	"goalInvolvement":   func(r player.Record) float64 { return float64(r.GoalInvolvement) },
	"availabilityScore": func(r player.Record) float64 { return r.AvailabilityScore },
}

// ResolveMetric returns the extractor and canonical name for a metric,
// falling back to total points for unknown names.
func ResolveMetric(name string) (func(player.Record) float64, string) {
	if fn, ok := metricExtractors[name]; ok {
		return fn, name
	}
	return metricExtractors[MetricTotalPoints], MetricTotalPoints
}

// MetricNames lists the supported ranking metrics.
func MetricNames() []string {
	out := make([]string, 0, len(metricExtractors))
	for name := range metricExtractors {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// rankByMetric orders records by metric descending with the pinned
// tie-break: total points descending, then ID ascending. Non-finite
// metric values rank last.
func rankByMetric(records []player.Record, metric func(player.Record) float64) {
	value := func(r player.Record) float64 {
		v := metric(r)
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return math.Inf(-1)
		}
		return v
	}

	sort.SliceStable(records, func(i, j int) bool {
		vi, vj := value(records[i]), value(records[j])
		if vi != vj {
			return vi > vj
		}
		if records[i].TotalPoints != records[j].TotalPoints {
			return records[i].TotalPoints > records[j].TotalPoints
		}
		return records[i].ID < records[j].ID
	})
}
