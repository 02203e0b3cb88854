package usecase

import (
	"context"
	"math"
	"time"

	"github.com/riskibarqy/fpl-insights/internal/domain/player"
)

// StatHighlight is one standout player in the stats summary.
type StatHighlight struct {
	Name             string          `json:"name"`
	FullName         string          `json:"fullName"`
	Team             string          `json:"team"`
	Position         player.Position `json:"position"`
	TotalPoints      int             `json:"totalPoints"`
	Price            float64         `json:"price,omitempty"`
	PointsPerMillion float64         `json:"pointsPerMillion,omitempty"`
	PointsPerGame    float64         `json:"pointsPerGame,omitempty"`
	Ownership        float64         `json:"ownership,omitempty"`
}

// PositionStats aggregates one position group.
type PositionStats struct {
	Count     int     `json:"count"`
	AvgPoints float64 `json:"avgPoints"`
	AvgPrice  float64 `json:"avgPrice"`
}

// LeagueInsights carries the cross-pool observations.
type LeagueInsights struct {
	HighestScoringPosition player.Position `json:"highestScoringPosition"`
	TotalGoalsScored       int             `json:"totalGoalsScored"`
	TotalAssists           int             `json:"totalAssists"`
	TotalCleanSheets       int             `json:"totalCleanSheets"`
	AverageOwnership       float64         `json:"averageOwnership"`
	AvgConsistency         float64         `json:"avgConsistency"`
	ReliableStarters       int             `json:"reliableStarters"`
	PositiveValueTrend     int             `json:"playersWithPositiveTrend"`
}

// StatsSummary is the /api/stats response body.
type StatsSummary struct {
	TotalPlayers      int                               `json:"totalPlayers"`
	AvgPoints         float64                           `json:"avgPoints"`
	AvgPrice          float64                           `json:"avgPrice"`
	AvgPointsPerGame  float64                           `json:"avgPointsPerGame"`
	TopScorer         StatHighlight                     `json:"topScorer"`
	BestValue         StatHighlight                     `json:"bestValue"`
	MostConsistent    StatHighlight                     `json:"mostConsistent"`
	MostOwned         StatHighlight                     `json:"mostOwned"`
	PositionBreakdown map[player.Position]PositionStats `json:"positionBreakdown"`
	TeamBreakdown     map[string]int                    `json:"teamBreakdown"`
	Insights          LeagueInsights                    `json:"insights"`
	CurrentGameweek   int                               `json:"currentGameweek"`
	LastUpdated       time.Time                         `json:"lastUpdated"`
}

type StatsService struct {
	snapshots *SnapshotService
}

func NewStatsService(snapshots *SnapshotService) *StatsService {
	return &StatsService{snapshots: snapshots}
}

// Summary aggregates the whole pool. An empty pool yields zero values,
// not an error.
func (s *StatsService) Summary(ctx context.Context) (StatsSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Summary")
	defer span.End()

	snapshot, err := s.snapshots.Get(ctx)
	if err != nil {
		return StatsSummary{}, err
	}

	out := StatsSummary{
		TotalPlayers:      len(snapshot.Players),
		PositionBreakdown: make(map[player.Position]PositionStats),
		TeamBreakdown:     make(map[string]int),
		CurrentGameweek:   snapshot.CurrentGameweek,
		LastUpdated:       snapshot.LastUpdated,
	}
	if len(snapshot.Players) == 0 {
		return out, nil
	}

	var (
		sumPoints, sumPrice, sumPPG, sumOwnership, sumConsistency float64
		topScorer, bestValue, mostConsistent, mostOwned           player.Record
	)
	posPoints := make(map[player.Position]float64)
	posPrice := make(map[player.Position]float64)
	posCount := make(map[player.Position]int)

	topScorer = snapshot.Players[0]
	bestValue = snapshot.Players[0]
	mostConsistent = snapshot.Players[0]
	mostOwned = snapshot.Players[0]

	for _, rec := range snapshot.Players {
		ppg := float64(rec.TotalPoints) / math.Max(1, float64(rec.GamesPlayed))

		sumPoints += float64(rec.TotalPoints)
		sumPrice += rec.Price
		sumPPG += ppg
		sumOwnership += rec.Ownership
		sumConsistency += rec.Scores.ConsistencyScore

		posPoints[rec.Position] += float64(rec.TotalPoints)
		posPrice[rec.Position] += rec.Price
		posCount[rec.Position]++
		out.TeamBreakdown[rec.Team]++

		out.Insights.TotalGoalsScored += rec.Goals
		out.Insights.TotalAssists += rec.Assists
		out.Insights.TotalCleanSheets += rec.CleanSheets

		if rec.TotalPoints > topScorer.TotalPoints {
			topScorer = rec
		}
		if rec.PointsPerMillion > bestValue.PointsPerMillion {
			bestValue = rec
		}
		if rec.PointsPerGame > mostConsistent.PointsPerGame {
			mostConsistent = rec
		}
		if rec.Ownership > mostOwned.Ownership {
			mostOwned = rec
		}

		if profile, ok := snapshot.Profiles[rec.ID]; ok {
			if profile.ReliableStarter {
				out.Insights.ReliableStarters++
			}
			if profile.ValueTrend > 0 {
				out.Insights.PositiveValueTrend++
			}
		}
	}

	n := float64(len(snapshot.Players))
	out.AvgPoints = round1(sumPoints / n)
	out.AvgPrice = round1(sumPrice / n)
	out.AvgPointsPerGame = round2(sumPPG / n)
	out.Insights.AverageOwnership = round1(sumOwnership / n)
	out.Insights.AvgConsistency = round1(sumConsistency / n)

	// Walk positions in the pinned selection order so an average-points
	// tie always resolves the same way.
	bestAvg := math.Inf(-1)
	for _, pos := range selectionOrder {
		count, ok := posCount[pos]
		if !ok {
			continue
		}
		avg := posPoints[pos] / float64(count)
		out.PositionBreakdown[pos] = PositionStats{
			Count:     count,
			AvgPoints: round1(avg),
			AvgPrice:  round1(posPrice[pos] / float64(count)),
		}
		if avg > bestAvg {
			bestAvg = avg
			out.Insights.HighestScoringPosition = pos
		}
	}

	out.TopScorer = highlight(topScorer)
	out.BestValue = StatHighlight{
		Name: bestValue.Name, FullName: bestValue.FullName, Team: bestValue.Team,
		Position: bestValue.Position, TotalPoints: bestValue.TotalPoints,
		Price: bestValue.Price, PointsPerMillion: bestValue.PointsPerMillion,
	}
	out.MostConsistent = StatHighlight{
		Name: mostConsistent.Name, FullName: mostConsistent.FullName, Team: mostConsistent.Team,
		Position: mostConsistent.Position, TotalPoints: mostConsistent.TotalPoints,
		PointsPerGame: mostConsistent.PointsPerGame,
	}
	out.MostOwned = StatHighlight{
		Name: mostOwned.Name, FullName: mostOwned.FullName, Team: mostOwned.Team,
		Position: mostOwned.Position, TotalPoints: mostOwned.TotalPoints,
		Ownership: mostOwned.Ownership,
	}

	return out, nil
}

func highlight(rec player.Record) StatHighlight {
	return StatHighlight{
		Name:        rec.Name,
		FullName:    rec.FullName,
		Team:        rec.Team,
		Position:    rec.Position,
		TotalPoints: rec.TotalPoints,
	}
}
