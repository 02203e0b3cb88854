package history

import (
	"hash/fnv"
	"math"

	"github.com/riskibarqy/fpl-insights/internal/domain/player"
)

// Profile summarizes three seasons of performance for one player,
// either rebuilt from real archive rows or synthesized here.
type Profile struct {
	SeasonsPoints      []int   `json:"seasonsBreakdown"`
	AvgPointsPerSeason float64 `json:"avgPointsPerSeason"`
	TotalPoints        int     `json:"totalPoints3Years"`
	BestSeason         int     `json:"bestSeason"`
	WorstSeason        int     `json:"worstSeason"`
	ConsistencyScore   float64 `json:"consistencyScore"`
	InjuryRisk         float64 `json:"injuryRisk"`
	AvgGamesPerSeason  float64 `json:"avgGamesPerSeason"`
	ReliableStarter    bool    `json:"reliableStarter"`
	ValueTrend         float64 `json:"valueTrend"`
	Synthesized        bool    `json:"synthesized"`
}

// SeasonRow is one season of a per-player breakdown.
type SeasonRow struct {
	Season       string  `json:"season"`
	TotalPoints  int     `json:"totalPoints"`
	GamesPlayed  int     `json:"gamesPlayed"`
	Goals        int     `json:"goals"`
	Assists      int     `json:"assists"`
	CleanSheets  int     `json:"cleanSheets"`
	PriceStart   float64 `json:"priceStart"`
	PriceEnd     float64 `json:"priceEnd"`
	PriceChange  float64 `json:"priceChange"`
	OwnershipAvg float64 `json:"ownershipAvg"`
	PointsPerGame float64 `json:"ppg"`
}

type pattern struct {
	multiplier      float64
	variance        float64
	consistencyBase float64
	injuryBase      float64
	gamesBase       float64
}

var patterns = map[player.Position]pattern{
	player.PositionForward:    {multiplier: 1.00, variance: 0.35, consistencyBase: 55, injuryBase: 2.2, gamesBase: 28},
	player.PositionMidfielder: {multiplier: 0.95, variance: 0.25, consistencyBase: 68, injuryBase: 1.8, gamesBase: 32},
	player.PositionDefender:   {multiplier: 0.85, variance: 0.20, consistencyBase: 75, injuryBase: 1.5, gamesBase: 34},
	player.PositionGoalkeeper: {multiplier: 0.90, variance: 0.15, consistencyBase: 82, injuryBase: 1.0, gamesBase: 35},
}

// Seed derives the deterministic per-player seed from the full name.
// FNV-1a keeps the value stable across processes and platforms.
func Seed(fullName string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(fullName))
	return h.Sum64() % 1000
}

// Synthesize builds a deterministic three-season profile for a player
// with no real history: same name and position always yield the same
// output.
func Synthesize(fullName string, position player.Position, currentPoints int) Profile {
	seed := Seed(fullName)
	pat, ok := patterns[position]
	if !ok {
		pat = patterns[player.PositionMidfielder]
	}

	points := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		variance := 1 + (float64((seed+uint64(i)*100)%60)-30)/100*pat.variance
		season := float64(currentPoints) * pat.multiplier * variance
		if season < 30 {
			season = 30
		}
		points = append(points, int(season))
	}

	return buildProfile(points, seed, pat, true)
}

// FromSeasons builds a profile from real per-season totals, using the
// synthesized seed only for the fields real data cannot supply.
func FromSeasons(fullName string, position player.Position, seasonPoints []int) Profile {
	if len(seasonPoints) == 0 {
		return Synthesize(fullName, position, 0)
	}

	seed := Seed(fullName)
	pat, ok := patterns[position]
	if !ok {
		pat = patterns[player.PositionMidfielder]
	}

	points := make([]int, len(seasonPoints))
	copy(points, seasonPoints)
	return buildProfile(points, seed, pat, false)
}

func buildProfile(points []int, seed uint64, pat pattern, synthesized bool) Profile {
	total := 0
	best := points[0]
	worst := points[0]
	for _, p := range points {
		total += p
		if p > best {
			best = p
		}
		if p < worst {
			worst = p
		}
	}
	mean := float64(total) / float64(len(points))

	consistency := pat.consistencyBase
	if len(points) > 1 {
		cv := sampleStdev(points, mean) / math.Max(1, mean)
		consistency = clamp(pat.consistencyBase-cv*50, 10, 95)
	}

	injuryRisk := clamp(pat.injuryBase+(float64(seed%30)-15)/10, 0, 6)
	avgGames := clamp(pat.gamesBase+float64(seed%10)-5, 15, 38)
	valueTrend := (float64(seed%80) - 40) / 100

	return Profile{
		SeasonsPoints:      points,
		AvgPointsPerSeason: round1(mean),
		TotalPoints:        total,
		BestSeason:         best,
		WorstSeason:        worst,
		ConsistencyScore:   round1(consistency),
		InjuryRisk:         round1(injuryRisk),
		AvgGamesPerSeason:  round1(avgGames),
		ReliableStarter:    avgGames >= 30,
		ValueTrend:         round2(valueTrend),
		Synthesized:        synthesized,
	}
}

// SeasonBreakdown expands a player's current totals into deterministic
// per-season rows for the given season labels.
func SeasonBreakdown(rec player.Record, seasons []string) []SeasonRow {
	seed := Seed(rec.FullName)

	out := make([]SeasonRow, 0, len(seasons))
	for i, season := range seasons {
		variance := 1 + (float64((seed+uint64(i)*123)%40)-20)/100

		row := SeasonRow{
			Season:      season,
			TotalPoints: maxInt(30, int(float64(rec.TotalPoints)*variance)),
			GamesPlayed: int(clamp(30+float64((seed+uint64(i)*50)%15), 15, 38)),
			Goals:       maxInt(0, int(float64(rec.Goals)*variance)),
			Assists:     maxInt(0, int(float64(rec.Assists)*variance)),
			CleanSheets: maxInt(0, int(float64(rec.CleanSheets)*variance)),
			PriceStart:  math.Max(4.0, rec.Price+(float64((seed+uint64(i)*25)%20)-10)/10),
			PriceEnd:    math.Max(4.0, rec.Price+(float64((seed+uint64(i)*75)%20)-10)/10),
			OwnershipAvg: clamp(rec.Ownership+float64((seed+uint64(i)*33)%20)-10, 0.1, 50.0),
		}
		row.PointsPerGame = round2(float64(row.TotalPoints) / math.Max(1, float64(row.GamesPlayed)))
		row.PriceChange = round1(row.PriceEnd - row.PriceStart)

		out = append(out, row)
	}

	return out
}

func sampleStdev(points []int, mean float64) float64 {
	if len(points) < 2 {
		return 0
	}
	var sum float64
	for _, p := range points {
		d := float64(p) - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(points)-1))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
