package player

import (
	"math"
	"strings"
)

// Position represents football position categories used in fantasy rules.
type Position string

const (
	PositionGoalkeeper Position = "Goalkeeper"
	PositionDefender   Position = "Defender"
	PositionMidfielder Position = "Midfielder"
	PositionForward    Position = "Forward"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// ParsePosition resolves a case-insensitive position name or short code.
// Unknown values return false.
func ParsePosition(v string) (Position, bool) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "goalkeeper", "gk", "gkp":
		return PositionGoalkeeper, true
	case "defender", "def":
		return PositionDefender, true
	case "midfielder", "mid":
		return PositionMidfielder, true
	case "forward", "fwd":
		return PositionForward, true
	default:
		return "", false
	}
}

// Record is one normalized player from the upstream bootstrap payload.
// Derived fields are computed once at mapping time, never per request.
type Record struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	FullName string   `json:"fullName"`
	Team     string   `json:"team"`
	TeamID   int      `json:"teamId"`
	Position Position `json:"position"`
	Price    float64  `json:"price"`

	TotalPoints   int `json:"totalPoints"`
	Goals         int `json:"goals"`
	Assists       int `json:"assists"`
	CleanSheets   int `json:"cleanSheets"`
	Minutes       int `json:"minutes"`
	Bonus         int `json:"bonus"`
	Saves         int `json:"saves"`
	GoalsConceded int `json:"goalsConceded"`
	YellowCards   int `json:"yellowCards"`
	RedCards      int `json:"redCards"`

	Form          float64 `json:"form"`
	Ownership     float64 `json:"ownership"`
	ICTIndex      float64 `json:"ictIndex"`
	Influence     float64 `json:"influence"`
	Creativity    float64 `json:"creativity"`
	Threat        float64 `json:"threat"`
	TransfersIn   int     `json:"transfersIn"`
	TransfersOut  int     `json:"transfersOut"`
	Status        string  `json:"status"`
	News          string  `json:"news,omitempty"`
	PointsPerGame float64 `json:"pointsPerGame"`

	GamesPlayed            int     `json:"gamesPlayed"`
	PointsPerMillion       float64 `json:"pointsPerMillion"`
	GoalsPerGame           float64 `json:"goalsPerGame"`
	AssistsPerGame         float64 `json:"assistsPerGame"`
	GoalInvolvement        int     `json:"goalInvolvement"`
	GoalInvolvementPerGame float64 `json:"goalInvolvementPerGame"`
	AvailabilityScore      float64 `json:"availabilityScore"`
	CleanSheetPercentage   float64 `json:"cleanSheetPercentage"`
	SeasonsPlayed          int     `json:"seasonsPlayed"`
	AvgPointsPerSeason     float64 `json:"avgPointsPerSeason"`

	Scores ScoreProfile `json:"scores"`
}

// ScoreProfile holds the derived scalar scores used for ranking and
// squad selection. All values are finite.
type ScoreProfile struct {
	OverallScore     float64 `json:"overallScore"`
	ValueScore       float64 `json:"valueScore"`
	ConsistencyScore float64 `json:"consistencyScore"`
}

// ComputeDerived fills the derived ratio fields from the season totals.
// Price is floored at 0.1 and games at 1 so ratios stay finite even on
// junk upstream data.
func (r *Record) ComputeDerived() {
	games := r.Minutes / 90
	if games < 1 {
		games = 1
	}
	r.GamesPlayed = games

	price := r.Price
	if price < 0.1 {
		price = 0.1
	}
	r.PointsPerMillion = round1(float64(r.TotalPoints) / price)

	r.GoalsPerGame = round2(float64(r.Goals) / float64(games))
	r.AssistsPerGame = round2(float64(r.Assists) / float64(games))
	r.GoalInvolvement = r.Goals + r.Assists
	r.GoalInvolvementPerGame = round2(float64(r.GoalInvolvement) / float64(games))

	seasons := r.SeasonsPlayed
	if seasons < 1 {
		seasons = 1
		r.SeasonsPlayed = 1
	}
	r.AvailabilityScore = round1(float64(r.Minutes) / (float64(seasons) * 38 * 90) * 100)
	r.AvgPointsPerSeason = round1(float64(r.TotalPoints) / float64(seasons))

	if r.Position == PositionGoalkeeper || r.Position == PositionDefender {
		r.CleanSheetPercentage = round1(float64(r.CleanSheets) / float64(games) * 100)
	} else {
		r.CleanSheetPercentage = 0
	}
}

func round1(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return math.Round(v*100) / 100
}
