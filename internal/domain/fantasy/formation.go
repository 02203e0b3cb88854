package fantasy

import (
	"strings"

	"github.com/riskibarqy/fpl-insights/internal/domain/player"
)

// DefaultFormation is the shape used when a request names an unknown
// formation.
const DefaultFormation = "3-5-2"

// Formation maps outfield positions to required headcounts. Every
// formation carries exactly one goalkeeper, so totals are always 11.
type Formation struct {
	Name         string
	Requirements map[player.Position]int
}

var formations = map[string]map[player.Position]int{
	"3-5-2": {player.PositionGoalkeeper: 1, player.PositionDefender: 3, player.PositionMidfielder: 5, player.PositionForward: 2},
	"3-4-3": {player.PositionGoalkeeper: 1, player.PositionDefender: 3, player.PositionMidfielder: 4, player.PositionForward: 3},
	"4-4-2": {player.PositionGoalkeeper: 1, player.PositionDefender: 4, player.PositionMidfielder: 4, player.PositionForward: 2},
	"4-3-3": {player.PositionGoalkeeper: 1, player.PositionDefender: 4, player.PositionMidfielder: 3, player.PositionForward: 3},
	"5-3-2": {player.PositionGoalkeeper: 1, player.PositionDefender: 5, player.PositionMidfielder: 3, player.PositionForward: 2},
}

// ParseFormation resolves a formation by name, falling back to 3-5-2
// for unknown input.
func ParseFormation(name string) Formation {
	key := strings.TrimSpace(name)
	reqs, ok := formations[key]
	if !ok {
		key = DefaultFormation
		reqs = formations[key]
	}

	out := make(map[player.Position]int, len(reqs))
	for pos, n := range reqs {
		out[pos] = n
	}
	return Formation{Name: key, Requirements: out}
}

// KnownFormations lists the supported formation names.
func KnownFormations() []string {
	return []string{"3-4-3", "3-5-2", "4-3-3", "4-4-2", "5-3-2"}
}

// Size returns the total number of slots, goalkeeper included.
func (f Formation) Size() int {
	total := 0
	for _, n := range f.Requirements {
		total += n
	}
	return total
}
