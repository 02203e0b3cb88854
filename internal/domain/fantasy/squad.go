package fantasy

import (
	"errors"
	"fmt"
	"math"

	"github.com/riskibarqy/fpl-insights/internal/domain/player"
)

var (
	ErrExceededBudget         = errors.New("budget exceeded")
	ErrExceededPositionQuota  = errors.New("position quota exceeded")
	ErrDuplicatePlayerInSquad = errors.New("duplicate player in squad")
)

// Pick is one selected player with the metric that ranked it.
type Pick struct {
	PlayerID    int             `json:"id"`
	Name        string          `json:"name"`
	FullName    string          `json:"fullName"`
	Team        string          `json:"team"`
	Position    player.Position `json:"position"`
	Price       float64         `json:"price"`
	TotalPoints int             `json:"totalPoints"`
	Score       float64         `json:"score"`
}

// Squad is the output of the greedy selector: per-position groups plus
// a flat list, with the money accounting alongside.
type Squad struct {
	Formation       string                     `json:"formation"`
	Budget          float64                    `json:"budget"`
	TotalCost       float64                    `json:"totalCost"`
	RemainingBudget float64                    `json:"remainingBudget"`
	Players         []Pick                     `json:"players"`
	ByPosition      map[player.Position][]Pick `json:"byPosition"`
}

// Shortfalls reports positions filled below the formation requirement.
// An under-strength squad is a reportable condition, not an error.
func (s Squad) Shortfalls(f Formation) map[player.Position]int {
	out := make(map[player.Position]int)
	for pos, want := range f.Requirements {
		if got := len(s.ByPosition[pos]); got < want {
			out[pos] = want - got
		}
	}
	return out
}

// Validate checks the hard invariants: cost within budget, no position
// over quota, no player picked twice.
func (s Squad) Validate(f Formation) error {
	const eps = 1e-6
	if s.TotalCost > s.Budget+eps {
		return fmt.Errorf("%w: budget=%.1f cost=%.1f", ErrExceededBudget, s.Budget, s.TotalCost)
	}

	seen := make(map[int]struct{}, len(s.Players))
	for _, pick := range s.Players {
		if _, dup := seen[pick.PlayerID]; dup {
			return fmt.Errorf("%w: id=%d", ErrDuplicatePlayerInSquad, pick.PlayerID)
		}
		seen[pick.PlayerID] = struct{}{}
	}

	for pos, picks := range s.ByPosition {
		if len(picks) > f.Requirements[pos] {
			return fmt.Errorf("%w: pos=%s max=%d got=%d", ErrExceededPositionQuota, pos, f.Requirements[pos], len(picks))
		}
	}

	return nil
}

// RoundMoney normalizes a price sum to one decimal to keep float drift
// out of responses.
func RoundMoney(v float64) float64 {
	return math.Round(v*10) / 10
}
