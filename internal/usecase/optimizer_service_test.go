package usecase

import (
	"testing"

	"github.com/riskibarqy/fpl-insights/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
	"github.com/stretchr/testify/require"
)

func metricTotalPoints(r player.Record) float64 { return float64(r.TotalPoints) }

func poolPlayer(id int, pos player.Position, price float64, points int) player.Record {
	return player.Record{
		ID:          id,
		Name:        "P" + string(rune('A'+id%26)),
		Position:    pos,
		Price:       price,
		TotalPoints: points,
	}
}

func fullPool() []player.Record {
	pool := make([]player.Record, 0, 40)
	id := 1
	add := func(pos player.Position, n int, basePrice float64, basePoints int) {
		for i := 0; i < n; i++ {
			pool = append(pool, poolPlayer(id, pos, basePrice-float64(i)*0.5, basePoints-i*10))
			id++
		}
	}
	add(player.PositionGoalkeeper, 4, 5.5, 150)
	add(player.PositionDefender, 10, 6.5, 160)
	add(player.PositionMidfielder, 12, 12.0, 220)
	add(player.PositionForward, 8, 14.0, 230)
	return pool
}

func TestSelectSquad_FillsFormationWithinBudget(t *testing.T) {
	t.Parallel()

	formation := fantasy.ParseFormation("3-5-2")
	squad := SelectSquad(fullPool(), formation, 100, metricTotalPoints)

	require.Len(t, squad.Players, 11)
	require.NoError(t, squad.Validate(formation))
	require.Empty(t, squad.Shortfalls(formation))
	require.LessOrEqual(t, squad.TotalCost, 100.0)
	require.InDelta(t, squad.TotalCost+squad.RemainingBudget, 100.0, 0.01)

	for pos, want := range formation.Requirements {
		require.Len(t, squad.ByPosition[pos], want, "position %s", pos)
	}
}

func TestSelectSquad_SkipsUnaffordableWithoutConsuming(t *testing.T) {
	t.Parallel()

	// One expensive top scorer and two cheap alternatives. With a tight
	// budget the greedy pass must skip the expensive player but still
	// take the cheaper ones after it.
	pool := []player.Record{
		poolPlayer(1, player.PositionGoalkeeper, 4.0, 90),
		poolPlayer(2, player.PositionForward, 50.0, 300),
		poolPlayer(3, player.PositionForward, 6.0, 200),
		poolPlayer(4, player.PositionForward, 5.5, 150),
	}
	formation := fantasy.Formation{
		Name: "test",
		Requirements: map[player.Position]int{
			player.PositionGoalkeeper: 1,
			player.PositionForward:    2,
		},
	}

	squad := SelectSquad(pool, formation, 20, metricTotalPoints)

	require.Len(t, squad.Players, 3)
	for _, pick := range squad.Players {
		require.NotEqual(t, 2, pick.PlayerID, "unaffordable player must be skipped")
	}
	require.Len(t, squad.ByPosition[player.PositionForward], 2)
}

func TestSelectSquad_UnderStrengthPositionReported(t *testing.T) {
	t.Parallel()

	// Only three defenders exist; a 4-4-2 stays short by one and that
	// is reported, not an error.
	pool := fullPool()
	defenders := pool[:0]
	kept := 0
	for _, rec := range pool {
		if rec.Position == player.PositionDefender {
			if kept >= 3 {
				continue
			}
			kept++
		}
		defenders = append(defenders, rec)
	}

	formation := fantasy.ParseFormation("4-4-2")
	squad := SelectSquad(defenders, formation, 200, metricTotalPoints)

	require.NoError(t, squad.Validate(formation))
	require.Len(t, squad.ByPosition[player.PositionDefender], 3)
	require.Equal(t, map[player.Position]int{player.PositionDefender: 1}, squad.Shortfalls(formation))
	require.Len(t, squad.Players, 10)
}

func TestSelectSquad_NoDuplicatePlayers(t *testing.T) {
	t.Parallel()

	formation := fantasy.ParseFormation("4-3-3")
	squad := SelectSquad(fullPool(), formation, 150, metricTotalPoints)

	seen := make(map[int]bool)
	for _, pick := range squad.Players {
		require.False(t, seen[pick.PlayerID], "player %d picked twice", pick.PlayerID)
		seen[pick.PlayerID] = true
	}
}

func TestSelectSquad_TieBreakOrder(t *testing.T) {
	t.Parallel()

	// Equal metric: higher total points wins; equal points: lower ID.
	pool := []player.Record{
		{ID: 9, Position: player.PositionForward, Price: 5, TotalPoints: 100},
		{ID: 3, Position: player.PositionForward, Price: 5, TotalPoints: 100},
		{ID: 5, Position: player.PositionForward, Price: 5, TotalPoints: 120},
	}
	metric := func(player.Record) float64 { return 1.0 }
	formation := fantasy.Formation{
		Name:         "test",
		Requirements: map[player.Position]int{player.PositionForward: 2},
	}

	squad := SelectSquad(pool, formation, 100, metric)

	require.Len(t, squad.Players, 2)
	require.Equal(t, 5, squad.Players[0].PlayerID, "higher total points first")
	require.Equal(t, 3, squad.Players[1].PlayerID, "lower ID breaks the points tie")
}

func TestOptimizerService_Defaults(t *testing.T) {
	t.Parallel()

	source := &fakeSource{batch: testBatch()}
	svc := NewOptimizerService(newTestSnapshots(t, source, true), logging.NewNop())

	out, err := svc.Optimize(t.Context(), OptimizeInput{})
	require.NoError(t, err)

	require.Equal(t, "3-5-2", out.Formation.Name)
	require.Equal(t, "overallScore", out.Metric)
	require.Equal(t, 2, out.MinSeasons)
	require.LessOrEqual(t, out.Squad.TotalCost, 100.0)

	// The three-player pool cannot fill eleven slots; the shortfall is
	// reported rather than treated as an error.
	require.NotEmpty(t, out.Shortfalls)
	require.NoError(t, out.Squad.Validate(out.Formation))
}

func TestOptimizerService_OptimalSquadConsistencyWeighting(t *testing.T) {
	t.Parallel()

	source := &fakeSource{batch: testBatch()}
	svc := NewOptimizerService(newTestSnapshots(t, source, true), logging.NewNop())

	out, err := svc.OptimalSquad(t.Context(), OptimalSquadInput{WeighConsistency: true})
	require.NoError(t, err)

	require.True(t, out.WeighedConsistency)
	require.Equal(t, "3-5-2", out.Formation.Name)
	require.NotEmpty(t, out.Squad.Players)
	require.Positive(t, out.SquadConsistencyScore)
}

func TestSelectSquad_EmptyPool(t *testing.T) {
	t.Parallel()

	formation := fantasy.ParseFormation("3-5-2")
	squad := SelectSquad(nil, formation, 100, metricTotalPoints)

	require.Empty(t, squad.Players)
	require.Equal(t, 0.0, squad.TotalCost)
	require.Equal(t, 100.0, squad.RemainingBudget)
	require.Len(t, squad.Shortfalls(formation), 4)
}
