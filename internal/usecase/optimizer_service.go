package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/fpl-insights/internal/domain/fantasy"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
	"github.com/sourcegraph/conc"
)

// selectionOrder pins the greedy fill sequence. Goalkeepers first,
// forwards last.
var selectionOrder = []player.Position{
	player.PositionGoalkeeper,
	player.PositionDefender,
	player.PositionMidfielder,
	player.PositionForward,
}

type OptimizeInput struct {
	Budget     float64
	Formation  string
	MinSeasons int
	Metric     string
}

type OptimizeResult struct {
	Squad           fantasy.Squad
	Formation       fantasy.Formation
	Metric          string
	MinSeasons      int
	TotalPoints     int
	AvgOverallScore float64
	Shortfalls      map[player.Position]int
}

type OptimalSquadInput struct {
	Budget           float64
	Formation        string
	WeighConsistency bool
}

type OptimalSquadResult struct {
	Squad                 fantasy.Squad
	Formation             fantasy.Formation
	WeighedConsistency    bool
	SquadConsistencyScore float64
	Shortfalls            map[player.Position]int
}

type OptimizerService struct {
	snapshots *SnapshotService
	logger    *logging.Logger
}

func NewOptimizerService(snapshots *SnapshotService, logger *logging.Logger) *OptimizerService {
	if logger == nil {
		logger = logging.Default()
	}
	return &OptimizerService{snapshots: snapshots, logger: logger}
}

// Optimize builds a squad ranked by a caller-chosen metric.
func (s *OptimizerService) Optimize(ctx context.Context, in OptimizeInput) (OptimizeResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OptimizerService.Optimize")
	defer span.End()

	if in.Budget <= 0 {
		in.Budget = 100
	}
	if in.MinSeasons <= 0 {
		in.MinSeasons = 2
	}
	if in.Metric == "" {
		in.Metric = "overallScore"
	}

	snapshot, err := s.snapshots.Get(ctx)
	if err != nil {
		return OptimizeResult{}, err
	}

	minSeasons := in.MinSeasons
	pool := ApplyFilter(snapshot.Players, PlayerFilter{MinSeasons: &minSeasons})

	formation := fantasy.ParseFormation(in.Formation)
	extract, canonical := ResolveMetric(in.Metric)

	squad := SelectSquad(pool, formation, in.Budget, extract)

	totalPoints := 0
	sumOverall := 0.0
	for _, pick := range squad.Players {
		totalPoints += pick.TotalPoints
	}
	for _, rec := range pool {
		if containsPick(squad.Players, rec.ID) {
			sumOverall += rec.Scores.OverallScore
		}
	}
	avgOverall := 0.0
	if len(squad.Players) > 0 {
		avgOverall = round1(sumOverall / float64(len(squad.Players)))
	}

	shortfalls := squad.Shortfalls(formation)
	if len(shortfalls) > 0 {
		s.logger.WarnContext(ctx, "squad selection left positions short",
			"formation", formation.Name, "budget", in.Budget, "shortfalls", fmt.Sprint(shortfalls))
	}

	return OptimizeResult{
		Squad:           squad,
		Formation:       formation,
		Metric:          canonical,
		MinSeasons:      in.MinSeasons,
		TotalPoints:     totalPoints,
		AvgOverallScore: avgOverall,
		Shortfalls:      shortfalls,
	}, nil
}

// OptimalSquad builds a squad ranked by value score, optionally
// weighted by each player's consistency.
func (s *OptimizerService) OptimalSquad(ctx context.Context, in OptimalSquadInput) (OptimalSquadResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OptimizerService.OptimalSquad")
	defer span.End()

	if in.Budget <= 0 {
		in.Budget = 100
	}

	snapshot, err := s.snapshots.Get(ctx)
	if err != nil {
		return OptimalSquadResult{}, err
	}

	formation := fantasy.ParseFormation(in.Formation)

	metric := func(r player.Record) float64 {
		v := r.Scores.ValueScore
		if in.WeighConsistency {
			v *= r.Scores.ConsistencyScore / 100
		}
		return v
	}

	squad := SelectSquad(snapshot.Players, formation, in.Budget, metric)

	sumConsistency := 0.0
	for _, rec := range snapshot.Players {
		if containsPick(squad.Players, rec.ID) {
			sumConsistency += rec.Scores.ConsistencyScore
		}
	}
	avgConsistency := 0.0
	if len(squad.Players) > 0 {
		avgConsistency = round1(sumConsistency / float64(len(squad.Players)))
	}

	return OptimalSquadResult{
		Squad:                 squad,
		Formation:             formation,
		WeighedConsistency:    in.WeighConsistency,
		SquadConsistencyScore: avgConsistency,
		Shortfalls:            squad.Shortfalls(formation),
	}, nil
}

// SelectSquad is the pure greedy selector: partition by position, rank
// each group by the metric (position groups sort concurrently), then
// fill slots in the pinned order. An unaffordable candidate is skipped
// without being consumed; a short position stays short, there is no
// backtracking.
func SelectSquad(pool []player.Record, formation fantasy.Formation, budget float64, metric func(player.Record) float64) fantasy.Squad {
	groups := make(map[player.Position][]player.Record, len(selectionOrder))
	for _, rec := range pool {
		groups[rec.Position] = append(groups[rec.Position], rec)
	}

	var wg conc.WaitGroup
	for _, pos := range selectionOrder {
		group := groups[pos]
		wg.Go(func() {
			rankByMetric(group, metric)
		})
	}
	wg.Wait()

	squad := fantasy.Squad{
		Formation:  formation.Name,
		Budget:     budget,
		ByPosition: make(map[player.Position][]fantasy.Pick, len(selectionOrder)),
	}
	remaining := budget

	for _, pos := range selectionOrder {
		need := formation.Requirements[pos]
		for _, rec := range groups[pos] {
			if len(squad.ByPosition[pos]) >= need {
				break
			}
			if remaining-rec.Price < 0 {
				continue
			}

			pick := fantasy.Pick{
				PlayerID:    rec.ID,
				Name:        rec.Name,
				FullName:    rec.FullName,
				Team:        rec.Team,
				Position:    rec.Position,
				Price:       rec.Price,
				TotalPoints: rec.TotalPoints,
				Score:       round2(metric(rec)),
			}
			squad.ByPosition[pos] = append(squad.ByPosition[pos], pick)
			squad.Players = append(squad.Players, pick)
			remaining -= rec.Price
		}
	}

	squad.TotalCost = fantasy.RoundMoney(budget - remaining)
	squad.RemainingBudget = fantasy.RoundMoney(remaining)
	return squad
}

func containsPick(picks []fantasy.Pick, id int) bool {
	for _, pick := range picks {
		if pick.PlayerID == id {
			return true
		}
	}
	return false
}
