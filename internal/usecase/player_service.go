package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/fpl-insights/internal/domain/history"
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
)

// PlayerFilter is the AND-composed query surface for player listings.
// A nil/empty field means no constraint.
type PlayerFilter struct {
	Position   string
	MaxPrice   *float64
	MinPoints  *int
	MinSeasons *int
	Team       string
	Search     string
}

type PlayerList struct {
	Players         []player.Record
	TotalCount      int
	CurrentGameweek int
	LastUpdated     time.Time
}

type PlayerHistory struct {
	Player  player.Record
	Profile history.Profile
	Seasons []history.SeasonRow
}

type TopQuery struct {
	Metric     string
	Limit      int
	Position   string
	MinSeasons int
}

type TopPlayers struct {
	Metric  string
	Players []player.Record
	Values  []float64
}

type PlayerService struct {
	snapshots *SnapshotService
}

func NewPlayerService(snapshots *SnapshotService) *PlayerService {
	return &PlayerService{snapshots: snapshots}
}

// List returns the filtered player pool.
func (s *PlayerService) List(ctx context.Context, filter PlayerFilter) (PlayerList, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.List")
	defer span.End()

	if filter.Position != "" {
		if _, ok := player.ParsePosition(filter.Position); !ok {
			return PlayerList{}, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, filter.Position)
		}
	}

	snapshot, err := s.snapshots.Get(ctx)
	if err != nil {
		return PlayerList{}, err
	}

	filtered := ApplyFilter(snapshot.Players, filter)
	return PlayerList{
		Players:         filtered,
		TotalCount:      len(filtered),
		CurrentGameweek: snapshot.CurrentGameweek,
		LastUpdated:     snapshot.LastUpdated,
	}, nil
}

// History returns one player's profile and deterministic season rows.
func (s *PlayerService) History(ctx context.Context, playerID int) (PlayerHistory, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.History")
	defer span.End()

	if playerID <= 0 {
		return PlayerHistory{}, fmt.Errorf("%w: player id must be greater than zero", ErrInvalidInput)
	}

	snapshot, err := s.snapshots.Get(ctx)
	if err != nil {
		return PlayerHistory{}, err
	}

	for _, rec := range snapshot.Players {
		if rec.ID != playerID {
			continue
		}
		seasons := history.RecentSeasonLabels(time.Now().UTC(), 3)
		return PlayerHistory{
			Player:  rec,
			Profile: snapshot.Profiles[rec.ID],
			Seasons: history.SeasonBreakdown(rec, seasons),
		}, nil
	}

	return PlayerHistory{}, fmt.Errorf("%w: player=%d", ErrNotFound, playerID)
}

// Top returns the ranked head of the pool for a metric.
func (s *PlayerService) Top(ctx context.Context, q TopQuery) (TopPlayers, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Top")
	defer span.End()

	if q.Limit <= 0 {
		q.Limit = 15
	}
	if q.MinSeasons <= 0 {
		q.MinSeasons = 2
	}
	if q.Position != "" {
		if _, ok := player.ParsePosition(q.Position); !ok {
			return TopPlayers{}, fmt.Errorf("%w: unknown position %q", ErrInvalidInput, q.Position)
		}
	}

	snapshot, err := s.snapshots.Get(ctx)
	if err != nil {
		return TopPlayers{}, err
	}

	minSeasons := q.MinSeasons
	pool := ApplyFilter(snapshot.Players, PlayerFilter{
		Position:   q.Position,
		MinSeasons: &minSeasons,
	})

	extract, canonical := ResolveMetric(q.Metric)
	rankByMetric(pool, extract)

	if len(pool) > q.Limit {
		pool = pool[:q.Limit]
	}

	values := make([]float64, len(pool))
	for i, rec := range pool {
		values[i] = extract(rec)
	}

	return TopPlayers{Metric: canonical, Players: pool, Values: values}, nil
}

// ApplyFilter composes every present constraint with AND. The result
// is always a fresh slice.
func ApplyFilter(records []player.Record, filter PlayerFilter) []player.Record {
	position, hasPosition := player.ParsePosition(filter.Position)
	team := strings.ToLower(strings.TrimSpace(filter.Team))
	search := strings.ToLower(strings.TrimSpace(filter.Search))

	out := make([]player.Record, 0, len(records))
	for _, rec := range records {
		if hasPosition && rec.Position != position {
			continue
		}
		if filter.MaxPrice != nil && rec.Price > *filter.MaxPrice {
			continue
		}
		if filter.MinPoints != nil && rec.TotalPoints < *filter.MinPoints {
			continue
		}
		if filter.MinSeasons != nil && rec.SeasonsPlayed < *filter.MinSeasons {
			continue
		}
		if team != "" && !strings.Contains(strings.ToLower(rec.Team), team) {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(rec.Name), search) &&
			!strings.Contains(strings.ToLower(rec.FullName), search) &&
			!strings.Contains(strings.ToLower(rec.Team), search) {
			continue
		}
		out = append(out, rec)
	}

	return out
}
