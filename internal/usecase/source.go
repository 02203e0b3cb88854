package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/fpl-insights/internal/domain/player"
)

// PlayerBatch is one upstream fetch mapped into domain records.
type PlayerBatch struct {
	Players         []player.Record
	CurrentGameweek int
	TeamCount       int
	FetchedAt       time.Time
}

// PastSeason is one prior-season row from a per-player summary.
type PastSeason struct {
	SeasonName  string
	TotalPoints int
	Minutes     int
	Goals       int
	Assists     int
	CleanSheets int
}

// PlayerSummary carries the per-player history the upstream exposes.
type PlayerSummary struct {
	PlayerID    int
	PastSeasons []PastSeason
}

// PlayerSource fetches and maps upstream fantasy data.
type PlayerSource interface {
	FetchPlayers(ctx context.Context) (PlayerBatch, error)
	FetchPlayerSummary(ctx context.Context, playerID int) (PlayerSummary, error)
}

// SeasonArchive is a best-effort secondary source of real season totals
// keyed by player full name.
type SeasonArchive interface {
	SeasonPoints(ctx context.Context, season string) (map[string]int, error)
}
