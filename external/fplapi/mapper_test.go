package fplapi

import (
	"errors"
	"testing"

	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
	"github.com/riskibarqy/fpl-insights/internal/usecase"
)

func testPayload() bootstrapPayload {
	return bootstrapPayload{
		Elements: []bootstrapElement{
			{
				ID: 1, FirstName: "Erling", SecondName: "Haaland", WebName: "Haaland",
				Team: 11, ElementType: 4, NowCost: 151, TotalPoints: 224,
				GoalsScored: 27, Assists: 5, Minutes: 2880, Form: "8.5",
				SelectedByPercent: "55.3", ICTIndex: "420.1", PointsPerGame: "7.0",
				Status: "a",
			},
			{
				ID: 2, FirstName: "Bench", SecondName: "Warmer", WebName: "Warmer",
				Team: 11, ElementType: 3, NowCost: 45, TotalPoints: 2, Minutes: 60,
			},
			{
				ID: 3, FirstName: "Jordan", SecondName: "Pickford", WebName: "Pickford",
				Team: 7, ElementType: 1, NowCost: 50, TotalPoints: 150,
				CleanSheets: 12, Minutes: 3420, Saves: 120,
			},
		},
		Teams: []bootstrapTeam{
			{ID: 7, Name: "Everton"},
			{ID: 11, Name: "Man City"},
		},
		ElementTypes: []bootstrapRole{
			{ID: 1, SingularName: "Goalkeeper"},
			{ID: 2, SingularName: "Defender"},
			{ID: 3, SingularName: "Midfielder"},
			{ID: 4, SingularName: "Forward"},
		},
		Events: []bootstrapEvent{
			{ID: 1, IsCurrent: false},
			{ID: 2, IsCurrent: true},
		},
	}
}

func TestMapBootstrap(t *testing.T) {
	t.Parallel()

	batch, err := mapBootstrap(t.Context(), testPayload(), logging.NewNop())
	if err != nil {
		t.Fatalf("mapBootstrap error: %v", err)
	}

	// Element 2 has only 60 minutes and must be excluded, not zero-scored.
	if len(batch.Players) != 2 {
		t.Fatalf("players = %d, want 2", len(batch.Players))
	}
	if batch.CurrentGameweek != 2 {
		t.Fatalf("gameweek = %d, want 2", batch.CurrentGameweek)
	}
	if batch.TeamCount != 2 {
		t.Fatalf("team count = %d, want 2", batch.TeamCount)
	}

	haaland := batch.Players[0]
	if haaland.FullName != "Erling Haaland" {
		t.Fatalf("full name = %q", haaland.FullName)
	}
	if haaland.Position != player.PositionForward {
		t.Fatalf("position = %s, want Forward", haaland.Position)
	}
	if haaland.Price != 15.1 {
		t.Fatalf("price = %v, want 15.1", haaland.Price)
	}
	if haaland.Form != 8.5 {
		t.Fatalf("form = %v, want 8.5", haaland.Form)
	}
	if haaland.GamesPlayed != 32 {
		t.Fatalf("games = %d, want 32", haaland.GamesPlayed)
	}
	if haaland.GoalInvolvement != 32 {
		t.Fatalf("goal involvement = %d, want 32", haaland.GoalInvolvement)
	}

	pickford := batch.Players[1]
	if pickford.Position != player.PositionGoalkeeper {
		t.Fatalf("position = %s, want Goalkeeper", pickford.Position)
	}
	if pickford.CleanSheetPercentage == 0 {
		t.Fatalf("expected clean sheet percentage for a goalkeeper")
	}
}

func TestMapBootstrap_MissingKeysIsMalformed(t *testing.T) {
	t.Parallel()

	for _, tc := range []struct {
		name   string
		mutate func(*bootstrapPayload)
	}{
		{"no elements", func(p *bootstrapPayload) { p.Elements = nil }},
		{"no teams", func(p *bootstrapPayload) { p.Teams = nil }},
		{"no element types", func(p *bootstrapPayload) { p.ElementTypes = nil }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			payload := testPayload()
			tc.mutate(&payload)

			_, err := mapBootstrap(t.Context(), payload, logging.NewNop())
			if !errors.Is(err, usecase.ErrMalformedPayload) {
				t.Fatalf("expected ErrMalformedPayload, got %v", err)
			}
		})
	}
}

func TestMapBootstrap_SkipsMalformedElement(t *testing.T) {
	t.Parallel()

	payload := testPayload()
	payload.Elements = append(payload.Elements, bootstrapElement{
		ID: 4, WebName: "Ghost", Team: 99, ElementType: 4, Minutes: 900,
	})

	batch, err := mapBootstrap(t.Context(), payload, logging.NewNop())
	if err != nil {
		t.Fatalf("mapBootstrap error: %v", err)
	}
	for _, rec := range batch.Players {
		if rec.ID == 4 {
			t.Fatalf("element with unknown team must be skipped")
		}
	}
}

func TestParseFloat_DefaultsToZero(t *testing.T) {
	t.Parallel()

	for _, v := range []string{"", "  ", "abc", "1.2.3"} {
		if got := parseFloat(v); got != 0 {
			t.Errorf("parseFloat(%q) = %v, want 0", v, got)
		}
	}
	if got := parseFloat(" 4.5 "); got != 4.5 {
		t.Errorf("parseFloat(\" 4.5 \") = %v, want 4.5", got)
	}
}
