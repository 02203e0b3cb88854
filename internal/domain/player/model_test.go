package player

import "testing"

func TestParsePosition(t *testing.T) {
	cases := []struct {
		in   string
		want Position
		ok   bool
	}{
		{"Goalkeeper", PositionGoalkeeper, true},
		{"goalkeeper", PositionGoalkeeper, true},
		{"GKP", PositionGoalkeeper, true},
		{" def ", PositionDefender, true},
		{"MID", PositionMidfielder, true},
		{"forward", PositionForward, true},
		{"striker", "", false},
		{"", "", false},
	}

	for _, tc := range cases {
		got, ok := ParsePosition(tc.in)
		if ok != tc.ok || got != tc.want {
			t.Errorf("ParsePosition(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestRecord_ComputeDerived(t *testing.T) {
	r := Record{
		ID:            1,
		Position:      PositionDefender,
		Price:         5.0,
		TotalPoints:   120,
		Goals:         3,
		Assists:       5,
		CleanSheets:   10,
		Minutes:       2700,
		SeasonsPlayed: 1,
	}
	r.ComputeDerived()

	if r.GamesPlayed != 30 {
		t.Fatalf("GamesPlayed = %d, want 30", r.GamesPlayed)
	}
	if r.PointsPerMillion != 24.0 {
		t.Fatalf("PointsPerMillion = %v, want 24.0", r.PointsPerMillion)
	}
	if r.GoalInvolvement != 8 {
		t.Fatalf("GoalInvolvement = %d, want 8", r.GoalInvolvement)
	}
	if r.GoalsPerGame != 0.1 {
		t.Fatalf("GoalsPerGame = %v, want 0.1", r.GoalsPerGame)
	}
	if r.CleanSheetPercentage == 0 {
		t.Fatalf("expected clean sheet percentage for a defender")
	}
}

func TestRecord_ComputeDerived_Guards(t *testing.T) {
	r := Record{
		ID:          2,
		Position:    PositionForward,
		Price:       0,
		TotalPoints: 50,
		Minutes:     45,
	}
	r.ComputeDerived()

	// Price floor 0.1, games floor 1.
	if r.GamesPlayed != 1 {
		t.Fatalf("GamesPlayed = %d, want 1", r.GamesPlayed)
	}
	if r.PointsPerMillion != 500.0 {
		t.Fatalf("PointsPerMillion = %v, want 500.0", r.PointsPerMillion)
	}
	if r.PointsPerMillion < 0 {
		t.Fatalf("PointsPerMillion must be non-negative")
	}
	if r.SeasonsPlayed != 1 {
		t.Fatalf("SeasonsPlayed = %d, want floor of 1", r.SeasonsPlayed)
	}
	if r.CleanSheetPercentage != 0 {
		t.Fatalf("forwards never carry a clean sheet percentage")
	}
}
