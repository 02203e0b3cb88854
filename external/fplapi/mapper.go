package fplapi

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/riskibarqy/fpl-insights/internal/domain/player"
	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
	"github.com/riskibarqy/fpl-insights/internal/usecase"
)

// minSeasonMinutes excludes players without meaningful playing time.
// Exclusion, not zero-scoring: the record simply does not exist.
const minSeasonMinutes = 90

func mapBootstrap(ctx context.Context, payload bootstrapPayload, logger *logging.Logger) (usecase.PlayerBatch, error) {
	if payload.Elements == nil || payload.Teams == nil || payload.ElementTypes == nil {
		return usecase.PlayerBatch{}, fmt.Errorf("%w: bootstrap payload missing elements, teams, or element_types", usecase.ErrMalformedPayload)
	}

	teamNames := make(map[int]string, len(payload.Teams))
	for _, team := range payload.Teams {
		teamNames[team.ID] = strings.TrimSpace(team.Name)
	}

	positions := make(map[int]player.Position, len(payload.ElementTypes))
	for _, role := range payload.ElementTypes {
		if pos, ok := player.ParsePosition(role.SingularName); ok {
			positions[role.ID] = pos
		}
	}

	records := make([]player.Record, 0, len(payload.Elements))
	for _, element := range payload.Elements {
		if element.Minutes < minSeasonMinutes {
			continue
		}

		rec, err := mapElement(element, teamNames, positions)
		if err != nil {
			// One broken element never aborts the batch.
			logger.WarnContext(ctx, "skipping malformed bootstrap element", "element_id", element.ID, "error", err)
			continue
		}
		records = append(records, rec)
	}

	gameweek := 0
	for _, event := range payload.Events {
		if event.IsCurrent {
			gameweek = event.ID
			break
		}
	}

	return usecase.PlayerBatch{
		Players:         records,
		CurrentGameweek: gameweek,
		TeamCount:       len(payload.Teams),
	}, nil
}

func mapElement(element bootstrapElement, teamNames map[int]string, positions map[int]player.Position) (player.Record, error) {
	if element.ID <= 0 {
		return player.Record{}, fmt.Errorf("element id must be greater than zero")
	}

	teamName, ok := teamNames[element.Team]
	if !ok || teamName == "" {
		return player.Record{}, fmt.Errorf("unknown team id %d", element.Team)
	}
	position, ok := positions[element.ElementType]
	if !ok {
		return player.Record{}, fmt.Errorf("unknown element type %d", element.ElementType)
	}

	fullName := strings.TrimSpace(element.FirstName + " " + element.SecondName)
	name := strings.TrimSpace(element.WebName)
	if name == "" {
		name = fullName
	}
	if fullName == "" {
		fullName = name
	}
	if name == "" {
		return player.Record{}, fmt.Errorf("element has no usable name")
	}

	rec := player.Record{
		ID:       element.ID,
		Name:     name,
		FullName: fullName,
		Team:     teamName,
		TeamID:   element.Team,
		Position: position,
		Price:    float64(element.NowCost) / 10,

		TotalPoints:   element.TotalPoints,
		Goals:         element.GoalsScored,
		Assists:       element.Assists,
		CleanSheets:   element.CleanSheets,
		Minutes:       element.Minutes,
		Bonus:         element.Bonus,
		Saves:         element.Saves,
		GoalsConceded: element.GoalsConceded,
		YellowCards:   element.YellowCards,
		RedCards:      element.RedCards,

		Form:          parseFloat(element.Form),
		Ownership:     parseFloat(element.SelectedByPercent),
		ICTIndex:      parseFloat(element.ICTIndex),
		Influence:     parseFloat(element.Influence),
		Creativity:    parseFloat(element.Creativity),
		Threat:        parseFloat(element.Threat),
		PointsPerGame: parseFloat(element.PointsPerGame),
		TransfersIn:   element.TransfersIn,
		TransfersOut:  element.TransfersOut,
		Status:        element.Status,
		News:          strings.TrimSpace(element.News),

		SeasonsPlayed: 1,
	}
	rec.ComputeDerived()

	return rec, nil
}

// parseFloat handles the upstream habit of sending numbers as strings;
// empty or junk values default to zero.
func parseFloat(v string) float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	out, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return out
}
