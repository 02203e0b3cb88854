package httpapi

import (
	"github.com/riskibarqy/fpl-insights/internal/domain/player"
)

type topPlayerDTO struct {
	Rank   int           `json:"rank"`
	Value  float64       `json:"value"`
	Player player.Record `json:"player"`
}
