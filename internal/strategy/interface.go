package strategy

import (
	"github.com/yourusername/tt-value/internal/models"
)

// Detector decides whether a listing's prices constitute a value signal
type Detector interface {
	Name() string
	Detect(playerA, playerB *models.Player, odds models.Odds) models.ValueAnalysis
	GetParameters() map[string]interface{}
}

// HeadToHeadProvider supplies the historical record between two players
type HeadToHeadProvider interface {
	HeadToHead(idA, idB int64) models.HeadToHead
}
