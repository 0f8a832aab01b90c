package interfaces

import (
	"context"

	"cotizador_seguros/internal/domain/entities"
)

// IMarketSimulator prices a frozen risk snapshot. It has no side effects.
type IMarketSimulator interface {
	GenerateAlternatives(ctx context.Context, snapshot entities.RiskSnapshot) (entities.SimulationResult, error)
}
