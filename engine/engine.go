package engine

import (
	"context"
	"pigo/experiments/metrics"
)

const MaxTurns = 10000

type Engine interface {
	// Run plays a game till there's a winner or a max number of turns is reached
	Run(ctx context.Context) (gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
