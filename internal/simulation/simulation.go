// Package simulation runs the financing comparison for every configured unit.
package simulation

import (
	"context"
	"fmt"
	"time"

	"github.com/iwvelando/financing-sim/internal/config"
	"github.com/iwvelando/financing-sim/pkg/constants"
	"github.com/iwvelando/financing-sim/pkg/financing"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GetComparisons converts the active units of conf and compares them.
func GetComparisons(ctx context.Context, logger *zap.Logger, conf config.Configuration, now time.Time, workers int) ([]financing.Comparison, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	units, err := conf.FinancingUnits(now)
	if err != nil {
		return nil, err
	}
	return CompareAll(ctx, logger, units, workers)
}

// CompareAll compares units concurrently with at most workers in flight and
// returns the comparisons in input order. The first failure cancels the rest.
func CompareAll(ctx context.Context, logger *zap.Logger, units []financing.Unit, workers int) ([]financing.Comparison, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if workers <= 0 {
		workers = constants.DefaultWorkers
	}

	results := make([]financing.Comparison, len(units))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, unit := range units {
		if gctx.Err() != nil {
			break
		}
		i, unit := i, unit
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			comparison, err := financing.Compare(unit)
			if err != nil {
				logger.Error("failed to compare unit",
					zap.String("op", "simulation.CompareAll"),
					zap.String("unit", unit.Name),
					zap.Error(err),
				)
				return fmt.Errorf("unit '%s': %w", unit.Name, err)
			}
			logger.Debug(fmt.Sprintf("compared unit %s, cheapest mode %s", unit.Name, comparison.Cheapest),
				zap.String("op", "simulation.CompareAll"),
				zap.Int("modes", len(comparison.Results)),
			)
			results[i] = comparison
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
