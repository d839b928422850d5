// Package checks defines the check providers and the concurrent runner
// that turns a workspace into scored layers.
package checks

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/blackwell-systems/claudepulse/internal/claude"
	"github.com/blackwell-systems/claudepulse/internal/score"
)

// ProviderFunc inspects one narrow aspect of the workspace and produces
// one layer. Providers are pure and independent: they never share state,
// and expected absence of files is a failing check, not an error.
type ProviderFunc func(ws *claude.Workspace) score.Layer

// Provider pairs a layer provider with the dimension it belongs to.
type Provider struct {
	Name      string
	Dimension string
	Run       ProviderFunc
}

// ProviderTimeout bounds a single provider. A provider that exceeds it
// degrades to a zero-point failed layer instead of blocking the report.
const ProviderTimeout = 10 * time.Second

// Results holds the resolved layers grouped by dimension, in provider
// registration order.
type Results struct {
	Setup   []score.Layer
	Usage   []score.Layer
	Fluency []score.Layer
}

// RunAll executes every provider concurrently and waits for all of them.
// A provider that panics or times out yields a failed zero-point layer;
// sibling providers are never aborted.
func RunAll(ctx context.Context, providers []Provider, ws *claude.Workspace) *Results {
	layers := make([]score.Layer, len(providers))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range providers {
		g.Go(func() error {
			layers[i] = runOne(gctx, p, ws)
			return nil
		})
	}
	// Providers report failure through their layer, never through the group.
	_ = g.Wait()

	res := &Results{}
	for i, p := range providers {
		switch p.Dimension {
		case score.DimensionUsage:
			res.Usage = append(res.Usage, layers[i])
		case score.DimensionFluency:
			res.Fluency = append(res.Fluency, layers[i])
		default:
			res.Setup = append(res.Setup, layers[i])
		}
	}
	return res
}

// runOne invokes a single provider under the timeout, converting panics
// and timeouts into a failed layer.
func runOne(ctx context.Context, p Provider, ws *claude.Workspace) score.Layer {
	ctx, cancel := context.WithTimeout(ctx, ProviderTimeout)
	defer cancel()

	done := make(chan score.Layer, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- FailedLayer(p.Name, fmt.Errorf("provider panicked: %v", r))
			}
		}()
		done <- p.Run(ws)
	}()

	select {
	case layer := <-done:
		return layer
	case <-ctx.Done():
		return FailedLayer(p.Name, fmt.Errorf("provider timed out: %w", ctx.Err()))
	}
}

// FailedLayer is the degraded form of a layer whose provider failed:
// a single zero-point failing check carrying the failure message.
func FailedLayer(name string, err error) score.Layer {
	return score.NewLayer(name, []score.CheckResult{
		score.NewCheckResult(name+" check failed", score.StatusFail, 0, 1, err.Error()),
	})
}
