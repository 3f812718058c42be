package waittime

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// ErrNoLocations is returned when there is nothing to aggregate
var ErrNoLocations = errors.New("no locations provided")

// Fetcher returns the average wait for one hall in seconds
type Fetcher interface {
	WaitTime(ctx context.Context, hall string) (float64, error)
}

// Aggregator collects wait times for a set of halls concurrently
type Aggregator struct {
	fetcher Fetcher
}

// NewAggregator creates a new aggregator
func NewAggregator(fetcher Fetcher) *Aggregator {
	return &Aggregator{fetcher: fetcher}
}

// Collect fetches every hall concurrently and returns hall name to minutes.
// Returns error if any fetch fails; the first failure cancels the rest.
func (a *Aggregator) Collect(ctx context.Context, halls []string) (map[string]float64, error) {
	if len(halls) == 0 {
		return nil, ErrNoLocations
	}

	seconds := make([]float64, len(halls))
	g, gctx := errgroup.WithContext(ctx)

	for i, hall := range halls {
		i, hall := i, hall
		g.Go(func() error {
			s, err := a.fetcher.WaitTime(gctx, hall)
			if err != nil {
				return fmt.Errorf("failed to fetch wait time for %s: %w", hall, err)
			}
			seconds[i] = s
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	minutes := make(map[string]float64, len(halls))
	for i, hall := range halls {
		minutes[hall] = seconds[i] / 60
	}
	return minutes, nil
}
