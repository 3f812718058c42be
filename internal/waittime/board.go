package waittime

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Board holds the most recent complete set of wait times.
// A failed refresh leaves the previous set in place.
type Board struct {
	aggregator *Aggregator
	halls      []string
	logger     *slog.Logger

	mu        sync.RWMutex
	minutes   map[string]float64
	updatedAt time.Time
}

// NewBoard creates an empty board for the given halls
func NewBoard(aggregator *Aggregator, halls []string, logger *slog.Logger) *Board {
	return &Board{
		aggregator: aggregator,
		halls:      append([]string(nil), halls...),
		logger:     logger,
		minutes:    make(map[string]float64),
	}
}

// Refresh re-collects all halls and swaps in the result only on full success
func (b *Board) Refresh(ctx context.Context) error {
	minutes, err := b.aggregator.Collect(ctx, b.halls)
	if err != nil {
		if ctx.Err() != nil {
			b.logger.Debug("wait time refresh cancelled", "error", err)
			return err
		}
		b.logger.Error("failed to refresh wait times", "error", err)
		return err
	}

	b.mu.Lock()
	b.minutes = minutes
	b.updatedAt = time.Now()
	b.mu.Unlock()

	b.logger.Debug("wait times refreshed", "halls", len(minutes))
	return nil
}

// Snapshot returns a copy of the current hall to minutes map
func (b *Board) Snapshot() map[string]float64 {
	b.mu.RLock()
	defer b.mu.RUnlock()

	snapshot := make(map[string]float64, len(b.minutes))
	for k, v := range b.minutes {
		snapshot[k] = v
	}
	return snapshot
}

// Minutes returns the current wait for a hall, if known
func (b *Board) Minutes(hall string) (float64, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	m, ok := b.minutes[hall]
	return m, ok
}

// Label returns the formatted wait for a hall, or "Unknown" without data
func (b *Board) Label(hall string) string {
	m, ok := b.Minutes(hall)
	if !ok {
		return BucketUnknown.String()
	}
	return FormatWaitTime(m)
}

// UpdatedAt returns when the board last refreshed successfully
func (b *Board) UpdatedAt() time.Time {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.updatedAt
}
