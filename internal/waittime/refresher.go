package waittime

import (
	"context"
	"sync"
	"time"
)

// DefaultInterval is how often the home tab refreshes wait times
const DefaultInterval = 5 * time.Minute

// Refresher refreshes a Board immediately and then on a fixed interval.
// Stopping it also cancels any refresh still in flight.
type Refresher struct {
	board     *Board
	interval  time.Duration
	onRefresh func(map[string]float64, error)

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// RefresherOption configures a Refresher
type RefresherOption func(*Refresher)

// WithOnRefresh registers a callback invoked after every refresh attempt
func WithOnRefresh(fn func(snapshot map[string]float64, err error)) RefresherOption {
	return func(r *Refresher) {
		r.onRefresh = fn
	}
}

// NewRefresher creates a refresher; a non-positive interval uses DefaultInterval
func NewRefresher(board *Board, interval time.Duration, opts ...RefresherOption) *Refresher {
	if interval <= 0 {
		interval = DefaultInterval
	}
	r := &Refresher{
		board:    board,
		interval: interval,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start launches the refresh loop. Calling Start on a running refresher is a no-op.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancel != nil {
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.loop(loopCtx, r.done)
}

// Stop cancels the loop and any in-flight refresh, then waits for the loop to exit
func (r *Refresher) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

func (r *Refresher) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	err := r.board.Refresh(ctx)
	if ctx.Err() != nil {
		return
	}
	if r.onRefresh != nil {
		r.onRefresh(r.board.Snapshot(), err)
	}
}
