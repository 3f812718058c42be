package waittime

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gauchoeats/gaucho/pkg/logger"
)

// fakeFetcher serves fixed seconds per hall; halls listed in fail return an error
type fakeFetcher struct {
	mu      sync.Mutex
	seconds map[string]float64
	fail    map[string]error
	calls   int32
}

func (f *fakeFetcher) WaitTime(ctx context.Context, hall string) (float64, error) {
	atomic.AddInt32(&f.calls, 1)
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.fail[hall]; err != nil {
		return 0, err
	}
	return f.seconds[hall], nil
}

func (f *fakeFetcher) setFail(hall string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail == nil {
		f.fail = make(map[string]error)
	}
	f.fail[hall] = err
}

var testHalls = []string{"Carillo", "De La Guerra", "Portola"}

func TestAggregator_Collect(t *testing.T) {
	fetcher := &fakeFetcher{seconds: map[string]float64{"Carillo": 120, "De La Guerra": 0, "Portola": 1500}}
	agg := NewAggregator(fetcher)

	got, err := agg.Collect(context.Background(), testHalls)
	if err != nil {
		t.Fatalf("Collect() unexpected error = %v", err)
	}

	want := map[string]float64{"Carillo": 2, "De La Guerra": 0, "Portola": 25}
	if len(got) != len(want) {
		t.Fatalf("expected %d entries, got %d", len(want), len(got))
	}
	for hall, m := range want {
		if got[hall] != m {
			t.Errorf("minutes[%s] = %v, want %v", hall, got[hall], m)
		}
	}
	if fetcher.calls != 3 {
		t.Errorf("expected 3 fetches, got %d", fetcher.calls)
	}
}

func TestAggregator_Collect_AnyFailureFailsAll(t *testing.T) {
	fetcher := &fakeFetcher{seconds: map[string]float64{"Carillo": 60, "De La Guerra": 60, "Portola": 60}}
	fetcher.setFail("De La Guerra", errors.New("connection refused"))
	agg := NewAggregator(fetcher)

	got, err := agg.Collect(context.Background(), testHalls)
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if got != nil {
		t.Errorf("expected no partial map, got %v", got)
	}
}

func TestAggregator_Collect_NoHalls(t *testing.T) {
	agg := NewAggregator(&fakeFetcher{})
	if _, err := agg.Collect(context.Background(), nil); !errors.Is(err, ErrNoLocations) {
		t.Errorf("expected ErrNoLocations, got %v", err)
	}
}

// blockingFetcher fails one hall immediately and blocks the others until cancelled
type blockingFetcher struct {
	failHall  string
	cancelled int32
}

func (f *blockingFetcher) WaitTime(ctx context.Context, hall string) (float64, error) {
	if hall == f.failHall {
		return 0, errors.New("boom")
	}
	select {
	case <-ctx.Done():
		atomic.AddInt32(&f.cancelled, 1)
		return 0, ctx.Err()
	case <-time.After(5 * time.Second):
		return 60, nil
	}
}

func TestAggregator_Collect_FailureCancelsSiblings(t *testing.T) {
	fetcher := &blockingFetcher{failHall: "Portola"}
	agg := NewAggregator(fetcher)

	start := time.Now()
	if _, err := agg.Collect(context.Background(), testHalls); err == nil {
		t.Fatal("expected error, got nil")
	}
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Errorf("siblings were not cancelled, Collect took %v", elapsed)
	}
	if atomic.LoadInt32(&fetcher.cancelled) != 2 {
		t.Errorf("expected 2 cancelled fetches, got %d", fetcher.cancelled)
	}
}

func TestBoard_FailedRefreshKeepsPreviousMap(t *testing.T) {
	fetcher := &fakeFetcher{seconds: map[string]float64{"Carillo": 300, "De La Guerra": 600, "Portola": 1200}}
	board := NewBoard(NewAggregator(fetcher), testHalls, logger.Discard())

	if err := board.Refresh(context.Background()); err != nil {
		t.Fatalf("first Refresh() unexpected error = %v", err)
	}
	before := board.Snapshot()
	firstUpdate := board.UpdatedAt()

	fetcher.mu.Lock()
	fetcher.seconds["Carillo"] = 6000
	fetcher.mu.Unlock()
	fetcher.setFail("Portola", errors.New("503"))

	if err := board.Refresh(context.Background()); err == nil {
		t.Fatal("expected second Refresh() to fail")
	}

	after := board.Snapshot()
	if len(after) != len(before) {
		t.Fatalf("snapshot size changed: %v -> %v", before, after)
	}
	for hall, m := range before {
		if after[hall] != m {
			t.Errorf("minutes[%s] changed from %v to %v after failed refresh", hall, m, after[hall])
		}
	}
	if !board.UpdatedAt().Equal(firstUpdate) {
		t.Error("UpdatedAt moved after a failed refresh")
	}
}

func TestBoard_Label(t *testing.T) {
	fetcher := &fakeFetcher{seconds: map[string]float64{"Carillo": 30, "Portola": 1320}}
	board := NewBoard(NewAggregator(fetcher), []string{"Carillo", "Portola"}, logger.Discard())

	if got := board.Label("Carillo"); got != "Unknown" {
		t.Errorf("expected Unknown before first refresh, got %q", got)
	}

	if err := board.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() unexpected error = %v", err)
	}

	if got := board.Label("Carillo"); got != "No wait time" {
		t.Errorf("Label(Carillo) = %q, want No wait time", got)
	}
	if got := board.Label("Portola"); got != "Don't go" {
		t.Errorf("Label(Portola) = %q, want Don't go", got)
	}
	if got := board.Label("Ortega"); got != "Unknown" {
		t.Errorf("Label(Ortega) = %q, want Unknown", got)
	}
}

func TestBoard_SnapshotIsCopy(t *testing.T) {
	fetcher := &fakeFetcher{seconds: map[string]float64{"Carillo": 60}}
	board := NewBoard(NewAggregator(fetcher), []string{"Carillo"}, logger.Discard())
	if err := board.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh() unexpected error = %v", err)
	}

	snap := board.Snapshot()
	snap["Carillo"] = 99

	if m, _ := board.Minutes("Carillo"); m != 1 {
		t.Errorf("board mutated through snapshot, got %v", m)
	}
}

func TestBoard_RefreshLogLevel(t *testing.T) {
	tests := []struct {
		name      string
		fetcher   Fetcher
		cancel    bool
		wantLevel string
		wantMsg   string
	}{
		{
			name:      "cancelled refresh logs at debug",
			fetcher:   &blockingFetcher{},
			cancel:    true,
			wantLevel: `"level":"DEBUG"`,
			wantMsg:   "wait time refresh cancelled",
		},
		{
			name:      "failed refresh logs at error",
			fetcher:   &blockingFetcher{failHall: "Portola"},
			wantLevel: `"level":"ERROR"`,
			wantMsg:   "failed to refresh wait times",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			board := NewBoard(NewAggregator(tt.fetcher), testHalls, logger.NewWithWriter("debug", &buf))

			ctx, cancel := context.WithCancel(context.Background())
			if tt.cancel {
				cancel()
			}
			defer cancel()

			if err := board.Refresh(ctx); err == nil {
				t.Fatal("expected Refresh() to fail")
			}

			out := buf.String()
			if !strings.Contains(out, tt.wantLevel) || !strings.Contains(out, tt.wantMsg) {
				t.Errorf("expected %s %q in log, got %s", tt.wantLevel, tt.wantMsg, out)
			}
			if tt.cancel && strings.Contains(out, `"level":"ERROR"`) {
				t.Errorf("cancelled refresh logged an error: %s", out)
			}
		})
	}
}
