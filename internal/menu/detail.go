package menu

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/gauchoeats/gaucho/internal/models"
	"github.com/gauchoeats/gaucho/internal/waittime"
)

// NoDataText is shown in place of the menu when none could be loaded
const NoDataText = "No menu items available."

// Fetcher loads the menu of one hall filtered for a user
type Fetcher interface {
	Menu(ctx context.Context, userID int64, hall string) ([]models.MenuItem, error)
}

// WaitSource provides the current wait of a hall in minutes
type WaitSource interface {
	Minutes(hall string) (float64, bool)
}

// View is the content of the hall detail dialog
type View struct {
	Hall        string
	WaitMinutes float64
	WaitKnown   bool // false when the board has no data for the hall
	Severity    waittime.Level
	Items       []models.MenuItem
	NoData      bool
}

// WaitLabel formats the wait, or "Unknown" when there is no data
func (v View) WaitLabel() string {
	if !v.WaitKnown {
		return waittime.BucketUnknown.String()
	}
	return waittime.FormatWaitTime(v.WaitMinutes)
}

// Detail opens and closes the hall detail dialog
type Detail struct {
	fetcher Fetcher
	waits   WaitSource
	userID  int64
	logger  *slog.Logger
	cache   *cache

	mu      sync.Mutex
	current *View
}

// Option configures a Detail
type Option func(*Detail)

// WithCacheTTL keeps fetched menus for ttl; zero disables caching
func WithCacheTTL(ttl time.Duration) Option {
	return WithCacheClock(ttl, time.Now)
}

// WithCacheClock is WithCacheTTL with an explicit clock
func WithCacheClock(ttl time.Duration, now func() time.Time) Option {
	return func(d *Detail) {
		if ttl > 0 {
			d.cache = newCache(ttl, now)
		}
	}
}

// NewDetail creates a detail dialog for userID. waits may be nil.
func NewDetail(fetcher Fetcher, waits WaitSource, userID int64, logger *slog.Logger, opts ...Option) *Detail {
	d := &Detail{
		fetcher: fetcher,
		waits:   waits,
		userID:  userID,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Open loads the menu of hall and makes it the current view.
// A failed fetch yields an empty view with NoData set.
func (d *Detail) Open(ctx context.Context, hall string) View {
	view := View{Hall: hall}
	if d.waits != nil {
		view.WaitMinutes, view.WaitKnown = d.waits.Minutes(hall)
	}
	if view.WaitKnown {
		view.Severity = waittime.Severity(view.WaitMinutes)
	}

	items, err := d.load(ctx, hall)
	if err != nil {
		d.logger.Error("failed to fetch menu items", "hall", hall, "error", err)
	}
	if items == nil {
		items = []models.MenuItem{}
	}
	view.Items = items
	view.NoData = len(items) == 0

	d.mu.Lock()
	d.current = &view
	d.mu.Unlock()

	return view
}

// Current returns the open view, if any
func (d *Detail) Current() (View, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.current == nil {
		return View{}, false
	}
	return *d.current, true
}

// Close discards the open view
func (d *Detail) Close() {
	d.mu.Lock()
	d.current = nil
	d.mu.Unlock()
}

func (d *Detail) load(ctx context.Context, hall string) ([]models.MenuItem, error) {
	if d.cache != nil {
		if items, ok := d.cache.get(hall); ok {
			d.logger.Debug("menu served from cache", "hall", hall)
			return items, nil
		}
	}

	items, err := d.fetcher.Menu(ctx, d.userID, hall)
	if err != nil {
		return nil, err
	}

	if d.cache != nil {
		d.cache.put(hall, items)
	}
	return items, nil
}
