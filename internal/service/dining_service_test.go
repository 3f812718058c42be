package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/gauchoeats/gaucho/internal/models"
	"github.com/gauchoeats/gaucho/internal/repository"
	"github.com/gauchoeats/gaucho/pkg/logger"
)

type stubRecommender struct {
	calls int
	query string
	menu  []models.MenuItem
	reply string
	err   error
}

func (s *stubRecommender) Recommend(ctx context.Context, query string, menu []models.MenuItem) (string, error) {
	s.calls++
	s.query = query
	s.menu = menu
	return s.reply, s.err
}

func newTestService(t *testing.T, maxDaily int) (*DiningService, *repository.InMemoryStore, *stubRecommender) {
	t.Helper()
	store := repository.NewInMemoryStore()
	rec := &stubRecommender{reply: "Try the Carne Asada."}
	svc := NewDiningService(store, rec, maxDaily, logger.Discard())

	clock := time.Date(2024, 11, 4, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}
	return svc, store, rec
}

func TestDiningService_UserInfo(t *testing.T) {
	svc, _, _ := newTestService(t, 0)

	user, err := svc.UserInfo(context.Background(), 1)
	if err != nil {
		t.Fatalf("UserInfo() unexpected error = %v", err)
	}
	if user.ID != 1 || user.WantsWNuts != 1 {
		t.Errorf("unexpected user %+v", user)
	}

	if _, err := svc.UserInfo(context.Background(), 404); !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDiningService_UpdatePreferences(t *testing.T) {
	tests := []struct {
		name    string
		req     models.PreferencesUpdate
		wantErr error
	}{
		{
			name: "valid update",
			req:  models.PreferencesUpdate{ID: 1, Preferences: models.Preferences{WantsV: 1, WantsVgn: 0, WantsWNuts: 1}},
		},
		{
			name:    "flag out of range",
			req:     models.PreferencesUpdate{ID: 1, Preferences: models.Preferences{WantsV: 2}},
			wantErr: ErrInvalidPreference,
		},
		{
			name:    "unknown user",
			req:     models.PreferencesUpdate{ID: 99, Preferences: models.Preferences{WantsV: 1}},
			wantErr: repository.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(t, 0)

			user, err := svc.UpdatePreferences(context.Background(), tt.req)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("UpdatePreferences() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("UpdatePreferences() unexpected error = %v", err)
			}
			if user.Preferences != tt.req.Preferences {
				t.Errorf("stored %+v, want %+v", user.Preferences, tt.req.Preferences)
			}
		})
	}
}

func TestDiningService_AverageWaitTime(t *testing.T) {
	svc, _, _ := newTestService(t, 0)
	ctx := context.Background()

	avg, err := svc.AverageWaitTime(ctx, "Portola")
	if err != nil {
		t.Fatalf("AverageWaitTime() unexpected error = %v", err)
	}
	if avg != nil {
		t.Errorf("expected nil average without samples, got %v", *avg)
	}

	// the oldest sample falls outside the window
	for _, secs := range []float64{6000, 60, 120, 180, 240, 300} {
		if _, err := svc.RecordWaitSample(ctx, models.WaitSampleRequest{DiningHall: "Portola", WaitTime: secs}); err != nil {
			t.Fatalf("RecordWaitSample() unexpected error = %v", err)
		}
	}

	avg, err = svc.AverageWaitTime(ctx, "  PORTOLA ")
	if err != nil {
		t.Fatalf("AverageWaitTime() unexpected error = %v", err)
	}
	if avg == nil || *avg != 180 {
		t.Errorf("expected average 180, got %v", avg)
	}

	if _, err := svc.AverageWaitTime(ctx, ""); !errors.Is(err, ErrHallRequired) {
		t.Errorf("expected ErrHallRequired, got %v", err)
	}
}

func TestDiningService_RecordWaitSample_Invalid(t *testing.T) {
	svc, _, _ := newTestService(t, 0)

	tests := []struct {
		name    string
		req     models.WaitSampleRequest
		wantErr error
	}{
		{"missing hall", models.WaitSampleRequest{WaitTime: 60}, ErrHallRequired},
		{"negative wait", models.WaitSampleRequest{DiningHall: "Carillo", WaitTime: -1}, ErrInvalidWaitTime},
		{"NaN wait", models.WaitSampleRequest{DiningHall: "Carillo", WaitTime: math.NaN()}, ErrInvalidWaitTime},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.RecordWaitSample(context.Background(), tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("RecordWaitSample() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDiningService_RecordWaitSample(t *testing.T) {
	svc, _, _ := newTestService(t, 0)

	sample, err := svc.RecordWaitSample(context.Background(), models.WaitSampleRequest{DiningHall: "De La Guerra", WaitTime: 90})
	if err != nil {
		t.Fatalf("RecordWaitSample() unexpected error = %v", err)
	}
	if sample.ID == "" {
		t.Error("sample ID is empty")
	}
	if sample.DiningHall != "de la guerra" {
		t.Errorf("expected lower-cased hall, got %s", sample.DiningHall)
	}
	if sample.Timestamp.IsZero() {
		t.Error("sample timestamp is zero")
	}
}

func TestDiningService_Menu(t *testing.T) {
	svc, _, _ := newTestService(t, 0)
	ctx := context.Background()

	// user 2 is vegan and nut-allergic
	items, err := svc.Menu(ctx, 2, "de la guerra")
	if err != nil {
		t.Fatalf("Menu() unexpected error = %v", err)
	}
	want := []string{"Black Beans (vgn)", "Wheat Tortilla (vgn)"}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %+v", len(want), items)
	}
	for i, name := range want {
		if items[i].Name != name {
			t.Errorf("items[%d] = %s, want %s", i, items[i].Name, name)
		}
	}

	if _, err := svc.Menu(ctx, 77, "Portola"); !errors.Is(err, repository.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestDiningService_Recommend(t *testing.T) {
	svc, store, rec := newTestService(t, 3)
	ctx := context.Background()

	text, err := svc.Recommend(ctx, 1, "something spicy", 1)
	if err != nil {
		t.Fatalf("Recommend() unexpected error = %v", err)
	}
	if text != "Try the Carne Asada." {
		t.Errorf("unexpected text %q", text)
	}
	if rec.query != "something spicy" || len(rec.menu) != 12 {
		t.Errorf("recommender got query %q with %d items", rec.query, len(rec.menu))
	}

	queries := store.Queries()
	if len(queries) != 1 || queries[0].UserID != 1 || queries[0].QueriesToday != 1 {
		t.Errorf("unexpected query log %+v", queries)
	}
}

func TestDiningService_Recommend_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		query   string
		number  int
		wantErr error
	}{
		{"blank query", "   ", 1, ErrQueryRequired},
		{"over daily limit", "pizza", 4, ErrDailyLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, store, rec := newTestService(t, 3)

			if _, err := svc.Recommend(context.Background(), 1, tt.query, tt.number); !errors.Is(err, tt.wantErr) {
				t.Errorf("Recommend() error = %v, want %v", err, tt.wantErr)
			}
			if rec.calls != 0 || len(store.Queries()) != 0 {
				t.Errorf("rejected query should not reach the recommender or the log")
			}
		})
	}
}

func TestDiningService_Recommend_Unlimited(t *testing.T) {
	svc, _, _ := newTestService(t, 0)

	if _, err := svc.Recommend(context.Background(), 1, "pizza", 500); err != nil {
		t.Errorf("Recommend() unexpected error = %v", err)
	}
}
