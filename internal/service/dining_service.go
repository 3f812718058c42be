package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/gauchoeats/gaucho/internal/models"
	"github.com/gauchoeats/gaucho/internal/recommend"
	"github.com/gauchoeats/gaucho/internal/repository"
	"github.com/google/uuid"
)

// SampleWindow is how many recent samples the reported wait time averages
const SampleWindow = 5

var (
	ErrHallRequired      = errors.New("dining hall is required")
	ErrQueryRequired     = errors.New("user query is required")
	ErrInvalidPreference = errors.New("preference flags must be 0 or 1")
	ErrInvalidWaitTime   = errors.New("wait time must be a non-negative number of seconds")
	ErrDailyLimit        = errors.New("daily query limit reached")
)

// DiningService handles the backend's business logic
type DiningService struct {
	store           repository.Store
	recommender     recommend.Recommender
	maxDailyQueries int
	logger          *slog.Logger
	now             func() time.Time
}

// NewDiningService creates a new dining service. maxDailyQueries of 0 disables the limit.
func NewDiningService(store repository.Store, recommender recommend.Recommender, maxDailyQueries int, logger *slog.Logger) *DiningService {
	return &DiningService{
		store:           store,
		recommender:     recommender,
		maxDailyQueries: maxDailyQueries,
		logger:          logger,
		now:             time.Now,
	}
}

// UserInfo returns a user's profile
func (s *DiningService) UserInfo(ctx context.Context, userID int64) (*models.User, error) {
	return s.store.GetUser(ctx, userID)
}

// UpdatePreferences stores all three flags and returns the updated record
func (s *DiningService) UpdatePreferences(ctx context.Context, req models.PreferencesUpdate) (*models.User, error) {
	for _, v := range []int{req.WantsV, req.WantsVgn, req.WantsWNuts} {
		if v != 0 && v != 1 {
			return nil, ErrInvalidPreference
		}
	}
	return s.store.UpdatePreferences(ctx, req.ID, req.Preferences)
}

// AverageWaitTime returns the mean of the most recent samples in seconds, or nil without samples
func (s *DiningService) AverageWaitTime(ctx context.Context, hall string) (*float64, error) {
	hall = normalizeHall(hall)
	if hall == "" {
		return nil, ErrHallRequired
	}

	samples, err := s.store.RecentSamples(ctx, hall, SampleWindow)
	if err != nil {
		return nil, fmt.Errorf("failed to load wait samples: %w", err)
	}
	if len(samples) == 0 {
		return nil, nil
	}

	total := 0.0
	for _, sample := range samples {
		total += sample.WaitTime
	}
	avg := total / float64(len(samples))
	return &avg, nil
}

// RecordWaitSample stores a newly observed wait time
func (s *DiningService) RecordWaitSample(ctx context.Context, req models.WaitSampleRequest) (*models.WaitSample, error) {
	hall := normalizeHall(req.DiningHall)
	if hall == "" {
		return nil, ErrHallRequired
	}
	if req.WaitTime < 0 || req.WaitTime != req.WaitTime {
		return nil, ErrInvalidWaitTime
	}

	sample := models.WaitSample{
		ID:         uuid.New().String(),
		DiningHall: hall,
		WaitTime:   req.WaitTime,
		Timestamp:  s.now().UTC(),
	}
	if err := s.store.AddSample(ctx, sample); err != nil {
		return nil, fmt.Errorf("failed to store wait sample: %w", err)
	}
	return &sample, nil
}

// Menu returns a hall's items filtered by the user's preferences
func (s *DiningService) Menu(ctx context.Context, userID int64, hall string) ([]models.MenuItem, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	items, err := s.store.ListMenu(ctx, strings.TrimSpace(hall))
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	return FilterMenu(items, user.Preferences), nil
}

// Recommend logs the query and asks the recommender about every hall's menu
func (s *DiningService) Recommend(ctx context.Context, userID int64, query string, dailyQueryNumber int) (string, error) {
	if strings.TrimSpace(query) == "" {
		return "", ErrQueryRequired
	}
	if s.maxDailyQueries > 0 && dailyQueryNumber > s.maxDailyQueries {
		return "", ErrDailyLimit
	}

	record := models.QueryRecord{UserID: userID, QueryText: query, QueriesToday: dailyQueryNumber}
	if err := s.store.RecordQuery(ctx, record); err != nil {
		return "", fmt.Errorf("failed to record query: %w", err)
	}

	menu, err := s.store.ListMenu(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to load menu: %w", err)
	}

	s.logger.Info("recommendation requested", "user_id", userID, "daily_query_number", dailyQueryNumber)
	return s.recommender.Recommend(ctx, query, menu)
}

func normalizeHall(hall string) string {
	return strings.ToLower(strings.TrimSpace(hall))
}
