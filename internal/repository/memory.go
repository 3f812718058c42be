package repository

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/gauchoeats/gaucho/internal/models"
)

// InMemoryStore implements Store with in-memory storage
type InMemoryStore struct {
	mu      sync.RWMutex
	users   map[int64]models.User
	menu    []models.MenuItem
	samples []models.WaitSample
	queries []models.QueryRecord
}

// NewInMemoryStore creates a new in-memory store with seed users and menus
func NewInMemoryStore() *InMemoryStore {
	users := map[int64]models.User{
		1: {ID: 1, Name: "Olé Gaucho", Preferences: models.Preferences{WantsV: 0, WantsVgn: 0, WantsWNuts: 1}},
		2: {ID: 2, Name: "Storke Tower", Preferences: models.Preferences{WantsV: 1, WantsVgn: 1, WantsWNuts: 0}},
	}

	menu := []models.MenuItem{
		{ID: 1, DiningHall: "Carillo", Name: "Grilled Chicken Breast", Price: 0, FoodStation: "Grill", MealTime: "Lunch"},
		{ID: 2, DiningHall: "Carillo", Name: "Steamed Broccoli & Cauliflower (vgn)", Price: 0, FoodStation: "Sides", MealTime: "Lunch", IsV: 1, IsVgn: 1},
		{ID: 3, DiningHall: "Carillo", Name: "Peanut Noodle Salad (v)", Price: 0, FoodStation: "Salad Bar", MealTime: "Dinner", IsV: 1, IsWNuts: 1},
		{ID: 4, DiningHall: "Carillo", Name: "Cheese Pizza (v)", Price: 0, FoodStation: "Pizza", MealTime: "Dinner", IsV: 1},
		{ID: 5, DiningHall: "De La Guerra", Name: "Black Beans (vgn)", Price: 0, FoodStation: "Taqueria", MealTime: "Lunch", IsV: 1, IsVgn: 1},
		{ID: 6, DiningHall: "De La Guerra", Name: "Wheat Tortilla (vgn)", Price: 0, FoodStation: "Taqueria", MealTime: "Lunch", IsV: 1, IsVgn: 1},
		{ID: 7, DiningHall: "De La Guerra", Name: "Carne Asada", Price: 0, FoodStation: "Taqueria", MealTime: "Dinner"},
		{ID: 8, DiningHall: "De La Guerra", Name: "Almond Croissant (v)", Price: 0, FoodStation: "Bakery", MealTime: "Breakfast", IsV: 1, IsWNuts: 1},
		{ID: 9, DiningHall: "Portola", Name: "Tofu Stir Fry (vgn)", Price: 0, FoodStation: "Wok", MealTime: "Dinner", IsV: 1, IsVgn: 1},
		{ID: 10, DiningHall: "Portola", Name: "Cashew Chicken", Price: 0, FoodStation: "Wok", MealTime: "Dinner", IsWNuts: 1},
		{ID: 11, DiningHall: "Portola", Name: "Buttermilk Pancakes (v)", Price: 0, FoodStation: "Griddle", MealTime: "Breakfast", IsV: 1},
		{ID: 12, DiningHall: "Portola", Name: "Turkey Club", Price: 0, FoodStation: "Deli", MealTime: "Lunch"},
	}
	sortMenu(menu)

	return &InMemoryStore{
		users: users,
		menu:  menu,
	}
}

// GetUser returns a user by ID
func (s *InMemoryStore) GetUser(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[id]
	if !exists {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// UpdatePreferences overwrites the user's flags and returns the stored record
func (s *InMemoryStore) UpdatePreferences(ctx context.Context, id int64, prefs models.Preferences) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[id]
	if !exists {
		return nil, ErrUserNotFound
	}
	user.Preferences = prefs
	s.users[id] = user
	return &user, nil
}

// ListMenu returns a hall's items, matching the hall name case-insensitively
func (s *InMemoryStore) ListMenu(ctx context.Context, hall string) ([]models.MenuItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.MenuItem, 0, len(s.menu))
	for _, item := range s.menu {
		if hall == "" || strings.EqualFold(item.DiningHall, hall) {
			items = append(items, item)
		}
	}
	return items, nil
}

// AddSample stores a wait sample
func (s *InMemoryStore) AddSample(ctx context.Context, sample models.WaitSample) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.samples = append(s.samples, sample)
	return nil
}

// RecentSamples returns up to limit samples for hall, newest first
func (s *InMemoryStore) RecentSamples(ctx context.Context, hall string, limit int) ([]models.WaitSample, error) {
	s.mu.RLock()
	matched := make([]models.WaitSample, 0)
	for _, sample := range s.samples {
		if sample.DiningHall == hall {
			matched = append(matched, sample)
		}
	}
	s.mu.RUnlock()

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Timestamp.After(matched[j].Timestamp)
	})
	if limit > 0 && len(matched) > limit {
		matched = matched[:limit]
	}
	return matched, nil
}

// RecordQuery appends a recommendation query to the log
func (s *InMemoryStore) RecordQuery(ctx context.Context, q models.QueryRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.queries = append(s.queries, q)
	return nil
}

// Queries returns every recorded query
func (s *InMemoryStore) Queries() []models.QueryRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.QueryRecord(nil), s.queries...)
}

func sortMenu(items []models.MenuItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].FoodStation != items[j].FoodStation {
			return items[i].FoodStation < items[j].FoodStation
		}
		return items[i].Name < items[j].Name
	})
}
