package service

import "github.com/gauchoeats/gaucho/internal/models"

// FilterMenu keeps the items a user with prefs may see.
// Nut-allergic users (wants_w_nuts = 0) never see items with nuts.
// Vegan users see vegan and vegetarian items; vegetarian users see vegetarian items.
func FilterMenu(items []models.MenuItem, prefs models.Preferences) []models.MenuItem {
	filtered := make([]models.MenuItem, 0, len(items))
	for _, item := range items {
		if prefs.WantsWNuts == 0 && item.IsWNuts != 0 {
			continue
		}
		switch {
		case prefs.WantsVgn == 1:
			if item.IsVgn != 1 && item.IsV != 1 {
				continue
			}
		case prefs.WantsV == 1:
			if item.IsV != 1 {
				continue
			}
		}
		filtered = append(filtered, item)
	}
	return filtered
}
