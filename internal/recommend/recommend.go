package recommend

import (
	"context"
	"fmt"
	"strings"

	"github.com/gauchoeats/gaucho/internal/models"
)

// Recommender answers a free-text food query from the current menu
type Recommender interface {
	Recommend(ctx context.Context, query string, menu []models.MenuItem) (string, error)
}

// FormatItem renders one menu item as a line of the prompt
func FormatItem(item models.MenuItem) string {
	if item.MealTime == "" {
		return fmt.Sprintf("%s (Dining Hall: %s)", item.Name, item.DiningHall)
	}
	return fmt.Sprintf("%s (Dining Hall: %s, Time: %s)", item.Name, item.DiningHall, item.MealTime)
}

// SystemPrompt builds the assistant instructions listing every menu item
func SystemPrompt(menu []models.MenuItem) string {
	formatted := make([]string, len(menu))
	for i, item := range menu {
		formatted[i] = FormatItem(item)
	}

	return "You are a helpful assistant that recommends initially only 2 menu items unless they ask for more. " +
		"Keep it concise. The items come from the University of California Santa Barbara dining halls " +
		"Portola, De La Guerra and Carillo. Present the information clearly, showing at which dining hall " +
		"each item is served and what the food is. Here are the menu item names: " +
		strings.Join(formatted, ", ") + "."
}
