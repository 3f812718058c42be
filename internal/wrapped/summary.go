// Package wrapped builds the year-end "wrapped" summary shown on the account tab.
// The figures are illustrative and not computed from live data.
package wrapped

import (
	"fmt"
	"io"
	"sort"

	"github.com/gauchoeats/gaucho/internal/models"
)

// Generate returns the static summary
func Generate() models.WrappedSummary {
	return models.WrappedSummary{
		MostVisitedLocations: []models.LocationVisits{
			{Location: "Portola", Visits: 64},
			{Location: "De La Guerra", Visits: 135},
			{Location: "Carillo", Visits: 36},
		},
		MostPurchasedItems: []models.ItemPurchases{
			{Item: "Steamed Broccoli & Cauliflower (vgn)", Count: 64},
			{Item: "Black Beans (vgn)", Count: 65},
			{Item: "Wheat Tortilla (vgn)", Count: 135},
		},
	}
}

// Ranked returns a copy of s with both lists sorted from highest to lowest
func Ranked(s models.WrappedSummary) models.WrappedSummary {
	out := models.WrappedSummary{
		MostVisitedLocations: append([]models.LocationVisits(nil), s.MostVisitedLocations...),
		MostPurchasedItems:   append([]models.ItemPurchases(nil), s.MostPurchasedItems...),
	}
	sort.SliceStable(out.MostVisitedLocations, func(i, j int) bool {
		return out.MostVisitedLocations[i].Visits > out.MostVisitedLocations[j].Visits
	})
	sort.SliceStable(out.MostPurchasedItems, func(i, j int) bool {
		return out.MostPurchasedItems[i].Count > out.MostPurchasedItems[j].Count
	})
	return out
}

// Render writes the summary as plain text
func Render(w io.Writer, s models.WrappedSummary) error {
	if _, err := fmt.Fprintln(w, "Your Gaucho Wrapped"); err != nil {
		return err
	}

	if _, err := fmt.Fprintln(w, "\nMost visited locations"); err != nil {
		return err
	}
	for _, l := range s.MostVisitedLocations {
		if _, err := fmt.Fprintf(w, "🏠 %s: %d visits\n", l.Location, l.Visits); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintln(w, "\nMost purchased items"); err != nil {
		return err
	}
	for _, item := range s.MostPurchasedItems {
		if _, err := fmt.Fprintf(w, "🍽️ %s: %d times\n", item.Item, item.Count); err != nil {
			return err
		}
	}
	return nil
}
