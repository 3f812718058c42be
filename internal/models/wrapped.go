package models

// LocationVisits counts visits to one dining hall
type LocationVisits struct {
	Location string `json:"location"`
	Visits   int    `json:"visits"`
}

// ItemPurchases counts purchases of one menu item
type ItemPurchases struct {
	Item  string `json:"item"`
	Count int    `json:"count"`
}

// WrappedSummary is the year-end usage summary shown on the account tab
type WrappedSummary struct {
	MostVisitedLocations []LocationVisits `json:"mostVisitedLocations"`
	MostPurchasedItems   []ItemPurchases  `json:"mostPurchasedItems"`
}
