package models

// Location represents a dining hall shown on the home tab
type Location struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Hours    string `json:"hours"`
	Image    string `json:"image"`
}

// DiningHalls is the fixed set of campus dining locations
var DiningHalls = []Location{
	{ID: 1, Name: "Carillo", Category: "Dining", Hours: "8 AM - 10 PM", Image: "carrillo.png"},
	{ID: 2, Name: "De La Guerra", Category: "Dining", Hours: "9 AM - 11 PM", Image: "de_la_guerra.png"},
	{ID: 3, Name: "Portola", Category: "Dining", Hours: "7 AM - 9 PM", Image: "portola.png"},
}

// HallNames returns the display names of the given locations in order
func HallNames(locations []Location) []string {
	names := make([]string, len(locations))
	for i, l := range locations {
		names[i] = l.Name
	}
	return names
}
