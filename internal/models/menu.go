package models

// MenuItem represents a dish served at a dining hall
// Dietary markers are 0/1 integers to match the backend wire format
type MenuItem struct {
	ID          int64   `json:"id"`
	DiningHall  string  `json:"dining_hall"`
	Name        string  `json:"item_name"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	FoodStation string  `json:"food_station"`
	MealTime    string  `json:"meal_time"`
	IsV         int     `json:"is_v"`
	IsVgn       int     `json:"is_vgn"`
	IsWNuts     int     `json:"is_w_nuts"`
}
