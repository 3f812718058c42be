package models

// Preference flag keys, as named on the wire
const (
	FlagVegetarian = "wants_v"
	FlagVegan      = "wants_vgn"
	FlagNuts       = "wants_w_nuts"
)

// Preferences holds the three dietary flags. Each flag is 0 or 1.
// WantsWNuts is 1 when the user is not allergic to nuts.
type Preferences struct {
	WantsV     int `json:"wants_v"`
	WantsVgn   int `json:"wants_vgn"`
	WantsWNuts int `json:"wants_w_nuts"`
}

// User is the profile record returned by /user_info and /update_preferences
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name,omitempty"`
	Preferences
}

// PreferencesUpdate is the body of POST /update_preferences
type PreferencesUpdate struct {
	ID int64 `json:"id"`
	Preferences
}
