package models

// Role identifies the author of a chat message
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// ChatMessage is one entry of the recommendation transcript
type ChatMessage struct {
	Role Role   `json:"type"`
	Text string `json:"text"`
}

// QueryRecord is a logged recommendation request
type QueryRecord struct {
	UserID       int64  `json:"user_id"`
	QueryText    string `json:"query_text"`
	QueriesToday int    `json:"queries_today"`
}
