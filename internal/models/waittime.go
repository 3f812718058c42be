package models

import "time"

// WaitTimeResponse is the body of GET /wait_time
// AverageWaitTime is in seconds and is null when no samples exist
type WaitTimeResponse struct {
	AverageWaitTime *float64 `json:"average_wait_time"`
}

// WaitSample is a single observed queue duration at a dining hall
type WaitSample struct {
	ID         string    `json:"id"`
	DiningHall string    `json:"dining_hall"`
	WaitTime   float64   `json:"wait_time"`
	Timestamp  time.Time `json:"timestamp"`
}

// WaitSampleRequest is the body of POST /wait_time
type WaitSampleRequest struct {
	DiningHall string  `json:"dining_hall"`
	WaitTime   float64 `json:"wait_time"`
}

// HourlyAverage is the historical average wait at one hour of a weekday
type HourlyAverage struct {
	Day     time.Weekday `json:"day"`
	Hour    int          `json:"hour"`
	Minutes float64      `json:"minutes"`
}
