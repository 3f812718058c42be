package history

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gauchoeats/gaucho/internal/models"
)

// ErrNoData is returned for days without historical averages
var ErrNoData = errors.New("no historical data for day")

// firstHour is the hour of the first average in each row
const firstHour = 8

// Average waits in minutes from 8 AM to 5 PM, Monday to Friday
var averages = map[time.Weekday][]float64{
	time.Monday:    {10, 15, 20, 18, 25, 30, 28, 22, 19, 26},
	time.Tuesday:   {12, 17, 23, 20, 28, 35, 30, 25, 21, 29},
	time.Wednesday: {11, 16, 21, 19, 27, 33, 29, 24, 20, 28},
	time.Thursday:  {9, 14, 19, 17, 24, 32, 27, 21, 18, 25},
	time.Friday:    {13, 18, 25, 22, 30, 38, 34, 28, 23, 31},
}

// Days returns the weekdays with historical data, in order
func Days() []time.Weekday {
	return []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
}

// DefaultDay is the day the detail chart starts on
const DefaultDay = time.Monday

// ForDay returns the hourly averages for day
func ForDay(day time.Weekday) ([]models.HourlyAverage, error) {
	row, ok := averages[day]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoData, day)
	}

	out := make([]models.HourlyAverage, len(row))
	for i, m := range row {
		out[i] = models.HourlyAverage{Day: day, Hour: firstHour + i, Minutes: m}
	}
	return out, nil
}

// ParseDay accepts a full or three-letter weekday name, case-insensitively
func ParseDay(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		name := strings.ToLower(d.String())
		if s == name || (len(s) == 3 && strings.HasPrefix(name, s)) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("invalid day: %q", s)
}

// HourLabel formats a 0-23 hour as a 12-hour clock label such as "1 PM"
func HourLabel(hour int) string {
	suffix := "AM"
	if hour%24 >= 12 {
		suffix = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d %s", h, suffix)
}
