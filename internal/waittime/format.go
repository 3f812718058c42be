package waittime

import "math"

// Bucket is a human-readable wait-time range
type Bucket int

const (
	BucketNoWait Bucket = iota
	BucketUnderFive
	BucketUnderTen
	BucketUnderFifteen
	BucketDontGo
	// BucketUnknown covers [15,20), NaN and halls without data
	BucketUnknown
)

var bucketLabels = map[Bucket]string{
	BucketNoWait:       "No wait time",
	BucketUnderFive:    "0-5 minutes",
	BucketUnderTen:     "Less than 10 minutes",
	BucketUnderFifteen: "Less than 15 minutes",
	BucketDontGo:       "Don't go",
	BucketUnknown:      "Unknown",
}

func (b Bucket) String() string {
	if label, ok := bucketLabels[b]; ok {
		return label
	}
	return bucketLabels[BucketUnknown]
}

// Classify maps a wait in minutes to its bucket
func Classify(minutes float64) Bucket {
	switch {
	case math.IsNaN(minutes):
		return BucketUnknown
	case minutes < 1:
		return BucketNoWait
	case minutes < 5:
		return BucketUnderFive
	case minutes < 10:
		return BucketUnderTen
	case minutes < 15:
		return BucketUnderFifteen
	case minutes >= 20:
		return BucketDontGo
	default:
		return BucketUnknown
	}
}

// FormatWaitTime returns the label shown next to a dining hall
func FormatWaitTime(minutes float64) string {
	return Classify(minutes).String()
}

// Level is the colour band of the detail view
type Level int

const (
	LevelLow Level = iota
	LevelModerate
	LevelHigh
)

func (l Level) String() string {
	switch l {
	case LevelLow:
		return "low"
	case LevelModerate:
		return "moderate"
	default:
		return "high"
	}
}

// Color returns the display colour of the band
func (l Level) Color() string {
	switch l {
	case LevelLow:
		return "green"
	case LevelModerate:
		return "orange"
	default:
		return "red"
	}
}

// Severity bands a wait: up to 10 minutes is low, up to 20 moderate, anything else high
func Severity(minutes float64) Level {
	switch {
	case minutes <= 10:
		return LevelLow
	case minutes <= 20:
		return LevelModerate
	default:
		return LevelHigh
	}
}
