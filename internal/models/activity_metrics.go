package models

import "time"

// ActivityMetrics holds the metrics extracted from a downloaded activity file.
type ActivityMetrics struct {
	ActivityType  string
	StartTime     time.Time
	Duration      time.Duration
	Distance      float64 // meters
	MaxHeartRate  int
	AvgHeartRate  int
	AvgPower      int
	Calories      int
	ElevationGain float64 // meters
	ElevationLoss float64 // meters
}
