// internal/parser/fit.go
package parser

import (
	"bytes"
	"fmt"
	"math"
	"time"

	"github.com/tormoder/fit"

	"garmin-dashboard/internal/models"
)

type FITParser struct{}

func NewFITParser() *FITParser {
	return &FITParser{}
}

func (p *FITParser) Parse(data []byte) (*models.ActivityMetrics, error) {
	fitFile, err := fit.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode FIT file: %w", err)
	}

	activity, err := fitFile.Activity()
	if err != nil {
		return nil, fmt.Errorf("failed to get activity from FIT: %w", err)
	}

	if len(activity.Sessions) == 0 {
		return nil, ErrNoTrackData
	}

	session := activity.Sessions[0]
	metrics := &models.ActivityMetrics{
		ActivityType: session.Sport.String(),
		StartTime:    session.StartTime,
	}

	if v := session.GetTotalTimerTimeScaled(); !math.IsNaN(v) {
		metrics.Duration = time.Duration(v * float64(time.Second))
	}
	if v := session.GetTotalDistanceScaled(); !math.IsNaN(v) {
		metrics.Distance = v
	}

	// Integer fields use all-ones invalid sentinels in FIT.
	if session.AvgHeartRate != 0xFF {
		metrics.AvgHeartRate = int(session.AvgHeartRate)
	}
	if session.MaxHeartRate != 0xFF {
		metrics.MaxHeartRate = int(session.MaxHeartRate)
	}
	if session.AvgPower != 0xFFFF {
		metrics.AvgPower = int(session.AvgPower)
	}
	if session.TotalCalories != 0xFFFF {
		metrics.Calories = int(session.TotalCalories)
	}
	if session.TotalAscent != 0xFFFF {
		metrics.ElevationGain = float64(session.TotalAscent)
	}
	if session.TotalDescent != 0xFFFF {
		metrics.ElevationLoss = float64(session.TotalDescent)
	}

	return metrics, nil
}
