// internal/web/view.go
package web

import (
	"fmt"
	"time"

	"garmin-dashboard/internal/database"
)

// ActivityPayload is the shape served by /login-and-fetch and /get-data.
// Absent values are omitted rather than zeroed.
type ActivityPayload struct {
	ActivityID   string   `json:"activity_id"`
	ActivityName *string  `json:"activity_name,omitempty"`
	StartTimeGMT *int64   `json:"start_time_gmt,omitempty"`
	Distance     *float64 `json:"distance,omitempty"`
	Duration     *float64 `json:"duration,omitempty"`
}

func toPayload(activities []database.Activity) []ActivityPayload {
	payload := make([]ActivityPayload, 0, len(activities))
	for i := range activities {
		a := &activities[i]
		payload = append(payload, ActivityPayload{
			ActivityID:   a.ActivityID,
			ActivityName: a.ActivityName,
			StartTimeGMT: a.StartTimeGMT,
			Distance:     a.Distance,
			Duration:     a.Duration,
		})
	}
	return payload
}

const notAvailable = "N/A"

// FormatDistance renders meters as kilometers with two decimals.
func FormatDistance(meters *float64) string {
	if meters == nil || *meters == 0 {
		return notAvailable
	}
	return fmt.Sprintf("%.2f km", *meters/1000)
}

// FormatDuration renders seconds as minutes with one decimal.
func FormatDuration(seconds *float64) string {
	if seconds == nil || *seconds == 0 {
		return notAvailable
	}
	return fmt.Sprintf("%.1f min", *seconds/60)
}

// FormatStartTime renders a Unix-seconds timestamp as a GMT date.
func FormatStartTime(unixSeconds *int64) string {
	if unixSeconds == nil || *unixSeconds == 0 {
		return notAvailable
	}
	return time.Unix(*unixSeconds, 0).UTC().Format("2006-01-02 15:04:05")
}

// OrNA substitutes the placeholder for missing text fields.
func OrNA(s *string) string {
	if s == nil || *s == "" {
		return notAvailable
	}
	return *s
}
