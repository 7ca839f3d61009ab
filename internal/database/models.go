// internal/database/models.go
package database

import "time"

// Activity is one synced Garmin activity. The first five fields are the
// contract served over the JSON endpoints; the rest is enrichment pulled out
// of the downloaded activity file. Optional columns are pointers so a NULL
// survives the round trip instead of turning into a zero.
type Activity struct {
	ActivityID   string   `json:"activity_id"`
	ActivityName *string  `json:"activity_name,omitempty"`
	StartTimeGMT *int64   `json:"start_time_gmt,omitempty"` // Unix seconds
	Distance     *float64 `json:"distance,omitempty"`       // meters
	Duration     *float64 `json:"duration,omitempty"`       // seconds

	ActivityType  *string  `json:"activity_type,omitempty"`
	AvgHeartRate  *int     `json:"avg_heart_rate,omitempty"`
	MaxHeartRate  *int     `json:"max_heart_rate,omitempty"`
	AvgPower      *int     `json:"avg_power,omitempty"`
	Calories      *int     `json:"calories,omitempty"`
	ElevationGain *float64 `json:"elevation_gain,omitempty"`

	Filename   *string   `json:"filename,omitempty"`
	FileType   *string   `json:"file_type,omitempty"`
	Downloaded bool      `json:"downloaded"`
	CreatedAt  time.Time `json:"created_at"`
	LastSync   time.Time `json:"last_sync"`
}

type Stats struct {
	Total      int `json:"total"`
	Downloaded int `json:"downloaded"`
	Missing    int `json:"missing"`
}

// Store is the persistence surface the web and sync layers depend on.
type Store interface {
	UpsertActivity(activity *Activity) error
	UpdateActivity(activity *Activity) error
	GetActivity(activityID string) (*Activity, error)
	RecentActivities(limit int) ([]Activity, error)
	ListActivities(limit, offset int) ([]Activity, error)
	GetStats() (*Stats, error)
	Close() error
}
