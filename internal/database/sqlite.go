// internal/database/sqlite.go
package database

import (
	"database/sql"
	"errors"
	"fmt"
)

// ErrNotFound is returned when an activity id has no row.
var ErrNotFound = errors.New("activity not found")

type SQLiteDB struct {
	db *sql.DB
}

// Open opens (or creates) the SQLite database at dbPath and applies the schema.
func Open(dbPath string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}

	sqlite := &SQLiteDB{db: db}
	if err := sqlite.createTables(); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sqlite, nil
}

// NewFromDB wraps an existing sql.DB connection.
func NewFromDB(db *sql.DB) *SQLiteDB {
	return &SQLiteDB{db: db}
}

func (s *SQLiteDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS activities (
		activity_id TEXT PRIMARY KEY,
		activity_name TEXT,
		start_time_gmt INTEGER,
		distance REAL,
		duration REAL,
		activity_type TEXT,
		avg_heart_rate INTEGER,
		max_heart_rate INTEGER,
		avg_power INTEGER,
		calories INTEGER,
		elevation_gain REAL,
		filename TEXT UNIQUE,
		file_type TEXT,
		downloaded BOOLEAN NOT NULL DEFAULT FALSE,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		last_sync DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_activities_start_time_gmt ON activities(start_time_gmt);
	CREATE INDEX IF NOT EXISTS idx_activities_downloaded ON activities(downloaded);
	`

	_, err := s.db.Exec(schema)
	return err
}

const activityColumns = `
	activity_id, activity_name, start_time_gmt, distance, duration,
	activity_type, avg_heart_rate, max_heart_rate, avg_power, calories,
	elevation_gain, filename, file_type, downloaded, created_at, last_sync`

// UpsertActivity inserts a new activity row or refreshes the summary fields
// of an existing one. Enrichment columns are left alone so a re-sync does not
// wipe metrics parsed from an already downloaded file.
func (s *SQLiteDB) UpsertActivity(activity *Activity) error {
	query := `
	INSERT INTO activities (activity_id, activity_name, start_time_gmt, distance, duration, activity_type)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(activity_id) DO UPDATE SET
		activity_name = excluded.activity_name,
		start_time_gmt = excluded.start_time_gmt,
		distance = excluded.distance,
		duration = excluded.duration,
		activity_type = excluded.activity_type,
		last_sync = CURRENT_TIMESTAMP`

	_, err := s.db.Exec(query,
		activity.ActivityID, activity.ActivityName, activity.StartTimeGMT,
		activity.Distance, activity.Duration, activity.ActivityType,
	)
	return err
}

// UpdateActivity writes every mutable column of an existing row, including
// the enrichment and file bookkeeping fields.
func (s *SQLiteDB) UpdateActivity(activity *Activity) error {
	query := `
	UPDATE activities SET
		activity_name = ?, start_time_gmt = ?, distance = ?, duration = ?,
		activity_type = ?, avg_heart_rate = ?, max_heart_rate = ?,
		avg_power = ?, calories = ?, elevation_gain = ?,
		filename = ?, file_type = ?, downloaded = ?,
		last_sync = CURRENT_TIMESTAMP
	WHERE activity_id = ?`

	res, err := s.db.Exec(query,
		activity.ActivityName, activity.StartTimeGMT, activity.Distance, activity.Duration,
		activity.ActivityType, activity.AvgHeartRate, activity.MaxHeartRate,
		activity.AvgPower, activity.Calories, activity.ElevationGain,
		activity.Filename, activity.FileType, activity.Downloaded,
		activity.ActivityID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *SQLiteDB) GetActivity(activityID string) (*Activity, error) {
	query := `SELECT ` + activityColumns + ` FROM activities WHERE activity_id = ?`

	a, err := scanActivity(s.db.QueryRow(query, activityID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

// RecentActivities returns the newest activities first, NULL start times last.
func (s *SQLiteDB) RecentActivities(limit int) ([]Activity, error) {
	query := `SELECT ` + activityColumns + `
	FROM activities
	ORDER BY start_time_gmt IS NULL, start_time_gmt DESC
	LIMIT ?`

	return s.queryActivities(query, limit)
}

func (s *SQLiteDB) ListActivities(limit, offset int) ([]Activity, error) {
	query := `SELECT ` + activityColumns + `
	FROM activities
	ORDER BY start_time_gmt IS NULL, start_time_gmt DESC
	LIMIT ? OFFSET ?`

	return s.queryActivities(query, limit, offset)
}

func (s *SQLiteDB) GetStats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow("SELECT COUNT(*) FROM activities").Scan(&stats.Total)
	if err != nil {
		return nil, err
	}

	err = s.db.QueryRow("SELECT COUNT(*) FROM activities WHERE downloaded = TRUE").Scan(&stats.Downloaded)
	if err != nil {
		return nil, err
	}

	stats.Missing = stats.Total - stats.Downloaded
	return stats, nil
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func (s *SQLiteDB) queryActivities(query string, args ...interface{}) ([]Activity, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var activities []Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *a)
	}

	return activities, rows.Err()
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanActivity(row scanner) (*Activity, error) {
	var (
		a             Activity
		name          sql.NullString
		startTimeGMT  sql.NullInt64
		distance      sql.NullFloat64
		duration      sql.NullFloat64
		activityType  sql.NullString
		avgHR, maxHR  sql.NullInt64
		avgPower      sql.NullInt64
		calories      sql.NullInt64
		elevationGain sql.NullFloat64
		filename      sql.NullString
		fileType      sql.NullString
	)

	// created_at and last_sync are DATETIME columns, so the driver hands
	// them over as time.Time already.
	err := row.Scan(
		&a.ActivityID, &name, &startTimeGMT, &distance, &duration,
		&activityType, &avgHR, &maxHR, &avgPower, &calories,
		&elevationGain, &filename, &fileType, &a.Downloaded,
		&a.CreatedAt, &a.LastSync,
	)
	if err != nil {
		return nil, err
	}

	if name.Valid {
		a.ActivityName = &name.String
	}
	if startTimeGMT.Valid {
		a.StartTimeGMT = &startTimeGMT.Int64
	}
	if distance.Valid {
		a.Distance = &distance.Float64
	}
	if duration.Valid {
		a.Duration = &duration.Float64
	}
	if activityType.Valid {
		a.ActivityType = &activityType.String
	}
	if avgHR.Valid {
		v := int(avgHR.Int64)
		a.AvgHeartRate = &v
	}
	if maxHR.Valid {
		v := int(maxHR.Int64)
		a.MaxHeartRate = &v
	}
	if avgPower.Valid {
		v := int(avgPower.Int64)
		a.AvgPower = &v
	}
	if calories.Valid {
		v := int(calories.Int64)
		a.Calories = &v
	}
	if elevationGain.Valid {
		a.ElevationGain = &elevationGain.Float64
	}
	if filename.Valid {
		a.Filename = &filename.String
	}
	if fileType.Valid {
		a.FileType = &fileType.String
	}

	return &a, nil
}
