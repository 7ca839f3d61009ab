package sync

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"

	"garmin-dashboard/internal/database"
	"garmin-dashboard/internal/garmin"
	"garmin-dashboard/internal/parser"
)

const garminTimeLayout = "2006-01-02 15:04:05"

// Service pulls activity summaries from Garmin into the store and enriches
// them with metrics parsed from the downloaded activity files.
type Service struct {
	garminClient *garmin.Client
	db           *database.SQLiteDB
	dataDir      string
	pageSize     int
	format       string // download format: fit or gpx
}

func NewService(garminClient *garmin.Client, db *database.SQLiteDB, dataDir string, pageSize int, format string) *Service {
	return &Service{
		garminClient: garminClient,
		db:           db,
		dataDir:      dataDir,
		pageSize:     pageSize,
		format:       format,
	}
}

// LoginAndSync authenticates with the supplied credentials, runs one sync
// pass, and drops the session token afterwards no matter how the run ended.
// The credentials themselves are never stored anywhere.
func (s *Service) LoginAndSync(ctx context.Context, username, password string) error {
	if err := s.garminClient.Login(ctx, username, password); err != nil {
		return fmt.Errorf("garmin login failed: %w", err)
	}
	defer s.garminClient.Logout()

	return s.Sync(ctx)
}

// Sync fetches the latest activity page and upserts every record. Activities
// without a downloaded file get their raw file pulled, saved under the data
// directory and parsed for metrics. A failure on one activity is logged and
// does not abort the run.
func (s *Service) Sync(ctx context.Context) error {
	runID := uuid.NewString()
	startedAt := time.Now()
	log.Printf("sync %s: starting", runID)
	defer func() {
		log.Printf("sync %s: completed in %s", runID, time.Since(startedAt))
	}()

	activities, err := s.garminClient.FetchActivities(ctx, 0, s.pageSize)
	if err != nil {
		return fmt.Errorf("failed to fetch activities: %w", err)
	}
	log.Printf("sync %s: %d activities on Garmin", runID, len(activities))

	for i := range activities {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		activity := &activities[i]
		if err := s.syncActivity(ctx, activity); err != nil {
			log.Printf("sync %s: activity %d: %v", runID, activity.ActivityID, err)
		}
	}

	return nil
}

func (s *Service) syncActivity(ctx context.Context, src *garmin.Activity) error {
	record := toRecord(src)

	existing, err := s.db.GetActivity(record.ActivityID)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		return err
	}
	if existing != nil && existing.Downloaded {
		// Summary refresh only; the file and its metrics are already here.
		return s.db.UpsertActivity(record)
	}

	if err := s.db.UpsertActivity(record); err != nil {
		return fmt.Errorf("failed to upsert activity: %w", err)
	}

	fileData, err := s.garminClient.DownloadActivity(ctx, src.ActivityID, s.format)
	if err != nil {
		return fmt.Errorf("failed to download activity: %w", err)
	}

	filename := filepath.Join(s.dataDir, "activities",
		fmt.Sprintf("%d.%s", src.ActivityID, s.format))
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(filename, fileData, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	metrics, err := parser.ParseData(fileData)
	if err != nil {
		return fmt.Errorf("failed to parse activity file: %w", err)
	}

	if metrics.Duration > 0 {
		d := metrics.Duration.Seconds()
		record.Duration = &d
	}
	if metrics.Distance > 0 {
		record.Distance = &metrics.Distance
	}
	if metrics.AvgHeartRate > 0 {
		record.AvgHeartRate = &metrics.AvgHeartRate
	}
	if metrics.MaxHeartRate > 0 {
		record.MaxHeartRate = &metrics.MaxHeartRate
	}
	if metrics.AvgPower > 0 {
		record.AvgPower = &metrics.AvgPower
	}
	if metrics.Calories > 0 {
		record.Calories = &metrics.Calories
	}
	if metrics.ElevationGain > 0 {
		record.ElevationGain = &metrics.ElevationGain
	}
	if record.ActivityType == nil && metrics.ActivityType != "" {
		record.ActivityType = &metrics.ActivityType
	}

	record.Filename = &filename
	fileType := s.format
	record.FileType = &fileType
	record.Downloaded = true

	if err := s.db.UpdateActivity(record); err != nil {
		return fmt.Errorf("failed to update activity: %w", err)
	}

	return nil
}

// toRecord maps a gateway summary onto a store row. Zero and empty values
// from the gateway become NULLs so the rendering layer can tell "absent"
// apart from a real measurement.
func toRecord(src *garmin.Activity) *database.Activity {
	record := &database.Activity{
		ActivityID: strconv.FormatInt(src.ActivityID, 10),
	}

	if src.ActivityName != "" {
		name := src.ActivityName
		record.ActivityName = &name
	}
	if t, err := time.Parse(garminTimeLayout, src.StartTimeGMT); err == nil {
		unix := t.UTC().Unix()
		record.StartTimeGMT = &unix
	}
	if src.Distance > 0 {
		d := src.Distance
		record.Distance = &d
	}
	if src.Duration > 0 {
		d := src.Duration
		record.Duration = &d
	}
	if typeKey, ok := src.ActivityType["typeKey"].(string); ok && typeKey != "" {
		record.ActivityType = &typeKey
	}

	return record
}
