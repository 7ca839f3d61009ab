// internal/dashboard/render.go
package dashboard

import (
	"fmt"
	"html/template"
	"strings"
	"time"
)

const notAvailable = "N/A"

// Placeholder shown instead of a table when there is nothing to render.
const noActivitiesHTML = `<p class="empty">No activities found.</p>`

var tableTemplate = template.Must(template.New("activities").Parse(`<table>
<tr><th>ID</th><th>Name</th><th>Start Time (GMT)</th><th>Distance (m)</th><th>Duration (s)</th></tr>
{{range .}}<tr><td>{{.ID}}</td><td>{{.Name}}</td><td>{{.StartTime}}</td><td>{{.Distance}}</td><td>{{.Duration}}</td></tr>
{{end}}</table>`))

type tableRow struct {
	ID        string
	Name      string
	StartTime string
	Distance  string
	Duration  string
}

// RenderActivities produces the activities table as HTML, one row per
// activity, or the placeholder when the slice is empty.
func RenderActivities(activities []Activity) (string, error) {
	if len(activities) == 0 {
		return noActivitiesHTML, nil
	}

	rows := make([]tableRow, 0, len(activities))
	for _, a := range activities {
		rows = append(rows, tableRow{
			ID:        textOrNA(a.ActivityID),
			Name:      textOrNA(a.ActivityName),
			StartTime: formatStartTime(a.StartTimeGMT),
			Distance:  formatDistance(a.Distance),
			Duration:  formatDuration(a.Duration),
		})
	}

	var sb strings.Builder
	if err := tableTemplate.Execute(&sb, rows); err != nil {
		return "", fmt.Errorf("failed to render activities table: %w", err)
	}
	return sb.String(), nil
}

func textOrNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

func formatDistance(meters float64) string {
	if meters == 0 {
		return notAvailable
	}
	return fmt.Sprintf("%.2f km", meters/1000)
}

func formatDuration(seconds float64) string {
	if seconds == 0 {
		return notAvailable
	}
	return fmt.Sprintf("%.1f min", seconds/60)
}

func formatStartTime(unixSeconds int64) string {
	if unixSeconds == 0 {
		return notAvailable
	}
	return time.Unix(unixSeconds, 0).UTC().Format("2006-01-02 15:04:05")
}
