package dashboard

import (
	"strings"
	"testing"
)

func TestRenderActivitiesFormatsRow(t *testing.T) {
	activities := []Activity{{
		ActivityID:   "1",
		ActivityName: "Run",
		StartTimeGMT: 1000000000,
		Distance:     5000,
		Duration:     1800,
	}}

	html, err := RenderActivities(activities)
	if err != nil {
		t.Fatalf("RenderActivities() failed: %v", err)
	}

	for _, want := range []string{
		"<table>",
		"<td>1</td>",
		"<td>Run</td>",
		"<td>5.00 km</td>",
		"<td>30.0 min</td>",
		"<td>2001-09-09 01:46:40</td>",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("rendered table missing %q:\n%s", want, html)
		}
	}
}

func TestRenderActivitiesMissingFields(t *testing.T) {
	html, err := RenderActivities([]Activity{{}})
	if err != nil {
		t.Fatalf("RenderActivities() failed: %v", err)
	}

	if got := strings.Count(html, "<td>N/A</td>"); got != 5 {
		t.Errorf("expected 5 N/A cells for an empty record, got %d:\n%s", got, html)
	}
}

func TestRenderActivitiesEmpty(t *testing.T) {
	for _, activities := range [][]Activity{nil, {}} {
		html, err := RenderActivities(activities)
		if err != nil {
			t.Fatalf("RenderActivities() failed: %v", err)
		}
		if !strings.Contains(html, "No activities found.") {
			t.Errorf("expected placeholder, got %q", html)
		}
		if strings.Contains(html, "<table>") {
			t.Errorf("expected no table element, got %q", html)
		}
	}
}

func TestRenderActivitiesEscapesHTML(t *testing.T) {
	html, err := RenderActivities([]Activity{{
		ActivityID:   "1",
		ActivityName: "<script>alert(1)</script>",
	}})
	if err != nil {
		t.Fatalf("RenderActivities() failed: %v", err)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("activity name was not escaped:\n%s", html)
	}
}
