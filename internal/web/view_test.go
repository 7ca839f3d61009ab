package web

import "testing"

func f64(v float64) *float64 { return &v }
func i64(v int64) *int64     { return &v }

func TestFormatDistance(t *testing.T) {
	if got := FormatDistance(f64(5000)); got != "5.00 km" {
		t.Errorf("FormatDistance(5000) = %q", got)
	}
	if got := FormatDistance(f64(12345)); got != "12.35 km" {
		t.Errorf("FormatDistance(12345) = %q", got)
	}
	if got := FormatDistance(nil); got != "N/A" {
		t.Errorf("FormatDistance(nil) = %q", got)
	}
	if got := FormatDistance(f64(0)); got != "N/A" {
		t.Errorf("FormatDistance(0) = %q", got)
	}
}

func TestFormatDuration(t *testing.T) {
	if got := FormatDuration(f64(1800)); got != "30.0 min" {
		t.Errorf("FormatDuration(1800) = %q", got)
	}
	if got := FormatDuration(f64(90)); got != "1.5 min" {
		t.Errorf("FormatDuration(90) = %q", got)
	}
	if got := FormatDuration(nil); got != "N/A" {
		t.Errorf("FormatDuration(nil) = %q", got)
	}
}

func TestFormatStartTime(t *testing.T) {
	if got := FormatStartTime(i64(1000000000)); got != "2001-09-09 01:46:40" {
		t.Errorf("FormatStartTime(1000000000) = %q", got)
	}
	if got := FormatStartTime(nil); got != "N/A" {
		t.Errorf("FormatStartTime(nil) = %q", got)
	}
	if got := FormatStartTime(i64(0)); got != "N/A" {
		t.Errorf("FormatStartTime(0) = %q", got)
	}
}

func TestOrNA(t *testing.T) {
	name := "Run"
	if got := OrNA(&name); got != "Run" {
		t.Errorf("OrNA(Run) = %q", got)
	}
	empty := ""
	if got := OrNA(&empty); got != "N/A" {
		t.Errorf("OrNA(empty) = %q", got)
	}
	if got := OrNA(nil); got != "N/A" {
		t.Errorf("OrNA(nil) = %q", got)
	}
}
