package entity

import (
	"testing"
	"time"
)

func TestAppointmentFilter_DayWindow(t *testing.T) {
	// A non-UTC midnight must come back unchanged: truncating it against the
	// UTC epoch would shift the window into the previous calendar day.
	loc := time.FixedZone("UTC+2", 2*60*60)
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, loc)
	f := &AppointmentFilter{Date: &day}

	start, end := f.DayWindow()
	if !start.Equal(day) {
		t.Fatalf("window start = %s, want %s", start, day)
	}
	if want := day.AddDate(0, 0, 1); !end.Equal(want) {
		t.Fatalf("window end = %s, want %s", end, want)
	}
}
