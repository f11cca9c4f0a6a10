package scheduling

import (
	"testing"
	"time"

	"hospital-management-server/config"
)

func testConfig() config.SchedulingConfig {
	return config.SchedulingConfig{
		DayStartHour:   9,
		DayEndHour:     17,
		SlotInterval:   30 * time.Minute,
		MinLeadTime:    time.Hour,
		HorizonDays:    30,
		CandidateCount: 14,
	}
}

// fixedClock pins "now" for deterministic lead-time behavior.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

var (
	// 2026-09-07 is a Monday.
	monday   = time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)
	saturday = time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC)
	sunday   = time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC)
)

func TestSlotsForDate_WeekendEmpty(t *testing.T) {
	r := NewResolverWithClock(testConfig(), fixedClock(monday))

	for _, day := range []time.Time{saturday, sunday} {
		if slots := r.SlotsForDate(day, nil); len(slots) != 0 {
			t.Fatalf("expected no slots on %s, got %d", day.Weekday(), len(slots))
		}
	}
}

func TestSlotsForDate_SaturdayEmptyRegardlessOfBookings(t *testing.T) {
	r := NewResolverWithClock(testConfig(), fixedClock(monday))

	slots := r.SlotsForDate(saturday, []string{"10:00 AM", "2:30 PM"})
	if len(slots) != 0 {
		t.Fatalf("expected no Saturday slots, got %d", len(slots))
	}
}

func TestSlotsForDate_FullWeekday(t *testing.T) {
	// "now" is the Monday before, so no lead-time trimming applies.
	r := NewResolverWithClock(testConfig(), fixedClock(monday))
	nextMonday := monday.AddDate(0, 0, 7)

	slots := r.SlotsForDate(nextMonday, nil)
	if len(slots) != 16 {
		t.Fatalf("expected 16 slots on an unbooked weekday, got %d", len(slots))
	}
	if slots[0].Display != "9:00 AM" {
		t.Fatalf("expected first slot 9:00 AM, got %s", slots[0].Display)
	}
	if slots[len(slots)-1].Display != "4:30 PM" {
		t.Fatalf("expected last slot 4:30 PM, got %s", slots[len(slots)-1].Display)
	}
	for i := 1; i < len(slots); i++ {
		if !slots[i].Start.After(slots[i-1].Start) {
			t.Fatalf("slots not in ascending order at index %d", i)
		}
	}
}

func TestSlotsForDate_ExcludesBookedTimes(t *testing.T) {
	r := NewResolverWithClock(testConfig(), fixedClock(monday))
	nextMonday := monday.AddDate(0, 0, 7)

	slots := r.SlotsForDate(nextMonday, []string{"10:00 AM"})
	if len(slots) != 15 {
		t.Fatalf("expected 15 slots with one booked, got %d", len(slots))
	}

	seen := map[string]bool{}
	for _, s := range slots {
		seen[s.Display] = true
	}
	if seen["10:00 AM"] {
		t.Fatal("booked 10:00 AM slot should be excluded")
	}
	if !seen["9:00 AM"] || !seen["10:30 AM"] {
		t.Fatal("neighbouring slots 9:00 AM and 10:30 AM should remain")
	}
}

func TestSlotsForDate_BookedMatchIsCaseInsensitive(t *testing.T) {
	r := NewResolverWithClock(testConfig(), fixedClock(monday))
	nextMonday := monday.AddDate(0, 0, 7)

	slots := r.SlotsForDate(nextMonday, []string{"10:00 am", " 2:30 PM "})
	for _, s := range slots {
		if s.Display == "10:00 AM" || s.Display == "2:30 PM" {
			t.Fatalf("booked slot %q not excluded", s.Display)
		}
	}
	if len(slots) != 14 {
		t.Fatalf("expected 14 slots, got %d", len(slots))
	}
}

func TestSlotsForDate_TodayAppliesLeadTime(t *testing.T) {
	now := monday.Add(10*time.Hour + 15*time.Minute) // Monday 10:15
	r := NewResolverWithClock(testConfig(), fixedClock(now))

	slots := r.SlotsForDate(monday, nil)
	if len(slots) == 0 {
		t.Fatal("expected afternoon slots on today")
	}

	earliest := now.Add(time.Hour)
	for _, s := range slots {
		if s.Start.Before(earliest) {
			t.Fatalf("slot %s violates the one hour lead time", s.Display)
		}
	}
	// 10:15 + 1h = 11:15, so the first surviving slot is 11:30.
	if slots[0].Display != "11:30 AM" {
		t.Fatalf("expected first slot 11:30 AM, got %s", slots[0].Display)
	}
}

func TestSlotsForDate_Idempotent(t *testing.T) {
	r := NewResolverWithClock(testConfig(), fixedClock(monday))
	nextMonday := monday.AddDate(0, 0, 7)
	booked := []string{"9:30 AM", "1:00 PM"}

	first := r.SlotsForDate(nextMonday, booked)
	second := r.SlotsForDate(nextMonday, booked)

	if len(first) != len(second) {
		t.Fatalf("slot counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Start.Equal(second[i].Start) || first[i].Display != second[i].Display {
			t.Fatalf("slot %d differs between runs", i)
		}
	}
}

func TestCandidateDates_StartTomorrowAndCount(t *testing.T) {
	r := NewResolverWithClock(testConfig(), fixedClock(monday))

	dates := r.CandidateDates(monday)
	if len(dates) != 14 {
		t.Fatalf("expected 14 candidate dates, got %d", len(dates))
	}
	if !dates[0].Equal(monday.AddDate(0, 0, 1)) {
		t.Fatalf("expected first candidate to be tomorrow, got %s", dates[0])
	}
	for i := 1; i < len(dates); i++ {
		if dates[i].Sub(dates[i-1]) != 24*time.Hour {
			t.Fatalf("candidate dates not consecutive at index %d", i)
		}
	}
}

func TestCandidateDates_IncludesWeekends(t *testing.T) {
	r := NewResolverWithClock(testConfig(), fixedClock(monday))

	sawWeekend := false
	for _, d := range r.CandidateDates(monday) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			sawWeekend = true
		}
	}
	if !sawWeekend {
		t.Fatal("weekend dates should appear among candidates; they are filtered at slot generation instead")
	}
}

func TestCandidateDates_HorizonCapsOutput(t *testing.T) {
	cfg := testConfig()
	cfg.HorizonDays = 5
	r := NewResolverWithClock(cfg, fixedClock(monday))

	if got := len(r.CandidateDates(monday)); got != 5 {
		t.Fatalf("expected horizon to cap candidates at 5, got %d", got)
	}
}

func TestIsBookable(t *testing.T) {
	now := monday.Add(8 * time.Hour) // Monday 08:00
	r := NewResolverWithClock(testConfig(), fixedClock(now))
	nextMonday := monday.AddDate(0, 0, 7)

	cases := []struct {
		name    string
		instant time.Time
		want    bool
	}{
		{"weekday slot", nextMonday.Add(10 * time.Hour), true},
		{"last slot of day", nextMonday.Add(16*time.Hour + 30*time.Minute), true},
		{"saturday", saturday.AddDate(0, 0, 7).Add(10 * time.Hour), false},
		{"before opening", nextMonday.Add(8 * time.Hour), false},
		{"at closing", nextMonday.Add(17 * time.Hour), false},
		{"off the slot grid", nextMonday.Add(10*time.Hour + 15*time.Minute), false},
		{"inside lead time today", monday.Add(8*time.Hour + 30*time.Minute), false},
		{"past", monday.AddDate(0, 0, -7).Add(10 * time.Hour), false},
	}

	for _, tc := range cases {
		if got := r.IsBookable(tc.instant); got != tc.want {
			t.Fatalf("%s: IsBookable(%s) = %v, want %v", tc.name, tc.instant, got, tc.want)
		}
	}
}

func TestParseDisplayTime(t *testing.T) {
	cases := []struct {
		in      string
		hour    int
		minute  int
		wantErr bool
	}{
		{"9:00 AM", 9, 0, false},
		{"10:30 am", 10, 30, false},
		{"12:00 PM", 12, 0, false},
		{"12:30 AM", 0, 30, false},
		{"4:30 PM", 16, 30, false},
		{"  2:00 pm ", 14, 0, false},
		{"13:00 PM", 0, 0, true},
		{"9:60 AM", 0, 0, true},
		{"0900", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tc := range cases {
		got, err := ParseDisplayTime(monday, tc.in)
		if tc.wantErr {
			if err == nil {
				t.Fatalf("ParseDisplayTime(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("ParseDisplayTime(%q): %v", tc.in, err)
		}
		if got.Hour() != tc.hour || got.Minute() != tc.minute {
			t.Fatalf("ParseDisplayTime(%q) = %02d:%02d, want %02d:%02d", tc.in, got.Hour(), got.Minute(), tc.hour, tc.minute)
		}
	}
}

func TestDisplayTimeRoundTrip(t *testing.T) {
	r := NewResolverWithClock(testConfig(), fixedClock(monday))
	nextMonday := monday.AddDate(0, 0, 7)

	for _, s := range r.SlotsForDate(nextMonday, nil) {
		parsed, err := ParseDisplayTime(nextMonday, s.Display)
		if err != nil {
			t.Fatalf("round trip parse of %q: %v", s.Display, err)
		}
		if !parsed.Equal(s.Start) {
			t.Fatalf("round trip mismatch for %q: %s != %s", s.Display, parsed, s.Start)
		}
	}
}
