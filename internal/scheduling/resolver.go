package scheduling

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"hospital-management-server/config"
)

var ErrInvalidDisplayTime = errors.New("invalid time format, use h:mm AM/PM")

// displayTimePattern matches the wire format used by the SPA, e.g. "9:00 AM" or "10:30 pm".
var displayTimePattern = regexp.MustCompile(`^(1[0-2]|[1-9]):([0-5][0-9])\s*([AaPp][Mm])$`)

// Slot is a bookable start time on a single date. Slots are ephemeral values
// produced by the resolver; they are never persisted.
type Slot struct {
	Start   time.Time
	Display string
}

// Resolver computes candidate booking dates and bookable time slots for a
// doctor's working day. All decisions are pure functions of the configuration,
// the injected clock, and the set of already-booked display times, so the
// resolver can be exercised without a database.
type Resolver struct {
	cfg config.SchedulingConfig
	now func() time.Time
}

func NewResolver(cfg config.SchedulingConfig) *Resolver {
	return &Resolver{cfg: cfg, now: time.Now}
}

// NewResolverWithClock is used by tests to pin "now".
func NewResolverWithClock(cfg config.SchedulingConfig, now func() time.Time) *Resolver {
	return &Resolver{cfg: cfg, now: now}
}

// CandidateDates returns the ordered dates a patient may pick from, starting
// the day after today. Generation stops once CandidateCount dates have been
// collected or HorizonDays days have been scanned, whichever comes first.
// Weekends are included here; they resolve to zero slots at slot-generation
// time instead of being filtered out of the date list.
func (r *Resolver) CandidateDates(today time.Time) []time.Time {
	day := midnight(today)

	dates := make([]time.Time, 0, r.cfg.CandidateCount)
	for offset := 1; offset <= r.cfg.HorizonDays && len(dates) < r.cfg.CandidateCount; offset++ {
		dates = append(dates, day.AddDate(0, 0, offset))
	}
	return dates
}

// SlotsForDate returns the bookable slots on date, in ascending order.
//
// A slot survives when all of the following hold:
//   - date is a weekday (Saturday and Sunday yield no slots at all)
//   - the slot starts within working hours [DayStartHour, DayEndHour)
//   - if date is today, the slot starts no earlier than now + MinLeadTime
//   - the slot's display time does not appear in bookedDisplayTimes
//     (matched case-insensitively)
func (r *Resolver) SlotsForDate(date time.Time, bookedDisplayTimes []string) []Slot {
	day := midnight(date)

	switch day.Weekday() {
	case time.Saturday, time.Sunday:
		return nil
	}

	booked := make(map[string]struct{}, len(bookedDisplayTimes))
	for _, t := range bookedDisplayTimes {
		booked[normalizeDisplayTime(t)] = struct{}{}
	}

	now := r.now()
	sameDay := midnight(now).Equal(day)
	earliest := now.Add(r.cfg.MinLeadTime)

	start := day.Add(time.Duration(r.cfg.DayStartHour) * time.Hour)
	end := day.Add(time.Duration(r.cfg.DayEndHour) * time.Hour)

	var slots []Slot
	for t := start; t.Before(end); t = t.Add(r.cfg.SlotInterval) {
		if sameDay && t.Before(earliest) {
			continue
		}
		display := FormatDisplayTime(t)
		if _, taken := booked[normalizeDisplayTime(display)]; taken {
			continue
		}
		slots = append(slots, Slot{Start: t, Display: display})
	}
	return slots
}

// IsBookable reports whether instant is a legal slot start irrespective of
// existing bookings: weekday, aligned to the slot grid, inside working hours,
// and not before now + MinLeadTime.
func (r *Resolver) IsBookable(instant time.Time) bool {
	switch instant.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}

	day := midnight(instant)
	start := day.Add(time.Duration(r.cfg.DayStartHour) * time.Hour)
	end := day.Add(time.Duration(r.cfg.DayEndHour) * time.Hour)
	if instant.Before(start) || !instant.Before(end) {
		return false
	}
	if instant.Sub(start)%r.cfg.SlotInterval != 0 {
		return false
	}
	return !instant.Before(r.now().Add(r.cfg.MinLeadTime))
}

// FormatDisplayTime renders a slot start the way the SPA shows it: "h:mm AM".
func FormatDisplayTime(t time.Time) string {
	return t.Format("3:04 PM")
}

// ParseDisplayTime combines a calendar date with an "h:mm AM/PM" string into a
// concrete instant in date's location. The format is validated by regex before
// any arithmetic, matching the submission-time validation the SPA performed.
func ParseDisplayTime(date time.Time, display string) (time.Time, error) {
	m := displayTimePattern.FindStringSubmatch(strings.TrimSpace(display))
	if m == nil {
		return time.Time{}, ErrInvalidDisplayTime
	}

	hour, _ := strconv.Atoi(m[1])
	minute, _ := strconv.Atoi(m[2])
	meridiem := strings.ToUpper(m[3])

	if meridiem == "PM" && hour != 12 {
		hour += 12
	}
	if meridiem == "AM" && hour == 12 {
		hour = 0
	}

	day := midnight(date)
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute), nil
}

func normalizeDisplayTime(s string) string {
	return strings.ToUpper(strings.Join(strings.Fields(s), " "))
}

func midnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}
