package converter

import (
	"testing"
	"time"

	"hospital-management-server/internal/domain/entity"
	"hospital-management-server/internal/scheduling"

	"github.com/google/uuid"
)

func TestAppointmentToResponse_DerivesDisplayTime(t *testing.T) {
	slot := time.Date(2026, 9, 7, 14, 30, 0, 0, time.Local)
	a := &entity.Appointment{
		ID:              uuid.New(),
		DoctorID:        uuid.New(),
		PatientID:       uuid.New(),
		AppointmentDate: slot,
		Status:          entity.StatusScheduled,
	}

	resp := AppointmentToResponse(a)
	if resp.DisplayTime != "2:30 PM" {
		t.Fatalf("display time = %q, want \"2:30 PM\"", resp.DisplayTime)
	}
	if !resp.AppointmentDate.Equal(slot) {
		t.Fatalf("appointment date = %s, want %s", resp.AppointmentDate, slot)
	}
}

// The database session returns timestamps in UTC while the resolver renders
// local wall-clock times. The same instant must display identically whichever
// zone its time.Time carries.
func TestAppointmentToResponse_DisplayTimeIndependentOfZone(t *testing.T) {
	instant := time.Date(2026, 9, 7, 14, 30, 0, 0, time.Local)

	zones := []*time.Location{time.UTC, time.FixedZone("UTC+5", 5*60*60)}
	for _, zone := range zones {
		a := &entity.Appointment{AppointmentDate: instant.In(zone)}
		if got := AppointmentToResponse(a).DisplayTime; got != "2:30 PM" {
			t.Fatalf("display time in %s = %q, want \"2:30 PM\"", zone, got)
		}
	}
}

func TestAppointmentToResponse_NamesOnlyWhenPreloaded(t *testing.T) {
	a := &entity.Appointment{
		ID:              uuid.New(),
		DoctorID:        uuid.New(),
		PatientID:       uuid.New(),
		AppointmentDate: time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC),
	}

	resp := AppointmentToResponse(a)
	if resp.DoctorName != "" || resp.PatientName != "" {
		t.Fatal("expected empty names without preloaded relations")
	}

	a.Doctor = entity.DoctorProfile{
		UserID:         a.DoctorID,
		Specialization: "Cardiology",
		User:           entity.User{FullName: "Dr. Reed"},
	}
	a.Patient = entity.PatientProfile{
		UserID: a.PatientID,
		User:   entity.User{FullName: "Pat Jones"},
	}

	resp = AppointmentToResponse(a)
	if resp.DoctorName != "Dr. Reed" {
		t.Fatalf("doctor name = %q", resp.DoctorName)
	}
	if resp.Specialization != "Cardiology" {
		t.Fatalf("specialization = %q", resp.Specialization)
	}
	if resp.PatientName != "Pat Jones" {
		t.Fatalf("patient name = %q", resp.PatientName)
	}
}

func TestAppointmentToResponse_Nil(t *testing.T) {
	if resp := AppointmentToResponse(nil); resp != nil {
		t.Fatal("expected nil response for nil appointment")
	}
}

func TestSlotsToResponses(t *testing.T) {
	start := time.Date(2026, 9, 7, 9, 0, 0, 0, time.UTC)
	slots := []scheduling.Slot{
		{Start: start, Display: "9:00 AM"},
		{Start: start.Add(30 * time.Minute), Display: "9:30 AM"},
	}

	resp := SlotsToResponses(slots)
	if len(resp) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(resp))
	}
	if resp[0].DisplayTime != "9:00 AM" || !resp[0].Time.Equal(start) {
		t.Fatalf("first slot = %+v", resp[0])
	}
	if resp[1].DisplayTime != "9:30 AM" {
		t.Fatalf("second slot display = %q", resp[1].DisplayTime)
	}
}
