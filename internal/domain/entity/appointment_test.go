package entity

import (
	"encoding/json"
	"testing"
)

func TestAppointmentStatus_UnmarshalNumericCodes(t *testing.T) {
	cases := []struct {
		in   string
		want AppointmentStatus
	}{
		{"0", StatusScheduled},
		{"1", StatusCompleted},
		{"2", StatusCancelled},
		{"3", StatusNoShow},
	}

	for _, tc := range cases {
		var got AppointmentStatus
		if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("unmarshal %s = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestAppointmentStatus_UnmarshalStrings(t *testing.T) {
	cases := []struct {
		in   string
		want AppointmentStatus
	}{
		{`"Scheduled"`, StatusScheduled},
		{`"scheduled"`, StatusScheduled},
		{`"COMPLETED"`, StatusCompleted},
		{`"Cancelled"`, StatusCancelled},
		{`"NoShow"`, StatusNoShow},
		{`"no-show"`, StatusNoShow},
		{`"no_show"`, StatusNoShow},
	}

	for _, tc := range cases {
		var got AppointmentStatus
		if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
			t.Fatalf("unmarshal %s: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("unmarshal %s = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestAppointmentStatus_UnmarshalRejectsUnknown(t *testing.T) {
	for _, in := range []string{`"Pending"`, `7`, `"-1"`, `true`} {
		var got AppointmentStatus
		if err := json.Unmarshal([]byte(in), &got); err == nil {
			t.Fatalf("unmarshal %s: expected error, got %q", in, got)
		}
	}
}

func TestAppointmentStatus_MarshalCanonical(t *testing.T) {
	b, err := json.Marshal(StatusScheduled)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `"Scheduled"` {
		t.Fatalf("marshal = %s, want \"Scheduled\"", b)
	}
}

func TestAppointment_Transitions(t *testing.T) {
	a := &Appointment{Status: StatusScheduled}

	if !a.CanReschedule() || !a.CanCancel() {
		t.Fatal("scheduled appointment should allow reschedule and cancel")
	}

	a.Complete()
	if a.Status != StatusCompleted {
		t.Fatalf("status = %s after Complete", a.Status)
	}
	if a.CanReschedule() || a.CanCancel() {
		t.Fatal("completed appointment must not allow reschedule or cancel")
	}

	b := &Appointment{Status: StatusScheduled}
	b.Cancel()
	if b.CanReschedule() {
		t.Fatal("cancelled appointment must not allow reschedule")
	}
}
