package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentFilter is a domain-level filter for querying appointments.
// Used by repository layer to avoid coupling with delivery DTOs.
type AppointmentFilter struct {
	DoctorID  *uuid.UUID
	PatientID *uuid.UUID
	Date      *time.Time // midnight in the request's location; matches the calendar day
	Status    AppointmentStatus
}

// DayWindow returns the [start, end) bounds of the filter's calendar day.
// Date is used as-is: it is already midnight in the request's location, so no
// truncation happens here.
func (f *AppointmentFilter) DayWindow() (start, end time.Time) {
	return *f.Date, f.Date.AddDate(0, 0, 1)
}
