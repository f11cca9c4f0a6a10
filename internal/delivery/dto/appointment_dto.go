package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BookAppointmentRequest struct {
	DoctorID uuid.UUID `json:"doctor_id" validate:"required"`
	Date     string    `json:"date" validate:"required,datetime=2006-01-02"`
	Time     string    `json:"time" validate:"required"`
	Reason   string    `json:"reason" validate:"omitempty,max=500"`
}

type RescheduleAppointmentRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Time string `json:"time" validate:"required"`
}

// CheckAvailabilityRequest optionally carries the appointment being
// rescheduled, so its own slot does not count as a conflict.
type CheckAvailabilityRequest struct {
	DoctorID      uuid.UUID `json:"doctor_id" validate:"required"`
	Date          string    `json:"date" validate:"required,datetime=2006-01-02"`
	Time          string    `json:"time" validate:"required"`
	AppointmentID uuid.UUID `json:"appointment_id" validate:"omitempty"`
}

// ListAppointmentsQuery is bound from query parameters, not a JSON body.
type ListAppointmentsQuery struct {
	DoctorID string
	Date     string
	Status   string
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	DoctorID        uuid.UUID `json:"doctor_id"`
	PatientID       uuid.UUID `json:"patient_id"`
	DoctorName      string    `json:"doctor_name,omitempty"`
	PatientName     string    `json:"patient_name,omitempty"`
	Specialization  string    `json:"specialization,omitempty"`
	AppointmentDate time.Time `json:"appointment_date"`
	DisplayTime     string    `json:"display_time"`
	Status          string    `json:"status"`
	Reason          string    `json:"reason,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type CheckAvailabilityResponse struct {
	IsAvailable bool   `json:"is_available"`
	Message     string `json:"message"`
}

type SlotResponse struct {
	Time        time.Time `json:"time"`
	DisplayTime string    `json:"display_time"`
}

type AvailableSlotsResponse struct {
	DoctorID uuid.UUID      `json:"doctor_id"`
	Date     string         `json:"date"`
	Slots    []SlotResponse `json:"slots"`
}

type CandidateDatesResponse struct {
	Dates []string `json:"dates"`
}
