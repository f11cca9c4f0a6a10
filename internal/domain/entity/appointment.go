package entity

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus is the canonical appointment state. Older API clients send
// it either as a small integer (0-3) or as a capitalized string, so the JSON
// ingestion boundary accepts both; everything past this type works with the
// canonical value only.
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "Scheduled"
	StatusCompleted AppointmentStatus = "Completed"
	StatusCancelled AppointmentStatus = "Cancelled"
	StatusNoShow    AppointmentStatus = "NoShow"
)

var statusByCode = map[int]AppointmentStatus{
	0: StatusScheduled,
	1: StatusCompleted,
	2: StatusCancelled,
	3: StatusNoShow,
}

// ParseAppointmentStatus normalizes a wire value (numeric code or string,
// any casing) to the canonical status.
func ParseAppointmentStatus(raw string) (AppointmentStatus, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "0", "scheduled":
		return StatusScheduled, nil
	case "1", "completed":
		return StatusCompleted, nil
	case "2", "cancelled":
		return StatusCancelled, nil
	case "3", "noshow", "no-show", "no_show":
		return StatusNoShow, nil
	}
	return "", fmt.Errorf("unknown appointment status %q", raw)
}

func (s *AppointmentStatus) UnmarshalJSON(data []byte) error {
	var code int
	if err := json.Unmarshal(data, &code); err == nil {
		status, ok := statusByCode[code]
		if !ok {
			return fmt.Errorf("unknown appointment status code %d", code)
		}
		*s = status
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	status, err := ParseAppointmentStatus(raw)
	if err != nil {
		return err
	}
	*s = status
	return nil
}

// Appointment represents a scheduled consultation between a doctor and a
// patient. AppointmentDate is the single source of truth for the slot; the
// "h:mm AM/PM" display string is derived at the delivery layer, never stored.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	AppointmentDate time.Time         `gorm:"type:timestamptz;not null;index" json:"appointment_date"`
	Status          AppointmentStatus `gorm:"type:varchar(20);not null;default:'Scheduled';index" json:"status"`
	Reason          string            `gorm:"type:varchar(255);not null" json:"reason"`
	Notes           string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsScheduled checks if the appointment is still upcoming
func (a *Appointment) IsScheduled() bool {
	return a.Status == StatusScheduled
}

// CanReschedule reports whether the appointment may move to a new slot.
// Only Scheduled appointments may be rescheduled.
func (a *Appointment) CanReschedule() bool {
	return a.Status == StatusScheduled
}

// CanCancel reports whether the appointment may be cancelled.
func (a *Appointment) CanCancel() bool {
	return a.Status == StatusScheduled
}

// Complete marks the appointment as done
func (a *Appointment) Complete() {
	a.Status = StatusCompleted
}

// Cancel marks the appointment as cancelled
func (a *Appointment) Cancel() {
	a.Status = StatusCancelled
}

// MarkNoShow marks the appointment as missed by the patient
func (a *Appointment) MarkNoShow() {
	a.Status = StatusNoShow
}
