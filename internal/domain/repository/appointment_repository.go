package repository

import (
	"time"

	"hospital-management-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error)
	// FindScheduledTimes returns the AppointmentDate of every Scheduled
	// appointment the doctor has within [dayStart, dayEnd).
	FindScheduledTimes(db *gorm.DB, doctorID uuid.UUID, dayStart, dayEnd time.Time) ([]time.Time, error)
	// CountConflicting counts Scheduled appointments for the doctor at the
	// exact instant, excluding excludeID (uuid.Nil to exclude nothing).
	CountConflicting(db *gorm.DB, doctorID uuid.UUID, at time.Time, excludeID uuid.UUID) (int64, error)
	UpdateSlot(db *gorm.DB, id uuid.UUID, newDate time.Time) error
	// UpdateStatusIfScheduled atomically transitions a Scheduled appointment
	// to the given status. Returns affected rows: 0 means the appointment was
	// no longer Scheduled (prevents double-cancel and similar races).
	UpdateStatusIfScheduled(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error)
	// CompletePast flips Scheduled appointments whose date is before cutoff to
	// Completed, returning the number of rows affected.
	CompletePast(db *gorm.DB, cutoff time.Time) (int64, error)
}
