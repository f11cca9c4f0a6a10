package repository

import (
	"errors"
	"time"

	"hospital-management-server/internal/domain/entity"
	domainRepo "hospital-management-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor.User").Preload("Patient.User").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(db *gorm.DB, filter *entity.AppointmentFilter) ([]entity.Appointment, error) {
	query := db.Preload("Doctor.User").Preload("Patient.User")

	if filter != nil {
		if filter.DoctorID != nil {
			query = query.Where("doctor_id = ?", *filter.DoctorID)
		}
		if filter.PatientID != nil {
			query = query.Where("patient_id = ?", *filter.PatientID)
		}
		if filter.Date != nil {
			dayStart, dayEnd := filter.DayWindow()
			query = query.Where("appointment_date >= ? AND appointment_date < ?", dayStart, dayEnd)
		}
		if filter.Status != "" {
			query = query.Where("status = ?", filter.Status)
		}
	}

	var appointments []entity.Appointment
	err := query.Order("appointment_date ASC").Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

// FindScheduledTimes feeds the availability resolver: only the doctor's own
// Scheduled appointments block a slot, keyed by (doctor, date, time).
func (r *appointmentRepository) FindScheduledTimes(db *gorm.DB, doctorID uuid.UUID, dayStart, dayEnd time.Time) ([]time.Time, error) {
	var times []time.Time
	err := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND status = ? AND appointment_date >= ? AND appointment_date < ?",
			doctorID, entity.StatusScheduled, dayStart, dayEnd).
		Order("appointment_date ASC").
		Pluck("appointment_date", &times).Error
	if err != nil {
		return nil, err
	}
	return times, nil
}

func (r *appointmentRepository) CountConflicting(db *gorm.DB, doctorID uuid.UUID, at time.Time, excludeID uuid.UUID) (int64, error) {
	query := db.Model(&entity.Appointment{}).
		Where("doctor_id = ? AND appointment_date = ? AND status = ?", doctorID, at, entity.StatusScheduled)
	if excludeID != uuid.Nil {
		query = query.Where("id != ?", excludeID)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *appointmentRepository) UpdateSlot(db *gorm.DB, id uuid.UUID, newDate time.Time) error {
	return db.Model(&entity.Appointment{}).
		Where("id = ?", id).
		Update("appointment_date", newDate).Error
}

// UpdateStatusIfScheduled atomically transitions a Scheduled appointment.
// Returns affected rows: 1 = success, 0 = appointment no longer Scheduled.
func (r *appointmentRepository) UpdateStatusIfScheduled(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("id = ? AND status = ?", id, entity.StatusScheduled).
		Update("status", status)
	return result.RowsAffected, result.Error
}

func (r *appointmentRepository) CompletePast(db *gorm.DB, cutoff time.Time) (int64, error) {
	result := db.Model(&entity.Appointment{}).
		Where("status = ? AND appointment_date < ?", entity.StatusScheduled, cutoff).
		Update("status", entity.StatusCompleted)
	return result.RowsAffected, result.Error
}
