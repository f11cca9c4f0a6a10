package entity

import (
	"time"

	"github.com/google/uuid"
)

// MedicalRecordType classifies a record entry
type MedicalRecordType string

const (
	RecordTypeConsultation     MedicalRecordType = "ConsultationNote"
	RecordTypeLabResult        MedicalRecordType = "LabResult"
	RecordTypePrescription     MedicalRecordType = "Prescription"
	RecordTypeImagingReport    MedicalRecordType = "ImagingReport"
	RecordTypeVaccination      MedicalRecordType = "VaccinationRecord"
	RecordTypeAllergy          MedicalRecordType = "AllergyRecord"
	RecordTypeDischargeSummary MedicalRecordType = "DischargeSummary"
)

// MedicalRecord represents an entry in a patient's medical history,
// authored by a doctor.
type MedicalRecord struct {
	ID         uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID  uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	RecordType MedicalRecordType `gorm:"type:varchar(50);not null" json:"record_type"`
	RecordDate time.Time         `gorm:"type:date;not null;index" json:"record_date"`
	Title      string            `gorm:"type:varchar(255);not null" json:"title"`
	Summary    string            `gorm:"type:text" json:"summary,omitempty"`
	Details    string            `gorm:"type:text" json:"details,omitempty"`
	CreatedAt  time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile  `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (MedicalRecord) TableName() string {
	return "medical_records"
}
