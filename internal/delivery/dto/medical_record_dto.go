package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateMedicalRecordRequest struct {
	PatientID  uuid.UUID `json:"patient_id" validate:"required"`
	RecordType string    `json:"record_type" validate:"required,oneof=consultation_note lab_result prescription imaging_report vaccination_record allergy_record discharge_summary"`
	RecordDate string    `json:"record_date" validate:"required,datetime=2006-01-02"`
	Title      string    `json:"title" validate:"required,min=2,max=200"`
	Summary    string    `json:"summary" validate:"omitempty,max=1000"`
	Details    string    `json:"details" validate:"omitempty"`
}

type UpdateMedicalRecordRequest struct {
	Title   string `json:"title" validate:"omitempty,min=2,max=200"`
	Summary string `json:"summary" validate:"omitempty,max=1000"`
	Details string `json:"details" validate:"omitempty"`
}

// Response DTOs

type MedicalRecordResponse struct {
	ID          uuid.UUID `json:"id"`
	PatientID   uuid.UUID `json:"patient_id"`
	DoctorID    uuid.UUID `json:"doctor_id"`
	PatientName string    `json:"patient_name,omitempty"`
	DoctorName  string    `json:"doctor_name,omitempty"`
	RecordType  string    `json:"record_type"`
	RecordDate  string    `json:"record_date"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary,omitempty"`
	Details     string    `json:"details,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type MedicalRecordListResponse struct {
	Records []MedicalRecordResponse `json:"records"`
	Total   int                     `json:"total"`
}
