package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type UpdateDoctorProfileRequest struct {
	FullName        string `json:"full_name" validate:"omitempty,min=2"`
	Specialization  string `json:"specialization" validate:"omitempty"`
	Biography       string `json:"biography" validate:"omitempty"`
	ConsultationFee string `json:"consultation_fee" validate:"omitempty"`
}

// Response DTOs

type DoctorProfileResponse struct {
	UserID          uuid.UUID `json:"user_id"`
	FullName        string    `json:"full_name,omitempty"`
	Email           string    `json:"email,omitempty"`
	LicenseNumber   string    `json:"license_number"`
	Specialization  string    `json:"specialization"`
	Biography       string    `json:"biography,omitempty"`
	ConsultationFee string    `json:"consultation_fee"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorProfileResponse `json:"doctors"`
	Total   int                     `json:"total"`
}

type DepartmentListResponse struct {
	Departments []string `json:"departments"`
}
