package converter

import (
	"hospital-management-server/internal/delivery/dto"
	"hospital-management-server/internal/domain/entity"

	"github.com/google/uuid"
)

// MedicalRecordToResponse converts a MedicalRecord entity to response DTO
func MedicalRecordToResponse(record *entity.MedicalRecord) *dto.MedicalRecordResponse {
	if record == nil {
		return nil
	}

	response := &dto.MedicalRecordResponse{
		ID:         record.ID,
		PatientID:  record.PatientID,
		DoctorID:   record.DoctorID,
		RecordType: string(record.RecordType),
		RecordDate: record.RecordDate.Format("2006-01-02"),
		Title:      record.Title,
		Summary:    record.Summary,
		Details:    record.Details,
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}

	if record.Patient.UserID != uuid.Nil {
		response.PatientName = record.Patient.User.FullName
	}
	if record.Doctor.UserID != uuid.Nil {
		response.DoctorName = record.Doctor.User.FullName
	}

	return response
}

// MedicalRecordsToResponses converts a slice of MedicalRecord entities to response DTOs
func MedicalRecordsToResponses(records []entity.MedicalRecord) []dto.MedicalRecordResponse {
	responses := make([]dto.MedicalRecordResponse, len(records))
	for i, record := range records {
		resp := MedicalRecordToResponse(&record)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
