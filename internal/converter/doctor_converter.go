package converter

import (
	"hospital-management-server/internal/delivery/dto"
	"hospital-management-server/internal/domain/entity"

	"github.com/google/uuid"
)

// DoctorProfileToResponse converts a DoctorProfile entity to response DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorProfileResponse {
	if profile == nil {
		return nil
	}

	response := &dto.DoctorProfileResponse{
		UserID:          profile.UserID,
		LicenseNumber:   profile.LicenseNumber,
		Specialization:  profile.Specialization,
		Biography:       profile.Biography,
		ConsultationFee: profile.ConsultationFee.StringFixed(2),
		CreatedAt:       profile.CreatedAt,
		UpdatedAt:       profile.UpdatedAt,
	}

	if profile.User.ID != uuid.Nil {
		response.FullName = profile.User.FullName
		response.Email = profile.User.Email
	}

	return response
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities to response DTOs
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorProfileResponse {
	responses := make([]dto.DoctorProfileResponse, len(profiles))
	for i, profile := range profiles {
		resp := DoctorProfileToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
