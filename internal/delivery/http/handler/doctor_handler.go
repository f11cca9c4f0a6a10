package handler

import (
	"encoding/json"
	"net/http"

	"hospital-management-server/internal/delivery/dto"
	"hospital-management-server/internal/delivery/http/middleware"
	"hospital-management-server/internal/usecase"
	"hospital-management-server/pkg/response"
	"hospital-management-server/pkg/validator"

	"github.com/google/uuid"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

// List returns active doctors, optionally filtered by ?specialization=.
func (h *DoctorHandler) List(w http.ResponseWriter, r *http.Request) {
	doctors, err := h.doctorUsecase.List(r.Context(), r.URL.Query().Get("specialization"))
	if err != nil {
		response.InternalServerError(w, "Failed to list doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := pathID(w, r, "id", "Invalid doctor ID")
	if !ok {
		return
	}

	doctor, err := h.doctorUsecase.GetByID(r.Context(), doctorID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// ListDepartments exposes the distinct specializations of active doctors.
func (h *DoctorHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.doctorUsecase.ListDepartments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list departments")
		return
	}

	response.Success(w, http.StatusOK, "Departments retrieved successfully", departments)
}

// UpdateOwnProfile lets a doctor edit their own profile.
func (h *DoctorHandler) UpdateOwnProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}
	roleID, _ := middleware.GetRoleIDFromContext(r.Context())

	h.update(w, r, userID, roleID, userID)
}

// UpdateByID lets an admin edit any doctor's profile.
func (h *DoctorHandler) UpdateByID(w http.ResponseWriter, r *http.Request) {
	actorID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	doctorID, ok := pathID(w, r, "id", "Invalid doctor ID")
	if !ok {
		return
	}

	h.update(w, r, actorID, roleID, doctorID)
}

func (h *DoctorHandler) update(w http.ResponseWriter, r *http.Request, actorID uuid.UUID, roleID int, doctorID uuid.UUID) {
	var req dto.UpdateDoctorProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.doctorUsecase.UpdateProfile(r.Context(), actorID, roleID, doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrProfileNotOwned:
			response.Forbidden(w, "Profile does not belong to you")
		case usecase.ErrInvalidFee:
			response.BadRequest(w, "Invalid consultation fee")
		default:
			response.InternalServerError(w, "Failed to update doctor profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor profile updated successfully", doctor)
}

// Deactivate soft-deletes a doctor account (admin only).
func (h *DoctorHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	adminID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	doctorID, ok := pathID(w, r, "id", "Invalid doctor ID")
	if !ok {
		return
	}

	if err := h.doctorUsecase.Deactivate(r.Context(), adminID, doctorID); err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrDoctorAlreadyInactive:
			response.Conflict(w, "Doctor is already deactivated")
		default:
			response.InternalServerError(w, "Failed to deactivate doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor deactivated successfully", nil)
}
