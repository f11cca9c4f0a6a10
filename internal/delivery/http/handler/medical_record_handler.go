package handler

import (
	"encoding/json"
	"net/http"

	"hospital-management-server/internal/delivery/dto"
	"hospital-management-server/internal/delivery/http/middleware"
	"hospital-management-server/internal/usecase"
	"hospital-management-server/pkg/response"
	"hospital-management-server/pkg/validator"
)

type MedicalRecordHandler struct {
	medicalRecordUsecase usecase.MedicalRecordUsecase
	validator            *validator.CustomValidator
}

func NewMedicalRecordHandler(medicalRecordUsecase usecase.MedicalRecordUsecase, validator *validator.CustomValidator) *MedicalRecordHandler {
	return &MedicalRecordHandler{
		medicalRecordUsecase: medicalRecordUsecase,
		validator:            validator,
	}
}

// Create adds a record to a patient's history (doctor only).
func (h *MedicalRecordHandler) Create(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateMedicalRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.medicalRecordUsecase.Create(r.Context(), doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidRecordType:
			response.BadRequest(w, "Invalid record type")
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid record date, use YYYY-MM-DD")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to create medical record")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Medical record created successfully", record)
}

func (h *MedicalRecordHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	records, err := h.medicalRecordUsecase.List(r.Context(), actorID, roleID)
	if err != nil {
		response.InternalServerError(w, "Failed to list medical records")
		return
	}

	response.Success(w, http.StatusOK, "Medical records retrieved successfully", records)
}

// ListForPatient returns one patient's history (doctor/admin).
func (h *MedicalRecordHandler) ListForPatient(w http.ResponseWriter, r *http.Request) {
	actorID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	patientID, ok := pathID(w, r, "patientId", "Invalid patient ID")
	if !ok {
		return
	}

	records, err := h.medicalRecordUsecase.ListForPatient(r.Context(), actorID, roleID, patientID)
	if err != nil {
		switch err {
		case usecase.ErrRecordNotOwned:
			response.Forbidden(w, "You may only view your own records")
		default:
			response.InternalServerError(w, "Failed to list medical records")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medical records retrieved successfully", records)
}

func (h *MedicalRecordHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	actorID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	recordID, ok := pathID(w, r, "id", "Invalid medical record ID")
	if !ok {
		return
	}

	record, err := h.medicalRecordUsecase.GetByID(r.Context(), actorID, roleID, recordID)
	if err != nil {
		h.writeRecordError(w, err, "Failed to get medical record")
		return
	}

	response.Success(w, http.StatusOK, "Medical record retrieved successfully", record)
}

func (h *MedicalRecordHandler) Update(w http.ResponseWriter, r *http.Request) {
	actorID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	recordID, ok := pathID(w, r, "id", "Invalid medical record ID")
	if !ok {
		return
	}

	var req dto.UpdateMedicalRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.medicalRecordUsecase.Update(r.Context(), actorID, roleID, recordID, &req)
	if err != nil {
		h.writeRecordError(w, err, "Failed to update medical record")
		return
	}

	response.Success(w, http.StatusOK, "Medical record updated successfully", record)
}

func (h *MedicalRecordHandler) Delete(w http.ResponseWriter, r *http.Request) {
	actorID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	recordID, ok := pathID(w, r, "id", "Invalid medical record ID")
	if !ok {
		return
	}

	if err := h.medicalRecordUsecase.Delete(r.Context(), actorID, roleID, recordID); err != nil {
		h.writeRecordError(w, err, "Failed to delete medical record")
		return
	}

	response.Success(w, http.StatusOK, "Medical record deleted successfully", nil)
}

func (h *MedicalRecordHandler) writeRecordError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrRecordNotFound:
		response.NotFound(w, "Medical record not found")
	case usecase.ErrRecordNotOwned:
		response.Forbidden(w, "Medical record does not belong to you")
	default:
		response.InternalServerError(w, fallback)
	}
}
