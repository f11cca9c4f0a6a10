package handler

import (
	"encoding/json"
	"net/http"

	"hospital-management-server/internal/delivery/dto"
	"hospital-management-server/internal/delivery/http/middleware"
	"hospital-management-server/internal/scheduling"
	"hospital-management-server/internal/usecase"
	"hospital-management-server/pkg/response"
	"hospital-management-server/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// GetCandidateDates returns the dates the booking wizard offers.
func (h *AppointmentHandler) GetCandidateDates(w http.ResponseWriter, r *http.Request) {
	dates := h.appointmentUsecase.CandidateDates(r.Context())
	response.Success(w, http.StatusOK, "Candidate dates retrieved successfully", dates)
}

// GetAvailableSlots returns a doctor's open slots on ?date=YYYY-MM-DD.
func (h *AppointmentHandler) GetAvailableSlots(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	doctorID, err := uuid.Parse(vars["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	date := r.URL.Query().Get("date")
	if date == "" {
		response.BadRequest(w, "Query parameter 'date' is required")
		return
	}

	slots, err := h.appointmentUsecase.AvailableSlots(r.Context(), doctorID, date)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid date, use YYYY-MM-DD")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to get available slots")
		}
		return
	}

	response.Success(w, http.StatusOK, "Available slots retrieved successfully", slots)
}

// CheckAvailability answers the wizard's advisory pre-check.
func (h *AppointmentHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	var req dto.CheckAvailabilityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	result, err := h.appointmentUsecase.CheckAvailability(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid date, use YYYY-MM-DD")
		case scheduling.ErrInvalidDisplayTime:
			response.BadRequest(w, "Invalid time format, use h:mm AM/PM")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to check availability")
		}
		return
	}

	response.Success(w, http.StatusOK, "Availability checked", result)
}

func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	patientID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), patientID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid date, use YYYY-MM-DD")
		case scheduling.ErrInvalidDisplayTime:
			response.BadRequest(w, "Invalid time format, use h:mm AM/PM")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrSlotNotBookable:
			response.BadRequest(w, "The selected time is not a bookable slot")
		case usecase.ErrSlotTaken:
			response.Conflict(w, "The selected time slot has just been booked")
		default:
			response.InternalServerError(w, "Failed to book appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	query := &dto.ListAppointmentsQuery{
		DoctorID: r.URL.Query().Get("doctorId"),
		Date:     r.URL.Query().Get("date"),
		Status:   r.URL.Query().Get("status"),
	}

	appointments, err := h.appointmentUsecase.List(r.Context(), actorID, roleID, query)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid date, use YYYY-MM-DD")
		case usecase.ErrInvalidStatusFilter:
			response.BadRequest(w, "Invalid status filter")
		case usecase.ErrInvalidAppointmentRef:
			response.BadRequest(w, "Invalid doctor ID filter")
		default:
			response.InternalServerError(w, "Failed to list appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	actorID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	appointmentID, ok := pathID(w, r, "id", "Invalid appointment ID")
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.GetByID(r.Context(), actorID, roleID, appointmentID)
	if err != nil {
		h.writeAppointmentError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

func (h *AppointmentHandler) Reschedule(w http.ResponseWriter, r *http.Request) {
	actorID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	appointmentID, ok := pathID(w, r, "id", "Invalid appointment ID")
	if !ok {
		return
	}

	var req dto.RescheduleAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Reschedule(r.Context(), actorID, roleID, appointmentID, &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidDateFormat:
			response.BadRequest(w, "Invalid date, use YYYY-MM-DD")
		case scheduling.ErrInvalidDisplayTime:
			response.BadRequest(w, "Invalid time format, use h:mm AM/PM")
		case usecase.ErrNotReschedulable:
			response.Conflict(w, "Only scheduled appointments can be rescheduled")
		case usecase.ErrSlotNotBookable:
			response.BadRequest(w, "The selected time is not a bookable slot")
		case usecase.ErrSlotTaken:
			response.Conflict(w, "The selected time slot has just been booked")
		default:
			h.writeAppointmentError(w, err, "Failed to reschedule appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment rescheduled successfully", appointment)
}

func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	actorID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	appointmentID, ok := pathID(w, r, "id", "Invalid appointment ID")
	if !ok {
		return
	}

	if err := h.appointmentUsecase.Cancel(r.Context(), actorID, roleID, appointmentID); err != nil {
		switch err {
		case usecase.ErrNotCancellable:
			response.Conflict(w, "Only scheduled appointments can be cancelled")
		default:
			h.writeAppointmentError(w, err, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}

func (h *AppointmentHandler) Complete(w http.ResponseWriter, r *http.Request) {
	actorID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	appointmentID, ok := pathID(w, r, "id", "Invalid appointment ID")
	if !ok {
		return
	}

	if err := h.appointmentUsecase.Complete(r.Context(), actorID, roleID, appointmentID); err != nil {
		switch err {
		case usecase.ErrStatusNotUpdatable:
			response.Conflict(w, "Appointment is no longer scheduled")
		default:
			h.writeAppointmentError(w, err, "Failed to complete appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment completed and invoice issued", nil)
}

func (h *AppointmentHandler) MarkNoShow(w http.ResponseWriter, r *http.Request) {
	actorID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	appointmentID, ok := pathID(w, r, "id", "Invalid appointment ID")
	if !ok {
		return
	}

	if err := h.appointmentUsecase.MarkNoShow(r.Context(), actorID, roleID, appointmentID); err != nil {
		switch err {
		case usecase.ErrStatusNotUpdatable:
			response.Conflict(w, "Appointment is no longer scheduled")
		default:
			h.writeAppointmentError(w, err, "Failed to mark appointment as no-show")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment marked as no-show", nil)
}

func (h *AppointmentHandler) writeAppointmentError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrAppointmentNotFound:
		response.NotFound(w, "Appointment not found")
	case usecase.ErrAppointmentNotOwned:
		response.Forbidden(w, "Appointment does not belong to you")
	default:
		response.InternalServerError(w, fallback)
	}
}
