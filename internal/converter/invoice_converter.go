package converter

import (
	"hospital-management-server/internal/delivery/dto"
	"hospital-management-server/internal/domain/entity"

	"github.com/google/uuid"
)

// InvoiceToResponse converts an Invoice entity to response DTO
func InvoiceToResponse(invoice *entity.Invoice) *dto.InvoiceResponse {
	if invoice == nil {
		return nil
	}

	response := &dto.InvoiceResponse{
		ID:            invoice.ID,
		AppointmentID: invoice.AppointmentID,
		PatientID:     invoice.PatientID,
		DoctorID:      invoice.DoctorID,
		Amount:        invoice.Amount.StringFixed(2),
		Status:        string(invoice.Status),
		DueDate:       invoice.DueDate,
		PaidAt:        invoice.PaidAt,
		CreatedAt:     invoice.CreatedAt,
		UpdatedAt:     invoice.UpdatedAt,
	}

	if invoice.Appointment.Doctor.UserID != uuid.Nil {
		response.DoctorName = invoice.Appointment.Doctor.User.FullName
	}

	return response
}

// InvoicesToResponses converts a slice of Invoice entities to response DTOs
func InvoicesToResponses(invoices []entity.Invoice) []dto.InvoiceResponse {
	responses := make([]dto.InvoiceResponse, len(invoices))
	for i, invoice := range invoices {
		resp := InvoiceToResponse(&invoice)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
