package handler

import (
	"net/http"

	"hospital-management-server/internal/usecase"
	"hospital-management-server/pkg/response"
)

type InvoiceHandler struct {
	billingUsecase usecase.BillingUsecase
}

func NewInvoiceHandler(billingUsecase usecase.BillingUsecase) *InvoiceHandler {
	return &InvoiceHandler{billingUsecase: billingUsecase}
}

func (h *InvoiceHandler) List(w http.ResponseWriter, r *http.Request) {
	actorID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	invoices, err := h.billingUsecase.List(r.Context(), actorID, roleID)
	if err != nil {
		response.InternalServerError(w, "Failed to list invoices")
		return
	}

	response.Success(w, http.StatusOK, "Invoices retrieved successfully", invoices)
}

func (h *InvoiceHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	actorID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	invoiceID, ok := pathID(w, r, "id", "Invalid invoice ID")
	if !ok {
		return
	}

	invoice, err := h.billingUsecase.GetByID(r.Context(), actorID, roleID, invoiceID)
	if err != nil {
		h.writeInvoiceError(w, err, "Failed to get invoice")
		return
	}

	response.Success(w, http.StatusOK, "Invoice retrieved successfully", invoice)
}

func (h *InvoiceHandler) Pay(w http.ResponseWriter, r *http.Request) {
	actorID, roleID, ok := actorFromContext(r)
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	invoiceID, ok := pathID(w, r, "id", "Invalid invoice ID")
	if !ok {
		return
	}

	invoice, err := h.billingUsecase.Pay(r.Context(), actorID, roleID, invoiceID)
	if err != nil {
		switch err {
		case usecase.ErrInvoiceAlreadyPaid:
			response.Conflict(w, "Invoice has already been paid")
		default:
			h.writeInvoiceError(w, err, "Failed to pay invoice")
		}
		return
	}

	response.Success(w, http.StatusOK, "Invoice paid successfully", invoice)
}

func (h *InvoiceHandler) writeInvoiceError(w http.ResponseWriter, err error, fallback string) {
	switch err {
	case usecase.ErrInvoiceNotFound:
		response.NotFound(w, "Invoice not found")
	case usecase.ErrInvoiceNotOwned:
		response.Forbidden(w, "Invoice does not belong to you")
	default:
		response.InternalServerError(w, fallback)
	}
}
