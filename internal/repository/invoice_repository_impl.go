package repository

import (
	"errors"
	"time"

	"hospital-management-server/internal/domain/entity"
	domainRepo "hospital-management-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type invoiceRepository struct{}

func NewInvoiceRepository() domainRepo.InvoiceRepository {
	return &invoiceRepository{}
}

func (r *invoiceRepository) Create(db *gorm.DB, invoice *entity.Invoice) error {
	return db.Create(invoice).Error
}

func (r *invoiceRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Invoice, error) {
	var invoice entity.Invoice
	err := db.Preload("Appointment.Doctor.User").Where("id = ?", id).First(&invoice).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := db.Preload("Appointment.Doctor.User").
		Where("patient_id = ?", patientID).
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) FindAll(db *gorm.DB) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := db.Preload("Appointment.Doctor.User").
		Order("created_at DESC").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

// MarkPaid atomically settles an invoice ONLY if it's still pending.
// Returns affected rows: 1 = success, 0 = already paid (prevents double-pay race).
func (r *invoiceRepository) MarkPaid(db *gorm.DB, id uuid.UUID) (int64, error) {
	now := time.Now().UTC()
	result := db.Model(&entity.Invoice{}).
		Where("id = ? AND status = ?", id, entity.InvoiceStatusPending).
		Updates(map[string]interface{}{"status": entity.InvoiceStatusPaid, "paid_at": now})
	return result.RowsAffected, result.Error
}
