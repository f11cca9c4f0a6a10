package repository

import (
	"hospital-management-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type InvoiceRepository interface {
	Create(db *gorm.DB, invoice *entity.Invoice) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Invoice, error)
	FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Invoice, error)
	FindAll(db *gorm.DB) ([]entity.Invoice, error)
	// MarkPaid atomically settles a pending invoice. Returns affected rows:
	// 0 means the invoice was already paid.
	MarkPaid(db *gorm.DB, id uuid.UUID) (int64, error)
}
