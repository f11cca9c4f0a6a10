package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceStatus represents the payment state of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Invoice bills a patient for a completed appointment. The amount is the
// doctor's consultation fee at completion time.
type Invoice struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	AppointmentID uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"appointment_id"`
	PatientID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID      uuid.UUID       `gorm:"type:uuid;not null;index" json:"doctor_id"`
	Amount        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status        InvoiceStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	DueDate       time.Time       `gorm:"type:date;not null" json:"due_date"`
	PaidAt        *time.Time      `gorm:"type:timestamptz" json:"paid_at,omitempty"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Appointment Appointment    `gorm:"foreignKey:AppointmentID" json:"appointment,omitempty"`
	Patient     PatientProfile `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
}

func (Invoice) TableName() string {
	return "invoices"
}

// IsPaid checks if the invoice has been settled
func (i *Invoice) IsPaid() bool {
	return i.Status == InvoiceStatusPaid
}
