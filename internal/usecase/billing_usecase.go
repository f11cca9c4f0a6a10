package usecase

import (
	"context"
	"errors"

	"hospital-management-server/internal/converter"
	"hospital-management-server/internal/delivery/dto"
	"hospital-management-server/internal/domain/entity"
	"hospital-management-server/internal/domain/repository"
	"hospital-management-server/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvoiceNotFound    = errors.New("invoice not found")
	ErrInvoiceNotOwned    = errors.New("invoice does not belong to you")
	ErrInvoiceAlreadyPaid = errors.New("invoice has already been paid")
)

type BillingUsecase interface {
	List(ctx context.Context, actorID uuid.UUID, roleID int) (*dto.InvoiceListResponse, error)
	GetByID(ctx context.Context, actorID uuid.UUID, roleID int, invoiceID uuid.UUID) (*dto.InvoiceResponse, error)
	Pay(ctx context.Context, actorID uuid.UUID, roleID int, invoiceID uuid.UUID) (*dto.InvoiceResponse, error)
}

type billingUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	invoiceRepo  repository.InvoiceRepository
	auditService service.AuditService
}

func NewBillingUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	invoiceRepo repository.InvoiceRepository,
	auditService service.AuditService,
) BillingUsecase {
	return &billingUsecase{
		db:           db,
		log:          log,
		invoiceRepo:  invoiceRepo,
		auditService: auditService,
	}
}

// List shows patients their own invoices and admins everything.
func (u *billingUsecase) List(ctx context.Context, actorID uuid.UUID, roleID int) (*dto.InvoiceListResponse, error) {
	var (
		invoices []entity.Invoice
		err      error
	)

	switch roleID {
	case entity.RoleIDAdmin:
		invoices, err = u.invoiceRepo.FindAll(u.db.WithContext(ctx))
	case entity.RoleIDPatient:
		invoices, err = u.invoiceRepo.FindByPatientID(u.db.WithContext(ctx), actorID)
	default:
		return nil, ErrInvoiceNotOwned
	}

	if err != nil {
		u.log.Warnf("Failed to list invoices: %+v", err)
		return nil, err
	}

	return &dto.InvoiceListResponse{
		Invoices: converter.InvoicesToResponses(invoices),
		Total:    len(invoices),
	}, nil
}

func (u *billingUsecase) GetByID(ctx context.Context, actorID uuid.UUID, roleID int, invoiceID uuid.UUID) (*dto.InvoiceResponse, error) {
	invoice, err := u.loadOwned(ctx, actorID, roleID, invoiceID)
	if err != nil {
		return nil, err
	}
	return converter.InvoiceToResponse(invoice), nil
}

// Pay settles a pending invoice. The status flip is a conditional UPDATE, so
// a double-submit pays exactly once.
func (u *billingUsecase) Pay(ctx context.Context, actorID uuid.UUID, roleID int, invoiceID uuid.UUID) (*dto.InvoiceResponse, error) {
	invoice, err := u.loadOwned(ctx, actorID, roleID, invoiceID)
	if err != nil {
		return nil, err
	}

	if invoice.IsPaid() {
		return nil, ErrInvoiceAlreadyPaid
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.invoiceRepo.MarkPaid(tx, invoiceID)
	if err != nil {
		u.log.Warnf("Failed to mark invoice paid: %+v", err)
		return nil, err
	}
	if affected == 0 {
		return nil, ErrInvoiceAlreadyPaid
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionInvoicePay, "invoice", invoiceID.String(),
		map[string]interface{}{"status": entity.InvoiceStatusPending},
		map[string]interface{}{"status": entity.InvoiceStatusPaid},
	)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	paid, err := u.invoiceRepo.FindByID(u.db.WithContext(ctx), invoiceID)
	if err != nil {
		u.log.Warnf("Failed to reload invoice: %+v", err)
		return nil, err
	}
	return converter.InvoiceToResponse(paid), nil
}

func (u *billingUsecase) loadOwned(ctx context.Context, actorID uuid.UUID, roleID int, invoiceID uuid.UUID) (*entity.Invoice, error) {
	invoice, err := u.invoiceRepo.FindByID(u.db.WithContext(ctx), invoiceID)
	if err != nil {
		u.log.Warnf("Failed to find invoice: %+v", err)
		return nil, err
	}
	if invoice == nil {
		return nil, ErrInvoiceNotFound
	}

	switch roleID {
	case entity.RoleIDAdmin:
	case entity.RoleIDPatient:
		if invoice.PatientID != actorID {
			return nil, ErrInvoiceNotOwned
		}
	default:
		return nil, ErrInvoiceNotOwned
	}

	return invoice, nil
}
