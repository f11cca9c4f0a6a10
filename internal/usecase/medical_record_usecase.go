package usecase

import (
	"context"
	"errors"
	"time"

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
	ErrRecordNotFound    = errors.New("medical record not found")
	ErrRecordNotOwned    = errors.New("medical record does not belong to you")
	ErrInvalidRecordType = errors.New("invalid record type")
)

// recordTypeByWire maps API wire values to canonical record types.
var recordTypeByWire = map[string]entity.MedicalRecordType{
	"consultation_note":  entity.RecordTypeConsultation,
	"lab_result":         entity.RecordTypeLabResult,
	"prescription":       entity.RecordTypePrescription,
	"imaging_report":     entity.RecordTypeImagingReport,
	"vaccination_record": entity.RecordTypeVaccination,
	"allergy_record":     entity.RecordTypeAllergy,
	"discharge_summary":  entity.RecordTypeDischargeSummary,
}

type MedicalRecordUsecase interface {
	Create(ctx context.Context, doctorID uuid.UUID, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	GetByID(ctx context.Context, actorID uuid.UUID, roleID int, recordID uuid.UUID) (*dto.MedicalRecordResponse, error)
	List(ctx context.Context, actorID uuid.UUID, roleID int) (*dto.MedicalRecordListResponse, error)
	ListForPatient(ctx context.Context, actorID uuid.UUID, roleID int, patientID uuid.UUID) (*dto.MedicalRecordListResponse, error)
	Update(ctx context.Context, actorID uuid.UUID, roleID int, recordID uuid.UUID, req *dto.UpdateMedicalRecordRequest) (*dto.MedicalRecordResponse, error)
	Delete(ctx context.Context, actorID uuid.UUID, roleID int, recordID uuid.UUID) error
}

type medicalRecordUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	medicalRecordRepo  repository.MedicalRecordRepository
	patientProfileRepo repository.PatientProfileRepository
	auditService       service.AuditService
}

func NewMedicalRecordUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	medicalRecordRepo repository.MedicalRecordRepository,
	patientProfileRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) MedicalRecordUsecase {
	return &medicalRecordUsecase{
		db:                 db,
		log:                log,
		medicalRecordRepo:  medicalRecordRepo,
		patientProfileRepo: patientProfileRepo,
		auditService:       auditService,
	}
}

func (u *medicalRecordUsecase) Create(ctx context.Context, doctorID uuid.UUID, req *dto.CreateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	recordType, ok := recordTypeByWire[req.RecordType]
	if !ok {
		return nil, ErrInvalidRecordType
	}

	recordDate, err := time.Parse("2006-01-02", req.RecordDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	patient, err := u.patientProfileRepo.FindByUserID(tx, req.PatientID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	record := &entity.MedicalRecord{
		PatientID:  req.PatientID,
		DoctorID:   doctorID,
		RecordType: recordType,
		RecordDate: recordDate,
		Title:      req.Title,
		Summary:    req.Summary,
		Details:    req.Details,
	}

	if err := u.medicalRecordRepo.Create(tx, record); err != nil {
		u.log.Warnf("Failed to create medical record: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &doctorID, entity.AuditActionMedicalRecordCreate, "medical_record", record.ID.String(), map[string]interface{}{
		"patient_id":  record.PatientID.String(),
		"record_type": record.RecordType,
		"title":       record.Title,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.MedicalRecordToResponse(record), nil
}

func (u *medicalRecordUsecase) GetByID(ctx context.Context, actorID uuid.UUID, roleID int, recordID uuid.UUID) (*dto.MedicalRecordResponse, error) {
	record, err := u.loadAccessible(ctx, actorID, roleID, recordID)
	if err != nil {
		return nil, err
	}
	return converter.MedicalRecordToResponse(record), nil
}

// List is role-aware: patients see records about them, doctors records they
// authored, admins everything.
func (u *medicalRecordUsecase) List(ctx context.Context, actorID uuid.UUID, roleID int) (*dto.MedicalRecordListResponse, error) {
	var (
		records []entity.MedicalRecord
		err     error
	)

	switch roleID {
	case entity.RoleIDPatient:
		records, err = u.medicalRecordRepo.FindByPatientID(u.db.WithContext(ctx), actorID)
	case entity.RoleIDDoctor:
		records, err = u.medicalRecordRepo.FindByDoctorID(u.db.WithContext(ctx), actorID)
	case entity.RoleIDAdmin:
		records, err = u.medicalRecordRepo.FindAll(u.db.WithContext(ctx))
	default:
		return nil, ErrRecordNotOwned
	}

	if err != nil {
		u.log.Warnf("Failed to list medical records: %+v", err)
		return nil, err
	}

	return &dto.MedicalRecordListResponse{
		Records: converter.MedicalRecordsToResponses(records),
		Total:   len(records),
	}, nil
}

// ListForPatient lets doctors and admins read a specific patient's history.
func (u *medicalRecordUsecase) ListForPatient(ctx context.Context, actorID uuid.UUID, roleID int, patientID uuid.UUID) (*dto.MedicalRecordListResponse, error) {
	if roleID == entity.RoleIDPatient && actorID != patientID {
		return nil, ErrRecordNotOwned
	}

	records, err := u.medicalRecordRepo.FindByPatientID(u.db.WithContext(ctx), patientID)
	if err != nil {
		u.log.Warnf("Failed to list medical records: %+v", err)
		return nil, err
	}

	return &dto.MedicalRecordListResponse{
		Records: converter.MedicalRecordsToResponses(records),
		Total:   len(records),
	}, nil
}

// Update is restricted to the authoring doctor and admins.
func (u *medicalRecordUsecase) Update(ctx context.Context, actorID uuid.UUID, roleID int, recordID uuid.UUID, req *dto.UpdateMedicalRecordRequest) (*dto.MedicalRecordResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	record, err := u.medicalRecordRepo.FindByID(tx, recordID)
	if err != nil {
		u.log.Warnf("Failed to find medical record: %+v", err)
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}
	if roleID != entity.RoleIDAdmin && record.DoctorID != actorID {
		return nil, ErrRecordNotOwned
	}

	old := map[string]interface{}{
		"title":   record.Title,
		"summary": record.Summary,
	}

	if req.Title != "" {
		record.Title = req.Title
	}
	if req.Summary != "" {
		record.Summary = req.Summary
	}
	if req.Details != "" {
		record.Details = req.Details
	}

	if err := u.medicalRecordRepo.Update(tx, record); err != nil {
		u.log.Warnf("Failed to update medical record: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionMedicalRecordUpdate, "medical_record", record.ID.String(), old, map[string]interface{}{
		"title":   record.Title,
		"summary": record.Summary,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.MedicalRecordToResponse(record), nil
}

func (u *medicalRecordUsecase) Delete(ctx context.Context, actorID uuid.UUID, roleID int, recordID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	record, err := u.medicalRecordRepo.FindByID(tx, recordID)
	if err != nil {
		u.log.Warnf("Failed to find medical record: %+v", err)
		return err
	}
	if record == nil {
		return ErrRecordNotFound
	}
	if roleID != entity.RoleIDAdmin && record.DoctorID != actorID {
		return ErrRecordNotOwned
	}

	affected, err := u.medicalRecordRepo.Delete(tx, recordID)
	if err != nil {
		u.log.Warnf("Failed to delete medical record: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrRecordNotFound
	}

	u.auditService.LogDelete(ctx, tx, &actorID, entity.AuditActionMedicalRecordDelete, "medical_record", recordID.String(), map[string]interface{}{
		"patient_id": record.PatientID.String(),
		"title":      record.Title,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// loadAccessible fetches the record and enforces read access.
func (u *medicalRecordUsecase) loadAccessible(ctx context.Context, actorID uuid.UUID, roleID int, recordID uuid.UUID) (*entity.MedicalRecord, error) {
	record, err := u.medicalRecordRepo.FindByID(u.db.WithContext(ctx), recordID)
	if err != nil {
		u.log.Warnf("Failed to find medical record: %+v", err)
		return nil, err
	}
	if record == nil {
		return nil, ErrRecordNotFound
	}

	switch roleID {
	case entity.RoleIDAdmin:
	case entity.RoleIDDoctor:
		if record.DoctorID != actorID {
			return nil, ErrRecordNotOwned
		}
	case entity.RoleIDPatient:
		if record.PatientID != actorID {
			return nil, ErrRecordNotOwned
		}
	default:
		return nil, ErrRecordNotOwned
	}

	return record, nil
}
