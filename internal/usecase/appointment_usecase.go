package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hospital-management-server/internal/converter"
	"hospital-management-server/internal/delivery/dto"
	"hospital-management-server/internal/domain/entity"
	"hospital-management-server/internal/domain/repository"
	"hospital-management-server/internal/scheduling"
	"hospital-management-server/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound        = errors.New("doctor not found")
	ErrPatientNotFound       = errors.New("patient not found")
	ErrAppointmentNotFound   = errors.New("appointment not found")
	ErrAppointmentNotOwned   = errors.New("appointment does not belong to you")
	ErrSlotTaken             = errors.New("the selected time slot has just been booked")
	ErrSlotNotBookable       = errors.New("the selected time is not a bookable slot")
	ErrNotReschedulable      = errors.New("only scheduled appointments can be rescheduled")
	ErrNotCancellable        = errors.New("only scheduled appointments can be cancelled")
	ErrStatusNotUpdatable    = errors.New("appointment is no longer scheduled")
	ErrInvalidStatusFilter   = errors.New("invalid status filter")
	ErrInvalidAppointmentRef = errors.New("invalid appointment id")
)

type AppointmentUsecase interface {
	CandidateDates(ctx context.Context) *dto.CandidateDatesResponse
	AvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailableSlotsResponse, error)
	CheckAvailability(ctx context.Context, req *dto.CheckAvailabilityRequest) (*dto.CheckAvailabilityResponse, error)
	Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	Reschedule(ctx context.Context, actorID uuid.UUID, roleID int, appointmentID uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, actorID uuid.UUID, roleID int, appointmentID uuid.UUID) error
	Complete(ctx context.Context, actorID uuid.UUID, roleID int, appointmentID uuid.UUID) error
	MarkNoShow(ctx context.Context, actorID uuid.UUID, roleID int, appointmentID uuid.UUID) error
	List(ctx context.Context, actorID uuid.UUID, roleID int, query *dto.ListAppointmentsQuery) (*dto.AppointmentListResponse, error)
	GetByID(ctx context.Context, actorID uuid.UUID, roleID int, appointmentID uuid.UUID) (*dto.AppointmentResponse, error)
}

type appointmentUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	appointmentRepo   repository.AppointmentRepository
	doctorProfileRepo repository.DoctorProfileRepository
	invoiceRepo       repository.InvoiceRepository
	resolver          *scheduling.Resolver
	slotHoldService   *service.SlotHoldService
	auditService      service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	invoiceRepo repository.InvoiceRepository,
	resolver *scheduling.Resolver,
	slotHoldService *service.SlotHoldService,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                db,
		log:               log,
		appointmentRepo:   appointmentRepo,
		doctorProfileRepo: doctorProfileRepo,
		invoiceRepo:       invoiceRepo,
		resolver:          resolver,
		slotHoldService:   slotHoldService,
		auditService:      auditService,
	}
}

// CandidateDates returns the dates the booking wizard offers, starting the day
// after today.
func (u *appointmentUsecase) CandidateDates(ctx context.Context) *dto.CandidateDatesResponse {
	dates := u.resolver.CandidateDates(time.Now())

	formatted := make([]string, len(dates))
	for i, d := range dates {
		formatted[i] = d.Format("2006-01-02")
	}

	return &dto.CandidateDatesResponse{Dates: formatted}
}

// AvailableSlots returns the doctor's open slots on a date. Weekends yield an
// empty list, same-day requests drop slots closer than the minimum lead time,
// and the doctor's Scheduled appointments are excluded.
func (u *appointmentUsecase) AvailableSlots(ctx context.Context, doctorID uuid.UUID, date string) (*dto.AvailableSlotsResponse, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	booked, err := u.bookedDisplayTimes(ctx, doctorID, day)
	if err != nil {
		return nil, err
	}

	slots := u.resolver.SlotsForDate(day, booked)

	return &dto.AvailableSlotsResponse{
		DoctorID: doctorID,
		Date:     date,
		Slots:    converter.SlotsToResponses(slots),
	}, nil
}

// CheckAvailability is an advisory pre-check used by the booking wizard. A
// positive answer is not a reservation; Book re-validates under the unique
// index.
func (u *appointmentUsecase) CheckAvailability(ctx context.Context, req *dto.CheckAvailabilityRequest) (*dto.CheckAvailabilityResponse, error) {
	slot, err := u.parseSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if !u.resolver.IsBookable(slot) {
		return &dto.CheckAvailabilityResponse{
			IsAvailable: false,
			Message:     "The selected time is outside the doctor's bookable hours",
		}, nil
	}

	count, err := u.appointmentRepo.CountConflicting(u.db.WithContext(ctx), req.DoctorID, slot, req.AppointmentID)
	if err != nil {
		u.log.Warnf("Failed to count conflicting appointments: %+v", err)
		return nil, err
	}

	if count > 0 {
		return &dto.CheckAvailabilityResponse{
			IsAvailable: false,
			Message:     "The selected time slot is already booked",
		}, nil
	}

	return &dto.CheckAvailabilityResponse{
		IsAvailable: true,
		Message:     "The selected time slot is available",
	}, nil
}

// Book creates a Scheduled appointment for the patient. The slot is held in
// Redis while the insert runs; the partial unique index on
// (doctor_id, appointment_date) for Scheduled rows is the final arbiter, so
// two concurrent bookings can never both commit.
func (u *appointmentUsecase) Book(ctx context.Context, patientID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	slot, err := u.parseSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if !u.resolver.IsBookable(slot) {
		return nil, ErrSlotNotBookable
	}

	holdToken, err := u.slotHoldService.Acquire(ctx, req.DoctorID, slot)
	if err != nil {
		if errors.Is(err, service.ErrSlotHeld) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	defer u.slotHoldService.Release(ctx, req.DoctorID, slot, holdToken)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	appointment := &entity.Appointment{
		DoctorID:        req.DoctorID,
		PatientID:       patientID,
		AppointmentDate: slot,
		Status:          entity.StatusScheduled,
		Reason:          req.Reason,
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isDuplicateKeyError(err, "uq_appointments_doctor_slot") {
			return nil, ErrSlotTaken
		}
		if isForeignKeyError(err, "patient") {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, tx, &patientID, entity.AuditActionAppointmentBook, "appointment", appointment.ID.String(), map[string]interface{}{
		"doctor_id":        appointment.DoctorID.String(),
		"appointment_date": appointment.AppointmentDate,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

// Reschedule moves a Scheduled appointment to a new slot. Patients may move
// their own appointments, doctors their own schedule, admins any.
func (u *appointmentUsecase) Reschedule(ctx context.Context, actorID uuid.UUID, roleID int, appointmentID uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	slot, err := u.parseSlot(req.Date, req.Time)
	if err != nil {
		return nil, err
	}

	appointment, err := u.loadOwned(ctx, actorID, roleID, appointmentID)
	if err != nil {
		return nil, err
	}

	if !appointment.CanReschedule() {
		return nil, ErrNotReschedulable
	}

	if !u.resolver.IsBookable(slot) {
		return nil, ErrSlotNotBookable
	}

	holdToken, err := u.slotHoldService.Acquire(ctx, appointment.DoctorID, slot)
	if err != nil {
		if errors.Is(err, service.ErrSlotHeld) {
			return nil, ErrSlotTaken
		}
		return nil, err
	}
	defer u.slotHoldService.Release(ctx, appointment.DoctorID, slot, holdToken)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	oldDate := appointment.AppointmentDate

	if err := u.appointmentRepo.UpdateSlot(tx, appointment.ID, slot); err != nil {
		if isDuplicateKeyError(err, "uq_appointments_doctor_slot") {
			return nil, ErrSlotTaken
		}
		u.log.Warnf("Failed to reschedule appointment: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentReschedule, "appointment", appointment.ID.String(),
		map[string]interface{}{"appointment_date": oldDate},
		map[string]interface{}{"appointment_date": slot},
	)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	appointment.AppointmentDate = slot
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Cancel(ctx context.Context, actorID uuid.UUID, roleID int, appointmentID uuid.UUID) error {
	appointment, err := u.loadOwned(ctx, actorID, roleID, appointmentID)
	if err != nil {
		return err
	}

	if !appointment.CanCancel() {
		return ErrNotCancellable
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.UpdateStatusIfScheduled(tx, appointment.ID, entity.StatusCancelled)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrNotCancellable
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentCancel, "appointment", appointment.ID.String(),
		map[string]interface{}{"status": entity.StatusScheduled},
		map[string]interface{}{"status": entity.StatusCancelled},
	)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// Complete marks a Scheduled appointment Completed and issues the invoice for
// the doctor's consultation fee in the same transaction.
func (u *appointmentUsecase) Complete(ctx context.Context, actorID uuid.UUID, roleID int, appointmentID uuid.UUID) error {
	if roleID != entity.RoleIDAdmin && roleID != entity.RoleIDDoctor {
		return ErrAppointmentNotOwned
	}

	appointment, err := u.loadOwned(ctx, actorID, roleID, appointmentID)
	if err != nil {
		return err
	}

	doctor, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), appointment.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.UpdateStatusIfScheduled(tx, appointment.ID, entity.StatusCompleted)
	if err != nil {
		u.log.Warnf("Failed to complete appointment: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrStatusNotUpdatable
	}

	invoice := &entity.Invoice{
		AppointmentID: appointment.ID,
		PatientID:     appointment.PatientID,
		DoctorID:      appointment.DoctorID,
		Amount:        doctor.ConsultationFee,
		Status:        entity.InvoiceStatusPending,
		DueDate:       time.Now().AddDate(0, 0, 14),
	}

	if err := u.invoiceRepo.Create(tx, invoice); err != nil {
		u.log.Warnf("Failed to create invoice: %+v", err)
		return err
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentComplete, "appointment", appointment.ID.String(),
		map[string]interface{}{"status": entity.StatusScheduled},
		map[string]interface{}{"status": entity.StatusCompleted, "invoice_id": invoice.ID.String()},
	)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

func (u *appointmentUsecase) MarkNoShow(ctx context.Context, actorID uuid.UUID, roleID int, appointmentID uuid.UUID) error {
	if roleID != entity.RoleIDAdmin && roleID != entity.RoleIDDoctor {
		return ErrAppointmentNotOwned
	}

	appointment, err := u.loadOwned(ctx, actorID, roleID, appointmentID)
	if err != nil {
		return err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	affected, err := u.appointmentRepo.UpdateStatusIfScheduled(tx, appointment.ID, entity.StatusNoShow)
	if err != nil {
		u.log.Warnf("Failed to mark appointment as no-show: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrStatusNotUpdatable
	}

	u.auditService.LogUpdate(ctx, tx, &actorID, entity.AuditActionAppointmentNoShow, "appointment", appointment.ID.String(),
		map[string]interface{}{"status": entity.StatusScheduled},
		map[string]interface{}{"status": entity.StatusNoShow},
	)

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// List is role-aware: patients see their own appointments, doctors their own
// schedule, admins everything (optionally filtered by doctor, date, status).
func (u *appointmentUsecase) List(ctx context.Context, actorID uuid.UUID, roleID int, query *dto.ListAppointmentsQuery) (*dto.AppointmentListResponse, error) {
	filter := &entity.AppointmentFilter{}

	switch roleID {
	case entity.RoleIDPatient:
		filter.PatientID = &actorID
	case entity.RoleIDDoctor:
		filter.DoctorID = &actorID
	case entity.RoleIDAdmin:
		if query.DoctorID != "" {
			doctorID, err := uuid.Parse(query.DoctorID)
			if err != nil {
				return nil, ErrInvalidAppointmentRef
			}
			filter.DoctorID = &doctorID
		}
	default:
		return nil, ErrAppointmentNotOwned
	}

	if query.Date != "" {
		day, err := time.ParseInLocation("2006-01-02", query.Date, time.Local)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		filter.Date = &day
	}

	if query.Status != "" {
		status, err := entity.ParseAppointmentStatus(query.Status)
		if err != nil {
			return nil, ErrInvalidStatusFilter
		}
		filter.Status = status
	}

	appointments, err := u.appointmentRepo.FindAll(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, actorID uuid.UUID, roleID int, appointmentID uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.loadOwned(ctx, actorID, roleID, appointmentID)
	if err != nil {
		return nil, err
	}
	return converter.AppointmentToResponse(appointment), nil
}

// loadOwned fetches the appointment and enforces ownership: patients and
// doctors may only touch appointments on their side, admins may touch any.
func (u *appointmentUsecase) loadOwned(ctx context.Context, actorID uuid.UUID, roleID int, appointmentID uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	switch roleID {
	case entity.RoleIDAdmin:
	case entity.RoleIDDoctor:
		if appointment.DoctorID != actorID {
			return nil, ErrAppointmentNotOwned
		}
	case entity.RoleIDPatient:
		if appointment.PatientID != actorID {
			return nil, ErrAppointmentNotOwned
		}
	default:
		return nil, ErrAppointmentNotOwned
	}

	return appointment, nil
}

// parseSlot combines the wizard's date and display-time strings into the
// concrete slot instant.
func (u *appointmentUsecase) parseSlot(date, displayTime string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", date, time.Local)
	if err != nil {
		return time.Time{}, ErrInvalidDateFormat
	}

	slot, err := scheduling.ParseDisplayTime(day, displayTime)
	if err != nil {
		return time.Time{}, err
	}

	return slot, nil
}

// bookedDisplayTimes renders the doctor's Scheduled appointment times on a day
// as display strings for the resolver's exclusion set.
func (u *appointmentUsecase) bookedDisplayTimes(ctx context.Context, doctorID uuid.UUID, day time.Time) ([]string, error) {
	dayStart := day
	dayEnd := day.AddDate(0, 0, 1)

	times, err := u.appointmentRepo.FindScheduledTimes(u.db.WithContext(ctx), doctorID, dayStart, dayEnd)
	if err != nil {
		u.log.Warnf("Failed to load scheduled times: %+v", err)
		return nil, fmt.Errorf("load scheduled times: %w", err)
	}

	booked := make([]string, len(times))
	for i, t := range times {
		booked[i] = scheduling.FormatDisplayTime(t.Local())
	}
	return booked, nil
}
