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
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrDoctorAlreadyInactive = errors.New("doctor is already deactivated")
	ErrProfileNotOwned       = errors.New("profile does not belong to you")
)

type DoctorUsecase interface {
	List(ctx context.Context, specialization string) (*dto.DoctorListResponse, error)
	GetByID(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorProfileResponse, error)
	ListDepartments(ctx context.Context) (*dto.DepartmentListResponse, error)
	UpdateProfile(ctx context.Context, actorID uuid.UUID, roleID int, doctorID uuid.UUID, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorProfileResponse, error)
	Deactivate(ctx context.Context, adminID uuid.UUID, doctorID uuid.UUID) error
}

type doctorUsecase struct {
	db                *gorm.DB
	log               *logrus.Logger
	userRepo          repository.UserRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
) DoctorUsecase {
	return &doctorUsecase{
		db:                db,
		log:               log,
		userRepo:          userRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
	}
}

func (u *doctorUsecase) List(ctx context.Context, specialization string) (*dto.DoctorListResponse, error) {
	profiles, err := u.doctorProfileRepo.FindAll(u.db.WithContext(ctx), specialization)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorProfilesToResponses(profiles),
		Total:   len(profiles),
	}, nil
}

func (u *doctorUsecase) GetByID(ctx context.Context, doctorID uuid.UUID) (*dto.DoctorProfileResponse, error) {
	profile, err := u.doctorProfileRepo.FindByUserID(u.db.WithContext(ctx), doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorProfileToResponse(profile), nil
}

// ListDepartments returns the distinct specializations of active doctors.
func (u *doctorUsecase) ListDepartments(ctx context.Context) (*dto.DepartmentListResponse, error) {
	specializations, err := u.doctorProfileRepo.FindSpecializations(u.db.WithContext(ctx))
	if err != nil {
		u.log.Warnf("Failed to list specializations: %+v", err)
		return nil, err
	}

	return &dto.DepartmentListResponse{Departments: specializations}, nil
}

// UpdateProfile lets a doctor edit their own profile, or an admin edit any.
func (u *doctorUsecase) UpdateProfile(ctx context.Context, actorID uuid.UUID, roleID int, doctorID uuid.UUID, req *dto.UpdateDoctorProfileRequest) (*dto.DoctorProfileResponse, error) {
	if roleID != entity.RoleIDAdmin && actorID != doctorID {
		return nil, ErrProfileNotOwned
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.doctorProfileRepo.FindByUserID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	old := map[string]interface{}{
		"specialization":   profile.Specialization,
		"biography":        profile.Biography,
		"consultation_fee": profile.ConsultationFee.StringFixed(2),
	}

	if req.Specialization != "" {
		profile.Specialization = req.Specialization
	}
	if req.Biography != "" {
		profile.Biography = req.Biography
	}
	if req.ConsultationFee != "" {
		fee, err := decimal.NewFromString(req.ConsultationFee)
		if err != nil || fee.IsNegative() {
			return nil, ErrInvalidFee
		}
		profile.ConsultationFee = fee
	}

	if req.FullName != "" {
		profile.User.FullName = req.FullName
	}

	if err := u.doctorProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update doctor profile: %+v", err)
		return nil, err
	}

	action := entity.AuditActionProfileUpdate
	if roleID == entity.RoleIDAdmin {
		action = entity.AuditActionDoctorUpdate
	}
	u.auditService.LogUpdate(ctx, tx, &actorID, action, "doctor_profile", doctorID.String(), old, map[string]interface{}{
		"specialization":   profile.Specialization,
		"biography":        profile.Biography,
		"consultation_fee": profile.ConsultationFee.StringFixed(2),
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.DoctorProfileToResponse(profile), nil
}

// Deactivate soft-deletes a doctor account. Existing appointments keep their
// history; the doctor simply stops appearing in listings and logins.
func (u *doctorUsecase) Deactivate(ctx context.Context, adminID uuid.UUID, doctorID uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	user, err := u.userRepo.FindByID(tx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return err
	}
	if user == nil || user.RoleID != entity.RoleIDDoctor {
		return ErrDoctorNotFound
	}
	if !user.Active() {
		return ErrDoctorAlreadyInactive
	}

	inactive := false
	user.IsActive = &inactive
	if err := u.userRepo.Update(tx, user); err != nil {
		u.log.Warnf("Failed to deactivate doctor: %+v", err)
		return err
	}

	u.auditService.LogDelete(ctx, tx, &adminID, entity.AuditActionDoctorDelete, "user", doctorID.String(), map[string]interface{}{
		"email": user.Email,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}
