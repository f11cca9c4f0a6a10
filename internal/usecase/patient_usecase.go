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

var ErrPatientProfileNotFound = errors.New("patient profile not found")

type PatientUsecase interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.PatientProfileResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdatePatientProfileRequest) (*dto.PatientProfileResponse, error)
}

type patientUsecase struct {
	db                 *gorm.DB
	log                *logrus.Logger
	userRepo           repository.UserRepository
	patientProfileRepo repository.PatientProfileRepository
	auditService       service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	userRepo repository.UserRepository,
	patientProfileRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:                 db,
		log:                log,
		userRepo:           userRepo,
		patientProfileRepo: patientProfileRepo,
		auditService:       auditService,
	}
}

func (u *patientUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.PatientProfileResponse, error) {
	profile, err := u.patientProfileRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientProfileNotFound
	}

	return converter.PatientProfileToResponse(profile), nil
}

func (u *patientUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdatePatientProfileRequest) (*dto.PatientProfileResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.patientProfileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil {
		return nil, ErrPatientProfileNotFound
	}

	old := map[string]interface{}{
		"phone_number":  profile.PhoneNumber,
		"date_of_birth": profile.DateOfBirth.Format("2006-01-02"),
		"gender":        profile.Gender,
		"address":       profile.Address,
	}

	if req.PhoneNumber != "" {
		profile.PhoneNumber = req.PhoneNumber
	}
	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		profile.DateOfBirth = dob
	}
	if req.Gender != "" {
		profile.Gender = req.Gender
	}
	if req.Address != "" {
		profile.Address = req.Address
	}

	if err := u.patientProfileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update patient profile: %+v", err)
		return nil, err
	}

	if req.FullName != "" {
		user, err := u.userRepo.FindByID(tx, userID)
		if err != nil {
			u.log.Warnf("Failed to find user: %+v", err)
			return nil, err
		}
		if user != nil {
			user.FullName = req.FullName
			if err := u.userRepo.Update(tx, user); err != nil {
				u.log.Warnf("Failed to update user name: %+v", err)
				return nil, err
			}
			profile.User = *user
		}
	}

	u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionProfileUpdate, "patient_profile", userID.String(), old, map[string]interface{}{
		"phone_number":  profile.PhoneNumber,
		"date_of_birth": profile.DateOfBirth.Format("2006-01-02"),
		"gender":        profile.Gender,
		"address":       profile.Address,
	})

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientProfileToResponse(profile), nil
}
