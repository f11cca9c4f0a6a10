package repository

import (
	"errors"

	"hospital-management-server/internal/domain/entity"
	domainRepo "hospital-management-server/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct{}

func NewDoctorProfileRepository() domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{}
}

func (r *doctorProfileRepository) Create(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Create(profile).Error
}

func (r *doctorProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := db.Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

// FindAll returns profiles of active doctors, optionally filtered by
// specialization (ILIKE).
func (r *doctorProfileRepository) FindAll(db *gorm.DB, specialization string) ([]entity.DoctorProfile, error) {
	query := db.
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Where("users.is_active = ?", true)

	if specialization != "" {
		query = query.Where("doctor_profiles.specialization ILIKE ?", "%"+specialization+"%")
	}

	var profiles []entity.DoctorProfile
	err := query.Preload("User").Order("doctor_profiles.specialization ASC").Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) FindSpecializations(db *gorm.DB) ([]string, error) {
	var specializations []string
	err := db.Model(&entity.DoctorProfile{}).
		Joins("JOIN users ON users.id = doctor_profiles.user_id").
		Where("users.is_active = ?", true).
		Distinct("doctor_profiles.specialization").
		Order("doctor_profiles.specialization ASC").
		Pluck("doctor_profiles.specialization", &specializations).Error
	if err != nil {
		return nil, err
	}
	return specializations, nil
}

func (r *doctorProfileRepository) Update(db *gorm.DB, profile *entity.DoctorProfile) error {
	return db.Session(&gorm.Session{FullSaveAssociations: true}).Save(profile).Error
}
