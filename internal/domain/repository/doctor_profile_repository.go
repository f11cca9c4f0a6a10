package repository

import (
	"hospital-management-server/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DoctorProfileRepository interface {
	Create(db *gorm.DB, profile *entity.DoctorProfile) error
	FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error)
	FindAll(db *gorm.DB, specialization string) ([]entity.DoctorProfile, error)
	// FindSpecializations lists the distinct specializations of active
	// doctors; the SPA presents them as departments.
	FindSpecializations(db *gorm.DB) ([]string, error)
	Update(db *gorm.DB, profile *entity.DoctorProfile) error
}
