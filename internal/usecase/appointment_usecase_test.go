package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"hospital-management-server/config"
	"hospital-management-server/internal/delivery/dto"
	"hospital-management-server/internal/domain/entity"
	"hospital-management-server/internal/domain/repository"
	"hospital-management-server/internal/scheduling"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type stubDoctorProfileRepository struct {
	repository.DoctorProfileRepository
}

func (s *stubDoctorProfileRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.DoctorProfile, error) {
	return &entity.DoctorProfile{UserID: userID}, nil
}

type stubAppointmentRepository struct {
	repository.AppointmentRepository
	countConflicting func(doctorID uuid.UUID, at time.Time, excludeID uuid.UUID) (int64, error)
}

func (s *stubAppointmentRepository) CountConflicting(db *gorm.DB, doctorID uuid.UUID, at time.Time, excludeID uuid.UUID) (int64, error) {
	return s.countConflicting(doctorID, at, excludeID)
}

// offlineDB opens a gorm handle that never dials the database. The stubs
// ignore it; it only satisfies the usecase wiring.
func offlineDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=test dbname=test"}), &gorm.Config{
		DisableAutomaticPing: true,
		Logger:               logger.Discard,
	})
	if err != nil {
		t.Fatalf("open db handle: %v", err)
	}
	return db
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newCheckAvailabilityUsecase(t *testing.T, appointmentRepo repository.AppointmentRepository) AppointmentUsecase {
	t.Helper()
	cfg := config.SchedulingConfig{
		DayStartHour:   9,
		DayEndHour:     17,
		SlotInterval:   30 * time.Minute,
		MinLeadTime:    time.Hour,
		HorizonDays:    30,
		CandidateCount: 14,
	}
	// Friday morning, three days before the Monday slot under test.
	clock := func() time.Time { return time.Date(2026, 9, 4, 8, 0, 0, 0, time.Local) }
	resolver := scheduling.NewResolverWithClock(cfg, clock)
	return NewAppointmentUsecase(offlineDB(t), quietLogger(), appointmentRepo, &stubDoctorProfileRepository{}, nil, resolver, nil, nil)
}

func TestCheckAvailability_ScheduledConflict(t *testing.T) {
	repo := &stubAppointmentRepository{
		countConflicting: func(doctorID uuid.UUID, at time.Time, excludeID uuid.UUID) (int64, error) {
			return 1, nil
		},
	}
	u := newCheckAvailabilityUsecase(t, repo)

	resp, err := u.CheckAvailability(context.Background(), &dto.CheckAvailabilityRequest{
		DoctorID: uuid.New(),
		Date:     "2026-09-07",
		Time:     "10:00 AM",
	})
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if resp.IsAvailable {
		t.Fatal("a slot with a scheduled appointment must not be available")
	}
}

func TestCheckAvailability_ExcludesRescheduledAppointment(t *testing.T) {
	ownID := uuid.New()
	var gotExclude uuid.UUID
	repo := &stubAppointmentRepository{
		countConflicting: func(doctorID uuid.UUID, at time.Time, excludeID uuid.UUID) (int64, error) {
			gotExclude = excludeID
			if excludeID == ownID {
				return 0, nil
			}
			return 1, nil
		},
	}
	u := newCheckAvailabilityUsecase(t, repo)

	resp, err := u.CheckAvailability(context.Background(), &dto.CheckAvailabilityRequest{
		DoctorID:      uuid.New(),
		Date:          "2026-09-07",
		Time:          "10:00 AM",
		AppointmentID: ownID,
	})
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if gotExclude != ownID {
		t.Fatalf("exclude id passed to conflict count = %s, want %s", gotExclude, ownID)
	}
	if !resp.IsAvailable {
		t.Fatal("an appointment must not conflict with its own slot during reschedule")
	}
}

func TestCheckAvailability_OutsideBookableHours(t *testing.T) {
	repo := &stubAppointmentRepository{
		countConflicting: func(doctorID uuid.UUID, at time.Time, excludeID uuid.UUID) (int64, error) {
			t.Fatal("conflict count must not run for a non-bookable slot")
			return 0, nil
		},
	}
	u := newCheckAvailabilityUsecase(t, repo)

	resp, err := u.CheckAvailability(context.Background(), &dto.CheckAvailabilityRequest{
		DoctorID: uuid.New(),
		Date:     "2026-09-07",
		Time:     "8:00 AM",
	})
	if err != nil {
		t.Fatalf("CheckAvailability: %v", err)
	}
	if resp.IsAvailable {
		t.Fatal("a slot outside working hours must not be available")
	}
}
