package service

import (
	"sync"
	"sync/atomic"
	"time"

	"hospital-management-server/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CompletionService sweeps Scheduled appointments whose slot has passed and
// marks them Completed. Runs in the background on a fixed interval.
//
// The sweep is a single bulk UPDATE keyed on status, so concurrent cancels
// or reschedules racing the sweep lose nothing: a row that changed status
// first simply no longer matches.
type CompletionService struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	interval        time.Duration

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

func NewCompletionService(db *gorm.DB, log *logrus.Logger, appointmentRepo repository.AppointmentRepository, interval time.Duration) *CompletionService {
	return &CompletionService{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		interval:        interval,
		stopChan:        make(chan struct{}),
	}
}

// Start launches the background sweep goroutine.
// Call Stop() during graceful shutdown.
func (s *CompletionService) Start() {
	s.wg.Add(1)
	go s.sweepLoop()
}

// Stop gracefully shuts down the service.
// Safe to call multiple times.
func (s *CompletionService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("CompletionService stopped")
	}
}

func (s *CompletionService) sweepLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// One sweep immediately on startup so a restart doesn't leave stale
	// Scheduled rows waiting a full interval.
	s.sweep()

	for {
		select {
		case <-s.stopChan:
			s.log.Debug("Completion sweep goroutine stopping")
			return
		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *CompletionService) sweep() {
	cutoff := time.Now().UTC()

	affected, err := s.appointmentRepo.CompletePast(s.db, cutoff)
	if err != nil {
		s.log.Warnf("Failed to auto-complete past appointments: %+v", err)
		return
	}

	if affected > 0 {
		s.log.Infof("Auto-completed %d past appointments", affected)
	}
}
