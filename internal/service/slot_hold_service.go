package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSlotHeld is returned when another patient holds the slot mid-booking.
var ErrSlotHeld = errors.New("slot is currently held by another booking in progress")

// releaseHoldScript deletes a hold key only if the caller still owns it.
// Redis Go client automatically uses EVALSHA after the first call, so the
// script text is only shipped once.
var releaseHoldScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const (
	// Redis key prefix for in-flight booking holds
	RedisSlotHoldKeyPrefix = "slot:hold:"

	// How long a hold survives if the booking transaction never completes.
	// Long enough to cover the DB write, short enough that an abandoned
	// booking frees the slot quickly.
	slotHoldTTL = 15 * time.Second
)

// SlotHoldService places short-lived Redis holds on (doctor, slot) pairs
// while a booking transaction is in flight. The database partial unique
// index is the source of truth; the hold only narrows the race window so
// two patients rarely reach the DB with the same slot.
type SlotHoldService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewSlotHoldService(redisClient *redis.Client, log *logrus.Logger) *SlotHoldService {
	return &SlotHoldService{
		redisClient: redisClient,
		log:         log,
	}
}

// Acquire places a hold on the doctor's slot. Returns a token the caller
// must pass to Release. SET NX is atomic, no mutex needed.
//
// Redis being down is not fatal: the unique index still protects the slot,
// so we log and proceed without a hold.
func (s *SlotHoldService) Acquire(ctx context.Context, doctorID uuid.UUID, slot time.Time) (string, error) {
	key := s.holdKey(doctorID, slot)
	token := uuid.NewString()

	ok, err := s.redisClient.SetNX(ctx, key, token, slotHoldTTL).Result()
	if err != nil {
		s.log.Warnf("Failed to acquire slot hold %s, proceeding without hold: %+v", key, err)
		return "", nil
	}

	if !ok {
		return "", ErrSlotHeld
	}

	s.log.Debugf("Acquired slot hold %s", key)
	return token, nil
}

// Release frees a hold after the booking transaction finishes, whatever the
// outcome. Only deletes the key if the token still matches, so an expired
// hold re-acquired by someone else is never released by the old owner.
func (s *SlotHoldService) Release(ctx context.Context, doctorID uuid.UUID, slot time.Time, token string) {
	if token == "" {
		return
	}

	key := s.holdKey(doctorID, slot)
	if err := releaseHoldScript.Run(ctx, s.redisClient, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		s.log.Warnf("Failed to release slot hold %s: %+v", key, err)
	}
}

func (s *SlotHoldService) holdKey(doctorID uuid.UUID, slot time.Time) string {
	return fmt.Sprintf("%s%s:%d", RedisSlotHoldKeyPrefix, doctorID, slot.UTC().Unix())
}
