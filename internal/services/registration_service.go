package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/prefeitura-rio/app-login-gateway/internal/models"
	"github.com/prefeitura-rio/app-login-gateway/internal/observability"
	"github.com/prefeitura-rio/app-login-gateway/internal/redisclient"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RegistrationStore parks the freshly retrieved profile of a new citizen in
// Redis until the app confirms registration. Redis expiry enforces the
// confirmation window; an expired entry simply requires a fresh login.
type RegistrationStore struct {
	redis  *redisclient.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewRegistrationStore(client *redisclient.Client, ttl time.Duration, logger *zap.Logger) *RegistrationStore {
	return &RegistrationStore{redis: client, ttl: ttl, logger: logger}
}

func pendingKey(citizenID string) string {
	return fmt.Sprintf("registration:pending:%s", citizenID)
}

// Park stashes the profile under the citizen's pending key.
func (s *RegistrationStore) Park(ctx context.Context, record *models.PersonalRecord) error {
	if record == nil || record.CitizenID == "" {
		return fmt.Errorf("personal record with citizen ID is required")
	}

	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal pending registration: %w", err)
	}

	if err := s.redis.Set(ctx, pendingKey(record.CitizenID), data, s.ttl).Err(); err != nil {
		s.logger.Error("failed to park pending registration",
			zap.String("citizen_id", observability.MaskCitizenID(record.CitizenID)),
			zap.Error(err))
		return fmt.Errorf("failed to park pending registration: %w", err)
	}

	observability.Registrations.WithLabelValues("parked").Inc()
	return nil
}

// Take fetches and removes the pending profile for citizenID. A missing or
// expired entry yields models.ErrRegistrationNotFound.
func (s *RegistrationStore) Take(ctx context.Context, citizenID string) (*models.PersonalRecord, error) {
	key := pendingKey(citizenID)

	data, err := s.redis.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			observability.Registrations.WithLabelValues("expired").Inc()
			return nil, models.ErrRegistrationNotFound
		}
		return nil, fmt.Errorf("failed to read pending registration: %w", err)
	}

	var record models.PersonalRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending registration: %w", err)
	}

	if err := s.redis.Del(ctx, key).Err(); err != nil {
		// The entry will expire on its own; log and continue.
		s.logger.Warn("failed to delete pending registration",
			zap.String("citizen_id", observability.MaskCitizenID(citizenID)),
			zap.Error(err))
	}

	return &record, nil
}
