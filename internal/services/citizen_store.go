package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/prefeitura-rio/app-login-gateway/internal/models"
	"github.com/prefeitura-rio/app-login-gateway/internal/observability"
	"go.uber.org/zap"
)

// CitizenStore persists personal records in the personal_data table.
// citizen_id is the unique business key; concurrent upserts on the same key
// are resolved by PostgreSQL's ON CONFLICT semantics (last write wins).
type CitizenStore struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewCitizenStore(db *sql.DB, logger *zap.Logger) *CitizenStore {
	return &CitizenStore{db: db, logger: logger}
}

const upsertQuery = `
	INSERT INTO personal_data
		(user_id, citizen_id, first_name, last_name, date_of_birth, mobile, email, notification, additional_info)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (citizen_id) DO UPDATE SET
		first_name      = EXCLUDED.first_name,
		last_name       = EXCLUDED.last_name,
		mobile          = EXCLUDED.mobile,
		email           = EXCLUDED.email,
		additional_info = COALESCE(NULLIF(EXCLUDED.additional_info, ''), personal_data.additional_info),
		updated_at      = now()`

const getQuery = `
	SELECT user_id, citizen_id, first_name, last_name, date_of_birth, mobile, email,
	       COALESCE(notification, ''), COALESCE(additional_info, ''), created_at, updated_at
	FROM personal_data
	WHERE citizen_id = $1`

// Upsert inserts the record or refreshes the mutable contact fields of an
// existing row. user_id and citizen_id are never altered on update. The
// notification preference is written on first insert only; it belongs to
// the citizen, not the registry, so repeat logins leave it untouched.
func (s *CitizenStore) Upsert(ctx context.Context, record *models.PersonalRecord) error {
	if record == nil || record.CitizenID == "" {
		return fmt.Errorf("personal record with citizen ID is required")
	}

	_, err := s.db.ExecContext(ctx, upsertQuery,
		record.UserID,
		record.CitizenID,
		record.FirstName,
		record.LastName,
		record.DateOfBirth,
		record.Mobile,
		record.Email,
		record.Notification,
		record.AdditionalInfo,
	)
	if err != nil {
		observability.DatabaseOperations.WithLabelValues("upsert", "error").Inc()
		s.logger.Error("failed to upsert personal record",
			zap.String("citizen_id", observability.MaskCitizenID(record.CitizenID)),
			zap.Error(err))
		return fmt.Errorf("failed to upsert personal record: %w", err)
	}

	observability.DatabaseOperations.WithLabelValues("upsert", "success").Inc()
	return nil
}

// Get returns the stored record for citizenID, or models.ErrCitizenNotFound.
func (s *CitizenStore) Get(ctx context.Context, citizenID string) (*models.PersonalRecord, error) {
	var record models.PersonalRecord
	err := s.db.QueryRowContext(ctx, getQuery, citizenID).Scan(
		&record.UserID,
		&record.CitizenID,
		&record.FirstName,
		&record.LastName,
		&record.DateOfBirth,
		&record.Mobile,
		&record.Email,
		&record.Notification,
		&record.AdditionalInfo,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			observability.DatabaseOperations.WithLabelValues("get", "miss").Inc()
			return nil, models.ErrCitizenNotFound
		}
		observability.DatabaseOperations.WithLabelValues("get", "error").Inc()
		return nil, fmt.Errorf("failed to get personal record: %w", err)
	}

	observability.DatabaseOperations.WithLabelValues("get", "success").Inc()
	return &record, nil
}
