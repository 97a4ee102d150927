package services

import (
	"context"
	"errors"
	"time"

	"github.com/prefeitura-rio/app-login-gateway/internal/models"
	"github.com/prefeitura-rio/app-login-gateway/internal/observability"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Seams between the workflow and its collaborators, kept narrow so tests can
// substitute fakes.
type tokenProvider interface {
	Token(ctx context.Context) (string, error)
}

type profileFetcher interface {
	FetchProfile(ctx context.Context, appID, mToken, accessToken string) (*models.PersonalRecord, error)
}

type recordStore interface {
	Upsert(ctx context.Context, record *models.PersonalRecord) error
	Get(ctx context.Context, citizenID string) (*models.PersonalRecord, error)
}

type pendingStore interface {
	Park(ctx context.Context, record *models.PersonalRecord) error
	Take(ctx context.Context, citizenID string) (*models.PersonalRecord, error)
}

// LoginResult is the outcome of a successful login workflow.
type LoginResult struct {
	Record *models.PersonalRecord
	// NewCitizen is true when the profile was parked for confirmation
	// instead of persisted.
	NewCitizen bool
}

// LoginService runs the login workflow strictly in order: gateway token,
// registry profile, then persist (known citizen) or park (new citizen). The
// first failing step aborts the rest of the request; there is no retry and
// no rollback after a persist.
type LoginService struct {
	tokens   tokenProvider
	profiles profileFetcher
	store    recordStore
	pending  pendingStore
	logger   *zap.Logger
}

func NewLoginService(tokens tokenProvider, profiles profileFetcher, store recordStore, pending pendingStore, logger *zap.Logger) *LoginService {
	return &LoginService{
		tokens:   tokens,
		profiles: profiles,
		store:    store,
		pending:  pending,
		logger:   logger,
	}
}

// Login exchanges the mToken for the citizen's profile and persists or parks
// it. appID and mToken must already be validated by the handler.
func (s *LoginService) Login(ctx context.Context, appID, mToken string) (*LoginResult, error) {
	start := time.Now()
	ctx, span := otel.Tracer("").Start(ctx, "LoginWorkflow")
	defer span.End()
	span.SetAttributes(attribute.String("app_id", appID))

	logger := s.logger.With(zap.String("app_id", appID))

	token, err := s.tokens.Token(ctx)
	if err != nil {
		observability.WorkflowSteps.WithLabelValues("token", "error").Inc()
		return nil, err
	}
	observability.WorkflowSteps.WithLabelValues("token", "success").Inc()

	profile, err := s.profiles.FetchProfile(ctx, appID, mToken, token)
	if err != nil {
		observability.WorkflowSteps.WithLabelValues("profile", "error").Inc()
		return nil, err
	}
	observability.WorkflowSteps.WithLabelValues("profile", "success").Inc()

	logger = logger.With(zap.String("citizen_id", observability.MaskCitizenID(profile.CitizenID)))

	_, err = s.store.Get(ctx, profile.CitizenID)
	switch {
	case errors.Is(err, models.ErrCitizenNotFound):
		// First login: park the profile and wait for an explicit register
		// confirmation before committing anything.
		if err := s.pending.Park(ctx, profile); err != nil {
			observability.WorkflowSteps.WithLabelValues("park", "error").Inc()
			return nil, err
		}
		observability.WorkflowSteps.WithLabelValues("park", "success").Inc()
		logger.Info("login requires registration",
			zap.Duration("duration", time.Since(start)))
		return &LoginResult{Record: profile, NewCitizen: true}, nil

	case err != nil:
		observability.WorkflowSteps.WithLabelValues("persist", "error").Inc()
		return nil, err
	}

	// Known citizen: refresh the mutable contact fields in place.
	if err := s.store.Upsert(ctx, profile); err != nil {
		observability.WorkflowSteps.WithLabelValues("persist", "error").Inc()
		return nil, err
	}
	observability.WorkflowSteps.WithLabelValues("persist", "success").Inc()

	logger.Info("login completed",
		zap.Duration("duration", time.Since(start)))

	return &LoginResult{Record: profile, NewCitizen: false}, nil
}

// Register confirms a parked registration: the pending profile is merged
// with the user-editable fields and persisted. The request's citizenId must
// match a parked profile; identifying fields never come from the request.
func (s *LoginService) Register(ctx context.Context, req *models.RegisterRequest) (*models.PersonalRecord, error) {
	ctx, span := otel.Tracer("").Start(ctx, "RegisterConfirmation")
	defer span.End()

	record, err := s.pending.Take(ctx, req.CitizenID)
	if err != nil {
		return nil, err
	}

	if req.Mobile != "" {
		record.Mobile = req.Mobile
	}
	if req.Notification != "" {
		record.Notification = req.Notification
	}
	if req.AdditionalInfo != "" {
		record.AdditionalInfo = req.AdditionalInfo
	}

	if err := s.store.Upsert(ctx, record); err != nil {
		observability.Registrations.WithLabelValues("persist_error").Inc()
		return nil, err
	}
	observability.Registrations.WithLabelValues("confirmed").Inc()

	s.logger.Info("registration confirmed",
		zap.String("citizen_id", observability.MaskCitizenID(record.CitizenID)))

	return record, nil
}

// Lookup returns the stored record for citizenID.
func (s *LoginService) Lookup(ctx context.Context, citizenID string) (*models.PersonalRecord, error) {
	return s.store.Get(ctx, citizenID)
}
