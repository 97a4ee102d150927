package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/prefeitura-rio/app-login-gateway/internal/models"
	"github.com/prefeitura-rio/app-login-gateway/internal/observability"
	"github.com/prefeitura-rio/app-login-gateway/internal/utils/httpclient"
	"go.uber.org/zap"
)

// notificationItem pairs one message with one recipient in the batch body.
type notificationItem struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

// notificationRequest is the push endpoint's batch payload.
type notificationRequest struct {
	AppID        string             `json:"appId"`
	Data         []notificationItem `json:"data"`
	SendDateTime string             `json:"sendDateTime"`
}

// Dispatcher submits batch push notifications through the notification
// endpoint, fetching a fresh gateway token for every dispatch. The batch is
// all-or-nothing: the upstream acknowledgement is passed through opaquely
// with no per-recipient status.
type Dispatcher struct {
	tokens         *TokenClient
	apiURL         string
	consumerKey    string
	defaultMessage string
	enabled        bool
	client         *http.Client
	logger         *zap.Logger
}

func NewDispatcher(tokens *TokenClient, apiURL, consumerKey, defaultMessage string, enabled bool, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		tokens:         tokens,
		apiURL:         apiURL,
		consumerKey:    consumerKey,
		defaultMessage: defaultMessage,
		enabled:        enabled,
		client:         httpclient.Default(),
		logger:         logger,
	}
}

// Send dispatches message to every user ID in one batch and returns the
// upstream acknowledgement payload.
func (d *Dispatcher) Send(ctx context.Context, appID string, userIDs []string, message string) (json.RawMessage, error) {
	logger := d.logger.With(
		zap.String("operation", "notification_dispatch"),
		zap.Int("recipients", len(userIDs)),
	)

	if appID == "" {
		return nil, fmt.Errorf("appId is required")
	}
	if len(userIDs) == 0 {
		return nil, models.ErrNoRecipients
	}
	if message == "" {
		message = d.defaultMessage
	}

	if !d.enabled {
		logger.Info("notification dispatch is disabled, skipping send")
		return json.RawMessage(`{"status":"skipped"}`), nil
	}

	token, err := d.tokens.Token(ctx)
	if err != nil {
		observability.NotificationsDispatched.WithLabelValues("token_error").Inc()
		logger.Error("failed to get gateway token", zap.Error(err))
		return nil, fmt.Errorf("failed to get gateway token: %w", err)
	}

	items := make([]notificationItem, len(userIDs))
	for i, id := range userIDs {
		items[i] = notificationItem{Message: message, UserID: id}
	}

	payload, err := json.Marshal(notificationRequest{
		AppID:        appID,
		Data:         items,
		SendDateTime: time.Now().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal notification request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.apiURL, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create notification request: %w", err)
	}
	req.Header.Set("Consumer-Key", d.consumerKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Token", token)

	start := time.Now()
	resp, err := d.client.Do(req)
	if err != nil {
		observability.NotificationsDispatched.WithLabelValues("error").Inc()
		logger.Error("notification request failed", zap.Error(err))
		return nil, fmt.Errorf("failed to send notification request: %w", err)
	}
	defer resp.Body.Close()

	observability.UpstreamRequestDuration.WithLabelValues("notify").Observe(time.Since(start).Seconds())

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.NotificationsDispatched.WithLabelValues("error").Inc()
		logger.Error("failed to read notification response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read notification response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		observability.NotificationsDispatched.WithLabelValues("error").Inc()
		logger.Error("notification request rejected", zap.Int("status_code", resp.StatusCode))
		return nil, &models.UpstreamError{Service: "notify", StatusCode: resp.StatusCode, Body: string(body)}
	}

	observability.NotificationsDispatched.WithLabelValues("success").Inc()
	logger.Info("notification dispatched")

	return json.RawMessage(body), nil
}
