package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prefeitura-rio/app-login-gateway/internal/models"
	"github.com/prefeitura-rio/app-login-gateway/internal/observability"
	"github.com/prefeitura-rio/app-login-gateway/internal/utils/httpclient"
	"go.uber.org/zap"
)

// profileRequest is the registry's lookup payload. The PascalCase field
// names are the registry's contract.
type profileRequest struct {
	AppID  string `json:"AppId"`
	MToken string `json:"MToken"`
}

// profileResponse wraps the profile under the lowercase "result" envelope.
// A 200 response without the envelope means the mToken was already consumed
// or the record does not exist.
type profileResponse struct {
	Result *models.PersonalRecord `json:"result"`
}

// ProfileClient fetches a citizen's personal data from the data-exchange
// registry using an app-issued one-time mToken and a fresh bearer token.
type ProfileClient struct {
	apiURL      string
	consumerKey string
	client      *http.Client
	logger      *zap.Logger
}

func NewProfileClient(apiURL, consumerKey string, logger *zap.Logger) (*ProfileClient, error) {
	if apiURL == "" || consumerKey == "" {
		return nil, fmt.Errorf("profile client requires API URL and consumer key")
	}
	return &ProfileClient{
		apiURL:      apiURL,
		consumerKey: consumerKey,
		client:      httpclient.Default(),
		logger:      logger,
	}, nil
}

// FetchProfile exchanges the mToken for the citizen's personal data.
// Transport errors, malformed payloads and a missing result envelope are
// logged distinctly but all abort the workflow.
func (c *ProfileClient) FetchProfile(ctx context.Context, appID, mToken, accessToken string) (*models.PersonalRecord, error) {
	start := time.Now()
	logger := c.logger.With(zap.String("operation", "registry_profile"))

	appID = strings.TrimSpace(appID)
	mToken = strings.TrimSpace(mToken)
	if appID == "" || mToken == "" {
		return nil, fmt.Errorf("appID and mToken are required")
	}

	payload, err := json.Marshal(profileRequest{AppID: appID, MToken: mToken})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewBuffer(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create profile request: %w", err)
	}
	req.Header.Set("Consumer-Key", c.consumerKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Token", accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		observability.UpstreamRequests.WithLabelValues("registry", "error").Inc()
		logger.Error("profile request failed", zap.Error(err))
		return nil, fmt.Errorf("failed to send profile request: %w", err)
	}
	defer resp.Body.Close()

	observability.UpstreamRequestDuration.WithLabelValues("registry").Observe(time.Since(start).Seconds())

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.UpstreamRequests.WithLabelValues("registry", "error").Inc()
		logger.Error("failed to read profile response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read profile response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		observability.UpstreamRequests.WithLabelValues("registry", "error").Inc()
		logger.Error("profile request rejected", zap.Int("status_code", resp.StatusCode))
		return nil, &models.UpstreamError{Service: "registry", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var profileResp profileResponse
	if err := json.Unmarshal(body, &profileResp); err != nil {
		observability.UpstreamRequests.WithLabelValues("registry", "malformed").Inc()
		logger.Error("failed to decode profile response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode profile response: %w", err)
	}

	if profileResp.Result == nil {
		// The registry answered but without the data envelope: the mToken
		// expired or the record is gone. Distinct from a transport error.
		observability.UpstreamRequests.WithLabelValues("registry", "empty").Inc()
		logger.Warn("profile response missing result envelope")
		return nil, models.ErrProfileNotFound
	}

	observability.UpstreamRequests.WithLabelValues("registry", "success").Inc()
	logger.Debug("profile received",
		zap.String("citizen_id", observability.MaskCitizenID(profileResp.Result.CitizenID)),
		zap.Duration("duration", time.Since(start)))

	return profileResp.Result, nil
}
