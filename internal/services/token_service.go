package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/prefeitura-rio/app-login-gateway/internal/models"
	"github.com/prefeitura-rio/app-login-gateway/internal/observability"
	"github.com/prefeitura-rio/app-login-gateway/internal/utils/httpclient"
	"go.uber.org/zap"
)

// tokenResponse is the identity gateway's token payload. The gateway returns
// the bearer token in the PascalCase field "Result".
type tokenResponse struct {
	Result string `json:"Result"`
}

// TokenClient exchanges the service credentials for a short-lived bearer
// token at the identity gateway. Tokens are fetched fresh per workflow
// invocation and never cached or retried.
type TokenClient struct {
	authURL        string
	consumerKey    string
	consumerSecret string
	agentID        string
	client         *http.Client
	logger         *zap.Logger
}

// NewTokenClient validates the static credentials up front so a
// misconfigured process fails at boot, not on the first login.
func NewTokenClient(authURL, consumerKey, consumerSecret, agentID string, logger *zap.Logger) (*TokenClient, error) {
	if authURL == "" || consumerKey == "" || consumerSecret == "" || agentID == "" {
		return nil, fmt.Errorf("token client requires auth URL, consumer key, consumer secret and agent ID")
	}
	return &TokenClient{
		authURL:        authURL,
		consumerKey:    consumerKey,
		consumerSecret: consumerSecret,
		agentID:        agentID,
		client:         httpclient.Default(),
		logger:         logger,
	}, nil
}

// Token performs the credential exchange and returns the bearer token.
// Transport failures and an empty Result both collapse into
// models.ErrTokenUnavailable.
func (c *TokenClient) Token(ctx context.Context) (string, error) {
	start := time.Now()
	logger := c.logger.With(zap.String("operation", "gateway_token"))

	// ConsumerSecret and AgentID travel as query parameters, Consumer-Key as
	// a header. This split is the gateway's contract.
	reqURL, err := url.Parse(c.authURL)
	if err != nil {
		return "", fmt.Errorf("invalid gateway auth URL: %w", err)
	}
	query := reqURL.Query()
	query.Set("ConsumerSecret", c.consumerSecret)
	query.Set("AgentID", c.agentID)
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Consumer-Key", c.consumerKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		observability.UpstreamRequests.WithLabelValues("gateway", "error").Inc()
		logger.Error("token request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", models.ErrTokenUnavailable, err)
	}
	defer resp.Body.Close()

	observability.UpstreamRequestDuration.WithLabelValues("gateway").Observe(time.Since(start).Seconds())

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		observability.UpstreamRequests.WithLabelValues("gateway", "error").Inc()
		logger.Error("failed to read token response body", zap.Error(err))
		return "", fmt.Errorf("%w: %v", models.ErrTokenUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		observability.UpstreamRequests.WithLabelValues("gateway", "error").Inc()
		upstream := &models.UpstreamError{Service: "gateway", StatusCode: resp.StatusCode, Body: string(body)}
		logger.Error("token request rejected",
			zap.Int("status_code", resp.StatusCode))
		return "", fmt.Errorf("%w: %v", models.ErrTokenUnavailable, upstream)
	}

	var tokenResp tokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		observability.UpstreamRequests.WithLabelValues("gateway", "error").Inc()
		logger.Error("failed to decode token response", zap.Error(err))
		return "", fmt.Errorf("%w: %v", models.ErrTokenUnavailable, err)
	}

	if tokenResp.Result == "" {
		observability.UpstreamRequests.WithLabelValues("gateway", "empty").Inc()
		logger.Error("gateway returned empty token")
		return "", models.ErrTokenUnavailable
	}

	observability.UpstreamRequests.WithLabelValues("gateway", "success").Inc()
	logger.Debug("token received",
		zap.String("token", observability.MaskToken(tokenResp.Result)),
		zap.Duration("duration", time.Since(start)))

	return tokenResp.Result, nil
}
