package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-login-gateway/internal/models"
	"github.com/prefeitura-rio/app-login-gateway/internal/observability"
	"go.uber.org/zap"
)

// ErrorResponse is the JSON envelope for failed requests. Detail carries the
// upstream diagnostic payload when one exists.
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// SuccessResponse is the JSON envelope for simple successful requests
type SuccessResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthResponse reports the API's health and that of its dependencies
type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// respondError translates workflow errors into HTTP responses. Each step's
// failures collapse into one caller-facing class; the upstream diagnostic
// body is attached when available.
func respondError(c *gin.Context, err error) {
	var upstream *models.UpstreamError
	detail := ""
	if errors.As(err, &upstream) {
		detail = upstream.Body
	}

	status := http.StatusInternalServerError
	message := "Internal server error"

	switch {
	case errors.Is(err, models.ErrTokenUnavailable):
		status = http.StatusBadGateway
		message = "Identity gateway did not issue a token"
	case errors.Is(err, models.ErrProfileNotFound) || upstream != nil && upstream.Service == "registry":
		status = http.StatusBadGateway
		message = "Failed to retrieve personal data"
	case errors.Is(err, models.ErrRegistrationNotFound):
		status = http.StatusNotFound
		message = "No pending registration for this citizen (expired or never started)"
	case errors.Is(err, models.ErrCitizenNotFound):
		status = http.StatusNotFound
		message = "Citizen not found"
	case errors.Is(err, models.ErrNoRecipients):
		status = http.StatusBadRequest
		message = models.ErrNoRecipients.Error()
	case upstream != nil:
		status = http.StatusBadGateway
		message = "Upstream request failed"
	}

	if status == http.StatusInternalServerError {
		observability.Logger().Error("request failed", zap.Error(err))
	}

	c.JSON(status, ErrorResponse{Error: message, Detail: detail})
}
