package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-login-gateway/internal/config"
	"github.com/prefeitura-rio/app-login-gateway/internal/models"
	"github.com/prefeitura-rio/app-login-gateway/internal/observability"
	"github.com/prefeitura-rio/app-login-gateway/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// Register godoc
// @Summary Confirm citizen registration
// @Description Confirms a pending registration created by a first login. The parked profile is merged with the user-editable fields and persisted. Identifying fields always come from the parked profile, never from this request.
// @Tags citizen
// @Accept json
// @Produce json
// @Param data body models.RegisterRequest true "Citizen ID plus user-editable fields"
// @Success 200 {object} models.PersonalRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse "No pending registration (expired or never started)"
// @Router /citizen/register [post]
func (h *Handler) Register(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "Register")
	defer span.End()

	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	if result := utils.ValidateRegisterRequest(&req); !result.IsValid {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid register request", Detail: result.Errors[0].Message})
		return
	}

	span.SetAttributes(
		attribute.String("citizen_id", observability.MaskCitizenID(req.CitizenID)),
		attribute.String("operation", "register"),
	)

	logger := observability.Logger().With(
		zap.String("citizen_id", observability.MaskCitizenID(req.CitizenID)),
		zap.String("request_id", c.GetString("RequestID")),
	)
	logger.Info("Register called")

	record, err := h.flow.Register(ctx, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)

	logger.Info("Register completed",
		zap.Duration("total_duration", time.Since(startTime)))
}

// GetCitizen godoc
// @Summary Get stored citizen data
// @Description Returns the persisted personal record for a citizen
// @Tags citizen
// @Produce json
// @Param citizenId path string true "Citizen identifier"
// @Success 200 {object} models.PersonalRecord
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /citizen/{citizenId} [get]
func (h *Handler) GetCitizen(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "GetCitizen")
	defer span.End()

	citizenID := c.Param("citizenId")
	if !utils.ValidateCitizenID(citizenID) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid citizen ID format"})
		return
	}

	span.SetAttributes(
		attribute.String("citizen_id", observability.MaskCitizenID(citizenID)),
		attribute.String("operation", "get_citizen"),
	)

	record, err := h.flow.Lookup(ctx, citizenID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

// HealthCheck godoc
// @Summary Health check
// @Description Checks the API's health and that of its dependencies (PostgreSQL and Redis)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "All services are healthy"
// @Failure 503 {object} HealthResponse "One or more services are unavailable"
// @Router /health [get]
func HealthCheck(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "HealthCheck")
	defer span.End()

	health := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Services:  make(map[string]string),
	}

	if config.DB == nil {
		health.Status = "unhealthy"
		health.Services["postgres"] = "unconfigured"
	} else if err := config.DB.PingContext(ctx); err != nil {
		health.Status = "unhealthy"
		health.Services["postgres"] = "unhealthy"
	} else {
		health.Services["postgres"] = "healthy"
	}

	if config.Redis == nil {
		health.Status = "unhealthy"
		health.Services["redis"] = "unconfigured"
	} else if err := config.Redis.Ping(ctx).Err(); err != nil {
		health.Status = "unhealthy"
		health.Services["redis"] = "unhealthy"
	} else {
		health.Services["redis"] = "healthy"
	}

	if health.Status == "healthy" {
		c.JSON(http.StatusOK, health)
	} else {
		c.JSON(http.StatusServiceUnavailable, health)
	}
}
