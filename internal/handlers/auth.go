package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-login-gateway/internal/models"
	"github.com/prefeitura-rio/app-login-gateway/internal/observability"
	"github.com/prefeitura-rio/app-login-gateway/internal/services"
	"github.com/prefeitura-rio/app-login-gateway/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// LoginFlow is the slice of the login service the HTTP layer depends on.
type LoginFlow interface {
	Login(ctx context.Context, appID, mToken string) (*services.LoginResult, error)
	Register(ctx context.Context, req *models.RegisterRequest) (*models.PersonalRecord, error)
	Lookup(ctx context.Context, citizenID string) (*models.PersonalRecord, error)
}

// Notifier is the slice of the dispatcher the HTTP layer depends on.
type Notifier interface {
	Send(ctx context.Context, appID string, userIDs []string, message string) (json.RawMessage, error)
}

// Handler holds the HTTP surface's dependencies
type Handler struct {
	flow     LoginFlow
	notifier Notifier
}

func New(flow LoginFlow, notifier Notifier) *Handler {
	return &Handler{flow: flow, notifier: notifier}
}

// Login godoc
// @Summary Citizen login
// @Description Exchanges an app-issued one-time mToken for the citizen's personal data via the identity gateway and data-exchange registry. Known citizens are upserted immediately; new citizens receive status "registration_required" and must confirm via POST /citizen/register.
// @Tags auth
// @Accept json
// @Produce json
// @Param data body models.LoginRequest true "App ID and one-time mToken"
// @Success 200 {object} models.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Identity gateway or registry failure"
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "Login")
	defer span.End()

	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	// Validation happens before any outbound call.
	if result := utils.ValidateLoginRequest(&req); !result.IsValid {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Missing appId or mToken"})
		return
	}

	span.SetAttributes(
		attribute.String("app_id", req.AppID),
		attribute.String("operation", "login"),
	)

	logger := observability.Logger().With(
		zap.String("app_id", req.AppID),
		zap.String("request_id", c.GetString("RequestID")),
	)
	logger.Info("Login called")

	result, err := h.flow.Login(ctx, req.AppID, req.MToken)
	if err != nil {
		respondError(c, err)
		return
	}

	if result.NewCitizen {
		c.JSON(http.StatusOK, models.LoginResponse{
			Status:  "registration_required",
			Message: "Citizen not registered yet; confirm via /citizen/register",
			Profile: result.Record,
		})
	} else {
		c.JSON(http.StatusOK, models.LoginResponse{
			Status:  "success",
			Message: "Login successful",
			Data: &models.LoginData{
				FirstName: result.Record.FirstName,
				LastName:  result.Record.LastName,
			},
		})
	}

	logger.Info("Login completed",
		zap.Bool("new_citizen", result.NewCitizen),
		zap.Duration("total_duration", time.Since(startTime)))
}
