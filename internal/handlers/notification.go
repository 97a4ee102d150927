package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-login-gateway/internal/models"
	"github.com/prefeitura-rio/app-login-gateway/internal/observability"
	"github.com/prefeitura-rio/app-login-gateway/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// PushNotification godoc
// @Summary Dispatch push notifications
// @Description Sends a push message to one or more user IDs through the notification endpoint. The batch is all-or-nothing; the upstream acknowledgement is passed through unchanged.
// @Tags notification
// @Accept json
// @Produce json
// @Param data body models.PushRequest true "App ID, recipient user IDs and optional message"
// @Success 200 {object} object "Upstream acknowledgement payload"
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse "Token or dispatch failure"
// @Router /notification/push [post]
func (h *Handler) PushNotification(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "PushNotification")
	defer span.End()

	var req models.PushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body: " + err.Error()})
		return
	}

	// Rejected here, before any outbound call.
	if result := utils.ValidatePushRequest(&req); !result.IsValid {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid push request", Detail: result.Errors[0].Message})
		return
	}

	span.SetAttributes(
		attribute.String("app_id", req.AppID),
		attribute.Int("recipients", len(req.UserIDs)),
		attribute.String("operation", "push_notification"),
	)

	logger := observability.Logger().With(
		zap.String("app_id", req.AppID),
		zap.Int("recipients", len(req.UserIDs)),
	)
	logger.Info("PushNotification called")

	ack, err := h.notifier.Send(ctx, req.AppID, req.UserIDs, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Data(http.StatusOK, "application/json", ack)

	logger.Info("PushNotification completed",
		zap.Duration("total_duration", time.Since(startTime)))
}
