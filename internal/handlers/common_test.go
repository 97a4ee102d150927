package handlers

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-login-gateway/internal/logging"
	"github.com/prefeitura-rio/app-login-gateway/internal/models"
	"github.com/prefeitura-rio/app-login-gateway/internal/services"
)

var testSetupOnce sync.Once

// setupTestEnvironment initializes the test environment once for the entire
// package.
func setupTestEnvironment() {
	testSetupOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		if err := logging.InitLogger(); err != nil {
			panic(err)
		}
	})
}

// stubFlow is a canned LoginFlow implementation for handler tests.
type stubFlow struct {
	loginResult *services.LoginResult
	loginErr    error
	loginCalls  int

	registerRecord *models.PersonalRecord
	registerErr    error

	lookupRecord *models.PersonalRecord
	lookupErr    error
}

func (s *stubFlow) Login(ctx context.Context, appID, mToken string) (*services.LoginResult, error) {
	s.loginCalls++
	return s.loginResult, s.loginErr
}

func (s *stubFlow) Register(ctx context.Context, req *models.RegisterRequest) (*models.PersonalRecord, error) {
	return s.registerRecord, s.registerErr
}

func (s *stubFlow) Lookup(ctx context.Context, citizenID string) (*models.PersonalRecord, error) {
	return s.lookupRecord, s.lookupErr
}

// stubNotifier is a canned Notifier implementation for handler tests.
type stubNotifier struct {
	ack   json.RawMessage
	err   error
	calls int
}

func (s *stubNotifier) Send(ctx context.Context, appID string, userIDs []string, message string) (json.RawMessage, error) {
	s.calls++
	return s.ack, s.err
}

// setupRouter wires the handler under test into a fresh test router.
func setupRouter(flow LoginFlow, notifier Notifier) *gin.Engine {
	setupTestEnvironment()

	h := New(flow, notifier)
	r := gin.New()
	v1 := r.Group("/v1")
	{
		v1.GET("/health", HealthCheck)
		v1.POST("/auth/login", h.Login)
		v1.POST("/citizen/register", h.Register)
		v1.GET("/citizen/:citizenId", h.GetCitizen)
		v1.POST("/notification/push", h.PushNotification)
	}
	return r
}
