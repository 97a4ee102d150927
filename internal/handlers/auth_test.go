package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prefeitura-rio/app-login-gateway/internal/models"
	"github.com/prefeitura-rio/app-login-gateway/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postJSON(r http.Handler, path string, body []byte) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", path, bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestLogin_KnownCitizen(t *testing.T) {
	flow := &stubFlow{
		loginResult: &services.LoginResult{
			Record: &models.PersonalRecord{
				CitizenID: "1234567890123",
				FirstName: "Somchai",
				LastName:  "Jaidee",
			},
		},
	}
	r := setupRouter(flow, &stubNotifier{})

	w := postJSON(r, "/v1/auth/login", []byte(`{"appId":"app-001","mToken":"token-abc"}`))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "Somchai", resp.Data.FirstName)
	assert.Equal(t, "Jaidee", resp.Data.LastName)
	assert.Nil(t, resp.Profile)
}

func TestLogin_NewCitizenRequiresRegistration(t *testing.T) {
	flow := &stubFlow{
		loginResult: &services.LoginResult{
			Record: &models.PersonalRecord{
				CitizenID: "1234567890123",
				FirstName: "Somchai",
			},
			NewCitizen: true,
		},
	}
	r := setupRouter(flow, &stubNotifier{})

	w := postJSON(r, "/v1/auth/login", []byte(`{"appId":"app-001","mToken":"token-abc"}`))
	require.Equal(t, http.StatusOK, w.Code)

	var resp models.LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "registration_required", resp.Status)
	require.NotNil(t, resp.Profile)
	assert.Equal(t, "1234567890123", resp.Profile.CitizenID)
	assert.Nil(t, resp.Data)
}

func TestLogin_ValidationRejectsBeforeWorkflow(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing mToken", `{"appId":"app-001"}`},
		{"missing appId", `{"mToken":"token-abc"}`},
		{"blank fields", `{"appId":"  ","mToken":"  "}`},
		{"malformed JSON", `{"appId":`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flow := &stubFlow{}
			r := setupRouter(flow, &stubNotifier{})

			w := postJSON(r, "/v1/auth/login", []byte(tt.body))
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, 0, flow.loginCalls, "workflow must not run for invalid input")
		})
	}
}

func TestLogin_UpstreamFailures(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"token unavailable", models.ErrTokenUnavailable, http.StatusBadGateway},
		{"profile not found", models.ErrProfileNotFound, http.StatusBadGateway},
		{"registry rejection", &models.UpstreamError{Service: "registry", StatusCode: 403, Body: "forbidden"}, http.StatusBadGateway},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := setupRouter(&stubFlow{loginErr: tt.err}, &stubNotifier{})

			w := postJSON(r, "/v1/auth/login", []byte(`{"appId":"app-001","mToken":"token-abc"}`))
			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestLogin_UpstreamDetailSurfaced(t *testing.T) {
	flow := &stubFlow{loginErr: &models.UpstreamError{Service: "registry", StatusCode: 500, Body: `{"code":"X123"}`}}
	r := setupRouter(flow, &stubNotifier{})

	w := postJSON(r, "/v1/auth/login", []byte(`{"appId":"app-001","mToken":"token-abc"}`))
	require.Equal(t, http.StatusBadGateway, w.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to retrieve personal data", resp.Error)
	assert.Contains(t, resp.Detail, "X123")
}
