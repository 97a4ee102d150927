package utils

import (
	"strings"
	"testing"

	"github.com/prefeitura-rio/app-login-gateway/internal/models"
)

func TestValidateLoginRequest(t *testing.T) {
	tests := []struct {
		name    string
		appID   string
		mToken  string
		isValid bool
	}{
		{
			name:    "valid request",
			appID:   "app-001",
			mToken:  "token-abc",
			isValid: true,
		},
		{
			name:    "whitespace trimmed",
			appID:   "  app-001  ",
			mToken:  "  token-abc  ",
			isValid: true,
		},
		{
			name:    "missing appId",
			appID:   "",
			mToken:  "token-abc",
			isValid: false,
		},
		{
			name:    "missing mToken",
			appID:   "app-001",
			mToken:  "",
			isValid: false,
		},
		{
			name:    "blank appId",
			appID:   "   ",
			mToken:  "token-abc",
			isValid: false,
		},
		{
			name:    "both missing",
			appID:   "",
			mToken:  "",
			isValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &models.LoginRequest{AppID: tt.appID, MToken: tt.mToken}
			result := ValidateLoginRequest(req)
			if result.IsValid != tt.isValid {
				t.Errorf("ValidateLoginRequest() IsValid = %v, want %v (errors: %v)", result.IsValid, tt.isValid, result.Errors)
			}
			if tt.isValid && (strings.HasPrefix(req.AppID, " ") || strings.HasSuffix(req.MToken, " ")) {
				t.Error("ValidateLoginRequest() did not trim whitespace")
			}
		})
	}
}

func TestValidateCitizenID(t *testing.T) {
	tests := []struct {
		name string
		id   string
		want bool
	}{
		{"valid 13 digits", "1234567890123", true},
		{"too short", "123456789012", false},
		{"too long", "12345678901234", false},
		{"contains letters", "12345678901ab", false},
		{"contains dash", "1234567-90123", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateCitizenID(tt.id); got != tt.want {
				t.Errorf("ValidateCitizenID(%q) = %v, want %v", tt.id, got, tt.want)
			}
		})
	}
}

func TestValidateRegisterRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.RegisterRequest
		isValid bool
	}{
		{
			name:    "citizen ID only",
			req:     models.RegisterRequest{CitizenID: "1234567890123"},
			isValid: true,
		},
		{
			name:    "with valid mobile",
			req:     models.RegisterRequest{CitizenID: "1234567890123", Mobile: "0812345678"},
			isValid: true,
		},
		{
			name:    "with international mobile",
			req:     models.RegisterRequest{CitizenID: "1234567890123", Mobile: "+66812345678"},
			isValid: true,
		},
		{
			name:    "missing citizen ID",
			req:     models.RegisterRequest{Mobile: "0812345678"},
			isValid: false,
		},
		{
			name:    "malformed citizen ID",
			req:     models.RegisterRequest{CitizenID: "12345"},
			isValid: false,
		},
		{
			name:    "invalid mobile",
			req:     models.RegisterRequest{CitizenID: "1234567890123", Mobile: "not-a-phone"},
			isValid: false,
		},
		{
			name:    "oversized additionalInfo",
			req:     models.RegisterRequest{CitizenID: "1234567890123", AdditionalInfo: strings.Repeat("x", 1001)},
			isValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidateRegisterRequest(&tt.req)
			if result.IsValid != tt.isValid {
				t.Errorf("ValidateRegisterRequest() IsValid = %v, want %v (errors: %v)", result.IsValid, tt.isValid, result.Errors)
			}
		})
	}
}

func TestValidatePushRequest(t *testing.T) {
	tests := []struct {
		name    string
		req     models.PushRequest
		isValid bool
	}{
		{
			name:    "valid single recipient",
			req:     models.PushRequest{AppID: "app-001", UserIDs: []string{"user-1"}},
			isValid: true,
		},
		{
			name:    "valid multiple recipients",
			req:     models.PushRequest{AppID: "app-001", UserIDs: []string{"user-1", "user-2"}, Message: "hi"},
			isValid: true,
		},
		{
			name:    "missing appId",
			req:     models.PushRequest{UserIDs: []string{"user-1"}},
			isValid: false,
		},
		{
			name:    "empty recipients",
			req:     models.PushRequest{AppID: "app-001", UserIDs: []string{}},
			isValid: false,
		},
		{
			name:    "nil recipients",
			req:     models.PushRequest{AppID: "app-001"},
			isValid: false,
		},
		{
			name:    "blank recipient entry",
			req:     models.PushRequest{AppID: "app-001", UserIDs: []string{"user-1", "  "}},
			isValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ValidatePushRequest(&tt.req)
			if result.IsValid != tt.isValid {
				t.Errorf("ValidatePushRequest() IsValid = %v, want %v (errors: %v)", result.IsValid, tt.isValid, result.Errors)
			}
		})
	}
}

func TestValidateMobile(t *testing.T) {
	tests := []struct {
		name   string
		mobile string
		want   bool
	}{
		{"local format", "0812345678", true},
		{"international format", "+66812345678", true},
		{"too short", "0812", false},
		{"letters", "08abc45678", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateMobile(tt.mobile); got != tt.want {
				t.Errorf("ValidateMobile(%q) = %v, want %v", tt.mobile, got, tt.want)
			}
		})
	}
}
