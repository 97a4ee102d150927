package utils

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
	"github.com/prefeitura-rio/app-login-gateway/internal/models"
)

// ValidationError represents a validation error with field and message
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult represents the result of validation
type ValidationResult struct {
	IsValid bool              `json:"is_valid"`
	Errors  []ValidationError `json:"errors,omitempty"`
}

// NewValidationResult creates a new validation result
func NewValidationResult() *ValidationResult {
	return &ValidationResult{
		IsValid: true,
		Errors:  []ValidationError{},
	}
}

// AddError adds a validation error to the result
func (vr *ValidationResult) AddError(field, message string) {
	vr.IsValid = false
	vr.Errors = append(vr.Errors, ValidationError{
		Field:   field,
		Message: message,
	})
}

// ValidateLoginRequest checks the inbound login payload. Both fields are
// trimmed of surrounding whitespace; blank values short-circuit the workflow
// before any outbound call.
func ValidateLoginRequest(req *models.LoginRequest) *ValidationResult {
	result := NewValidationResult()

	req.AppID = strings.TrimSpace(req.AppID)
	req.MToken = strings.TrimSpace(req.MToken)

	if req.AppID == "" {
		result.AddError("appId", "appId is required")
	}
	if req.MToken == "" {
		result.AddError("mToken", "mToken is required")
	}

	return result
}

// ValidateCitizenID reports whether id looks like a 13-digit citizen
// identifier.
func ValidateCitizenID(id string) bool {
	if len(id) != 13 {
		return false
	}
	for _, r := range id {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidateRegisterRequest checks the register confirmation payload.
func ValidateRegisterRequest(req *models.RegisterRequest) *ValidationResult {
	result := NewValidationResult()

	req.CitizenID = strings.TrimSpace(req.CitizenID)
	req.Mobile = strings.TrimSpace(req.Mobile)

	if req.CitizenID == "" {
		result.AddError("citizenId", "citizenId is required")
	} else if !ValidateCitizenID(req.CitizenID) {
		result.AddError("citizenId", "citizenId must be 13 digits")
	}

	if req.Mobile != "" && !ValidateMobile(req.Mobile) {
		result.AddError("mobile", "mobile is not a valid phone number")
	}

	if len(req.AdditionalInfo) > 1000 {
		result.AddError("additionalInfo", "additionalInfo must not exceed 1000 characters")
	}

	return result
}

// ValidatePushRequest checks the notification dispatch payload.
func ValidatePushRequest(req *models.PushRequest) *ValidationResult {
	result := NewValidationResult()

	req.AppID = strings.TrimSpace(req.AppID)

	if req.AppID == "" {
		result.AddError("appId", "appId is required")
	}
	if len(req.UserIDs) == 0 {
		result.AddError("userIds", "at least one userId is required")
	}
	for _, id := range req.UserIDs {
		if strings.TrimSpace(id) == "" {
			result.AddError("userIds", "userIds must not contain blank entries")
			break
		}
	}

	return result
}

// ValidateMobile reports whether mobile parses as a valid phone number.
// Numbers without a country prefix are interpreted as Thai.
func ValidateMobile(mobile string) bool {
	num, err := phonenumbers.Parse(mobile, "TH")
	if err != nil {
		return false
	}
	return phonenumbers.IsValidNumber(num)
}
