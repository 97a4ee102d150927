package models

import (
	"errors"
	"fmt"
)

// Error constants for the login workflow
var (
	ErrTokenUnavailable     = errors.New("identity gateway returned no token")
	ErrProfileNotFound      = errors.New("registry returned no profile (not found or mToken expired)")
	ErrCitizenNotFound      = errors.New("citizen not found")
	ErrRegistrationNotFound = errors.New("pending registration not found or expired")
	ErrNoRecipients         = errors.New("at least one recipient is required")
)

// UpstreamError carries the diagnostic payload of a failed upstream call so
// handlers can surface it without retrying.
type UpstreamError struct {
	Service    string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s request failed with status %d", e.Service, e.StatusCode)
	}
	return fmt.Sprintf("%s request failed with status %d: %s", e.Service, e.StatusCode, e.Body)
}
