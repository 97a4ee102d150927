package observability

import (
	"github.com/prefeitura-rio/app-login-gateway/internal/logging"
	"go.uber.org/zap"
)

// Logger returns the global logger instance
func Logger() *zap.Logger {
	return logging.Logger
}

// MaskCitizenID masks a citizen identifier for logging. Only the first and
// last two digits of the 13-digit ID survive.
func MaskCitizenID(citizenID string) string {
	if len(citizenID) != 13 {
		return "*************"
	}
	return citizenID[:2] + "*********" + citizenID[11:]
}

// MaskToken masks a bearer or proof token for logging.
func MaskToken(token string) string {
	if len(token) <= 8 {
		return "********"
	}
	return token[:4] + "****" + token[len(token)-4:]
}
