package models

import "time"

// PersonalRecord is the citizen profile returned by the data-exchange
// registry and stored in the personal_data table. The JSON field names are
// the registry's wire contract and must not be renamed.
type PersonalRecord struct {
	UserID         string `json:"userId"`
	CitizenID      string `json:"citizenId"`
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	DateOfBirth    string `json:"dateOfBirthString"`
	Mobile         string `json:"mobile"`
	Email          string `json:"email"`
	Notification   string `json:"notification"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// LoginRequest is the inbound login payload. The mToken is a single-use
// proof token issued to the app by the identity platform.
type LoginRequest struct {
	AppID  string `json:"appId"`
	MToken string `json:"mToken"`
}

// LoginData is the minimal success payload echoed back to the app.
type LoginData struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// LoginResponse is returned by POST /auth/login. Status is "success" when
// the citizen row was upserted, "registration_required" when the profile was
// parked and awaits confirmation via POST /citizen/register.
type LoginResponse struct {
	Status  string          `json:"status"`
	Message string          `json:"message,omitempty"`
	Data    *LoginData      `json:"data,omitempty"`
	Profile *PersonalRecord `json:"profile,omitempty"`
}

// RegisterRequest confirms a parked registration. Only the user-editable
// fields may be supplied; identifying fields come from the parked profile.
type RegisterRequest struct {
	CitizenID      string `json:"citizenId"`
	Mobile         string `json:"mobile,omitempty"`
	Notification   string `json:"notification,omitempty"`
	AdditionalInfo string `json:"additionalInfo,omitempty"`
}

// PushRequest is the inbound notification dispatch payload.
type PushRequest struct {
	AppID   string   `json:"appId"`
	UserIDs []string `json:"userIds"`
	Message string   `json:"message,omitempty"`
}
