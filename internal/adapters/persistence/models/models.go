package models

import "time"

// Records mirror the remote record-store schema. Field names are the store's
// camelCase wire names; ids are store-generated opaque strings.

// User represents a citizen record
type User struct {
	ID                string    `json:"id"`
	FirstName         string    `json:"firstName,omitempty"`
	LastName          string    `json:"lastName,omitempty"`
	Email             string    `json:"email,omitempty"`
	PhoneNumber       string    `json:"phoneNumber"`
	VoterID           string    `json:"voterId,omitempty"`
	ProfilePictureURL string    `json:"profilePictureUrl,omitempty"`
	Address           string    `json:"address,omitempty"`
	Description       string    `json:"description,omitempty"`
	IsActive          bool      `json:"isActive"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// UserCreate is the create payload for a User record
type UserCreate struct {
	PhoneNumber string `json:"phoneNumber"`
	VoterID     string `json:"voterId,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// UserProfileUpdate is the self-service profile update payload.
// Pointer fields distinguish "not sent" from "clear".
type UserProfileUpdate struct {
	FirstName         *string `json:"firstName,omitempty"`
	LastName          *string `json:"lastName,omitempty"`
	Email             *string `json:"email,omitempty"`
	ProfilePictureURL *string `json:"profilePictureUrl,omitempty"`
	Address           *string `json:"address,omitempty"`
	Description       *string `json:"description,omitempty"`
}

// VoterID represents an electoral-roll eligibility record (read-only here)
type VoterID struct {
	ID        string    `json:"id"`
	VoterID   string    `json:"voterId"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// OTP represents a one-time-passcode challenge record
type OTP struct {
	ID          string    `json:"id"`
	PhoneNumber string    `json:"phoneNumber"`
	OTP         string    `json:"otp"`
	ExpiresAt   time.Time `json:"expiresAt"`
	IsUsed      bool      `json:"isUsed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// OTPCreate is the create payload for an OTP record
type OTPCreate struct {
	PhoneNumber string    `json:"phoneNumber"`
	OTP         string    `json:"otp"`
	ExpiresAt   time.Time `json:"expiresAt"`
	IsUsed      bool      `json:"isUsed"`
}

// Session represents a citizen login session, distinct from the bearer token
type Session struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	PhoneNumber string    `json:"phoneNumber"`
	ExpiresAt   time.Time `json:"expiresAt"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// SessionCreate is the create payload for a Session record
type SessionCreate struct {
	UserID      string    `json:"userId"`
	PhoneNumber string    `json:"phoneNumber"`
	ExpiresAt   time.Time `json:"expiresAt"`
	IsActive    bool      `json:"isActive"`
}

// IsExpired reports whether the session's own expiry has passed
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Admin represents a staff identity
type Admin struct {
	ID        string     `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	Password  string     `json:"password"` // salted hash; stripped via ToResponse
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// AdminResponse DTO (never carries the password hash)
type AdminResponse struct {
	ID        string     `json:"id"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Email     string     `json:"email"`
	IsActive  bool       `json:"isActive"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
}

func (a *Admin) ToResponse() *AdminResponse {
	return &AdminResponse{
		ID:        a.ID,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Email:     a.Email,
		IsActive:  a.IsActive,
		LastLogin: a.LastLogin,
		CreatedAt: a.CreatedAt,
	}
}

// AdminCreate is the create payload for an Admin record
type AdminCreate struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Password  string `json:"password"` // already hashed by the service
	IsActive  bool   `json:"isActive"`
}

// AdminUpdate is the admin-management update payload
type AdminUpdate struct {
	FirstName *string `json:"firstName,omitempty"`
	LastName  *string `json:"lastName,omitempty"`
	Email     *string `json:"email,omitempty"`
	Password  *string `json:"password,omitempty"` // re-hashed by the service when present
	IsActive  *bool   `json:"isActive,omitempty"`
}
