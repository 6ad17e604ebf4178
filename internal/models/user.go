package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"userUID"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IPAddress    string    `json:"ipAddress"`
	TokenVersion int       `json:"tokenVersion"`
	Avatar       string    `json:"avatar"`
	MFAEnabled   bool      `json:"mfa_enabled"`
	GlobalName   string    `json:"global_name"`
	Verified     bool      `json:"verified"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}

// IssuedToken is one signed session token handed out to a user. Tokens are
// recorded when issued but never consulted during verification.
type IssuedToken struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	TokenHash string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
