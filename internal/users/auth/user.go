// Package auth implements the identity provider: account registration,
// credential login, and refresh-token session management.
package auth

import (
	"time"

	"github.com/felipeam10/dsmovie-restassured/internal/platform/sec"
)

// Account is a registered identity. PasswordHash never leaves the server.
type Account struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"`
	Role         sec.UserRole `json:"role"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"-"`
}

// TokenPair is the credential material handed to a client on login and
// refresh. The refresh token is opaque; only its hash is stored server-side.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// Session binds a hashed refresh token to an account for the lifetime of the
// refresh window.
type Session struct {
	AccountID string `json:"accountId"`
	Username  string `json:"username"`
	Role      string `json:"role"`
}

// Global field names for validation
const (
	FieldUsername = "username"
	FieldEmail    = "email"
	FieldPassword = "password"
	FieldLogin    = "login"
	FieldRefresh  = "refreshToken"
)

// Credential length bounds
const (
	MinUsernameLen = 3
	MaxUsernameLen = 50
	MinPasswordLen = 8
	MaxPasswordLen = 72 // bcrypt input limit
)
