// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the core identity record of the marketplace. It carries both the
// public profile fields and the credential state the authentication flows
// mutate: the password hash, the outstanding OTP, and the last-issued token
// pair. The token pair doubles as a single-slot session: persisting a new pair
// revokes whatever was issued before, because refresh requires an exact match
// against the stored string.
type Account struct {
	ID           uuid.UUID  // The unique identifier for this account, immutable after creation.
	FullName     string     // Display name shown on listings and profiles.
	Email        string     // Login identifier; unique, compared case-insensitively.
	PasswordHash string     // bcrypt hash of the password; empty for non-EMAIL providers.
	Role         Role       // Privilege tier, assigned at creation and never changed here.
	Status       Status     // ACTIVE or INACTIVE; INACTIVE blocks both login and authorization.
	Provider     Provider   // How this account authenticates (only EMAIL is implemented).
	IsVerified   bool       // False until the first successful OTP verification.
	OTP          *string    // Outstanding one-time code, nil when none is pending.
	OTPExpiresAt *time.Time // Expiry of the outstanding OTP, nil when none is pending.
	AccessToken  string     // Last-issued access token string.
	RefreshToken string     // Last-issued refresh token string; the single active session slot.
	CreatedAt    time.Time  // Timestamp of when this account was created.
	UpdatedAt    time.Time  // Timestamp of the last modification to this account.
}

// PublicAccount is the subset of Account fields safe to return to callers.
// The password hash and token strings never leave the service layer.
type PublicAccount struct {
	ID         uuid.UUID `json:"id"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Role       Role      `json:"role"`
	Status     Status    `json:"status"`
	Provider   Provider  `json:"provider"`
	IsVerified bool      `json:"isVerified"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Public strips the credential fields from an account.
func (a *Account) Public() *PublicAccount {
	return &PublicAccount{
		ID:         a.ID,
		FullName:   a.FullName,
		Email:      a.Email,
		Role:       a.Role,
		Status:     a.Status,
		Provider:   a.Provider,
		IsVerified: a.IsVerified,
		CreatedAt:  a.CreatedAt,
	}
}

// HasPendingOTP reports whether an OTP is outstanding, regardless of expiry.
func (a *Account) HasPendingOTP() bool {
	return a.OTP != nil && a.OTPExpiresAt != nil
}
