// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"trailhub/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Input DTOs ---

// SignupInput defines the data required to register a new account. The role
// is validated in the service, not here: a reserved-role signup must reach it
// to be rejected as Forbidden rather than as a validation failure.
type SignupInput struct {
	FullName string `json:"fullName" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"required"`
}

// LoginInput defines the data required to log in.
type LoginInput struct {
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// VerifyOTPInput defines the data required to verify an emailed OTP. The
// remember-me flag carries through to the session issued on success, exactly
// as it would on a login.
type VerifyOTPInput struct {
	Email      string `json:"email" validate:"required,email"`
	OTP        string `json:"otp" validate:"required,len=6,numeric"`
	RememberMe bool   `json:"rememberMe"`
}

// ChangePasswordInput defines the data required to change a password while
// logged in. The account ID comes from the verified token, not the body.
type ChangePasswordInput struct {
	AccountID   uuid.UUID `json:"-"`
	OldPassword string    `json:"oldPassword" validate:"required"`
	NewPassword string    `json:"newPassword" validate:"required,min=8,max=72"`
}

// ForgotPasswordInput defines the data required to start a password reset.
type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordInput defines the data required to complete a password reset.
type ResetPasswordInput struct {
	AccountID   uuid.UUID `json:"-"`
	NewPassword string    `json:"newPassword" validate:"required,min=8,max=72"`
}

// UpdateProfileInput defines the fields an account may change about itself.
// Empty strings mean "leave unchanged". Changing the password requires both
// the old and the new one.
type UpdateProfileInput struct {
	AccountID   uuid.UUID `json:"-"`
	FullName    string    `json:"fullName" validate:"omitempty,min=2,max=100"`
	Email       string    `json:"email" validate:"omitempty,email"`
	OldPassword string    `json:"oldPassword"`
	NewPassword string    `json:"newPassword" validate:"omitempty,min=8,max=72"`
}

// --- Output DTOs ---

// SignupOutput returns the newly created account's public fields.
type SignupOutput struct {
	Account *entity.PublicAccount
}

// LoginOutput returns either a fresh token pair or, for unverified accounts,
// a signal that an OTP round is still required. NeedsVerification and the
// token fields are mutually exclusive.
type LoginOutput struct {
	Account           *entity.PublicAccount
	AccessToken       string
	RefreshToken      string
	RememberMe        bool
	NeedsVerification bool
}

// RefreshOutput returns the replacement access token. The refresh token is
// left unchanged.
type RefreshOutput struct {
	AccessToken string
}

// AuthUsecase defines the interface for authentication business operations.
// This is the contract the delivery layer depends on.
type AuthUsecase interface {
	Signup(ctx context.Context, input *SignupInput) (*SignupOutput, error)
	Login(ctx context.Context, input *LoginInput) (*LoginOutput, error)
	VerifyOTP(ctx context.Context, input *VerifyOTPInput) (*LoginOutput, error)
	Refresh(ctx context.Context, refreshToken string) (*RefreshOutput, error)
	GetProfile(ctx context.Context, accountID uuid.UUID) (*entity.PublicAccount, error)
	ChangePassword(ctx context.Context, input *ChangePasswordInput) error
	ForgotPassword(ctx context.Context, input *ForgotPasswordInput) error
	ResetPassword(ctx context.Context, input *ResetPasswordInput) error
	UpdateProfile(ctx context.Context, input *UpdateProfileInput) (*entity.PublicAccount, error)
}
