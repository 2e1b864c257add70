// Package handler contains the HTTP handlers for the application.
package handler

import (
	"net/http"
	"strings"
	"time"

	"trailhub/config"
	"trailhub/internal/delivery/http/middleware"
	"trailhub/internal/delivery/http/response"
	domainerrors "trailhub/internal/domain/errors"
	"trailhub/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RefreshTokenCookie is the cookie consulted by the refresh endpoint when no
// Authorization header is present.
const RefreshTokenCookie = "refreshToken"

// AuthHandler holds dependencies for the authentication handlers.
type AuthHandler struct {
	uc  usecase.AuthUsecase
	cfg *config.Config
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, cfg *config.Config) *AuthHandler {
	return &AuthHandler{uc: uc, cfg: cfg}
}

// Signup handles the account registration request.
func (h *AuthHandler) Signup(c echo.Context) error {
	input := new(usecase.SignupInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid signup input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Signup(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, output.Account,
		"Account registered, check your email for the verification code")
}

// Login handles the login request. Verified accounts get a token pair in the
// body and in cookies; unverified accounts get a fresh OTP round instead.
func (h *AuthHandler) Login(c echo.Context) error {
	input := new(usecase.LoginInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.Login(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	if output.NeedsVerification {
		return response.Success(c, http.StatusOK, map[string]any{
			"email":      output.Account.Email,
			"isVerified": false,
		}, "Verification code sent, verify your email to finish logging in")
	}

	h.setSessionCookies(c, output)

	return response.Success(c, http.StatusOK, map[string]any{
		"account":      output.Account,
		"accessToken":  output.AccessToken,
		"refreshToken": output.RefreshToken,
		"rememberMe":   output.RememberMe,
	}, "Login successful")
}

// VerifyOTP handles the email verification request and, on success, opens a
// session exactly like a login.
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	input := new(usecase.VerifyOTPInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid verification input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	output, err := h.uc.VerifyOTP(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setSessionCookies(c, output)

	return response.Success(c, http.StatusOK, map[string]any{
		"account":      output.Account,
		"accessToken":  output.AccessToken,
		"refreshToken": output.RefreshToken,
		"rememberMe":   output.RememberMe,
	}, "Email verified")
}

// RefreshToken exchanges a refresh token for a new access token. The token
// is read from the Authorization header, falling back to the cookie.
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	tokenString := ""
	if header := c.Request().Header.Get("Authorization"); header != "" {
		tokenString = strings.TrimPrefix(header, "Bearer ")
	} else if cookie, err := c.Cookie(RefreshTokenCookie); err == nil {
		tokenString = cookie.Value
	}
	if tokenString == "" {
		return errors.Wrap(domainerrors.ErrMissingToken, "no refresh token presented")
	}

	output, err := h.uc.Refresh(c.Request().Context(), tokenString)
	if err != nil {
		return errors.WithStack(err)
	}

	h.setCookie(c, middleware.AccessTokenCookie, output.AccessToken, h.cfg.Auth.AccessTokenTTL)

	return response.Success(c, http.StatusOK, map[string]any{
		"accessToken": output.AccessToken,
	}, "Token refreshed")
}

// Logout clears the session cookies. The stored pair is left in place; it is
// replaced on the next login.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.clearCookie(c, middleware.AccessTokenCookie)
	h.clearCookie(c, RefreshTokenCookie)

	return response.Success(c, http.StatusOK, nil, "Logged out")
}

// Me returns the authenticated account's public fields.
func (h *AuthHandler) Me(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return errors.Wrap(domainerrors.ErrMissingToken, "no authenticated account on request")
	}

	account, err := h.uc.GetProfile(c.Request().Context(), accountID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, account, "")
}

// ChangePassword replaces the password of the authenticated account.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return errors.Wrap(domainerrors.ErrMissingToken, "no authenticated account on request")
	}

	input := new(usecase.ChangePasswordInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password change input")
	}
	input.AccountID = accountID
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ChangePassword(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password changed")
}

// ForgotPassword starts the password reset round.
func (h *AuthHandler) ForgotPassword(c echo.Context) error {
	input := new(usecase.ForgotPasswordInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid input")
	}
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ForgotPassword(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Reset code sent to your email")
}

// ResetPassword completes the password reset round.
func (h *AuthHandler) ResetPassword(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return errors.Wrap(domainerrors.ErrMissingToken, "no authenticated account on request")
	}

	input := new(usecase.ResetPasswordInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid password reset input")
	}
	input.AccountID = accountID
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	if err := h.uc.ResetPassword(c.Request().Context(), input); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, nil, "Password reset")
}

// UpdateProfile applies partial profile changes to the authenticated account.
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	accountID, ok := middleware.GetAccountID(c)
	if !ok {
		return errors.Wrap(domainerrors.ErrMissingToken, "no authenticated account on request")
	}

	input := new(usecase.UpdateProfileInput)
	if err := c.Bind(input); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}
	input.AccountID = accountID
	if err := c.Validate(input); err != nil {
		return errors.WithStack(err)
	}

	account, err := h.uc.UpdateProfile(c.Request().Context(), input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, account, "Profile updated")
}

// setSessionCookies writes both token cookies. The refresh cookie lives
// longer when the login asked to be remembered.
func (h *AuthHandler) setSessionCookies(c echo.Context, output *usecase.LoginOutput) {
	refreshTTL := h.cfg.Auth.RefreshTokenTTL
	if output.RememberMe {
		refreshTTL = h.cfg.Auth.RememberRefreshTTL
	}

	h.setCookie(c, middleware.AccessTokenCookie, output.AccessToken, h.cfg.Auth.AccessTokenTTL)
	h.setCookie(c, RefreshTokenCookie, output.RefreshToken, refreshTTL)
}

func (h *AuthHandler) setCookie(c echo.Context, name, value string, ttl time.Duration) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// clearCookie expires a cookie with the same attributes it was set with, so
// browsers match and drop it.
func (h *AuthHandler) clearCookie(c echo.Context, name string) {
	c.SetCookie(&http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
