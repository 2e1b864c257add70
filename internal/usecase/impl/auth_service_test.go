package impl

import (
	"context"
	"testing"
	"time"

	"trailhub/internal/domain/entity"
	domainerrors "trailhub/internal/domain/errors"
	"trailhub/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireAppCode asserts the error chain carries the given application error.
// Errors customized with WithMessage are copies, so compare by business code.
func requireAppCode(t *testing.T, err error, want *domainerrors.BaseError) {
	t.Helper()
	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, want.ErrorCode(), appErr.ErrorCode())
}

func seedVerifiedUser(h *authHarness, email, password string) *entity.Account {
	return h.store.seed(&entity.Account{
		FullName:     "Jordan Rivers",
		Email:        email,
		PasswordHash: "hashed:" + password,
		Role:         entity.RoleUser,
		Status:       entity.StatusActive,
		Provider:     entity.ProviderEmail,
		IsVerified:   true,
	})
}

func TestAuthService_Signup_Success(t *testing.T) {
	h := newAuthHarness()

	output, err := h.service.Signup(context.Background(), &usecase.SignupInput{
		FullName: "Jordan Rivers",
		Email:    "jordan@example.com",
		Password: "trail-pass-1",
		Role:     "USER",
	})
	require.NoError(t, err)
	require.NotNil(t, output)

	assert.Equal(t, entity.RoleUser, output.Account.Role)
	assert.Equal(t, entity.StatusActive, output.Account.Status)
	assert.False(t, output.Account.IsVerified)

	stored := h.store.get(output.Account.ID)
	require.NotNil(t, stored)
	assert.Equal(t, "hashed:trail-pass-1", stored.PasswordHash)
	require.NotNil(t, stored.OTP)
	assert.Equal(t, "123456", *stored.OTP)
	require.NotNil(t, stored.OTPExpiresAt)

	deliveries := h.mailer.deliveries()
	require.Len(t, deliveries, 1)
	assert.Equal(t, "jordan@example.com", deliveries[0].to)
	assert.Equal(t, "123456", deliveries[0].code)
}

func TestAuthService_Signup_VendorStartsInactive(t *testing.T) {
	h := newAuthHarness()

	output, err := h.service.Signup(context.Background(), &usecase.SignupInput{
		FullName: "Summit Gear Co",
		Email:    "vendor@example.com",
		Password: "trail-pass-1",
		Role:     "VENDOR",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.RoleVendor, output.Account.Role)
	assert.Equal(t, entity.StatusInactive, output.Account.Status)
}

func TestAuthService_Signup_ReservedRoleRejected(t *testing.T) {
	h := newAuthHarness()

	_, err := h.service.Signup(context.Background(), &usecase.SignupInput{
		FullName: "Root",
		Email:    "root@example.com",
		Password: "trail-pass-1",
		Role:     "SUPER_ADMIN",
	})
	require.ErrorIs(t, err, domainerrors.ErrReservedRole)
	assert.Zero(t, h.store.count())
}

func TestAuthService_Signup_DuplicateEmailRejected(t *testing.T) {
	h := newAuthHarness()
	seedVerifiedUser(h, "jordan@example.com", "trail-pass-1")

	_, err := h.service.Signup(context.Background(), &usecase.SignupInput{
		FullName: "Jordan Again",
		Email:    "Jordan@Example.com",
		Password: "other-pass-1",
		Role:     "USER",
	})
	require.ErrorIs(t, err, domainerrors.ErrEmailTaken)
	assert.Equal(t, 1, h.store.count())
}

func TestAuthService_Signup_MailFailureRollsBack(t *testing.T) {
	h := newAuthHarness()
	h.mailer.fail = true

	_, err := h.service.Signup(context.Background(), &usecase.SignupInput{
		FullName: "Jordan Rivers",
		Email:    "jordan@example.com",
		Password: "trail-pass-1",
		Role:     "USER",
	})
	require.ErrorIs(t, err, domainerrors.ErrEmailDispatchFailed)

	// The address must remain free to retry.
	assert.Zero(t, h.store.count())
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	h := newAuthHarness()

	_, err := h.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever-1",
	})
	require.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}

func TestAuthService_Login_WrongProvider(t *testing.T) {
	h := newAuthHarness()
	h.store.seed(&entity.Account{
		Email:      "social@example.com",
		Role:       entity.RoleUser,
		Status:     entity.StatusActive,
		Provider:   entity.ProviderGoogle,
		IsVerified: true,
	})

	_, err := h.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "social@example.com",
		Password: "whatever-1",
	})
	requireAppCode(t, err, domainerrors.ErrWrongProvider)
	assert.Contains(t, err.Error(), "GOOGLE")
}

func TestAuthService_Login_InactiveAccount(t *testing.T) {
	h := newAuthHarness()
	account := seedVerifiedUser(h, "jordan@example.com", "trail-pass-1")
	account.Status = entity.StatusInactive
	h.store.seed(account)

	_, err := h.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "jordan@example.com",
		Password: "trail-pass-1",
	})
	require.ErrorIs(t, err, domainerrors.ErrAccountInactive)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	h := newAuthHarness()
	seedVerifiedUser(h, "jordan@example.com", "trail-pass-1")

	_, err := h.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "jordan@example.com",
		Password: "wrong-pass-1",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthService_Login_UnverifiedGetsFreshOTP(t *testing.T) {
	h := newAuthHarness()
	account := seedVerifiedUser(h, "jordan@example.com", "trail-pass-1")
	account.IsVerified = false
	h.store.seed(account)

	output, err := h.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "jordan@example.com",
		Password: "trail-pass-1",
	})
	require.NoError(t, err)
	assert.True(t, output.NeedsVerification)
	assert.Empty(t, output.AccessToken)
	assert.Empty(t, output.RefreshToken)

	stored := h.store.get(account.ID)
	require.NotNil(t, stored.OTP)
	assert.Equal(t, "123456", *stored.OTP)
	assert.Empty(t, stored.RefreshToken)
	require.Len(t, h.mailer.deliveries(), 1)
}

func TestAuthService_Login_SuccessStoresTokenPair(t *testing.T) {
	h := newAuthHarness()
	account := seedVerifiedUser(h, "jordan@example.com", "trail-pass-1")

	output, err := h.service.Login(context.Background(), &usecase.LoginInput{
		Email:      "jordan@example.com",
		Password:   "trail-pass-1",
		RememberMe: true,
	})
	require.NoError(t, err)
	assert.False(t, output.NeedsVerification)
	assert.True(t, output.RememberMe)
	assert.True(t, h.tokens.lastRemember)
	assert.NotEmpty(t, output.AccessToken)
	assert.NotEmpty(t, output.RefreshToken)

	stored := h.store.get(account.ID)
	assert.Equal(t, output.AccessToken, stored.AccessToken)
	assert.Equal(t, output.RefreshToken, stored.RefreshToken)
}

func TestAuthService_Login_NewSessionRevokesPrevious(t *testing.T) {
	h := newAuthHarness()
	seedVerifiedUser(h, "jordan@example.com", "trail-pass-1")

	first, err := h.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "jordan@example.com",
		Password: "trail-pass-1",
	})
	require.NoError(t, err)

	second, err := h.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "jordan@example.com",
		Password: "trail-pass-1",
	})
	require.NoError(t, err)
	require.NotEqual(t, first.RefreshToken, second.RefreshToken)

	// Only the latest pair occupies the slot; the first refresh token is dead.
	_, err = h.service.Refresh(context.Background(), first.RefreshToken)
	require.ErrorIs(t, err, domainerrors.ErrRefreshTokenMismatch)

	_, err = h.service.Refresh(context.Background(), second.RefreshToken)
	require.NoError(t, err)
}

func TestAuthService_VerifyOTP_Success(t *testing.T) {
	h := newAuthHarness()
	code := "123456"
	expiresAt := time.Now().Add(5 * time.Minute)
	account := h.store.seed(&entity.Account{
		Email:        "jordan@example.com",
		PasswordHash: "hashed:trail-pass-1",
		Role:         entity.RoleUser,
		Status:       entity.StatusActive,
		Provider:     entity.ProviderEmail,
		OTP:          &code,
		OTPExpiresAt: &expiresAt,
	})

	output, err := h.service.VerifyOTP(context.Background(), &usecase.VerifyOTPInput{
		Email: "jordan@example.com",
		OTP:   "123456",
	})
	require.NoError(t, err)
	assert.True(t, output.Account.IsVerified)
	assert.NotEmpty(t, output.AccessToken)
	assert.NotEmpty(t, output.RefreshToken)

	stored := h.store.get(account.ID)
	assert.True(t, stored.IsVerified)
	assert.Nil(t, stored.OTP)
	assert.Nil(t, stored.OTPExpiresAt)
	assert.Equal(t, output.RefreshToken, stored.RefreshToken)
}

func TestAuthService_VerifyOTP_RememberMeExtendsSession(t *testing.T) {
	h := newAuthHarness()
	code := "123456"
	expiresAt := time.Now().Add(5 * time.Minute)
	h.store.seed(&entity.Account{
		Email:        "jordan@example.com",
		PasswordHash: "hashed:trail-pass-1",
		Role:         entity.RoleUser,
		Status:       entity.StatusActive,
		Provider:     entity.ProviderEmail,
		OTP:          &code,
		OTPExpiresAt: &expiresAt,
	})

	output, err := h.service.VerifyOTP(context.Background(), &usecase.VerifyOTPInput{
		Email:      "jordan@example.com",
		OTP:        "123456",
		RememberMe: true,
	})
	require.NoError(t, err)
	assert.True(t, output.RememberMe)
	assert.True(t, h.tokens.lastRemember)
}

func TestAuthService_VerifyOTP_WrongCode(t *testing.T) {
	h := newAuthHarness()
	code := "123456"
	expiresAt := time.Now().Add(5 * time.Minute)
	h.store.seed(&entity.Account{
		Email:        "jordan@example.com",
		Role:         entity.RoleUser,
		Status:       entity.StatusActive,
		Provider:     entity.ProviderEmail,
		OTP:          &code,
		OTPExpiresAt: &expiresAt,
	})

	_, err := h.service.VerifyOTP(context.Background(), &usecase.VerifyOTPInput{
		Email: "jordan@example.com",
		OTP:   "000000",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidOTP)
}

func TestAuthService_VerifyOTP_WrongCodeWinsOverExpiry(t *testing.T) {
	h := newAuthHarness()
	code := "123456"
	expiresAt := time.Now().Add(-time.Minute)
	h.store.seed(&entity.Account{
		Email:        "jordan@example.com",
		Role:         entity.RoleUser,
		Status:       entity.StatusActive,
		Provider:     entity.ProviderEmail,
		OTP:          &code,
		OTPExpiresAt: &expiresAt,
	})

	_, err := h.service.VerifyOTP(context.Background(), &usecase.VerifyOTPInput{
		Email: "jordan@example.com",
		OTP:   "000000",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidOTP)

	_, err = h.service.VerifyOTP(context.Background(), &usecase.VerifyOTPInput{
		Email: "jordan@example.com",
		OTP:   "123456",
	})
	require.ErrorIs(t, err, domainerrors.ErrOTPExpired)
}

func TestAuthService_VerifyOTP_NoPendingCode(t *testing.T) {
	h := newAuthHarness()
	seedVerifiedUser(h, "jordan@example.com", "trail-pass-1")

	_, err := h.service.VerifyOTP(context.Background(), &usecase.VerifyOTPInput{
		Email: "jordan@example.com",
		OTP:   "123456",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidOTP)
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	h := newAuthHarness()

	_, err := h.service.Refresh(context.Background(), "not-a-refresh-token")
	require.ErrorIs(t, err, domainerrors.ErrRefreshTokenInvalid)
}

func TestAuthService_Refresh_UnknownAccount(t *testing.T) {
	h := newAuthHarness()
	account := seedVerifiedUser(h, "jordan@example.com", "trail-pass-1")

	output, err := h.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "jordan@example.com",
		Password: "trail-pass-1",
	})
	require.NoError(t, err)

	h.store.mu.Lock()
	delete(h.store.accounts, account.ID)
	h.store.mu.Unlock()

	_, err = h.service.Refresh(context.Background(), output.RefreshToken)
	require.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
}

func TestAuthService_Refresh_EmptySlotRejected(t *testing.T) {
	h := newAuthHarness()
	account := seedVerifiedUser(h, "jordan@example.com", "trail-pass-1")

	// A verifiable token whose pair was never stored, e.g. after a logout
	// wiped the slot.
	token, err := h.tokens.IssueRefreshToken(account.ID, account.Role, false)
	require.NoError(t, err)

	_, err = h.service.Refresh(context.Background(), token)
	require.ErrorIs(t, err, domainerrors.ErrRefreshTokenMismatch)
}

func TestAuthService_Refresh_SuccessRewritesAccessSlotOnly(t *testing.T) {
	h := newAuthHarness()
	account := seedVerifiedUser(h, "jordan@example.com", "trail-pass-1")

	login, err := h.service.Login(context.Background(), &usecase.LoginInput{
		Email:    "jordan@example.com",
		Password: "trail-pass-1",
	})
	require.NoError(t, err)

	refreshed, err := h.service.Refresh(context.Background(), login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.AccessToken, refreshed.AccessToken)

	stored := h.store.get(account.ID)
	assert.Equal(t, refreshed.AccessToken, stored.AccessToken)
	assert.Equal(t, login.RefreshToken, stored.RefreshToken)
}

func TestAuthService_GetProfile_Success(t *testing.T) {
	h := newAuthHarness()
	account := seedVerifiedUser(h, "jordan@example.com", "trail-pass-1")

	profile, err := h.service.GetProfile(context.Background(), account.ID)
	require.NoError(t, err)
	assert.Equal(t, account.ID, profile.ID)
	assert.Equal(t, "jordan@example.com", profile.Email)
}

func TestAuthService_ChangePassword_Success(t *testing.T) {
	h := newAuthHarness()
	account := seedVerifiedUser(h, "jordan@example.com", "old-pass-1")

	err := h.service.ChangePassword(context.Background(), &usecase.ChangePasswordInput{
		AccountID:   account.ID,
		OldPassword: "old-pass-1",
		NewPassword: "new-pass-1",
	})
	require.NoError(t, err)

	stored := h.store.get(account.ID)
	assert.Equal(t, "hashed:new-pass-1", stored.PasswordHash)
}

func TestAuthService_ChangePassword_WrongOldPassword(t *testing.T) {
	h := newAuthHarness()
	account := seedVerifiedUser(h, "jordan@example.com", "old-pass-1")

	err := h.service.ChangePassword(context.Background(), &usecase.ChangePasswordInput{
		AccountID:   account.ID,
		OldPassword: "not-the-old-one",
		NewPassword: "new-pass-1",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	stored := h.store.get(account.ID)
	assert.Equal(t, "hashed:old-pass-1", stored.PasswordHash)
}

func TestAuthService_ForgotPassword_IssuesOTP(t *testing.T) {
	h := newAuthHarness()
	account := seedVerifiedUser(h, "jordan@example.com", "trail-pass-1")

	err := h.service.ForgotPassword(context.Background(), &usecase.ForgotPasswordInput{
		Email: "jordan@example.com",
	})
	require.NoError(t, err)

	stored := h.store.get(account.ID)
	require.NotNil(t, stored.OTP)
	require.Len(t, h.mailer.deliveries(), 1)
}

func TestAuthService_ForgotPassword_UnknownEmail(t *testing.T) {
	h := newAuthHarness()

	err := h.service.ForgotPassword(context.Background(), &usecase.ForgotPasswordInput{
		Email: "nobody@example.com",
	})
	require.ErrorIs(t, err, domainerrors.ErrAccountNotFound)
	assert.Empty(t, h.mailer.deliveries())
}

func TestAuthService_ResetPassword_ClearsOTPState(t *testing.T) {
	h := newAuthHarness()
	code := "123456"
	expiresAt := time.Now().Add(5 * time.Minute)
	account := h.store.seed(&entity.Account{
		Email:        "jordan@example.com",
		PasswordHash: "hashed:old-pass-1",
		Role:         entity.RoleUser,
		Status:       entity.StatusActive,
		Provider:     entity.ProviderEmail,
		IsVerified:   true,
		OTP:          &code,
		OTPExpiresAt: &expiresAt,
	})

	err := h.service.ResetPassword(context.Background(), &usecase.ResetPasswordInput{
		AccountID:   account.ID,
		NewPassword: "new-pass-1",
	})
	require.NoError(t, err)

	stored := h.store.get(account.ID)
	assert.Equal(t, "hashed:new-pass-1", stored.PasswordHash)
	assert.Nil(t, stored.OTP)
	assert.Nil(t, stored.OTPExpiresAt)
}

func TestAuthService_UpdateProfile_Success(t *testing.T) {
	h := newAuthHarness()
	account := seedVerifiedUser(h, "jordan@example.com", "old-pass-1")

	profile, err := h.service.UpdateProfile(context.Background(), &usecase.UpdateProfileInput{
		AccountID:   account.ID,
		FullName:    "Jordan R. Rivers",
		Email:       "jordan.rivers@example.com",
		OldPassword: "old-pass-1",
		NewPassword: "new-pass-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "Jordan R. Rivers", profile.FullName)
	assert.Equal(t, "jordan.rivers@example.com", profile.Email)

	stored := h.store.get(account.ID)
	assert.Equal(t, "hashed:new-pass-1", stored.PasswordHash)
}

func TestAuthService_UpdateProfile_DuplicateEmailRejected(t *testing.T) {
	h := newAuthHarness()
	account := seedVerifiedUser(h, "jordan@example.com", "trail-pass-1")
	seedVerifiedUser(h, "taken@example.com", "other-pass-1")

	_, err := h.service.UpdateProfile(context.Background(), &usecase.UpdateProfileInput{
		AccountID: account.ID,
		Email:     "taken@example.com",
	})
	require.ErrorIs(t, err, domainerrors.ErrEmailTaken)

	stored := h.store.get(account.ID)
	assert.Equal(t, "jordan@example.com", stored.Email)
}

func TestAuthService_UpdateProfile_PasswordChangeNeedsOldPassword(t *testing.T) {
	h := newAuthHarness()
	account := seedVerifiedUser(h, "jordan@example.com", "old-pass-1")

	_, err := h.service.UpdateProfile(context.Background(), &usecase.UpdateProfileInput{
		AccountID:   account.ID,
		OldPassword: "wrong-old-1",
		NewPassword: "new-pass-1",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	stored := h.store.get(account.ID)
	assert.Equal(t, "hashed:old-pass-1", stored.PasswordHash)
}
