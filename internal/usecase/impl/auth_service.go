// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "trailhub/internal/delivery/context"
	"trailhub/internal/domain/entity"
	domainerrors "trailhub/internal/domain/errors"
	"trailhub/internal/domain/repository"
	"trailhub/internal/domain/service"
	"trailhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager    repository.TransactionManager
	accountRepo  repository.AccountRepository
	sessionRepo  repository.SessionRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	otpGenerator service.OTPGenerator
	mailer       service.Mailer
	logger       *slog.Logger
	now          func() time.Time
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	AccountRepo  repository.AccountRepository
	SessionRepo  repository.SessionRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	OTPGenerator service.OTPGenerator
	Mailer       service.Mailer
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		txManager:    params.TxManager,
		accountRepo:  params.AccountRepo,
		sessionRepo:  params.SessionRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		otpGenerator: params.OTPGenerator,
		mailer:       params.Mailer,
		logger:       params.Logger,
		now:          time.Now,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup registers a new account and starts the email verification round.
// The account is created with a pending OTP in one transaction; a failed
// email dispatch rolls the whole registration back so the address can retry.
func (srv *authService) Signup(ctx context.Context, input *usecase.SignupInput) (*usecase.SignupOutput, error) {
	srv.log(ctx).Info("Starting signup", slog.String("email", input.Email), slog.String("role", input.Role))

	role := entity.Role(input.Role)
	if role == entity.RoleSuperAdmin {
		return nil, errors.Wrap(domainerrors.ErrReservedRole, "signup rejected")
	}
	if !role.IsValid() {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown role")
	}

	hashedPassword, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, errors.Wrap(err, "failed to hash password during signup")
	}

	code, expiresAt, err := srv.otpGenerator.Generate()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate otp during signup")
	}

	// Vendors need admin approval before they may act.
	status := entity.StatusActive
	if role == entity.RoleVendor {
		status = entity.StatusInactive
	}

	newAccount := &entity.Account{
		FullName:     input.FullName,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         role,
		Status:       status,
		Provider:     entity.ProviderEmail,
		OTP:          &code,
		OTPExpiresAt: &expiresAt,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		if _, err := accountRepo.FindByEmail(ctx, input.Email); err == nil {
			return errors.Wrap(domainerrors.ErrEmailTaken, "signup rejected")
		} else if !errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(err, "failed to check email availability")
		}

		if err := accountRepo.Create(ctx, newAccount); err != nil {
			return errors.Wrap(err, "failed to create account during signup")
		}

		// Dispatch inside the transaction: if the mail bounces the account
		// is rolled back and the address can sign up again.
		if err := srv.mailer.SendOTP(ctx, newAccount.Email, code); err != nil {
			srv.log(ctx).Error("Failed to send verification email", slog.String("email", input.Email), slog.Any("error", err))

			return errors.Wrap(domainerrors.ErrEmailDispatchFailed, err.Error())
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Signup failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Signup completed", slog.Any("accountID", newAccount.ID))

	return &usecase.SignupOutput{Account: newAccount.Public()}, nil
}

// Login checks the credential chain in a fixed order so each failure mode
// maps to a distinct outcome: unknown email, wrong provider, inactive
// account, wrong password, unverified email, success.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "login failed")
		}

		return nil, errors.Wrap(err, "failed to load account for login")
	}

	if account.Provider != entity.ProviderEmail {
		return nil, domainerrors.ErrWrongProvider.WithMessage(
			"this account signs in with " + account.Provider.String())
	}

	if account.Status == entity.StatusInactive {
		return nil, errors.Wrap(domainerrors.ErrAccountInactive, "login failed")
	}

	// bcrypt comparison is CPU-bound, keep it outside any transaction.
	if !srv.hasher.Check(input.Password, account.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", domainerrors.ErrInvalidCredentials))

		return nil, errors.Wrap(domainerrors.ErrInvalidCredentials, "login failed")
	}

	// Unverified accounts get a fresh OTP round instead of tokens.
	if !account.IsVerified {
		if err := srv.issueOTP(ctx, account); err != nil {
			return nil, err
		}

		srv.log(ctx).Info("Login deferred pending verification", slog.Any("accountID", account.ID))

		return &usecase.LoginOutput{
			Account:           account.Public(),
			NeedsVerification: true,
		}, nil
	}

	output, err := srv.issueSession(ctx, account, input.RememberMe)
	if err != nil {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Login completed", slog.Any("accountID", account.ID))

	return output, nil
}

// VerifyOTP checks the submitted code against the outstanding one, exact
// match before expiry, then marks the account verified and issues a session
// identical to a successful login.
func (srv *authService) VerifyOTP(ctx context.Context, input *usecase.VerifyOTPInput) (*usecase.LoginOutput, error) {
	srv.log(ctx).Debug("Verifying OTP", slog.String("email", input.Email))

	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "otp verification failed")
		}

		return nil, errors.Wrap(err, "failed to load account for otp verification")
	}

	// Match first, expiry second: a wrong code reports "invalid" even when
	// the outstanding one has also expired.
	if !account.HasPendingOTP() || *account.OTP != input.OTP {
		return nil, errors.Wrap(domainerrors.ErrInvalidOTP, "otp verification failed")
	}
	if srv.now().After(*account.OTPExpiresAt) {
		return nil, errors.Wrap(domainerrors.ErrOTPExpired, "otp verification failed")
	}

	account.IsVerified = true
	account.OTP = nil
	account.OTPExpiresAt = nil

	if err := srv.accountRepo.Update(ctx, account); err != nil {
		return nil, errors.Wrap(err, "failed to mark account verified")
	}

	output, err := srv.issueSession(ctx, account, input.RememberMe)
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Account verified", slog.Any("accountID", account.ID))

	return output, nil
}

// Refresh exchanges a valid refresh token for a new access token. The
// refresh token itself stays in place; only the access slot is rewritten.
func (srv *authService) Refresh(ctx context.Context, refreshToken string) (*usecase.RefreshOutput, error) {
	srv.log(ctx).Debug("Refreshing access token")

	claims, err := srv.tokenService.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, errors.Wrap(domainerrors.ErrRefreshTokenInvalid, "refresh rejected")
	}

	account, err := srv.accountRepo.FindByID(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "refresh rejected")
		}

		return nil, errors.Wrap(err, "failed to load account for refresh")
	}

	// Exact string equality against the stored slot. A newer login anywhere
	// replaced the slot and thereby revoked this token.
	stored, err := srv.sessionRepo.StoredRefreshToken(ctx, account.ID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load stored refresh token")
	}
	if stored == "" || stored != refreshToken {
		srv.log(ctx).Warn("Refresh token does not match active session", slog.Any("accountID", account.ID))

		return nil, errors.Wrap(domainerrors.ErrRefreshTokenMismatch, "refresh rejected")
	}

	accessToken, err := srv.tokenService.IssueAccessToken(account.ID, account.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	if err := srv.sessionRepo.SaveAccessToken(ctx, account.ID, accessToken); err != nil {
		return nil, errors.Wrap(err, "failed to store refreshed access token")
	}

	return &usecase.RefreshOutput{AccessToken: accessToken}, nil
}

// GetProfile returns the public view of the authenticated account.
func (srv *authService) GetProfile(ctx context.Context, accountID uuid.UUID) (*entity.PublicAccount, error) {
	account, err := srv.accountRepo.FindByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "profile lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load account profile")
	}

	return account.Public(), nil
}

// ChangePassword replaces the password after verifying the current one.
// Only EMAIL-provider accounts own a password to change.
func (srv *authService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	account, err := srv.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(domainerrors.ErrAccountNotFound, "change password failed")
		}

		return errors.Wrap(err, "failed to load account for password change")
	}

	if account.Provider != entity.ProviderEmail {
		return domainerrors.ErrWrongProvider.WithMessage(
			"this account signs in with " + account.Provider.String())
	}

	if !srv.hasher.Check(input.OldPassword, account.PasswordHash) {
		srv.log(ctx).Warn("Password change rejected", slog.Any("accountID", account.ID))

		return errors.Wrap(domainerrors.ErrInvalidCredentials, "change password failed")
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	account.PasswordHash = newHash
	if err := srv.accountRepo.Update(ctx, account); err != nil {
		return errors.Wrap(err, "failed to store new password")
	}

	srv.log(ctx).Info("Password changed", slog.Any("accountID", account.ID))

	return nil
}

// ForgotPassword starts the reset round by issuing and emailing a fresh OTP.
func (srv *authService) ForgotPassword(ctx context.Context, input *usecase.ForgotPasswordInput) error {
	account, err := srv.accountRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(domainerrors.ErrAccountNotFound, "forgot password failed")
		}

		return errors.Wrap(err, "failed to load account for password reset")
	}

	if account.Provider != entity.ProviderEmail {
		return domainerrors.ErrWrongProvider.WithMessage(
			"this account signs in with " + account.Provider.String())
	}

	if err := srv.issueOTP(ctx, account); err != nil {
		return err
	}

	srv.log(ctx).Info("Password reset OTP issued", slog.Any("accountID", account.ID))

	return nil
}

// ResetPassword completes the reset round for an account that already passed
// OTP verification. It stores the new hash and clears any leftover OTP state.
func (srv *authService) ResetPassword(ctx context.Context, input *usecase.ResetPasswordInput) error {
	account, err := srv.accountRepo.FindByID(ctx, input.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return errors.Wrap(domainerrors.ErrAccountNotFound, "reset password failed")
		}

		return errors.Wrap(err, "failed to load account for password reset")
	}

	newHash, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return errors.Wrap(err, "failed to hash new password")
	}

	account.PasswordHash = newHash
	account.OTP = nil
	account.OTPExpiresAt = nil

	if err := srv.accountRepo.Update(ctx, account); err != nil {
		return errors.Wrap(err, "failed to store reset password")
	}

	srv.log(ctx).Info("Password reset", slog.Any("accountID", account.ID))

	return nil
}

// UpdateProfile applies partial profile changes, with a duplicate check when
// the email moves and a verified old password when a new one is set.
func (srv *authService) UpdateProfile(ctx context.Context, input *usecase.UpdateProfileInput) (*entity.PublicAccount, error) {
	var updated *entity.Account

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		accountRepo := repoFactory.AccountRepo()

		account, err := accountRepo.FindByID(ctx, input.AccountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return errors.Wrap(domainerrors.ErrAccountNotFound, "profile update failed")
			}

			return errors.Wrap(err, "failed to load account for profile update")
		}

		if input.FullName != "" {
			account.FullName = input.FullName
		}

		if input.Email != "" && input.Email != account.Email {
			if _, err := accountRepo.FindByEmail(ctx, input.Email); err == nil {
				return errors.Wrap(domainerrors.ErrEmailTaken, "profile update rejected")
			} else if !errors.Is(err, repository.ErrAccountNotFound) {
				return errors.Wrap(err, "failed to check email availability")
			}

			account.Email = input.Email
		}

		if input.NewPassword != "" {
			if account.Provider != entity.ProviderEmail {
				return domainerrors.ErrWrongProvider.WithMessage(
					"this account signs in with " + account.Provider.String())
			}
			if !srv.hasher.Check(input.OldPassword, account.PasswordHash) {
				return errors.Wrap(domainerrors.ErrInvalidCredentials, "profile update rejected")
			}

			newHash, err := srv.hasher.Hash(input.NewPassword)
			if err != nil {
				return errors.Wrap(err, "failed to hash new password")
			}
			account.PasswordHash = newHash
		}

		if err := accountRepo.Update(ctx, account); err != nil {
			return errors.Wrap(err, "failed to store profile update")
		}

		updated = account

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Profile update failed", slog.Any("accountID", input.AccountID), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Profile updated", slog.Any("accountID", updated.ID))

	return updated.Public(), nil
}

// issueOTP replaces whatever code was outstanding with a fresh one and
// emails it. There is only ever one live OTP per account.
func (srv *authService) issueOTP(ctx context.Context, account *entity.Account) error {
	code, expiresAt, err := srv.otpGenerator.Generate()
	if err != nil {
		return errors.Wrap(err, "failed to generate otp")
	}

	account.OTP = &code
	account.OTPExpiresAt = &expiresAt

	if err := srv.accountRepo.Update(ctx, account); err != nil {
		return errors.Wrap(err, "failed to store otp")
	}

	if err := srv.mailer.SendOTP(ctx, account.Email, code); err != nil {
		srv.log(ctx).Error("Failed to send OTP email", slog.Any("accountID", account.ID), slog.Any("error", err))

		return errors.Wrap(domainerrors.ErrEmailDispatchFailed, err.Error())
	}

	return nil
}

// issueSession creates a full token pair and persists it, overwriting (and
// revoking) whatever pair the account held before.
func (srv *authService) issueSession(ctx context.Context, account *entity.Account, rememberMe bool) (*usecase.LoginOutput, error) {
	accessToken, err := srv.tokenService.IssueAccessToken(account.ID, account.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue access token")
	}

	refreshToken, err := srv.tokenService.IssueRefreshToken(account.ID, account.Role, rememberMe)
	if err != nil {
		return nil, errors.Wrap(err, "failed to issue refresh token")
	}

	if err := srv.sessionRepo.SaveTokenPair(ctx, account.ID, accessToken, refreshToken); err != nil {
		return nil, errors.Wrap(err, "failed to store token pair")
	}

	return &usecase.LoginOutput{
		Account:      account.Public(),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		RememberMe:   rememberMe,
	}, nil
}
