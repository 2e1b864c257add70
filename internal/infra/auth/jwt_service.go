// Package auth provides concrete implementations for authentication-related domain services.
package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"trailhub/config"
	"trailhub/internal/domain/entity"
	"trailhub/internal/domain/service"
)

// tokenClaims is the on-wire claim set: the account id, the role embedded at
// issuance, plus standard issued-at/expiry.
type tokenClaims struct {
	AccountID string `json:"id"`
	Role      string `json:"role"`
	jwt.RegisteredClaims
}

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
// Access and refresh tokens use independent secrets, so a token signed for one
// purpose can never verify for the other.
type jwtService struct {
	accessSecret  string
	refreshSecret string
	accessTTL     time.Duration
	refreshTTL    time.Duration
	rememberTTL   time.Duration // Refresh lifetime when the caller opts into "remember me".
}

// NewJWTService is the constructor for jwtService.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.SecretKey.Access == "" || cfg.SecretKey.Refresh == "" {
		return nil, errors.New("jwt secrets must be provided")
	}

	return &jwtService{
		accessSecret:  cfg.SecretKey.Access,
		refreshSecret: cfg.SecretKey.Refresh,
		accessTTL:     cfg.Auth.AccessTokenTTL,
		refreshTTL:    cfg.Auth.RefreshTokenTTL,
		rememberTTL:   cfg.Auth.RememberRefreshTTL,
	}, nil
}

// IssueAccessToken creates a short-lived access token for the account.
func (s *jwtService) IssueAccessToken(accountID uuid.UUID, role entity.Role) (string, error) {
	return s.sign(accountID, role, s.accessTTL, s.accessSecret)
}

// IssueRefreshToken creates a refresh token, extended when remember is set.
func (s *jwtService) IssueRefreshToken(accountID uuid.UUID, role entity.Role, remember bool) (string, error) {
	ttl := s.refreshTTL
	if remember {
		ttl = s.rememberTTL
	}

	return s.sign(accountID, role, ttl, s.refreshSecret)
}

// VerifyAccessToken checks a token string against the access secret.
func (s *jwtService) VerifyAccessToken(token string) (*service.TokenClaims, error) {
	return s.verify(token, s.accessSecret)
}

// VerifyRefreshToken checks a token string against the refresh secret.
func (s *jwtService) VerifyRefreshToken(token string) (*service.TokenClaims, error) {
	return s.verify(token, s.refreshSecret)
}

func (s *jwtService) sign(accountID uuid.UUID, role entity.Role, ttl time.Duration, secret string) (string, error) {
	now := time.Now()
	claims := &tokenClaims{
		AccountID: accountID.String(),
		Role:      role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// verify parses and validates a token. Expired, tampered and malformed tokens
// all collapse into the same error so callers cannot distinguish the cases.
func (s *jwtService) verify(tokenString, secret string) (*service.TokenClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &tokenClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.Wrap(jwt.ErrTokenUnverifiable, "token verification failed")
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok {
		return nil, errors.Wrap(jwt.ErrTokenInvalidClaims, "unexpected claim set")
	}

	accountID, err := uuid.Parse(claims.AccountID)
	if err != nil {
		return nil, errors.Wrap(err, "invalid account id in token")
	}

	return &service.TokenClaims{
		AccountID: accountID,
		Role:      entity.Role(claims.Role),
	}, nil
}
