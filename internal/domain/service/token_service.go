package service

import (
	"trailhub/internal/domain/entity"

	"github.com/google/uuid"
)

// TokenClaims is the verified payload of a signed token: who it was issued to
// and the role embedded at issuance time. The role is deliberately not
// re-derived from the live account on verification, so it can go stale
// relative to a role change until the token expires.
type TokenClaims struct {
	AccountID uuid.UUID
	Role      entity.Role
}

// TokenService signs and verifies the compact, expiring tokens that carry an
// account's identity. Access and refresh tokens are signed with independent
// secrets; a token issued for one purpose never verifies for the other.
type TokenService interface {
	// IssueAccessToken creates a short-lived access token for the account.
	IssueAccessToken(accountID uuid.UUID, role entity.Role) (string, error)

	// IssueRefreshToken creates a refresh token. When remember is true the
	// extended "remember me" lifetime is used instead of the default.
	IssueRefreshToken(accountID uuid.UUID, role entity.Role, remember bool) (string, error)

	// VerifyAccessToken checks a token against the access secret. Expired,
	// tampered and malformed tokens all fail with the same error.
	VerifyAccessToken(token string) (*TokenClaims, error)

	// VerifyRefreshToken checks a token against the refresh secret.
	VerifyRefreshToken(token string) (*TokenClaims, error)
}
