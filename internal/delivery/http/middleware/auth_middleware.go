package middleware

import (
	"strings"

	"trailhub/internal/domain/entity"
	domainerrors "trailhub/internal/domain/errors"
	"trailhub/internal/domain/repository"
	"trailhub/internal/domain/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// Context keys for the authenticated identity.
const (
	// KeyAccountID holds the uuid.UUID of the authenticated account.
	KeyAccountID = "accountID"
	// KeyRole holds the entity.Role embedded in the verified token.
	KeyRole = "role"
)

// AccessTokenCookie is the cookie consulted when no Authorization header is
// present.
const AccessTokenCookie = "accessToken"

// AuthMiddleware gates routes on a verified access token and, optionally, on
// the role embedded in it.
type AuthMiddleware struct {
	tokenSvc    service.TokenService
	accountRepo repository.AccountRepository
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService, accountRepo repository.AccountRepository) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc, accountRepo: accountRepo}
}

// Authorize verifies the caller's access token and role membership. The
// token is read from the Authorization header (a Bearer prefix is tolerated)
// and falls back to the accessToken cookie. The account's live status is
// checked, but the role comes from the token: a role change after issuance
// is not seen until the token expires.
func (m *AuthMiddleware) Authorize(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := extractToken(c)
			if tokenString == "" {
				return errors.Wrap(domainerrors.ErrMissingToken, "no access token presented")
			}

			claims, err := m.tokenSvc.VerifyAccessToken(tokenString)
			if err != nil {
				return errors.Wrap(domainerrors.ErrInvalidToken, "access token rejected")
			}

			account, err := m.accountRepo.FindByID(c.Request().Context(), claims.AccountID)
			if err != nil {
				if errors.Is(err, repository.ErrAccountNotFound) {
					return errors.Wrap(domainerrors.ErrAccountNotFound, "token account no longer exists")
				}

				return errors.Wrap(err, "failed to load account for authorization")
			}

			if account.Status == entity.StatusInactive {
				return errors.Wrap(domainerrors.ErrInactiveAccount, "authorization rejected")
			}

			if len(roles) > 0 && !entity.Roles(roles).Contains(claims.Role) {
				return errors.Wrap(domainerrors.ErrForbidden, "role not permitted on this route")
			}

			c.Set(KeyAccountID, claims.AccountID)
			c.Set(KeyRole, claims.Role)

			return next(c)
		}
	}
}

// extractToken pulls the access token from the Authorization header, else
// from the accessToken cookie.
func extractToken(c echo.Context) string {
	if header := c.Request().Header.Get("Authorization"); header != "" {
		return strings.TrimPrefix(header, "Bearer ")
	}

	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	return ""
}

// GetAccountID returns the authenticated account ID set by Authorize.
func GetAccountID(c echo.Context) (uuid.UUID, bool) {
	id, ok := c.Get(KeyAccountID).(uuid.UUID)

	return id, ok
}

// GetRole returns the token-embedded role set by Authorize.
func GetRole(c echo.Context) (entity.Role, bool) {
	role, ok := c.Get(KeyRole).(entity.Role)

	return role, ok
}
