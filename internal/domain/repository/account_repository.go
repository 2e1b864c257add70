// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"trailhub/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrAccountNotFound is a domain-specific error returned when an account is not found.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the credential-store operations the
// authentication core depends on. The application layer depends on this
// interface, not the concrete GORM implementation.
type AccountRepository interface {
	// FindByID retrieves a single account by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error)

	// FindByEmail retrieves a single account by its email address.
	// The lookup is case-insensitive.
	FindByEmail(ctx context.Context, email string) (*entity.Account, error)

	// ListByRole retrieves one page of accounts holding the given role,
	// newest first, together with the total count before pagination.
	ListByRole(ctx context.Context, role entity.Role, page, limit int) ([]*entity.Account, int64, error)

	// Create persists a new account.
	Create(ctx context.Context, account *entity.Account) error

	// Update persists the full account record. Last write wins; there is no
	// optimistic version check, so two concurrent logins for the same account
	// may race and either token pair may end up stored.
	Update(ctx context.Context, account *entity.Account) error
}

// SessionRepository isolates the single-slot session revocation mechanism:
// the last-issued access/refresh token strings stored on the account row.
// It exists as its own narrow interface so a future version can swap in a
// real session table without touching the authentication service call sites.
type SessionRepository interface {
	// SaveTokenPair stores a freshly issued access/refresh pair on the
	// account, overwriting (and thereby revoking) any previous pair.
	SaveTokenPair(ctx context.Context, accountID uuid.UUID, accessToken, refreshToken string) error

	// SaveAccessToken replaces only the stored access token, leaving the
	// refresh slot untouched. Used by token refresh.
	SaveAccessToken(ctx context.Context, accountID uuid.UUID, accessToken string) error

	// StoredRefreshToken returns the refresh token currently on record for
	// the account, empty when none has been issued.
	StoredRefreshToken(ctx context.Context, accountID uuid.UUID) (string, error)
}
