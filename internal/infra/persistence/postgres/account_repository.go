// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"trailhub/internal/domain/entity"
	domainerrors "trailhub/internal/domain/errors"
	"trailhub/internal/domain/repository"
	"trailhub/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements both repository.AccountRepository and
// repository.SessionRepository using GORM. The session slot is a pair of
// columns on the accounts row, so both interfaces share one table.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
// It returns the repository as a domain interface, adhering to dependency inversion.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// NewSessionRepository exposes the same table through the narrow session interface.
func NewSessionRepository(db *gorm.DB) repository.SessionRepository {
	return &accountRepository{db: db}
}

// FindByID retrieves a single account by its unique ID.
func (repo *accountRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return accountM.ToDomain(), nil
}

// FindByEmail retrieves a single account by email. The comparison is
// case-insensitive so signup and login agree on what "taken" means.
func (repo *accountRepository) FindByEmail(ctx context.Context, email string) (*entity.Account, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by email")
	}

	return accountM.ToDomain(), nil
}

// ListByRole retrieves one page of accounts holding the given role.
func (repo *accountRepository) ListByRole(ctx context.Context, role entity.Role, page, limit int) ([]*entity.Account, int64, error) {
	query := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("role = ?", role.String())

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count accounts by role")
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	var accountMs []*model.AccountModel
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&accountMs).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list accounts by role")
	}

	accounts := make([]*entity.Account, 0, len(accountMs))
	for _, accountM := range accountMs {
		accounts = append(accounts, accountM.ToDomain())
	}

	return accounts, total, nil
}

// Create persists a new account entity to the database.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := model.FromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		// Convert PostgreSQL errors to domain errors
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailTaken.WrapMessage("email already registered")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required account information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	// Update the entity with the generated ID and timestamps
	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt
	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// Update persists the full account record. Save writes every column, so the
// caller must pass a complete entity loaded from the store.
func (repo *accountRepository) Update(ctx context.Context, account *entity.Account) error {
	accountM := model.FromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Save(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrEmailTaken.WrapMessage("email already registered")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to update account")
	}

	account.UpdatedAt = accountM.UpdatedAt

	return nil
}

// SaveTokenPair overwrites both token columns, revoking whatever session the
// account had before.
func (repo *accountRepository) SaveTokenPair(ctx context.Context, accountID uuid.UUID, accessToken, refreshToken string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", accountID).
		Updates(map[string]any{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to store token pair")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// SaveAccessToken replaces only the access slot. The refresh token stays put
// so an in-flight refresh chain is not cut short.
func (repo *accountRepository) SaveAccessToken(ctx context.Context, accountID uuid.UUID, accessToken string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.AccountModel{}).
		Where("id = ?", accountID).
		Update("access_token", accessToken)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to store access token")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

// StoredRefreshToken returns the refresh token on record, empty when none.
func (repo *accountRepository) StoredRefreshToken(ctx context.Context, accountID uuid.UUID) (string, error) {
	var accountM model.AccountModel
	if err := repo.db.WithContext(ctx).
		Select("refresh_token").
		Where("id = ?", accountID).
		Take(&accountM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", repository.ErrAccountNotFound
		}

		return "", errors.Wrap(err, "failed to load stored refresh token")
	}

	return accountM.RefreshToken, nil
}
