// Command seedadmin provisions the SUPER_ADMIN account. The public signup
// path refuses that role, so this is the only way it comes into existence.
// Running it twice is a no-op.
package main

import (
	"context"
	"log/slog"
	"os"

	"trailhub/config"
	"trailhub/internal/domain/entity"
	"trailhub/internal/domain/repository"
	"trailhub/internal/domain/service"
	"trailhub/internal/infra/auth"
	logs "trailhub/internal/infra/log"
	"trailhub/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type seedParams struct {
	fx.In
	fx.Shutdowner

	Logger      *slog.Logger
	AccountRepo repository.AccountRepository
	Hasher      service.PasswordHasher
}

func main() {
	fx.New(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			postgres.New,
			postgres.NewAccountRepository,
			auth.NewBcryptHasher,
		),
		fx.Invoke(seed),
	).Run()
}

func seed(ctx context.Context, params seedParams) error {
	defer params.Shutdown()

	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		params.Logger.Error("SEED_ADMIN_EMAIL and SEED_ADMIN_PASSWORD must be set")

		return errors.New("missing seed credentials")
	}

	if existing, err := params.AccountRepo.FindByEmail(ctx, email); err == nil {
		params.Logger.Info("Super admin already provisioned", slog.Any("accountID", existing.ID))

		return nil
	} else if !errors.Is(err, repository.ErrAccountNotFound) {
		return errors.Wrap(err, "failed to check for existing super admin")
	}

	hash, err := params.Hasher.Hash(password)
	if err != nil {
		return errors.Wrap(err, "failed to hash super admin password")
	}

	// Verified and ACTIVE out of the gate: the seeded account never goes
	// through the OTP round.
	account := &entity.Account{
		FullName:     "Super Admin",
		Email:        email,
		PasswordHash: hash,
		Role:         entity.RoleSuperAdmin,
		Status:       entity.StatusActive,
		Provider:     entity.ProviderEmail,
		IsVerified:   true,
	}

	if err := params.AccountRepo.Create(ctx, account); err != nil {
		return errors.Wrap(err, "failed to create super admin")
	}

	params.Logger.Info("Super admin provisioned", slog.Any("accountID", account.ID))

	return nil
}
