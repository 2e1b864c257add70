package impl

import (
	"context"
	"log/slog"

	deliverycontext "trailhub/internal/delivery/context"
	"trailhub/internal/domain/entity"
	domainerrors "trailhub/internal/domain/errors"
	"trailhub/internal/domain/repository"
	"trailhub/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// adminService implements the AdminUsecase interface.
type adminService struct {
	accountRepo repository.AccountRepository
	eventRepo   repository.EventRepository
	logger      *slog.Logger
}

// AdminServiceParams holds dependencies for adminService, injected by Fx.
type AdminServiceParams struct {
	fx.In

	AccountRepo repository.AccountRepository
	EventRepo   repository.EventRepository
	Logger      *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(params AdminServiceParams) usecase.AdminUsecase {
	return &adminService{
		accountRepo: params.AccountRepo,
		eventRepo:   params.EventRepo,
		logger:      params.Logger,
	}
}

func (srv *adminService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListVendors pages through the registered vendor accounts.
func (srv *adminService) ListVendors(ctx context.Context, input *usecase.ListVendorsInput) (*usecase.VendorListOutput, error) {
	accounts, total, err := srv.accountRepo.ListByRole(ctx, entity.RoleVendor, input.Page, input.Limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list vendors")
	}

	vendors := make([]*entity.PublicAccount, 0, len(accounts))
	for _, account := range accounts {
		vendors = append(vendors, account.Public())
	}

	return &usecase.VendorListOutput{Vendors: vendors, Total: total}, nil
}

// SetVendorStatus activates or suspends a vendor account. This is the
// approval gate that vendors created INACTIVE at signup pass through.
func (srv *adminService) SetVendorStatus(ctx context.Context, input *usecase.SetVendorStatusInput) (*entity.PublicAccount, error) {
	account, err := srv.accountRepo.FindByID(ctx, input.VendorID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, errors.Wrap(domainerrors.ErrAccountNotFound, "vendor status update failed")
		}

		return nil, errors.Wrap(err, "failed to load vendor account")
	}

	if account.Role != entity.RoleVendor {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("account is not a vendor")
	}

	account.Status = entity.Status(input.Status)
	if err := srv.accountRepo.Update(ctx, account); err != nil {
		return nil, errors.Wrap(err, "failed to update vendor status")
	}

	srv.log(ctx).Info("Vendor status updated",
		slog.Any("vendorID", account.ID), slog.String("status", input.Status))

	return account.Public(), nil
}

// SetEventApproval resolves a pending event submission.
func (srv *adminService) SetEventApproval(ctx context.Context, input *usecase.SetEventApprovalInput) (*entity.Event, error) {
	event, err := srv.eventRepo.FindByID(ctx, input.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, errors.Wrap(domainerrors.ErrEventNotFound, "event approval failed")
		}

		return nil, errors.Wrap(err, "failed to load event for approval")
	}

	status := entity.EventStatus(input.Status)
	if err := srv.eventRepo.UpdateStatus(ctx, event.ID, status); err != nil {
		return nil, errors.Wrap(err, "failed to update event status")
	}
	event.Status = status

	srv.log(ctx).Info("Event moderated",
		slog.Any("eventID", event.ID), slog.String("status", input.Status))

	return event, nil
}

// GetEvent returns a single event regardless of its moderation status.
func (srv *adminService) GetEvent(ctx context.Context, eventID uuid.UUID) (*entity.Event, error) {
	event, err := srv.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, errors.Wrap(domainerrors.ErrEventNotFound, "event lookup failed")
		}

		return nil, errors.Wrap(err, "failed to load event")
	}

	return event, nil
}

// DeleteEvent removes a completed event. Events still in the moderation or
// live stages cannot be deleted, only rejected.
func (srv *adminService) DeleteEvent(ctx context.Context, eventID uuid.UUID) error {
	event, err := srv.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return errors.Wrap(domainerrors.ErrEventNotFound, "event deletion failed")
		}

		return errors.Wrap(err, "failed to load event for deletion")
	}

	if event.Status != entity.EventCompleted {
		return errors.Wrap(domainerrors.ErrEventNotCompleted, "event deletion rejected")
	}

	if err := srv.eventRepo.Delete(ctx, eventID); err != nil {
		return errors.Wrap(err, "failed to delete event")
	}

	srv.log(ctx).Info("Event deleted", slog.Any("eventID", eventID))

	return nil
}
