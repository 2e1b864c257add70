package impl

import (
	"context"
	"log/slog"

	deliverycontext "trailhub/internal/delivery/context"
	"trailhub/internal/domain/entity"
	domainerrors "trailhub/internal/domain/errors"
	"trailhub/internal/domain/repository"
	"trailhub/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// vendorService implements the VendorUsecase interface.
type vendorService struct {
	eventRepo repository.EventRepository
	gearRepo  repository.GearRepository
	logger    *slog.Logger
}

// VendorServiceParams holds dependencies for vendorService, injected by Fx.
type VendorServiceParams struct {
	fx.In

	EventRepo repository.EventRepository
	GearRepo  repository.GearRepository
	Logger    *slog.Logger
}

// NewVendorService is the constructor for vendorService.
func NewVendorService(params VendorServiceParams) usecase.VendorUsecase {
	return &vendorService{
		eventRepo: params.EventRepo,
		gearRepo:  params.GearRepo,
		logger:    params.Logger,
	}
}

func (srv *vendorService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// CreateEvent lists a new event for the vendor. Every submission enters the
// moderation queue as PENDING regardless of who submits it.
func (srv *vendorService) CreateEvent(ctx context.Context, input *usecase.CreateEventInput) (*entity.Event, error) {
	event := &entity.Event{
		VendorID:  input.VendorID,
		Title:     input.Title,
		Category:  input.Category,
		RaceType:  input.RaceType,
		Distance:  input.Distance,
		Country:   input.Country,
		Region:    input.Region,
		StartDate: input.StartDate,
		Status:    entity.EventPending,
	}

	if err := srv.eventRepo.Create(ctx, event); err != nil {
		srv.log(ctx).Error("Failed to create event", slog.Any("vendorID", input.VendorID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create event")
	}

	srv.log(ctx).Info("Event submitted", slog.Any("eventID", event.ID), slog.Any("vendorID", event.VendorID))

	return event, nil
}

// ListOwnEvents pages through the vendor's own submissions, optionally
// narrowed to one moderation status.
func (srv *vendorService) ListOwnEvents(ctx context.Context, input *usecase.ListVendorEventsInput) (*usecase.EventListOutput, error) {
	filter := repository.EventFilter{
		VendorID: input.VendorID,
		Status:   entity.EventStatus(input.Status),
		Page:     input.Page,
		Limit:    input.Limit,
	}

	events, total, err := srv.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list vendor events")
	}

	return &usecase.EventListOutput{Events: events, Total: total}, nil
}

// CreateGear lists gear under one of the vendor's own events. Listing gear
// under another vendor's event is rejected before anything is written.
func (srv *vendorService) CreateGear(ctx context.Context, input *usecase.CreateGearInput) (*entity.Gear, error) {
	event, err := srv.eventRepo.FindByID(ctx, input.EventID)
	if err != nil {
		if errors.Is(err, repository.ErrEventNotFound) {
			return nil, errors.Wrap(domainerrors.ErrEventNotFound, "gear listing rejected")
		}

		return nil, errors.Wrap(err, "failed to load event for gear listing")
	}

	if event.VendorID != input.VendorID {
		srv.log(ctx).Warn("Gear listing rejected for foreign event",
			slog.Any("eventID", event.ID), slog.Any("vendorID", input.VendorID))

		return nil, errors.Wrap(domainerrors.ErrNotEventOwner, "gear listing rejected")
	}

	gear := &entity.Gear{
		VendorID:    input.VendorID,
		EventID:     input.EventID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
	}

	if err := srv.gearRepo.Create(ctx, gear); err != nil {
		return nil, errors.Wrap(err, "failed to create gear listing")
	}

	srv.log(ctx).Info("Gear listed", slog.Any("gearID", gear.ID), slog.Any("eventID", gear.EventID))

	return gear, nil
}
