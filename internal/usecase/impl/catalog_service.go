package impl

import (
	"context"
	"log/slog"

	"trailhub/internal/domain/entity"
	"trailhub/internal/domain/repository"
	"trailhub/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
type catalogService struct {
	eventRepo repository.EventRepository
	logger    *slog.Logger
}

// CatalogServiceParams holds dependencies for catalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	EventRepo repository.EventRepository
	Logger    *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		eventRepo: params.EventRepo,
		logger:    params.Logger,
	}
}

// BrowseEvents lists APPROVED events for anonymous visitors. The status is
// pinned here so no filter combination can leak unmoderated submissions.
func (srv *catalogService) BrowseEvents(ctx context.Context, input *usecase.BrowseEventsInput) (*usecase.EventListOutput, error) {
	filter := repository.EventFilter{
		Status:   entity.EventApproved,
		Category: input.Category,
		RaceType: input.RaceType,
		Country:  input.Country,
		Region:   input.Region,
		Search:   input.Search,
		Page:     input.Page,
		Limit:    input.Limit,
	}

	events, total, err := srv.eventRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to browse events")
	}

	return &usecase.EventListOutput{Events: events, Total: total}, nil
}
