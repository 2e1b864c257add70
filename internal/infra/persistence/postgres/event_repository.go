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

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// eventRepository implements the domain.EventRepository interface using GORM.
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository is the constructor for eventRepository.
func NewEventRepository(db *gorm.DB) repository.EventRepository {
	return &eventRepository{db: db}
}

// FindByID retrieves a single event by its unique ID.
func (repo *eventRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	var eventM model.EventModel
	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&eventM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrEventNotFound
		}

		return nil, errors.Wrap(err, "failed to find event by id")
	}

	return eventM.ToDomain(), nil
}

// List retrieves events matching the filter, newest first, plus the total
// count before pagination.
func (repo *eventRepository) List(ctx context.Context, filter repository.EventFilter) ([]*entity.Event, int64, error) {
	query := repo.db.WithContext(ctx).Model(&model.EventModel{})

	if filter.VendorID != uuid.Nil {
		query = query.Where("vendor_id = ?", filter.VendorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Category != "" {
		query = query.Where("category = ?", filter.Category)
	}
	if filter.RaceType != "" {
		query = query.Where("race_type = ?", filter.RaceType)
	}
	if filter.Country != "" {
		query = query.Where("country = ?", filter.Country)
	}
	if filter.Region != "" {
		query = query.Where("region = ?", filter.Region)
	}
	if filter.Search != "" {
		query = query.Where("title ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to count events")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	var eventMs []*model.EventModel
	if err := query.
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&eventMs).Error; err != nil {
		return nil, 0, errors.Wrap(err, "failed to list events")
	}

	events := make([]*entity.Event, 0, len(eventMs))
	for _, eventM := range eventMs {
		events = append(events, eventM.ToDomain())
	}

	return events, total, nil
}

// Create persists a new event entity to the database.
func (repo *eventRepository) Create(ctx context.Context, event *entity.Event) error {
	eventM := model.FromEventDomain(event)

	if err := repo.db.WithContext(ctx).Create(eventM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "event references unknown vendor")
		}
		if isNotNullConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "missing required event information")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create event")
	}

	event.ID = eventM.ID
	event.CreatedAt = eventM.CreatedAt
	event.UpdatedAt = eventM.UpdatedAt

	return nil
}

// UpdateStatus moves an event through the moderation workflow.
func (repo *eventRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.EventStatus) error {
	result := repo.db.WithContext(ctx).
		Model(&model.EventModel{}).
		Where("id = ?", id).
		Update("status", status.String())
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to update event status")
	}
	if result.RowsAffected == 0 {
		return repository.ErrEventNotFound
	}

	return nil
}

// Delete removes an event.
func (repo *eventRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := repo.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&model.EventModel{})
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete event")
	}
	if result.RowsAffected == 0 {
		return repository.ErrEventNotFound
	}

	return nil
}

// gearRepository implements the domain.GearRepository interface using GORM.
type gearRepository struct {
	db *gorm.DB
}

// NewGearRepository is the constructor for gearRepository.
func NewGearRepository(db *gorm.DB) repository.GearRepository {
	return &gearRepository{db: db}
}

// Create persists a new gear listing.
func (repo *gearRepository) Create(ctx context.Context, gear *entity.Gear) error {
	gearM := model.FromGearDomain(gear)

	if err := repo.db.WithContext(ctx).Create(gearM).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.NewDatabaseExecuteError(err, "gear references unknown event")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create gear listing")
	}

	gear.ID = gearM.ID
	gear.CreatedAt = gearM.CreatedAt

	return nil
}

// ListByEvent retrieves all gear attached to an event.
func (repo *gearRepository) ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*entity.Gear, error) {
	var gearMs []*model.GearModel
	if err := repo.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("created_at ASC").
		Find(&gearMs).Error; err != nil {
		return nil, errors.Wrap(err, "failed to list gear for event")
	}

	gear := make([]*entity.Gear, 0, len(gearMs))
	for _, gearM := range gearMs {
		gear = append(gear, gearM.ToDomain())
	}

	return gear, nil
}
