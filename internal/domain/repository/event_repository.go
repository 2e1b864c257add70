// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"trailhub/internal/domain/entity"

	"github.com/google/uuid"
)

// Domain-specific errors for the catalog persistence.
var (
	// ErrEventNotFound is returned when an event is not found.
	ErrEventNotFound = errors.New("event not found")
	// ErrGearNotFound is returned when a gear listing is not found.
	ErrGearNotFound = errors.New("gear listing not found")
)

// EventFilter narrows event listings. Zero values mean "no constraint".
type EventFilter struct {
	VendorID uuid.UUID
	Status   entity.EventStatus
	Category string
	RaceType string
	Country  string
	Region   string
	Search   string // case-insensitive substring match on the title
	Page     int
	Limit    int
}

// EventRepository defines the standard operations for event persistence.
type EventRepository interface {
	// FindByID retrieves a single event by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Event, error)

	// List retrieves events matching the filter, newest first,
	// together with the total count before pagination.
	List(ctx context.Context, filter EventFilter) ([]*entity.Event, int64, error)

	// Create persists a new event.
	Create(ctx context.Context, event *entity.Event) error

	// UpdateStatus moves an event through the moderation workflow.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.EventStatus) error

	// Delete removes an event.
	Delete(ctx context.Context, id uuid.UUID) error
}

// GearRepository defines the standard operations for gear persistence.
type GearRepository interface {
	// Create persists a new gear listing.
	Create(ctx context.Context, gear *entity.Gear) error

	// ListByEvent retrieves all gear attached to an event.
	ListByEvent(ctx context.Context, eventID uuid.UUID) ([]*entity.Gear, error)
}
