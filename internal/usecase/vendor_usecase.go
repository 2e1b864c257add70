package usecase

import (
	"context"
	"time"

	"trailhub/internal/domain/entity"

	"github.com/google/uuid"
)

// CreateEventInput defines the data a vendor submits to list a new event.
// The vendor ID comes from the verified token.
type CreateEventInput struct {
	VendorID  uuid.UUID `json:"-"`
	Title     string    `json:"title" validate:"required,min=3,max=255"`
	Category  string    `json:"category" validate:"required,max=50"`
	RaceType  string    `json:"raceType" validate:"required,max=50"`
	Distance  float64   `json:"distance" validate:"gte=0"`
	Country   string    `json:"country" validate:"required,max=100"`
	Region    string    `json:"region" validate:"max=100"`
	StartDate time.Time `json:"startDate" validate:"required"`
}

// ListVendorEventsInput narrows a vendor's own event listing.
type ListVendorEventsInput struct {
	VendorID uuid.UUID `json:"-"`
	Status   string    `query:"status" validate:"omitempty,oneof=PENDING APPROVED REJECTED COMPLETED"`
	Page     int       `query:"page" validate:"gte=0"`
	Limit    int       `query:"limit" validate:"gte=0,lte=100"`
}

// CreateGearInput defines the data a vendor submits to list gear under one
// of its own events.
type CreateGearInput struct {
	VendorID    uuid.UUID `json:"-"`
	EventID     uuid.UUID `json:"eventId" validate:"required"`
	Name        string    `json:"name" validate:"required,min=2,max=255"`
	Description string    `json:"description" validate:"max=2000"`
	Price       float64   `json:"price" validate:"gte=0"`
}

// EventListOutput returns one page of events and the total before pagination.
type EventListOutput struct {
	Events []*entity.Event
	Total  int64
}

// VendorUsecase defines the vendor-facing catalog operations.
type VendorUsecase interface {
	CreateEvent(ctx context.Context, input *CreateEventInput) (*entity.Event, error)
	ListOwnEvents(ctx context.Context, input *ListVendorEventsInput) (*EventListOutput, error)
	CreateGear(ctx context.Context, input *CreateGearInput) (*entity.Gear, error)
}
