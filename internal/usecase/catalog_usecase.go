package usecase

import (
	"context"
)

// BrowseEventsInput filters the public event catalog. Only APPROVED events
// are ever returned; the filters are plain column matches plus a
// case-insensitive title substring search.
type BrowseEventsInput struct {
	Category string `query:"category" validate:"max=50"`
	RaceType string `query:"raceType" validate:"max=50"`
	Country  string `query:"country" validate:"max=100"`
	Region   string `query:"region" validate:"max=100"`
	Search   string `query:"search" validate:"max=255"`
	Page     int    `query:"page" validate:"gte=0"`
	Limit    int    `query:"limit" validate:"gte=0,lte=100"`
}

// CatalogUsecase defines the unauthenticated catalog operations.
type CatalogUsecase interface {
	BrowseEvents(ctx context.Context, input *BrowseEventsInput) (*EventListOutput, error)
}
