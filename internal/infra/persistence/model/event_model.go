package model

import (
	"time"

	"github.com/google/uuid"

	"trailhub/internal/domain/entity"
)

// EventModel mirrors the 'events' table.
type EventModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	VendorID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Title     string    `gorm:"type:varchar(255);not null"`
	Category  string    `gorm:"type:varchar(50)"`
	RaceType  string    `gorm:"type:varchar(50)"`
	Distance  float64
	Country   string `gorm:"type:varchar(100)"`
	Region    string `gorm:"type:varchar(100)"`
	StartDate time.Time
	Status    string `gorm:"type:varchar(10);not null;default:PENDING;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (EventModel) TableName() string {
	return "events"
}

// ToDomain maps the persistence model to a pure domain entity.
func (m *EventModel) ToDomain() *entity.Event {
	return &entity.Event{
		ID:        m.ID,
		VendorID:  m.VendorID,
		Title:     m.Title,
		Category:  m.Category,
		RaceType:  m.RaceType,
		Distance:  m.Distance,
		Country:   m.Country,
		Region:    m.Region,
		StartDate: m.StartDate,
		Status:    entity.EventStatus(m.Status),
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromEventDomain maps a domain entity to the persistence model.
func FromEventDomain(e *entity.Event) *EventModel {
	return &EventModel{
		ID:        e.ID,
		VendorID:  e.VendorID,
		Title:     e.Title,
		Category:  e.Category,
		RaceType:  e.RaceType,
		Distance:  e.Distance,
		Country:   e.Country,
		Region:    e.Region,
		StartDate: e.StartDate,
		Status:    e.Status.String(),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// GearModel mirrors the 'gear' table.
type GearModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	VendorID    uuid.UUID `gorm:"type:uuid;not null;index"`
	EventID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Price       float64
	CreatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (GearModel) TableName() string {
	return "gear"
}

// ToDomain maps the persistence model to a pure domain entity.
func (m *GearModel) ToDomain() *entity.Gear {
	return &entity.Gear{
		ID:          m.ID,
		VendorID:    m.VendorID,
		EventID:     m.EventID,
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		CreatedAt:   m.CreatedAt,
	}
}

// FromGearDomain maps a domain entity to the persistence model.
func FromGearDomain(g *entity.Gear) *GearModel {
	return &GearModel{
		ID:          g.ID,
		VendorID:    g.VendorID,
		EventID:     g.EventID,
		Name:        g.Name,
		Description: g.Description,
		Price:       g.Price,
		CreatedAt:   g.CreatedAt,
	}
}
