// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// EventStatus tracks an event through the admin moderation workflow.
type EventStatus string

const (
	// EventPending is the initial status of every vendor-created event.
	EventPending EventStatus = "PENDING"
	// EventApproved marks an event visible in public browsing.
	EventApproved EventStatus = "APPROVED"
	// EventRejected marks an event declined by an admin.
	EventRejected EventStatus = "REJECTED"
	// EventCompleted marks an event whose date has passed.
	EventCompleted EventStatus = "COMPLETED"
)

// String returns the string representation of the EventStatus.
func (s EventStatus) String() string {
	return string(s)
}

// Event is a race or happening listed by a vendor. Only APPROVED events are
// visible to the public; the moderation decision belongs to admins.
type Event struct {
	ID        uuid.UUID   // Unique identifier for the event.
	VendorID  uuid.UUID   // The vendor account that created the event.
	Title     string      // Public title shown in listings.
	Category  string      // Free-form category, e.g. "TRAIL", "ROAD".
	RaceType  string      // Race type label, e.g. "MARATHON".
	Distance  float64     // Distance in kilometers.
	Country   string      // Country the event takes place in.
	Region    string      // Region within the country.
	StartDate time.Time   // When the event starts.
	Status    EventStatus // Moderation status.
	CreatedAt time.Time   // Timestamp of when this event was created.
	UpdatedAt time.Time   // Timestamp of the last modification.
}

// Gear is a piece of equipment a vendor offers alongside one of their events.
type Gear struct {
	ID          uuid.UUID // Unique identifier for the gear listing.
	VendorID    uuid.UUID // The vendor account that owns the listing.
	EventID     uuid.UUID // The event this gear is attached to.
	Name        string    // Listing name.
	Description string    // Listing description.
	Price       float64   // Price in the marketplace currency.
	CreatedAt   time.Time // Timestamp of when this listing was created.
}
