package models

import (
	"time"

	"github.com/google/uuid"
)

// Larp is an event series (a "GN"), owning factions and opuses.
type Larp struct {
	ID                  uuid.UUID `json:"id"`
	Name                string    `json:"name"`
	Description         string    `json:"description"`
	FactionsName        string    `json:"factions_name"` // how this larp calls its groups (faction, gang...)
	PnjvOrgaContact     string    `json:"pnjv_orga_contact"`
	SheetCreationOpened bool      `json:"sheet_creation_opened"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Opus is one edition of a larp, the unit players enroll into.
type Opus struct {
	ID          uuid.UUID  `json:"id"`
	LarpID      uuid.UUID  `json:"larp_id"`
	Name        string     `json:"name"`
	Date        *time.Time `json:"date,omitempty"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Faction is a named grouping within a larp; it owns the ordered
// background-questionnaire steps its characters walk through.
type Faction struct {
	ID          uuid.UUID  `json:"id"`
	LarpID      uuid.UUID  `json:"larp_id"`
	Name        string     `json:"name"`
	OrgaUserID  *uuid.UUID `json:"orga_user_id,omitempty"`
	OrgaContact string     `json:"orga_contact"`
}

// Inscription is a user's enrollment into one opus.
type Inscription struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	OpusID     uuid.UUID  `json:"opus_id"`
	AccessType AccessType `json:"access_type"`
	FactionID  *uuid.UUID `json:"faction_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`

	// Denormalized for listing, populated by joins.
	LarpID   uuid.UUID `json:"larp_id"`
	LarpName string    `json:"larp_name,omitempty"`
	OpusName string    `json:"opus_name,omitempty"`
}

// Ticket is a price entry for one access type of an opus.
type Ticket struct {
	ID         uuid.UUID  `json:"id"`
	OpusID     uuid.UUID  `json:"opus_id"`
	Price      float64    `json:"price"`
	AccessType AccessType `json:"access_type"`
}
