package models

import (
	"time"

	"github.com/google/uuid"
)

// Character is a player's PJ sheet for one larp.
type Character struct {
	ID          uuid.UUID         `json:"id"`
	UserID      uuid.UUID         `json:"user_id"`
	LarpID      uuid.UUID         `json:"larp_id"`
	FactionID   uuid.UUID         `json:"faction_id"`
	Name        string            `json:"name"`
	Skills      string            `json:"skills"`
	LastLearned string            `json:"last_learned"`
	Emotions    EmotionPreference `json:"emotions"`
	Objectives  string            `json:"objectives"`
	BgCompleted bool              `json:"bg_completed"`
	Status      SheetStatus       `json:"status"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// CharacterDocument is an external document linked to a PJ sheet by organizers.
type CharacterDocument struct {
	ID          uuid.UUID `json:"id"`
	CharacterID uuid.UUID `json:"character_id"`
	Name        string    `json:"name"`
	DocumentURL string    `json:"document_url"`
}

// PnjProfile holds the preferences of a non-player-character volunteer
// for one larp. Unique per (user, larp).
type PnjProfile struct {
	ID             uuid.UUID       `json:"id"`
	UserID         uuid.UUID       `json:"user_id"`
	LarpID         uuid.UUID       `json:"larp_id"`
	InfoOrga       string          `json:"info_orga"`
	PreferredTime  *TimePreference `json:"preferred_time,omitempty"`
	NightAction    *bool           `json:"night_action,omitempty"`
	LogisticOrRole *ScaleLevel     `json:"logistic_or_role,omitempty"`
	Importance     *ScaleLevel     `json:"importance,omitempty"`
	Talent         string          `json:"talent"`
	Completed      bool            `json:"completed"`
}

// Profile is the security and comfort profile a user fills once.
type Profile struct {
	UserID           uuid.UUID       `json:"user_id"`
	Pseudos          string          `json:"pseudos"`
	Birthdate        *time.Time      `json:"birthdate,omitempty"`
	Food             string          `json:"food"`
	Experience       ExperienceLevel `json:"experience"`
	UnwantedPeople   string          `json:"unwanted_people"`
	Fears            string          `json:"fears"`
	EmergencyContact string          `json:"emergency_contact"`
	Activated        bool            `json:"activated"`
}
