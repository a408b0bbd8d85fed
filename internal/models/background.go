package models

import "github.com/google/uuid"

// BgStep is one ordered question of a faction's background questionnaire.
// (faction_id, step_order) is unique; ordering starts at 1.
type BgStep struct {
	ID        uuid.UUID `json:"id"`
	FactionID uuid.UUID `json:"faction_id"`
	StepOrder int       `json:"step_order"`
	ShortName string    `json:"short_name"`
	Question  string    `json:"question"`
}

// BgChoice is one selectable answer to a step. PrerequisiteID, when set,
// references a choice of a strictly earlier step of the same faction; the
// choice only becomes eligible once that prerequisite has been answered.
type BgChoice struct {
	ID               uuid.UUID  `json:"id"`
	StepID           uuid.UUID  `json:"step_id"`
	ShortName        string     `json:"short_name"`
	Text             string     `json:"text"`
	FillableByPlayer bool       `json:"fillable_by_player"`
	PrerequisiteID   *uuid.UUID `json:"prerequisite_id,omitempty"`
}

// BgAnswer records the single choice a character made for one step,
// plus the free text the player typed when the choice allows it.
// Unique per (character_id, step_order); resubmission overwrites.
type BgAnswer struct {
	ID          uuid.UUID `json:"id"`
	CharacterID uuid.UUID `json:"character_id"`
	ChoiceID    uuid.UUID `json:"choice_id"`
	StepOrder   int       `json:"step_order"`
	PlayerText  string    `json:"player_text"`

	// Populated by joined reads. Orphaned is set when the referenced
	// choice no longer exists; such answers render as unresolvable
	// instead of failing the whole listing.
	ChoiceShortName string `json:"choice_short_name,omitempty"`
	ChoiceText      string `json:"choice_text,omitempty"`
	StepShortName   string `json:"step_short_name,omitempty"`
	Orphaned        bool   `json:"orphaned,omitempty"`
}

// BackgroundState is the questionnaire progression state of a character.
type BackgroundState string

const (
	BackgroundInProgress BackgroundState = "IN_PROGRESS"
	BackgroundCompleted  BackgroundState = "COMPLETED"
)

// BackgroundResolution is what the engine presents for a character:
// either the next step with its eligible choices, or completion.
type BackgroundResolution struct {
	State           BackgroundState `json:"state"`
	Step            *BgStep         `json:"step,omitempty"`
	EligibleChoices []BgChoice      `json:"eligible_choices,omitempty"`
}

// SubmitResult reports the outcome of a recorded answer.
type SubmitResult struct {
	Completed bool `json:"completed"`
	NextOrder int  `json:"next_order,omitempty"`
}
