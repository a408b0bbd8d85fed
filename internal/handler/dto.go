package handler

import (
	"time"

	"github.com/google/uuid"
)

// --- Catalog requests ---

type createStepRequest struct {
	ShortName string `json:"short_name" validate:"required,max=80"`
	Question  string `json:"question"`
}

type updateStepRequest struct {
	ShortName string `json:"short_name" validate:"required,max=80"`
	Question  string `json:"question"`
}

type moveStepRequest struct {
	Direction string `json:"direction" validate:"required,oneof=up down"`
}

type createChoiceRequest struct {
	ShortName        string     `json:"short_name" validate:"required,max=80"`
	Text             string     `json:"text"`
	FillableByPlayer bool       `json:"fillable_by_player"`
	PrerequisiteID   *uuid.UUID `json:"prerequisite_id,omitempty"`
}

type updateChoiceRequest struct {
	ShortName        string `json:"short_name" validate:"required,max=80"`
	Text             string `json:"text"`
	FillableByPlayer bool   `json:"fillable_by_player"`
}

type setPrerequisiteRequest struct {
	PrerequisiteID *uuid.UUID `json:"prerequisite_id"`
}

// --- Background requests ---

type submitAnswerRequest struct {
	StepID     uuid.UUID `json:"step_id" validate:"required"`
	ChoiceID   uuid.UUID `json:"choice_id" validate:"required"`
	PlayerText string    `json:"player_text"`
}

type updateAnswerTextRequest struct {
	PlayerText string `json:"player_text" validate:"required"`
}

// --- Character requests ---

type createCharacterRequest struct {
	LarpID      uuid.UUID `json:"larp_id" validate:"required"`
	FactionID   uuid.UUID `json:"faction_id" validate:"required"`
	Name        string    `json:"name" validate:"required,max=60"`
	Skills      string    `json:"skills"`
	LastLearned string    `json:"last_learned" validate:"max=60"`
	Emotions    string    `json:"emotions" validate:"required"`
	Objectives  string    `json:"objectives"`
}

type updateCharacterRequest struct {
	Name        string `json:"name" validate:"required,max=60"`
	Skills      string `json:"skills"`
	LastLearned string `json:"last_learned" validate:"max=60"`
	Emotions    string `json:"emotions" validate:"required"`
	Objectives  string `json:"objectives"`
}

type addDocumentRequest struct {
	Name        string `json:"name" validate:"required,max=80"`
	DocumentURL string `json:"document_url" validate:"required,url"`
}

// --- Event catalog requests ---

type createLarpRequest struct {
	Name         string `json:"name" validate:"required,max=70"`
	Description  string `json:"description"`
	FactionsName string `json:"factions_name" validate:"max=35"`
}

type setSheetCreationRequest struct {
	Opened bool `json:"opened"`
}

type createOpusRequest struct {
	Name        string     `json:"name" validate:"required,max=70"`
	Date        *time.Time `json:"date,omitempty"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
}

type createFactionRequest struct {
	Name        string     `json:"name" validate:"required,max=70"`
	OrgaContact string     `json:"orga_contact"`
	OrgaUserID  *uuid.UUID `json:"orga_user_id,omitempty"`
}

type createTicketRequest struct {
	Price      float64 `json:"price" validate:"gte=0"`
	AccessType string  `json:"access_type" validate:"required,oneof=PJ PNJV PNJF"`
}

type enrollRequest struct {
	AccessType string     `json:"access_type" validate:"required,oneof=PJ PNJV PNJF"`
	FactionID  *uuid.UUID `json:"faction_id,omitempty"`
}

// --- Profile requests ---

type saveProfileRequest struct {
	Pseudos          string     `json:"pseudos"`
	Birthdate        *time.Time `json:"birthdate,omitempty"`
	Food             string     `json:"food"`
	Experience       string     `json:"experience" validate:"required,oneof=ONE TWO THREE FOUR"`
	UnwantedPeople   string     `json:"unwanted_people"`
	Fears            string     `json:"fears"`
	EmergencyContact string     `json:"emergency_contact"`
}

type savePnjProfileRequest struct {
	InfoOrga       string  `json:"info_orga"`
	PreferredTime  *string `json:"preferred_time,omitempty" validate:"omitempty,oneof=EARLY LATE ANY"`
	NightAction    *bool   `json:"night_action,omitempty"`
	LogisticOrRole *int    `json:"logistic_or_role,omitempty" validate:"omitempty,gte=0,lte=5"`
	Importance     *int    `json:"importance,omitempty" validate:"omitempty,gte=0,lte=5"`
	Talent         string  `json:"talent"`
}
