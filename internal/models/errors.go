package models

import "errors"

// Application-wide standard errors
var (
	// Common resource/DB errors
	ErrNotFound       = errors.New("resource not found")
	ErrStepNotFound   = errors.New("background step not found")
	ErrChoiceNotFound = errors.New("background choice not found")

	// Validation errors
	ErrValidation        = errors.New("validation failed")
	ErrDuplicate         = errors.New("record already exists")
	ErrChoiceNotEligible = errors.New("choice is not eligible for this step")
	ErrPrerequisiteOrder = errors.New("prerequisite must belong to an earlier step")
	ErrCharacterLimit    = errors.New("character limit reached for this larp")
	ErrSheetNotEditable  = errors.New("character sheet is not editable in its current status")
	ErrInvalidTransition = errors.New("invalid sheet status transition")

	// Integrity errors
	ErrDataIntegrity = errors.New("data integrity violation")

	// Auth errors
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Token errors
	ErrTokenInvalid   = errors.New("token is invalid")
	ErrTokenMalformed = errors.New("token is malformed")
	ErrTokenExpired   = errors.New("token has expired")

	// General request/server errors
	ErrInternalServer = errors.New("internal server error")
	ErrBadRequest     = errors.New("bad request")
)
