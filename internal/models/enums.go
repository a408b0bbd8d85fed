package models

// AccessType distinguishes how a user participates in an opus.
type AccessType string

const (
	AccessPJ   AccessType = "PJ"   // player character
	AccessPNJV AccessType = "PNJV" // floating non-player character
	AccessPNJF AccessType = "PNJF" // faction non-player character
)

// Valid reports whether the value is one of the declared access types.
func (a AccessType) Valid() bool {
	switch a {
	case AccessPJ, AccessPNJV, AccessPNJF:
		return true
	}
	return false
}

// CanCreateCharacter reports whether this access type owns a PJ sheet.
func (a AccessType) CanCreateCharacter() bool {
	return a == AccessPJ || a == AccessPNJF
}

// HasPnjProfile reports whether this access type owns a PNJ profile.
func (a AccessType) HasPnjProfile() bool {
	return a == AccessPNJF || a == AccessPNJV
}

// SheetStatus is the lifecycle state of a PJ character sheet.
type SheetStatus string

const (
	SheetUnlocked        SheetStatus = "UNLOCKED"
	SheetPlayerValidated SheetStatus = "PLAYER_VALIDATED"
	SheetOrgaValidated   SheetStatus = "ORGA_VALIDATED"
)

func (s SheetStatus) Valid() bool {
	switch s {
	case SheetUnlocked, SheetPlayerValidated, SheetOrgaValidated:
		return true
	}
	return false
}

// Label returns the player-facing description of the status.
func (s SheetStatus) Label() string {
	switch s {
	case SheetUnlocked:
		return "being edited by the player"
	case SheetPlayerValidated:
		return "awaiting organizer validation"
	case SheetOrgaValidated:
		return "validated by the organizers"
	default:
		return "unknown"
	}
}

// EmotionPreference is the intensity of play a player signs up for.
type EmotionPreference string

const (
	EmotionSoft            EmotionPreference = "SOFT"
	EmotionModeratePositif EmotionPreference = "MOD_POSITIF"
	EmotionModerateAll     EmotionPreference = "MOD_ALL"
	EmotionSurprise        EmotionPreference = "SURPRISE"
	EmotionIntense         EmotionPreference = "INTENSE"
)

func (e EmotionPreference) Valid() bool {
	switch e {
	case EmotionSoft, EmotionModeratePositif, EmotionModerateAll, EmotionSurprise, EmotionIntense:
		return true
	}
	return false
}

// ExperienceLevel is how many larps the user has played.
type ExperienceLevel string

const (
	ExperienceBeginner ExperienceLevel = "ONE"
	ExperienceFew      ExperienceLevel = "TWO"
	ExperienceRegular  ExperienceLevel = "THREE"
	ExperienceVeteran  ExperienceLevel = "FOUR"
)

func (x ExperienceLevel) Valid() bool {
	switch x {
	case ExperienceBeginner, ExperienceFew, ExperienceRegular, ExperienceVeteran:
		return true
	}
	return false
}

// TimePreference is a PNJ's preferred duty slot.
type TimePreference string

const (
	TimeEarly TimePreference = "EARLY"
	TimeLate  TimePreference = "LATE"
	TimeAny   TimePreference = "ANY"
)

func (t TimePreference) Valid() bool {
	switch t {
	case TimeEarly, TimeLate, TimeAny:
		return true
	}
	return false
}

// ScaleLevel is a 0..5 preference scale used on PNJ profiles.
type ScaleLevel int

const (
	ScaleMin ScaleLevel = 0
	ScaleMax ScaleLevel = 5
)

func (s ScaleLevel) Valid() bool {
	return s >= ScaleMin && s <= ScaleMax
}
