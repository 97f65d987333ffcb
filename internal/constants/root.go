package constants

import "time"

// RelationshipType describes who the week is dedicated to
type RelationshipType string

// Mood represents the presentation mood picked by the user
type Mood string

// UnlockPolicy selects how days unlock from the calendar
type UnlockPolicy string

const (
	AppName           = "heartline"
	DefaultConfigPath = "~/.config/heartline/heartline.db"
	Version           = "v0.1.0"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// LegacyDateFormat is the Date.toDateString() layout written by the browser build
	LegacyDateFormat = "Mon Jan 02 2006"

	// Valentine week window
	ValentineMonth = time.February
	FirstDay       = 7
	LastDay        = 14

	// Love meter constants
	MaxLoveMeter  = 100.0
	DefaultCredit = 12.5 // 100 / 8 days

	// Companion constants
	DefaultCompanionName = "Teddy"
	CareBondIncrement    = 5

	// Days whose interactions credit the meter outside the generic credit command
	TeddyDayID   = 10
	PromiseDayID = 11

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "heartline-"

	// Suffix appended to a malformed document kept aside for inspection
	CorruptFileSuffix = ".corrupt"

	// Relationship constants
	RelationshipPartner  RelationshipType = "partner"
	RelationshipCrush    RelationshipType = "crush"
	RelationshipBestie   RelationshipType = "bestie"
	RelationshipSelfLove RelationshipType = "self-love"

	// Mood constants
	MoodNormal      Mood = "normal"
	MoodHappy       Mood = "happy"
	MoodMissing     Mood = "missing"
	MoodShy         Mood = "shy"
	MoodHeartbroken Mood = "heartbroken"

	// Unlock policies
	PolicyDateGated   UnlockPolicy = "date-gated"
	PolicyAllUnlocked UnlockPolicy = "all-unlocked"
)

// Relationships lists the relationship types in onboarding order
var Relationships = []RelationshipType{
	RelationshipPartner,
	RelationshipCrush,
	RelationshipBestie,
	RelationshipSelfLove,
}

// Moods lists the moods in picker order
var Moods = []Mood{
	MoodNormal,
	MoodHappy,
	MoodMissing,
	MoodShy,
	MoodHeartbroken,
}

// IsValid reports whether r is a known relationship type
func (r RelationshipType) IsValid() bool {
	for _, known := range Relationships {
		if r == known {
			return true
		}
	}
	return false
}

// IsValid reports whether m is a known mood
func (m Mood) IsValid() bool {
	for _, known := range Moods {
		if m == known {
			return true
		}
	}
	return false
}

// IsValid reports whether p is a known unlock policy
func (p UnlockPolicy) IsValid() bool {
	return p == PolicyDateGated || p == PolicyAllUnlocked
}
