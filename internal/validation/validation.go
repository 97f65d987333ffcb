package validation

import (
	"fmt"
	"strings"

	"github.com/julianstephens/heartline/internal/constants"
	"github.com/julianstephens/heartline/internal/models"
	"github.com/julianstephens/heartline/internal/utils"
)

// ConflictType represents the kind of inconsistency found in a record
type ConflictType string

const (
	ConflictMeterOutOfRange    ConflictType = "meter_out_of_range"
	ConflictNegativeCounter    ConflictType = "negative_counter"
	ConflictUnknownEnum        ConflictType = "unknown_enum"
	ConflictDayOutOfRange      ConflictType = "day_out_of_range"
	ConflictEmptyPhoto         ConflictType = "empty_photo"
	ConflictAudioBothSet       ConflictType = "audio_both_set"
	ConflictEmptyPromise       ConflictType = "empty_promise"
	ConflictDuplicatePromiseID ConflictType = "duplicate_promise_id"
	ConflictInvalidDate        ConflictType = "invalid_date"
	ConflictFutureVisit        ConflictType = "future_visit"
	ConflictTrackOutOfRange    ConflictType = "track_out_of_range"
)

// Conflict represents one detected inconsistency
type Conflict struct {
	Type        ConflictType
	Description string
	Field       string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

func (vr *ValidationResult) add(t ConflictType, field, format string, args ...any) {
	vr.Conflicts = append(vr.Conflicts, Conflict{
		Type:        t,
		Field:       field,
		Description: fmt.Sprintf(format, args...),
	})
}

// Validator checks a record exactly as stored, before load normalizes it
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateRecord reports every invariant the record breaks. today is the
// current calendar date (YYYY-MM-DD).
func (v *Validator) ValidateRecord(rec models.ProgressRecord, today string) ValidationResult {
	var result ValidationResult

	if rec.LoveMeter < 0 || rec.LoveMeter > constants.MaxLoveMeter {
		result.add(ConflictMeterOutOfRange, "loveMeter", "love meter %.1f is outside 0-%.0f", rec.LoveMeter, constants.MaxLoveMeter)
	}
	if rec.Streak < 0 {
		result.add(ConflictNegativeCounter, "streak", "streak %d is negative", rec.Streak)
	}
	if rec.CompanionState.BondLevel < 0 {
		result.add(ConflictNegativeCounter, "companionState.bondLevel", "bond level %d is negative", rec.CompanionState.BondLevel)
	}
	if !rec.RelationshipType.IsValid() {
		result.add(ConflictUnknownEnum, "relationshipType", "unknown relationship type %q", rec.RelationshipType)
	}
	if !rec.Mood.IsValid() {
		result.add(ConflictUnknownEnum, "mood", "unknown mood %q", rec.Mood)
	}

	if rec.LastVisitDate != "" {
		if _, err := utils.NormalizeDate(rec.LastVisitDate); err != nil {
			result.add(ConflictInvalidDate, "lastVisitDate", "last visit %q is not a date", rec.LastVisitDate)
		} else if rec.LastVisitDate > today {
			result.add(ConflictFutureVisit, "lastVisitDate", "last visit %s is after today (%s)", rec.LastVisitDate, today)
		}
	}

	for day := range rec.Memories {
		if !models.IsValidDayID(day) {
			result.add(ConflictDayOutOfRange, "memories", "memory stored for day %d", day)
		}
	}
	for day, payload := range rec.Photos {
		if !models.IsValidDayID(day) {
			result.add(ConflictDayOutOfRange, "photos", "photo stored for day %d", day)
		}
		if payload == "" {
			result.add(ConflictEmptyPhoto, "photos", "empty photo stored for day %d", day)
		}
	}

	if rec.CustomAudioPayload != "" && rec.ExternalAudioLink != "" {
		result.add(ConflictAudioBothSet, "customAudioPayload", "both a custom track and an external link are set")
	}
	if rec.CurrentTrackIndex < 0 || rec.CurrentTrackIndex >= len(models.DefaultTracks) {
		result.add(ConflictTrackOutOfRange, "currentTrackIndex", "track %d is not in the playlist", rec.CurrentTrackIndex)
	}

	seen := make(map[string]bool, len(rec.PromiseVault))
	for i, p := range rec.PromiseVault {
		if strings.TrimSpace(p.Text) == "" {
			result.add(ConflictEmptyPromise, "promiseVault", "promise #%d has no text", i+1)
		}
		if p.ID == "" || seen[p.ID] {
			result.add(ConflictDuplicatePromiseID, "promiseVault", "promise #%d has a missing or duplicate id %q", i+1, p.ID)
		}
		seen[p.ID] = true
		if p.UnlockDate != "" {
			if _, err := utils.NormalizeDate(p.UnlockDate); err != nil {
				result.add(ConflictInvalidDate, "promiseVault", "promise #%d has invalid unlock date %q", i+1, p.UnlockDate)
			}
		}
	}

	return result
}
