package models

import (
	"github.com/julianstephens/heartline/internal/constants"
)

// ProgressRecord is the single persisted aggregate for one device
type ProgressRecord struct {
	UserName           string                     `json:"userName"`
	PartnerName        string                     `json:"partnerName"`
	RelationshipType   constants.RelationshipType `json:"relationshipType"`
	LoveMeter          float64                    `json:"loveMeter"`
	Streak             int                        `json:"streak"`
	LastVisitDate      string                     `json:"lastVisitDate"` // YYYY-MM-DD format
	Memories           map[int]string             `json:"memories"`      // dayId -> note
	Photos             map[int]string             `json:"photos"`        // dayId -> encoded image
	Mood               constants.Mood             `json:"mood"`
	CompanionState     CompanionState             `json:"companionState"`
	PromiseVault       []PromiseEntry             `json:"promiseVault"`
	CustomAudioPayload string                     `json:"customAudioPayload,omitempty"`
	ExternalAudioLink  string                     `json:"externalAudioLink,omitempty"`
	CurrentTrackIndex  int                        `json:"currentTrackIndex"`
}

// NewProgressRecord returns the first-run record
func NewProgressRecord() ProgressRecord {
	return ProgressRecord{
		RelationshipType: constants.RelationshipPartner,
		Memories:         make(map[int]string),
		Photos:           make(map[int]string),
		Mood:             constants.MoodNormal,
		CompanionState:   NewCompanionState(),
		PromiseVault:     []PromiseEntry{},
	}
}

// IsOnboarded reports whether both names have been captured
func (r ProgressRecord) IsOnboarded() bool {
	return r.UserName != "" && r.PartnerName != ""
}

// HasAudioOverride reports whether either custom audio source is set
func (r ProgressRecord) HasAudioOverride() bool {
	return r.CustomAudioPayload != "" || r.ExternalAudioLink != ""
}

// Clone returns a deep copy so callers never alias store state
func (r ProgressRecord) Clone() ProgressRecord {
	out := r
	out.Memories = make(map[int]string, len(r.Memories))
	for k, v := range r.Memories {
		out.Memories[k] = v
	}
	out.Photos = make(map[int]string, len(r.Photos))
	for k, v := range r.Photos {
		out.Photos[k] = v
	}
	out.CompanionState = r.CompanionState.Clone()
	out.PromiseVault = make([]PromiseEntry, len(r.PromiseVault))
	copy(out.PromiseVault, r.PromiseVault)
	return out
}
