package models

import (
	"time"

	"github.com/julianstephens/heartline/internal/constants"
)

// CareAction is one of the teddy care interactions
type CareAction string

const (
	CareFeed   CareAction = "feed"
	CareDress  CareAction = "dress"
	CareTuckIn CareAction = "tuck"
)

// CompanionState tracks the virtual teddy
type CompanionState struct {
	Name       string     `json:"name"`
	BondLevel  int        `json:"bondLevel"`
	LastFedAt  *time.Time `json:"lastFedAt,omitempty"`
	IsDressed  bool       `json:"isDressed"`
	IsTuckedIn bool       `json:"isTuckedIn"`
}

// CompanionPatch is a partial update; nil fields are left untouched
type CompanionPatch struct {
	Name       *string
	BondLevel  *int
	LastFedAt  *time.Time
	IsDressed  *bool
	IsTuckedIn *bool
}

// NewCompanionState returns the default teddy
func NewCompanionState() CompanionState {
	return CompanionState{Name: constants.DefaultCompanionName}
}

// Clone returns a copy that does not share LastFedAt
func (c CompanionState) Clone() CompanionState {
	out := c
	if c.LastFedAt != nil {
		fed := *c.LastFedAt
		out.LastFedAt = &fed
	}
	return out
}

// Apply merges the patch into c
func (p CompanionPatch) Apply(c CompanionState) CompanionState {
	out := c.Clone()
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.BondLevel != nil {
		out.BondLevel = *p.BondLevel
	}
	if p.LastFedAt != nil {
		fed := *p.LastFedAt
		out.LastFedAt = &fed
	}
	if p.IsDressed != nil {
		out.IsDressed = *p.IsDressed
	}
	if p.IsTuckedIn != nil {
		out.IsTuckedIn = *p.IsTuckedIn
	}
	return out
}

// CarePatch builds the update for a care action. Every action raises the
// bond; feeding stamps the feed time and dressing/tucking toggle.
func CarePatch(c CompanionState, action CareAction, now time.Time) CompanionPatch {
	bond := c.BondLevel + constants.CareBondIncrement
	patch := CompanionPatch{BondLevel: &bond}

	switch action {
	case CareFeed:
		fed := now
		patch.LastFedAt = &fed
	case CareDress:
		dressed := !c.IsDressed
		patch.IsDressed = &dressed
	case CareTuckIn:
		tucked := !c.IsTuckedIn
		patch.IsTuckedIn = &tucked
	}

	return patch
}

// RenamePatch builds an update that only changes the name
func RenamePatch(name string) CompanionPatch {
	return CompanionPatch{Name: &name}
}
