package calendar

import (
	"time"

	"github.com/julianstephens/heartline/internal/constants"
)

// Window is the resolved view of the week for one application start
type Window struct {
	CurrentDay  int
	UnlockedDay int
	Policy      constants.UnlockPolicy
}

type Resolver struct {
	policy constants.UnlockPolicy
}

// New returns a resolver for policy. Unknown policies fall back to date-gated.
func New(policy constants.UnlockPolicy) *Resolver {
	if !policy.IsValid() {
		policy = constants.PolicyDateGated
	}
	return &Resolver{policy: policy}
}

// Policy returns the active unlock policy
func (r *Resolver) Policy() constants.UnlockPolicy {
	return r.policy
}

// Resolve computes the window for the given date. It is pure; callers read
// the clock once at startup and keep the result.
func (r *Resolver) Resolve(now time.Time) Window {
	if r.policy == constants.PolicyAllUnlocked {
		return Window{
			CurrentDay:  constants.FirstDay,
			UnlockedDay: constants.LastDay,
			Policy:      r.policy,
		}
	}

	w := Window{
		CurrentDay:  constants.FirstDay,
		UnlockedDay: constants.FirstDay,
		Policy:      r.policy,
	}
	if now.Month() != constants.ValentineMonth {
		return w
	}

	date := now.Day()
	w.UnlockedDay = min(date, constants.LastDay)
	switch {
	case date >= constants.FirstDay && date <= constants.LastDay:
		w.CurrentDay = date
	case date > constants.LastDay:
		w.CurrentDay = constants.LastDay
	}
	return w
}

// IsUnlocked reports whether day may be opened in this window
func (w Window) IsUnlocked(day int) bool {
	return day >= constants.FirstDay && day <= w.UnlockedDay
}
