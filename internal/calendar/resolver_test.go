package calendar

import (
	"testing"
	"time"

	"github.com/julianstephens/heartline/internal/constants"
)

func feb(day int) time.Time {
	return time.Date(2026, time.February, day, 12, 0, 0, 0, time.UTC)
}

func TestResolve_DateGated(t *testing.T) {
	r := New(constants.PolicyDateGated)

	tests := []struct {
		name         string
		now          time.Time
		wantCurrent  int
		wantUnlocked int
	}{
		{"early february", feb(1), 7, 1},
		{"day before rose day", feb(6), 7, 6},
		{"rose day", feb(7), 7, 7},
		{"teddy day", feb(10), 10, 10},
		{"valentine's day", feb(14), 14, 14},
		{"after valentine's", feb(20), 14, 14},
		{"end of february", feb(28), 14, 14},
		{"january", time.Date(2026, time.January, 10, 0, 0, 0, 0, time.UTC), 7, 7},
		{"march", time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), 7, 7},
		{"october", time.Date(2026, time.October, 14, 0, 0, 0, 0, time.UTC), 7, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := r.Resolve(tt.now)
			if w.CurrentDay != tt.wantCurrent {
				t.Errorf("CurrentDay = %d, want %d", w.CurrentDay, tt.wantCurrent)
			}
			if w.UnlockedDay != tt.wantUnlocked {
				t.Errorf("UnlockedDay = %d, want %d", w.UnlockedDay, tt.wantUnlocked)
			}
			if w.Policy != constants.PolicyDateGated {
				t.Errorf("Policy = %q", w.Policy)
			}
		})
	}
}

func TestResolve_UnlockedDayMonotonicInFebruary(t *testing.T) {
	r := New(constants.PolicyDateGated)
	prev := 0
	for day := 1; day <= 28; day++ {
		w := r.Resolve(feb(day))
		if want := min(day, 14); w.UnlockedDay != want {
			t.Errorf("day %d: UnlockedDay = %d, want %d", day, w.UnlockedDay, want)
		}
		if w.UnlockedDay < prev {
			t.Errorf("day %d: UnlockedDay decreased from %d to %d", day, prev, w.UnlockedDay)
		}
		prev = w.UnlockedDay
	}
}

func TestResolve_AllUnlocked(t *testing.T) {
	r := New(constants.PolicyAllUnlocked)
	for _, now := range []time.Time{feb(1), feb(10), time.Date(2026, time.July, 4, 0, 0, 0, 0, time.UTC)} {
		w := r.Resolve(now)
		if w.CurrentDay != 7 || w.UnlockedDay != 14 {
			t.Errorf("Resolve(%s) = %+v, want current 7 unlocked 14", now.Format(constants.DateFormat), w)
		}
	}
}

func TestNew_UnknownPolicyFallsBack(t *testing.T) {
	r := New("whenever")
	if r.Policy() != constants.PolicyDateGated {
		t.Errorf("Policy() = %q, want %q", r.Policy(), constants.PolicyDateGated)
	}
}

func TestWindowIsUnlocked(t *testing.T) {
	w := New(constants.PolicyDateGated).Resolve(feb(9))
	for day, want := range map[int]bool{6: false, 7: true, 8: true, 9: true, 10: false, 14: false, 15: false} {
		if got := w.IsUnlocked(day); got != want {
			t.Errorf("IsUnlocked(%d) = %v, want %v", day, got, want)
		}
	}

	outside := New(constants.PolicyDateGated).Resolve(time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC))
	if !outside.IsUnlocked(7) || outside.IsUnlocked(8) {
		t.Error("outside february only day 7 should be unlocked")
	}
}
