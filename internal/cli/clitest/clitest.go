// Package clitest builds command contexts backed by a temporary store.
package clitest

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/heartline/internal/calendar"
	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/constants"
	"github.com/julianstephens/heartline/internal/progress"
	"github.com/julianstephens/heartline/internal/storage"
)

// Env is a command context plus the buffers it writes to
type Env struct {
	Ctx *cli.Context
	Out *bytes.Buffer
	Err *bytes.Buffer
}

// Date returns 10:00 UTC on the given February day of 2026
func Date(day int) time.Time {
	return time.Date(2026, time.February, day, 10, 0, 0, 0, time.UTC)
}

// New opens a fresh SQLite store in a temp dir and resolves the window for now
func New(t *testing.T, now time.Time, policy constants.UnlockPolicy) *Env {
	t.Helper()
	return Open(t, filepath.Join(t.TempDir(), "heartline.db"), now, policy)
}

// Open is like New but reuses path, so tests can simulate a later session
func Open(t *testing.T, path string, now time.Time, policy constants.UnlockPolicy) *Env {
	t.Helper()

	provider := storage.New(path)
	if err := provider.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	t.Cleanup(func() { provider.Close() })

	clock := func() time.Time { return now }
	store := progress.NewStore(provider, progress.WithClock(clock), progress.WithLocation(time.UTC))
	if err := store.Load(); err != nil {
		t.Fatalf("failed to load store: %v", err)
	}

	env := &Env{Out: &bytes.Buffer{}, Err: &bytes.Buffer{}}
	env.Ctx = cli.NewContext(store, provider, calendar.New(policy).Resolve(now), clock)
	env.Ctx.Out = env.Out
	env.Ctx.Err = env.Err
	env.Ctx.In = strings.NewReader("")
	return env
}

// Onboarded is New with the names already captured
func Onboarded(t *testing.T, now time.Time, policy constants.UnlockPolicy) *Env {
	t.Helper()
	env := New(t, now, policy)
	if err := env.Ctx.Store.CompleteOnboarding("Ana", "Ben", constants.RelationshipPartner); err != nil {
		t.Fatalf("failed to onboard: %v", err)
	}
	return env
}
