package days

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/heartline/internal/cli/clitest"
	"github.com/julianstephens/heartline/internal/constants"
	apperrors "github.com/julianstephens/heartline/internal/errors"
)

func TestCreditCmd(t *testing.T) {
	env := clitest.Onboarded(t, clitest.Date(9), constants.PolicyDateGated)

	if err := (&CreditCmd{Day: "rose", Amount: constants.DefaultCredit}).Run(env.Ctx); err != nil {
		t.Fatalf("credit failed: %v", err)
	}
	if err := (&CreditCmd{Day: "7", Amount: constants.DefaultCredit}).Run(env.Ctx); err != nil {
		t.Fatalf("second credit failed: %v", err)
	}
	if got := env.Ctx.Store.Record().LoveMeter; got != 12.5 {
		t.Errorf("LoveMeter = %v, want 12.5", got)
	}
	if !strings.Contains(env.Out.String(), "already credited") {
		t.Errorf("expected repeat credit notice, got:\n%s", env.Out.String())
	}
}

func TestCreditCmd_LockedDay(t *testing.T) {
	env := clitest.Onboarded(t, clitest.Date(9), constants.PolicyDateGated)

	err := (&CreditCmd{Day: "10", Amount: constants.DefaultCredit}).Run(env.Ctx)
	if !errors.Is(err, apperrors.ErrDayLocked) {
		t.Fatalf("error = %v, want ErrDayLocked", err)
	}
	if got := env.Ctx.Store.Record().LoveMeter; got != 0 {
		t.Errorf("LoveMeter = %v, want 0", got)
	}
}

func TestCreditCmd_AllUnlocked(t *testing.T) {
	env := clitest.Onboarded(t, clitest.Date(1), constants.PolicyAllUnlocked)

	if err := (&CreditCmd{Day: "valentine", Amount: constants.DefaultCredit}).Run(env.Ctx); err != nil {
		t.Fatalf("credit failed: %v", err)
	}
}

func TestCreditCmd_InvalidDay(t *testing.T) {
	env := clitest.Onboarded(t, clitest.Date(14), constants.PolicyDateGated)

	if err := (&CreditCmd{Day: "15", Amount: constants.DefaultCredit}).Run(env.Ctx); !apperrors.IsValidation(err) {
		t.Errorf("error = %v, want ValidationError", err)
	}
	if err := (&CreditCmd{Day: "birthday", Amount: constants.DefaultCredit}).Run(env.Ctx); err == nil {
		t.Error("expected unknown day name to fail")
	}
}

func TestMemoryCmds(t *testing.T) {
	env := clitest.Onboarded(t, clitest.Date(8), constants.PolicyDateGated)

	if err := (&MemorySetCmd{Day: "8", Text: []string{"she", "said", "yes"}}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if got := env.Ctx.Store.Record().Memories[8]; got != "she said yes" {
		t.Errorf("memory = %q", got)
	}

	if err := (&MemoryClearCmd{Day: "8"}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if _, ok := env.Ctx.Store.Record().Memories[8]; ok {
		t.Error("memory should be cleared")
	}

	if err := (&MemorySetCmd{Day: "9", Text: []string{"early"}}).Run(env.Ctx); !errors.Is(err, apperrors.ErrDayLocked) {
		t.Errorf("error = %v, want ErrDayLocked", err)
	}
}

func TestPhotoCmds(t *testing.T) {
	env := clitest.Onboarded(t, clitest.Date(7), constants.PolicyDateGated)

	path := filepath.Join(t.TempDir(), "rose.png")
	if err := os.WriteFile(path, []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0600); err != nil {
		t.Fatal(err)
	}

	if err := (&PhotoSetCmd{Day: "7", File: path}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if got := env.Ctx.Store.Record().Photos[7]; !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Errorf("photo = %q", got)
	}

	if err := (&PhotoRemoveCmd{Day: "7"}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if _, ok := env.Ctx.Store.Record().Photos[7]; ok {
		t.Error("photo should be removed")
	}
}

func TestMoodCmd(t *testing.T) {
	env := clitest.Onboarded(t, clitest.Date(7), constants.PolicyDateGated)

	if err := (&MoodCmd{Mood: "heartbroken"}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if got := env.Ctx.Store.Record().Mood; got != constants.MoodHeartbroken {
		t.Errorf("Mood = %q", got)
	}
	if err := (&MoodCmd{Mood: "grumpy"}).Run(env.Ctx); !apperrors.IsValidation(err) {
		t.Errorf("error = %v, want ValidationError", err)
	}
}

func TestResetMeterCmd(t *testing.T) {
	env := clitest.Onboarded(t, clitest.Date(12), constants.PolicyDateGated)
	if _, err := env.Ctx.Store.CreditDay(12, constants.DefaultCredit); err != nil {
		t.Fatal(err)
	}

	// Declined prompt leaves the meter alone
	if err := (&ResetMeterCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if got := env.Ctx.Store.Record().LoveMeter; got != 12.5 {
		t.Errorf("LoveMeter = %v after declined reset", got)
	}

	if err := (&ResetMeterCmd{Yes: true}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if got := env.Ctx.Store.Record().LoveMeter; got != 0 {
		t.Errorf("LoveMeter = %v, want 0", got)
	}

	backups, err := os.ReadDir(filepath.Join(filepath.Dir(env.Ctx.Provider.GetConfigPath()), constants.BackupDirName))
	if err != nil || len(backups) == 0 {
		t.Errorf("expected an automatic backup before reset: %v", err)
	}
}

func TestDaysCmd(t *testing.T) {
	env := clitest.Onboarded(t, clitest.Date(10), constants.PolicyDateGated)

	if err := (&DaysCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	out := env.Out.String()
	if got := strings.Count(out, "🔒"); got != 4 {
		t.Errorf("expected 4 locked days on Feb 10, got %d:\n%s", got, out)
	}
	if !strings.Contains(out, "👉 10") {
		t.Errorf("expected current day marker on 10:\n%s", out)
	}
}

func TestDayCmd(t *testing.T) {
	env := clitest.Onboarded(t, clitest.Date(13), constants.PolicyDateGated)
	if err := env.Ctx.Store.RecordMemory(13, "first kiss"); err != nil {
		t.Fatal(err)
	}

	if err := (&DayCmd{Day: "kiss"}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Out.String(), "first kiss") {
		t.Errorf("expected memory in output:\n%s", env.Out.String())
	}
	if err := (&DayCmd{Day: "14"}).Run(env.Ctx); !errors.Is(err, apperrors.ErrDayLocked) {
		t.Errorf("error = %v, want ErrDayLocked", err)
	}
}

func TestDayCmd_BeforeFebruarySeventh(t *testing.T) {
	env := clitest.Onboarded(t, clitest.Date(3), constants.PolicyDateGated)

	if err := (&DayCmd{Day: "7"}).Run(env.Ctx); !errors.Is(err, apperrors.ErrDayLocked) {
		t.Errorf("error = %v, want ErrDayLocked before the week starts", err)
	}
}

func TestStatusCmd(t *testing.T) {
	env := clitest.New(t, clitest.Date(11), constants.PolicyDateGated)

	if err := (&StatusCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Out.String(), "heartline onboard") {
		t.Errorf("expected onboarding hint:\n%s", env.Out.String())
	}

	if err := env.Ctx.Store.CompleteOnboarding("Ana", "Ben", constants.RelationshipBestie); err != nil {
		t.Fatal(err)
	}
	env.Out.Reset()
	if err := (&StatusCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Ana", "Ben", "bestie", "Promise Day", "Teddy (bond 0)"} {
		if !strings.Contains(env.Out.String(), want) {
			t.Errorf("status output missing %q:\n%s", want, env.Out.String())
		}
	}
}
