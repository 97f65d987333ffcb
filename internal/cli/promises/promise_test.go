package promises

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/heartline/internal/cli/clitest"
	"github.com/julianstephens/heartline/internal/constants"
	apperrors "github.com/julianstephens/heartline/internal/errors"
)

func TestPromiseAdd(t *testing.T) {
	env := clitest.Onboarded(t, clitest.Date(11), constants.PolicyDateGated)

	if err := (&PromiseAddCmd{Text: []string{"to", "always", "listen"}}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	rec := env.Ctx.Store.Record()
	if len(rec.PromiseVault) != 1 || rec.PromiseVault[0].Text != "to always listen" {
		t.Fatalf("vault = %+v", rec.PromiseVault)
	}
	if rec.PromiseVault[0].IsSecured {
		t.Error("plain promise should not be secured")
	}
	if rec.LoveMeter != constants.DefaultCredit {
		t.Errorf("LoveMeter = %v, want Promise Day credited", rec.LoveMeter)
	}

	if err := (&PromiseAddCmd{Text: []string{"  "}}).Run(env.Ctx); !apperrors.IsValidation(err) {
		t.Errorf("error = %v, want ValidationError", err)
	}
}

func TestPromiseAdd_Locked(t *testing.T) {
	env := clitest.Onboarded(t, clitest.Date(10), constants.PolicyDateGated)

	if err := (&PromiseAddCmd{Text: []string{"early"}}).Run(env.Ctx); !errors.Is(err, apperrors.ErrDayLocked) {
		t.Errorf("error = %v, want ErrDayLocked", err)
	}
}

func TestPromiseList_Visibility(t *testing.T) {
	path := filepath.Join(t.TempDir(), "heartline.db")
	env := clitest.Open(t, path, clitest.Date(11), constants.PolicyDateGated)
	if err := env.Ctx.Store.CompleteOnboarding("Ana", "Ben", constants.RelationshipPartner); err != nil {
		t.Fatal(err)
	}

	if err := (&PromiseAddCmd{Text: []string{"dinner", "on", "the", "14th"}, UnlockDate: "2026-02-14"}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&PromiseAddCmd{Text: []string{"secret"}, Passphrase: "rosebud"}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}

	if err := (&PromiseListCmd{}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	out := env.Out.String()
	if strings.Contains(out, "dinner") || strings.Contains(out, "secret") {
		t.Errorf("locked promises leaked their text:\n%s", out)
	}

	secretID := env.Ctx.Store.Record().PromiseVault[1].ID
	env.Out.Reset()
	if err := (&PromiseListCmd{Attempt: []string{secretID + "=rosebud"}}).Run(env.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(env.Out.String(), "💌 secret") {
		t.Errorf("passphrase should open the promise:\n%s", env.Out.String())
	}

	// Valentine's Day opens the dated promise
	later := clitest.Open(t, path, clitest.Date(14), constants.PolicyDateGated)
	if err := (&PromiseListCmd{}).Run(later.Ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(later.Out.String(), "💌 dinner on the 14th") {
		t.Errorf("dated promise should open on its date:\n%s", later.Out.String())
	}
}

func TestPromiseList_BadAttempt(t *testing.T) {
	env := clitest.Onboarded(t, clitest.Date(11), constants.PolicyDateGated)

	if err := (&PromiseListCmd{Attempt: []string{"nopass"}}).Run(env.Ctx); err == nil {
		t.Error("expected malformed attempt to fail")
	}
	if err := (&PromiseListCmd{Attempt: []string{"missing=x"}}).Run(env.Ctx); err == nil {
		t.Error("expected unknown id to fail")
	}
}
