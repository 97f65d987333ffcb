package promises

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/constants"
	apperrors "github.com/julianstephens/heartline/internal/errors"
	"github.com/julianstephens/heartline/internal/models"
)

type PromiseCmd struct {
	Add  PromiseAddCmd  `cmd:"" help:"Seal a new promise into the vault."`
	List PromiseListCmd `cmd:"" default:"1" help:"Open the promise vault."`
}

type PromiseAddCmd struct {
	Text       []string `arg:"" help:"The promise."`
	UnlockDate string   `help:"Keep the promise hidden until this date (YYYY-MM-DD)."`
	Passphrase string   `help:"Require this passphrase to read the promise."`
	Secure     bool     `help:"Lock the promise. Implied by --unlock-date and --passphrase."`
}

func (cmd *PromiseAddCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUnlocked(constants.PromiseDayID); err != nil {
		return err
	}

	draft := models.PromiseDraft{
		Text:       strings.Join(cmd.Text, " "),
		UnlockDate: cmd.UnlockDate,
		Passphrase: cmd.Passphrase,
		IsSecured:  cmd.Secure || cmd.UnlockDate != "" || cmd.Passphrase != "",
	}

	entry, err := ctx.Store.AddPromise(draft)
	if err := ctx.Check(err); err != nil {
		return err
	}
	if _, err := ctx.Store.CreditDay(constants.PromiseDayID, constants.DefaultCredit); err != nil {
		if err := ctx.Check(err); err != nil {
			return err
		}
	}

	ctx.Printf("✓ Promise sealed (%s)\n", entry.ID)
	if entry.IsSecured {
		var conditions []string
		if entry.UnlockDate != "" {
			conditions = append(conditions, "opens "+entry.UnlockDate)
		}
		if entry.Passphrase != "" {
			conditions = append(conditions, "needs its passphrase")
		}
		if len(conditions) > 0 {
			ctx.Printf("  🔒 %s\n", strings.Join(conditions, ", "))
		} else {
			ctx.Println("  🔒 locked")
		}
	}
	return nil
}

type PromiseListCmd struct {
	Attempt []string `help:"Unlock attempt as id=passphrase. Repeatable." placeholder:"ID=PASS"`
}

func (cmd *PromiseListCmd) Run(ctx *cli.Context) error {
	for _, a := range cmd.Attempt {
		id, pass, err := cli.ParseAttempt(a)
		if err != nil {
			return err
		}
		if _, err := ctx.Store.AttemptUnlock(id, pass); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return fmt.Errorf("no promise with id %s", id)
			}
			return err
		}
	}

	vault := ctx.Store.Vault()
	if len(vault) == 0 {
		ctx.Println("The vault is empty.")
		return nil
	}

	for i, view := range vault {
		e := view.Entry
		ctx.Printf("%d. [%s] sealed %s\n", i+1, e.ID, e.CreatedAt.In(ctx.Now().Location()).Format("Jan 2 15:04"))
		if view.Locked {
			hint := "locked"
			if e.UnlockDate != "" {
				hint += " until " + e.UnlockDate
			}
			if e.Passphrase != "" {
				hint += ", passphrase required"
			}
			ctx.Printf("   🔒 %s\n", hint)
			continue
		}
		ctx.Printf("   💌 %s\n", e.Text)
	}
	return nil
}
