package companion

import (
	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/constants"
	"github.com/julianstephens/heartline/internal/models"
)

type TeddyCmd struct {
	Feed   TeddyFeedCmd   `cmd:"" help:"Feed the teddy."`
	Dress  TeddyDressCmd  `cmd:"" help:"Dress or undress the teddy."`
	Tuck   TeddyTuckCmd   `cmd:"" help:"Tuck the teddy in or wake it up."`
	Rename TeddyRenameCmd `cmd:"" help:"Give the teddy a new name."`
	Show   TeddyShowCmd   `cmd:"" default:"1" help:"Show the teddy."`
}

type TeddyFeedCmd struct{}

func (cmd *TeddyFeedCmd) Run(ctx *cli.Context) error {
	return Care(ctx, models.CareFeed)
}

type TeddyDressCmd struct{}

func (cmd *TeddyDressCmd) Run(ctx *cli.Context) error {
	return Care(ctx, models.CareDress)
}

type TeddyTuckCmd struct{}

func (cmd *TeddyTuckCmd) Run(ctx *cli.Context) error {
	return Care(ctx, models.CareTuckIn)
}

// Care applies a care action and credits Teddy Day
func Care(ctx *cli.Context, action models.CareAction) error {
	if _, err := ctx.RequireUnlocked(constants.TeddyDayID); err != nil {
		return err
	}

	state := ctx.Store.Record().CompanionState
	if err := ctx.Check(ctx.Store.UpdateCompanion(models.CarePatch(state, action, ctx.Now()))); err != nil {
		return err
	}
	if _, err := ctx.Store.CreditDay(constants.TeddyDayID, constants.DefaultCredit); err != nil {
		if err := ctx.Check(err); err != nil {
			return err
		}
	}

	state = ctx.Store.Record().CompanionState
	switch action {
	case models.CareFeed:
		ctx.Printf("🍯 %s munches happily.", state.Name)
	case models.CareDress:
		if state.IsDressed {
			ctx.Printf("🎀 %s looks adorable.", state.Name)
		} else {
			ctx.Printf("👕 %s is back in fur.", state.Name)
		}
	case models.CareTuckIn:
		if state.IsTuckedIn {
			ctx.Printf("🌙 %s is fast asleep.", state.Name)
		} else {
			ctx.Printf("☀️  %s is awake.", state.Name)
		}
	}
	ctx.Printf(" Bond level: %d\n", state.BondLevel)
	return nil
}

type TeddyRenameCmd struct {
	Name string `arg:"" help:"New name."`
}

func (cmd *TeddyRenameCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUnlocked(constants.TeddyDayID); err != nil {
		return err
	}
	if err := ctx.Check(ctx.Store.UpdateCompanion(models.RenamePatch(cmd.Name))); err != nil {
		return err
	}
	ctx.Printf("✓ Your teddy is now called %s\n", ctx.Store.Record().CompanionState.Name)
	return nil
}

type TeddyShowCmd struct{}

func (cmd *TeddyShowCmd) Run(ctx *cli.Context) error {
	if _, err := ctx.RequireUnlocked(constants.TeddyDayID); err != nil {
		return err
	}
	c := ctx.Store.Record().CompanionState
	ctx.Printf("🧸 %s\n", c.Name)
	ctx.Printf("Bond level: %d\n", c.BondLevel)
	if c.LastFedAt != nil {
		ctx.Printf("Last fed:   %s\n", c.LastFedAt.In(ctx.Now().Location()).Format("Mon Jan 2 15:04"))
	} else {
		ctx.Println("Last fed:   never")
	}
	ctx.Printf("Dressed:    %t\n", c.IsDressed)
	ctx.Printf("Tucked in:  %t\n", c.IsTuckedIn)
	return nil
}
