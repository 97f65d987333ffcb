package system

import (
	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/constants"
	"github.com/julianstephens/heartline/internal/tui"
)

// runOnboardingForm is replaced in tests
var runOnboardingForm = tui.RunOnboardingForm

type OnboardCmd struct {
	User         string `help:"Your name."`
	Partner      string `help:"Who this week is for."`
	Relationship string `help:"partner, crush, bestie or self-love." enum:"partner,crush,bestie,self-love" default:"partner"`
}

func (cmd *OnboardCmd) Run(ctx *cli.Context) error {
	input := tui.OnboardingInput{
		UserName:     cmd.User,
		PartnerName:  cmd.Partner,
		Relationship: constants.RelationshipType(cmd.Relationship),
	}

	if input.UserName == "" || input.PartnerName == "" {
		var err error
		input, err = runOnboardingForm(input)
		if err != nil {
			return err
		}
	}

	err := ctx.Store.CompleteOnboarding(input.UserName, input.PartnerName, input.Relationship)
	if err := ctx.Check(err); err != nil {
		return err
	}

	rec := ctx.Store.Record()
	ctx.Printf("✓ Welcome, %s! This Valentine's Week is for %s.\n", rec.UserName, rec.PartnerName)
	return nil
}
