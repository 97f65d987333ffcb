package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/heartline/internal/constants"
)

// OnboardingInput holds the answers collected on first run
type OnboardingInput struct {
	UserName     string
	PartnerName  string
	Relationship constants.RelationshipType
}

func required(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s cannot be empty", what)
		}
		return nil
	}
}

// NewOnboardingForm builds the first-run form bound to in
func NewOnboardingForm(in *OnboardingInput) *huh.Form {
	if !in.Relationship.IsValid() {
		in.Relationship = constants.RelationshipPartner
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Your name").
				Value(&in.UserName).
				Validate(required("your name")),
			huh.NewInput().
				Title("Who is this week for?").
				Value(&in.PartnerName).
				Validate(required("their name")),
			huh.NewSelect[constants.RelationshipType]().
				Title("They are your...").
				Options(
					huh.NewOption("Partner", constants.RelationshipPartner),
					huh.NewOption("Crush", constants.RelationshipCrush),
					huh.NewOption("Bestie", constants.RelationshipBestie),
					huh.NewOption("Self-love", constants.RelationshipSelfLove),
				).
				Value(&in.Relationship),
		),
	).WithTheme(huh.ThemeDracula())
}

// RunOnboardingForm runs the form in the terminal and returns the answers.
// Prefilled fields in in are shown as defaults.
func RunOnboardingForm(in OnboardingInput) (OnboardingInput, error) {
	if err := NewOnboardingForm(&in).Run(); err != nil {
		return OnboardingInput{}, err
	}
	in.UserName = strings.TrimSpace(in.UserName)
	in.PartnerName = strings.TrimSpace(in.PartnerName)
	return in, nil
}
