package system

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	if ctx.Store.NeedsOnboarding() {
		rec := ctx.Store.Record()
		input, err := runOnboardingForm(tui.OnboardingInput{
			UserName:     rec.UserName,
			PartnerName:  rec.PartnerName,
			Relationship: rec.RelationshipType,
		})
		if err != nil {
			return err
		}
		if err := ctx.Check(ctx.Store.CompleteOnboarding(input.UserName, input.PartnerName, input.Relationship)); err != nil {
			return err
		}
	}

	// Perform automatic backup on TUI startup (after successful load)
	ctx.PerformAutomaticBackup()

	p := tea.NewProgram(tui.NewModel(ctx.Store, ctx.Window), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui failed: %w", err)
	}
	return nil
}
