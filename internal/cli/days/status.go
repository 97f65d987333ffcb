package days

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/models"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type StatusCmd struct{}

func (cmd *StatusCmd) Run(ctx *cli.Context) error {
	rec := ctx.Store.Record()

	if !rec.IsOnboarded() {
		ctx.Println("Not set up yet. Run 'heartline onboard' to begin.")
		return nil
	}

	row := func(label, value string) {
		ctx.Printf("%s %s\n", labelStyle.Render(fmt.Sprintf("%-12s", label)), value)
	}

	ctx.Println(titleStyle.Render(fmt.Sprintf("%s ♥ %s", rec.UserName, rec.PartnerName)))
	row("Relationship", string(rec.RelationshipType))
	row("Love meter", cli.FormatMeter(rec.LoveMeter, 20))
	row("Streak", fmt.Sprintf("%d day(s)", rec.Streak))
	row("Mood", string(rec.Mood))

	current, _ := models.DayByID(ctx.Window.CurrentDay)
	unlocked, _ := models.DayByID(ctx.Window.UnlockedDay)
	row("Today", fmt.Sprintf("%s %s", current.Icon, current.Name))
	row("Unlocked", fmt.Sprintf("through %s (%s)", unlocked.Name, ctx.Window.Policy))

	c := rec.CompanionState
	var care []string
	if c.LastFedAt != nil {
		care = append(care, "fed "+c.LastFedAt.In(ctx.Now().Location()).Format("Jan 2 15:04"))
	}
	if c.IsDressed {
		care = append(care, "dressed")
	}
	if c.IsTuckedIn {
		care = append(care, "tucked in")
	}
	companion := fmt.Sprintf("%s (bond %d)", c.Name, c.BondLevel)
	if len(care) > 0 {
		companion += ", " + strings.Join(care, ", ")
	}
	row("Companion", companion)

	locked := 0
	vault := ctx.Store.Vault()
	for _, p := range vault {
		if p.Locked {
			locked++
		}
	}
	row("Promises", fmt.Sprintf("%d sealed, %d locked", len(vault), locked))
	row("Memories", fmt.Sprintf("%d", len(rec.Memories)))
	row("Music", models.CurrentTrack(rec).Name)

	return nil
}
