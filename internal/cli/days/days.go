package days

import (
	"fmt"
	"strings"

	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/constants"
	"github.com/julianstephens/heartline/internal/models"
	"github.com/julianstephens/heartline/internal/utils"
)

type DaysCmd struct{}

func (cmd *DaysCmd) Run(ctx *cli.Context) error {
	rec := ctx.Store.Record()

	for _, d := range models.Days {
		marker := "🔒"
		switch {
		case ctx.Window.IsUnlocked(d.ID) && d.ID == ctx.Window.CurrentDay:
			marker = "👉"
		case ctx.Window.IsUnlocked(d.ID):
			marker = "  "
		}

		var extras []string
		if ctx.Store.IsCredited(d.ID) {
			extras = append(extras, "credited")
		}
		if _, ok := rec.Memories[d.ID]; ok {
			extras = append(extras, "memory")
		}
		if _, ok := rec.Photos[d.ID]; ok {
			extras = append(extras, "photo")
		}

		line := fmt.Sprintf("%s %2d  %s %s", marker, d.ID, d.Icon, d.Name)
		if len(extras) > 0 {
			line += "  (" + strings.Join(extras, ", ") + ")"
		}
		ctx.Println(line)
	}
	return nil
}

type DayCmd struct {
	Day string `arg:"" help:"Day number (7-14) or theme name, e.g. rose."`
}

func (cmd *DayCmd) Run(ctx *cli.Context) error {
	id, err := cli.ParseDayID(cmd.Day)
	if err != nil {
		return err
	}
	d, err := ctx.RequireUnlocked(id)
	if err != nil {
		return err
	}

	rec := ctx.Store.Record()
	ctx.Printf("%s %s (February %d)\n", d.Icon, d.Name, d.ID)
	if note, ok := rec.Memories[d.ID]; ok {
		ctx.Printf("Memory: %s\n", note)
	} else {
		ctx.Println("Memory: none yet")
	}
	if photo, ok := rec.Photos[d.ID]; ok {
		ctx.Printf("Photo:  saved (%d KB)\n", len(photo)/1024)
	}
	if ctx.Store.IsCredited(d.ID) {
		ctx.Println("Love meter: credited this session")
	}
	return nil
}

type CreditCmd struct {
	Day    string  `arg:"" help:"Day number (7-14) or theme name."`
	Amount float64 `help:"Amount to add to the love meter." default:"12.5"`
}

func (cmd *CreditCmd) Run(ctx *cli.Context) error {
	id, err := cli.ParseDayID(cmd.Day)
	if err != nil {
		return err
	}
	d, err := ctx.RequireUnlocked(id)
	if err != nil {
		return err
	}

	credited, err := ctx.Store.CreditDay(id, cmd.Amount)
	if err := ctx.Check(err); err != nil {
		return err
	}

	meter := ctx.Store.Record().LoveMeter
	if !credited {
		ctx.Printf("%s was already credited this session. %s\n", d.Name, cli.FormatMeter(meter, 20))
		return nil
	}
	ctx.Printf("✓ %s %s completed! %s\n", d.Icon, d.Name, cli.FormatMeter(meter, 20))
	return nil
}

type MemorySetCmd struct {
	Day  string   `arg:"" help:"Day number (7-14) or theme name."`
	Text []string `arg:"" help:"The note to keep for this day."`
}

func (cmd *MemorySetCmd) Run(ctx *cli.Context) error {
	id, err := cli.ParseDayID(cmd.Day)
	if err != nil {
		return err
	}
	d, err := ctx.RequireUnlocked(id)
	if err != nil {
		return err
	}

	text := strings.TrimSpace(strings.Join(cmd.Text, " "))
	if err := ctx.Check(ctx.Store.RecordMemory(id, text)); err != nil {
		return err
	}
	if text == "" {
		ctx.Printf("✓ Memory for %s cleared\n", d.Name)
		return nil
	}
	ctx.Printf("✓ Memory saved for %s\n", d.Name)
	return nil
}

type MemoryClearCmd struct {
	Day string `arg:"" help:"Day number (7-14) or theme name."`
}

func (cmd *MemoryClearCmd) Run(ctx *cli.Context) error {
	id, err := cli.ParseDayID(cmd.Day)
	if err != nil {
		return err
	}
	d, err := ctx.RequireUnlocked(id)
	if err != nil {
		return err
	}
	if err := ctx.Check(ctx.Store.RecordMemory(id, "")); err != nil {
		return err
	}
	ctx.Printf("✓ Memory for %s cleared\n", d.Name)
	return nil
}

type PhotoSetCmd struct {
	Day  string `arg:"" help:"Day number (7-14) or theme name."`
	File string `arg:"" type:"existingfile" help:"Image file to attach."`
}

func (cmd *PhotoSetCmd) Run(ctx *cli.Context) error {
	id, err := cli.ParseDayID(cmd.Day)
	if err != nil {
		return err
	}
	d, err := ctx.RequireUnlocked(id)
	if err != nil {
		return err
	}

	payload, err := utils.EncodeDataURL(cmd.File, "image")
	if err != nil {
		return err
	}
	if err := ctx.Check(ctx.Store.RecordPhoto(id, payload)); err != nil {
		return err
	}
	ctx.Printf("✓ Photo saved for %s\n", d.Name)
	return nil
}

type PhotoRemoveCmd struct {
	Day string `arg:"" help:"Day number (7-14) or theme name."`
}

func (cmd *PhotoRemoveCmd) Run(ctx *cli.Context) error {
	id, err := cli.ParseDayID(cmd.Day)
	if err != nil {
		return err
	}
	d, err := ctx.RequireUnlocked(id)
	if err != nil {
		return err
	}
	if err := ctx.Check(ctx.Store.RecordPhoto(id, "")); err != nil {
		return err
	}
	ctx.Printf("✓ Photo removed from %s\n", d.Name)
	return nil
}

type MoodCmd struct {
	Mood string `arg:"" enum:"normal,happy,missing,shy,heartbroken" help:"One of: normal, happy, missing, shy, heartbroken."`
}

func (cmd *MoodCmd) Run(ctx *cli.Context) error {
	if err := ctx.Check(ctx.Store.SetMood(constants.Mood(cmd.Mood))); err != nil {
		return err
	}
	ctx.Printf("✓ Mood set to %s\n", cmd.Mood)
	return nil
}

type ResetMeterCmd struct {
	Yes bool `short:"y" help:"Skip the confirmation prompt."`
}

func (cmd *ResetMeterCmd) Run(ctx *cli.Context) error {
	if !cmd.Yes && !cli.Confirm(ctx, "This empties the love meter. Continue?") {
		ctx.Println("Reset cancelled.")
		return nil
	}

	ctx.PerformAutomaticBackup()
	if err := ctx.Check(ctx.Store.ResetMeter()); err != nil {
		return err
	}
	ctx.Println("✓ Love meter reset to 0")
	return nil
}
