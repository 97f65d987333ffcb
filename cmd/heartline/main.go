package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/heartline/internal/calendar"
	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/cli/backups"
	"github.com/julianstephens/heartline/internal/cli/companion"
	"github.com/julianstephens/heartline/internal/cli/days"
	"github.com/julianstephens/heartline/internal/cli/music"
	"github.com/julianstephens/heartline/internal/cli/promises"
	"github.com/julianstephens/heartline/internal/cli/system"
	"github.com/julianstephens/heartline/internal/config"
	"github.com/julianstephens/heartline/internal/constants"
	apperrors "github.com/julianstephens/heartline/internal/errors"
	"github.com/julianstephens/heartline/internal/logger"
	"github.com/julianstephens/heartline/internal/progress"
	"github.com/julianstephens/heartline/internal/storage"
	"github.com/julianstephens/heartline/internal/utils"
)

var CLI struct {
	Version      kong.VersionFlag
	Config       string `help:"Progress store path. Files ending in .db, .sqlite or .sqlite3 use SQLite, anything else is a JSON document." type:"path" default:"${config_path}"`
	Debug        bool   `help:"Enable debug logging to stderr." default:"${debug}"`
	UnlockPolicy string `help:"How days unlock." enum:"date-gated,all-unlocked" default:"${unlock_policy}"`
	Timezone     string `help:"IANA timezone used to decide the current day." default:"${timezone}"`

	Onboard    system.OnboardCmd  `cmd:"" help:"Set up names and relationship."`
	Tui        system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Status     days.StatusCmd     `cmd:"" help:"Show progress for the week."`
	Days       days.DaysCmd       `cmd:"" help:"List the days of the week."`
	Day        days.DayCmd        `cmd:"" help:"Show one day."`
	Credit     days.CreditCmd     `cmd:"" help:"Complete a day and raise the love meter."`
	Mood       days.MoodCmd       `cmd:"" help:"Set the current mood."`
	ResetMeter days.ResetMeterCmd `cmd:"" name:"reset-meter" help:"Reset the love meter to zero."`
	Memory     struct {
		Set   days.MemorySetCmd   `cmd:"" help:"Save a memory for a day."`
		Clear days.MemoryClearCmd `cmd:"" help:"Remove a day's memory."`
	} `cmd:"" help:"Manage day memories."`
	Photo struct {
		Set    days.PhotoSetCmd    `cmd:"" help:"Attach a photo to a day."`
		Remove days.PhotoRemoveCmd `cmd:"" help:"Remove a day's photo."`
	} `cmd:"" help:"Manage day photos."`
	Teddy   companion.TeddyCmd  `cmd:"" help:"Care for the Teddy Day companion."`
	Promise promises.PromiseCmd `cmd:"" help:"Manage the Promise Day vault."`
	Music   music.MusicCmd      `cmd:"" help:"Control the soundtrack."`
	Backup  struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage progress backups."`
	Doctor    system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	DebugInfo system.DebugCmd  `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
}

// skipsLoad reports whether the command inspects the stored document itself
func skipsLoad(command string) bool {
	return strings.HasPrefix(command, "doctor") || strings.HasPrefix(command, "backup")
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		apperrors.Fatal(err)
	}

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Valentine week companion: unlock a day at a time and fill the love meter"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":       constants.Version,
			"config_path":   cfg.Path,
			"debug":         fmt.Sprintf("%t", cfg.Debug),
			"unlock_policy": cfg.UnlockPolicy,
			"timezone":      cfg.Timezone,
		},
	)

	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(CLI.Config)}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	}

	provider := storage.New(CLI.Config)
	if err := provider.Init(); err != nil {
		apperrors.Fatal(fmt.Errorf("failed to open %s store: %w", provider.Kind(), err))
	}
	defer provider.Close()

	loc, err := utils.LoadLocation(CLI.Timezone)
	if err != nil {
		apperrors.Fatal(fmt.Errorf("invalid timezone %q: %w", CLI.Timezone, err))
	}
	now := func() time.Time { return time.Now().In(loc) }

	store := progress.NewStore(provider, progress.WithClock(now), progress.WithLocation(loc))
	if !skipsLoad(ctx.Command()) {
		if err := store.Load(); err != nil {
			fmt.Fprintln(os.Stderr, apperrors.FormatWarning(err))
		}
	}

	// The window is resolved once per run; a session that crosses midnight
	// keeps the day set it started with.
	window := calendar.New(constants.UnlockPolicy(CLI.UnlockPolicy)).Resolve(now())
	logger.Debug("Resolved unlock window", "current", window.CurrentDay, "unlocked", window.UnlockedDay, "policy", window.Policy)

	appCtx := cli.NewContext(store, provider, window, now)
	if err := ctx.Run(appCtx); err != nil {
		provider.Close()
		apperrors.Fatal(err)
	}
}
