package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/julianstephens/heartline/internal/backup"
	"github.com/julianstephens/heartline/internal/calendar"
	apperrors "github.com/julianstephens/heartline/internal/errors"
	"github.com/julianstephens/heartline/internal/logger"
	"github.com/julianstephens/heartline/internal/models"
	"github.com/julianstephens/heartline/internal/progress"
	"github.com/julianstephens/heartline/internal/storage"
)

type Context struct {
	Store    *progress.Store
	Provider storage.Provider
	Window   calendar.Window
	Now      func() time.Time

	Out io.Writer
	Err io.Writer
	In  io.Reader
}

// NewContext wires a command context writing to the process streams
func NewContext(store *progress.Store, provider storage.Provider, window calendar.Window, now func() time.Time) *Context {
	return &Context{
		Store:    store,
		Provider: provider,
		Window:   window,
		Now:      now,
		Out:      os.Stdout,
		Err:      os.Stderr,
		In:       os.Stdin,
	}
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Out, format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Out, args...)
}

// Check turns a persistence warning into a stderr notice so the command can
// finish normally. Any other error is returned unchanged.
func (c *Context) Check(err error) error {
	if err == nil {
		return nil
	}
	if apperrors.IsWarning(err) {
		fmt.Fprintln(c.Err, apperrors.FormatWarning(err))
		return nil
	}
	return err
}

// RequireUnlocked fails with ErrDayLocked when day is beyond the window
func (c *Context) RequireUnlocked(day int) (models.Day, error) {
	d, ok := models.DayByID(day)
	if !ok {
		return models.Day{}, apperrors.NewValidationError("day", fmt.Sprintf("%d is not a day of the week (7-14)", day))
	}
	if !c.Window.IsUnlocked(day) {
		return d, fmt.Errorf("%s opens on February %d: %w", d.Name, day, apperrors.ErrDayLocked)
	}
	return d, nil
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if c.Provider == nil {
		return
	}
	if _, err := os.Stat(c.Provider.GetConfigPath()); err != nil {
		return
	}
	mgr := backup.NewManager(c.Provider.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ParseAttempt splits an "id=passphrase" pair
func ParseAttempt(s string) (string, string, error) {
	id, pass, ok := strings.Cut(s, "=")
	id = strings.TrimSpace(id)
	if !ok || id == "" {
		return "", "", fmt.Errorf("invalid attempt %q (expected id=passphrase)", s)
	}
	return id, pass, nil
}

// ParseDayID accepts a day number (7-14) or a theme name such as "rose"
func ParseDayID(s string) (int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if n, err := strconv.Atoi(s); err == nil {
		return n, nil
	}
	for _, d := range models.Days {
		if s == d.Theme || s == strings.ToLower(d.Name) {
			return d.ID, nil
		}
	}
	return 0, fmt.Errorf("unknown day %q", s)
}

// FormatMeter renders the love meter as an ASCII bar
func FormatMeter(value float64, width int) string {
	filled := int(value / 100 * float64(width))
	filled = max(0, min(filled, width))
	return fmt.Sprintf("[%s%s] %.1f%%", strings.Repeat("♥", filled), strings.Repeat("·", width-filled), value)
}

// Confirm asks a yes/no question on the context's streams. Anything but
// y/yes is a no.
func Confirm(ctx *Context, prompt string) bool {
	fmt.Fprintf(ctx.Out, "%s [y/N]: ", prompt)
	response, err := bufio.NewReader(ctx.In).ReadString('\n')
	if err != nil && response == "" {
		fmt.Fprintln(ctx.Out)
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
