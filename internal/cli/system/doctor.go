package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/heartline/internal/backup"
	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/constants"
	apperrors "github.com/julianstephens/heartline/internal/errors"
	"github.com/julianstephens/heartline/internal/models"
	"github.com/julianstephens/heartline/internal/progress"
	"github.com/julianstephens/heartline/internal/utils"
	"github.com/julianstephens/heartline/internal/validation"
)

type DoctorCmd struct{}

// schemaReporter is implemented by providers that manage a schema
type schemaReporter interface {
	SchemaStatus() (current, latest int, err error)
}

type checkResult int

const (
	checkOK checkResult = iota
	checkWarn
	checkFail
	checkSkip
)

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	report := func(name string, result checkResult, detail string) {
		switch result {
		case checkOK:
			ctx.Printf("✓ %s: OK\n", name)
		case checkWarn:
			ctx.Printf("⚠ %s: WARNING\n", name)
		case checkFail:
			ctx.Printf("❌ %s: FAIL\n", name)
			hasError = true
		case checkSkip:
			ctx.Printf("⊘ %s: SKIPPED\n", name)
		}
		if detail != "" {
			ctx.Printf("   %s\n", detail)
		}
	}

	// Check 1: Storage reachable
	data, err := ctx.Provider.ReadDocument()
	stored := true
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		stored = false
		report("Storage reachable", checkOK, "no progress saved yet")
	case err != nil:
		report("Storage reachable", checkFail, err.Error())
		stored = false
		data = nil
	default:
		report("Storage reachable", checkOK, "")
	}

	// Check 2: Schema version
	if sr, ok := ctx.Provider.(schemaReporter); ok {
		current, latest, err := sr.SchemaStatus()
		switch {
		case err != nil:
			report("Schema version", checkFail, err.Error())
		case current != latest:
			report("Schema version", checkFail, fmt.Sprintf("schema at version %d, expected %d", current, latest))
		default:
			report("Schema version", checkOK, fmt.Sprintf("version %d", current))
		}
	} else {
		report("Schema version", checkSkip, fmt.Sprintf("%s storage has no schema", ctx.Provider.Kind()))
	}

	// Check 3: Record readable
	if stored {
		if _, err := progress.Decode(data); err != nil {
			report("Progress record", checkFail, err.Error())
			stored = false
		} else {
			report("Progress record", checkOK, "")
		}
	} else {
		report("Progress record", checkSkip, "")
	}

	// Check 4: Record consistency (warning only, load repairs these)
	if stored {
		result, detail := checkConsistency(data, utils.FormatDate(ctx.Now()))
		report("Record consistency", result, detail)
	} else {
		report("Record consistency", checkSkip, "")
	}

	// Check 5: Backups present (warning only)
	mgr := backup.NewManager(ctx.Provider.GetConfigPath())
	backups, err := mgr.ListBackups()
	switch {
	case err != nil:
		report("Backups present", checkWarn, err.Error())
	case len(backups) == 0:
		report("Backups present", checkWarn, "no backups found in "+mgr.GetBackupDir())
	default:
		report("Backups present", checkOK, fmt.Sprintf("%d backup(s), latest %s", len(backups), backups[0].Timestamp.Format("2006-01-02 15:04")))
	}

	// Check 6: Quarantined records
	corrupt := ctx.Provider.GetConfigPath() + constants.CorruptFileSuffix
	if _, err := os.Stat(corrupt); err == nil {
		report("Malformed records", checkWarn, "an unreadable record was kept at "+corrupt)
	} else {
		report("Malformed records", checkOK, "")
	}

	// Check 7: Clock and window
	now := ctx.Now()
	current, _ := models.DayByID(ctx.Window.CurrentDay)
	report("Clock/timezone", checkOK, fmt.Sprintf("%s (%s), today is %s, unlocked through day %d (%s)",
		now.Format("2006-01-02 15:04"), now.Location(), current.Name, ctx.Window.UnlockedDay, ctx.Window.Policy))

	ctx.Println()
	if hasError {
		return fmt.Errorf("diagnostics failed")
	}
	ctx.Println("All checks passed.")
	return nil
}

// checkConsistency decodes the record strictly, without the load-time
// repairs, and validates it
func checkConsistency(data []byte, today string) (checkResult, string) {
	var rec models.ProgressRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return checkWarn, "record uses a legacy or loose layout; it is rewritten on the next save"
	}

	result := validation.New().ValidateRecord(rec, today)
	if !result.HasConflicts() {
		return checkOK, ""
	}
	return checkWarn, strings.TrimSpace(strings.ReplaceAll(result.FormatReport(), "\n", "\n   ")) + "\n   these are repaired when progress is loaded"
}
