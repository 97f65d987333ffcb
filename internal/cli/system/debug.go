package system

import (
	"encoding/json"
	"fmt"

	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/progress"
)

type DebugCmd struct {
	Path   DebugPathCmd   `cmd:"" help:"Show storage path."`
	Dump   DebugDumpCmd   `cmd:"" help:"Dump the progress record as JSON."`
	Window DebugWindowCmd `cmd:"" help:"Show the resolved unlock window."`
}

type DebugPathCmd struct{}

func (cmd *DebugPathCmd) Run(ctx *cli.Context) error {
	// Output in machine-readable format
	output := map[string]string{
		"path": ctx.Provider.GetConfigPath(),
		"kind": ctx.Provider.Kind(),
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	ctx.Println(string(jsonBytes))
	return nil
}

type DebugDumpCmd struct {
	Redact bool `help:"Replace photo and audio payloads with their size." default:"true" negatable:""`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	rec := ctx.Store.Record()
	if cmd.Redact {
		for day, photo := range rec.Photos {
			rec.Photos[day] = fmt.Sprintf("<%d bytes>", len(photo))
		}
		if rec.CustomAudioPayload != "" {
			rec.CustomAudioPayload = fmt.Sprintf("<%d bytes>", len(rec.CustomAudioPayload))
		}
	}

	jsonBytes, err := progress.Encode(rec)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	ctx.Println(string(jsonBytes))
	return nil
}

type DebugWindowCmd struct{}

func (cmd *DebugWindowCmd) Run(ctx *cli.Context) error {
	output := map[string]any{
		"now":         ctx.Now().Format("2006-01-02T15:04:05Z07:00"),
		"currentDay":  ctx.Window.CurrentDay,
		"unlockedDay": ctx.Window.UnlockedDay,
		"policy":      ctx.Window.Policy,
	}

	jsonBytes, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}

	ctx.Println(string(jsonBytes))
	return nil
}
