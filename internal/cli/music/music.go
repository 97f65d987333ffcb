package music

import (
	"github.com/julianstephens/heartline/internal/cli"
	"github.com/julianstephens/heartline/internal/models"
	"github.com/julianstephens/heartline/internal/utils"
)

type MusicCmd struct {
	Show   MusicShowCmd   `cmd:"" default:"1" help:"Show what is playing."`
	Upload MusicUploadCmd `cmd:"" help:"Use an audio file as your track."`
	Link   MusicLinkCmd   `cmd:"" help:"Use a streaming link as your track."`
	Clear  MusicClearCmd  `cmd:"" help:"Return to the built-in playlist."`
	Next   MusicNextCmd   `cmd:"" help:"Skip to the next playlist track."`
	Prev   MusicPrevCmd   `cmd:"" help:"Go back to the previous playlist track."`
}

func printCurrent(ctx *cli.Context) {
	rec := ctx.Store.Record()
	track := models.CurrentTrack(rec)
	ctx.Printf("🎵 %s\n", track.Name)
	if !rec.HasAudioOverride() {
		ctx.Printf("   %s (%d/%d)\n", track.URL, rec.CurrentTrackIndex+1, len(models.DefaultTracks))
	} else if rec.ExternalAudioLink != "" {
		ctx.Printf("   %s\n", rec.ExternalAudioLink)
	}
}

type MusicShowCmd struct{}

func (cmd *MusicShowCmd) Run(ctx *cli.Context) error {
	printCurrent(ctx)
	return nil
}

type MusicUploadCmd struct {
	File string `arg:"" type:"existingfile" help:"Audio file to embed."`
}

func (cmd *MusicUploadCmd) Run(ctx *cli.Context) error {
	payload, err := utils.EncodeDataURL(cmd.File, "audio")
	if err != nil {
		return err
	}
	if err := ctx.Check(ctx.Store.SetCustomAudio(payload)); err != nil {
		return err
	}
	printCurrent(ctx)
	return nil
}

type MusicLinkCmd struct {
	URL string `arg:"" help:"http(s) link to a song."`
}

func (cmd *MusicLinkCmd) Run(ctx *cli.Context) error {
	if err := ctx.Check(ctx.Store.SetExternalAudioLink(cmd.URL)); err != nil {
		return err
	}
	printCurrent(ctx)
	return nil
}

type MusicClearCmd struct{}

func (cmd *MusicClearCmd) Run(ctx *cli.Context) error {
	if err := ctx.Check(ctx.Store.ClearAudio()); err != nil {
		return err
	}
	printCurrent(ctx)
	return nil
}

type MusicNextCmd struct{}

func (cmd *MusicNextCmd) Run(ctx *cli.Context) error {
	return step(ctx, ctx.Store.NextTrack)
}

type MusicPrevCmd struct{}

func (cmd *MusicPrevCmd) Run(ctx *cli.Context) error {
	return step(ctx, ctx.Store.PrevTrack)
}

func step(ctx *cli.Context, move func() (bool, error)) error {
	moved, err := move()
	if err := ctx.Check(err); err != nil {
		return err
	}
	if !moved {
		ctx.Println("Your own track is playing. Run 'heartline music clear' to use the playlist.")
		return nil
	}
	printCurrent(ctx)
	return nil
}
