// Command spcplay is the reference CLI player spec.md §6 describes: it
// plays one or more snapshot files to the default audio device, honoring
// -r (shuffle) and -s SECS (per-track time limit), and advances to the
// next track on a keypress. Not part of the spc700 library's public API
// (spec §1 scopes the surrounding player out as an "external
// collaborator") — included here as a grounded, working example consumer,
// the same relationship the teacher's main.go has to its own core
// emulation packages.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli"
	"golang.org/x/sync/errgroup"

	"github.com/retrocore/spc700/spc700"
)

func main() {
	app := cli.NewApp()
	app.Name = "spcplay"
	app.Usage = "spcplay [options] <snapshot file> [snapshot file...]"
	app.Description = "Plays SPC/ZST/S9X snapshots to the default audio device."
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "r",
			Usage: "shuffle the given files before playing",
		},
		cli.IntFlag{
			Name:  "s",
			Usage: "advance to the next track after SECS seconds",
			Value: 0,
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "spcplay:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	files := []string(c.Args())
	if len(files) == 0 {
		cli.ShowAppHelp(c)
		return fmt.Errorf("no snapshot files given")
	}
	files = shuffle(files, c.Bool("r"))

	limit := time.Duration(c.Int("s")) * time.Second

	// The skip watcher runs once for the whole session rather than being
	// restarted per track: a blocking stdin read (the non-unix fallback)
	// has no reliable way to be interrupted mid-read, so restarting it
	// per track could leave a goroutine wedged on a read that will never
	// return. One long-lived watcher, fed into a one-slot skip channel
	// each track drains independently, sidesteps that entirely.
	skip := make(chan struct{}, 1)
	var g errgroup.Group
	g.Go(func() error {
		newSkipWatcher().watch(skip, nil)
		return nil
	})

	for _, path := range files {
		if err := playTrack(path, limit, skip); err != nil {
			fmt.Fprintf(os.Stderr, "spcplay: %s: %v\n", path, err)
		}
	}
	return nil
}

// playTrack plays one snapshot until the -s time limit elapses or a skip
// arrives on skip, coordinating the audio device the way the teacher's
// audio_chip.go coordinates its own producer/consumer goroutines.
func playTrack(path string, limit time.Duration, skip <-chan struct{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	player := spc700.New()
	if err := player.Init(data); err != nil {
		return err
	}

	src := &trackSource{player: player}
	_, otoPlayer, err := openAudioDevice(src)
	if err != nil {
		return err
	}

	otoPlayer.Play()
	defer otoPlayer.Close()

	fmt.Fprintf(os.Stderr, "now playing: %s\n", path)

	deadline := context.Background()
	var cancel context.CancelFunc = func() {}
	if limit > 0 {
		deadline, cancel = context.WithTimeout(deadline, limit)
	}
	defer cancel()

	select {
	case <-deadline.Done():
	case <-skip:
	}
	return nil
}
