package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/starfall/internal/platform/tui"
	"github.com/vovakirdan/starfall/internal/registry"
	"github.com/vovakirdan/starfall/internal/storage"
)

var (
	flagRecord bool
	flagHold   time.Duration
)

var playCmd = &cobra.Command{
	Use:   "play <scene>",
	Short: "Play a scene",
	Long: `Start playing the specified scene.

Controls:
  Left/Right, A/D  - Move
  Up/W/Space       - Jump
  Down/S           - Fast fall (platformer)
  Click/Enter      - Start music, then toggle it
  Tab              - Switch scene
  R                - Restart
  Q/Ctrl+C         - Quit

Terminals only report key presses, so a direction stays held for --hold
after its last press or auto-repeat.

Examples:
  starfall play platformer
  starfall play demo --mute
  starfall play platformer --record --seed 42
  starfall play platformer --config ./my-platformer.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd} {
		c.Flags().BoolVar(&flagRecord, "record", false, "Record inputs as a replay")
		c.Flags().DurationVar(&flagHold, "hold", tui.DefaultHold, "How long a key press counts as held")
	}
}

func runPlay(cmd *cobra.Command, args []string) {
	sceneID := args[0]

	if !registry.Exists(sceneID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scene %q\n", sceneID)
		fmt.Fprintln(os.Stderr, "Run 'starfall list' to see available scenes.")
		os.Exit(1)
	}

	logger, closeLog, err := openLogger(true)
	if err != nil {
		fail(nil, "%v", err)
	}

	var audioErrs audioErrors
	res, runErr := tui.Run(sceneID, tui.Config{
		Runtime: runtimeConfig(),
		Hold:    flagHold,
		Record:  flagRecord,
		Game:    gameOptions(logger, &audioErrs),
	})

	saveJournals(res.Journals, logger)
	reportAudio(&audioErrs)
	if runErr != nil {
		fail(closeLog, "%v", runErr)
	}
	closeLog()
}

// saveJournals stores recorded sessions. Failures are reported but never
// fatal: the session already happened.
func saveJournals(journals []storage.Replay, logger *log.Logger) {
	if len(journals) == 0 {
		return
	}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open replay database: %v\n", err)
		return
	}
	defer store.Close()

	for _, j := range journals {
		id, err := store.SaveReplay(j)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			continue
		}
		logger.Info("replay saved", "id", id, "scene", j.SceneID, "ticks", len(j.Inputs))
		fmt.Printf("Saved replay #%d (%s, %d ticks). Run 'starfall replay %d' to re-simulate it.\n", id, j.SceneID, len(j.Inputs), id)
	}
}

func reportAudio(errs *audioErrors) {
	if errs.n == 0 {
		return
	}
	fmt.Fprintf(os.Stderr, "Warning: audio reported %d error(s), last: %v\n", errs.n, errs.last)
	fmt.Fprintf(os.Stderr, "See %s for details, or run with --mute.\n", flagLogFile)
}
