package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/starfall/internal/replay"
	"github.com/vovakirdan/starfall/internal/storage"
)

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Re-simulate a recorded replay",
	Long: `Runs a recorded session again without a terminal UI, using the recorded
seed, tick rate and inputs, and prints where it ended up.

Audio is always silent while re-simulating.

Examples:
  starfall replay 3
  starfall replay 3 --config ./my-platformer.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runReplay,
}

func runReplay(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		fail(nil, "invalid replay id %q", args[0])
	}

	logger, _, err := openLogger(false)
	if err != nil {
		fail(nil, "%v", err)
	}
	if err := replayByID(id, logger); err != nil {
		fail(nil, "%v", err)
	}
}

// replayByID loads a replay and prints the outcome of re-simulating it.
func replayByID(id int64, logger *log.Logger) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	r, err := store.Replay(id)
	if err != nil {
		return err
	}

	opts := gameOptions(logger, nil)
	res, err := replay.Run(*r, opts)
	if err != nil {
		return err
	}
	s := res.Snapshot
	logger.Debug("replay finished", "id", id, "snapshot", s.String())

	fmt.Printf("Replay #%d: %s, seed %d, %d ticks at %d fps\n", id, r.SceneID, r.Seed, len(r.Inputs), r.TickRate)
	fmt.Println()
	fmt.Printf("  Score:        %d\n", res.State.Score)
	fmt.Printf("  State:        %s\n", s.Lifecycle)
	fmt.Printf("  Paused:       %t\n", s.Paused)
	fmt.Printf("  Player:       (%.1f, %.1f)\n", s.Player.X, s.Player.Y)
	fmt.Printf("  Collectibles: %d/%d active\n", s.ActiveCollectibles, s.Collectibles)
	fmt.Printf("  Hazards:      %d\n", s.Hazards)
	fmt.Printf("  Obstacles:    %d\n", s.Obstacles)
	fmt.Printf("  Clicks:       %d\n", s.ClickTime)
	fmt.Printf("  Jumps:        %d\n", s.JumpTime)
	return nil
}
