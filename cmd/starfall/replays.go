package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/starfall/internal/platform/tui"
	"github.com/vovakirdan/starfall/internal/registry"
	"github.com/vovakirdan/starfall/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var replaysCmd = &cobra.Command{
	Use:   "replays [scene]",
	Short: "Browse recorded replays",
	Long: `Lists recorded replays, newest first.

On a terminal this opens an interactive browser where Enter re-simulates
the selected replay. Use --plain, or pipe the output, for a text table.

Examples:
  starfall replays
  starfall replays platformer --plain
  starfall replays rm 3`,
	Args: cobra.MaximumNArgs(1),
	Run:  runReplays,
}

var replaysRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a recorded replay",
	Args:  cobra.ExactArgs(1),
	Run:   runReplaysRm,
}

func init() {
	replaysCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a text table instead of the browser")
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of replays to print")
	replaysCmd.AddCommand(replaysRmCmd)
}

func runReplays(cmd *cobra.Command, args []string) {
	var sceneID string
	if len(args) == 1 {
		sceneID = args[0]
		if !registry.Exists(sceneID) {
			fail(nil, "unknown scene %q", sceneID)
		}
	}

	if !flagPlain && sceneID == "" && term.IsTerminal(int(os.Stdout.Fd())) {
		cfg := runtimeConfig()
		id, goBack, err := browseReplays(cfg.ScreenW, cfg.ScreenH)
		if err != nil {
			fail(nil, "%v", err)
		}
		if goBack || id == 0 {
			return
		}
		logger, _, err := openLogger(false)
		if err != nil {
			fail(nil, "%v", err)
		}
		if err := replayByID(id, logger); err != nil {
			fail(nil, "%v", err)
		}
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail(nil, "%v", err)
	}
	defer store.Close()

	infos, err := store.Replays(sceneID, flagLimit)
	if err != nil {
		fail(func() { store.Close() }, "%v", err)
	}
	if len(infos) == 0 {
		fmt.Println("No replays recorded yet. Run 'starfall play <scene> --record' to record one.")
		return
	}

	rows := tui.ReplayRows(infos)
	fmt.Printf("  %-6s  %-12s  %-20s  %-8s  %s\n", "ID", "Scene", "Seed", "Length", "Recorded")
	fmt.Printf("  %-6s  %-12s  %-20s  %-8s  %s\n", "--", "-----", "----", "------", "--------")
	for _, row := range rows {
		fmt.Printf("  %-6s  %-12s  %-20s  %-8s  %s\n", row[0], row[1], row[2], row[3], row[4])
	}
}

func runReplaysRm(cmd *cobra.Command, args []string) {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		fail(nil, "invalid replay id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fail(nil, "%v", err)
	}
	defer store.Close()

	if err := store.DeleteReplay(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			fail(func() { store.Close() }, "replay #%d not found", id)
		}
		fail(func() { store.Close() }, "%v", err)
	}
	fmt.Printf("Deleted replay #%d\n", id)
}
