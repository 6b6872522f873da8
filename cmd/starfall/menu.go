package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/starfall/internal/platform/tui"
	"github.com/vovakirdan/starfall/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Open interactive scene picker",
	Long: `Opens a scene picker.

Navigation:
  Up/Down, K/J     - Select scene
  Enter/Space      - Start selected scene
  Tab              - Browse replays
  Q/Esc            - Quit

Quitting a scene returns to the picker.`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, args []string) {
	logger, closeLog, err := openLogger(true)
	if err != nil {
		fail(nil, "%v", err)
	}

	var (
		audioErrs audioErrors
		picked    int64
		current   string
	)
	cfg := runtimeConfig()

loop:
	for {
		res, err := tui.RunMenu(cfg, current)
		if err != nil {
			fail(closeLog, "menu failed: %v", err)
		}
		cfg = res.Config

		switch {
		case res.Quit:
			break loop

		case res.WantsReplays:
			id, goBack, err := browseReplays(cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				fail(closeLog, "%v", err)
			}
			if goBack {
				continue
			}
			picked = id
			break loop

		default:
			current = res.SceneID
			played, err := tui.Run(res.SceneID, tui.Config{
				Runtime: cfg,
				Hold:    flagHold,
				Record:  flagRecord,
				Game:    gameOptions(logger, &audioErrs),
			})
			saveJournals(played.Journals, logger)
			if err != nil {
				fail(closeLog, "%v", err)
			}
		}
	}

	reportAudio(&audioErrs)
	if picked != 0 {
		if err := replayByID(picked, logger); err != nil {
			fail(closeLog, "%v", err)
		}
	}
	closeLog()
}

// browseReplays opens the replay browser over the configured database.
func browseReplays(w, h int) (int64, bool, error) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return 0, false, err
	}
	defer store.Close()
	return tui.RunReplays(store, w, h)
}
