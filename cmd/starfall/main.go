// starfall plays small arcade physics scenes in the terminal.
//
// Usage:
//
//	starfall list               - List available scenes
//	starfall play <scene>       - Play a scene
//	starfall menu               - Pick scenes interactively
//	starfall replays [scene]    - Browse recorded replays
//	starfall replay <id>        - Re-simulate a replay headless
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible sessions
//	--config <path> - Custom scene config YAML
//	--db <path>     - Set database path (default: ~/.starfall/replays.db)
//	--mute          - Run without audio output
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/starfall/internal/audio"
	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/registry"

	// Import scenes to register them
	_ "github.com/vovakirdan/starfall/internal/games/demo"
	_ "github.com/vovakirdan/starfall/internal/games/platformer"
)

var (
	flagFPS      int
	flagSeed     int64
	flagConfig   string
	flagDBPath   string
	flagLogFile  string
	flagLogLevel string
	flagMute     bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "starfall",
	Short: "Starfall - arcade physics scenes in your terminal",
	Long: `Starfall runs small arcade physics scenes in the terminal: a platformer
where you collect falling stars while dodging bombs, and a physics demo with
a rolling ball among bouncing rectangles.

Available commands:
  list     - Show all available scenes
  play     - Play a specific scene directly
  menu     - Interactive scene picker
  replays  - Browse recorded replays
  replay   - Re-simulate a replay and print the outcome

Examples:
  starfall list
  starfall play platformer
  starfall play demo --mute
  starfall play platformer --record --seed 42
  starfall replay 3`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom scene config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.starfall/replays.db", "Path to replay database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "~/.starfall/starfall.log", "Log file used while the terminal UI runs")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable audio output")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(replaysCmd)
	rootCmd.AddCommand(replayCmd)
}

// expandHome expands a leading ~ to the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// openLogger builds the process logger. The terminal UI owns the screen, so
// interactive commands log to --log-file; headless ones log to stderr.
func openLogger(interactive bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("--log-level: %w", err)
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	if interactive {
		path, err := expandHome(flagLogFile)
		if err != nil {
			return nil, nil, err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "starfall",
		Level:           level,
	})
	return logger, closeFn, nil
}

// audioErrors counts failures the audio controller reported during a run.
type audioErrors struct {
	n    int
	last error
}

func (a *audioErrors) record(err error) {
	a.n++
	a.last = err
}

// gameOptions builds the scene options shared by every command.
func gameOptions(logger *log.Logger, errs *audioErrors) registry.Options {
	opts := registry.Options{
		ConfigPath: flagConfig,
		Audio:      audio.NewSpeakerBackend,
		Logger:     logger,
	}
	if flagMute {
		opts.Audio = audio.NewSilent
	}
	if errs != nil {
		opts.OnAudioError = errs.record
	}
	return opts
}

// runtimeConfig sizes the session to the terminal.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg
}

// fail prints an error and exits. cleanup runs first since os.Exit skips
// deferred calls.
func fail(cleanup func(), format string, args ...any) {
	if cleanup != nil {
		cleanup()
	}
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
