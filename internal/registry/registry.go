// Package registry provides a global registry for scene factories.
// Scenes register themselves in init() functions, allowing the platform
// to discover and instantiate scenes without hardcoded dependencies.
package registry

import (
	"fmt"
	"io"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/starfall/internal/audio"
	"github.com/vovakirdan/starfall/internal/core"
)

// Game is the interface every scene exposes to the platform.
// Scenes contain pure simulation logic with no terminal dependencies.
// The platform handles input mapping, timing, and rendering.
type Game interface {
	// ID returns a unique identifier for this scene (e.g., "platformer").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset tears down any running session and builds a fresh one.
	// A returned error means the scene could not be constructed and is fatal.
	Reset(cfg core.RuntimeConfig) error

	// Step advances the simulation by one fixed tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into the provided screen buffer.
	Render(dst *core.Screen)

	// State returns the current session state.
	State() core.GameState

	// Blur and Focus tell the scene the host lost or regained focus.
	Blur()
	Focus()

	// Destroy releases every entity, listener and audio handle.
	// No callback fires after it returns.
	Destroy()
}

// Options are passed to every factory.
type Options struct {
	// ConfigPath overrides the scene config search path.
	ConfigPath string
	// ConfigData, if set, is decoded instead of searching for a config
	// file. Replays carry the config their session ran with.
	ConfigData []byte
	// Audio creates the scene's audio backend. Nil means silent.
	Audio audio.Factory
	// Logger receives scene logs. Nil discards them.
	Logger *log.Logger
	// OnAudioError, if set, is called for every audio failure.
	OnAudioError func(error)
}

// WithDefaults fills unset options.
func (o Options) WithDefaults() Options {
	if o.Audio == nil {
		o.Audio = audio.NewSilent
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}

// GameInfo contains metadata about a registered scene.
type GameInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a new, not yet Reset, scene instance.
type Factory func(opts Options) Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a scene factory to the registry.
// Typically called from a scene's init() function.
// Panics if a scene with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: scene %q already registered", id))
	}

	factories[id] = f

	// Get title by creating a temporary instance; factories do no work before Reset
	g := f(Options{}.WithDefaults())
	titles[id] = g.Title()
}

// List returns information about all registered scenes, sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a new scene by its ID.
// Returns an error if the scene ID is not registered.
func Create(id string, opts Options) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown scene %q", id)
	}

	return f(opts.WithDefaults()), nil
}

// Exists checks if a scene with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// IDs returns every registered scene ID, sorted.
func IDs() []string {
	infos := List()
	ids := make([]string, len(infos))
	for i, info := range infos {
		ids[i] = info.ID
	}
	return ids
}
