package replay

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/games/platformer"
	"github.com/vovakirdan/starfall/internal/registry"
	"github.com/vovakirdan/starfall/internal/scene"
	"github.com/vovakirdan/starfall/internal/storage"

	_ "github.com/vovakirdan/starfall/internal/games/demo"
)

// script is a short session: click, run right, jump, back left.
func script(tick int) core.InputFrame {
	switch {
	case tick == 0:
		return core.FrameOf(core.ActionPointer)
	case tick < 120:
		return core.FrameOf(core.ActionRight)
	case tick < 130:
		return core.FrameOf(core.ActionRight, core.ActionUp)
	case tick < 300:
		return core.FrameOf(core.ActionLeft)
	default:
		return core.InputFrame{}
	}
}

func live(t *testing.T, sceneID string, seed int64, ticks int) (*Recorder, scene.Snapshot) {
	t.Helper()
	return liveWith(t, sceneID, registry.Options{}, seed, ticks)
}

func liveWith(t *testing.T, sceneID string, opts registry.Options, seed int64, ticks int) (*Recorder, scene.Snapshot) {
	t.Helper()
	game, err := registry.Create(sceneID, opts)
	if err != nil {
		t.Fatal(err)
	}
	defer game.Destroy()

	cfg := core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed}
	if err := game.Reset(cfg); err != nil {
		t.Fatal(err)
	}
	sceneConfig, err := game.(*scene.Runner).ConfigYAML()
	if err != nil {
		t.Fatal(err)
	}
	rec := NewRecorder(sceneID, cfg, sceneConfig)
	for i := 0; i < ticks; i++ {
		in := script(i)
		rec.Record(in)
		game.Step(in)
	}
	return rec, game.(*scene.Runner).Snapshot()
}

func TestRunReproducesSession(t *testing.T) {
	for _, id := range []string{platformer.ID, "demo"} {
		t.Run(id, func(t *testing.T) {
			rec, want := live(t, id, 1234, 400)
			if rec.Len() != 400 {
				t.Fatalf("recorded %d ticks", rec.Len())
			}

			got, err := Run(rec.Replay(), registry.Options{})
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}
			if got.Snapshot != want {
				t.Errorf("replayed %s\nlive     %s", got.Snapshot, want)
			}
			if got.State.Score != want.Score {
				t.Errorf("State.Score = %d, expected %d", got.State.Score, want.Score)
			}
		})
	}
}

func TestRunFromStore(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "replays.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	rec, want := live(t, platformer.ID, 77, 300)
	id, err := store.SaveReplay(rec.Replay())
	if err != nil {
		t.Fatal(err)
	}
	loaded, err := store.Replay(id)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Run(*loaded, registry.Options{})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got.Snapshot != want {
		t.Errorf("stored replay diverged:\n%s\n%s", got.Snapshot, want)
	}
}

func TestRunUsesRecordedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "platformer.yaml")
	if err := os.WriteFile(path, []byte("collectibles:\n  count: 5\n  reward: 25\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	rec, want := liveWith(t, platformer.ID, registry.Options{ConfigPath: path}, 99, 300)
	if want.Collectibles != 5 {
		t.Fatalf("live session has %d collectibles, expected 5", want.Collectibles)
	}

	// The file is gone by replay time; the journal must carry the config.
	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	got, err := Run(rec.Replay(), registry.Options{ConfigPath: path})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if got.Snapshot != want {
		t.Errorf("replayed %s\nlive     %s", got.Snapshot, want)
	}
}

func TestRecorderCopiesInputs(t *testing.T) {
	rec := NewRecorder("demo", core.RuntimeConfig{TickRate: 30, Seed: 5}, nil)
	rec.Record(core.FrameOf(core.ActionLeft))
	r := rec.Replay()
	rec.Record(core.FrameOf(core.ActionRight))

	if len(r.Inputs) != 1 || r.Seed != 5 || r.TickRate != 30 || r.SceneID != "demo" {
		t.Errorf("Replay() = %+v", r)
	}
}

func TestRunUnknownScene(t *testing.T) {
	if _, err := Run(storage.Replay{SceneID: "nope"}, registry.Options{}); err == nil {
		t.Error("Run() with unknown scene returned nil error")
	}
}
