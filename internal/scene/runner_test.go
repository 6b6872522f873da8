package scene

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/starfall/internal/audio"
	"github.com/vovakirdan/starfall/internal/config"
	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/physics"
	"github.com/vovakirdan/starfall/internal/registry"
)

// boxScene is a minimal scene: a square player above a floor with one
// collectible to its right.
type boxScene struct {
	initErr  error
	noPlayer bool
	ticks    int

	coins *physics.Group
}

func (s *boxScene) ID() string    { return "box" }
func (s *boxScene) Title() string { return "Box" }

func (s *boxScene) OnInit(ctx *Context) (Setup, error) {
	if s.initErr != nil {
		return Setup{}, s.initErr
	}
	return Setup{World: config.WorldConfig{Width: 100, Height: 100, Gravity: 100, Background: 0x112233}, Reward: 5}, nil
}

func (s *boxScene) OnLoadAssets(ctx *Context) (Assets, error) {
	if _, err := ctx.Builder.GroundStrip("floor", 100, 10, core.ColorGreen); err != nil {
		return Assets{}, err
	}
	if _, err := ctx.Builder.GroundStrip("box", 10, 10, core.ColorWhite); err != nil {
		return Assets{}, err
	}
	loop := config.CueConfig{Wave: "sine", Notes: []float64{440}, NoteMS: 50, Volume: 0.5}
	return Assets{
		Cues: map[string]config.CueConfig{"loop": loop, "broken": {Wave: "sine"}},
		Audio: audio.ControllerConfig{
			Mode: audio.TogglePause,
			Cues: audio.Cues{Ambient: "loop"},
		},
	}, nil
}

func (s *boxScene) OnStart(ctx *Context) error {
	floor := ctx.World.NewStaticGroup("floor")
	if _, err := ctx.Builder.Ground(floor, "floor", 50, 95, 100, 10); err != nil {
		return err
	}
	s.coins = ctx.World.NewGroup("coins")
	if _, err := ctx.Spawner.Row(s.coins, RowSpec{Kind: KindCollectible, Count: 1, StartX: 80, Y: 50, Texture: "box"}); err != nil {
		return err
	}
	s.coins.Members()[0].AllowGravity = false
	if s.noPlayer {
		return nil
	}
	p, err := ctx.Spawner.Player(ctx.World.NewGroup("player"), PlayerSpec{X: 50, Y: 50, Texture: "box"})
	if err != nil {
		return err
	}
	ctx.Player = p
	ctx.Control = DirectControl{Speed: 60, FallSpeed: 60, JumpVelocity: -100}
	ctx.Resolver.Collide(floor, p.Body)
	ctx.Resolver.Overlap(p.Body, s.coins)
	ctx.Resolver.On(KindPlayer, KindCollectible, func(_, coin *Entity) {
		coin.Deactivate()
		ctx.Session.Collect()
	})
	return nil
}

func (s *boxScene) OnTick(ctx *Context, in core.InputFrame) {
	s.ticks++
	ctx.Move(in)
}

func newBoxRunner(t *testing.T, s *boxScene) (*Runner, *audio.SilentBackend, *[]error) {
	t.Helper()
	backend := audio.NewSilentBackend()
	var reported []error
	r := NewRunner(s, registry.Options{
		Audio: func() audio.Backend {
			return backend
		},
		OnAudioError: func(err error) { reported = append(reported, err) },
	})
	return r, backend, &reported
}

var boxConfig = core.RuntimeConfig{ScreenW: 10, ScreenH: 10, TickRate: 60, Seed: 1}

func TestResetBuildsSession(t *testing.T) {
	r, backend, reported := newBoxRunner(t, &boxScene{})
	if err := r.Reset(boxConfig); err != nil {
		t.Fatalf("Reset() error: %v", err)
	}
	ctx := r.Context()
	if ctx == nil || ctx.Player == nil {
		t.Fatal("no live context after Reset")
	}
	if got := strings.Join(ctx.Textures.Keys(), ","); got != "box,floor" {
		t.Errorf("textures = %s", got)
	}
	if len(*reported) != 1 || !strings.Contains((*reported)[0].Error(), "broken") {
		t.Errorf("reported audio errors = %v, expected the broken cue", *reported)
	}
	if !backend.Locked() {
		t.Error("backend unlocked before any pointer input")
	}
	if r.Background() != core.RGB(0x112233) {
		t.Errorf("Background() = %v", r.Background())
	}
}

func TestResetFailureTearsDown(t *testing.T) {
	boom := errors.New("boom")
	r, backend, _ := newBoxRunner(t, &boxScene{initErr: boom})
	err := r.Reset(boxConfig)
	if !errors.Is(err, boom) {
		t.Fatalf("Reset() error = %v, expected boom", err)
	}
	if !strings.HasPrefix(err.Error(), "scene: box: init:") {
		t.Errorf("error not prefixed: %v", err)
	}
	if r.Context() != nil || !backend.Closed() {
		t.Error("failed Reset left a live session")
	}

	r, _, _ = newBoxRunner(t, &boxScene{noPlayer: true})
	if err := r.Reset(boxConfig); err == nil || !strings.Contains(err.Error(), "no player") {
		t.Errorf("Reset() without player error = %v", err)
	}
}

func TestStepLifecycle(t *testing.T) {
	s := &boxScene{}
	r, _, _ := newBoxRunner(t, s)
	if err := r.Reset(boxConfig); err != nil {
		t.Fatal(err)
	}

	r.Step(core.FrameOf(core.ActionPointer))
	r.Step(core.FrameOf(core.ActionPointer))
	if s.ticks != 2 || r.Snapshot().ClickTime != 2 {
		t.Errorf("ticks=%d clicks=%d", s.ticks, r.Snapshot().ClickTime)
	}

	r.Context().Session.End()
	res := r.Step(core.FrameOf(core.ActionPointer))
	if s.ticks != 2 {
		t.Error("OnTick ran after the session ended")
	}
	if !res.State.GameOver || r.Snapshot().ClickTime != 3 {
		t.Errorf("after end: state=%+v clicks=%d", res.State, r.Snapshot().ClickTime)
	}
}

func TestOverlapReactionScores(t *testing.T) {
	r, _, _ := newBoxRunner(t, &boxScene{})
	if err := r.Reset(boxConfig); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 60 && r.State().Score == 0; i++ {
		r.Step(core.FrameOf(core.ActionRight))
	}
	snap := r.Snapshot()
	if snap.Score != 5 || snap.ActiveCollectibles != 0 {
		t.Errorf("after reaching the coin: %s", snap)
	}
	if r.Context().Player.Anim.Current() != AnimRight {
		t.Errorf("animation = %q", r.Context().Player.Anim.Current())
	}
}

func TestDestroyIsIdempotent(t *testing.T) {
	r, backend, _ := newBoxRunner(t, &boxScene{})
	if err := r.Reset(boxConfig); err != nil {
		t.Fatal(err)
	}
	r.Destroy()
	r.Destroy()
	if r.Context() != nil || !backend.Closed() {
		t.Error("Destroy left a live session")
	}
	if res := r.Step(core.FrameOf(core.ActionPointer)); res.State != (core.GameState{}) {
		t.Errorf("Step after Destroy = %+v", res)
	}
	if snap := r.Snapshot(); snap.Scene != "box" || snap.Tick != 0 {
		t.Errorf("Snapshot after Destroy = %+v", snap)
	}
}

func TestRenderScalesWorld(t *testing.T) {
	r, _, _ := newBoxRunner(t, &boxScene{})
	if err := r.Reset(boxConfig); err != nil {
		t.Fatal(err)
	}
	dst := core.NewScreen(10, 10)
	r.Render(dst)

	for x := 0; x < 10; x++ {
		if c := dst.GetCell(x, 9); c.Rune != GlyphPlatform || c.Color != core.ColorGreen {
			t.Fatalf("floor cell %d = %+v", x, c)
		}
	}
	for _, xy := range [][2]int{{4, 4}, {5, 4}, {4, 5}, {5, 5}} {
		if c := dst.GetCell(xy[0], xy[1]); c.Rune != '■' || c.Color != core.ColorWhite {
			t.Errorf("player cell %v = %+v", xy, c)
		}
	}
	if c := dst.GetCell(8, 5); c.Rune != GlyphCollectible {
		t.Errorf("coin cell = %+v", c)
	}
	if c := dst.GetCell(0, 0); c.Rune != ' ' {
		t.Errorf("empty cell = %+v", c)
	}
}

func TestDrawMessage(t *testing.T) {
	dst := core.NewScreen(20, 7)
	DrawMessage(dst, "GAME OVER", "score:10")
	if got := strings.TrimSpace(dst.Row(2)); !strings.Contains(got, "GAME OVER") {
		t.Errorf("title row = %q", got)
	}
	if got := dst.Row(4); !strings.Contains(got, "score:10") {
		t.Errorf("subtitle row = %q", got)
	}
}
