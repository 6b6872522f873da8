package tui

import (
	"errors"
	"regexp"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/starfall/internal/audio"
	"github.com/vovakirdan/starfall/internal/core"
	"github.com/vovakirdan/starfall/internal/registry"
	"github.com/vovakirdan/starfall/internal/scene"
	"github.com/vovakirdan/starfall/internal/storage"

	_ "github.com/vovakirdan/starfall/internal/games/demo"
	_ "github.com/vovakirdan/starfall/internal/games/platformer"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func plain(s string) string { return ansi.ReplaceAllString(s, "") }

func newTestModel(t *testing.T, sceneID string) (Model, *[]*audio.SilentBackend) {
	t.Helper()
	var backends []*audio.SilentBackend
	m, err := NewModel(sceneID, Config{
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 5},
		Hold:    100 * time.Millisecond,
		Record:  true,
		Game: registry.Options{Audio: func() audio.Backend {
			b := audio.NewSilentBackend()
			backends = append(backends, b)
			return b
		}},
	})
	if err != nil {
		t.Fatalf("NewModel() error: %v", err)
	}
	return m, &backends
}

func send(m Model, msgs ...tea.Msg) Model {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func ticks(n int) []tea.Msg {
	out := make([]tea.Msg, n)
	for i := range out {
		out[i] = TickMsg(time.Time{})
	}
	return out
}

func snapshot(m Model) scene.Snapshot {
	return m.Game().(*scene.Runner).Snapshot()
}

var (
	keyRight = tea.KeyMsg{Type: tea.KeyRight}
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyQuit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}
	click    = tea.MouseMsg{X: 3, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
)

func TestNewModelUnknownScene(t *testing.T) {
	if _, err := NewModel("nope", Config{}); err == nil {
		t.Error("NewModel() with unknown scene returned nil error")
	}
}

func TestHeldKeyBecomesFrames(t *testing.T) {
	m, _ := newTestModel(t, "platformer")
	m = send(m, keyRight)
	m = send(m, ticks(8)...)
	m = send(m, keyQuit)

	journals := m.Result().Journals
	if len(journals) != 1 {
		t.Fatalf("journals = %d, expected 1", len(journals))
	}
	in := journals[0].Inputs
	if len(in) != 8 {
		t.Fatalf("journal has %d ticks, expected 8", len(in))
	}
	for i, f := range in {
		if want := i < 6; f.Has(core.ActionRight) != want {
			t.Errorf("tick %d: right = %v, expected %v", i+1, f.Has(core.ActionRight), want)
		}
	}
	if journals[0].Seed != 5 || journals[0].SceneID != "platformer" {
		t.Errorf("journal header = %+v", journals[0])
	}
	if !strings.Contains(string(journals[0].Config), "collectibles:") {
		t.Errorf("journal did not record the scene config: %q", journals[0].Config)
	}
}

func TestFinishKeepsJournalsOnError(t *testing.T) {
	m, _ := newTestModel(t, "platformer")
	m = send(m, keyRight)
	m = send(m, ticks(3)...)
	m = send(m, keyQuit)

	boom := errors.New("boom")
	res, err := finish(m, boom)
	if !errors.Is(err, boom) {
		t.Errorf("finish() error = %v, expected boom", err)
	}
	if len(res.Journals) != 1 || len(res.Journals[0].Inputs) != 3 {
		t.Errorf("finish() journals = %+v, expected one 3-tick journal", res.Journals)
	}

	if res, err := finish(nil, boom); len(res.Journals) != 0 || !errors.Is(err, boom) {
		t.Errorf("finish(nil) = %+v, %v", res, err)
	}
}

func TestPointerQueuesOnePerTick(t *testing.T) {
	m, backends := newTestModel(t, "demo")
	m = send(m, click, keyEnter)
	m = send(m, ticks(1)...)
	if got := snapshot(m).ClickTime; got != 1 {
		t.Fatalf("after one tick ClickTime = %d, expected 1", got)
	}
	m = send(m, ticks(2)...)
	if got := snapshot(m).ClickTime; got != 2 {
		t.Errorf("ClickTime = %d, expected 2", got)
	}
	if (*backends)[0].Locked() {
		t.Error("first pointer did not unlock audio")
	}

	release := tea.MouseMsg{Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft}
	m = send(m, release, ticks(1)[0])
	if got := snapshot(m).ClickTime; got != 2 {
		t.Errorf("mouse release counted as a click: ClickTime = %d", got)
	}
}

func TestFocusPausesAudio(t *testing.T) {
	m, backends := newTestModel(t, "platformer")
	b := (*backends)[0]

	m = send(m, tea.BlurMsg{})
	if !b.Blurred() {
		t.Error("blur did not reach the audio backend")
	}
	m = send(m, tea.FocusMsg{})
	if b.Blurred() {
		t.Error("focus did not resume audio")
	}
}

func TestSwitchScene(t *testing.T) {
	m, backends := newTestModel(t, "platformer")
	m = send(m, ticks(3)...)
	m = send(m, keyTab)

	if m.Game().ID() != "demo" {
		t.Fatalf("after switch scene = %q, expected demo", m.Game().ID())
	}
	if !(*backends)[0].Closed() {
		t.Error("previous scene was not destroyed")
	}
	m = send(m, ticks(2)...)
	m = send(m, keyTab)
	if m.Game().ID() != "platformer" {
		t.Errorf("second switch scene = %q", m.Game().ID())
	}

	j := m.Result().Journals
	if len(j) != 2 || j[0].SceneID != "platformer" || len(j[0].Inputs) != 3 || j[1].SceneID != "demo" {
		t.Errorf("journals = %+v", j)
	}
}

func TestQuitDestroysScene(t *testing.T) {
	m, backends := newTestModel(t, "demo")
	next, cmd := m.Update(keyQuit)
	m = next.(Model)
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command is not tea.Quit")
	}
	if !(*backends)[0].Closed() {
		t.Error("quit left the scene running")
	}
	if m.View() != "" {
		t.Error("View() after quit is not empty")
	}
	if len(m.Result().Journals) != 0 {
		t.Error("empty session produced a journal")
	}
}

func TestViewShowsScoreAndHelp(t *testing.T) {
	m, _ := newTestModel(t, "platformer")
	m = send(m, tea.WindowSizeMsg{Width: 120, Height: 21})

	lines := strings.Split(plain(m.View()), "\n")
	if len(lines) < 21 {
		t.Fatalf("view has %d lines, expected 20 scene rows plus help", len(lines))
	}
	if !strings.Contains(lines[0], "score:0") {
		t.Errorf("first row = %q", lines[0])
	}
	if !strings.Contains(lines[20], "quit") {
		t.Errorf("help row = %q", lines[20])
	}
	if w := len([]rune(lines[0])); w != 120 {
		t.Errorf("row width = %d, expected 120", w)
	}
}

func TestPainterKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.SetInk(core.ColorRed)
	s.DrawText(0, 0, "ab")
	s.SetInk(core.ColorDefault)
	s.DrawText(2, 0, "cd")

	p := NewPainter(core.ColorCyan)
	if got, want := plain(p.Render(s)), s.String(); got != want {
		t.Errorf("Render() = %q, expected %q", got, want)
	}
	p.SetBackground(core.ColorDefault)
	if len(p.styles) != 0 {
		t.Error("SetBackground kept stale styles")
	}
}

type fakeSource struct {
	calls []string
	rows  []storage.ReplayInfo
}

func (f *fakeSource) Replays(sceneID string, limit int) ([]storage.ReplayInfo, error) {
	f.calls = append(f.calls, sceneID)
	var out []storage.ReplayInfo
	for _, r := range f.rows {
		if sceneID == "" || r.SceneID == sceneID {
			out = append(out, r)
		}
	}
	return out, nil
}

func TestReplaysBrowser(t *testing.T) {
	src := &fakeSource{rows: []storage.ReplayInfo{
		{ID: 3, SceneID: "platformer", Seed: 9, TickRate: 60, Ticks: 120},
		{ID: 2, SceneID: "demo", Seed: 8, TickRate: 60, Ticks: 60},
	}}
	m := NewReplaysModel(src, 100, 30)
	if len(m.replays) != 2 {
		t.Fatalf("all tab shows %d replays", len(m.replays))
	}

	next, _ := m.Update(keyTab)
	m = next.(ReplaysModel)
	if got := src.calls[len(src.calls)-1]; got != "demo" || len(m.replays) != 1 {
		t.Errorf("second tab loaded %q with %d replays", got, len(m.replays))
	}

	next, cmd := m.Update(keyEnter)
	m = next.(ReplaysModel)
	if m.Selected() != 2 || cmd == nil {
		t.Errorf("Selected() = %d", m.Selected())
	}
}

func TestReplayRows(t *testing.T) {
	rows := ReplayRows([]storage.ReplayInfo{{ID: 7, SceneID: "demo", Seed: -1, TickRate: 60, Ticks: 90}})
	if len(rows) != 1 || rows[0][0] != "7" || rows[0][2] != "-1" || rows[0][3] != "1.5s" {
		t.Errorf("rows = %v", rows)
	}
}

func TestMenuSelect(t *testing.T) {
	m := NewMenuModel(core.RuntimeConfig{ScreenW: 80, ScreenH: 24}, "platformer")
	if m.items[m.cursor].ID != "platformer" {
		t.Fatalf("cursor on %q", m.items[m.cursor].ID)
	}
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	next, _ = next.Update(keyEnter)
	res := next.(MenuModel).Result()
	if res.SceneID != "demo" || res.Quit {
		t.Errorf("Result() = %+v", res)
	}

	next, _ = NewMenuModel(core.RuntimeConfig{}, "").Update(keyQuit)
	if !next.(MenuModel).Result().Quit {
		t.Error("q did not quit the menu")
	}
}
