package registry

import (
	"strings"
	"testing"

	"github.com/vovakirdan/starfall/internal/core"
)

type stubGame struct {
	id   string
	opts Options
}

func (g *stubGame) ID() string                           { return g.id }
func (g *stubGame) Title() string                        { return strings.ToUpper(g.id) }
func (g *stubGame) Reset(core.RuntimeConfig) error       { return nil }
func (g *stubGame) Step(core.InputFrame) core.StepResult { return core.StepResult{} }
func (g *stubGame) Render(*core.Screen)                  {}
func (g *stubGame) State() core.GameState                { return core.GameState{} }
func (g *stubGame) Blur()                                {}
func (g *stubGame) Focus()                               {}
func (g *stubGame) Destroy()                             {}

func TestRegisterAndCreate(t *testing.T) {
	Register("zz-stub", func(opts Options) Game { return &stubGame{id: "zz-stub", opts: opts} })

	if !Exists("zz-stub") {
		t.Fatal("registered scene should exist")
	}

	found := false
	for _, info := range List() {
		if info.ID == "zz-stub" {
			found = true
			if info.Title != "ZZ-STUB" {
				t.Errorf("Title = %q, expected ZZ-STUB", info.Title)
			}
		}
	}
	if !found {
		t.Error("List() missing registered scene")
	}

	g, err := Create("zz-stub", Options{ConfigPath: "x.yaml"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	stub := g.(*stubGame)
	if stub.opts.ConfigPath != "x.yaml" {
		t.Errorf("ConfigPath = %q, expected x.yaml", stub.opts.ConfigPath)
	}
	if stub.opts.Audio == nil || stub.opts.Logger == nil {
		t.Error("Create() should fill default audio and logger")
	}
}

func TestCreateUnknown(t *testing.T) {
	if _, err := Create("no-such-scene", Options{}); err == nil {
		t.Error("expected error for unknown scene")
	}
}

func TestDuplicateRegisterPanics(t *testing.T) {
	Register("zz-dup", func(Options) Game { return &stubGame{id: "zz-dup"} })
	defer func() {
		if recover() == nil {
			t.Error("expected panic on duplicate registration")
		}
	}()
	Register("zz-dup", func(Options) Game { return &stubGame{id: "zz-dup"} })
}
