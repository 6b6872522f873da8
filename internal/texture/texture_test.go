package texture

import (
	"errors"
	"testing"

	"github.com/vovakirdan/starfall/internal/core"
)

func TestGenerateTextureRect(t *testing.T) {
	store := NewStore()
	g := NewGraphics(store)

	// Bordered rectangle: 20x100 body with a 2px border gives 24x104.
	g.FillStyle(core.ColorGreen).FillRect(0, 0, 24, 104)
	g.LineStyle(2, core.ColorRed).StrokeRect(0, 0, 24, 104)

	tex, err := g.GenerateTexture("rectangle", 24, 104)
	if err != nil {
		t.Fatalf("GenerateTexture() error: %v", err)
	}
	if tex.Width() != 24 || tex.Height() != 104 {
		t.Fatalf("size = %dx%d, expected 24x104", tex.Width(), tex.Height())
	}

	tests := []struct {
		name string
		x, y int
		r, g uint8
	}{
		{"top-left border", 0, 0, 0xff, 0},
		{"inner border", 1, 50, 0xff, 0},
		{"bottom border", 12, 103, 0xff, 0},
		{"fill", 12, 50, 0, 0xff},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			px := tex.Image.RGBAAt(tt.x, tt.y)
			if px.R != tt.r || px.G != tt.g || px.A != 0xff {
				t.Errorf("pixel (%d,%d) = %v", tt.x, tt.y, px)
			}
		})
	}
}

func TestGenerateTextureCrops(t *testing.T) {
	store := NewStore()
	g := NewGraphics(store)
	g.FillStyle(core.ColorYellow).FillRect(0, 0, 800, 30)

	tex, err := g.GenerateTexture("ground", 100, 30)
	if err != nil {
		t.Fatalf("GenerateTexture() error: %v", err)
	}
	if tex.Width() != 100 {
		t.Errorf("Width() = %d, expected 100", tex.Width())
	}
	if tex.Average != core.ColorYellow {
		t.Errorf("Average = %v, expected %v", tex.Average, core.ColorYellow)
	}
}

func TestFillCircle(t *testing.T) {
	store := NewStore()
	g := NewGraphics(store)
	g.FillStyle(core.ColorWhite).FillCircle(30, 30, 30)

	tex, err := g.GenerateTexture("circle", 60, 60)
	if err != nil {
		t.Fatalf("GenerateTexture() error: %v", err)
	}
	if px := tex.Image.RGBAAt(30, 30); px.A != 0xff {
		t.Errorf("center alpha = %d, expected opaque", px.A)
	}
	if px := tex.Image.RGBAAt(1, 1); px.A != 0 {
		t.Errorf("corner alpha = %d, expected transparent", px.A)
	}
	if tex.Average != core.ColorWhite {
		t.Errorf("Average = %v, expected white", tex.Average)
	}
}

func TestClearAndReuse(t *testing.T) {
	store := NewStore()
	g := NewGraphics(store)

	g.FillStyle(core.ColorRed).FillRect(0, 0, 4, 4)
	if _, err := g.GenerateTexture("a", 4, 4); err != nil {
		t.Fatal(err)
	}
	g.Clear()
	g.FillStyle(core.ColorCyan).FillRect(0, 0, 4, 4)
	if _, err := g.GenerateTexture("b", 4, 4); err != nil {
		t.Fatal(err)
	}

	a, _ := store.Get("a")
	b, _ := store.Get("b")
	if a.Average != core.ColorRed || b.Average != core.ColorCyan {
		t.Errorf("averages = %v, %v", a.Average, b.Average)
	}
	if keys := store.Keys(); len(keys) != 2 || keys[0] != "a" || keys[1] != "b" {
		t.Errorf("Keys() = %v", keys)
	}
}

func TestStoreErrors(t *testing.T) {
	store := NewStore()

	if _, err := store.Get("missing"); !errors.Is(err, ErrUnknownTexture) {
		t.Errorf("Get() error = %v, expected ErrUnknownTexture", err)
	}
	if _, err := NewGraphics(store).GenerateTexture("zero", 0, 10); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := NewGraphics(store).GenerateTexture("", 1, 1); err == nil {
		t.Error("expected error for empty key")
	}
	if store.Has("zero") {
		t.Error("failed bake must not store a texture")
	}
}

func TestTint(t *testing.T) {
	tests := []struct {
		name       string
		base, tint core.Color
		expected   core.Color
	}{
		{"white tinted red", core.ColorWhite, core.ColorRed, core.ColorRed},
		{"default tint", core.ColorGreen, core.ColorDefault, core.ColorGreen},
		{"default base", core.ColorDefault, core.ColorRed, core.ColorRed},
		{"green tinted red", core.ColorGreen, core.ColorRed, core.RGB(0x000000)},
		{"yellow tinted red", core.ColorYellow, core.ColorRed, core.ColorRed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Tint(tt.base, tt.tint); got != tt.expected {
				t.Errorf("Tint(%v, %v) = %v, expected %v", tt.base, tt.tint, got, tt.expected)
			}
		})
	}
}
